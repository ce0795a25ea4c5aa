// Package pdftest writes small, valid PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var pageLabel = regexp.MustCompile(`\((\d+)\) Tj`)

// Bytes returns a PDF document with the given number of blank pages. Each
// page is 200x200 points and carries its number in a content stream so the
// pages stay distinguishable after reordering.
func Bytes(pages int) []byte {
	var objs []string
	kids := make([]string, pages)
	for i := 0; i < pages; i++ {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}
	objs = append(objs, "<< /Type /Catalog /Pages 2 0 R >>")
	objs = append(objs, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages))
	for i := 0; i < pages; i++ {
		content := fmt.Sprintf("BT /F1 24 Tf 80 90 Td (%d) Tj ET", i+1)
		objs = append(objs, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 200] /Contents %d 0 R "+
				"/Resources << /Font << /F1 << /Type /Font /Subtype /Type1 /BaseFont /Helvetica >> >> >> >>", 4+2*i))
		objs = append(objs, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

// Write stores a PDF with the given number of pages at path.
func Write(path string, pages int) error {
	return os.WriteFile(path, Bytes(pages), 0644)
}

// Labels returns, for each page of the PDF in rs, the page number Bytes
// stamped into its content stream, or "" for a page without one.
func Labels(rs io.ReadSeeker) ([]string, error) {
	ctx, err := pdfapi.ReadValidateAndOptimize(rs, model.NewDefaultConfiguration())
	if err != nil {
		return nil, err
	}
	labels := make([]string, ctx.PageCount)
	for i := range labels {
		r, err := pdfcpu.ExtractPageContent(ctx, i+1)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		if r == nil {
			continue
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		if m := pageLabel.FindSubmatch(data); m != nil {
			labels[i] = string(m[1])
		}
	}
	return labels, nil
}

// LabelsFile is Labels for the PDF stored at path.
func LabelsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Labels(f)
}
