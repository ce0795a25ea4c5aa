// Package pdf runs page operations on PDF files with pdfcpu.
//
// Every operation that works on a subset of pages takes the page list already
// resolved by pagerange.Parse. An empty list is rejected with ErrNoPages so
// handlers can answer "no valid pages selected" before touching the file.
//
// Functions:
//   - PageCount: number of pages, the upper bound for page range parsing.
//   - SelectPages: copies the selected pages, in list order, into a new file.
//   - RotatePages: rotates the selected pages by a multiple of 90 degrees.
//   - RemovePages: writes a copy without the selected pages.
//   - StampPages: stamps a text watermark onto the selected pages.
//   - SignPages: places a signature image on the selected pages.
//   - MergePDFs, RemoveBookmarks: used by the merge action.
package pdf

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go-pagerange/internal/pagerange"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

var (
	ErrNoPages         = errors.New("no valid pages selected")
	ErrAllPages        = errors.New("cannot remove every page of a document")
	ErrInvalidRotation = errors.New("rotation must be a non-zero multiple of 90")
	ErrEmptyStamp      = errors.New("stamp text is empty")
)

// StampDescription is the pdfcpu watermark description used for text stamps.
const StampDescription = "scale:0.5, rot:45, op:0.6"

func PageCount(pdfPath string) (int, error) {
	n, err := pdfapi.PageCountFile(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return n, nil
}

// SelectPages writes the given pages of pdfPath to outputPath in the order
// they appear in pages.
func SelectPages(pdfPath, outputPath string, pages []int) error {
	if len(pages) == 0 {
		return ErrNoPages
	}
	config := model.NewDefaultConfiguration()
	if err := pdfapi.CollectFile(pdfPath, outputPath, pagerange.Strings(pages), config); err != nil {
		return fmt.Errorf("failed to collect pages: %w", err)
	}
	return nil
}

// RotatePages writes a copy of pdfPath to outputPath with pages rotated
// clockwise by degrees.
func RotatePages(pdfPath, outputPath string, pages []int, degrees int) error {
	if len(pages) == 0 {
		return ErrNoPages
	}
	if degrees == 0 || degrees%90 != 0 {
		return ErrInvalidRotation
	}
	config := model.NewDefaultConfiguration()
	if err := pdfapi.RotateFile(pdfPath, outputPath, degrees, pagerange.Strings(pages), config); err != nil {
		return fmt.Errorf("failed to rotate pages: %w", err)
	}
	return nil
}

// RemovePages writes a copy of pdfPath to outputPath without the given pages.
// At least one page has to survive.
func RemovePages(pdfPath, outputPath string, pages []int) error {
	if len(pages) == 0 {
		return ErrNoPages
	}
	total, err := PageCount(pdfPath)
	if err != nil {
		return err
	}
	if len(pages) >= total {
		return ErrAllPages
	}
	config := model.NewDefaultConfiguration()
	if err := pdfapi.RemovePagesFile(pdfPath, outputPath, pagerange.Strings(pages), config); err != nil {
		return fmt.Errorf("failed to remove pages: %w", err)
	}
	return nil
}

// StampPages writes a copy of pdfPath to outputPath with text stamped on top
// of the given pages.
func StampPages(pdfPath, outputPath string, pages []int, text string) error {
	if len(pages) == 0 {
		return ErrNoPages
	}
	if text == "" {
		return ErrEmptyStamp
	}

	wm, err := pdfcpu.ParseTextWatermarkDetails(text, StampDescription, true, types.POINTS)
	if err != nil {
		return fmt.Errorf("failed to parse stamp: %w", err)
	}

	if err := copyFile(pdfPath, outputPath); err != nil {
		return fmt.Errorf("failed to copy PDF: %w", err)
	}
	config := model.NewDefaultConfiguration()
	if err := pdfapi.AddWatermarksFile(outputPath, "", pagerange.Strings(pages), wm, config); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("failed to apply stamp: %w", err)
	}
	return nil
}

// SignPages places a signature image on each of the given pages.
// x, y: position in points (72 points = 1 inch) from the lower left corner
// scale: scale factor for the image (1.0 = original size)
func SignPages(pdfPath, sigImgPath string, pages []int, x, y, scale float64, outputPath string) error {
	if len(pages) == 0 {
		return ErrNoPages
	}
	if scale <= 0 {
		scale = 1.0
	}

	// pos:full (absolute positioning), rot:0 (no rotation), op:1 (fully opaque)
	desc := fmt.Sprintf("scale:%.2f, pos:full, rot:0, op:1", scale)
	wm, err := pdfcpu.ParseImageWatermarkDetails(sigImgPath, desc, true, types.POINTS)
	if err != nil {
		return fmt.Errorf("failed to parse image watermark: %w", err)
	}
	wm.Dx = x
	wm.Dy = y

	if err := copyFile(pdfPath, outputPath); err != nil {
		return fmt.Errorf("failed to copy PDF: %w", err)
	}
	config := model.NewDefaultConfiguration()
	if err := pdfapi.AddWatermarksFile(outputPath, "", pagerange.Strings(pages), wm, config); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("failed to apply signature: %w", err)
	}
	return nil
}

func MergePDFs(files []string, outputPath string) error {
	config := model.NewDefaultConfiguration()
	return pdfapi.MergeCreateFile(files, outputPath, false, config)
}

func RemoveBookmarks(pdfPath string) error {
	config := model.NewDefaultConfiguration()
	return pdfapi.RemoveBookmarksFile(pdfPath, pdfPath, config)
}

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}
