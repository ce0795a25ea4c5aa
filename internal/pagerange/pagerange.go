// Package pagerange turns a human-typed page range specification such as
// "1-3,5,7-" into the page numbers it selects.
//
// Parsing is tolerant: segments that cannot be understood are skipped and
// never reported. Callers that need to tell the user "no valid pages
// selected" check whether the returned slice is empty.
//
// Example:
//
//	pages := pagerange.Parse("1-3,5,7-", 9)
//	// pages == []int{1, 2, 3, 5, 7, 8, 9}
package pagerange

import (
	"regexp"
	"strconv"
	"strings"
)

// Segment shapes, matched against a trimmed segment in this order. The
// space class around the hyphen covers what strings.TrimSpace trims, so a
// non-breaking space is accepted inside a range as well as around it.
var (
	closedRange    = regexp.MustCompile(`^(\d+)[\s\v\x{85}\p{Z}]*-[\s\v\x{85}\p{Z}]*(\d+)$`)
	openEndRange   = regexp.MustCompile(`^(\d+)[\s\v\x{85}\p{Z}]*-$`)
	openStartRange = regexp.MustCompile(`^-[\s\v\x{85}\p{Z}]*(\d+)$`)
	singlePage     = regexp.MustCompile(`^\d+$`)
)

// Parse resolves spec against a document of upperBound pages.
//
// The result holds each selected page once, in the order it was first
// produced, and every value lies in [1, upperBound]. Ranges may be written
// in either direction and are clamped to the document; a single page outside
// the document is dropped rather than clamped.
func Parse(spec string, upperBound int) []int {
	pages := []int{}
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return pages
	}

	var expanded []int
	for _, segment := range strings.Split(spec, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		expanded = append(expanded, expand(segment, upperBound)...)
	}

	seen := make(map[int]struct{}, len(expanded))
	for _, p := range expanded {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		pages = append(pages, p)
	}
	return pages
}

// expand returns the pages one segment contributes, or nil when the segment
// is malformed or selects nothing inside the document.
func expand(segment string, upperBound int) []int {
	var a, b int
	var err error
	if m := closedRange.FindStringSubmatch(segment); m != nil {
		if a, err = strconv.Atoi(m[1]); err == nil {
			b, err = strconv.Atoi(m[2])
		}
	} else if m := openEndRange.FindStringSubmatch(segment); m != nil {
		a, err = strconv.Atoi(m[1])
		b = upperBound
	} else if m := openStartRange.FindStringSubmatch(segment); m != nil {
		a = 1
		b, err = strconv.Atoi(m[1])
	} else if singlePage.MatchString(segment) {
		// Single pages outside the document are dropped, not clamped.
		n, err := strconv.Atoi(segment)
		if err != nil || n < 1 || n > upperBound {
			return nil
		}
		return []int{n}
	} else {
		return nil
	}
	if err != nil {
		return nil
	}

	if a > b {
		a, b = b, a
	}
	a = max(a, 1)
	b = min(b, upperBound)
	if a > b {
		return nil
	}

	// Stop on b itself: p++ past math.MaxInt would wrap.
	out := make([]int, 0, min(b-a+1, 1024))
	for p := a; ; p++ {
		out = append(out, p)
		if p == b {
			break
		}
	}
	return out
}

// ZeroBased converts page numbers to the 0-based indices document libraries
// address pages by.
func ZeroBased(pages []int) []int {
	idx := make([]int, len(pages))
	for i, p := range pages {
		idx[i] = p - 1
	}
	return idx
}

// Strings renders pages as decimal strings, the selection form pdfcpu takes.
func Strings(pages []int) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = strconv.Itoa(p)
	}
	return out
}

// Format renders pages back as a compact specification. Runs of ascending
// consecutive pages collapse to "a-b"; everything else keeps list order, so
// Parse(Format(pages), n) reproduces any list Parse returned.
func Format(pages []int) string {
	var sb strings.Builder
	for i := 0; i < len(pages); {
		j := i
		for j+1 < len(pages) && pages[j+1] == pages[j]+1 {
			j++
		}
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(pages[i]))
		if j > i {
			sb.WriteByte('-')
			sb.WriteString(strconv.Itoa(pages[j]))
		}
		i = j + 1
	}
	return sb.String()
}
