//go:build nopdfium

package docbundle

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PageLayoutExtractor reconstructs text from binary page-layout
// documents (PDF). Pages are emitted in order with blank-line
// separation; short all-uppercase lines are promoted to headings.
type PageLayoutExtractor struct{}

// NewPageLayoutExtractor creates a new PageLayoutExtractor.
func NewPageLayoutExtractor() *PageLayoutExtractor {
	return &PageLayoutExtractor{}
}

func (e *PageLayoutExtractor) Extract(reader io.ReadSeeker) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read PDF: %w", err)
	}

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}

	var md strings.Builder
	numPages := pdfReader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text := extractPageLines(page)
		if strings.TrimSpace(text) == "" {
			continue
		}

		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if looksLikeHeading(line) {
				md.WriteString("# " + line + "\n")
			} else {
				md.WriteString(line + "\n")
			}
		}
		md.WriteString("\n")
	}

	result := md.String()
	if strings.TrimSpace(result) == "" {
		return "", fmt.Errorf("no readable text content")
	}
	return result, nil
}

// extractPageLines extracts raw text lines from one page, preferring
// row-based extraction with word boundary detection and falling back to
// content order when rows are unavailable.
func extractPageLines(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err == nil && len(rows) > 0 {
		var result strings.Builder
		for _, row := range rows {
			var lineText strings.Builder
			prevWasEmpty := false
			for _, word := range row.Content {
				s := word.S
				if s == "" {
					prevWasEmpty = true
					continue
				}
				if lineText.Len() > 0 && prevWasEmpty {
					// Empty string between non-empty strings = word boundary
					last := lineText.String()
					if last[len(last)-1] != ' ' {
						lineText.WriteString(" ")
					}
				}
				lineText.WriteString(s)
				prevWasEmpty = false
			}
			if text := strings.TrimSpace(lineText.String()); text != "" {
				result.WriteString(text)
				result.WriteString("\n")
			}
		}
		if strings.TrimSpace(result.String()) != "" {
			return result.String()
		}
	}

	// Fallback: group raw text elements by Y position and read top to
	// bottom, left to right.
	content := page.Content()
	if len(content.Text) == 0 {
		return ""
	}

	type fragment struct {
		x, y float64
		s    string
	}
	var frags []fragment
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		frags = append(frags, fragment{x: t.X, y: t.Y, s: t.S})
	}

	sort.SliceStable(frags, func(i, j int) bool {
		if frags[i].y != frags[j].y {
			return frags[i].y > frags[j].y
		}
		return frags[i].x < frags[j].x
	})

	var result strings.Builder
	lastY := 0.0
	for i, fr := range frags {
		if i > 0 && fr.y != lastY {
			result.WriteString("\n")
		}
		result.WriteString(fr.s)
		lastY = fr.y
	}
	return result.String()
}
