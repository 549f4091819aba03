//go:build !nopdfium

package docbundle

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/webassembly"
)

var (
	pdfiumPool     pdfium.Pool
	pdfiumPoolOnce sync.Once
	pdfiumPoolErr  error
)

func initPdfiumPool() {
	pdfiumPool, pdfiumPoolErr = webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  1,
		MaxTotal: 1,
	})
}

// PageLayoutExtractor reconstructs text from binary page-layout
// documents (PDF) using the PDFium library via WebAssembly. Pages are
// emitted in order with blank-line separation; short all-uppercase lines
// are promoted to headings.
type PageLayoutExtractor struct{}

// NewPageLayoutExtractor creates a new PageLayoutExtractor.
func NewPageLayoutExtractor() *PageLayoutExtractor {
	return &PageLayoutExtractor{}
}

func (e *PageLayoutExtractor) Extract(reader io.ReadSeeker) (string, error) {
	pdfiumPoolOnce.Do(initPdfiumPool)
	if pdfiumPoolErr != nil {
		return "", fmt.Errorf("init pdfium: %w", pdfiumPoolErr)
	}

	instance, err := pdfiumPool.GetInstance(30 * time.Second)
	if err != nil {
		return "", fmt.Errorf("get pdfium instance: %w", err)
	}
	defer instance.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read PDF: %w", err)
	}

	doc, err := instance.OpenDocument(&requests.OpenDocument{
		File: &data,
	})
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}
	defer instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	pageCountResp, err := instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: doc.Document,
	})
	if err != nil {
		return "", fmt.Errorf("get page count: %w", err)
	}

	var md strings.Builder

	for i := 0; i < pageCountResp.PageCount; i++ {
		textResp, err := instance.GetPageText(&requests.GetPageText{
			Page: requests.Page{
				ByIndex: &requests.PageByIndex{
					Document: doc.Document,
					Index:    i,
				},
			},
		})
		if err != nil {
			continue
		}

		text := strings.TrimSpace(textResp.Text)
		if text == "" {
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
