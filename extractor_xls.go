package docbundle

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/extrame/xls"
)

// LegacyWorkbookExtractor reconstructs intermediate markup from legacy
// binary XLS workbooks.
type LegacyWorkbookExtractor struct{}

// NewLegacyWorkbookExtractor creates a new LegacyWorkbookExtractor.
func NewLegacyWorkbookExtractor() *LegacyWorkbookExtractor {
	return &LegacyWorkbookExtractor{}
}

func (e *LegacyWorkbookExtractor) Extract(reader io.ReadSeeker) (string, error) {
	// extrame/xls requires a file path, so spill to a temp file first.
	tmpFile, err := os.CreateTemp("", "docbundle-*.xls")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmpFile, reader); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	tmpFile.Close()

	wb, err := xls.Open(tmpPath, "utf-8")
	if err != nil {
		return "", fmt.Errorf("open XLS: %w", err)
	}

	var md strings.Builder

	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}

		sheetName := sheet.Name
		if sheetName == "" {
			sheetName = fmt.Sprintf("Sheet%d", i+1)
		}

		var rows [][]string
		maxRow := int(sheet.MaxRow)
		for rowIdx := 0; rowIdx <= maxRow; rowIdx++ {
			row := sheet.Row(rowIdx)
			if row == nil {
				continue
			}

			var cells []string
			for colIdx := 0; colIdx < row.LastCol(); colIdx++ {
				cells = append(cells, row.Col(colIdx))
			}
			rows = append(rows, cells)
		}

		if len(rows) == 0 {
			continue
		}

		fmt.Fprintf(&md, "## %s\n", sheetName)
		md.WriteString(renderMarkdownTable(rows))
		md.WriteString("\n")
	}

	return md.String(), nil
}
