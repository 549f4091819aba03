// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package docbundle

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WorkbookExtractor reconstructs intermediate markup from XLSX
// workbooks: one heading per sheet followed by a pipe table.
type WorkbookExtractor struct{}

// NewWorkbookExtractor creates a new WorkbookExtractor.
func NewWorkbookExtractor() *WorkbookExtractor {
	return &WorkbookExtractor{}
}

func (e *WorkbookExtractor) Extract(reader io.ReadSeeker) (string, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return "", fmt.Errorf("open XLSX: %w", err)
	}
	defer f.Close()

	var md strings.Builder

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		if len(rows) == 0 {
			continue
		}

		fmt.Fprintf(&md, "## %s\n", sheet)
		md.WriteString(renderMarkdownTable(rows))
		md.WriteString("\n")
	}

	return md.String(), nil
}

// renderMarkdownTable renders a 2D string slice as a markdown table.
func renderMarkdownTable(records [][]string) string {
	if len(records) == 0 {
		return ""
	}

	numCols := len(records[0])

	var b strings.Builder

	// Header row
	b.WriteString("| ")
	for i := 0; i < numCols; i++ {
		if i < len(records[0]) {
			b.WriteString(records[0][i])
		}
		b.WriteString(" | ")
	}
	b.WriteString("\n")

	// Separator row
	b.WriteString("| ")
	for i := 0; i < numCols; i++ {
		b.WriteString("---")
		b.WriteString(" | ")
	}
	b.WriteString("\n")

	// Data rows
	for _, row := range records[1:] {
		b.WriteString("| ")
		for i := 0; i < numCols; i++ {
			if i < len(row) {
				b.WriteString(row[i])
			}
			b.WriteString(" | ")
		}
		b.WriteString("\n")
	}

	return b.String()
}
