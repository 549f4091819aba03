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
	"os"
	"path/filepath"
	"strings"
)

// Extractor reconstructs intermediate markup from a binary source the
// engine cannot read directly. Extraction is best-effort text recovery,
// not fidelity-preserving: layout, styling and embedded images of the
// original binary are not reconstructed.
type Extractor interface {
	Extract(reader io.ReadSeeker) (string, error)
}

// NormalizedInput is a conversion-ready input: either the original file
// untouched, or a freshly materialized intermediate markup file owned by
// the pipeline run that created it.
type NormalizedInput struct {
	Path         string
	Format       Format
	intermediate bool
}

// Cleanup removes the intermediate artifact. Pass-through inputs are the
// original upload and are left alone.
func (n *NormalizedInput) Cleanup() {
	if n.intermediate {
		os.Remove(n.Path)
	}
}

// normalizeInput prepares one input for the engine. Formats with a
// registered extractor are rewritten as intermediate markdown in workDir;
// everything else passes through unchanged.
func (p *Pipeline) normalizeInput(path string, in Format, workDir string) (*NormalizedInput, error) {
	ex, ok := p.extractors[in]
	if !ok {
		return &NormalizedInput{Path: path, Format: in}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &ExtractionError{Format: in, Err: err}
	}
	defer f.Close()

	markup, err := ex.Extract(f)
	if err != nil {
		return nil, &ExtractionError{Format: in, Err: err}
	}

	markup = normalizeMarkup(markup)
	if markup == "" {
		return nil, &ExtractionError{Format: in, Err: fmt.Errorf("no readable text content")}
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := filepath.Join(workDir, base+".intermediate.md")
	if err := os.WriteFile(outPath, []byte(markup+"\n"), 0o644); err != nil {
		return nil, &ExtractionError{Format: in, Err: err}
	}

	return &NormalizedInput{Path: outPath, Format: FormatMarkdown, intermediate: true}, nil
}

// builtinExtractors returns the default extractor set, keyed by the
// canonical input format each one serves.
func builtinExtractors() map[Format]Extractor {
	return map[Format]Extractor{
		FormatPDF:  NewPageLayoutExtractor(),
		FormatPptx: NewSlideDeckExtractor(),
		FormatXlsx: NewWorkbookExtractor(),
		FormatXls:  NewLegacyWorkbookExtractor(),
		FormatRSS:  NewFeedExtractor(),
	}
}
