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
	"path/filepath"
	"sort"
	"strings"
)

// Format is a canonical engine format tag after alias resolution.
type Format string

// Canonical formats referenced throughout the pipeline. The registry
// resolves user input to these; anything else passes through to the
// engine unchanged, since the engine is the final arbiter of validity.
const (
	FormatMarkdown Format = "markdown"
	FormatGFM      Format = "gfm"
	FormatHTML     Format = "html"
	FormatPlain    Format = "plain"
	FormatLatex    Format = "latex"
	FormatPDF      Format = "pdf"
	FormatDocx     Format = "docx"
	FormatPptx     Format = "pptx"
	FormatXlsx     Format = "xlsx"
	FormatXls      Format = "xls"
	FormatRSS      Format = "rss"
	FormatODT      Format = "odt"
	FormatEpub     Format = "epub"
	FormatRST      Format = "rst"
	FormatAsciiDoc Format = "asciidoc"
)

// inputFormats maps a lower-cased file extension (without dot) to the
// canonical input format tag. Extensions missing from this table resolve
// to markdown; that permissiveness is deliberate and load-bearing, the
// engine rejects inputs it truly cannot read.
var inputFormats = map[string]Format{
	"docx":      FormatDocx,
	"doc":       "doc",
	"odt":       FormatODT,
	"rtf":       "rtf",
	"html":      FormatHTML,
	"htm":       FormatHTML,
	"txt":       FormatPlain,
	"md":        FormatMarkdown,
	"markdown":  FormatMarkdown,
	"tex":       FormatLatex,
	"latex":     FormatLatex,
	"epub":      FormatEpub,
	"mobi":      "mobi",
	"fb2":       "fb2",
	"opml":      "opml",
	"org":       "org",
	"mediawiki": "mediawiki",
	"dokuwiki":  "dokuwiki",
	"textile":   "textile",
	"rst":       FormatRST,
	"asciidoc":  FormatAsciiDoc,
	"adoc":      FormatAsciiDoc,
	"man":       "man",
	"ms":        "ms",
	"pdf":       FormatPDF,
	"pptx":      FormatPptx,
	"xlsx":      FormatXlsx,
	"xls":       FormatXls,
	"rss":       FormatRSS,
	"atom":      FormatRSS,
	"csv":       "csv",
	"ipynb":     "ipynb",
	"json":      "json",
}

// outputAliases maps common user-supplied synonyms to canonical output
// tags. Lookups happen after lower-casing and trimming; strings absent
// from this table are treated as already canonical.
var outputAliases = map[string]Format{
	"word":       FormatDocx,
	"text":       FormatPlain,
	"txt":        FormatPlain,
	"plaintext":  FormatPlain,
	"powerpoint": FormatPptx,
	"ppt":        FormatPptx,
	"slides":     FormatPptx,
	"web":        FormatHTML,
	"webpage":    FormatHTML,
	"md":         FormatMarkdown,
	"tex":        FormatLatex,
	"wiki":       "mediawiki",
	"restructuredtext": FormatRST,
	"adoc":             FormatAsciiDoc,
}

// outputExtensions maps canonical output tags to their conventional file
// extension for naming converted output. Tags without an entry use the
// tag itself as extension.
var outputExtensions = map[Format]string{
	FormatGFM:             "md",
	FormatMarkdown:        "md",
	"markdown_strict":     "md",
	"markdown_mmd":        "md",
	"markdown_phpextra":   "md",
	"commonmark":          "md",
	"commonmark_x":        "md",
	"markua":              "md",
	FormatHTML:            "html",
	"html4":               "html",
	"html5":               "html",
	"xhtml":               "xhtml",
	"revealjs":            "html",
	"s5":                  "html",
	"slideous":            "html",
	"slidy":               "html",
	"dzslides":            "html",
	FormatLatex:           "tex",
	FormatPDF:             "pdf",
	"beamer":              "pdf",
	FormatDocx:            "docx",
	FormatODT:             "odt",
	"opendocument":        "odt",
	"rtf":                 "rtf",
	FormatEpub:            "epub",
	"epub2":               "epub",
	"epub3":               "epub",
	FormatPptx:            "pptx",
	FormatPlain:           "txt",
	"docbook":             "xml",
	"docbook4":            "xml",
	"docbook5":            "xml",
	"jats":                "xml",
	"jats_archiving":      "xml",
	"jats_publishing":     "xml",
	"jats_articleauthoring": "xml",
	"tei":                 "xml",
	"xml":                 "xml",
	FormatAsciiDoc:        "adoc",
	FormatRST:             "rst",
	"org":                 "org",
	"textile":             "textile",
	"mediawiki":           "wiki",
	"dokuwiki":            "txt",
	"haddock":             "hs",
	"man":                 "man",
	"ms":                  "ms",
	"opml":                "opml",
	"fb2":                 "fb2",
	"mobi":                "mobi",
	"icml":                "icml",
	"texinfo":             "texi",
	"native":              "native",
	"json":                "json",
	"ipynb":               "ipynb",
	"spip":                "txt",
}

// ResolveInputFormat maps a filename to its canonical input format based
// on the extension. Unknown extensions resolve to markdown rather than
// failing; callers that need strict gating apply AllowedInput first.
func ResolveInputFormat(filename string) Format {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if f, ok := inputFormats[ext]; ok {
		return f
	}
	return FormatMarkdown
}

// ResolveOutputFormat maps a user-supplied output format string to its
// canonical tag. Unrecognized strings are returned unchanged (after
// lower-casing and trimming); this never fails.
func ResolveOutputFormat(raw string) Format {
	s := strings.ToLower(strings.TrimSpace(raw))
	if f, ok := outputAliases[s]; ok {
		return f
	}
	return Format(s)
}

// Extension returns the conventional file extension (without dot) for
// naming output in this format, falling back to the tag itself.
func (f Format) Extension() string {
	if ext, ok := outputExtensions[f]; ok {
		return ext
	}
	return string(f)
}

// AllowedInput reports whether the filename carries an extension the
// pipeline accepts at the batch boundary. This is a coarser gate than
// ResolveInputFormat, which stays permissive by contract.
func AllowedInput(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return false
	}
	_, ok := inputFormats[ext]
	return ok
}

// binaryContainers are output formats whose artifacts are opaque binary
// envelopes: an empty or corrupt container is typically truncated to a
// few bytes, which the validator uses as a liveness signal.
var binaryContainers = map[Format]bool{
	FormatPDF:  true,
	FormatDocx: true,
	FormatPptx: true,
	FormatODT:  true,
	FormatEpub: true,
	"epub2":    true,
	"epub3":    true,
	"beamer":   true,
	"opendocument": true,
}

// IsBinaryContainer reports whether f produces a binary container
// artifact rather than a text document.
func (f Format) IsBinaryContainer() bool {
	return binaryContainers[f]
}

// IsTextBased reports whether f produces a text artifact whose content
// can be decoded and inspected.
func (f Format) IsTextBased() bool {
	return !f.IsBinaryContainer()
}

// mediaBearing lists formats that can embed or reference media assets.
// The planner requests extraction when either side of a conversion is
// media-bearing: extracting unnecessarily beats silently dropping images.
var mediaBearing = map[Format]bool{
	FormatDocx:     true,
	FormatODT:      true,
	FormatEpub:     true,
	"epub2":        true,
	"epub3":        true,
	FormatHTML:     true,
	"html4":        true,
	"html5":        true,
	"xhtml":        true,
	FormatGFM:      true,
	FormatMarkdown: true,
	"commonmark":   true,
	"commonmark_x": true,
	FormatRST:      true,
	FormatAsciiDoc: true,
	FormatPptx:     true,
	"rtf":          true,
	"fb2":          true,
}

// IsMediaBearing reports whether f can embed or reference media assets.
func (f Format) IsMediaBearing() bool {
	return mediaBearing[f]
}

// InputFormats returns the canonical set of input format tags the
// pipeline accepts by extension, sorted for stable presentation.
func InputFormats() []Format {
	seen := make(map[Format]bool, len(inputFormats))
	var out []Format
	for _, f := range inputFormats {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// OutputFormats returns the output format tags the pipeline knows an
// extension for, sorted for stable presentation. The engine may accept
// more; this is the advertised set.
func OutputFormats() []Format {
	out := make([]Format, 0, len(outputExtensions))
	for f := range outputExtensions {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
