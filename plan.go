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

// Directive is one fully planned engine invocation. Directives are built
// fresh per conversion and never shared between files, so flags planned
// for one conversion cannot leak into another.
type Directive struct {
	InputPath    string
	InputFormat  Format
	OutputPath   string
	OutputFormat Format
	ExtraFlags   []string
	MediaDir     string
}

// outputFlags maps a canonical output format to the ordered extra flags
// its conversions need. Formats without an entry get no extra flags and
// run on engine defaults; the table is total by construction.
var outputFlags = map[Format][]string{
	FormatGFM:      {"--wrap=none"},
	FormatMarkdown: {"--wrap=none"},
	"commonmark":   {"--wrap=none"},
	FormatHTML:     {"--standalone", "--self-contained"},
	"html5":        {"--standalone", "--self-contained"},
	FormatPDF:      {"--pdf-engine=xelatex"},
	"beamer":       {"--pdf-engine=xelatex"},
}

// BuildDirective plans the engine invocation for one conversion. Media
// extraction is requested whenever either side of the conversion can
// carry media; extracting unnecessarily is preferred over silently
// dropping images.
func BuildDirective(in, out Format, inputPath, outputPath, mediaDir string) *Directive {
	d := &Directive{
		InputPath:    inputPath,
		InputFormat:  in,
		OutputPath:   outputPath,
		OutputFormat: out,
	}

	if flags, ok := outputFlags[out]; ok {
		d.ExtraFlags = append([]string(nil), flags...)
	}

	if in.IsMediaBearing() || out.IsMediaBearing() {
		d.MediaDir = mediaDir
	}

	return d
}

// Args renders the directive as an engine argument vector.
func (d *Directive) Args() []string {
	args := []string{
		d.InputPath,
		"-f", string(d.InputFormat),
		"-t", string(d.OutputFormat),
		"-o", d.OutputPath,
	}
	if d.MediaDir != "" {
		args = append(args, "--extract-media", d.MediaDir)
	}
	args = append(args, d.ExtraFlags...)
	return args
}
