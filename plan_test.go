package docbundle

import (
	"reflect"
	"testing"
)

func TestBuildDirectiveFlags(t *testing.T) {
	tests := []struct {
		out       Format
		wantFlags []string
	}{
		{FormatGFM, []string{"--wrap=none"}},
		{FormatMarkdown, []string{"--wrap=none"}},
		{FormatHTML, []string{"--standalone", "--self-contained"}},
		{FormatPDF, []string{"--pdf-engine=xelatex"}},
		{FormatDocx, nil},
		{FormatPlain, nil},
		{Format("jats"), nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.out), func(t *testing.T) {
			d := BuildDirective(FormatMarkdown, tt.out, "in.md", "out.x", "media")
			if !reflect.DeepEqual(d.ExtraFlags, tt.wantFlags) {
				t.Errorf("ExtraFlags = %v, want %v", d.ExtraFlags, tt.wantFlags)
			}
		})
	}
}

func TestBuildDirectiveMediaPolicy(t *testing.T) {
	tests := []struct {
		name      string
		in, out   Format
		wantMedia bool
	}{
		{"docx to plain", FormatDocx, FormatPlain, true},
		{"plain to html", FormatPlain, FormatHTML, true},
		{"docx to gfm", FormatDocx, FormatGFM, true},
		{"plain to latex", FormatPlain, FormatLatex, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := BuildDirective(tt.in, tt.out, "in", "out", "media")
			if got := d.MediaDir != ""; got != tt.wantMedia {
				t.Errorf("MediaDir set = %v, want %v", got, tt.wantMedia)
			}
		})
	}
}

// Mutating one directive's flags must not affect directives planned later
// for the same output format.
func TestBuildDirectiveFlagIsolation(t *testing.T) {
	first := BuildDirective(FormatMarkdown, FormatGFM, "a.md", "a.out", "")
	first.ExtraFlags[0] = "--mutated"

	second := BuildDirective(FormatMarkdown, FormatGFM, "b.md", "b.out", "")
	if second.ExtraFlags[0] != "--wrap=none" {
		t.Errorf("flag table contaminated: got %q", second.ExtraFlags[0])
	}
}

func TestDirectiveArgs(t *testing.T) {
	d := BuildDirective(FormatDocx, FormatGFM, "in.docx", "out.md", "extract")
	want := []string{
		"in.docx",
		"-f", "docx",
		"-t", "gfm",
		"-o", "out.md",
		"--extract-media", "extract",
		"--wrap=none",
	}
	if got := d.Args(); !reflect.DeepEqual(got, want) {
		t.Errorf("Args() = %v, want %v", got, want)
	}
}

func TestDirectiveArgsNoMedia(t *testing.T) {
	d := BuildDirective(FormatPlain, FormatLatex, "in.txt", "out.tex", "extract")
	for _, a := range d.Args() {
		if a == "--extract-media" {
			t.Fatal("Args() requested media extraction for a text-only conversion")
		}
	}
}
