package docbundle

import (
	"strings"
	"testing"
)

func TestNormalizeMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"crlf endings", "a\r\nb\r\nc", "a\nb\nc"},
		{"bare cr endings", "a\rb\rc", "a\nb\nc"},
		{"trailing whitespace", "a  \nb\t\nc", "a\nb\nc"},
		{"collapse newlines", "a\n\n\n\n\nb", "a\n\nb"},
		{"control chars stripped", "a\x00b\x07c", "abc"},
		{"tabs kept", "a\tb", "a\tb"},
		{"trim ends", "\n\n  hello  \n\n", "hello"},
		{"empty", "", ""},
		{"whitespace only", "  \n\t\n  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeMarkup(tt.input); got != tt.want {
				t.Errorf("normalizeMarkup(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeMarkupInvalidUTF8(t *testing.T) {
	got := normalizeMarkup("valid \xff\xfe text")
	if !strings.Contains(got, "valid") || !strings.Contains(got, "text") {
		t.Errorf("normalizeMarkup dropped surrounding text: %q", got)
	}
	for _, r := range got {
		if r == '�' {
			t.Errorf("normalizeMarkup left replacement rune in %q", got)
		}
	}
}

func TestLooksLikeHeading(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"AGENDA", true},
		{"SECTION 2: RESULTS", true},
		{"QUARTERLY REVIEW", true},
		{"Agenda", false},
		{"agenda", false},
		{"2024", false},
		{"---", false},
		{"", false},
		{"   ", false},
		{strings.Repeat("A", 60), false},
		{strings.Repeat("A", 59), true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := looksLikeHeading(tt.line); got != tt.want {
				t.Errorf("looksLikeHeading(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}
