package docbundle

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDecodeTextUTF8PassThrough(t *testing.T) {
	in := "plain ascii and ünïcode ✓"
	if got := decodeText([]byte(in)); got != in {
		t.Errorf("decodeText() = %q, want input unchanged", got)
	}
}

func TestDecodeTextLatin1(t *testing.T) {
	// "résumé café" in ISO-8859-1, padded with enough ASCII for the
	// detector to have something to work with.
	raw := []byte("The r\xe9sum\xe9 was left at the caf\xe9 by the candidate yesterday.\n")
	got := decodeText(raw)

	if !utf8.ValidString(got) {
		t.Fatalf("decodeText() produced invalid UTF-8: %q", got)
	}
	if !strings.Contains(got, "résumé") || !strings.Contains(got, "café") {
		t.Errorf("decodeText() = %q, want accented words decoded", got)
	}
}

func TestDecodeTextNeverEmpty(t *testing.T) {
	raw := []byte{0xff, 0xfe, 0xfd}
	if got := decodeText(raw); got == "" {
		t.Error("decodeText() returned empty for non-empty input")
	}
}

func TestScoreDecoded(t *testing.T) {
	clean := scoreDecoded("hello world", 50)
	mangled := scoreDecoded("hel�o w�rld", 50)
	if mangled >= clean {
		t.Errorf("replacement runes not penalized: clean=%d mangled=%d", clean, mangled)
	}

	control := scoreDecoded("hel\x01lo", 50)
	if control >= clean {
		t.Errorf("control chars not penalized: clean=%d control=%d", clean, control)
	}
}
