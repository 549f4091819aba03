package docbundle

import (
	"errors"
	"fmt"
	"testing"
)

func TestBatchErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		failures []FileFailure
		want     string
	}{
		{
			"no failures",
			nil,
			"no files were successfully converted",
		},
		{
			"single failure",
			[]FileFailure{
				{Filename: "a.xyz", Err: &InvalidFileTypeError{Filename: "a.xyz"}},
			},
			"no files were successfully converted. Errors: a.xyz: invalid file type: a.xyz",
		},
		{
			"multiple failures",
			[]FileFailure{
				{Filename: "a.md", Err: &EngineError{Stderr: "bad input"}},
				{Filename: "b.md", Err: fmt.Errorf("disk full")},
			},
			"no files were successfully converted. Errors: a.md: engine error: bad input; b.md: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &BatchError{Failures: tt.failures}
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEngineErrorMessage(t *testing.T) {
	err := &EngineError{Stderr: "  pandoc: unknown reader: nope\n"}
	if got := err.Error(); got != "engine error: pandoc: unknown reader: nope" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := &EngineError{Err: errors.New("signal: killed")}
	if got := wrapped.Error(); got != "engine error: signal: killed" {
		t.Errorf("Error() = %q", got)
	}
}

func TestErrorHelpers(t *testing.T) {
	invalid := fmt.Errorf("processing: %w", &InvalidFileTypeError{Filename: "x.bin"})
	if !IsInvalidFileType(invalid) {
		t.Error("IsInvalidFileType failed to see through wrapping")
	}
	if IsInvalidFileType(errors.New("other")) {
		t.Error("IsInvalidFileType matched an unrelated error")
	}

	unavailable := fmt.Errorf("run: %w", &EngineUnavailableError{Err: errors.New("not found")})
	if !IsEngineUnavailable(unavailable) {
		t.Error("IsEngineUnavailable failed to see through wrapping")
	}
	if IsEngineUnavailable(&EngineError{Stderr: "boom"}) {
		t.Error("IsEngineUnavailable matched a conversion failure")
	}
}
