package docbundle

import (
	"context"
	"testing"
)

func TestPandocEngineMissingBinary(t *testing.T) {
	engine := &PandocEngine{Binary: "docbundle-test-no-such-binary"}
	d := BuildDirective(FormatMarkdown, FormatGFM, "in.md", "out.md", "")

	err := engine.Convert(context.Background(), d)
	if err == nil {
		t.Fatal("Convert() succeeded with a nonexistent binary")
	}
	if !IsEngineUnavailable(err) {
		t.Fatalf("Convert() = %v, want engine unavailable", err)
	}
}

func TestPandocEngineCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := &PandocEngine{Binary: "docbundle-test-no-such-binary"}
	d := BuildDirective(FormatMarkdown, FormatGFM, "in.md", "out.md", "")

	if err := engine.Convert(ctx, d); err == nil {
		t.Fatal("Convert() succeeded with a canceled context")
	}
}
