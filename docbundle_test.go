package docbundle

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSweepExpired(t *testing.T) {
	root := t.TempDir()
	p := New(WithOutputRoot(root), WithRetention(time.Hour))
	t.Cleanup(p.Close)

	old := time.Now().Add(-3 * time.Hour)

	expired := filepath.Join(root, uuid.NewString())
	fresh := filepath.Join(root, uuid.NewString())
	foreign := filepath.Join(root, "not-a-session")
	for _, dir := range []string{expired, fresh, foreign} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Chtimes(expired, old, old); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(foreign, old, old); err != nil {
		t.Fatal(err)
	}

	p.sweepExpired(time.Now())

	if _, err := os.Stat(expired); !os.IsNotExist(err) {
		t.Error("expired session directory survived the sweep")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh session directory was swept")
	}
	if _, err := os.Stat(foreign); err != nil {
		t.Error("non-session directory was swept")
	}
}

func TestCloseIdempotent(t *testing.T) {
	p := New(WithOutputRoot(t.TempDir()), WithRetention(time.Minute))
	p.Close()
	p.Close()
}

func TestWithConcurrencyIgnoresNonPositive(t *testing.T) {
	p := New(WithConcurrency(0))
	t.Cleanup(p.Close)
	if p.concurrency != 4 {
		t.Errorf("concurrency = %d, want default 4", p.concurrency)
	}

	p2 := New(WithConcurrency(-3))
	t.Cleanup(p2.Close)
	if p2.concurrency != 4 {
		t.Errorf("concurrency = %d, want default 4", p2.concurrency)
	}
}
