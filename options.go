package docbundle

import (
	"log/slog"
	"time"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithEngine sets the conversion engine (default: pandoc on PATH).
func WithEngine(e Engine) Option {
	return func(p *Pipeline) {
		p.engine = e
	}
}

// WithOutputRoot sets the directory under which per-batch session
// directories are created (default: "output").
func WithOutputRoot(dir string) Option {
	return func(p *Pipeline) {
		p.outputRoot = dir
	}
}

// WithTimeout sets the per-conversion engine timeout (default: 60s).
// A timed-out conversion fails that file, never the whole batch.
func WithTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		p.timeout = d
	}
}

// WithConcurrency bounds how many files of one batch convert in
// parallel (default: 4).
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithLogger sets the logger for best-effort failures (default:
// slog.Default()).
func WithLogger(log *slog.Logger) Option {
	return func(p *Pipeline) {
		p.log = log
	}
}

// WithRetention keeps delivered session directories around for d before
// the janitor removes them; zero disables the janitor and leaves cleanup
// to the caller (default: disabled).
func WithRetention(d time.Duration) Option {
	return func(p *Pipeline) {
		p.retention = d
	}
}
