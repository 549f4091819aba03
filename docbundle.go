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

// Package docbundle converts batches of heterogeneous document files to
// a requested output format through an external conversion engine,
// normalizing inputs the engine cannot read, validating engine output,
// and reconciling extracted media into one flat namespace.
package docbundle

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// mediaDirName is the canonical media directory inside a session,
// and the path prefix rewritten into converted documents.
const mediaDirName = "media"

// DefaultOutputFormat is used when a batch requests no output format.
const DefaultOutputFormat = FormatGFM

// Pipeline is the batch document conversion pipeline. A Pipeline is
// safe for concurrent use; every batch runs in an isolated session
// directory and shares no state with other batches.
type Pipeline struct {
	engine      Engine
	extractors  map[Format]Extractor
	outputRoot  string
	timeout     time.Duration
	concurrency int
	retention   time.Duration
	log         *slog.Logger

	janitorOnce sync.Once
	janitorStop chan struct{}
}

// New creates a Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		engine:      NewPandocEngine(),
		extractors:  builtinExtractors(),
		outputRoot:  "output",
		timeout:     60 * time.Second,
		concurrency: 4,
		log:         slog.Default(),
		janitorStop: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.retention > 0 {
		p.janitorOnce.Do(func() { go p.janitor() })
	}
	return p
}

// RegisterExtractor adds or replaces the normalizer for a canonical
// input format.
func (p *Pipeline) RegisterExtractor(f Format, e Extractor) {
	p.extractors[f] = e
}

// Close stops the retention janitor, if one is running.
func (p *Pipeline) Close() {
	select {
	case <-p.janitorStop:
	default:
		close(p.janitorStop)
	}
}

// janitor periodically removes session directories past the retention
// window, bounding disk growth when results are downloaded
// asynchronously and never cleaned up by the caller.
func (p *Pipeline) janitor() {
	ticker := time.NewTicker(p.retention / 2)
	defer ticker.Stop()
	for {
		select {
		case <-p.janitorStop:
			return
		case <-ticker.C:
			p.sweepExpired(time.Now())
		}
	}
}

// sweepExpired removes expired session directories. Only directories
// whose name parses as a session identifier are touched.
func (p *Pipeline) sweepExpired(now time.Time) {
	entries, err := os.ReadDir(p.outputRoot)
	if err != nil {
		return
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := uuid.Parse(e.Name()); err != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) > p.retention {
			dir := filepath.Join(p.outputRoot, e.Name())
			if err := os.RemoveAll(dir); err != nil {
				p.log.Warn("sweep session dir", "dir", dir, "error", err)
			}
		}
	}
}
