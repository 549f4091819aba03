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
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
)

// Engine performs the actual format transformation for one directive.
// Implementations must honor ctx cancellation; the pipeline applies a
// per-conversion timeout and treats it as a file-scoped failure.
type Engine interface {
	Convert(ctx context.Context, d *Directive) error
}

// PandocEngine runs conversions through the pandoc binary.
type PandocEngine struct {
	// Binary is the pandoc executable; defaults to "pandoc" on PATH.
	Binary string
	// Log receives engine stderr at debug level on success.
	Log *slog.Logger
}

// NewPandocEngine returns an engine using the pandoc binary on PATH.
func NewPandocEngine() *PandocEngine {
	return &PandocEngine{Binary: "pandoc"}
}

// Convert runs pandoc for the directive. A missing binary surfaces as
// EngineUnavailableError; any other failure, including ctx expiry and
// non-zero exit, surfaces as EngineError with stderr attached.
func (e *PandocEngine) Convert(ctx context.Context, d *Directive) error {
	binary := e.Binary
	if binary == "" {
		binary = "pandoc"
	}

	cmd := exec.CommandContext(ctx, binary, d.Args()...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		if e.Log != nil && stderr.Len() > 0 {
			e.Log.Debug("engine stderr", "output", stderr.String())
		}
		return nil
	}

	if errors.Is(err, exec.ErrNotFound) {
		return &EngineUnavailableError{Err: err}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &EngineError{Stderr: stderr.String(), Err: ctxErr}
	}
	return &EngineError{Stderr: stderr.String(), Err: err}
}
