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
	"errors"
	"fmt"
	"strings"
)

// InvalidFileTypeError is returned when a file's extension is outside
// the accepted set at the batch boundary.
type InvalidFileTypeError struct {
	Filename string
}

func (e *InvalidFileTypeError) Error() string {
	return fmt.Sprintf("invalid file type: %s", e.Filename)
}

// ExtractionError is returned when a normalizer cannot reconstruct
// intermediate markup from a binary input.
type ExtractionError struct {
	Format Format
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// EngineError is returned when the conversion engine ran but failed.
// Stderr carries the engine's own diagnostics verbatim.
type EngineError struct {
	Stderr string
	Err    error
}

func (e *EngineError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return "engine error: " + msg
}

func (e *EngineError) Unwrap() error { return e.Err }

// EngineUnavailableError is returned when the engine binary cannot be
// found or started at all.
type EngineUnavailableError struct {
	Err error
}

func (e *EngineUnavailableError) Error() string {
	return fmt.Sprintf("engine not available: %v", e.Err)
}

func (e *EngineUnavailableError) Unwrap() error { return e.Err }

// ValidationError is returned when the engine exited cleanly but its
// artifact failed the liveness checks.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid output %s: %s", e.Path, e.Reason)
}

// FileFailure records one file's terminal pipeline error within a batch.
type FileFailure struct {
	Filename string
	Err      error
}

func (f FileFailure) String() string {
	return fmt.Sprintf("%s: %v", f.Filename, f.Err)
}

// BatchError is returned when no file in a batch converted successfully.
// It aggregates every per-file reason.
type BatchError struct {
	Failures []FileFailure
}

func (e *BatchError) Error() string {
	var b strings.Builder
	b.WriteString("no files were successfully converted")
	if len(e.Failures) > 0 {
		b.WriteString(". Errors: ")
		for i, f := range e.Failures {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(f.String())
		}
	}
	return b.String()
}

func (e *BatchError) Unwrap() error {
	if len(e.Failures) > 0 {
		return e.Failures[len(e.Failures)-1].Err
	}
	return nil
}

// IsInvalidFileType reports whether the error is an InvalidFileTypeError.
func IsInvalidFileType(err error) bool {
	var target *InvalidFileTypeError
	return errors.As(err, &target)
}

// IsEngineUnavailable reports whether the error means the engine binary
// is missing rather than the conversion itself failing.
func IsEngineUnavailable(err error) bool {
	var target *EngineUnavailableError
	return errors.As(err, &target)
}
