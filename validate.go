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
	"io"
	"os"
	"strings"
)

const (
	// minContainerSize is the smallest plausible binary container. An
	// empty or corrupt container is typically truncated to a few bytes.
	minContainerSize = 128

	// validateChunkSize bounds how much of a text artifact is read for
	// the liveness check.
	validateChunkSize = 4096
)

// ValidateOutput confirms an engine artifact is non-empty and plausible
// for its declared format. It checks liveness only; deep structural
// validation is the engine's responsibility, not this layer's.
func ValidateOutput(path string, f Format) error {
	info, err := os.Stat(path)
	if err != nil {
		return &ValidationError{Path: path, Reason: "output file missing"}
	}
	if info.Size() == 0 {
		return &ValidationError{Path: path, Reason: "output file is empty"}
	}

	if f.IsBinaryContainer() {
		if info.Size() < minContainerSize {
			return &ValidationError{Path: path, Reason: "container truncated"}
		}
		return nil
	}

	file, err := os.Open(path)
	if err != nil {
		return &ValidationError{Path: path, Reason: "output file unreadable"}
	}
	defer file.Close()

	chunk := make([]byte, validateChunkSize)
	n, err := file.Read(chunk)
	if err != nil && err != io.EOF {
		return &ValidationError{Path: path, Reason: "output file unreadable"}
	}

	if strings.TrimSpace(decodeText(chunk[:n])) == "" {
		return &ValidationError{Path: path, Reason: "no text content"}
	}
	return nil
}
