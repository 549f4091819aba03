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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// InputFile is one uploaded file in a batch. It is consumed once and
// never mutated.
type InputFile struct {
	Name string
	Data []byte
}

// BatchResult is the outcome of one batch conversion. Converted holds
// output filenames in input order; Failures holds every per-file error
// in input order. A result with a non-empty Converted list is an overall
// success even when Failures is non-empty.
type BatchResult struct {
	SessionID    string
	Dir          string
	ConvertedDir string
	MediaDir     string
	Converted    []string
	Failures     []FileFailure
}

// Cleanup removes the session directory and everything in it.
func (r *BatchResult) Cleanup() error {
	return os.RemoveAll(r.Dir)
}

// ConvertBatch runs the full pipeline for every file independently and
// aggregates the outcome. Files fail individually; only a batch with
// zero successes returns an error (a *BatchError listing every reason).
// The caller owns the returned session directory; see
// (*BatchResult).Cleanup and WithRetention.
func (p *Pipeline) ConvertBatch(ctx context.Context, files []InputFile, requestedFormat string) (*BatchResult, error) {
	if len(files) == 0 {
		return nil, &BatchError{}
	}

	out := DefaultOutputFormat
	if strings.TrimSpace(requestedFormat) != "" {
		out = ResolveOutputFormat(requestedFormat)
	}

	sessionID := uuid.NewString()
	sessionDir := filepath.Join(p.outputRoot, sessionID)

	uploadsDir := filepath.Join(sessionDir, "uploads")
	convertedDir := filepath.Join(sessionDir, "converted")
	mediaDir := filepath.Join(sessionDir, mediaDirName)
	extractRoot := filepath.Join(sessionDir, "extract")

	for _, dir := range []string{uploadsDir, convertedDir, mediaDir, extractRoot} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create session dirs: %w", err)
		}
	}

	// Per-file outcomes, indexed to preserve input order.
	type outcome struct {
		output string
		err    error
	}
	outcomes := make([]outcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, file := range files {
		g.Go(func() error {
			output, err := p.convertFile(gctx, file, out, uploadsDir, convertedDir, mediaDir, extractRoot)
			outcomes[i] = outcome{output: output, err: err}
			return nil
		})
	}
	_ = g.Wait()

	result := &BatchResult{
		SessionID:    sessionID,
		Dir:          sessionDir,
		ConvertedDir: convertedDir,
		MediaDir:     mediaDir,
	}
	for i, o := range outcomes {
		if o.err != nil {
			result.Failures = append(result.Failures, FileFailure{Filename: files[i].Name, Err: o.err})
			continue
		}
		result.Converted = append(result.Converted, o.output)
	}

	// Uploads and extraction scratch are consumed; only converted output
	// and canonical media remain for packaging.
	os.RemoveAll(uploadsDir)
	os.RemoveAll(extractRoot)

	if len(result.Converted) == 0 {
		os.RemoveAll(sessionDir)
		return nil, &BatchError{Failures: result.Failures}
	}
	return result, nil
}

// convertFile runs one file through the whole pipeline: gate, persist,
// normalize, plan, convert, validate, reconcile media. Every error it
// returns is scoped to this file.
func (p *Pipeline) convertFile(ctx context.Context, file InputFile, out Format, uploadsDir, convertedDir, mediaDir, extractRoot string) (string, error) {
	if !AllowedInput(file.Name) {
		return "", &InvalidFileTypeError{Filename: file.Name}
	}

	filename := sanitizeFilename(file.Name)
	inputPath := filepath.Join(uploadsDir, filename)
	if err := os.WriteFile(inputPath, file.Data, 0o644); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}

	in := ResolveInputFormat(filename)

	normalized, err := p.normalizeInput(inputPath, in, uploadsDir)
	if err != nil {
		return "", err
	}
	defer normalized.Cleanup()

	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	outputName := stem + "." + out.Extension()
	outputPath := filepath.Join(convertedDir, outputName)
	extractDir := filepath.Join(extractRoot, stem)

	directive := BuildDirective(normalized.Format, out, normalized.Path, outputPath, extractDir)

	convCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.engine.Convert(convCtx, directive); err != nil {
		return "", err
	}

	if err := ValidateOutput(outputPath, out); err != nil {
		return "", err
	}

	// Media reconciliation is best-effort: a missing image is preferable
	// to losing the whole converted document.
	if directive.MediaDir != "" {
		assets, err := RelocateMedia(extractDir, mediaDir)
		if err != nil {
			p.log.Warn("relocate media", "file", filename, "error", err)
		}
		if len(assets) > 0 && out.IsTextBased() {
			if err := RewriteMediaReferences(outputPath, out, mediaDirName, assets); err != nil {
				p.log.Warn("rewrite media references", "file", filename, "error", err)
			}
		}
	}

	return outputName, nil
}

var reUnsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// sanitizeFilename flattens an upload name to a safe basename.
func sanitizeFilename(name string) string {
	name = filepath.Base(filepath.ToSlash(name))
	name = reUnsafeFilename.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "upload"
	}
	return name
}
