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
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MediaAsset is one extracted media file after relocation into the
// canonical media directory.
type MediaAsset struct {
	// OriginalRel is the asset's path relative to the extraction root,
	// as the engine wrote it.
	OriginalRel string
	// FinalName is the collision-safe basename in the media directory.
	FinalName string
	// FinalPath is the absolute relocated path.
	FinalPath string
}

// RelocateMedia moves every file under extractDir into the flat mediaDir.
// Name collisions get a numeric suffix before the extension, incremented
// until free; extension-less assets are typed by content sniffing. The
// result is a single flat namespace no matter how deeply the engine
// nested the originals. A missing extractDir relocates nothing.
func RelocateMedia(extractDir, mediaDir string) ([]MediaAsset, error) {
	if _, err := os.Stat(extractDir); os.IsNotExist(err) {
		return nil, nil
	}
	if err := os.MkdirAll(mediaDir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}

	var assets []MediaAsset

	err := filepath.WalkDir(extractDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(extractDir, p)
		if err != nil {
			rel = d.Name()
		}

		name := d.Name()
		if filepath.Ext(name) == "" {
			if mt, err := mimetype.DetectFile(p); err == nil && mt.Extension() != "" {
				name += mt.Extension()
			}
		}

		finalName := uniqueName(mediaDir, name)
		finalPath := filepath.Join(mediaDir, finalName)
		if err := moveFile(p, finalPath); err != nil {
			return fmt.Errorf("relocate %s: %w", rel, err)
		}

		assets = append(assets, MediaAsset{
			OriginalRel: filepath.ToSlash(rel),
			FinalName:   finalName,
			FinalPath:   finalPath,
		})
		return nil
	})
	if err != nil {
		return assets, err
	}
	return assets, nil
}

// uniqueName returns name if unused in dir, otherwise the first free
// name_N variant with the suffix inserted before the extension.
func uniqueName(dir, name string) string {
	if _, err := os.Stat(filepath.Join(dir, name)); os.IsNotExist(err) {
		return name
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, n, ext)
		if _, err := os.Stat(filepath.Join(dir, candidate)); os.IsNotExist(err) {
			return candidate
		}
	}
}

// moveFile renames src to dst, copying across filesystems if needed.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}

var (
	reAttrRef     = regexp.MustCompile(`(src|href)="([^"]+)"`)
	reInlineImage = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)\)`)
	reRSTImage    = regexp.MustCompile(`(?m)^(\s*\.\.\s+image::\s+)(\S+)`)
	reADocImage   = regexp.MustCompile(`(?m)^image::([^\[\n]+)(\[[^\]]*\])`)
)

// referenceRewriter rewrites one markup syntax's media references.
// resolve maps a referenced path to its relocated form, or reports that
// the path does not correspond to a relocated asset.
type referenceRewriter func(content string, resolve func(string) (string, bool)) string

// rewriters maps text output formats to the rewriter for their markup
// syntax. Formats without an entry are left untouched; rewriting is
// strictly additive per supported syntax, never attempted generically.
var rewriters = map[Format]referenceRewriter{
	FormatHTML:     rewriteAttrRefs,
	"html4":        rewriteAttrRefs,
	"html5":        rewriteAttrRefs,
	"xhtml":        rewriteAttrRefs,
	FormatGFM:      rewriteInlineImages,
	FormatMarkdown: rewriteInlineImages,
	"commonmark":   rewriteInlineImages,
	"commonmark_x": rewriteInlineImages,
	FormatRST:      rewriteRSTImages,
	FormatAsciiDoc: rewriteADocImages,
}

// RewriteMediaReferences rewrites in-document media references in a text
// output to point at the canonical media directory. Only formats with a
// known syntax are touched, and only when at least one asset was
// actually relocated; otherwise the output stays byte-identical.
func RewriteMediaReferences(outputPath string, out Format, mediaDirName string, assets []MediaAsset) error {
	if len(assets) == 0 {
		return nil
	}
	rewrite, ok := rewriters[out]
	if !ok {
		return nil
	}

	// Resolve by basename: the engine writes nested extraction paths,
	// the relocated namespace is flat. Final names map to themselves so
	// a second pass is a no-op.
	names := make(map[string]string, len(assets)*2)
	for _, a := range assets {
		names[path.Base(a.OriginalRel)] = a.FinalName
		names[a.FinalName] = a.FinalName
	}
	resolve := func(ref string) (string, bool) {
		newName, ok := names[path.Base(filepath.ToSlash(ref))]
		if !ok {
			return "", false
		}
		return mediaDirName + "/" + newName, true
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		return fmt.Errorf("read output: %w", err)
	}

	rewritten := rewrite(string(content), resolve)
	if rewritten == string(content) {
		return nil
	}
	return os.WriteFile(outputPath, []byte(rewritten), 0o644)
}

// rewriteAttrRefs rewrites references held in quoted src/href attributes.
func rewriteAttrRefs(content string, resolve func(string) (string, bool)) string {
	return reAttrRef.ReplaceAllStringFunc(content, func(m string) string {
		sub := reAttrRef.FindStringSubmatch(m)
		if target, ok := resolve(sub[2]); ok {
			return sub[1] + `="` + target + `"`
		}
		return m
	})
}

// rewriteInlineImages rewrites markdown ![alt](path) references,
// preserving the alt text.
func rewriteInlineImages(content string, resolve func(string) (string, bool)) string {
	return reInlineImage.ReplaceAllStringFunc(content, func(m string) string {
		sub := reInlineImage.FindStringSubmatch(m)
		if target, ok := resolve(sub[2]); ok {
			return "![" + sub[1] + "](" + target + ")"
		}
		return m
	})
}

// rewriteRSTImages rewrites the path argument of .. image:: directives.
func rewriteRSTImages(content string, resolve func(string) (string, bool)) string {
	return reRSTImage.ReplaceAllStringFunc(content, func(m string) string {
		sub := reRSTImage.FindStringSubmatch(m)
		if target, ok := resolve(sub[2]); ok {
			return sub[1] + target
		}
		return m
	})
}

// rewriteADocImages rewrites the path argument of image::path[attrs]
// macros, preserving the attribute list.
func rewriteADocImages(content string, resolve func(string) (string, bool)) string {
	return reADocImage.ReplaceAllStringFunc(content, func(m string) string {
		sub := reADocImage.FindStringSubmatch(m)
		if target, ok := resolve(strings.TrimSpace(sub[1])); ok {
			return "image::" + target + sub[2]
		}
		return m
	})
}
