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
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/nicholasgasior/docbundle-go/internal/ooxml"
)

// SlideDeckExtractor reconstructs text from binary slide decks (PPTX).
// Slides are emitted in presentation order, one heading per slide, with
// a horizontal rule between slides. Slide titles are detected from
// placeholder metadata or the uppercase/length heuristic; tables, styling
// and embedded images are not reconstructed.
type SlideDeckExtractor struct{}

// NewSlideDeckExtractor creates a new SlideDeckExtractor.
func NewSlideDeckExtractor() *SlideDeckExtractor {
	return &SlideDeckExtractor{}
}

func (e *SlideDeckExtractor) Extract(reader io.ReadSeeker) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read PPTX: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open PPTX ZIP: %w", err)
	}

	slideOrder, err := slideOrder(zr)
	if err != nil {
		return "", fmt.Errorf("get slide order: %w", err)
	}
	if len(slideOrder) == 0 {
		return "", fmt.Errorf("no slides found")
	}

	var md strings.Builder

	for slideNum, slidePath := range slideOrder {
		if slideNum > 0 {
			md.WriteString("\n---\n\n")
		}
		fmt.Fprintf(&md, "# Slide %d\n\n", slideNum+1)

		slideData, err := ooxml.ReadFileFromZip(zr, slidePath)
		if err != nil {
			continue
		}

		md.WriteString(renderSlide(slideData))
	}

	return md.String(), nil
}

// slideOrder returns slide file paths in presentation order, resolved
// through the presentation relationships, falling back to lexical order
// of the slide parts.
func slideOrder(zr *zip.Reader) ([]string, error) {
	presData, err := ooxml.ReadFileFromZip(zr, "ppt/presentation.xml")
	if err != nil {
		return nil, err
	}

	rels, _ := ooxml.ParseRelationships(zr, "ppt/_rels/presentation.xml.rels")

	decoder := xml.NewDecoder(bytes.NewReader(presData))
	var slideRIDs []string

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := tok.(xml.StartElement); ok {
			if se.Name.Local == "sldId" {
				for _, attr := range se.Attr {
					if attr.Name.Local == "id" && strings.Contains(attr.Name.Space, "relationships") {
						slideRIDs = append(slideRIDs, attr.Value)
					}
				}
			}
		}
	}

	var slidePaths []string
	for _, rid := range slideRIDs {
		if rel, ok := rels[rid]; ok {
			slidePaths = append(slidePaths, ooxml.ResolveTarget("ppt/presentation.xml", rel.Target))
		}
	}

	if len(slidePaths) == 0 {
		for _, f := range zr.File {
			if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
				slidePaths = append(slidePaths, f.Name)
			}
		}
		sort.Strings(slidePaths)
	}

	return slidePaths, nil
}

// slideShape is one text-carrying shape on a slide.
type slideShape struct {
	top        int64
	left       int64
	paragraphs []string
	isTitle    bool
}

// renderSlide extracts text shapes from slide XML and formats them as
// intermediate markup, top-to-bottom then left-to-right.
func renderSlide(slideData []byte) string {
	var root xmlNode
	if err := xml.Unmarshal(slideData, &root); err != nil {
		return ""
	}

	var shapes []slideShape
	collectShapes(&root, &shapes)

	sort.SliceStable(shapes, func(i, j int) bool {
		if shapes[i].top != shapes[j].top {
			return shapes[i].top < shapes[j].top
		}
		return shapes[i].left < shapes[j].left
	})

	var md strings.Builder
	for _, shape := range shapes {
		for _, para := range shape.paragraphs {
			para = strings.TrimSpace(para)
			if para == "" {
				continue
			}
			if shape.isTitle || looksLikeHeading(para) {
				md.WriteString("## " + para + "\n")
			} else {
				md.WriteString(para + "\n")
			}
		}
		md.WriteString("\n")
	}

	return md.String()
}

// collectShapes walks the slide XML tree gathering text shapes. Group
// shapes are flattened by recursing into their children.
func collectShapes(node *xmlNode, shapes *[]slideShape) {
	if node.XMLName.Local == "sp" {
		if shape := textShape(node); shape != nil {
			*shapes = append(*shapes, *shape)
		}
		return
	}
	for i := range node.Children {
		collectShapes(&node.Children[i], shapes)
	}
}

// textShape extracts one sp element, or nil if it carries no text.
func textShape(node *xmlNode) *slideShape {
	shape := &slideShape{
		top:  math.MaxInt64,
		left: math.MaxInt64,
	}

	// Title placeholders are marked in the non-visual shape properties.
	if nvSpPr := node.findChild("nvSpPr"); nvSpPr != nil {
		if nvPr := nvSpPr.findChild("nvPr"); nvPr != nil {
			if ph := nvPr.findChild("ph"); ph != nil {
				switch ph.getAttr("type") {
				case "title", "ctrTitle":
					shape.isTitle = true
				}
			}
		}
	}

	shapePosition(node, shape)

	txBody := node.findChild("txBody")
	if txBody == nil {
		return nil
	}

	for _, p := range txBody.findAll("p") {
		var runs []string
		for _, r := range p.findAllDeep("t") {
			if t := r.allText(); t != "" {
				runs = append(runs, t)
			}
		}
		if len(runs) > 0 {
			shape.paragraphs = append(shape.paragraphs, strings.Join(runs, ""))
		}
	}

	if len(shape.paragraphs) == 0 {
		return nil
	}
	return shape
}

// shapePosition reads the shape offset from spPr/xfrm/off.
func shapePosition(node *xmlNode, shape *slideShape) {
	spPr := node.findChild("spPr")
	if spPr == nil {
		return
	}
	xfrm := spPr.findChild("xfrm")
	if xfrm == nil {
		return
	}
	off := xfrm.findChild("off")
	if off == nil {
		return
	}
	if x := off.getAttr("x"); x != "" {
		var v int64
		fmt.Sscanf(x, "%d", &v)
		shape.left = v
	}
	if y := off.getAttr("y"); y != "" {
		var v int64
		fmt.Sscanf(y, "%d", &v)
		shape.top = v
	}
}

// xmlNode is a generic XML tree node.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []xmlNode  `xml:",any"`
	Content  string     `xml:",chardata"`
}

func (n *xmlNode) getAttr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func (n *xmlNode) findChild(local string) *xmlNode {
	for i := range n.Children {
		if n.Children[i].XMLName.Local == local {
			return &n.Children[i]
		}
	}
	return nil
}

func (n *xmlNode) findAll(local string) []*xmlNode {
	var result []*xmlNode
	for i := range n.Children {
		if n.Children[i].XMLName.Local == local {
			result = append(result, &n.Children[i])
		}
	}
	return result
}

// findAllDeep finds all descendants with given local name.
func (n *xmlNode) findAllDeep(local string) []*xmlNode {
	var result []*xmlNode
	for i := range n.Children {
		if n.Children[i].XMLName.Local == local {
			result = append(result, &n.Children[i])
		}
		result = append(result, n.Children[i].findAllDeep(local)...)
	}
	return result
}

// allText extracts all text content recursively.
func (n *xmlNode) allText() string {
	if n.Content != "" {
		return n.Content
	}
	var parts []string
	for i := range n.Children {
		if t := n.Children[i].allText(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "")
}
