package docbundle

import (
	"fmt"
	"io"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"
)

// FeedExtractor reconstructs intermediate markup from RSS and Atom
// feeds: the feed title as top-level heading, one section per item, with
// HTML item bodies flattened to markdown.
type FeedExtractor struct{}

// NewFeedExtractor creates a new FeedExtractor.
func NewFeedExtractor() *FeedExtractor {
	return &FeedExtractor{}
}

func (e *FeedExtractor) Extract(reader io.ReadSeeker) (string, error) {
	fp := gofeed.NewParser()
	feed, err := fp.Parse(reader)
	if err != nil {
		return "", fmt.Errorf("parse feed: %w", err)
	}

	var b strings.Builder

	if feed.Title != "" {
		fmt.Fprintf(&b, "# %s\n", feed.Title)
	}
	if feed.Description != "" {
		fmt.Fprintf(&b, "%s\n", feed.Description)
	}
	b.WriteString("\n")

	for _, item := range feed.Items {
		if item.Title != "" {
			fmt.Fprintf(&b, "## %s\n", item.Title)
		}

		if item.Published != "" {
			fmt.Fprintf(&b, "Published: %s\n\n", item.Published)
		} else if item.Updated != "" {
			fmt.Fprintf(&b, "Updated: %s\n\n", item.Updated)
		}

		content := item.Content
		if content == "" {
			content = item.Description
		}
		if content != "" {
			// Feed bodies are frequently HTML; flatten them.
			if strings.Contains(content, "<") && strings.Contains(content, ">") {
				if md, err := flattenHTML(content); err == nil {
					content = md
				} else {
					content = stripTags(content)
				}
			}
			b.WriteString(content)
			b.WriteString("\n")
		}

		b.WriteString("\n")
	}

	return b.String(), nil
}

// stripTags drops markup from an HTML fragment, keeping text nodes.
// Used as a fallback when markdown conversion fails on malformed HTML.
func stripTags(htmlStr string) string {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return htmlStr
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.TrimSpace(b.String())
}

// flattenHTML converts an HTML fragment to markdown.
func flattenHTML(htmlStr string) (string, error) {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithHeadingStyle("atx"),
			),
		),
	)
	return conv.ConvertString(htmlStr)
}
