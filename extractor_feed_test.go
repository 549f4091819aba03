package docbundle

import (
	"strings"
	"testing"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Engineering</title>
    <description>Notes from the team</description>
    <item>
      <title>Shipping the pipeline</title>
      <pubDate>Mon, 02 Jan 2006 15:04:05 MST</pubDate>
      <description>&lt;p&gt;We shipped &lt;strong&gt;the thing&lt;/strong&gt;.&lt;/p&gt;</description>
    </item>
    <item>
      <title>Plain text item</title>
      <description>No markup here at all.</description>
    </item>
  </channel>
</rss>`

const atomFixture = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Example</title>
  <updated>2006-01-02T15:04:05Z</updated>
  <entry>
    <title>First entry</title>
    <updated>2006-01-02T15:04:05Z</updated>
    <content type="html">&lt;p&gt;Entry body.&lt;/p&gt;</content>
  </entry>
</feed>`

func TestFeedExtractorRSS(t *testing.T) {
	got, err := NewFeedExtractor().Extract(strings.NewReader(rssFixture))
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"# Example Engineering",
		"Notes from the team",
		"## Shipping the pipeline",
		"Published: Mon, 02 Jan 2006 15:04:05 MST",
		"**the thing**",
		"## Plain text item",
		"No markup here at all.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "<p>") || strings.Contains(got, "<strong>") {
		t.Errorf("HTML leaked into markup:\n%s", got)
	}
}

func TestFeedExtractorAtom(t *testing.T) {
	got, err := NewFeedExtractor().Extract(strings.NewReader(atomFixture))
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"# Atom Example",
		"## First entry",
		"Entry body.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestFeedExtractorJunkInput(t *testing.T) {
	if _, err := NewFeedExtractor().Extract(strings.NewReader("not a feed")); err == nil {
		t.Fatal("Extract() succeeded on junk input")
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"<p>hello <b>world</b></p>", "hello world"},
		{"plain", "plain"},
		{"<div><span>a</span><span>b</span></div>", "ab"},
	}

	for _, tt := range tests {
		if got := stripTags(tt.in); got != tt.want {
			t.Errorf("stripTags(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
