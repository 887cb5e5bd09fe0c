package markdown_test

import (
	"strings"
	"testing"

	"vocabuilder/internal/platform/markdown"
)

var words = markdown.Block{Start: "<!-- words:start -->", End: "<!-- words:end -->"}

func TestFrontmatterRoundTrip(t *testing.T) {
	t.Parallel()

	type meta struct {
		Week int `yaml:"week"`
		Day  int `yaml:"day"`
	}
	content, err := markdown.RenderFrontmatter(meta{Week: 2, Day: 3}, "# Notes\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	decoded, body, err := markdown.SplitFrontmatter(strings.ReplaceAll(content, "\n", "\r\n"))
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if decoded["week"] != 2 || decoded["day"] != 3 {
		t.Fatalf("meta = %#v", decoded)
	}
	if body != "\n# Notes\n" {
		t.Fatalf("body = %q", body)
	}
}

func TestSplitFrontmatterWithoutHeader(t *testing.T) {
	t.Parallel()

	meta, body, err := markdown.SplitFrontmatter("plain text")
	if err != nil || len(meta) != 0 || body != "plain text" {
		t.Fatalf("meta=%v body=%q err=%v", meta, body, err)
	}
	if _, _, err := markdown.SplitFrontmatter("---\nweek: 1\n"); err == nil {
		t.Fatalf("expected missing separator error")
	}
}

func TestBlockReplaceKeepsSurroundingNotes(t *testing.T) {
	t.Parallel()

	body := words.Replace("", "- one\n")
	if body != "<!-- words:start -->\n- one\n<!-- words:end -->\n" {
		t.Fatalf("fresh body = %q", body)
	}

	body = "my notes\n\n" + body + "\nafter"
	body = words.Replace(body, "- two")
	if !strings.HasPrefix(body, "my notes\n\n") || !strings.HasSuffix(body, "\nafter") {
		t.Fatalf("surrounding text lost: %q", body)
	}
	inner, ok := words.Extract(body)
	if !ok || inner != "- two" {
		t.Fatalf("extract = %q, %v", inner, ok)
	}
}

func TestBlockReplaceAppendsWhenMissing(t *testing.T) {
	t.Parallel()

	got := words.Replace("notes", "- x")
	if got != "notes\n\n<!-- words:start -->\n- x\n<!-- words:end -->\n" {
		t.Fatalf("got %q", got)
	}
	if _, ok := words.Extract("notes"); ok {
		t.Fatalf("extract on missing block should fail")
	}
}
