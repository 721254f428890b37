// SPDX-License-Identifier: Unlicense OR MIT

package markdown

import (
	"testing"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

func newTestMarkdown() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extension.Strikethrough))
}

func TestStreamingMarkdownParsesBlocksOnComplete(t *testing.T) {
	m := NewStreamingMarkdown(16*time.Millisecond, NewHighlighter())
	m.Append("# Title\n\nSome **bold** text.\n", 0)
	m.Complete()

	doc := m.Document()
	if len(doc.Blocks) != 2 {
		t.Fatalf("len(doc.Blocks) = %d, want 2 (heading + paragraph)", len(doc.Blocks))
	}
	if doc.Blocks[0].Kind != BlockHeading || doc.Blocks[0].Level != 1 {
		t.Fatalf("Blocks[0] = %+v, want a level-1 heading", doc.Blocks[0])
	}

	var sawBold bool
	for _, span := range doc.Blocks[1].Spans {
		if span.Bold && span.Text == "bold" {
			sawBold = true
		}
	}
	if !sawBold {
		t.Fatalf("Blocks[1].Spans = %+v, want a bold \"bold\" span", doc.Blocks[1].Spans)
	}
}

func TestStreamingMarkdownDebounceDelaysReparse(t *testing.T) {
	m := NewStreamingMarkdown(16*time.Millisecond, nil)
	m.Append("hello", 0)
	m.Tick(5 * time.Millisecond) // within the debounce window
	if len(m.Document().Blocks) != 0 {
		t.Fatal("Tick before the debounce interval elapsed reparsed early")
	}

	m.Tick(20 * time.Millisecond) // past the window
	if len(m.Document().Blocks) == 0 {
		t.Fatal("Tick after the debounce interval elapsed did not reparse")
	}
}

func TestStreamingMarkdownZeroDebounceReparsesImmediately(t *testing.T) {
	m := NewStreamingMarkdown(0, nil)
	m.Append("hello", 0)
	m.Tick(0)
	if len(m.Document().Blocks) == 0 {
		t.Fatal("Tick with debounce disabled did not reparse")
	}
}

func TestStreamingMarkdownStableThresholdAdvancesOnGrowth(t *testing.T) {
	m := NewStreamingMarkdown(0, nil)
	m.Append("one two three", 0)
	m.Complete()
	if got := m.StableThreshold(); got != 0 {
		t.Fatalf("StableThreshold after first parse = %d, want 0", got)
	}

	m.Append(" four five", 0)
	m.Complete()
	if got, want := m.StableThreshold(), len("one two three"); got != want {
		t.Fatalf("StableThreshold after growth = %d, want %d (length before the second append)", got, want)
	}
}

func TestStreamingMarkdownStableThresholdResetsOnShrink(t *testing.T) {
	m := NewStreamingMarkdown(0, nil)
	m.Append("a long first line of content", 0)
	m.Complete()

	m.buf = m.buf[:3] // simulate the caller resetting/truncating the buffer
	m.dirty = true
	m.Complete()

	if got := m.StableThreshold(); got != 0 {
		t.Fatalf("StableThreshold after shrink = %d, want 0 (spec.md §9 OQ3: start over on shrink)", got)
	}
}

func TestParseDocumentHandlesFencedCodeBlockWithHighlighter(t *testing.T) {
	doc := parseDocument(newTestMarkdown(), NewHighlighter(), []byte("```go\nfunc f() {}\n```\n"))
	if len(doc.Blocks) != 1 || doc.Blocks[0].Kind != BlockCodeFence {
		t.Fatalf("doc.Blocks = %+v, want a single BlockCodeFence", doc.Blocks)
	}
	if doc.Blocks[0].Language != "go" {
		t.Fatalf("Language = %q, want %q", doc.Blocks[0].Language, "go")
	}
	var sawHighlighted bool
	for _, s := range doc.Blocks[0].Spans {
		if s.Highlighted {
			sawHighlighted = true
		}
	}
	if !sawHighlighted {
		t.Fatal("fenced go block produced no highlighted spans")
	}
}

func TestParseDocumentNestsListItems(t *testing.T) {
	doc := parseDocument(newTestMarkdown(), nil, []byte("- one\n- two\n"))
	if len(doc.Blocks) != 2 {
		t.Fatalf("len(doc.Blocks) = %d, want 2", len(doc.Blocks))
	}
	for _, b := range doc.Blocks {
		if b.Kind != BlockListItem || b.Level != 1 {
			t.Fatalf("block = %+v, want a level-1 BlockListItem", b)
		}
	}
}
