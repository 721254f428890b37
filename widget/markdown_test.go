// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"testing"
	"time"

	"kernelui.dev/geom"
	"kernelui.dev/layout"
	"kernelui.dev/markdown"
)

func TestMarkdownRequestLayoutMeasuresCurrentDocument(t *testing.T) {
	cx, _ := newTestContext()
	src := markdown.NewStreamingMarkdown(0, nil)
	src.Append("# Heading\n\nbody text\n", 0)
	src.Complete()

	m := NewMarkdown(src)

	node := m.RequestLayout(cx)
	if node == 0 {
		t.Fatal("RequestLayout returned the zero NodeID")
	}
	cx.Tree.SetRoot(node)
	cx.Tree.Layout(geom.Point{}, layout.Loose(geom.Size{W: 400, H: 1000}))

	bounds := cx.Tree.Bounds(node)
	if bounds.Size.W <= 0 || bounds.Size.H <= 0 {
		t.Fatalf("layout size = %+v, want both dimensions > 0 for a non-empty document", bounds.Size)
	}
}

func TestMarkdownRequestLayoutReusesNodeAcrossFrames(t *testing.T) {
	cx, _ := newTestContext()
	src := markdown.NewStreamingMarkdown(0, nil)
	src.Append("text\n", 0)
	src.Complete()

	m := NewMarkdown(src)
	first := m.RequestLayout(cx)
	second := m.RequestLayout(cx)
	if first != second {
		t.Fatalf("RequestLayout returned different nodes across frames: %v, %v", first, second)
	}
}

func TestMarkdownPaintEmitsDisplayListCommandsForCurrentDocument(t *testing.T) {
	cx, _ := newTestContext()
	src := markdown.NewStreamingMarkdown(0, nil)
	src.Append("some paragraph text\n", 0)
	src.Complete()

	m := NewMarkdown(src)
	m.RequestLayout(cx)
	cx.Tree.SetRoot(m.Node())
	cx.Tree.Layout(geom.Point{}, layout.Loose(geom.Size{W: 400, H: 1000}))

	before := cx.Display.Len()
	m.Paint(cx)
	if cx.Display.Len() <= before {
		t.Fatal("Paint emitted no display-list commands")
	}
}

func TestMarkdownTicksSourceDebounce(t *testing.T) {
	src := markdown.NewStreamingMarkdown(16*time.Millisecond, nil)
	src.Append("x", 0)
	src.Tick(5 * time.Millisecond)
	if len(src.Document().Blocks) != 0 {
		t.Fatal("Source reparsed before its debounce window elapsed")
	}
}
