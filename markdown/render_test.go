// SPDX-License-Identifier: Unlicense OR MIT

package markdown

import (
	"testing"

	"kernelui.dev/dlist"
	"kernelui.dev/geom"
	"kernelui.dev/text"
	"kernelui.dev/theme"
)

func newTestRenderContext() *RenderContext {
	var collection text.Collection
	return &RenderContext{
		Display: dlist.NewList(true),
		Shaper:  text.NewShaper(&collection),
		Fonts:   text.NewHandleRegistry(),
		Theme:   theme.Dark(),
	}
}

func TestRenderToDisplayListEmitsGlyphRunsAndReturnsNonZeroSize(t *testing.T) {
	cx := newTestRenderContext()
	doc := parseDocument(newTestMarkdown(), nil, []byte("hello world\n"))

	size := RenderToDisplayList(cx, doc, geom.Point{}, 400)
	if size.W <= 0 || size.H <= 0 {
		t.Fatalf("RenderToDisplayList size = %+v, want both dimensions > 0", size)
	}

	var sawGlyphRun bool
	for _, cmd := range cx.Display.Cmds() {
		if cmd.Kind == dlist.CmdGlyphRun {
			sawGlyphRun = true
		}
	}
	if !sawGlyphRun {
		t.Fatal("RenderToDisplayList emitted no CmdGlyphRun commands")
	}
}

func TestRenderCodeFenceEmitsFrameQuad(t *testing.T) {
	cx := newTestRenderContext()
	doc := parseDocument(newTestMarkdown(), NewHighlighter(), []byte("```go\nx := 1\n```\n"))

	RenderToDisplayList(cx, doc, geom.Point{}, 400)

	var sawFrame bool
	for _, cmd := range cx.Display.Cmds() {
		if cmd.Kind == dlist.CmdQuad && cmd.Fill == cx.Theme.Color(theme.BackgroundSunken) {
			sawFrame = true
		}
	}
	if !sawFrame {
		t.Fatal("fenced code block did not emit a BackgroundSunken frame quad")
	}
}

func TestRenderWithOpacityFadesContentAfterStableThreshold(t *testing.T) {
	cx := newTestRenderContext()
	// "stable text " and "more" are distinct AST text nodes (the emphasis
	// markers split them), giving two spans with two different Start
	// offsets to fade independently.
	source := []byte("stable text **more**\n")
	doc := parseDocument(newTestMarkdown(), nil, source)

	const stableThreshold = 12 // end of "stable text ", before "**more**"
	RenderWithOpacity(cx, doc, geom.Point{}, 400, 0.25, stableThreshold)

	var sawFaded, sawOpaque bool
	full := cx.Theme.Color(theme.TextPrimary)
	for _, cmd := range cx.Display.Cmds() {
		if cmd.Kind != dlist.CmdGlyphRun {
			continue
		}
		if cmd.Text.Alpha < full.Alpha {
			sawFaded = true
		} else {
			sawOpaque = true
		}
	}
	if !sawFaded || !sawOpaque {
		t.Fatalf("expected both a faded (new) and an opaque (stable) glyph run, got faded=%v opaque=%v", sawFaded, sawOpaque)
	}
}

func TestRenderWithOpacityNegativeThresholdFadesNothing(t *testing.T) {
	cx := newTestRenderContext()
	doc := parseDocument(newTestMarkdown(), nil, []byte("anything at all\n"))

	RenderWithOpacity(cx, doc, geom.Point{}, 400, 0.1, -1)

	full := cx.Theme.Color(theme.TextPrimary)
	for _, cmd := range cx.Display.Cmds() {
		if cmd.Kind == dlist.CmdGlyphRun && cmd.Text.Alpha != full.Alpha {
			t.Fatalf("glyph run alpha = %v with a negative stableThreshold, want unfaded %v", cmd.Text.Alpha, full.Alpha)
		}
	}
}
