// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"golang.org/x/image/math/fixed"

	"kernelui.dev/colorx"
	"kernelui.dev/dlist"
	"kernelui.dev/geom"
	"kernelui.dev/layout"
	"kernelui.dev/text"
	"kernelui.dev/theme"
)

func fixedToPx(v fixed.Int26_6) float32 { return float32(v) / 64 }

// Text lays out and paints one or more shaped, wrapped lines (spec.md
// §4.I: "shaped run(s) with wrap"). Measurement and painting both read
// the same cached ShapedRuns, produced by the node's Measurer each time
// layout measures it, through the shared Shaper.Shape path -- the single-code-path discipline text.Shaper
// itself documents.
type Text struct {
	Leaf

	Content  string
	Style    text.TextStyle
	MaxLines int
	Wrap     text.WrapPolicy
	// ColorToken resolves this run's fill against the active Theme at
	// paint time, so a theme swap recolors text without a re-shape.
	ColorToken theme.ColorToken

	node layout.NodeID
	runs []text.ShapedRun
}

// Node returns t's retained layout node.
func (t *Text) Node() layout.NodeID { return t.node }

// RequestLayout creates (or reuses) a leaf node whose Measurer shapes
// Content against the constraints it's offered, caching the resulting
// runs for Paint.
func (t *Text) RequestLayout(cx *Context) layout.NodeID {
	measure := func(c layout.Constraints) layout.Dimensions {
		in := text.Input{
			Text:     t.Content,
			Style:    t.Style,
			MaxWidth: c.MaxWidth,
			Wrap:     t.Wrap,
		}
		runs, err := cx.Shaper.Shape(in)
		if err != nil {
			runs = nil
		}
		if t.MaxLines > 0 && len(runs) > t.MaxLines {
			runs = runs[:t.MaxLines]
		}
		t.runs = runs

		var w, h float32
		for _, r := range runs {
			if r.Metrics.Width > w {
				w = r.Metrics.Width
			}
			h += r.Metrics.Ascent + r.Metrics.Descent + r.Metrics.Gap
		}
		size := c.Constrain(geom.Size{W: w, H: h})
		var baseline float32
		if len(runs) > 0 {
			baseline = runs[0].Metrics.Ascent
		}
		return layout.Dimensions{Size: size, Baseline: baseline}
	}
	if t.node == 0 {
		t.node = cx.Tree.CreateLeaf(layout.Style{}, measure)
	}
	return t.node
}

// Paint emits one glyph run per shaped line, stacking lines down the
// node's bounds from its top edge.
func (t *Text) Paint(cx *Context) {
	bounds := cx.Tree.Bounds(t.node)
	origin := bounds.Origin
	font := cx.Fonts.Handle(t.Style.Font)
	var y float32
	for _, run := range t.runs {
		y += run.Metrics.Ascent
		glyphs := make([]dlist.PositionedGlyph, len(run.Glyphs))
		for i, g := range run.Glyphs {
			glyphs[i] = dlist.PositionedGlyph{
				Glyph:     dlist.GlyphID(g.ID),
				Advance:   fixedToPx(g.Advance),
				Offset:    geom.Point{X: fixedToPx(g.X), Y: y},
				Font:      font,
				PixelSize: t.Style.PxPerEm,
			}
		}
		var fill colorx.Hsla
		if cx.Theme != nil {
			fill = cx.Theme.Color(t.ColorToken)
		}
		cx.Display.PushGlyphRun(t.node, origin, glyphs, fill)
		y += run.Metrics.Descent + run.Metrics.Gap
	}
}

// HandleEvent is not overridden; Text embeds Leaf and never consumes
// input directly (a Button wraps one instead).
var _ Widget = (*Text)(nil)
