// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"kernelui.dev/dlist"
	"kernelui.dev/geom"
	"kernelui.dev/layout"
	"kernelui.dev/markdown"
)

// Markdown renders a streaming markdown document, fading in content that
// has arrived since the last committed parse (spec.md §4.J). The caller
// drives Source (typically from the engine's Update phase, via
// Source.Tick/Append/Complete); RequestLayout/Paint only read its current
// Document and StableThreshold.
type Markdown struct {
	Leaf

	Source *markdown.StreamingMarkdown
	Style  markdown.RenderStyle
	// FadeAlpha multiplies new content's alpha each frame (1 disables
	// fade-in entirely).
	FadeAlpha float32

	node        layout.NodeID
	size        geom.Size
	measureList *dlist.List
}

// NewMarkdown creates a Markdown view over source.
func NewMarkdown(source *markdown.StreamingMarkdown) *Markdown {
	return &Markdown{Source: source, Style: markdown.DefaultRenderStyle(), FadeAlpha: 1}
}

// Node returns m's retained layout node.
func (m *Markdown) Node() layout.NodeID { return m.node }

// RequestLayout measures the current document against the offered width
// by running the same render walk Paint will use (spec.md §4.D: shaping
// and measurement share one code path, the discipline text.Shaper
// documents, extended here to the markdown renderer).
func (m *Markdown) RequestLayout(cx *Context) layout.NodeID {
	measure := func(c layout.Constraints) layout.Dimensions {
		// Measurement shapes and walks the document exactly as Paint will,
		// but into a scratch list discarded after the call -- only the
		// returned Size is kept.
		if m.measureList == nil {
			m.measureList = dlist.NewList(false)
		}
		m.measureList.Clear()
		rc := &markdown.RenderContext{Display: m.measureList, Shaper: cx.Shaper, Fonts: cx.Fonts, Theme: cx.Theme}
		size := markdown.RenderToDisplayListStyled(rc, m.Style, m.Source.Document(), geom.Point{}, c.MaxWidth)
		m.size = size
		return layout.Dimensions{Size: c.Constrain(size)}
	}
	if m.node == 0 {
		m.node = cx.Tree.CreateLeaf(layout.Style{}, measure)
	} else {
		cx.Tree.MarkDirty(m.node)
	}
	return m.node
}

// Paint renders the current document into cx.Display, fading in content
// newer than Source's stable-prefix threshold.
func (m *Markdown) Paint(cx *Context) {
	bounds := cx.Tree.Bounds(m.node)
	rc := &markdown.RenderContext{Display: cx.Display, Shaper: cx.Shaper, Fonts: cx.Fonts, Theme: cx.Theme}
	markdown.RenderWithOpacityStyled(rc, m.Style, m.Source.Document(), bounds.Origin, bounds.Size.W, m.FadeAlpha, m.Source.StableThreshold())
}

var _ Widget = (*Markdown)(nil)
