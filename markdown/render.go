// SPDX-License-Identifier: Unlicense OR MIT

package markdown

import (
	"golang.org/x/image/math/fixed"

	"kernelui.dev/colorx"
	"kernelui.dev/dlist"
	"kernelui.dev/geom"
	"kernelui.dev/text"
	"kernelui.dev/theme"
)

// RenderContext carries the collaborators RenderToDisplayList needs: the
// display list commands are emitted into, the shaper that turns span text
// into glyph runs, the handle registry resolving fonts to dlist
// font handles, and the theme resolving color tokens.
type RenderContext struct {
	Display *dlist.List
	Shaper  *text.Shaper
	Fonts   *text.HandleRegistry
	Theme   *theme.Theme
}

// RenderStyle carries the sizing and fonts the renderer shapes blocks
// with. Paint color always comes from the active Theme, never from here.
type RenderStyle struct {
	Font        text.Font
	MonoFont    text.Font
	BodySize    float32
	HeadingStep float32 // px added per heading level closer to 1
	LineGap     float32
	BlockGap    float32
	CodePadding float32
	ListIndent  float32
}

// DefaultRenderStyle returns reasonable sizes for an IDE-class surface.
func DefaultRenderStyle() RenderStyle {
	return RenderStyle{
		BodySize:    14,
		HeadingStep: 3,
		LineGap:     4,
		BlockGap:    8,
		CodePadding: 8,
		ListIndent:  16,
	}
}

// RenderToDisplayList walks doc's blocks in order, shaping each into
// glyph runs and emitting background/divider/code-frame quads starting at
// origin and wrapping inline text at maxWidth. It returns the total size
// consumed (spec.md §4.J).
//
// Inline spans are shaped independently rather than merged into one
// per-line run across style boundaries (e.g. "**bold** text" shapes as
// two runs placed side by side); a single long span still soft-wraps
// within itself. Full cross-span text reflow is out of scope for a
// kernel-level renderer.
func RenderToDisplayList(cx *RenderContext, doc *MarkdownDocument, origin geom.Point, maxWidth float32) geom.Size {
	return render(cx, DefaultRenderStyle(), doc, origin, maxWidth, 1, -1)
}

// RenderWithOpacity behaves like RenderToDisplayList but multiplies the
// alpha of every glyph and fill belonging to a span at or after
// stableThreshold (a byte offset into the canonical buffer, e.g. from
// StreamingMarkdown.StableThreshold) by alpha, fading in streaming
// arrivals (spec.md §4.J). A negative stableThreshold fades nothing.
func RenderWithOpacity(cx *RenderContext, doc *MarkdownDocument, origin geom.Point, maxWidth float32, alpha float32, stableThreshold int) geom.Size {
	return render(cx, DefaultRenderStyle(), doc, origin, maxWidth, alpha, stableThreshold)
}

// RenderToDisplayListStyled and RenderWithOpacityStyled accept an
// explicit RenderStyle for callers that don't want the defaults.
func RenderToDisplayListStyled(cx *RenderContext, style RenderStyle, doc *MarkdownDocument, origin geom.Point, maxWidth float32) geom.Size {
	return render(cx, style, doc, origin, maxWidth, 1, -1)
}

func RenderWithOpacityStyled(cx *RenderContext, style RenderStyle, doc *MarkdownDocument, origin geom.Point, maxWidth float32, alpha float32, stableThreshold int) geom.Size {
	return render(cx, style, doc, origin, maxWidth, alpha, stableThreshold)
}

func render(cx *RenderContext, style RenderStyle, doc *MarkdownDocument, origin geom.Point, maxWidth float32, alpha float32, stableThreshold int) geom.Size {
	var y float32
	var maxX float32
	for _, b := range doc.Blocks {
		size := renderBlock(cx, style, b, geom.Point{X: origin.X, Y: origin.Y + y}, maxWidth, alpha, stableThreshold)
		y += size.H + style.BlockGap
		if size.W > maxX {
			maxX = size.W
		}
	}
	if len(doc.Blocks) > 0 {
		y -= style.BlockGap
	}
	return geom.Size{W: maxX, H: y}
}

func blockFont(style RenderStyle, b MarkdownBlock) (text.Font, float32) {
	switch b.Kind {
	case BlockHeading:
		level := b.Level
		if level < 1 {
			level = 1
		}
		px := style.BodySize + style.HeadingStep*float32(7-level)
		return style.Font, px
	case BlockCodeFence:
		return style.MonoFont, style.BodySize
	default:
		return style.Font, style.BodySize
	}
}

func renderBlock(cx *RenderContext, style RenderStyle, b MarkdownBlock, origin geom.Point, maxWidth float32, alpha float32, stableThreshold int) geom.Size {
	switch b.Kind {
	case BlockThematicBreak:
		return renderThematicBreak(cx, origin, maxWidth)
	case BlockCodeFence:
		return renderCodeFence(cx, style, b, origin, maxWidth, alpha, stableThreshold)
	default:
		return renderInlineBlock(cx, style, b, origin, maxWidth, alpha, stableThreshold)
	}
}

func renderThematicBreak(cx *RenderContext, origin geom.Point, maxWidth float32) geom.Size {
	const h float32 = 1
	cx.Display.PushQuad(0, geom.Bounds{Origin: origin, Size: geom.Size{W: maxWidth, H: h}}, cx.Theme.Color(theme.Border), colorx.Hsla{}, 0, geom.CornerRadii{})
	return geom.Size{W: maxWidth, H: h}
}

func renderInlineBlock(cx *RenderContext, style RenderStyle, b MarkdownBlock, origin geom.Point, maxWidth float32, alpha float32, stableThreshold int) geom.Size {
	font, px := blockFont(style, b)
	indent := float32(b.Level) * style.ListIndent
	lineHeight := px + style.LineGap

	x, y := indent, float32(0)
	maxX := indent

	if b.Kind == BlockListItem {
		bullet := "•"
		cx.Display.PushGlyphRun(0, geom.Point{X: origin.X + indent - style.ListIndent*0.6, Y: origin.Y + y + px}, bulletGlyphs(cx, font, px, bullet), cx.Theme.Color(theme.TextPrimary))
	}
	if b.Kind == BlockBlockquote {
		cx.Display.PushQuad(0, geom.Bounds{Origin: geom.Point{X: origin.X, Y: origin.Y}, Size: geom.Size{W: 2, H: lineHeight}}, cx.Theme.Color(theme.Border), colorx.Hsla{}, 0, geom.CornerRadii{})
	}

	for _, span := range b.Spans {
		if span.Text == "\n" {
			x = indent
			y += lineHeight
			continue
		}
		ts := text.TextStyle{Font: font, PxPerEm: px}
		if span.Bold {
			ts.Font.Weight = text.Bold
		}
		if span.Italic {
			ts.Font.Style = text.Italic
		}
		if span.Code {
			ts.Font = style.MonoFont
		}
		runs, err := cx.Shaper.Shape(text.Input{Text: span.Text, Style: ts, Wrap: text.WrapNone})
		if err != nil {
			continue
		}
		for _, run := range runs {
			if x > indent && x+run.Metrics.Width > maxWidth {
				x = indent
				y += lineHeight
			}
			fill := spanColor(cx.Theme, b, span)
			fill = fadeSpan(fill, span, alpha, stableThreshold)
			emitRun(cx, run, geom.Point{X: origin.X + x, Y: origin.Y + y}, fill)
			if span.Strike {
				midY := origin.Y + y + run.Metrics.Ascent*0.6
				cx.Display.PushQuad(0, geom.Bounds{Origin: geom.Point{X: origin.X + x, Y: midY}, Size: geom.Size{W: run.Metrics.Width, H: 1}}, fill, colorx.Hsla{}, 0, geom.CornerRadii{})
			}
			x += run.Metrics.Width
			if x > maxX {
				maxX = x
			}
		}
	}
	y += lineHeight

	if b.Kind == BlockHeading && b.Level <= 2 {
		cx.Display.PushQuad(0, geom.Bounds{Origin: geom.Point{X: origin.X, Y: origin.Y + y}, Size: geom.Size{W: maxWidth, H: 1}}, cx.Theme.Color(theme.Border), colorx.Hsla{}, 0, geom.CornerRadii{})
		y += style.LineGap
	}

	return geom.Size{W: maxX, H: y}
}

func renderCodeFence(cx *RenderContext, style RenderStyle, b MarkdownBlock, origin geom.Point, maxWidth float32, alpha float32, stableThreshold int) geom.Size {
	px := style.BodySize
	lineHeight := px + style.LineGap
	pad := style.CodePadding

	x, y := pad, pad
	maxX := pad

	type placed struct {
		run   text.ShapedRun
		pos   geom.Point
		fill  colorx.Hsla
	}
	var glyphRuns []placed

	for _, span := range b.Spans {
		lines := splitKeepNewlines(span.Text)
		for _, ln := range lines {
			if ln == "\n" {
				x = pad
				y += lineHeight
				continue
			}
			ts := text.TextStyle{Font: style.MonoFont, PxPerEm: px}
			runs, err := cx.Shaper.Shape(text.Input{Text: ln, Style: ts, Wrap: text.WrapNone})
			if err != nil {
				continue
			}
			fill := spanColor(cx.Theme, b, span)
			fill = fadeSpan(fill, span, alpha, stableThreshold)
			for _, run := range runs {
				glyphRuns = append(glyphRuns, placed{run: run, pos: geom.Point{X: x, Y: y}, fill: fill})
				x += run.Metrics.Width
				if x > maxX {
					maxX = x
				}
			}
		}
	}
	y += lineHeight

	frameW := maxX + pad
	if frameW < maxWidth {
		frameW = maxWidth
	}
	frameH := y + pad

	cx.Display.PushQuad(0, geom.Bounds{Origin: origin, Size: geom.Size{W: frameW, H: frameH}}, cx.Theme.Color(theme.BackgroundSunken), cx.Theme.Color(theme.Border), 1, geom.Uniform(4))

	for _, g := range glyphRuns {
		emitRun(cx, g.run, geom.Point{X: origin.X + g.pos.X, Y: origin.Y + g.pos.Y}, g.fill)
	}

	return geom.Size{W: frameW, H: frameH}
}

func splitKeepNewlines(s string) []string {
	var out []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			out = append(out, s[start:i], "\n")
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

func spanColor(th *theme.Theme, b MarkdownBlock, span StyledSpan) colorx.Hsla {
	switch {
	case span.Highlighted:
		return th.Color(span.SyntaxToken)
	case span.LinkURL != "":
		return th.Color(theme.Accent)
	default:
		return th.Color(theme.TextPrimary)
	}
}

// fadeSpan multiplies fill's alpha by alpha when span starts at or after
// stableThreshold -- the byte offset boundary separating content already
// rendered in a prior committed parse from content new to this one.
func fadeSpan(fill colorx.Hsla, span StyledSpan, alpha float32, stableThreshold int) colorx.Hsla {
	if stableThreshold < 0 || span.Start < stableThreshold {
		return fill
	}
	return fill.WithAlpha(fill.Alpha * alpha)
}

func emitRun(cx *RenderContext, run text.ShapedRun, origin geom.Point, fill colorx.Hsla) {
	font := cx.Fonts.Handle(run.Font)
	glyphs := make([]dlist.PositionedGlyph, len(run.Glyphs))
	for i, g := range run.Glyphs {
		glyphs[i] = dlist.PositionedGlyph{
			Glyph:     dlist.GlyphID(g.ID),
			Advance:   fixedToPx(g.Advance),
			Offset:    geom.Point{X: fixedToPx(g.X), Y: fixedToPx(g.Y)},
			Font:      font,
			PixelSize: run.Metrics.Ascent + run.Metrics.Descent,
		}
	}
	cx.Display.PushGlyphRun(0, origin, glyphs, fill)
}

func bulletGlyphs(cx *RenderContext, font text.Font, px float32, bullet string) []dlist.PositionedGlyph {
	runs, err := cx.Shaper.Shape(text.Input{Text: bullet, Style: text.TextStyle{Font: font, PxPerEm: px}, Wrap: text.WrapNone})
	if err != nil || len(runs) == 0 {
		return nil
	}
	handle := cx.Fonts.Handle(font)
	run := runs[0]
	glyphs := make([]dlist.PositionedGlyph, len(run.Glyphs))
	for i, g := range run.Glyphs {
		glyphs[i] = dlist.PositionedGlyph{Glyph: dlist.GlyphID(g.ID), Advance: fixedToPx(g.Advance), Offset: geom.Point{X: fixedToPx(g.X)}, Font: handle, PixelSize: px}
	}
	return glyphs
}

func fixedToPx(v fixed.Int26_6) float32 { return float32(v) / 64 }
