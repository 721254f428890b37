// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"golang.org/x/image/math/fixed"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"

	"kernelui.dev/io/system"
)

// Shaper turns styled UTF-8 text into ShapedRuns, wrapping at soft-wrap
// points that honor grapheme and word boundaries (spec.md §4.D). A Shaper
// is not safe for concurrent use; the kernel owns exactly one, used only
// from the UI thread.
type Shaper struct {
	collection *Collection
	hb         shaping.HarfbuzzShaper
	wrapper    shaping.LineWrapper
}

// NewShaper creates a Shaper resolving fonts against collection.
func NewShaper(collection *Collection) *Shaper {
	return &Shaper{collection: collection}
}

// Input is everything Shape needs to produce wrapped, measured lines.
type Input struct {
	Text     string
	Style    TextStyle
	MaxWidth float32 // 0 means unconstrained
	Wrap     WrapPolicy
}

func direction(d system.Direction) di.Direction {
	if d == system.RTL {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// Shape produces one ShapedRun per wrapped line of in.Text. Measurement
// and painting both call this method, so there is exactly one code path
// from text to glyph positions, ruling out the measured/painted width
// divergence spec.md calls a bug.
func (s *Shaper) Shape(in Input) ([]ShapedRun, error) {
	runes := []rune(in.Text)
	if len(runes) == 0 {
		return nil, nil
	}
	face, ok := s.collection.Resolve(in.Style.Font)
	if !ok {
		return []ShapedRun{plainRun(runes, in.Style)}, nil
	}

	ppem := fixed.I(int(in.Style.PxPerEm))
	shapeInput := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: direction(in.Style.Locale.Direction),
		Face:      face.Face(),
		Size:      ppem,
		Language:  language.NewLanguage(in.Style.Locale.Language),
	}
	out := s.hb.Shape(shapeInput)

	if in.Wrap == WrapNone || in.MaxWidth <= 0 {
		return []ShapedRun{toRun(in.Style.Font, out)}, nil
	}

	wc := shaping.WrapConfig{}
	maxWidth := int(fixed.I(int(in.MaxWidth)))
	lines, _ := s.wrapper.WrapParagraph(wc, maxWidth, runes, out)

	runs := make([]ShapedRun, 0, len(lines))
	for _, line := range lines {
		runs = append(runs, toLine(in.Style.Font, line))
	}
	return runs, nil
}

// toLine merges a wrapped line's runs (bidi/face splits within one line
// are possible in general, though the kernel's single-Font Shape calls
// only ever produce one) into a single ShapedRun.
func toLine(font Font, line shaping.Line) ShapedRun {
	var glyphs []Glyph
	var metrics LineMetrics
	var x fixed.Int26_6
	for _, out := range line {
		for _, g := range out.Glyphs {
			glyphs = append(glyphs, Glyph{
				ID:        GlyphID(g.GlyphID),
				Cluster:   g.ClusterIndex,
				RuneCount: g.RuneCount,
				X:         x,
				Advance:   g.XAdvance,
				Ascent:    out.LineBounds.Ascent,
				Descent:   -out.LineBounds.Descent,
			})
			x += g.XAdvance
		}
		if a := fixedToFloat(out.LineBounds.Ascent); a > metrics.Ascent {
			metrics.Ascent = a
		}
		if d := fixedToFloat(-out.LineBounds.Descent); d > metrics.Descent {
			metrics.Descent = d
		}
		if g := fixedToFloat(out.LineBounds.Gap); g > metrics.Gap {
			metrics.Gap = g
		}
		metrics.Width += fixedToFloat(out.Advance)
	}
	return ShapedRun{Font: font, Glyphs: glyphs, Metrics: metrics}
}

func toRun(font Font, out shaping.Output) ShapedRun {
	glyphs := make([]Glyph, 0, len(out.Glyphs))
	var x fixed.Int26_6
	for _, g := range out.Glyphs {
		glyphs = append(glyphs, Glyph{
			ID:        GlyphID(g.GlyphID),
			Cluster:   g.ClusterIndex,
			RuneCount: g.RuneCount,
			X:         x,
			Advance:   g.XAdvance,
			Ascent:    out.LineBounds.Ascent,
			Descent:   -out.LineBounds.Descent,
		})
		x += g.XAdvance
	}
	return ShapedRun{
		Font:   font,
		Glyphs: glyphs,
		Metrics: LineMetrics{
			Ascent:  fixedToFloat(out.LineBounds.Ascent),
			Descent: fixedToFloat(-out.LineBounds.Descent),
			Gap:     fixedToFloat(out.LineBounds.Gap),
			Width:   fixedToFloat(out.Advance),
		},
	}
}

// plainRun produces a tofu-glyph run (every glyph ID zero) when no face
// resolves for the requested font, matching spec.md's "unmatched glyphs
// render tofu".
func plainRun(runes []rune, style TextStyle) ShapedRun {
	glyphs := make([]Glyph, len(runes))
	advance := fixed.I(int(style.PxPerEm * 0.6))
	var x fixed.Int26_6
	for i := range runes {
		glyphs[i] = Glyph{ID: 0, Cluster: i, RuneCount: 1, X: x, Advance: advance}
		x += advance
	}
	return ShapedRun{
		Font:   style.Font,
		Glyphs: glyphs,
		Metrics: LineMetrics{
			Ascent:  style.PxPerEm * 0.8,
			Descent: style.PxPerEm * 0.2,
			Width:   fixedToFloat(x),
		},
	}
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
