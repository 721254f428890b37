// SPDX-License-Identifier: Unlicense OR MIT

// Package text implements the kernel's text pipeline: shaping through
// harfbuzz, grapheme/word-boundary-aware line wrapping, a deterministic
// font fallback chain, and a glyph atlas with page eviction (spec.md
// §4.D).
//
// Shaping and measurement share one code path -- Shaper.Shape is the only
// place that calls into the underlying shaper -- so the divergence
// spec.md calls "a bug" between measured and painted width cannot occur
// by construction.
package text

import (
	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/math/fixed"

	"kernelui.dev/dlist"
	"kernelui.dev/io/system"
)

// GlyphID is a shaper-assigned identifier, stable for a given face, size
// and glyph index, matching dlist.GlyphID so shaped glyphs feed directly
// into display-list glyph runs.
type GlyphID = dlist.GlyphID

// Weight is a subset of the OpenType/CSS weight scale the kernel's font
// matching understands.
type Weight uint16

const (
	Normal Weight = 400
	Medium Weight = 500
	Bold   Weight = 700
)

// Style selects an italic or upright face.
type Style uint8

const (
	Regular Style = iota
	Italic
)

// Font names the typeface a run of text should be shaped with. Typeface
// identifies the family ("Go", "system-ui"); Variant further narrows it
// ("Mono", "Smallcaps") the way the built-in Go fonts are split into
// separate files per variant rather than one variable font. Collection
// resolves a Font to a concrete Face, falling back through an ordered
// chain when no exact match is registered (spec.md §4.D: "attempt
// configured family first, then ordered fallback chain").
type Font struct {
	Typeface string
	Variant  string
	Weight   Weight
	Style    Style
}

// Face is a shapeable representation of a font, satisfied by
// font/opentype.Face.
type Face interface {
	Face() gotext.Face
}

// Collection is a registry of Faces addressed by Font. The zero value is
// ready to use.
type Collection struct {
	entries []collectionEntry
}

type collectionEntry struct {
	font Font
	face Face
}

// Register adds face under fnt. Later registrations with the same Font
// replace earlier ones.
func (c *Collection) Register(fnt Font, face Face) {
	for i, e := range c.entries {
		if e.font == fnt {
			c.entries[i].face = face
			return
		}
	}
	c.entries = append(c.entries, collectionEntry{font: fnt, face: face})
}

// Resolve returns the Face best matching fnt: an exact match if one is
// registered, else the first registered entry sharing Typeface and
// Variant, else the first sharing Typeface, else the first registered
// Face (spec.md's deterministic fallback chain). It reports false only when the Collection is empty.
func (c *Collection) Resolve(fnt Font) (Face, bool) {
	for _, e := range c.entries {
		if e.font == fnt {
			return e.face, true
		}
	}
	for _, e := range c.entries {
		if e.font.Typeface == fnt.Typeface && e.font.Variant == fnt.Variant {
			return e.face, true
		}
	}
	for _, e := range c.entries {
		if e.font.Typeface == fnt.Typeface {
			return e.face, true
		}
	}
	if len(c.entries) > 0 {
		return c.entries[0].face, true
	}
	return nil, false
}

// TextStyle is the full set of shaping-affecting attributes for one run,
// plus the paint-only color carried alongside it (spec.md §3).
type TextStyle struct {
	Font     Font
	PxPerEm  float32
	Color    uint32 // packed for hashing in layout caches; paint code uses colorx.Hsla directly
	Locale   system.Locale
}

// WrapPolicy controls where Shape is permitted to break a line.
type WrapPolicy uint8

const (
	// WrapWord breaks only at word boundaries, falling back to
	// grapheme boundaries when a single word exceeds the max width.
	WrapWord WrapPolicy = iota
	// WrapNone disables soft wrapping; a long line overflows MaxWidth.
	WrapNone
)

// Glyph is one shaped glyph before layout positioning, carrying the
// shaper's raw fixed-point metrics (spec.md §4.D). X/Y are relative to
// the run's dot.
type Glyph struct {
	ID        GlyphID
	Cluster   int
	RuneCount int
	X         fixed.Int26_6
	Y         fixed.Int26_6
	Advance   fixed.Int26_6
	Ascent    fixed.Int26_6
	Descent   fixed.Int26_6
}

// LineMetrics describes the vertical extent of one shaped line.
type LineMetrics struct {
	Ascent, Descent, Gap float32
	Width                float32
}

// ShapedRun is one line's worth of glyphs from a single Font, ready for
// measurement or painting.
type ShapedRun struct {
	Font    Font
	Glyphs  []Glyph
	Metrics LineMetrics
}
