// SPDX-License-Identifier: Unlicense OR MIT

// Package dlist implements the retained per-frame display list (spec.md
// §3, §4.C): an ordered sequence of drawing commands plus a balanced
// push/pop clip and transform stack.
//
// dlist generalizes the teacher's op.Ops "implicit mutable state stack"
// (kernelui.dev's op package documented the same Push/Pop discipline over a
// byte-encoded instruction stream) into a plain slice of tagged command
// structs, which is simpler to walk from both the renderer and the hit
// tester without a decode step.
package dlist

import (
	"errors"

	"kernelui.dev/colorx"
	"kernelui.dev/geom"
)

// NodeID is the stable integer handle a widget's layout node is known by.
// Zero is reserved for "no node."
type NodeID uint32

// CmdKind discriminates the variant stored in a Cmd.
type CmdKind uint8

const (
	CmdQuad CmdKind = iota
	CmdGlyphRun
	CmdImage
	CmdPushClip
	CmdPopClip
	CmdPushTransform
	CmdPopTransform
)

// ImageHandle identifies a decoded image registered with the renderer.
type ImageHandle uint32

// FontHandle identifies a font face registered with the text system.
type FontHandle uint32

// GlyphID is a font-specific glyph index.
type GlyphID uint32

// PositionedGlyph is one glyph of a ShapedRun, placed relative to the run's
// origin (spec.md §3).
type PositionedGlyph struct {
	Glyph     GlyphID
	Advance   float32
	Offset    geom.Point
	Font      FontHandle
	PixelSize float32
}

// Affine is a 2D affine transform. The renderer (spec.md §4.E) only
// supports identity and integer translation; paint code needing rotation
// or scale must pre-transform geometry before emitting commands.
type Affine struct {
	Offset geom.Point
}

// Identity is the no-op Affine.
var Identity = Affine{}

// Translate returns an Affine that adds to the current translation.
func Translate(p geom.Point) Affine { return Affine{Offset: p} }

// Cmd is one display-list entry. Which fields are meaningful depends on
// Kind; non-stack commands optionally carry a Node for hit testing.
type Cmd struct {
	Kind CmdKind
	Node NodeID

	// CmdQuad
	Bounds      geom.Bounds
	Fill        colorx.Hsla
	BorderColor colorx.Hsla
	BorderWidth float32
	Corners     geom.CornerRadii

	// CmdGlyphRun
	Origin geom.Point
	Glyphs []PositionedGlyph
	Text   colorx.Hsla

	// CmdImage
	Image ImageHandle

	// CmdPushClip
	Clip geom.Bounds

	// CmdPushTransform
	Transform Affine
}

// ErrUnbalancedStack is returned by a debug List's Pop* when Pop is
// called without a matching Push; a release List ignores the imbalance.
var ErrUnbalancedStack = errors.New("dlist: unbalanced push/pop")

// List is the per-frame retained command list. The zero value is ready to
// use; call Clear between frames to reuse its storage (spec.md §3:
// "Display lists are built afresh each frame").
type List struct {
	cmds       []Cmd
	clipDepth  int
	xformDepth int
	debug      bool
}

// NewList creates a List. debug makes an unmatched Pop* return
// ErrUnbalancedStack; with debug false an unmatched Pop* is dropped
// without recording anything, and no zero-size fallback is applied.
func NewList(debug bool) *List {
	return &List{debug: debug}
}

// Clear empties the list for reuse without releasing its backing array.
func (l *List) Clear() {
	l.cmds = l.cmds[:0]
	l.clipDepth = 0
	l.xformDepth = 0
}

// Len returns the number of recorded commands.
func (l *List) Len() int { return len(l.cmds) }

// Cmds returns the recorded commands in emission order. The slice is only
// valid until the next Clear.
func (l *List) Cmds() []Cmd { return l.cmds }

// PushQuad records a rounded, bordered quad.
func (l *List) PushQuad(node NodeID, bounds geom.Bounds, fill, border colorx.Hsla, borderWidth float32, corners geom.CornerRadii) {
	l.cmds = append(l.cmds, Cmd{
		Kind: CmdQuad, Node: node,
		Bounds: bounds, Fill: fill, BorderColor: border, BorderWidth: borderWidth, Corners: corners,
	})
}

// PushGlyphRun records a shaped, positioned run of glyphs.
func (l *List) PushGlyphRun(node NodeID, origin geom.Point, glyphs []PositionedGlyph, fill colorx.Hsla) {
	l.cmds = append(l.cmds, Cmd{
		Kind: CmdGlyphRun, Node: node,
		Origin: origin, Glyphs: glyphs, Text: fill,
	})
}

// PushImage records an image blit.
func (l *List) PushImage(node NodeID, bounds geom.Bounds, handle ImageHandle) {
	l.cmds = append(l.cmds, Cmd{Kind: CmdImage, Node: node, Bounds: bounds, Image: handle})
}

// PushClip intersects the current clip with bounds and pushes the result.
// Must be balanced by PopClip within the same paint pass.
func (l *List) PushClip(bounds geom.Bounds) {
	l.clipDepth++
	l.cmds = append(l.cmds, Cmd{Kind: CmdPushClip, Clip: bounds})
}

// PopClip restores the clip state from before the matching PushClip.
// In a debug List, popping without a matching push returns
// ErrUnbalancedStack; a release List silently ignores the imbalance and
// records no command, so the renderer never sees the unmatched pop.
func (l *List) PopClip() error {
	if l.clipDepth == 0 {
		if l.debug {
			return ErrUnbalancedStack
		}
		return nil
	}
	l.clipDepth--
	l.cmds = append(l.cmds, Cmd{Kind: CmdPopClip})
	return nil
}

// PushTransform pushes an affine transform relative to the current one.
func (l *List) PushTransform(a Affine) {
	l.xformDepth++
	l.cmds = append(l.cmds, Cmd{Kind: CmdPushTransform, Transform: a})
}

// PopTransform restores the transform from before the matching
// PushTransform.
func (l *List) PopTransform() error {
	if l.xformDepth == 0 {
		if l.debug {
			return ErrUnbalancedStack
		}
		return nil
	}
	l.xformDepth--
	l.cmds = append(l.cmds, Cmd{Kind: CmdPopTransform})
	return nil
}

// Balanced reports whether every push so far has a matching pop. A
// complete paint pass must leave this true (spec.md §3 invariant, §8
// quantified invariant).
func (l *List) Balanced() bool {
	return l.clipDepth == 0 && l.xformDepth == 0
}
