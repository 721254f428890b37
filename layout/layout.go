// SPDX-License-Identifier: Unlicense OR MIT

// Package layout implements the kernel's retained layout tree: a
// dirty-driven flex/stack box model with percentage/auto constraint
// resolution and a virtualization contract for large scrollable
// collections (spec.md §4.F).
//
// The node tree and dirty-propagation shape follow the teacher's own
// widget.Editor/widget.List retained-state pattern (a long-lived node
// reused across frames, invalidated explicitly rather than rebuilt), with
// the two-pass flex algorithm itself grounded on CSS flexbox as gio's own
// layout.Flex already partially implements (base/grow/shrink
// distribution).
package layout

import "kernelui.dev/geom"

// Direction is the main axis a Flex container lays children along.
type Direction uint8

const (
	Row Direction = iota
	Column
)

// Justify distributes free space along the main axis.
type Justify uint8

const (
	JustifyStart Justify = iota
	JustifyEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
)

// Align positions children along the cross axis.
type Align uint8

const (
	AlignStart Align = iota
	AlignEnd
	AlignCenter
	AlignStretch
)

// Overflow controls how a node treats content exceeding its bounds.
type Overflow uint8

const (
	OverflowVisible Overflow = iota
	OverflowClip
	OverflowScroll
)

// Style captures every layout-affecting property of a Node (spec.md
// §4.F). Width/Height/Padding/Margin use geom.Length so absolute,
// percentage and auto values share one representation.
type Style struct {
	Direction Direction
	Justify   Justify
	Align     Align
	Gap       float32
	Overflow  Overflow

	Width, Height geom.Length
	PaddingTop    geom.Length
	PaddingRight  geom.Length
	PaddingBottom geom.Length
	PaddingLeft   geom.Length
	MarginTop     geom.Length
	MarginRight   geom.Length
	MarginBottom  geom.Length
	MarginLeft    geom.Length

	// Grow and Shrink are this node's flex factors when it is a child
	// of a Flex container; Basis is its pre-distribution main-axis size.
	Grow, Shrink float32
	Basis        geom.Length
}

// Constraints bounds the size a node may resolve to, following the
// two-pass flex algorithm: min is the floor (e.g. from Stretch/grow),
// max is the ceiling (the parent's available space).
type Constraints struct {
	MinWidth, MaxWidth   float32
	MinHeight, MaxHeight float32
}

// Tight returns constraints that force exactly the given size.
func Tight(size geom.Size) Constraints {
	return Constraints{MinWidth: size.W, MaxWidth: size.W, MinHeight: size.H, MaxHeight: size.H}
}

// Loose returns constraints with a zero floor and the given ceiling.
func Loose(size geom.Size) Constraints {
	return Constraints{MaxWidth: size.W, MaxHeight: size.H}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Constrain fits size within c.
func (c Constraints) Constrain(size geom.Size) geom.Size {
	return geom.Size{
		W: clamp(size.W, c.MinWidth, c.MaxWidth),
		H: clamp(size.H, c.MinHeight, c.MaxHeight),
	}
}

// Dimensions is the outcome of measuring or laying out a node: its
// resolved size plus an optional baseline offset used by text-aligned
// rows.
type Dimensions struct {
	Size     geom.Size
	Baseline float32
}

// Measurer is supplied by leaf nodes (text runs, images) that compute
// their own size given constraints rather than laying out children.
type Measurer func(c Constraints) Dimensions
