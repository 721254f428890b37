// SPDX-License-Identifier: Unlicense OR MIT

// Package geom implements the floating-point geometry primitives shared by
// every layer of the render kernel: points, sizes, axis-aligned bounds,
// rounded-corner radii and the discriminated length unit used by layout
// styles.
//
// Point is kernelui.dev/f32's Point; the named Size/Bounds/CornerRadii/
// Length types the kernel's data model calls for are defined here.
package geom

import "kernelui.dev/f32"

// Point is a two dimensional point, aliasing f32.Point so geometry and
// display-list code share one representation.
type Point = f32.Point

// Size is a width/height pair.
type Size struct {
	W, H float32
}

// Bounds is an axis-aligned rectangle defined by an origin and a size.
// It stores an origin point plus a size rather than Min/Max corners;
// Min and Max derive the corners.
type Bounds struct {
	Origin Point
	Size   Size
}

// Rect builds Bounds from two corners, canonicalizing them.
func Rect(minX, minY, maxX, maxY float32) Bounds {
	if maxX < minX {
		minX, maxX = maxX, minX
	}
	if maxY < minY {
		minY, maxY = maxY, minY
	}
	return Bounds{
		Origin: Point{X: minX, Y: minY},
		Size:   Size{W: maxX - minX, H: maxY - minY},
	}
}

// Min is the top-left corner.
func (b Bounds) Min() Point { return b.Origin }

// Max is the bottom-right corner.
func (b Bounds) Max() Point {
	return Point{X: b.Origin.X + b.Size.W, Y: b.Origin.Y + b.Size.H}
}

// Contains reports whether p lies within b using half-open intervals on
// the right and bottom edges, per spec.md §4.A.
func (b Bounds) Contains(p Point) bool {
	max := b.Max()
	return p.X >= b.Origin.X && p.X < max.X && p.Y >= b.Origin.Y && p.Y < max.Y
}

// Empty reports whether b has no area.
func (b Bounds) Empty() bool {
	return b.Size.W <= 0 || b.Size.H <= 0
}

// Intersect returns the overlap of b and o. The result may be Empty.
func (b Bounds) Intersect(o Bounds) Bounds {
	bMax, oMax := b.Max(), o.Max()
	minX, minY := maxf(b.Origin.X, o.Origin.X), maxf(b.Origin.Y, o.Origin.Y)
	maxX, maxY := minf(bMax.X, oMax.X), minf(bMax.Y, oMax.Y)
	if maxX < minX {
		maxX = minX
	}
	if maxY < minY {
		maxY = minY
	}
	return Bounds{Origin: Point{X: minX, Y: minY}, Size: Size{W: maxX - minX, H: maxY - minY}}
}

// Union returns the smallest Bounds containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	bMax, oMax := b.Max(), o.Max()
	minX, minY := minf(b.Origin.X, o.Origin.X), minf(b.Origin.Y, o.Origin.Y)
	maxX, maxY := maxf(bMax.X, oMax.X), maxf(bMax.Y, oMax.Y)
	return Bounds{Origin: Point{X: minX, Y: minY}, Size: Size{W: maxX - minX, H: maxY - minY}}
}

// Inflate grows (or, with negative amounts, shrinks) b by dx horizontally
// and dy vertically on every edge.
func (b Bounds) Inflate(dx, dy float32) Bounds {
	return Bounds{
		Origin: Point{X: b.Origin.X - dx, Y: b.Origin.Y - dy},
		Size:   Size{W: b.Size.W + 2*dx, H: b.Size.H + 2*dy},
	}
}

// Translate offsets b by p.
func (b Bounds) Translate(p Point) Bounds {
	b.Origin = b.Origin.Add(p)
	return b
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// CornerRadii holds four non-negative corner radii for a rounded quad, in
// top-left, top-right, bottom-right, bottom-left order.
type CornerRadii struct {
	TopLeft, TopRight, BottomRight, BottomLeft float32
}

// Uniform returns a CornerRadii with all four corners set to r.
func Uniform(r float32) CornerRadii {
	return CornerRadii{TopLeft: r, TopRight: r, BottomRight: r, BottomLeft: r}
}

// Zero reports whether every corner radius is zero.
func (c CornerRadii) Zero() bool {
	return c.TopLeft == 0 && c.TopRight == 0 && c.BottomRight == 0 && c.BottomLeft == 0
}

// LengthKind discriminates the unit a Length is expressed in.
type LengthKind uint8

const (
	// LengthAuto lets the layout engine pick the length. It is the zero
	// value of LengthKind, so an unset Length (the common case for
	// Style fields a caller doesn't care to specify) behaves as auto
	// rather than as an explicit zero size.
	LengthAuto LengthKind = iota
	// LengthAbs is an absolute pixel length.
	LengthAbs
	// LengthPercent is a percentage of the parent's corresponding axis.
	LengthPercent
)

// Length is a discriminated-union layout length: an absolute pixel value,
// a percentage of the parent, or auto.
type Length struct {
	Kind  LengthKind
	Value float32 // pixels for LengthAbs, 0..1 for LengthPercent
}

// Abs constructs an absolute-pixel Length.
func Abs(px float32) Length { return Length{Kind: LengthAbs, Value: px} }

// Percent constructs a percentage Length; frac is a 0..1 fraction.
func Percent(frac float32) Length { return Length{Kind: LengthPercent, Value: frac} }

// Auto is the auto-sized Length.
var Auto = Length{Kind: LengthAuto}

// Resolve computes the concrete pixel length given the parent's extent
// along the same axis. Auto resolves to fallback.
func (l Length) Resolve(parent, fallback float32) float32 {
	switch l.Kind {
	case LengthAbs:
		return l.Value
	case LengthPercent:
		return l.Value * parent
	default:
		return fallback
	}
}
