// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"time"

	"kernelui.dev/dlist"
	"kernelui.dev/geom"
	"kernelui.dev/gesture"
	"kernelui.dev/input"
	"kernelui.dev/layout"
	"kernelui.dev/reactive"
)

// ScrollView clips a single child to its own bounds and scrolls it along
// the vertical axis in response to wheel and drag gestures, with fling
// momentum on release (spec.md §4.I: "owns a scroll offset signal,
// handles wheel + drag").
type ScrollView struct {
	Style layout.Style
	Child Widget

	// Offset is the scroll position, in pixels from the top of Child.
	// It is a reactive.Signal so effects depending on scroll position
	// (e.g. a sticky header) re-run when it changes.
	Offset *reactive.Signal[float32]

	scroll gesture.Scroll
	node   layout.NodeID
	extent float32 // Child's measured main-axis size, cached for clamping
	height float32 // this view's own viewport extent, cached for clamping
}

// NewScrollView creates a ScrollView whose offset signal lives on rt.
func NewScrollView(rt *reactive.Runtime, child Widget) *ScrollView {
	return &ScrollView{Child: child, Offset: reactive.NewSignal(rt, float32(0))}
}

// Node returns v's retained layout node.
func (v *ScrollView) Node() layout.NodeID { return v.node }

// Widgets exposes the child so PaintTree/InstallHandlers visit it.
func (v *ScrollView) Widgets() []Widget { return []Widget{v.Child} }

// RequestLayout lays out Child at its natural size (unconstrained along
// the scroll axis) as v's sole child; the clip to v's own bounds happens
// in Paint via PushClip/PopClip.
func (v *ScrollView) RequestLayout(cx *Context) layout.NodeID {
	child := v.Child.RequestLayout(cx)
	if v.node == 0 {
		v.node = cx.Tree.CreateNode(v.Style)
	} else {
		cx.Tree.SetStyle(v.node, v.Style)
	}
	cx.Tree.SetChildren(v.node, []layout.NodeID{child})
	return v.node
}

// Paint clips to the viewport, translates the child's painted commands
// up by the current offset, and lets PaintTree paint Child within that
// clip. The renderer only honors identity/translation transforms
// (spec.md §4.E), so the offset is pushed as a translation-only
// dlist.Affine.
func (v *ScrollView) Paint(cx *Context) {
	bounds := cx.Tree.Bounds(v.node)
	v.height = bounds.Size.H
	childBounds := cx.Tree.Bounds(v.Child.Node())
	v.extent = childBounds.Size.H

	cx.Display.PushClip(bounds)
	cx.Display.PushTransform(dlist.Translate(geom.Point{X: 0, Y: -v.Offset.Peek()}))
}

// PostPaint closes the clip/transform pair Paint opened, satisfying
// PostPainter so PaintTree calls it right after Child finishes painting.
func (v *ScrollView) PostPaint(cx *Context) {
	cx.Display.PopTransform()
	cx.Display.PopClip()
}

// HandleEvent feeds pointer/wheel events to the scroll recognizer,
// clamping and writing the resulting offset to the Signal.
func (v *ScrollView) HandleEvent(ev input.Event) input.Disposition {
	axis := geom.Point{X: 0, Y: 1}
	delta, ok := v.scroll.Feed(ev, axis, ev.Time)
	if !ok {
		return input.Ignored
	}
	v.applyDelta(delta)
	return input.Handled
}

// Tick advances an in-progress fling by dt seconds, applying the
// resulting scroll delta; it does nothing unless the recognizer is
// flinging. kernel.Engine does not call it.
func (v *ScrollView) Tick(dt time.Duration) {
	if v.scroll.State() != gesture.StateFlinging {
		return
	}
	delta, _ := v.scroll.Tick(float32(dt.Seconds()))
	v.applyDelta(delta)
}

func (v *ScrollView) applyDelta(delta float32) {
	if delta == 0 {
		return
	}
	max := v.extent - v.height
	if max < 0 {
		max = 0
	}
	v.Offset.Update(func(cur float32) float32 {
		next := cur + delta
		if next < 0 {
			next = 0
		}
		if next > max {
			next = max
		}
		return next
	})
}
