// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"kernelui.dev/geom"
	"kernelui.dev/input"
	"kernelui.dev/layout"
	"kernelui.dev/reactive"
)

// VirtualList binds a reactive.Signal holding a slice of T to a render
// function, materializing widget instances only for the visible range
// plus overscan (spec.md §4.I: "binds to a Signal<Vec<T>> and a render
// function"). The visible range itself is layout.Virtual's contract
// (§4.F): leading and trailing spacer Divs stand in for off-screen items
// so the scrolled content is positioned "as if all items existed"
// without ever laying out a node for them.
type VirtualList[T any] struct {
	Items        *reactive.Signal[[]T]
	EstimateSize float32
	Overscan     int
	Render       func(item T, index int) Widget

	// ViewportHint seeds the visible-range computation on the very
	// first layout pass, before any frame has measured the scroll
	// view's own bounds. Later frames use the previous frame's actual
	// viewport height instead.
	ViewportHint float32

	scroll   *ScrollView
	content  Div
	leading  Div
	trailing Div
	rows     []Widget
}

// NewVirtualList creates a VirtualList reading items from items and
// building one widget per visible index via render.
func NewVirtualList[T any](rt *reactive.Runtime, items *reactive.Signal[[]T], estimateSize float32, render func(T, int) Widget) *VirtualList[T] {
	v := &VirtualList[T]{Items: items, EstimateSize: estimateSize, Render: render}
	v.content.Style.Direction = layout.Column
	v.scroll = NewScrollView(rt, &v.content)
	return v
}

// Node returns v's retained layout node: the scroll view's clip node.
func (v *VirtualList[T]) Node() layout.NodeID { return v.scroll.Node() }

// Widgets exposes the wrapping ScrollView so PaintTree/InstallHandlers
// reach the materialized rows through it.
func (v *VirtualList[T]) Widgets() []Widget { return []Widget{v.scroll} }

// Paint emits nothing of its own; the ScrollView and its content Div
// (visited via Widgets) paint everything.
func (v *VirtualList[T]) Paint(cx *Context) {}

// HandleEvent is never called directly: Node() returns the ScrollView's
// node, so the router dispatches there instead.
func (v *VirtualList[T]) HandleEvent(input.Event) input.Disposition { return input.Ignored }

// RequestLayout computes this frame's visible range from the previous
// frame's viewport height (or ViewportHint, on the first frame),
// rebuilds the leading-spacer/rows/trailing-spacer children of the
// content Div, and lays out the ScrollView wrapping it.
func (v *VirtualList[T]) RequestLayout(cx *Context) layout.NodeID {
	items := v.Items.Get()
	virt := layout.Virtual{Count: len(items), EstimateSize: v.EstimateSize, Overscan: v.Overscan}

	viewport := cx.Tree.Bounds(v.scroll.Node()).Size.H
	if viewport <= 0 {
		viewport = v.ViewportHint
	}
	visible := virt.VisibleRange(v.scroll.Offset.Peek(), viewport)

	v.rows = v.rows[:0]
	for i := visible.Start; i < visible.End && i < len(items); i++ {
		v.rows = append(v.rows, v.Render(items[i], i))
	}

	v.leading.Style.Height = geom.Abs(float32(visible.Start) * v.EstimateSize)
	trailingCount := len(items) - visible.End
	if trailingCount < 0 {
		trailingCount = 0
	}
	v.trailing.Style.Height = geom.Abs(float32(trailingCount) * v.EstimateSize)

	v.content.Children = v.content.Children[:0]
	v.content.Children = append(v.content.Children, &v.leading)
	v.content.Children = append(v.content.Children, v.rows...)
	v.content.Children = append(v.content.Children, &v.trailing)

	return v.scroll.RequestLayout(cx)
}
