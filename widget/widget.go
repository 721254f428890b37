// SPDX-License-Identifier: Unlicense OR MIT

// Package widget implements the kernel's widget model: the Widget
// interface every node in the UI tree satisfies, and the core widgets
// built on top of it -- Div, Text, Button, ScrollView, VirtualList and
// TextInput (spec.md §4.I).
//
// The request_layout/paint/handle_event split follows the teacher's own
// widget.Label/widget.Clickable/widget.Editor shape: a widget is a small
// struct holding its own retained state (a layout.NodeID, a gesture
// recognizer, shaped glyphs) that gets reused across frames rather than
// rebuilt, exactly as gio's widgets keep their op.Ops-era state alive
// between Layout calls.
package widget

import (
	"kernelui.dev/colorx"
	"kernelui.dev/dlist"
	"kernelui.dev/geom"
	"kernelui.dev/input"
	"kernelui.dev/layout"
	"kernelui.dev/reactive"
	"kernelui.dev/text"
	"kernelui.dev/theme"
	"kernelui.dev/unit"
)

// Context is the bundle of kernel subsystems a widget's three methods are
// allowed to touch (spec.md §4.I: "paint ... interacts only with
// cx.display_list and cx.text"). Widgets never reach past Context into a
// subsystem's internals.
type Context struct {
	Tree    *layout.Tree
	Display *dlist.List
	Shaper  *text.Shaper
	Fonts   *text.HandleRegistry
	Theme   *theme.Theme
	Router  *input.Router
	Runtime *reactive.Runtime
	Metric  unit.Metric
}

// Px resolves a theme-scale Value to device pixels under cx's metric.
func (cx *Context) Px(v unit.Value) float32 {
	return float32(cx.Metric.Px(v))
}

// Widget is the contract every node in the UI tree satisfies (spec.md
// §4.I). A widget keeps its own layout.NodeID between frames, so Paint
// and HandleEvent never need it passed back in -- they read it from the
// same struct RequestLayout populated.
type Widget interface {
	// RequestLayout declares this widget's layout.Node -- creating it on
	// first call and reusing the same NodeID on every later call -- and
	// its children, returning the NodeID so a parent can place it in its
	// own children list.
	RequestLayout(cx *Context) layout.NodeID

	// Node returns the NodeID RequestLayout last created or reused.
	// Valid only after RequestLayout has run at least once.
	Node() layout.NodeID

	// Paint emits this widget's own display-list commands, using
	// cx.Tree.Bounds on its retained node for the rectangle layout
	// computed this frame. Paint never recurses into children; PaintTree
	// does that, in layout-tree order.
	Paint(cx *Context)

	// HandleEvent processes one input.Event already clipped to this
	// widget's bounds by the router, and reports whether it was
	// consumed.
	HandleEvent(ev input.Event) input.Disposition
}

// Container is implemented by widgets that place other widgets
// (Div, ScrollView, VirtualList), so PaintTree and InstallHandlers can
// walk the whole tree without knowing about every concrete widget type.
type Container interface {
	Widget
	Widgets() []Widget
}

// PostPainter is implemented by containers that must close something
// they opened in Paint only after their children have painted --
// ScrollView's clip/transform push is the only one today. PaintTree calls
// PostPaint, if present, after the last child returns.
type PostPainter interface {
	PostPaint(cx *Context)
}

// PaintTree paints w, then recursively paints every widget Container.Widgets
// reports, in declaration order -- the same order RequestLayout walked
// them in, so display-list emission order matches the layout tree's
// traversal order (spec.md §5: "display-list commands are emitted in
// paint-tree traversal order").
func PaintTree(cx *Context, w Widget) {
	w.Paint(cx)
	if c, ok := w.(Container); ok {
		for _, child := range c.Widgets() {
			PaintTree(cx, child)
		}
	}
	if p, ok := w.(PostPainter); ok {
		p.PostPaint(cx)
	}
}

// InstallHandlers registers w.HandleEvent (and recursively every
// descendant's) with r against each widget's own node, so the router's
// bubbling dispatch reaches every interactive widget without the tree
// builder having to call SetHandler itself.
func InstallHandlers(r *input.Router, w Widget) {
	r.SetHandler(w.Node(), w.HandleEvent)
	if c, ok := w.(Container); ok {
		for _, child := range c.Widgets() {
			InstallHandlers(r, child)
		}
	}
}

// Leaf is embedded by widgets that never react to input (Text), so only
// the widgets that actually recognize gestures need to implement
// HandleEvent themselves.
type Leaf struct{}

// HandleEvent ignores every event.
func (Leaf) HandleEvent(input.Event) input.Disposition { return input.Ignored }

// Div is a container widget painting an optional rounded, bordered
// background behind its children (spec.md §4.I: "container with
// background/border/corners from style").
type Div struct {
	Leaf

	Style       layout.Style
	Fill        colorx.Hsla
	HasFill     bool
	Border      colorx.Hsla
	BorderWidth float32
	Corners     geom.CornerRadii

	Children []Widget

	node     layout.NodeID
	children []layout.NodeID
}

// RequestLayout creates (or reuses) this Div's node, lays out every
// child first, and declares them as this node's children.
func (d *Div) RequestLayout(cx *Context) layout.NodeID {
	d.children = d.children[:0]
	for _, c := range d.Children {
		d.children = append(d.children, c.RequestLayout(cx))
	}
	if d.node == 0 {
		d.node = cx.Tree.CreateNode(d.Style)
	} else {
		cx.Tree.SetStyle(d.node, d.Style)
	}
	cx.Tree.SetChildren(d.node, d.children)
	return d.node
}

// Node returns d's retained layout node.
func (d *Div) Node() layout.NodeID { return d.node }

// Widgets returns d's children, in declaration order, satisfying
// Container.
func (d *Div) Widgets() []Widget { return d.Children }

// Paint draws the background quad, if any. PaintTree visits Children
// separately, in the same order RequestLayout declared them.
func (d *Div) Paint(cx *Context) {
	if !d.HasFill {
		return
	}
	bounds := cx.Tree.Bounds(d.node)
	cx.Display.PushQuad(d.node, bounds, d.Fill, d.Border, d.BorderWidth, d.Corners)
}
