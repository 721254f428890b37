// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"kernelui.dev/colorx"
	"kernelui.dev/geom"
	"kernelui.dev/gesture"
	"kernelui.dev/input"
	"kernelui.dev/layout"
	"kernelui.dev/theme"
)

// ClickRecord is one completed click, queued for a reader to drain
// (spec.md §4.I: "click events"), mirroring teacher widget.Clickable's
// Click/Clicks/Clicked trio but built on this kernel's gesture.Click
// rather than an io/pointer event queue.
type ClickRecord struct {
	NumClicks int
}

// Clickable recognizes clicks over whatever bounds its owner paints,
// queuing completed clicks for Clicked/Clicks to drain.
type Clickable struct {
	click  gesture.Click
	clicks []ClickRecord
}

// Pressed reports whether the pointer is currently down on this widget.
func (c *Clickable) Pressed() bool { return c.click.Pressed() }

// Hovered reports whether the pointer is currently over this widget.
func (c *Clickable) Hovered() bool { return c.click.Hovered() }

// Clicked reports whether a click is pending and, if so, removes it.
func (c *Clickable) Clicked() bool {
	if len(c.clicks) == 0 {
		return false
	}
	n := copy(c.clicks, c.clicks[1:])
	c.clicks = c.clicks[:n]
	return true
}

// HandleEvent feeds ev to the underlying recognizer, queuing a
// ClickRecord whenever a press/release completes a click.
func (c *Clickable) HandleEvent(ev input.Event) input.Disposition {
	res, ok := c.click.Feed(ev)
	if !ok {
		return input.Ignored
	}
	if res.Kind == gesture.KindClick {
		c.clicks = append(c.clicks, ClickRecord{NumClicks: res.NumClicks})
	}
	return input.Handled
}

// Button is a clickable area with a text label and pressed/hovered
// visual states (spec.md §4.I: "click events + visual states").
type Button struct {
	Label string
	Style layout.Style

	Clickable Clickable

	node  layout.NodeID
	label Text
}

// NewButton creates a Button with the given label, styled with the
// theme's default corner radius and border.
func NewButton(label string) *Button {
	return &Button{Label: label}
}

// Node returns b's retained layout node.
func (b *Button) Node() layout.NodeID { return b.node }

// RequestLayout lays out the label as b's sole child.
func (b *Button) RequestLayout(cx *Context) layout.NodeID {
	b.label.Content = b.Label
	b.label.ColorToken = theme.TextPrimary
	if b.label.Style.PxPerEm == 0 {
		b.label.Style.PxPerEm = 14
	}
	child := b.label.RequestLayout(cx)

	if b.node == 0 {
		b.node = cx.Tree.CreateNode(b.Style)
	} else {
		cx.Tree.SetStyle(b.node, b.Style)
	}
	cx.Tree.SetChildren(b.node, []layout.NodeID{child})
	return b.node
}

// Widgets exposes the label so PaintTree/InstallHandlers visit it.
func (b *Button) Widgets() []Widget { return []Widget{&b.label} }

// Paint fills the background using the theme token matching the
// button's current interaction state, then lets PaintTree paint the
// label on top.
func (b *Button) Paint(cx *Context) {
	bounds := cx.Tree.Bounds(b.node)
	bg := theme.BackgroundElevated
	switch {
	case b.Clickable.Pressed():
		bg = theme.AccentMuted
	case b.Clickable.Hovered():
		bg = theme.Accent
	}
	var fill, border colorx.Hsla
	var width, radius float32
	if cx.Theme != nil {
		fill = cx.Theme.Color(bg)
		border = cx.Theme.Color(theme.Border)
		width = cx.Px(cx.Theme.BorderWidth)
		radius = cx.Px(cx.Theme.CornerRadius)
	}
	cx.Display.PushQuad(b.node, bounds, fill, border, width, geom.Uniform(radius))
}

// HandleEvent delegates to the embedded Clickable.
func (b *Button) HandleEvent(ev input.Event) input.Disposition {
	return b.Clickable.HandleEvent(ev)
}
