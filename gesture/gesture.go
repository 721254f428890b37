// SPDX-License-Identifier: Unlicense OR MIT

// Package gesture turns the kernel's normalized input.Events into the
// higher-level actions widgets actually want: clicks (with double-click
// counting), drags, and scrolls with fling momentum (spec.md §4.I:
// "ScrollView ... handles wheel + drag"; the momentum behavior itself is
// a supplemented feature, see SPEC_FULL.md).
//
// Recognizers are fed events one at a time from a widget's input.Handler,
// rather than pulling from a queue the way the teacher's gesture package
// does (gio's event.Queue model doesn't exist here -- input.Router calls
// a Handler per event instead) -- but the recognition state machines
// themselves (press/release/click counting, drag delta tracking, scroll
// momentum handoff) are ported directly from teacher gesture.go.
package gesture

import (
	"math"
	"time"

	"kernelui.dev/geom"
	"kernelui.dev/input"
	"kernelui.dev/internal/fling"
	"kernelui.dev/io/pointer"
)

const doubleClickDuration = 200 * time.Millisecond

// ClickKind discriminates the phase a ClickEvent reports.
type ClickKind uint8

const (
	KindPress ClickKind = iota
	KindClick
	KindCancel
)

// ClickEvent is the result of feeding a pointer sequence through Click.
type ClickEvent struct {
	Kind      ClickKind
	Position  geom.Point
	NumClicks int
}

// Click recognizes press/release into a click, counting consecutive
// clicks within doubleClickDuration of each other.
type Click struct {
	pressed   bool
	hovered   bool
	clickedAt time.Duration
	clicks    int
}

// Pressed reports whether the pointer is currently down on this widget.
func (c *Click) Pressed() bool { return c.pressed }

// Hovered reports whether the pointer is currently within this widget's
// bounds, tracked via PointerMove events the widget is still offered
// (capture keeps routing moves here after a press).
func (c *Click) Hovered() bool { return c.hovered }

// Feed processes one event and reports a ClickEvent if the gesture
// completed or was cancelled.
func (c *Click) Feed(ev input.Event) (ClickEvent, bool) {
	switch ev.Kind {
	case input.PointerDown:
		if ev.Button != 0 && ev.Button&pointer.ButtonLeft == 0 {
			return ClickEvent{}, false
		}
		c.pressed = true
		c.hovered = true
		if ev.Time-c.clickedAt < doubleClickDuration {
			c.clicks++
		} else {
			c.clicks = 1
		}
		c.clickedAt = ev.Time
		return ClickEvent{Kind: KindPress, Position: ev.Position, NumClicks: c.clicks}, true
	case input.PointerMove:
		// Capture keeps delivering moves to the pressed widget even once
		// the pointer leaves its bounds; Hovered must reflect that.
		c.hovered = true
		return ClickEvent{}, false
	case input.PointerUp:
		if !c.pressed {
			return ClickEvent{}, false
		}
		c.pressed = false
		return ClickEvent{Kind: KindClick, Position: ev.Position, NumClicks: c.clicks}, true
	}
	return ClickEvent{}, false
}

// DragKind discriminates the phase a DragEvent reports.
type DragKind uint8

const (
	DragStart DragKind = iota
	DragMove
	DragEnd
)

// DragEvent is the result of feeding a pointer sequence through Drag.
type DragEvent struct {
	Kind  DragKind
	Delta geom.Point
}

// Drag recognizes a press-move-release sequence into a stream of deltas.
type Drag struct {
	dragging bool
	last     geom.Point
}

// Feed processes one event and reports a DragEvent for each step of an
// in-progress drag.
func (d *Drag) Feed(ev input.Event) (DragEvent, bool) {
	switch ev.Kind {
	case input.PointerDown:
		d.dragging = true
		d.last = ev.Position
		return DragEvent{Kind: DragStart}, true
	case input.PointerMove:
		if !d.dragging {
			return DragEvent{}, false
		}
		delta := geom.Point{X: ev.Position.X - d.last.X, Y: ev.Position.Y - d.last.Y}
		d.last = ev.Position
		return DragEvent{Kind: DragMove, Delta: delta}, true
	case input.PointerUp:
		if !d.dragging {
			return DragEvent{}, false
		}
		d.dragging = false
		return DragEvent{Kind: DragEnd}, true
	}
	return DragEvent{}, false
}

// ScrollState reports whether a Scroll is idle, being dragged, or
// coasting on momentum.
type ScrollState uint8

const (
	StateIdle ScrollState = iota
	StateDragging
	StateFlinging
)

// Scroll combines wheel events and touch/drag gestures into a single
// scroll-distance stream, handing off to fling.Extrapolation's velocity
// estimate for momentum once the drag releases.
type Scroll struct {
	state     ScrollState
	dragging  bool
	last      geom.Point
	estimator fling.Extrapolation
	velocity  float32 // units/second, axis-projected; decays once flinging
}

// FlingDecay is the fraction of velocity retained after each second of
// coasting, tuned to feel like a brisk touch-scroll deceleration.
const FlingDecay = 0.015 // ~1.5% of velocity left after one second

// Feed processes a pointer or wheel event and returns the scroll delta
// (along axis) to apply this step, if any.
func (s *Scroll) Feed(ev input.Event, axis geom.Point, now time.Duration) (delta float32, ok bool) {
	proj := func(p geom.Point) float32 { return p.X*axis.X + p.Y*axis.Y }

	switch ev.Kind {
	case input.Wheel:
		s.state = StateIdle
		return proj(ev.Scroll), true
	case input.PointerDown:
		s.state = StateDragging
		s.dragging = true
		s.last = ev.Position
		s.estimator.Reset()
		s.estimator.Push(float32(now.Seconds()), proj(ev.Position))
		return 0, false
	case input.PointerMove:
		if !s.dragging {
			return 0, false
		}
		d := proj(ev.Position) - proj(s.last)
		s.last = ev.Position
		s.estimator.Push(float32(now.Seconds()), proj(ev.Position))
		return -d, true
	case input.PointerUp:
		if !s.dragging {
			return 0, false
		}
		s.dragging = false
		if v, ok := s.estimator.Velocity(); ok && v != 0 {
			s.velocity = -v
			s.state = StateFlinging
		} else {
			s.state = StateIdle
		}
		return 0, false
	}
	return 0, false
}

// Tick advances an in-progress fling by dt seconds, returning the
// distance to scroll this step. It reports false once the fling has
// decayed to a standstill, at which point State becomes StateIdle.
func (s *Scroll) Tick(dt float32) (delta float32, ok bool) {
	if s.state != StateFlinging {
		return 0, false
	}
	delta = s.velocity * dt
	decay := float32(math.Pow(FlingDecay, float64(dt)))
	s.velocity *= decay
	const stopThreshold = 1 // units/second
	if s.velocity < stopThreshold && s.velocity > -stopThreshold {
		s.velocity = 0
		s.state = StateIdle
		return delta, delta != 0
	}
	return delta, true
}

// State reports the recognizer's current phase.
func (s *Scroll) State() ScrollState { return s.state }
