// SPDX-License-Identifier: Unlicense OR MIT

// Package pointer defines normalized pointer and wheel event shapes shared
// by the input router and the widgets that consume them.
package pointer

import (
	"strings"
	"time"

	"kernelui.dev/f32"
	"kernelui.dev/io/key"
)

// Event is a pointer event normalized by the input router from whatever
// the platform host delivered.
type Event struct {
	Type   Type
	Source Source
	// PointerID tracks a particular pointer from Press to Release or Cancel.
	PointerID ID
	// Priority is the priority of the receiving handler for this event.
	Priority Priority
	// Time is when the event was received, relative to an undefined base.
	Time time.Duration
	// Buttons are the set of pressed mouse buttons for this event.
	Buttons Buttons
	// Hit is set when the event occurred within the handler's registered
	// hit-test area. Hit can be false when a pointer was pressed within
	// the hit area and then dragged outside it.
	Hit bool
	// Position is the position of the event relative to the node's bounds.
	Position f32.Point
	// Scroll is the wheel delta, valid when Type is Wheel.
	Scroll f32.Point
	// Modifiers is the set of active modifiers for the event.
	Modifiers key.Modifiers
}

type ID uint16

// Type of an Event.
type Type uint8

// Priority of an Event, used to decide which of several overlapping
// handlers captures subsequent events for the same pointer.
type Priority uint8

// Source of an Event.
type Source uint8

// Buttons is a set of mouse buttons.
type Buttons uint8

const (
	// Cancel is generated when the current gesture is interrupted by
	// other handlers or the platform.
	Cancel Type = iota
	// Press of a pointer (PointerDown in spec terms).
	Press
	// Release of a pointer (PointerUp in spec terms).
	Release
	// Move of a pointer.
	Move
	// Wheel scroll input.
	Wheel
)

const (
	Mouse Source = iota
	Touch
)

const (
	// Shared priority is for handlers that are part of a matching set
	// larger than 1.
	Shared Priority = iota
	// Grabbed is the priority given to a handler that captured the
	// pointer on PointerDown.
	Grabbed
)

const (
	ButtonLeft Buttons = 1 << iota
	ButtonRight
	ButtonMiddle
)

func (t Type) String() string {
	switch t {
	case Press:
		return "Press"
	case Release:
		return "Release"
	case Cancel:
		return "Cancel"
	case Move:
		return "Move"
	case Wheel:
		return "Wheel"
	default:
		panic("unknown Type")
	}
}

func (p Priority) String() string {
	switch p {
	case Shared:
		return "Shared"
	case Grabbed:
		return "Grabbed"
	default:
		panic("unknown priority")
	}
}

func (s Source) String() string {
	switch s {
	case Mouse:
		return "Mouse"
	case Touch:
		return "Touch"
	default:
		panic("unknown source")
	}
}

// Contain reports whether the set b contains all of the buttons in buttons.
func (b Buttons) Contain(buttons Buttons) bool {
	return b&buttons == buttons
}

func (b Buttons) String() string {
	var strs []string
	if b.Contain(ButtonLeft) {
		strs = append(strs, "ButtonLeft")
	}
	if b.Contain(ButtonRight) {
		strs = append(strs, "ButtonRight")
	}
	if b.Contain(ButtonMiddle) {
		strs = append(strs, "ButtonMiddle")
	}
	return strings.Join(strs, "|")
}

func (Event) ImplementsEvent() {}
