// SPDX-License-Identifier: Unlicense OR MIT

// Package input normalizes platform events into the kernel's event set,
// builds the per-frame hit-test index, and dispatches events up the
// widget tree with pointer capture and focus-based keyboard routing
// (spec.md §4.G).
//
// The normalized event shapes are adapted from the teacher's
// io/pointer.Event and io/key.Event; the hit-test index and bubbling
// dispatch are new, grounded on the teacher's own router (the bubbling
// walk from hit node to root, and capture-until-release on a pressed
// button, are exactly gio's io/router discipline re-expressed over the
// kernel's own NodeID tree instead of an op-tag mailbox).
package input

import (
	"time"

	"kernelui.dev/dlist"
	"kernelui.dev/geom"
	"kernelui.dev/io/key"
	"kernelui.dev/io/pointer"
)

// EventKind discriminates the variant stored in an Event.
type EventKind uint8

const (
	PointerDown EventKind = iota
	PointerUp
	PointerMove
	Wheel
	KeyDown
	KeyUp
	TextInput
	ImeComposition
)

// Event is the kernel's normalized input event (spec.md §4.G).
type Event struct {
	Kind EventKind
	Time time.Duration

	Position  geom.Point
	Button    pointer.Buttons
	Modifiers key.Modifiers

	Scroll geom.Point

	Key     key.Name
	Code    uint32
	Repeat  bool

	Text string

	Composition      string
	CompositionStart int
	CompositionEnd   int
}

// Disposition is a widget's verdict on an Event it was offered.
type Disposition uint8

const (
	Ignored Disposition = iota
	Handled
)

// Handler processes one Event already clipped to the widget's bounds
// (spec.md §4.I: "handle_event receives events already clipped to the
// widget's bounds").
type Handler func(Event) Disposition

// HitEntry is one row of a frame's HitTestIndex: a node and the bounds it
// painted within, in painter's order.
type HitEntry struct {
	Node   dlist.NodeID
	Bounds geom.Bounds
}

// HitTestIndex is the ordered list of (node, rect) produced by a paint
// pass, used to resolve pointer queries to the topmost hit.
type HitTestIndex struct {
	entries []HitEntry
}

// NewHitTestIndex creates an empty index. Call Reset to reuse it across
// frames without releasing its backing storage.
func NewHitTestIndex() *HitTestIndex {
	return &HitTestIndex{}
}

// Reset empties the index for reuse.
func (h *HitTestIndex) Reset() {
	h.entries = h.entries[:0]
}

// Add appends a node's painted bounds in painter's order.
func (h *HitTestIndex) Add(node dlist.NodeID, bounds geom.Bounds) {
	h.entries = append(h.entries, HitEntry{Node: node, Bounds: bounds})
}

// HitTest resolves p to the topmost (last-painted) node whose bounds
// contain it, or 0 if nothing was hit.
func (h *HitTestIndex) HitTest(p geom.Point) dlist.NodeID {
	for i := len(h.entries) - 1; i >= 0; i-- {
		if h.entries[i].Bounds.Contains(p) {
			return h.entries[i].Node
		}
	}
	return 0
}
