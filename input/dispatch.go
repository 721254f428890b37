// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"math"

	"kernelui.dev/dlist"
	"kernelui.dev/klog"
)

// Tree is the minimal parent-lookup a Dispatcher needs to walk from a hit
// node up to the root; layout.Tree satisfies it.
type Tree interface {
	Parent(node dlist.NodeID) dlist.NodeID
}

// Router dispatches normalized events to registered per-node Handlers,
// implementing pointer capture and focused-keyboard routing with a
// bubbling fallback to an application-wide shortcut table (spec.md
// §4.G).
type Router struct {
	tree     Tree
	handlers map[dlist.NodeID]Handler
	index    *HitTestIndex
	log      klog.Logger

	captured  dlist.NodeID
	capturing bool
	focused   dlist.NodeID

	shortcuts Handler
}

// NewRouter creates a Router walking ancestry through tree and resolving
// pointer hits through index. Logging defaults to klog.Nop(); call
// SetLogger to capture the dropped-NaN-event warning (spec.md §7).
func NewRouter(tree Tree, index *HitTestIndex) *Router {
	return &Router{tree: tree, handlers: make(map[dlist.NodeID]Handler), index: index, log: klog.Nop()}
}

// SetLogger installs the logger Dispatch warns through when it drops an
// event.
func (r *Router) SetLogger(l klog.Logger) {
	r.log = l
}

// hasNaN reports whether any coordinate Dispatch would read for ev's kind
// is NaN.
func hasNaN(ev Event) bool {
	switch ev.Kind {
	case Wheel:
		return math.IsNaN(float64(ev.Scroll.X)) || math.IsNaN(float64(ev.Scroll.Y))
	case KeyDown, KeyUp, TextInput, ImeComposition:
		return false
	default:
		return math.IsNaN(float64(ev.Position.X)) || math.IsNaN(float64(ev.Position.Y))
	}
}

// SetHandler installs (or clears, if h is nil) the event handler for
// node.
func (r *Router) SetHandler(node dlist.NodeID, h Handler) {
	if h == nil {
		delete(r.handlers, node)
		return
	}
	r.handlers[node] = h
}

// Focus sets the node keyboard events route to first.
func (r *Router) Focus(node dlist.NodeID) {
	r.focused = node
}

// Focused returns the currently focused node.
func (r *Router) Focused() dlist.NodeID { return r.focused }

// SetShortcuts installs the application-wide fallback handler consulted
// when no widget in the bubble path handles a keyboard event.
func (r *Router) SetShortcuts(h Handler) {
	r.shortcuts = h
}

// Dispatch routes ev to its target and bubbles until a Handler reports
// Handled or the root is reached. Pointer events (other than PointerDown)
// target whichever node last captured the pointer, if any; PointerDown
// and all other kinds resolve their starting node from the hit-test
// index / current focus.
func (r *Router) Dispatch(ev Event) Disposition {
	if hasNaN(ev) {
		r.log.Warn("dropping input event with NaN coordinates")
		return Ignored
	}
	switch ev.Kind {
	case PointerDown:
		node := r.index.HitTest(ev.Position)
		disp := r.bubble(node, ev)
		if disp == Handled {
			r.captured = node
			r.capturing = true
		}
		return disp
	case PointerMove, PointerUp:
		if r.capturing {
			disp := r.bubble(r.captured, ev)
			if ev.Kind == PointerUp {
				r.capturing = false
			}
			return disp
		}
		node := r.index.HitTest(ev.Position)
		return r.bubble(node, ev)
	case KeyDown, KeyUp:
		disp := r.bubble(r.focused, ev)
		if disp == Handled {
			return Handled
		}
		if r.shortcuts != nil {
			return r.shortcuts(ev)
		}
		return Ignored
	default:
		node := r.index.HitTest(ev.Position)
		return r.bubble(node, ev)
	}
}

// bubble walks from node up through its ancestors (via r.tree), offering
// ev to each registered Handler until one reports Handled or the walk
// reaches the root (node 0).
func (r *Router) bubble(node dlist.NodeID, ev Event) Disposition {
	for node != 0 {
		if h, ok := r.handlers[node]; ok {
			if h(ev) == Handled {
				return Handled
			}
		}
		if r.tree == nil {
			break
		}
		node = r.tree.Parent(node)
	}
	return Ignored
}
