// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"golang.org/x/exp/slices"

	"kernelui.dev/dlist"
	"kernelui.dev/geom"
)

// NodeID identifies a Node within a Tree. Zero is invalid. It is an alias
// of dlist.NodeID so a layout node and the display-list/hit-test entries
// painted for it share one handle type across packages.
type NodeID = dlist.NodeID

// Node is one entry in the retained layout tree: either a container with
// children or a leaf with a Measurer, never both.
type Node struct {
	style    Style
	measure  Measurer
	parent   NodeID
	children []NodeID
	dirty    bool

	bounds geom.Bounds
	dims   Dimensions
}

// Tree owns a forest of Nodes addressed by NodeID, recomputing dirty
// subtrees on demand (spec.md §4.F: "marking a node dirty propagates to
// its subtree; recompute of a subtree respects parent constraints").
type Tree struct {
	nodes []Node
	roots []NodeID
}

// NewTree creates an empty Tree.
func NewTree() *Tree {
	return &Tree{nodes: []Node{{}}} // index 0 reserved, never returned as a NodeID
}

// CreateNode allocates a new container node with the given style. Widgets
// reuse a previously returned NodeID across frames instead of calling
// CreateNode again, so the tree's retained state (bounds, dirty flag)
// survives a rebuild that didn't change this node's subtree.
func (t *Tree) CreateNode(style Style) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{style: style, dirty: true})
	return id
}

// CreateLeaf allocates a new measured leaf node.
func (t *Tree) CreateLeaf(style Style, measure Measurer) NodeID {
	id := t.CreateNode(style)
	t.nodes[id].measure = measure
	return id
}

func (t *Tree) node(id NodeID) *Node { return &t.nodes[id] }

// SetStyle replaces a node's style and marks it dirty.
func (t *Tree) SetStyle(id NodeID, style Style) {
	n := t.node(id)
	n.style = style
	t.MarkDirty(id)
}

// SetChildren replaces a node's children list and marks it dirty. Any
// previous children not present in the new list become unreachable; the
// caller is responsible for not reusing their NodeIDs.
func (t *Tree) SetChildren(id NodeID, children []NodeID) {
	n := t.node(id)
	n.children = append(n.children[:0], children...)
	for _, c := range children {
		t.node(c).parent = id
	}
	t.MarkDirty(id)
}

// SetRoot declares id a root of the tree, laid out independently by
// Layout.
func (t *Tree) SetRoot(id NodeID) {
	if slices.Contains(t.roots, id) {
		return
	}
	t.roots = append(t.roots, id)
}

// MarkDirty flags id and every ancestor up to its root as needing
// recomputation; Layout skips roots that are clean and re-measures the
// whole subtree of a dirty root.
func (t *Tree) MarkDirty(id NodeID) {
	for id != 0 {
		n := t.node(id)
		if n.dirty {
			return
		}
		n.dirty = true
		id = n.parent
	}
}

// Dirty reports whether id or a node in its subtree is pending
// recomputation.
func (t *Tree) Dirty(id NodeID) bool {
	return t.node(id).dirty
}

// Bounds returns the last computed bounds for id, valid until the next
// Layout call that touches it.
func (t *Tree) Bounds(id NodeID) geom.Bounds {
	return t.node(id).bounds
}

// Children returns id's children in declaration order.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.node(id).children
}

// Parent returns id's parent, or 0 if id is a root. Satisfies
// input.Tree, letting the input router bubble events up the same tree
// layout maintains.
func (t *Tree) Parent(id NodeID) NodeID {
	return t.node(id).parent
}

// Layout recomputes every dirty root against the given viewport
// constraints, positions the tree at origin, and clears dirty flags for
// everything it touched.
func (t *Tree) Layout(origin geom.Point, viewport Constraints) {
	for _, root := range t.roots {
		if !t.node(root).dirty {
			continue
		}
		dims := t.measure(root, viewport)
		t.place(root, geom.Bounds{Origin: origin, Size: dims.Size})
	}
}

// measure computes a node's Dimensions under c without positioning
// children, recursing into subtrees via the two-pass flex algorithm
// (spec.md §4.F): first each child's base size is measured, then leftover
// space is distributed by grow factor or reclaimed by shrink factor.
func (t *Tree) measure(id NodeID, c Constraints) Dimensions {
	n := t.node(id)
	if n.measure != nil {
		n.dims = n.measure(c)
		return n.dims
	}
	if len(n.children) == 0 {
		size := c.Constrain(geom.Size{W: n.style.Width.Resolve(c.MaxWidth, c.MinWidth), H: n.style.Height.Resolve(c.MaxHeight, c.MinHeight)})
		n.dims = Dimensions{Size: size}
		return n.dims
	}
	n.dims = t.measureFlex(n, c)
	return n.dims
}

// place assigns final bounds to id and its children, recursing. It clears
// the dirty flag for every node it visits, since by the time place runs
// the node's Dimensions already reflect the latest measure pass.
func (t *Tree) place(id NodeID, bounds geom.Bounds) {
	n := t.node(id)
	n.bounds = bounds
	n.dirty = false
	if n.measure != nil || len(n.children) == 0 {
		return
	}
	t.placeFlexChildren(n, bounds)
}
