// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"testing"

	"kernelui.dev/geom"
)

func TestFlexRowDistributesGrowRemainder(t *testing.T) {
	tree := NewTree()
	a := tree.CreateLeaf(Style{Basis: geom.Abs(0), Grow: 1}, func(c Constraints) Dimensions {
		return Dimensions{Size: geom.Size{W: c.MaxWidth, H: c.MaxHeight}}
	})
	b := tree.CreateLeaf(Style{Basis: geom.Abs(0), Grow: 1}, func(c Constraints) Dimensions {
		return Dimensions{Size: geom.Size{W: c.MaxWidth, H: c.MaxHeight}}
	})
	root := tree.CreateNode(Style{Direction: Row})
	tree.SetChildren(root, []NodeID{a, b})
	tree.SetRoot(root)

	tree.Layout(geom.Point{}, Constraints{MaxWidth: 100, MaxHeight: 50})

	ba := tree.Bounds(a)
	bb := tree.Bounds(b)
	if ba.Size.W != 50 || bb.Size.W != 50 {
		t.Fatalf("children widths = %v, %v, want 50, 50", ba.Size.W, bb.Size.W)
	}
	if bb.Origin.X != 50 {
		t.Fatalf("second child origin.X = %v, want 50", bb.Origin.X)
	}
}

func TestFlexGapAddsBetweenChildren(t *testing.T) {
	tree := NewTree()
	leaf := func(w float32) NodeID {
		return tree.CreateLeaf(Style{}, func(c Constraints) Dimensions {
			return Dimensions{Size: geom.Size{W: w, H: 10}}
		})
	}
	a, b := leaf(10), leaf(10)
	root := tree.CreateNode(Style{Direction: Row, Gap: 5})
	tree.SetChildren(root, []NodeID{a, b})
	tree.SetRoot(root)
	tree.Layout(geom.Point{}, Constraints{MaxWidth: 100, MaxHeight: 50})

	if tree.Bounds(b).Origin.X != 15 {
		t.Fatalf("second child origin.X = %v, want 15 (10 + 5 gap)", tree.Bounds(b).Origin.X)
	}
}

func TestMarkDirtyPropagatesToRoot(t *testing.T) {
	tree := NewTree()
	leaf := tree.CreateLeaf(Style{}, func(c Constraints) Dimensions { return Dimensions{} })
	root := tree.CreateNode(Style{})
	tree.SetChildren(root, []NodeID{leaf})
	tree.SetRoot(root)
	tree.Layout(geom.Point{}, Constraints{MaxWidth: 10, MaxHeight: 10})

	if tree.Dirty(root) {
		t.Fatal("root still dirty after Layout")
	}
	tree.MarkDirty(leaf)
	if !tree.Dirty(root) {
		t.Fatal("MarkDirty on leaf did not propagate to root")
	}
}

func TestVirtualVisibleRangeIncludesOverscan(t *testing.T) {
	v := Virtual{Count: 1000, EstimateSize: 20, Overscan: 2}
	r := v.VisibleRange(200, 100)
	if r.Start > 8 || r.End < 17 {
		t.Fatalf("range = %+v, want overscan padding around [10,15)", r)
	}
}

func TestVirtualVisibleRangeClampsToCount(t *testing.T) {
	v := Virtual{Count: 5, EstimateSize: 20, Overscan: 10}
	r := v.VisibleRange(0, 40)
	if r.Start != 0 || r.End != 5 {
		t.Fatalf("range = %+v, want [0,5)", r)
	}
}

func TestVirtualTotalExtent(t *testing.T) {
	v := Virtual{Count: 50, EstimateSize: 24}
	if got := v.TotalExtent(); got != 1200 {
		t.Fatalf("TotalExtent() = %v, want 1200", got)
	}
}
