// SPDX-License-Identifier: Unlicense OR MIT

package layout

// VisibleRange is a half-open index range [Start, End) of items that
// intersect the current viewport, plus the overscan the caller asked for.
type VisibleRange struct {
	Start, End int
}

// Len returns the number of indices in the range.
func (r VisibleRange) Len() int { return r.End - r.Start }

// Virtual describes a scroll container's virtualized child collection
// (spec.md §4.F virtualization contract): total item count, an estimated
// per-item extent along the main axis, and a callback that builds widget
// instances for a given VisibleRange.
type Virtual struct {
	Count        int
	EstimateSize float32
	Materialize  func(r VisibleRange)
	Overscan     int
}

// VisibleRange computes which indices intersect a viewport of the given
// extent starting at scrollOffset, padded by v.Overscan items on each
// side and clamped to [0, v.Count).
func (v Virtual) VisibleRange(scrollOffset, viewportExtent float32) VisibleRange {
	if v.EstimateSize <= 0 || v.Count == 0 {
		return VisibleRange{}
	}
	first := int(scrollOffset / v.EstimateSize)
	last := int((scrollOffset + viewportExtent) / v.EstimateSize)
	first -= v.Overscan
	last += v.Overscan + 1
	if first < 0 {
		first = 0
	}
	if last > v.Count {
		last = v.Count
	}
	if first > last {
		first = last
	}
	return VisibleRange{Start: first, End: last}
}

// TotalExtent is the main-axis size the container should report to its
// parent as if every item, materialized or not, were laid out at
// EstimateSize (spec.md: "The rendered region is positioned as if all
// items existed").
func (v Virtual) TotalExtent() float32 {
	return v.EstimateSize * float32(v.Count)
}

// Materialized invokes Materialize for the range visible at the given
// scroll offset and viewport extent, if Materialize is set.
func (v Virtual) Materialized(scrollOffset, viewportExtent float32) {
	if v.Materialize == nil {
		return
	}
	v.Materialize(v.VisibleRange(scrollOffset, viewportExtent))
}
