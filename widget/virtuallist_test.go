// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"testing"

	"kernelui.dev/reactive"
)

func TestVirtualListMaterializesOnlyVisibleRangePlusOverscan(t *testing.T) {
	cx, _ := newTestContext()
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}
	signal := reactive.NewSignal(cx.Runtime, items)

	var rendered []int
	v := NewVirtualList(cx.Runtime, signal, 10, func(item int, index int) Widget {
		rendered = append(rendered, item)
		return &Div{}
	})
	v.Overscan = 1
	v.ViewportHint = 50 // 5 rows visible at EstimateSize 10

	v.RequestLayout(cx)

	// VisibleRange counts the row at the viewport's bottom edge (row 5) as
	// visible and adds one row of overscan after it: rows 0..6.
	if len(rendered) == 0 {
		t.Fatal("expected VirtualList to materialize some rows on first layout")
	}
	for _, idx := range rendered {
		if idx < 0 || idx > 6 {
			t.Fatalf("materialized item %d outside the expected visible+overscan window", idx)
		}
	}

	if got := v.leading.Style.Height; got != 0 {
		t.Fatalf("leading spacer height = %v at scroll offset 0, want 0", got)
	}
}

func TestVirtualListScrollShiftsLeadingSpacer(t *testing.T) {
	cx, _ := newTestContext()
	items := make([]int, 100)
	signal := reactive.NewSignal(cx.Runtime, items)

	v := NewVirtualList(cx.Runtime, signal, 10, func(item int, index int) Widget {
		return &Div{}
	})
	v.ViewportHint = 50
	v.RequestLayout(cx)

	v.scroll.Offset.Set(200) // scrolled 20 rows down
	v.RequestLayout(cx)

	if got := v.leading.Style.Height; got <= 0 {
		t.Fatalf("leading spacer height = %v after scrolling, want > 0", got)
	}
}

func TestVirtualListTrailingSpacerShrinksNearEnd(t *testing.T) {
	cx, _ := newTestContext()
	items := make([]int, 10)
	signal := reactive.NewSignal(cx.Runtime, items)

	v := NewVirtualList(cx.Runtime, signal, 10, func(item int, index int) Widget {
		return &Div{}
	})
	v.ViewportHint = 1000 // taller than all 10 rows combined
	v.RequestLayout(cx)

	if got := v.trailing.Style.Height; got != 0 {
		t.Fatalf("trailing spacer height = %v when every item is visible, want 0", got)
	}
}
