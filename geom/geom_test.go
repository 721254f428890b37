// SPDX-License-Identifier: Unlicense OR MIT

package geom

import "testing"

func TestBoundsContainsHalfOpen(t *testing.T) {
	b := Rect(0, 0, 10, 10)
	cases := []struct {
		p    Point
		want bool
	}{
		{Point{X: 0, Y: 0}, true},
		{Point{X: 9.999, Y: 9.999}, true},
		{Point{X: 10, Y: 5}, false},
		{Point{X: 5, Y: 10}, false},
		{Point{X: -1, Y: 5}, false},
	}
	for _, c := range cases {
		if got := b.Contains(c.p); got != c.want {
			t.Errorf("Contains(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestBoundsIntersect(t *testing.T) {
	a := Rect(0, 0, 100, 100)
	b := Rect(50, 50, 150, 150)
	got := a.Intersect(b)
	want := Rect(50, 50, 100, 100)
	if got != want {
		t.Errorf("Intersect = %+v, want %+v", got, want)
	}
}

func TestBoundsIntersectDisjointIsEmpty(t *testing.T) {
	a := Rect(0, 0, 10, 10)
	b := Rect(20, 20, 30, 30)
	if got := a.Intersect(b); !got.Empty() {
		t.Errorf("disjoint intersect not empty: %+v", got)
	}
}

func TestLengthResolve(t *testing.T) {
	if got := Abs(12).Resolve(100, 0); got != 12 {
		t.Errorf("Abs.Resolve = %v, want 12", got)
	}
	if got := Percent(0.5).Resolve(100, 0); got != 50 {
		t.Errorf("Percent.Resolve = %v, want 50", got)
	}
	if got := Auto.Resolve(100, 42); got != 42 {
		t.Errorf("Auto.Resolve = %v, want fallback 42", got)
	}
}
