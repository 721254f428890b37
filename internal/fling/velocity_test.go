// SPDX-License-Identifier: Unlicense OR MIT

package fling

import "testing"

func TestExtrapolationVelocityOfConstantDrag(t *testing.T) {
	e := NewExtrapolation()
	// Constant velocity of 100 units/second.
	for i := 0; i < 5; i++ {
		t := float32(i) * 0.01
		e.Push(t, 100*t)
	}
	v, ok := e.Velocity()
	if !ok {
		t.Fatal("Velocity reported not ok for a well-conditioned sample set")
	}
	if d := v - 100; d < -1 || d > 1 {
		t.Fatalf("Velocity = %v, want ~100", v)
	}
}

func TestExtrapolationNeedsThreeSamples(t *testing.T) {
	e := NewExtrapolation()
	e.Push(0, 0)
	e.Push(0.01, 1)
	if _, ok := e.Velocity(); ok {
		t.Fatal("Velocity should report not ok with fewer than 3 samples")
	}
}

func TestExtrapolationResetClearsHistory(t *testing.T) {
	e := NewExtrapolation()
	e.Push(0, 0)
	e.Push(0.01, 1)
	e.Push(0.02, 2)
	e.Reset()
	if _, ok := e.Velocity(); ok {
		t.Fatal("Velocity should report not ok right after Reset")
	}
}

func TestExtrapolationEvictsOldSamples(t *testing.T) {
	e := NewExtrapolation()
	e.Push(0, 0)
	e.Push(0.01, 1)
	// Far enough past SampleTailWindow to evict the samples above.
	e.Push(0.5, 5)
	if len(e.samples) != 1 {
		t.Fatalf("len(samples) = %d, want 1 after stale samples age out", len(e.samples))
	}
}
