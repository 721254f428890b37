// SPDX-License-Identifier: Unlicense OR MIT

package reactive

// FrameCallbacks are the remaining four phases of a frame, run in order
// after Update produces dirty work (spec.md §4.H). Any nil callback is
// skipped.
type FrameCallbacks struct {
	// Build rebuilds widgets whose inputs changed.
	Build func()
	// Layout recomputes layout for dirty subtrees.
	Layout func()
	// Paint produces a fresh display list and hit-test index.
	Paint func()
	// Render submits the display list to the GPU and presents it.
	Render func()
}

// RunFrame runs Update and, only if it produced dirty work, the remaining
// phases in order: Build, Layout, Paint, Render. A quiet frame (no dirty
// effects, nothing on the cross-thread queue, no dispatched commands)
// returns after Update alone, per spec.md §4.H: "A frame that yields no
// dirty work skips all phases after Update."
func (rt *Runtime) RunFrame(cb FrameCallbacks) error {
	didWork, err := rt.Update()
	if err != nil {
		return err
	}
	if !didWork {
		return nil
	}
	if cb.Build != nil {
		cb.Build()
	}
	if cb.Layout != nil {
		cb.Layout()
	}
	if cb.Paint != nil {
		cb.Paint()
	}
	if cb.Render != nil {
		cb.Render()
	}
	return nil
}
