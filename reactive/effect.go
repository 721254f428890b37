// SPDX-License-Identifier: Unlicense OR MIT

package reactive

// Effect runs a body for side effects (paint scheduling, cross-thread
// dispatch) whenever one of the signals or memos it reads changes. It
// does nothing itself beyond owning the underlying effectNode; all the
// behavior lives in Runtime.runNode and Scope.Dispose.
type Effect struct {
	node *effectNode
}

// NewEffect registers f as an effect owned by scope and enqueues its
// first run for the next Update. Effects that one Signal.Set marks dirty
// are enqueued in the order Go's iteration over the signal's subscriber
// map yields them, so their relative run order is not defined.
func NewEffect(scope *Scope, f func()) *Effect {
	e := &Effect{node: &effectNode{}}
	e.node.run = f
	scope.registerNode(e.node)
	scope.rt.enqueueDirty(e.node)
	return e
}
