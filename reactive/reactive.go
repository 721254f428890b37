// SPDX-License-Identifier: Unlicense OR MIT

// Package reactive implements the kernel's fine-grained reactive runtime:
// signals, lazy memos, effects, disposal scopes, a phase-ordered frame
// scheduler and a command bus (spec.md §4.H).
//
// The scheduling model is single-threaded cooperative: every exported type
// here is meant to be touched only from the one designated UI-thread
// goroutine, with the sole exception of Runtime.Enqueue, which is safe to
// call from other goroutines to hand work back to that thread.
// CommandBus.Dispatch takes no lock and belongs to the UI thread too.
//
// The dependency-tracking discipline (an implicit "currently running"
// pointer that reads register against) is the same shape as the teacher's
// op.Ops push/pop stack: a single mutable cursor threaded through nested
// calls rather than an explicit context parameter at every call site.
package reactive

import (
	"sync"

	"kernelui.dev/kerr"
	"kernelui.dev/klog"
)

// effectNode is the runtime's internal unit of reactivity: the thing that
// gets scheduled when a dependency changes. Effects, and the recompute
// marker inside a Memo, are both represented as one.
type effectNode struct {
	run       func()
	deps      []func() // unsubscribe closures, one per tracked read since the last run
	scope     *Scope
	disposed  bool
	computing bool // guards against a memo's compute re-entering itself
}

func (n *effectNode) clearDeps() {
	for _, unsub := range n.deps {
		unsub()
	}
	n.deps = n.deps[:0]
}

// Runtime owns the dirty queue, the cross-thread message queue, and the
// command bus, and drives the five-phase frame scheduler.
type Runtime struct {
	log klog.Logger

	tracking *effectNode

	dirtySeen  map[*effectNode]struct{}
	dirtyOrder []*effectNode

	maxIterations int
	cyclic        bool

	queueMu sync.Mutex
	queue   []func()

	bus *CommandBus
}

// NewRuntime constructs a Runtime. log may be klog.Nop() when the embedder
// hasn't wired logging.
func NewRuntime(log klog.Logger) *Runtime {
	return &Runtime{
		log:           log,
		dirtySeen:     make(map[*effectNode]struct{}),
		maxIterations: 1000,
		bus:           newCommandBus(log),
	}
}

// SetMaxIterations overrides the frame scheduler's settling iteration cap
// (default 1000), the "maximum settling iteration count" spec.md §5 and
// §7 require to prevent runaway effect cycles before a frame aborts with
// kerr.ErrReactiveDidNotSettle. kernel.Config exposes this as a tunable.
func (rt *Runtime) SetMaxIterations(n int) {
	if n > 0 {
		rt.maxIterations = n
	}
}

// Bus returns the runtime's command bus (spec.md §4.H: "dispatch(cmd)
// appends to a queue drained at the start of Update").
func (rt *Runtime) Bus() *CommandBus { return rt.bus }

// Enqueue hands a closure to the runtime to be run on the UI thread at the
// top of the next Update phase. Safe to call from any goroutine; this is
// the supported mechanism for cross-thread producers (spec.md §5).
func (rt *Runtime) Enqueue(f func()) {
	rt.queueMu.Lock()
	rt.queue = append(rt.queue, f)
	rt.queueMu.Unlock()
}

func (rt *Runtime) drainCrossThreadQueue() {
	rt.queueMu.Lock()
	pending := rt.queue
	rt.queue = nil
	rt.queueMu.Unlock()
	for _, f := range pending {
		f()
	}
}

func (rt *Runtime) enqueueDirty(n *effectNode) {
	if n.disposed {
		return
	}
	if _, ok := rt.dirtySeen[n]; ok {
		return
	}
	rt.dirtySeen[n] = struct{}{}
	rt.dirtyOrder = append(rt.dirtyOrder, n)
}

func (rt *Runtime) reportCyclic() {
	rt.cyclic = true
}

// trackRead records that the currently running node read a trackable
// value, so the value can unsubscribe the node before its next run.
func (rt *Runtime) trackRead(unsub func()) {
	if rt.tracking == nil {
		return
	}
	rt.tracking.deps = append(rt.tracking.deps, unsub)
}

// runNode executes a node's body with dependency tracking: stale
// subscriptions are torn down first, tracking is installed, the body
// runs, and tracking is restored. Nested runs (a memo recomputed while an
// effect's body is running) are supported by save/restore of rt.tracking.
func (rt *Runtime) runNode(n *effectNode) {
	if n.disposed {
		return
	}
	n.clearDeps()
	prev := rt.tracking
	rt.tracking = n
	n.run()
	rt.tracking = prev
}

// Update drains the cross-thread queue and the command bus, then runs
// dirty effects to a fixed point (spec.md §4.H phase 1). It reports
// whether any dirty work ran, so RunFrame can skip the remaining phases
// on a quiet frame.
func (rt *Runtime) Update() (didWork bool, err error) {
	rt.drainCrossThreadQueue()
	rt.bus.drain()

	for iter := 0; len(rt.dirtyOrder) > 0; iter++ {
		if iter >= rt.maxIterations {
			rt.dirtySeen = make(map[*effectNode]struct{})
			rt.dirtyOrder = nil
			return true, kerr.ErrReactiveDidNotSettle
		}
		batch := rt.dirtyOrder
		rt.dirtyOrder = nil
		rt.dirtySeen = make(map[*effectNode]struct{})
		didWork = true
		for _, n := range batch {
			rt.runNode(n)
		}
		if rt.cyclic {
			break
		}
	}
	if rt.cyclic {
		rt.cyclic = false
		rt.dirtySeen = make(map[*effectNode]struct{})
		rt.dirtyOrder = nil
		return didWork, kerr.ErrCyclicDependency
	}
	return didWork, nil
}
