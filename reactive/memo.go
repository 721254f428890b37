// SPDX-License-Identifier: Unlicense OR MIT

package reactive

// Memo is a lazily-recomputed derived value. It recomputes on the first
// Get after any of its inputs changed, and itself acts as a producer for
// whatever effect or memo reads it (spec.md §4.H).
type Memo[T any] struct {
	rt       *Runtime
	compute  func() T
	value    T
	dirty    bool
	computed bool
	node     *effectNode
	subs     map[*effectNode]struct{}
}

// NewMemo creates a Memo owned by scope. compute must be pure with
// respect to anything other than the signals/memos it reads.
func NewMemo[T any](scope *Scope, compute func() T) *Memo[T] {
	m := &Memo[T]{rt: scope.rt, compute: compute, dirty: true, subs: make(map[*effectNode]struct{})}
	m.node = &effectNode{}
	m.node.run = func() {
		m.dirty = true
		for n := range m.subs {
			m.rt.enqueueDirty(n)
		}
	}
	scope.registerNode(m.node)
	return m
}

// Get returns the up-to-date value, recomputing first if stale. A cycle
// (this memo's compute transitively reading itself) is detected and
// reported to the runtime rather than recursing forever; the stale value
// from before the cycle was introduced is returned.
func (m *Memo[T]) Get() T {
	if m.node.computing {
		m.rt.reportCyclic()
		return m.value
	}
	if m.dirty || !m.computed {
		m.node.computing = true
		m.node.clearDeps()
		prev := m.rt.tracking
		m.rt.tracking = m.node
		m.value = m.compute()
		m.rt.tracking = prev
		m.node.computing = false
		m.dirty = false
		m.computed = true
	}
	if n := m.rt.tracking; n != nil {
		if _, ok := m.subs[n]; !ok {
			m.subs[n] = struct{}{}
			m.rt.trackRead(func() { delete(m.subs, n) })
		}
	}
	return m.value
}
