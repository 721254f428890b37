// SPDX-License-Identifier: Unlicense OR MIT

package reactive

// Signal is a mutable reactive cell. Reading it inside an effect or
// memo's body records a dependency; reading it outside one does not
// (spec.md §4.H).
type Signal[T any] struct {
	rt    *Runtime
	value T
	subs  map[*effectNode]struct{}
}

// NewSignal creates a Signal holding initial, scheduled on rt.
func NewSignal[T any](rt *Runtime, initial T) *Signal[T] {
	return &Signal[T]{rt: rt, value: initial, subs: make(map[*effectNode]struct{})}
}

// Get returns the current value, subscribing the currently tracking
// effect or memo (if any) to future changes.
func (s *Signal[T]) Get() T {
	if n := s.rt.tracking; n != nil {
		if _, ok := s.subs[n]; !ok {
			s.subs[n] = struct{}{}
			s.rt.trackRead(func() { delete(s.subs, n) })
		}
	}
	return s.value
}

// Peek returns the current value without recording a dependency.
func (s *Signal[T]) Peek() T {
	return s.value
}

// Set writes v and enqueues every dependent effect/memo once, deduplicated
// (spec.md §4.H). Enqueuing only marks work dirty; it never runs a
// dependent synchronously, so a Set call made from inside an effect body
// is deferred until that effect completes, matching the no-re-entrant-
// notification rule.
//
// A node that both reads s (subscribing itself) and writes s from within
// its own body is a direct cycle, not ordinary settling work: it would
// re-enqueue itself forever, so it is reported via kerr.ErrCyclicDependency
// (spec.md §8 scenario 6) instead of silently running until the iteration
// cap trips ErrReactiveDidNotSettle.
func (s *Signal[T]) Set(v T) {
	s.value = v
	if n := s.rt.tracking; n != nil {
		if _, ok := s.subs[n]; ok {
			s.rt.reportCyclic()
		}
	}
	for n := range s.subs {
		s.rt.enqueueDirty(n)
	}
}

// Update reads the current value, applies f, and writes the result back.
func (s *Signal[T]) Update(f func(T) T) {
	s.Set(f(s.value))
}
