// SPDX-License-Identifier: Unlicense OR MIT

// Package kerr defines the sentinel errors shared across the kernel's
// packages: reactive scheduling failures, renderer resource exhaustion,
// and platform host failures (spec.md §3, §4.E, §4.H, §4.K). Callers use
// errors.Is/errors.As against these values rather than string matching.
package kerr

import "fmt"

// Sentinel errors usable directly with errors.Is.
var (
	// ErrCyclicDependency is returned by reactive.Runtime.Update when a
	// memo's compute transitively reads that memo, or when an effect
	// writes a signal it read during the same run.
	ErrCyclicDependency = fmt.Errorf("kerr: cyclic reactive dependency")

	// ErrReactiveDidNotSettle is returned when the frame scheduler's
	// Update phase hits its fixed-point iteration cap without
	// quiescing.
	ErrReactiveDidNotSettle = fmt.Errorf("kerr: reactive graph did not settle within iteration cap")

	// ErrAtlasExhausted is returned when the glyph atlas cannot place a
	// new glyph and eviction did not free enough space.
	ErrAtlasExhausted = fmt.Errorf("kerr: glyph atlas exhausted")

	// ErrSurfaceLost is returned when the GPU surface becomes invalid
	// and must be recreated before the next render.
	ErrSurfaceLost = fmt.Errorf("kerr: render surface lost")

	// ErrRenderTimeout is returned when a render submission does not
	// complete within the renderer's configured deadline.
	ErrRenderTimeout = fmt.Errorf("kerr: render submission timed out")

	// ErrPlatformInitFailed is returned when a platform host backend
	// fails to create its window or canvas surface.
	ErrPlatformInitFailed = fmt.Errorf("kerr: platform initialization failed")

	// ErrUnknownCommand names the case of a dispatched command kind with
	// no registered handler. The command bus does not return it: it logs
	// a warning and drops the command.
	ErrUnknownCommand = fmt.Errorf("kerr: no handler registered for command kind")
)

// RepeatedRenderFailure wraps a render failure that has recurred enough
// times to be treated as fatal (spec.md §4.K: "repeated render failures
// surface as fatal"), recording how many consecutive attempts failed.
type RepeatedRenderFailure struct {
	Attempts int
	Last     error
}

func (e *RepeatedRenderFailure) Error() string {
	return fmt.Sprintf("kerr: render failed %d consecutive times: %v", e.Attempts, e.Last)
}

func (e *RepeatedRenderFailure) Unwrap() error { return e.Last }

// UnknownHighlightLanguage describes a fenced code block that names a
// language outside the built-in supported set. The markdown highlighter
// does not return it: it falls back to a single plain span.
type UnknownHighlightLanguage struct {
	Language string
}

func (e *UnknownHighlightLanguage) Error() string {
	return fmt.Sprintf("kerr: unknown highlight language %q", e.Language)
}
