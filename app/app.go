// SPDX-License-Identifier: Unlicense OR MIT

// Package app defines the platform host seam (spec.md §4.K): a Platform
// capability set any window or canvas backend implements, the raw
// WindowEvent union a backend delivers and that gets translated into the
// kernel's normalized input.Event, and the Clipboard contract.
//
// This package ships the seam and a functional-option Config, following
// the teacher's own app.Option/Window shape (gioui.org/app's Option func
// configuring a Window, Title/Size/MinSize/MaxSize constructors). A
// concrete, deterministically-testable backend lives in app/headless,
// mirroring how kernelui.dev/gpu ships its Device/Surface seam alongside
// gpu/headless rather than a live GPU driver. Real window (X11/Wayland/
// Win32/Cocoa) and canvas (WASM/DOM) backends need OS-specific cgo or
// syscall bindings and a live windowing system to stand up and verify;
// neither is available to this module without the Go toolchain, so only
// their event-translation and lifecycle contracts are specified here
// (see DESIGN.md's entry for this package for what was dropped and why).
package app

import (
	"time"

	"kernelui.dev/dlist"
	"kernelui.dev/geom"
	"kernelui.dev/input"
	"kernelui.dev/io/key"
	"kernelui.dev/io/pointer"
)

// Config holds a window's requested geometry and title, built up via
// Option functions (spec.md §4.K's "logical_size/scale_factor" are read
// back from the live Platform; Config only carries the host's initial
// request).
type Config struct {
	Title              string
	Width, Height      float32
	MinWidth, MinHeight float32
	MaxWidth, MaxHeight float32
}

// Option configures a Config, following the teacher's app.Option shape
// (gioui.org/app: Option func(unit.Metric, *Config)) simplified to this
// module's plain float32 logical units (no separate metric/density
// argument -- ScaleFactor is a Platform property read at runtime, not a
// per-option conversion).
type Option func(*Config)

// Title sets the window's title.
func Title(t string) Option {
	return func(c *Config) { c.Title = t }
}

// Size sets the window's initial logical size.
func Size(w, h float32) Option {
	return func(c *Config) { c.Width, c.Height = w, h }
}

// MinSize sets the window's minimum logical size.
func MinSize(w, h float32) Option {
	return func(c *Config) { c.MinWidth, c.MinHeight = w, h }
}

// MaxSize sets the window's maximum logical size.
func MaxSize(w, h float32) Option {
	return func(c *Config) { c.MaxWidth, c.MaxHeight = w, h }
}

// NewConfig builds a Config from a sequence of Options, defaulting to an
// 800x600 untitled window.
func NewConfig(opts ...Option) Config {
	c := Config{Title: "", Width: 800, Height: 600}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WindowEventKind discriminates the variant carried by a WindowEvent, the
// raw, backend-specific event a Platform receives before normalization.
type WindowEventKind uint8

const (
	// WindowPointer carries a raw pointer (mouse/touch) event.
	WindowPointer WindowEventKind = iota
	// WindowWheel carries a raw wheel/trackpad scroll event.
	WindowWheel
	// WindowKey carries a raw key press/release.
	WindowKey
	// WindowText carries committed text from the platform's text-input
	// service (spec.md §4.K: "committed text via TextInput").
	WindowText
	// WindowIME carries an in-progress composition string (spec.md
	// §4.K: "composition strings are reported via ImeComposition").
	WindowIME
	// WindowResize carries a logical-size or scale-factor change.
	WindowResize
	// WindowClose signals the host requested the window close.
	WindowClose
)

// WindowEvent is the raw event a backend's event loop receives, before
// HandleWindowEvent normalizes it into an input.Event.
type WindowEvent struct {
	Kind WindowEventKind
	Time time.Duration

	Position  geom.Point
	Buttons   pointer.Buttons // valid when Kind == WindowPointer
	Scroll    geom.Point
	Modifiers key.Modifiers

	Key    key.Name
	Code   uint32
	Repeat bool

	Text string

	Composition      string
	CompositionStart int
	CompositionEnd   int

	Size        geom.Size
	ScaleFactor float32
}

// Clipboard exposes synchronous get/set (spec.md §4.K). A canvas backend
// whose underlying browser clipboard API is asynchronous and
// permission-gated still satisfies this interface by blocking internally
// (e.g. on a resolved promise) and returning ("", false) on denial, per
// the "tolerate None" failure model.
type Clipboard interface {
	// Set writes text to the system clipboard.
	Set(text string) error
	// Get reads the system clipboard. The bool is false if the
	// clipboard is empty, holds non-text content, or access was denied.
	Get() (string, bool)
}

// Platform is the capability set a backend implements: logical size and
// scale-factor queries, redraw scheduling, rendering a display list,
// translating raw window events into the kernel's normalized input
// events, registering an animation-tick callback for frame-driven
// updates (fling momentum, streaming-markdown debounce ticks), clipboard
// access and teardown. It has no text-system accessor; the shaper and
// glyph atlas are not reachable through a Platform.
type Platform interface {
	// LogicalSize returns the window's current content size in logical
	// (density-independent) units.
	LogicalSize() geom.Size
	// ScaleFactor returns the current logical-to-physical pixel ratio.
	ScaleFactor() float32
	// RequestRedraw schedules a frame; backends coalesce repeated calls
	// within one frame interval into a single redraw.
	RequestRedraw()
	// Render submits a display list for presentation. A lost surface is
	// rebuilt and retried once within the call; a second consecutive
	// loss is returned as a kerr.RepeatedRenderFailure.
	Render(dl *dlist.List) error
	// HandleWindowEvent translates one raw WindowEvent into the
	// kernel's normalized input.Event. ok is false when the raw event
	// has no input.Event counterpart: resize and close events update
	// the platform's own state (or nothing) and are never reported as
	// input events. An unrecognized key is still propagated with its
	// raw Code.
	HandleWindowEvent(e WindowEvent) (ev input.Event, ok bool)
	// AnimationTick registers a callback invoked once per frame tick
	// (driven by the native event loop on a window host, by
	// requestAnimationFrame on a canvas host) with the frame's
	// timestamp.
	AnimationTick(callback func(now time.Duration))
	// Clipboard returns the platform's clipboard, or nil if this
	// backend does not support one.
	Clipboard() Clipboard
	// Close tears down the window/surface and its resources.
	Close()
}
