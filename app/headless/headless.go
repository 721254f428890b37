// SPDX-License-Identifier: Unlicense OR MIT

// Package headless implements app.Platform without a live window or
// canvas, for deterministic testing of the platform-host seam (spec.md
// §4.K) the same way kernelui.dev/gpu/headless stands in for a live GPU
// context: a software gpu.Device rasterizing into an in-memory
// framebuffer, WindowEvents handed directly to HandleWindowEvent in place
// of a native event loop, and an in-memory Clipboard in place of the OS
// clipboard.
package headless

import (
	"image"
	"time"

	"kernelui.dev/app"
	"kernelui.dev/colorx"
	"kernelui.dev/dlist"
	"kernelui.dev/geom"
	"kernelui.dev/gpu"
	gpuheadless "kernelui.dev/gpu/headless"
	"kernelui.dev/input"
	"kernelui.dev/klog"
	"kernelui.dev/text"
)

// MemoryClipboard is an in-process Clipboard, grounded on the teacher's
// app/clipboard contract (Read() (string, error) / Write(string) error)
// simplified to this module's (string, bool) "tolerate None" shape.
type MemoryClipboard struct {
	text string
	set  bool
}

func (c *MemoryClipboard) Set(text string) error {
	c.text, c.set = text, true
	return nil
}

func (c *MemoryClipboard) Get() (string, bool) {
	if !c.set {
		return "", false
	}
	return c.text, true
}

// Platform is a software app.Platform: a gpu/headless.Window device, a
// gpu.Renderer over a freshly-allocated text.Atlas, and a manually-driven
// animation-tick hook. Tests construct one, call HandleWindowEvent
// directly with synthesized WindowEvents, and call Tick to drive
// AnimationTick callbacks -- there is no real event loop.
type Platform struct {
	size        geom.Size
	scaleFactor float32
	background  colorx.Hsla

	win      *gpuheadless.Window
	renderer *gpu.Renderer
	atlas    *text.Atlas
	clip     MemoryClipboard

	redrawRequested bool
	tickCallbacks   []func(now time.Duration)
}

// SetBackground sets the clear color Render uses under the painted
// display list; it defaults to opaque black.
func (p *Platform) SetBackground(c colorx.Hsla) { p.background = c }

// New creates a headless Platform sized to cfg's initial logical size, at
// the given scale factor (1.0 for an unscaled display), logging through
// log (klog.Nop() is a valid default).
func New(cfg app.Config, scaleFactor float32, log klog.Logger) *Platform {
	if scaleFactor <= 0 {
		scaleFactor = 1
	}
	w := int(cfg.Width * scaleFactor)
	h := int(cfg.Height * scaleFactor)
	win := gpuheadless.NewWindow(w, h)
	atlas := text.NewAtlas(1024, 4096)
	return &Platform{
		size:        geom.Size{W: cfg.Width, H: cfg.Height},
		scaleFactor: scaleFactor,
		background:  colorx.Hsl(0, 0, 0),
		win:         win,
		renderer:    gpu.NewRenderer(log, win, atlas),
		atlas:       atlas,
	}
}

func (p *Platform) LogicalSize() geom.Size { return p.size }

func (p *Platform) ScaleFactor() float32 { return p.scaleFactor }

func (p *Platform) RequestRedraw() { p.redrawRequested = true }

// RedrawRequested reports and clears whether RequestRedraw was called
// since the last check, for tests asserting on redraw coalescing.
func (p *Platform) RedrawRequested() bool {
	r := p.redrawRequested
	p.redrawRequested = false
	return r
}

// LoseNextFrame arranges for the next Render call to report
// kerr.ErrSurfaceLost, exercising the recover-then-escalate path.
func (p *Platform) LoseNextFrame() { p.win.LoseNextFrame() }

func (p *Platform) Render(dl *dlist.List) error {
	w := int(p.size.W * p.scaleFactor)
	h := int(p.size.H * p.scaleFactor)
	err := p.renderer.Render(dl, w, h, p.background)
	if err == nil {
		p.redrawRequested = false
	}
	return err
}

// Image returns the most recently presented frame, for asserting on
// rendered output in tests.
func (p *Platform) Image() *image.RGBA { return p.win.Image() }

func (p *Platform) HandleWindowEvent(e app.WindowEvent) (input.Event, bool) {
	switch e.Kind {
	case app.WindowPointer:
		kind := input.PointerMove
		if e.Buttons != 0 {
			kind = input.PointerDown
		}
		return input.Event{Kind: kind, Time: e.Time, Position: e.Position, Button: e.Buttons, Modifiers: e.Modifiers}, true
	case app.WindowWheel:
		return input.Event{Kind: input.Wheel, Time: e.Time, Position: e.Position, Scroll: e.Scroll, Modifiers: e.Modifiers}, true
	case app.WindowKey:
		kind := input.KeyDown
		return input.Event{Kind: kind, Time: e.Time, Key: e.Key, Code: e.Code, Repeat: e.Repeat, Modifiers: e.Modifiers}, true
	case app.WindowText:
		return input.Event{Kind: input.TextInput, Time: e.Time, Text: e.Text}, true
	case app.WindowIME:
		return input.Event{Kind: input.ImeComposition, Time: e.Time, Composition: e.Composition, CompositionStart: e.CompositionStart, CompositionEnd: e.CompositionEnd}, true
	case app.WindowResize:
		if e.Size == p.size {
			return input.Event{}, false
		}
		p.size = e.Size
		if e.ScaleFactor > 0 {
			p.scaleFactor = e.ScaleFactor
		}
		return input.Event{}, false
	case app.WindowClose:
		return input.Event{}, false
	default:
		return input.Event{}, false
	}
}

func (p *Platform) AnimationTick(callback func(now time.Duration)) {
	p.tickCallbacks = append(p.tickCallbacks, callback)
}

// Tick drives every registered AnimationTick callback with now, standing
// in for one native event-loop iteration or requestAnimationFrame call.
func (p *Platform) Tick(now time.Duration) {
	for _, cb := range p.tickCallbacks {
		cb(now)
	}
}

func (p *Platform) Clipboard() app.Clipboard { return &p.clip }

func (p *Platform) Close() { p.win.Release() }
