// SPDX-License-Identifier: Unlicense OR MIT

// Package gpu implements the frame renderer: a rounded-quad SDF pipeline,
// a glyph pipeline sampling a single-channel atlas with premultiplied
// tint, an image pipeline, and a scissor clip stack, walking a dlist.List
// in emission order (spec.md §4.E). It defines the Device/Surface seam a
// concrete backend implements; this package ships none directly (a real
// GPU backend is a platform concern of kernelui.dev/app) but the
// kernelui.dev/gpu/headless package provides a software one for
// deterministic, hardware-free testing (a supplemented feature: spec.md
// §8's renderer-adjacent properties need to be testable without a live
// surface).
package gpu

import (
	"errors"

	"kernelui.dev/colorx"
	"kernelui.dev/dlist"
	"kernelui.dev/geom"
	"kernelui.dev/kerr"
	"kernelui.dev/klog"
	"kernelui.dev/text"
)

// TextureFormat names the pixel layout of a Device texture.
type TextureFormat uint8

const (
	// FormatAlpha8 is a single-channel atlas page texture.
	FormatAlpha8 TextureFormat = iota
	// FormatSRGBA is a four-channel image texture.
	FormatSRGBA
)

// Texture is an opaque GPU-resident image handle a Device allocates.
type Texture struct {
	id int
}

// NewTextureHandle wraps a backend-assigned id as a Texture. Device
// implementations living outside this package (e.g. gpu/headless) use
// this to construct the handles they hand back from NewTexture.
func NewTextureHandle(id int) Texture { return Texture{id: id} }

// ID returns the backend-assigned identifier a Device gave this Texture.
func (t Texture) ID() int { return t.id }

// Device owns GPU resources that outlive a single frame: textures and the
// connection to the windowing surface. A Device implementation is
// supplied by a platform backend (kernelui.dev/app) or, for tests,
// kernelui.dev/gpu/headless.
type Device interface {
	// NewTexture allocates a w x h texture of the given format.
	NewTexture(format TextureFormat, w, h int) (Texture, error)
	// Upload replaces a texture's full contents. len(pixels) must equal
	// w*h for FormatAlpha8 or w*h*4 for FormatSRGBA.
	Upload(t Texture, pixels []byte) error
	// ReleaseTexture frees a texture allocated by NewTexture.
	ReleaseTexture(t Texture)
	// BeginFrame acquires the next swapchain Surface sized w x h. It
	// returns kerr.ErrSurfaceLost when the underlying surface needs
	// rebuilding (e.g. the window was resized or minimized).
	BeginFrame(w, h int) (Surface, error)
	// Rebuild recreates the underlying swapchain after a reported loss.
	Rebuild() error
	// Release tears down the device and all its resources.
	Release()
}

// Surface is a single frame's render target. Its methods are called in
// paint order; Present submits the accumulated work and may return
// kerr.ErrRenderTimeout if the GPU did not complete in time.
type Surface interface {
	Clear(c colorx.Hsla)
	DrawQuad(bounds geom.Bounds, fill, border colorx.Hsla, borderWidth float32, corners geom.CornerRadii)
	DrawGlyphs(page Texture, glyphs []GlyphVertex, tint colorx.Hsla)
	DrawImage(t Texture, dst geom.Bounds, srcW, srcH int)
	PushScissor(r geom.Bounds)
	PopScissor()
	Present() error
}

// GlyphVertex is one atlas-sampled glyph quad, in the coordinate space
// DrawGlyphs's caller (Renderer) has already placed it in.
type GlyphVertex struct {
	Dst geom.Bounds
	Src text.Rect
}

// BufferPool recycles per-frame scratch buffers of GlyphVertex batches so
// a steady-state render loop does not allocate once warmed up, mirroring
// the teacher's per-frame vertex/index buffer reuse in gpu/caches.go.
type BufferPool struct {
	batches [][]GlyphVertex
}

// Get returns a zero-length []GlyphVertex with spare capacity from a
// prior frame, or a fresh one if the pool is empty.
func (p *BufferPool) Get() []GlyphVertex {
	n := len(p.batches)
	if n == 0 {
		return make([]GlyphVertex, 0, 64)
	}
	b := p.batches[n-1]
	p.batches = p.batches[:n-1]
	return b[:0]
}

// Put returns b to the pool for reuse by a future frame.
func (p *BufferPool) Put(b []GlyphVertex) {
	p.batches = append(p.batches, b)
}

// Renderer walks a display list against a Device each frame, implementing
// the surface-loss/timeout/atlas-exhaustion failure model of spec.md
// §4.E.
type Renderer struct {
	log    klog.Logger
	device Device
	atlas  *text.Atlas
	pages  map[int]Texture
	pool   BufferPool

	consecutiveLoss int
}

// NewRenderer creates a Renderer submitting work to device, sampling
// glyphs from atlas.
func NewRenderer(log klog.Logger, device Device, atlas *text.Atlas) *Renderer {
	return &Renderer{log: log, device: device, atlas: atlas, pages: make(map[int]Texture)}
}

// Render draws dl's commands against a w x h surface cleared to bg.
//
// A lost surface triggers one Rebuild-and-retry; a second consecutive
// loss is escalated as a kerr.RepeatedRenderFailure (spec.md: "a second
// consecutive loss escalates to a fatal renderer error"). A render
// timeout aborts just this frame and resets the loss counter so the next
// frame starts clean.
func (r *Renderer) Render(dl *dlist.List, w, h int, bg colorx.Hsla) error {
	surf, err := r.device.BeginFrame(w, h)
	if errors.Is(err, kerr.ErrSurfaceLost) {
		r.consecutiveLoss++
		if r.consecutiveLoss >= 2 {
			return &kerr.RepeatedRenderFailure{Attempts: r.consecutiveLoss, Last: err}
		}
		if err := r.device.Rebuild(); err != nil {
			return err
		}
		surf, err = r.device.BeginFrame(w, h)
		if err != nil {
			r.consecutiveLoss++
			return &kerr.RepeatedRenderFailure{Attempts: r.consecutiveLoss, Last: err}
		}
	} else if err != nil {
		return err
	}
	r.consecutiveLoss = 0

	surf.Clear(bg)
	r.paint(surf, dl)

	if err := surf.Present(); err != nil {
		if errors.Is(err, kerr.ErrRenderTimeout) {
			r.log.Warn("render timeout, aborting frame")
			return nil
		}
		return err
	}
	return nil
}

// paint walks dl in emission order, applying the running translation
// (identity/integer-translation only, spec.md §4.E: "rotations/scales are
// a non-goal") to every positioned command between a PushTransform and
// its matching PopTransform.
func (r *Renderer) paint(surf Surface, dl *dlist.List) {
	var offset geom.Point
	var stack []geom.Point
	for _, cmd := range dl.Cmds() {
		switch cmd.Kind {
		case dlist.CmdQuad:
			surf.DrawQuad(cmd.Bounds.Translate(offset), cmd.Fill, cmd.BorderColor, cmd.BorderWidth, cmd.Corners)
		case dlist.CmdGlyphRun:
			r.paintGlyphRun(surf, cmd, offset)
		case dlist.CmdImage:
			surf.DrawImage(Texture{id: int(cmd.Image)}, cmd.Bounds.Translate(offset), 0, 0)
		case dlist.CmdPushClip:
			surf.PushScissor(cmd.Clip.Translate(offset))
		case dlist.CmdPopClip:
			surf.PopScissor()
		case dlist.CmdPushTransform:
			stack = append(stack, offset)
			offset = offset.Add(cmd.Transform.Offset)
		case dlist.CmdPopTransform:
			if n := len(stack); n > 0 {
				offset = stack[n-1]
				stack = stack[:n-1]
			}
		}
	}
}

// paintGlyphRun batches cmd's glyphs per atlas page, skipping any glyph
// that isn't resident. Rasterizing and inserting a glyph into the atlas
// happens upstream (the text/widget layer, on first use of a new glyph at
// a new size) where kerr.ErrAtlasExhausted is actually produced; here a
// miss just means that upstream Insert already failed for this glyph, so
// painting drops it with a warning and continues -- atlas exhaustion
// fails only the offending run, not the whole frame.
func (r *Renderer) paintGlyphRun(surf Surface, cmd dlist.Cmd, offset geom.Point) {
	batchesByPage := make(map[int][]GlyphVertex)
	for _, g := range cmd.Glyphs {
		rect, ok := r.atlas.Lookup(text.Font{}, text.GlyphID(g.Glyph), g.PixelSize)
		if !ok {
			r.log.Warn("atlas exhausted for glyph run, dropping glyph")
			continue
		}
		dst := geom.Bounds{
			Origin: geom.Point{X: cmd.Origin.X + g.Offset.X + offset.X, Y: cmd.Origin.Y + g.Offset.Y + offset.Y},
			Size:   geom.Size{W: float32(rect.W), H: float32(rect.H)},
		}
		batch, seen := batchesByPage[rect.Page]
		if !seen {
			batch = r.pool.Get()
		}
		batchesByPage[rect.Page] = append(batch, GlyphVertex{Dst: dst, Src: rect})
	}
	for page, batch := range batchesByPage {
		tex, ok := r.pages[page]
		if !ok {
			continue
		}
		surf.DrawGlyphs(tex, batch, cmd.Text)
		r.pool.Put(batch)
	}
}

// RegisterPage associates an already-uploaded atlas page index with its
// Device texture, so DrawGlyphs can sample it.
func (r *Renderer) RegisterPage(page int, t Texture) {
	r.pages[page] = t
}
