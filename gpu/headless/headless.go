// SPDX-License-Identifier: Unlicense OR MIT

// Package headless implements a software gpu.Device/gpu.Surface pair that
// rasterizes a frame straight into an *image.RGBA instead of a live GPU
// surface. It exists to make kernelui.dev/gpu's renderer deterministically
// testable without hardware (a supplemented feature named in
// SPEC_FULL.md, grounded on the teacher's gpu/headless package -- the
// same purpose, "render an op list to an image," reimplemented here in
// pure Go instead of against a real GL/Vulkan context).
package headless

import (
	"image"
	"image/draw"

	"kernelui.dev/colorx"
	"kernelui.dev/geom"
	"kernelui.dev/gpu"
	"kernelui.dev/kerr"
)

// Window is a headless gpu.Device backed by a single in-memory framebuffer,
// mirroring the teacher's headless.Window shape.
type Window struct {
	size image.Point

	texData map[int][]byte
	texFmt  map[int]gpu.TextureFormat
	texW    map[int]int
	texH    map[int]int
	nextTex int

	// loseCount makes the next loseCount BeginFrame calls each report
	// kerr.ErrSurfaceLost once; tests use this to exercise the
	// renderer's rebuild-then-escalate failure path.
	loseCount int
	frame     *image.RGBA
}

// NewWindow creates a headless Window sized width x height.
func NewWindow(width, height int) *Window {
	return &Window{
		size:    image.Point{X: width, Y: height},
		texData: make(map[int][]byte),
		texFmt:  make(map[int]gpu.TextureFormat),
		texW:    make(map[int]int),
		texH:    make(map[int]int),
	}
}

// LoseNextFrame arranges for the next BeginFrame call to report
// kerr.ErrSurfaceLost, simulating a swapchain loss.
func (w *Window) LoseNextFrame() { w.loseCount++ }

// LoseFrames arranges for the next n BeginFrame calls to each report
// kerr.ErrSurfaceLost once, simulating n consecutive swapchain losses.
func (w *Window) LoseFrames(n int) { w.loseCount += n }

func (w *Window) NewTexture(format gpu.TextureFormat, tw, th int) (gpu.Texture, error) {
	w.nextTex++
	id := w.nextTex
	n := tw * th
	if format == gpu.FormatSRGBA {
		n *= 4
	}
	w.texData[id] = make([]byte, n)
	w.texFmt[id] = format
	w.texW[id] = tw
	w.texH[id] = th
	return gpu.NewTextureHandle(id), nil
}

func (w *Window) Upload(t gpu.Texture, pixels []byte) error {
	id := t.ID()
	data, ok := w.texData[id]
	if !ok {
		return kerr.ErrPlatformInitFailed
	}
	copy(data, pixels)
	return nil
}

func (w *Window) ReleaseTexture(t gpu.Texture) {
	delete(w.texData, t.ID())
}

func (w *Window) BeginFrame(width, height int) (gpu.Surface, error) {
	if w.loseCount > 0 {
		w.loseCount--
		return nil, kerr.ErrSurfaceLost
	}
	w.frame = image.NewRGBA(image.Rect(0, 0, width, height))
	return &surface{win: w, img: w.frame}, nil
}

func (w *Window) Rebuild() error {
	w.frame = image.NewRGBA(image.Rectangle{Max: w.size})
	return nil
}

func (w *Window) Release() {}

// Image returns the most recently presented frame.
func (w *Window) Image() *image.RGBA { return w.frame }

// surface is the per-frame gpu.Surface rasterizing into win.frame with
// Go's image/draw instead of a GPU pipeline. Quads are drawn as plain
// rectangular fills: corners are square and borders are not drawn --
// accurate SDF rounding is a hardware-backend concern this software path
// doesn't need to reproduce to be useful for testing the renderer's
// command-walking and failure-model logic.
type surface struct {
	win        *Window
	img        *image.RGBA
	scissor    []image.Rectangle
}

func (s *surface) clipRect() image.Rectangle {
	r := s.img.Bounds()
	for _, c := range s.scissor {
		r = r.Intersect(c)
	}
	return r
}

func (s *surface) Clear(c colorx.Hsla) {
	draw.Draw(s.img, s.img.Bounds(), &image.Uniform{C: c.NRGBA()}, image.Point{}, draw.Src)
}

func (s *surface) DrawQuad(bounds geom.Bounds, fill, border colorx.Hsla, borderWidth float32, corners geom.CornerRadii) {
	r := image.Rect(int(bounds.Origin.X), int(bounds.Origin.Y), int(bounds.Origin.X+bounds.Size.W), int(bounds.Origin.Y+bounds.Size.H)).Intersect(s.clipRect())
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, &image.Uniform{C: fill.NRGBA()}, image.Point{}, draw.Over)
}

func (s *surface) DrawGlyphs(page gpu.Texture, glyphs []gpu.GlyphVertex, tint colorx.Hsla) {
	clip := s.clipRect()
	for _, g := range glyphs {
		r := image.Rect(int(g.Dst.Origin.X), int(g.Dst.Origin.Y), int(g.Dst.Origin.X+g.Dst.Size.W), int(g.Dst.Origin.Y+g.Dst.Size.H)).Intersect(clip)
		if r.Empty() {
			continue
		}
		draw.Draw(s.img, r, &image.Uniform{C: tint.NRGBA()}, image.Point{}, draw.Over)
	}
}

func (s *surface) DrawImage(t gpu.Texture, dst geom.Bounds, srcW, srcH int) {
	data, ok := s.win.texData[t.ID()]
	if !ok {
		return
	}
	tw := s.win.texW[t.ID()]
	th := s.win.texH[t.ID()]
	if tw == 0 || th == 0 {
		return
	}
	src := &image.RGBA{Pix: data, Stride: tw * 4, Rect: image.Rect(0, 0, tw, th)}
	r := image.Rect(int(dst.Origin.X), int(dst.Origin.Y), int(dst.Origin.X+dst.Size.W), int(dst.Origin.Y+dst.Size.H)).Intersect(s.clipRect())
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, src, image.Point{}, draw.Over)
}

func (s *surface) PushScissor(r geom.Bounds) {
	rect := image.Rect(int(r.Origin.X), int(r.Origin.Y), int(r.Origin.X+r.Size.W), int(r.Origin.Y+r.Size.H))
	s.scissor = append(s.scissor, rect)
}

func (s *surface) PopScissor() {
	if n := len(s.scissor); n > 0 {
		s.scissor = s.scissor[:n-1]
	}
}

func (s *surface) Present() error {
	s.win.frame = s.img
	return nil
}
