// SPDX-License-Identifier: Unlicense OR MIT

package headless

import (
	"errors"
	"testing"

	"kernelui.dev/colorx"
	"kernelui.dev/dlist"
	"kernelui.dev/geom"
	"kernelui.dev/gpu"
	"kernelui.dev/kerr"
	"kernelui.dev/klog"
	"kernelui.dev/text"
)

func TestRenderClearsBackground(t *testing.T) {
	win := NewWindow(4, 4)
	atlas := text.NewAtlas(256, 100)
	r := gpu.NewRenderer(klog.Nop(), win, atlas)

	dl := dlist.NewList(true)
	dl.PushQuad(0, geom.Rect(0, 0, 2, 2), colorx.Hsl(0, 0, 1), colorx.Hsla{}, 0, geom.CornerRadii{})

	if err := r.Render(dl, 4, 4, colorx.Hsl(0, 0, 0)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	img := win.Image()
	if img == nil {
		t.Fatal("no frame presented")
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Fatalf("frame size = %v, want 4x4", img.Bounds())
	}
}

func TestRenderEscalatesAfterTwoConsecutiveSurfaceLosses(t *testing.T) {
	win := NewWindow(4, 4)
	atlas := text.NewAtlas(256, 100)
	r := gpu.NewRenderer(klog.Nop(), win, atlas)
	dl := dlist.NewList(true)

	win.LoseNextFrame()
	if err := r.Render(dl, 4, 4, colorx.Hsl(0, 0, 0)); err != nil {
		t.Fatalf("first loss should rebuild and succeed, got %v", err)
	}

	// Lose both the initial BeginFrame and its one rebuild-retry within
	// the same Render call, so the loss is unrecoverable this frame.
	win.LoseFrames(2)
	err := r.Render(dl, 4, 4, colorx.Hsl(0, 0, 0))
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	var rf *kerr.RepeatedRenderFailure
	if !errors.As(err, &rf) {
		t.Fatalf("expected *kerr.RepeatedRenderFailure, got %T: %v", err, err)
	}
}
