// SPDX-License-Identifier: Unlicense OR MIT

package headless

import (
	"testing"
	"time"

	"kernelui.dev/app"
	"kernelui.dev/colorx"
	"kernelui.dev/dlist"
	"kernelui.dev/geom"
	"kernelui.dev/input"
	"kernelui.dev/klog"
)

func newTestPlatform() *Platform {
	return New(app.NewConfig(app.Size(100, 50)), 1, klog.Nop())
}

func TestLogicalSizeAndScaleFactorReflectConfig(t *testing.T) {
	p := newTestPlatform()
	if got := p.LogicalSize(); got.W != 100 || got.H != 50 {
		t.Fatalf("LogicalSize() = %+v, want {100 50}", got)
	}
	if got := p.ScaleFactor(); got != 1 {
		t.Fatalf("ScaleFactor() = %v, want 1", got)
	}
}

func TestRenderClearsRedrawRequested(t *testing.T) {
	p := newTestPlatform()
	p.RequestRedraw()
	if !p.RedrawRequested() {
		t.Fatal("RedrawRequested() = false after RequestRedraw")
	}
	if p.RedrawRequested() {
		t.Fatal("RedrawRequested() did not clear on read")
	}

	p.RequestRedraw()
	dl := dlist.NewList(true)
	if err := p.Render(dl); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if p.RedrawRequested() {
		t.Fatal("Render did not clear a pending redraw request")
	}
}

func TestRenderPaintsIntoImage(t *testing.T) {
	p := newTestPlatform()
	dl := dlist.NewList(true)
	dl.PushQuad(0, geom.Rect(0, 0, 10, 10), colorx.Hsl(0, 0, 1), colorx.Hsla{}, 0, geom.CornerRadii{})

	if err := p.Render(dl); err != nil {
		t.Fatalf("Render: %v", err)
	}
	img := p.Image()
	if img == nil || img.Bounds().Dx() != 100 || img.Bounds().Dy() != 50 {
		t.Fatalf("Image() bounds = %+v, want 100x50", img.Bounds())
	}
}

func TestRenderRecoversFromASingleSurfaceLoss(t *testing.T) {
	p := newTestPlatform()
	p.LoseNextFrame()
	dl := dlist.NewList(true)

	if err := p.Render(dl); err != nil {
		t.Fatalf("Render after one lost frame = %v, want nil (rebuild-then-retry recovers within one call)", err)
	}
}

func TestRenderEscalatesAfterTwoConsecutiveSurfaceLosses(t *testing.T) {
	p := newTestPlatform()
	p.win.LoseFrames(2)
	dl := dlist.NewList(true)

	if err := p.Render(dl); err == nil {
		t.Fatal("Render after two consecutive lost frames returned nil, want a RepeatedRenderFailure")
	}
}

func TestHandleWindowEventTranslatesPointerDown(t *testing.T) {
	p := newTestPlatform()
	ev, ok := p.HandleWindowEvent(app.WindowEvent{
		Kind:     app.WindowPointer,
		Position: geom.Point{X: 5, Y: 5},
		Buttons:  1,
	})
	if !ok || ev.Kind != input.PointerDown {
		t.Fatalf("HandleWindowEvent(pointer down) = %+v, ok=%v", ev, ok)
	}
}

func TestHandleWindowEventTranslatesText(t *testing.T) {
	p := newTestPlatform()
	ev, ok := p.HandleWindowEvent(app.WindowEvent{Kind: app.WindowText, Text: "a"})
	if !ok || ev.Kind != input.TextInput || ev.Text != "a" {
		t.Fatalf("HandleWindowEvent(text) = %+v, ok=%v", ev, ok)
	}
}

func TestHandleWindowEventResizeUpdatesSizeWithoutEmittingInputEvent(t *testing.T) {
	p := newTestPlatform()
	_, ok := p.HandleWindowEvent(app.WindowEvent{Kind: app.WindowResize, Size: geom.Size{W: 200, H: 80}})
	if ok {
		t.Fatal("HandleWindowEvent(resize) produced an input.Event, want none")
	}
	if got := p.LogicalSize(); got.W != 200 || got.H != 80 {
		t.Fatalf("LogicalSize() after resize = %+v, want {200 80}", got)
	}
}

func TestHandleWindowEventResizeNoOpWhenSizeUnchanged(t *testing.T) {
	p := newTestPlatform()
	_, ok := p.HandleWindowEvent(app.WindowEvent{Kind: app.WindowResize, Size: p.LogicalSize()})
	if ok {
		t.Fatal("HandleWindowEvent(resize, unchanged size) produced an input.Event")
	}
}

func TestAnimationTickInvokesRegisteredCallbacks(t *testing.T) {
	p := newTestPlatform()
	var got time.Duration
	p.AnimationTick(func(now time.Duration) { got = now })

	p.Tick(42 * time.Millisecond)
	if got != 42*time.Millisecond {
		t.Fatalf("tick callback saw now = %v, want 42ms", got)
	}
}

func TestClipboardRoundTripsAndTolerantOfEmpty(t *testing.T) {
	p := newTestPlatform()
	clip := p.Clipboard()

	if _, ok := clip.Get(); ok {
		t.Fatal("Get() on an empty clipboard returned ok=true")
	}
	if err := clip.Set("hello"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := clip.Get()
	if !ok || got != "hello" {
		t.Fatalf("Get() = (%q, %v), want (\"hello\", true)", got, ok)
	}
}
