// SPDX-License-Identifier: Unlicense OR MIT

package kernel

import (
	"testing"
	"time"

	"kernelui.dev/app"
	"kernelui.dev/app/headless"
	"kernelui.dev/geom"
	"kernelui.dev/input"
	"kernelui.dev/layout"
	"kernelui.dev/reactive"
	"kernelui.dev/widget"
)

func newTestEngine() (*Engine, *headless.Platform) {
	plat := headless.New(app.NewConfig(app.Size(200, 100)), 1, NewConfig().Logger)
	e := New(NewConfig(), plat)
	return e, plat
}

// dirty installs a signal with one subscribed effect and returns a
// function that writes it, forcing the next RunFrame's Update to see
// dirty work even when the widget tree itself holds no reactive state.
func dirty(e *Engine) func() {
	sig := reactive.NewSignal(e.Runtime, 0)
	reactive.NewEffect(e.Scope, func() { sig.Get() })
	n := 0
	return func() {
		n++
		sig.Set(n)
	}
}

func TestRunFrameOnAQuietFrameDoesNotRender(t *testing.T) {
	e, plat := newTestEngine()
	root := &widget.Div{Style: layout.Style{Width: geom.Abs(50), Height: geom.Abs(50)}}
	e.SetRoot(root)

	if err := e.RunFrame(0); err != nil {
		t.Fatalf("RunFrame on an idle engine = %v, want nil", err)
	}
	if plat.Image() != nil {
		t.Fatal("a quiet frame (no dirty reactive work) rendered a frame, want it to skip Render entirely")
	}
}

func TestRunFrameLaysOutAndRendersTheRootWidget(t *testing.T) {
	e, plat := newTestEngine()
	root := &widget.Div{
		Style:   layout.Style{Width: geom.Abs(50), Height: geom.Abs(50)},
		Fill:    e.cx.Theme.Color(0),
		HasFill: true,
	}
	e.SetRoot(root)
	bump := dirty(e)
	bump()

	if err := e.RunFrame(16 * time.Millisecond); err != nil {
		t.Fatalf("RunFrame: %v", err)
	}
	bounds := e.Tree.Bounds(root.Node())
	if bounds.Size.W != 50 || bounds.Size.H != 50 {
		t.Fatalf("root bounds = %+v, want a 50x50 box", bounds)
	}
	if e.Display.Len() == 0 {
		t.Fatal("Paint emitted no display-list commands for a filled Div")
	}
	if plat.Image() == nil {
		t.Fatal("Render did not produce a framebuffer")
	}
}

// handlerDiv overrides Div's always-ignore HandleEvent so dispatch tests
// can observe delivery.
type handlerDiv struct {
	widget.Div
	handled bool
}

func (h *handlerDiv) HandleEvent(ev input.Event) input.Disposition {
	h.handled = true
	return input.Handled
}

func TestDispatchRoutesThroughHitIndexPopulatedByPaint(t *testing.T) {
	e, _ := newTestEngine()
	root := &handlerDiv{Div: widget.Div{Style: layout.Style{Width: geom.Abs(50), Height: geom.Abs(50)}}}
	e.SetRoot(root)
	bump := dirty(e)
	bump()

	if err := e.RunFrame(0); err != nil {
		t.Fatalf("RunFrame: %v", err)
	}

	disp := e.Dispatch(input.Event{Kind: input.PointerDown, Position: geom.Point{X: 25, Y: 25}})
	if disp != input.Handled || !root.handled {
		t.Fatalf("Dispatch(pointer down inside root bounds) = %v, handled=%v, want Handled/true", disp, root.handled)
	}
}

func TestNewMarkdownSourceSharesEngineHighlighter(t *testing.T) {
	e, _ := newTestEngine()
	src := e.NewMarkdownSource()
	src.Append("```go\nfunc f() {}\n```\n", 0)
	src.Complete()

	var sawHighlighted bool
	for _, b := range src.Document().Blocks {
		for _, s := range b.Spans {
			if s.Highlighted {
				sawHighlighted = true
			}
		}
	}
	if !sawHighlighted {
		t.Fatal("markdown source built by NewMarkdownSource produced no highlighted spans")
	}
}

func TestSetRootRegistersTreeRootForManualLayout(t *testing.T) {
	e, _ := newTestEngine()
	root := &widget.Div{Style: layout.Style{Width: geom.Abs(10), Height: geom.Abs(10)}}
	e.SetRoot(root)

	e.Tree.Layout(geom.Point{}, layout.Tight(e.Platform.LogicalSize()))
	bounds := e.Tree.Bounds(root.Node())
	if bounds.Size.W != 10 || bounds.Size.H != 10 {
		t.Fatalf("bounds after a manual Layout call = %+v, want a 10x10 box (SetRoot must register the root)", bounds)
	}
}
