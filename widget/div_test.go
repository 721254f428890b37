// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"testing"

	"kernelui.dev/colorx"
	"kernelui.dev/dlist"
	"kernelui.dev/geom"
	"kernelui.dev/layout"
)

func TestDivRequestLayoutReusesNodeAcrossFrames(t *testing.T) {
	cx, _ := newTestContext()
	d := &Div{}

	first := d.RequestLayout(cx)
	second := d.RequestLayout(cx)
	if first == 0 || first != second {
		t.Fatalf("RequestLayout returned %d then %d, want a stable nonzero node", first, second)
	}
}

func TestDivRequestLayoutWiresChildren(t *testing.T) {
	cx, tree := newTestContext()
	child := &Div{}
	parent := &Div{Children: []Widget{child}}

	parent.RequestLayout(cx)

	kids := tree.Children(parent.Node())
	if len(kids) != 1 || kids[0] != child.Node() {
		t.Fatalf("Children(parent) = %v, want [%d]", kids, child.Node())
	}
}

func TestDivPaintEmitsQuadOnlyWhenFilled(t *testing.T) {
	cx, tree := newTestContext()
	d := &Div{Fill: colorx.Hsl(0, 0, 1), HasFill: true}
	d.RequestLayout(cx)
	tree.Layout(geom.Point{}, layout.Tight(geom.Size{W: 10, H: 10}))

	d.Paint(cx)
	if n := cx.Display.Len(); n != 1 {
		t.Fatalf("Display.Len() = %d after filled Div.Paint, want 1", n)
	}
	cmds := cx.Display.Cmds()
	if cmds[0].Kind != dlist.CmdQuad {
		t.Fatalf("cmd.Kind = %v, want CmdQuad", cmds[0].Kind)
	}

	cx.Display.Clear()
	unfilled := &Div{}
	unfilled.RequestLayout(cx)
	unfilled.Paint(cx)
	if n := cx.Display.Len(); n != 0 {
		t.Fatalf("Display.Len() = %d after unfilled Div.Paint, want 0", n)
	}
}
