// SPDX-License-Identifier: Unlicense OR MIT

package dlist

import (
	"testing"

	"kernelui.dev/colorx"
	"kernelui.dev/geom"
)

func TestPushQuadRecordsFields(t *testing.T) {
	l := NewList(true)
	b := geom.Rect(0, 0, 10, 20)
	l.PushQuad(1, b, colorx.Hsl(0, 0, 1), colorx.Hsl(0, 0, 0), 2, geom.Uniform(4))
	if l.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", l.Len())
	}
	cmd := l.Cmds()[0]
	if cmd.Kind != CmdQuad || cmd.Node != 1 || cmd.Bounds != b || cmd.BorderWidth != 2 {
		t.Errorf("unexpected cmd: %+v", cmd)
	}
}

func TestClipPushPopBalanced(t *testing.T) {
	l := NewList(true)
	l.PushClip(geom.Rect(0, 0, 5, 5))
	if l.Balanced() {
		t.Fatal("Balanced() true after unmatched push")
	}
	if err := l.PopClip(); err != nil {
		t.Fatalf("PopClip() = %v", err)
	}
	if !l.Balanced() {
		t.Fatal("Balanced() false after matching pop")
	}
}

func TestPopClipWithoutPushIsError(t *testing.T) {
	l := NewList(true)
	if err := l.PopClip(); err != ErrUnbalancedStack {
		t.Errorf("PopClip() = %v, want ErrUnbalancedStack", err)
	}
}

func TestPopClipWithoutPushIsSilentInReleaseList(t *testing.T) {
	l := NewList(false)
	if err := l.PopClip(); err != nil {
		t.Errorf("PopClip() = %v, want nil in release list", err)
	}
}

func TestTransformPushPopBalanced(t *testing.T) {
	l := NewList(true)
	l.PushTransform(Translate(geom.Point{X: 3, Y: 4}))
	if l.Balanced() {
		t.Fatal("Balanced() true after unmatched push")
	}
	if err := l.PopTransform(); err != nil {
		t.Fatalf("PopTransform() = %v", err)
	}
	if !l.Balanced() {
		t.Fatal("Balanced() false after matching pop")
	}
}

func TestClearResetsState(t *testing.T) {
	l := NewList(true)
	l.PushClip(geom.Rect(0, 0, 1, 1))
	l.PushQuad(0, geom.Bounds{}, colorx.Hsla{}, colorx.Hsla{}, 0, geom.CornerRadii{})
	l.Clear()
	if l.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", l.Len())
	}
	if !l.Balanced() {
		t.Error("Balanced() false after Clear")
	}
}

func TestGlyphRunAndImageRecorded(t *testing.T) {
	l := NewList(true)
	glyphs := []PositionedGlyph{{Glyph: 1, Advance: 5, Font: 2, PixelSize: 16}}
	l.PushGlyphRun(1, geom.Point{X: 1, Y: 2}, glyphs, colorx.Hsl(0, 0, 0))
	l.PushImage(2, geom.Rect(0, 0, 8, 8), ImageHandle(7))
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
	if l.Cmds()[0].Kind != CmdGlyphRun || len(l.Cmds()[0].Glyphs) != 1 {
		t.Errorf("glyph run cmd wrong: %+v", l.Cmds()[0])
	}
	if l.Cmds()[1].Kind != CmdImage || l.Cmds()[1].Image != 7 {
		t.Errorf("image cmd wrong: %+v", l.Cmds()[1])
	}
}
