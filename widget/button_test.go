// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"testing"

	"kernelui.dev/input"
)

func TestButtonRequestLayoutWiresLabel(t *testing.T) {
	cx, tree := newTestContext()
	b := NewButton("OK")

	b.RequestLayout(cx)

	kids := tree.Children(b.Node())
	if len(kids) != 1 || kids[0] != b.label.Node() {
		t.Fatalf("Children(button) = %v, want [%d] (the label)", kids, b.label.Node())
	}
}

func TestButtonClickableReportsClickAfterPressRelease(t *testing.T) {
	cx, _ := newTestContext()
	b := NewButton("OK")
	b.RequestLayout(cx)

	b.HandleEvent(input.Event{Kind: input.PointerDown})
	if !b.Clickable.Pressed() {
		t.Fatal("Pressed() = false after PointerDown, want true")
	}
	b.HandleEvent(input.Event{Kind: input.PointerUp})
	if b.Clickable.Pressed() {
		t.Fatal("Pressed() = true after PointerUp, want false")
	}
	if !b.Clickable.Clicked() {
		t.Fatal("Clicked() = false after a full press/release, want true")
	}
	if b.Clickable.Clicked() {
		t.Fatal("Clicked() should dequeue: a second call should report false")
	}
}
