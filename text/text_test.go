// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	gotext "github.com/go-text/typesetting/font"
	"testing"
)

type fakeFace struct{ name string }

func (f fakeFace) Face() gotext.Face { return nil }

func TestCollectionResolveExactMatch(t *testing.T) {
	var c Collection
	regular := fakeFace{"regular"}
	bold := fakeFace{"bold"}
	c.Register(Font{Typeface: "Go"}, regular)
	c.Register(Font{Typeface: "Go", Weight: Bold}, bold)

	got, ok := c.Resolve(Font{Typeface: "Go", Weight: Bold})
	if !ok || got != Face(bold) {
		t.Fatalf("Resolve(bold) = %v, %v; want bold face", got, ok)
	}
}

func TestCollectionResolveFallsBackToTypefaceAndVariant(t *testing.T) {
	var c Collection
	regular := fakeFace{"regular"}
	mono := fakeFace{"mono"}
	c.Register(Font{Typeface: "Go"}, regular)
	c.Register(Font{Typeface: "Go", Variant: "Mono"}, mono)

	// No bold-italic variant registered for Mono: falls back to the entry
	// sharing Typeface and Variant, which is checked before the
	// Typeface-only and global first-registered fallbacks.
	got, ok := c.Resolve(Font{Typeface: "Go", Variant: "Mono", Style: Italic, Weight: Bold})
	if !ok || got != Face(mono) {
		t.Fatalf("Resolve = %v, %v; want mono (shares Typeface+Variant)", got, ok)
	}
}

func TestCollectionResolveEmptyReportsFalse(t *testing.T) {
	var c Collection
	if _, ok := c.Resolve(Font{}); ok {
		t.Fatal("Resolve on an empty collection should report false")
	}
}

func TestCollectionRegisterReplacesExactMatch(t *testing.T) {
	var c Collection
	first := fakeFace{"first"}
	second := fakeFace{"second"}
	c.Register(Font{Typeface: "Go"}, first)
	c.Register(Font{Typeface: "Go"}, second)
	if len(c.entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1 (re-registration replaces)", len(c.entries))
	}
	got, _ := c.Resolve(Font{Typeface: "Go"})
	if got != Face(second) {
		t.Fatal("re-registering the same Font should replace, not append")
	}
}

func TestShapeWithUnresolvedFontProducesTofu(t *testing.T) {
	var c Collection // empty: nothing resolves
	s := NewShaper(&c)
	runs, err := s.Shape(Input{Text: "hi", Style: TextStyle{PxPerEm: 16}})
	if err != nil {
		t.Fatalf("Shape: %v", err)
	}
	if len(runs) != 1 || len(runs[0].Glyphs) != 2 {
		t.Fatalf("want one tofu run with 2 glyphs, got %+v", runs)
	}
	for _, g := range runs[0].Glyphs {
		if g.ID != 0 {
			t.Fatalf("tofu glyph should have ID 0, got %d", g.ID)
		}
	}
}

func TestShapeEmptyTextProducesNoRuns(t *testing.T) {
	var c Collection
	s := NewShaper(&c)
	runs, err := s.Shape(Input{Text: "", Style: TextStyle{PxPerEm: 16}})
	if err != nil || runs != nil {
		t.Fatalf("Shape(\"\") = %v, %v; want nil, nil", runs, err)
	}
}
