// SPDX-License-Identifier: Unlicense OR MIT

package text

import "testing"

func TestAtlasInsertThenLookupHits(t *testing.T) {
	a := NewAtlas(256, 100)
	fnt := Font{Typeface: "Go"}
	r, err := a.Insert(fnt, 5, 16, 10, 12)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	got, ok := a.Lookup(fnt, 5, 16)
	if !ok || got != r {
		t.Fatalf("Lookup = %v, %v; want %v, true", got, ok, r)
	}
}

func TestAtlasEvictsLeastRecentlyUsed(t *testing.T) {
	a := NewAtlas(256, 2)
	fnt := Font{Typeface: "Go"}
	a.Insert(fnt, 1, 16, 4, 4)
	a.Insert(fnt, 2, 16, 4, 4)
	// Touch glyph 1 so it is more recently used than glyph 2.
	a.Lookup(fnt, 1, 16)
	a.Insert(fnt, 3, 16, 4, 4)

	if _, ok := a.Lookup(fnt, 2, 16); ok {
		t.Fatal("glyph 2 should have been evicted as least recently used")
	}
	if _, ok := a.Lookup(fnt, 1, 16); !ok {
		t.Fatal("glyph 1 should still be resident")
	}
	if _, ok := a.Lookup(fnt, 3, 16); !ok {
		t.Fatal("glyph 3 should be resident")
	}
}

func TestAtlasGlyphLargerThanPageFails(t *testing.T) {
	a := NewAtlas(64, 100)
	_, err := a.Insert(Font{}, 1, 16, 128, 128)
	if err == nil {
		t.Fatal("expected an error for a glyph larger than the page size")
	}
}

func TestAtlasStartsNewPageWhenShelfFull(t *testing.T) {
	a := NewAtlas(16, 100)
	fnt := Font{Typeface: "Go"}
	for i := 0; i < 8; i++ {
		if _, err := a.Insert(fnt, GlyphID(i), 16, 10, 10); err != nil {
			t.Fatalf("Insert glyph %d: %v", i, err)
		}
	}
	if a.PageCount() < 2 {
		t.Fatalf("PageCount = %d, want at least 2 pages for 8 non-packing 10x10 glyphs on a 16x16 page", a.PageCount())
	}
}
