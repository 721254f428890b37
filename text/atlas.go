// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"kernelui.dev/kerr"
)

// Rect is a glyph's rectangle within an atlas page, in pixels.
type Rect struct {
	Page       int
	X, Y, W, H int
}

type atlasKey struct {
	font  Font
	glyph GlyphID
	ppem  int32
}

type atlasEntry struct {
	next, prev *atlasEntry
	key        atlasKey
	rect       Rect
}

// shelf is a single horizontal strip of a page being packed
// left-to-right; when a glyph doesn't fit, packing starts a new shelf
// above the tallest glyph seen on the current one.
type shelf struct {
	y, height int
	cursorX   int
}

type page struct {
	size   int
	shelfY int
	cur    shelf
}

func newPage(size int) *page {
	return &page{size: size}
}

// alloc places a w x h rectangle on the page, starting a new shelf when
// the current one runs out of width, and reports false if the page has
// no room left at all (not even a fresh shelf).
func (p *page) alloc(w, h int) (Rect, bool) {
	if w > p.size || h > p.size {
		return Rect{}, false
	}
	shelfY, cur := p.shelfY, p.cur
	if cur.cursorX+w > p.size {
		shelfY += cur.height
		cur = shelf{y: shelfY}
	}
	if cur.y+h > p.size {
		return Rect{}, false
	}
	r := Rect{X: cur.cursorX, Y: cur.y, W: w, H: h}
	cur.cursorX += w
	if h > cur.height {
		cur.height = h
	}
	p.shelfY, p.cur = shelfY, cur
	return r, true
}

// Atlas packs rasterized glyphs into fixed-size square pages for GPU
// upload, evicting the least recently used entries when full (spec.md
// §4.D/§4.E: "the glyph atlas evicts least-recently-used pages under
// memory pressure rather than growing unbounded"). It mirrors the
// doubly-linked-list LRU discipline the teacher uses for its shaping and
// path caches, applied here to rasterized glyph rectangles instead of
// shaped runs.
type Atlas struct {
	pageSize   int
	maxEntries int

	pages []*page
	m     map[atlasKey]*atlasEntry
	head  *atlasEntry
	tail  *atlasEntry
}

// NewAtlas creates an Atlas packing glyphs into pageSize x pageSize
// pages, holding at most maxEntries glyphs before evicting.
func NewAtlas(pageSize, maxEntries int) *Atlas {
	a := &Atlas{pageSize: pageSize, maxEntries: maxEntries}
	a.head = new(atlasEntry)
	a.tail = new(atlasEntry)
	a.head.prev = a.tail
	a.tail.next = a.head
	return a
}

func (a *Atlas) key(fnt Font, g GlyphID, ppem float32) atlasKey {
	return atlasKey{font: fnt, glyph: g, ppem: int32(ppem * 64)}
}

// Lookup returns the rectangle previously allocated for this glyph, if
// still resident, touching it as most-recently-used.
func (a *Atlas) Lookup(fnt Font, g GlyphID, ppem float32) (Rect, bool) {
	k := a.key(fnt, g, ppem)
	e, ok := a.m[k]
	if !ok {
		return Rect{}, false
	}
	a.remove(e)
	a.insert(e)
	return e.rect, true
}

// Insert allocates a w x h rectangle for the glyph, evicting
// least-recently-used entries as needed to make room. It fails with
// kerr.ErrAtlasExhausted only when the glyph cannot fit even an empty
// page, since that can never be resolved by evicting more entries.
func (a *Atlas) Insert(fnt Font, g GlyphID, ppem float32, w, h int) (Rect, error) {
	if w > a.pageSize || h > a.pageSize {
		return Rect{}, kerr.ErrAtlasExhausted
	}
	if a.m == nil {
		a.m = make(map[atlasKey]*atlasEntry)
	}
	k := a.key(fnt, g, ppem)
	if e, ok := a.m[k]; ok {
		a.remove(e)
		a.insert(e)
		return e.rect, nil
	}

	rect, pageIdx, ok := a.tryAllocExisting(w, h)
	if !ok {
		for a.evictOne() {
			if rect, pageIdx, ok = a.tryAllocExisting(w, h); ok {
				break
			}
		}
	}
	if !ok {
		p := newPage(a.pageSize)
		r, fits := p.alloc(w, h)
		if !fits {
			return Rect{}, kerr.ErrAtlasExhausted
		}
		pageIdx = len(a.pages)
		a.pages = append(a.pages, p)
		rect = r
	}
	rect.Page = pageIdx

	e := &atlasEntry{key: k, rect: rect}
	a.m[k] = e
	a.insert(e)
	for len(a.m) > a.maxEntries {
		if !a.evictOne() {
			break
		}
	}
	return rect, nil
}

func (a *Atlas) tryAllocExisting(w, h int) (Rect, int, bool) {
	for i, p := range a.pages {
		if r, ok := p.alloc(w, h); ok {
			return r, i, true
		}
	}
	return Rect{}, 0, false
}

// evictOne drops the least-recently-used entry. It does not reclaim
// packed page space (shelf packing is not compacting); eviction frees a
// logical atlas slot and lets a full atlas make progress by starting a
// fresh page once evicted entries stop being re-requested.
func (a *Atlas) evictOne() bool {
	oldest := a.tail.next
	if oldest == a.head {
		return false
	}
	a.remove(oldest)
	delete(a.m, oldest.key)
	return true
}

func (a *Atlas) remove(e *atlasEntry) {
	e.next.prev = e.prev
	e.prev.next = e.next
}

func (a *Atlas) insert(e *atlasEntry) {
	e.next = a.head
	e.prev = a.head.prev
	e.prev.next = e
	e.next.prev = e
}

// Len reports the number of glyphs currently resident in the atlas.
func (a *Atlas) Len() int { return len(a.m) }

// PageCount reports how many atlas pages have been allocated.
func (a *Atlas) PageCount() int { return len(a.pages) }
