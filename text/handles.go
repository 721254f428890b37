// SPDX-License-Identifier: Unlicense OR MIT

package text

import "kernelui.dev/dlist"

// HandleRegistry assigns a stable dlist.FontHandle to each distinct Font
// requested, so a display list can reference a font by a small integer
// instead of copying the full Font value into every glyph run. The
// renderer's atlas keys (Font, GlyphID, ppem) and a FontHandle both
// ultimately name the same face; the registry is the seam between the
// two so paint code never has to carry both.
type HandleRegistry struct {
	handles map[Font]dlist.FontHandle
	byID    []Font
}

// NewHandleRegistry creates an empty registry.
func NewHandleRegistry() *HandleRegistry {
	return &HandleRegistry{handles: make(map[Font]dlist.FontHandle), byID: []Font{{}}}
}

// Handle returns the stable handle for f, assigning the next free one on
// first use.
func (r *HandleRegistry) Handle(f Font) dlist.FontHandle {
	if h, ok := r.handles[f]; ok {
		return h
	}
	h := dlist.FontHandle(len(r.byID))
	r.handles[f] = h
	r.byID = append(r.byID, f)
	return h
}

// Font reverses Handle, reporting false for the reserved zero handle or
// one never issued by this registry.
func (r *HandleRegistry) Font(h dlist.FontHandle) (Font, bool) {
	if int(h) <= 0 || int(h) >= len(r.byID) {
		return Font{}, false
	}
	return r.byID[h], true
}
