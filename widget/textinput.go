// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"unicode"

	"kernelui.dev/colorx"
	"kernelui.dev/dlist"
	"kernelui.dev/geom"
	"kernelui.dev/gesture"
	"kernelui.dev/input"
	"kernelui.dev/io/key"
	"kernelui.dev/layout"
	"kernelui.dev/reactive"
	"kernelui.dev/text"
	"kernelui.dev/theme"
)

// TextInput is a single-line editable field with a caret, a selection
// range, and IME composition display (spec.md §4.I: "TextInput
// (single-line with cursor, selection, composition)"), scoped down from
// the teacher's multi-line widget/editor.go -- no wrapping, no vertical
// scrolling, one ShapedRun per frame.
//
// Caret/selection navigation is expressed in rune offsets into Value,
// and maps to pixel x through the shaped run's per-glyph Cluster field;
// this assumes clusters fall in increasing rune order, true for the
// left-to-right text text.Shaper's minimal bidi handles by default (see
// DESIGN.md's text entry) and false only for the general bidi case this
// widget does not attempt.
type TextInput struct {
	Value               *reactive.Signal[string]
	Style               text.TextStyle
	ColorToken          theme.ColorToken
	SelectionColorToken theme.ColorToken
	CaretColorToken     theme.ColorToken

	node   layout.NodeID
	router *input.Router
	runs   []text.ShapedRun

	caret  int
	anchor int

	composing        bool
	composition      string
	compositionStart int
	compositionEnd   int

	click gesture.Click
}

// NewTextInput creates a TextInput whose committed text is held in a
// fresh Signal seeded with initial.
func NewTextInput(rt *reactive.Runtime, initial string) *TextInput {
	t := &TextInput{Value: reactive.NewSignal(rt, initial)}
	t.caret = len([]rune(initial))
	t.anchor = t.caret
	t.SelectionColorToken = theme.AccentMuted
	t.CaretColorToken = theme.BorderFocused
	return t
}

// Node returns t's retained layout node.
func (in *TextInput) Node() layout.NodeID { return in.node }

// RequestLayout creates (or reuses) a leaf node shaping the current
// display text -- committed Value plus any in-flight IME composition --
// as a single unwrapped line.
func (in *TextInput) RequestLayout(cx *Context) layout.NodeID {
	in.router = cx.Router
	measure := func(c layout.Constraints) layout.Dimensions {
		shapeInput := text.Input{
			Text:     in.displayText(),
			Style:    in.Style,
			MaxWidth: c.MaxWidth,
			Wrap:     text.WrapNone,
		}
		runs, err := cx.Shaper.Shape(shapeInput)
		if err != nil {
			runs = nil
		}
		in.runs = runs

		var w, h float32
		for _, r := range runs {
			if r.Metrics.Width > w {
				w = r.Metrics.Width
			}
			h += r.Metrics.Ascent + r.Metrics.Descent + r.Metrics.Gap
		}
		if h == 0 {
			h = in.Style.PxPerEm
		}
		size := c.Constrain(geom.Size{W: w, H: h})
		var baseline float32
		if len(runs) > 0 {
			baseline = runs[0].Metrics.Ascent
		}
		return layout.Dimensions{Size: size, Baseline: baseline}
	}
	if in.node == 0 {
		in.node = cx.Tree.CreateLeaf(layout.Style{}, measure)
	} else {
		cx.Tree.MarkDirty(in.node)
	}
	return in.node
}

// Paint draws the selection highlight (if any), the shaped text, and
// the caret, in that order so the caret always sits on top.
func (in *TextInput) Paint(cx *Context) {
	bounds := cx.Tree.Bounds(in.node)
	origin := bounds.Origin

	if in.hasSelection() {
		start, end := in.selectionRange()
		x0, x1 := in.glyphX(start), in.glyphX(end)
		var fill colorx.Hsla
		if cx.Theme != nil {
			fill = cx.Theme.Color(in.SelectionColorToken)
		}
		sel := geom.Bounds{
			Origin: geom.Point{X: origin.X + x0, Y: origin.Y},
			Size:   geom.Size{W: x1 - x0, H: bounds.Size.H},
		}
		cx.Display.PushQuad(in.node, sel, fill, colorx.Hsla{}, 0, geom.Zero())
	}

	font := cx.Fonts.Handle(in.Style.Font)
	var y float32
	for _, run := range in.runs {
		y += run.Metrics.Ascent
		glyphs := make([]dlist.PositionedGlyph, len(run.Glyphs))
		for i, g := range run.Glyphs {
			glyphs[i] = dlist.PositionedGlyph{
				Glyph:     dlist.GlyphID(g.ID),
				Advance:   fixedToPx(g.Advance),
				Offset:    geom.Point{X: fixedToPx(g.X), Y: y},
				Font:      font,
				PixelSize: in.Style.PxPerEm,
			}
		}
		var fill colorx.Hsla
		if cx.Theme != nil {
			fill = cx.Theme.Color(in.ColorToken)
		}
		cx.Display.PushGlyphRun(in.node, origin, glyphs, fill)
		y += run.Metrics.Descent + run.Metrics.Gap
	}

	caretX := in.glyphX(in.displayCaret())
	var caretFill colorx.Hsla
	if cx.Theme != nil {
		caretFill = cx.Theme.Color(in.CaretColorToken)
	}
	caretBounds := geom.Bounds{
		Origin: geom.Point{X: origin.X + caretX, Y: origin.Y},
		Size:   geom.Size{W: 1, H: bounds.Size.H},
	}
	cx.Display.PushQuad(in.node, caretBounds, caretFill, colorx.Hsla{}, 0, geom.Zero())
}

// HandleEvent turns pointer clicks into caret placement and focus
// requests, key presses into caret/selection navigation and deletion,
// committed text events into insertion, and composition events into the
// in-flight IME preedit display.
func (in *TextInput) HandleEvent(ev input.Event) input.Disposition {
	switch ev.Kind {
	case input.PointerDown, input.PointerMove, input.PointerUp:
		click, ok := in.click.Feed(ev)
		if !ok {
			return input.Ignored
		}
		if click.Kind == gesture.KindClick {
			if in.router != nil {
				in.router.Focus(in.node)
			}
			idx := in.runeIndexAt(click.Position.X)
			in.caret = idx
			in.anchor = idx
		}
		return input.Handled
	case input.KeyDown:
		return in.handleKey(ev)
	case input.TextInput:
		in.composing = false
		in.composition = ""
		in.insert(ev.Text)
		return input.Handled
	case input.ImeComposition:
		in.composing = ev.Composition != ""
		in.composition = ev.Composition
		in.compositionStart = ev.CompositionStart
		in.compositionEnd = ev.CompositionEnd
		return input.Handled
	}
	return input.Ignored
}

func (in *TextInput) handleKey(ev input.Event) input.Disposition {
	runes := []rune(in.Value.Peek())
	shift := ev.Modifiers.Contain(key.ModShift)
	word := ev.Modifiers.Contain(key.ModCtrl) || ev.Modifiers.Contain(key.ModCommand)

	moveTo := func(idx int) {
		in.caret = clampInt(idx, 0, len(runes))
		if !shift {
			in.anchor = in.caret
		}
	}

	switch ev.Key {
	case key.NameLeftArrow:
		if word {
			moveTo(prevWordBoundary(runes, in.caret))
		} else {
			moveTo(in.caret - 1)
		}
		return input.Handled
	case key.NameRightArrow:
		if word {
			moveTo(nextWordBoundary(runes, in.caret))
		} else {
			moveTo(in.caret + 1)
		}
		return input.Handled
	case key.NameHome:
		moveTo(0)
		return input.Handled
	case key.NameEnd:
		moveTo(len(runes))
		return input.Handled
	case key.NameDeleteBackward:
		in.deleteBackward()
		return input.Handled
	case key.NameDeleteForward:
		in.deleteForward()
		return input.Handled
	}
	return input.Ignored
}

func (in *TextInput) hasSelection() bool { return in.caret != in.anchor }

func (in *TextInput) selectionRange() (start, end int) {
	if in.caret < in.anchor {
		return in.caret, in.anchor
	}
	return in.anchor, in.caret
}

// displayCaret returns the caret's rune offset into displayText: past
// any in-flight composition text, since the caret always trails preedit
// text the way an IME shows it.
func (in *TextInput) displayCaret() int {
	if in.composing {
		return in.caret + len([]rune(in.composition))
	}
	return in.caret
}

func (in *TextInput) displayText() string {
	v := in.Value.Peek()
	if !in.composing {
		return v
	}
	runes := []rune(v)
	at := clampInt(in.caret, 0, len(runes))
	return string(runes[:at]) + in.composition + string(runes[at:])
}

// glyphX maps a rune offset into displayText to a pixel x within the
// shaped line, by finding the first glyph whose cluster starts at or
// after runeIdx.
func (in *TextInput) glyphX(runeIdx int) float32 {
	if len(in.runs) == 0 {
		return 0
	}
	glyphs := in.runs[0].Glyphs
	for _, g := range glyphs {
		if g.Cluster >= runeIdx {
			return fixedToPx(g.X)
		}
	}
	if n := len(glyphs); n > 0 {
		last := glyphs[n-1]
		return fixedToPx(last.X) + fixedToPx(last.Advance)
	}
	return 0
}

// runeIndexAt maps a pixel x within the shaped line back to the nearest
// rune offset, for caret placement on click.
func (in *TextInput) runeIndexAt(x float32) int {
	if len(in.runs) == 0 {
		return 0
	}
	glyphs := in.runs[0].Glyphs
	for _, g := range glyphs {
		left := fixedToPx(g.X)
		right := left + fixedToPx(g.Advance)
		if x < left+(right-left)/2 {
			return g.Cluster
		}
	}
	if n := len(glyphs); n > 0 {
		return glyphs[n-1].Cluster + glyphs[n-1].RuneCount
	}
	return 0
}

func (in *TextInput) insert(s string) {
	if s == "" && !in.hasSelection() {
		return
	}
	runes := []rune(in.Value.Peek())
	start, end := in.selectionRange()
	ins := []rune(s)
	next := make([]rune, 0, len(runes)-(end-start)+len(ins))
	next = append(next, runes[:start]...)
	next = append(next, ins...)
	next = append(next, runes[end:]...)
	in.Value.Set(string(next))
	in.caret = start + len(ins)
	in.anchor = in.caret
}

func (in *TextInput) deleteBackward() {
	if in.hasSelection() {
		in.insert("")
		return
	}
	if in.caret == 0 {
		return
	}
	runes := []rune(in.Value.Peek())
	next := append(append([]rune{}, runes[:in.caret-1]...), runes[in.caret:]...)
	in.Value.Set(string(next))
	in.caret--
	in.anchor = in.caret
}

func (in *TextInput) deleteForward() {
	if in.hasSelection() {
		in.insert("")
		return
	}
	runes := []rune(in.Value.Peek())
	if in.caret >= len(runes) {
		return
	}
	next := append(append([]rune{}, runes[:in.caret]...), runes[in.caret+1:]...)
	in.Value.Set(string(next))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// isWordRune classifies r as part of a word for Ctrl/Cmd+Arrow navigation,
// standing in for github.com/npillmayer/uax's UAX#29 word-boundary
// segmentation (dropped, see DESIGN.md's text entry): letters and digits
// are word runes, everything else is a boundary.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func prevWordBoundary(runes []rune, from int) int {
	i := clampInt(from, 0, len(runes))
	for i > 0 && !isWordRune(runes[i-1]) {
		i--
	}
	for i > 0 && isWordRune(runes[i-1]) {
		i--
	}
	return i
}

func nextWordBoundary(runes []rune, from int) int {
	i := clampInt(from, 0, len(runes))
	for i < len(runes) && !isWordRune(runes[i]) {
		i++
	}
	for i < len(runes) && isWordRune(runes[i]) {
		i++
	}
	return i
}

var _ Widget = (*TextInput)(nil)
