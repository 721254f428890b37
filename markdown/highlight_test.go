// SPDX-License-Identifier: Unlicense OR MIT

package markdown

import (
	"testing"

	"kernelui.dev/theme"
)

func TestHighlightUnknownLanguageFallsBackToPlain(t *testing.T) {
	h := NewHighlighter()
	spans := h.Highlight("whatever content", "cobol")
	if len(spans) != 1 || spans[0].Highlighted {
		t.Fatalf("Highlight with an unsupported language = %+v, want one unhighlighted plain span", spans)
	}
	if spans[0].Text != "whatever content" {
		t.Fatalf("spans[0].Text = %q, want the whole input unchanged", spans[0].Text)
	}
}

func TestHighlightGoTokenizesKeyword(t *testing.T) {
	h := NewHighlighter()
	spans := h.Highlight("func main() {}", "go")

	var sawKeyword bool
	for _, s := range spans {
		if s.Highlighted && s.SyntaxToken == theme.SyntaxKeyword && s.Text == "func" {
			sawKeyword = true
		}
	}
	if !sawKeyword {
		t.Fatalf("spans = %+v, want a SyntaxKeyword span for \"func\"", spans)
	}
}

func TestNormalizeLanguageAliases(t *testing.T) {
	cases := map[string]string{
		"js":     "javascript",
		"ts":     "typescript",
		"py":     "python",
		"sh":     "bash",
		"rs":     "rust",
		"md":     "markdown",
		"GoLang": "golang",
	}
	for in, want := range cases {
		if got := normalizeLanguage(in); got != want {
			t.Errorf("normalizeLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewHighlighterWithLanguagesRestrictsSupportedSet(t *testing.T) {
	h := NewHighlighterWithLanguages([]string{"python"})

	spans := h.Highlight("func main() {}", "go")
	if len(spans) != 1 || spans[0].Highlighted {
		t.Fatalf("Highlight(go) with only python enabled = %+v, want a plain fallback span", spans)
	}

	spans = h.Highlight("def f(): pass", "python")
	var sawHighlighted bool
	for _, s := range spans {
		if s.Highlighted {
			sawHighlighted = true
		}
	}
	if !sawHighlighted {
		t.Fatal("Highlight(python) with python enabled produced no highlighted spans")
	}
}

func TestHighlightSpansCoverTheWholeInputInOrder(t *testing.T) {
	h := NewHighlighter()
	spans := h.Highlight("x := 1\n", "go")

	var rebuilt string
	for _, s := range spans {
		rebuilt += s.Text
	}
	if rebuilt != "x := 1\n" {
		t.Fatalf("concatenated span text = %q, want the original source back", rebuilt)
	}
}
