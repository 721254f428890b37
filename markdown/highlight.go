// SPDX-License-Identifier: Unlicense OR MIT

package markdown

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"kernelui.dev/theme"
)

// builtinLanguages is spec.md §9 OQ1's pinned, bounded set (SPEC_FULL.md
// Supplemented Features): a small, concretely enumerated list of chroma
// lexers feeding a fixed token-kind -> theme-token table, never chroma's
// own styles/formatters. A language outside this set falls back to plain
// monospace (spec.md §4.J: "the core is not responsible for pluggable
// grammars").
var builtinLanguages = []string{"go", "rust", "python", "javascript", "typescript", "json", "bash", "markdown"}

var supportedLexers map[string]chroma.Lexer

func init() {
	supportedLexers = make(map[string]chroma.Lexer, len(builtinLanguages))
	for _, name := range builtinLanguages {
		if l := lexers.Get(name); l != nil {
			supportedLexers[name] = chroma.Coalesce(l)
		}
	}
}

// Highlighter tokenizes fenced code blocks with chroma and resolves each
// token to one of the theme's fixed Syntax* color tokens (spec.md §4.J).
type Highlighter struct {
	lexers map[string]chroma.Lexer
}

// NewHighlighter creates a Highlighter bound to the full built-in
// language set.
func NewHighlighter() *Highlighter { return &Highlighter{lexers: supportedLexers} }

// NewHighlighterWithLanguages creates a Highlighter restricted to the
// subset of the built-in language set named in langs (spec.md §6: "enabled
// language highlighters" is one of the tuning flags "passed through
// programmatic configuration at initialization"). A name outside the
// built-in set is ignored; a fenced block whose language isn't in the
// resulting subset falls back to plain monospace exactly as an unknown
// language would.
func NewHighlighterWithLanguages(langs []string) *Highlighter {
	h := &Highlighter{lexers: make(map[string]chroma.Lexer, len(langs))}
	for _, name := range langs {
		if l, ok := supportedLexers[normalizeLanguage(name)]; ok {
			h.lexers[normalizeLanguage(name)] = l
		}
	}
	return h
}

// Highlight tokenizes code as language, returning one StyledSpan per
// token. An unrecognized or empty language returns a single,
// unhighlighted plain-monospace span spanning the whole block.
func (h *Highlighter) Highlight(code, language string) []StyledSpan {
	lexer := h.lexers[language]
	if lexer == nil {
		return []StyledSpan{{Text: code, Code: true}}
	}
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return []StyledSpan{{Text: code, Code: true}}
	}
	tokens := it.Tokens()
	spans := make([]StyledSpan, 0, len(tokens))
	offset := 0
	for _, tok := range tokens {
		spans = append(spans, StyledSpan{
			Text:        tok.Value,
			Code:        true,
			SyntaxToken: tokenColor(tok.Type),
			Highlighted: true,
			Start:       offset,
			End:         offset + len(tok.Value),
		})
		offset += len(tok.Value)
	}
	return spans
}

// normalizeLanguage maps common fenced-code info-string aliases onto the
// builtinLanguages keys.
func normalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	switch lang {
	case "js":
		return "javascript"
	case "ts":
		return "typescript"
	case "py":
		return "python"
	case "sh", "shell", "zsh":
		return "bash"
	case "rs":
		return "rust"
	case "md":
		return "markdown"
	}
	return lang
}

// tokenColor resolves a chroma token kind to the fixed syntax palette
// added to theme.ColorToken for this purpose (spec.md §9 OQ1: "a fixed
// token-kind -> color mapping").
func tokenColor(t chroma.TokenType) theme.ColorToken {
	switch {
	case t.InCategory(chroma.Keyword):
		return theme.SyntaxKeyword
	case t.InSubCategory(chroma.String):
		return theme.SyntaxString
	case t.InCategory(chroma.Comment):
		return theme.SyntaxComment
	case t.InSubCategory(chroma.Number):
		return theme.SyntaxNumber
	case t == chroma.NameFunction, t == chroma.NameFunctionMagic, t == chroma.NameClass, t == chroma.NameBuiltin, t == chroma.NameBuiltinPseudo:
		return theme.SyntaxFunction
	case t.InCategory(chroma.Name):
		return theme.SyntaxPunctuation
	case t.InCategory(chroma.Operator):
		return theme.SyntaxOperator
	case t.InCategory(chroma.Punctuation):
		return theme.SyntaxPunctuation
	default:
		return theme.SyntaxPunctuation
	}
}
