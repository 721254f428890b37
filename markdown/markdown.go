// SPDX-License-Identifier: Unlicense OR MIT

// Package markdown implements the kernel's streaming markdown pipeline
// (spec.md §4.J): a debounced, non-incremental block parser with a
// pre-reparse marker-repair pass for mid-stream text, chroma-backed fenced
// code highlighting against a fixed theme palette, and a display-list
// renderer supporting fade-in of newly streamed content.
//
// Block parsing is grounded on goldmark (the pack's widely-attested choice
// for "a Go app parses markdown"); this package re-walks goldmark's AST
// into its own flat MarkdownDocument/MarkdownBlock/StyledSpan model rather
// than rendering goldmark's AST directly, since the renderer needs
// byte-offset-tagged spans to drive RenderWithOpacity's fade-in.
package markdown

import (
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	gmtext "github.com/yuin/goldmark/text"

	"kernelui.dev/theme"
)

// BlockKind discriminates the kind of content a MarkdownBlock carries.
type BlockKind uint8

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockCodeFence
	BlockListItem
	BlockBlockquote
	BlockThematicBreak
)

// StyledSpan is one run of inline text sharing a single set of style
// flags. Start/End are byte offsets into the canonical (post-repair)
// buffer the span was parsed from, used by RenderWithOpacity to decide
// whether a span is "new" relative to a StreamingMarkdown's stable-prefix
// threshold. Code block spans are placed from the block's first line, so
// inside an indented container they do not skip the stripped indentation.
// Inline code spans, autolinks and line-break spans carry zero offsets.
type StyledSpan struct {
	Text    string
	Bold    bool
	Italic  bool
	Code    bool
	Strike  bool
	LinkURL string

	// SyntaxToken and Highlighted are set only for spans inside a
	// BlockCodeFence whose language the Highlighter recognized;
	// Highlighted is false for plain, unrecognized-language code text.
	SyntaxToken theme.ColorToken
	Highlighted bool

	Start, End int
}

// MarkdownBlock is one block-level element: a paragraph, heading, fenced
// code block, list item, blockquote line, or thematic break.
type MarkdownBlock struct {
	Kind BlockKind
	// Level is the heading level (1-6) for BlockHeading, or the nesting
	// depth for BlockListItem/BlockBlockquote.
	Level int
	// Language is the fenced code block's info-string language, lowercased
	// and normalized; empty for an unfenced indented code block.
	Language string
	Spans    []StyledSpan
	Start, End int
}

// MarkdownDocument is the result of one complete block parse.
type MarkdownDocument struct {
	Blocks []MarkdownBlock
}

// StreamingMarkdown buffers append-only markdown text and produces a
// MarkdownDocument on demand, debounced to at most once per interval
// (spec.md §4.J). The zero value is not usable; construct with
// NewStreamingMarkdown.
type StreamingMarkdown struct {
	md          goldmark.Markdown
	highlighter *Highlighter
	debounce    time.Duration

	buf        []byte
	dirty      bool
	lastAppend time.Duration

	doc             *MarkdownDocument
	prevLen         int
	stableThreshold int
}

// NewStreamingMarkdown creates an empty buffer. A debounce of 0 disables
// debouncing: every Tick call reparses while dirty. spec.md's default is
// 16ms.
func NewStreamingMarkdown(debounce time.Duration, hl *Highlighter) *StreamingMarkdown {
	return &StreamingMarkdown{
		md:          goldmark.New(goldmark.WithExtensions(extension.Strikethrough)),
		highlighter: hl,
		debounce:    debounce,
		doc:         &MarkdownDocument{},
	}
}

// Append adds chunk to the canonical buffer and marks the document dirty.
// now is the caller's frame clock (e.g. time since engine start), used
// only to measure the debounce window -- StreamingMarkdown never reads
// the wall clock itself.
func (m *StreamingMarkdown) Append(chunk string, now time.Duration) {
	m.buf = append(m.buf, chunk...)
	m.dirty = true
	m.lastAppend = now
}

// Tick reparses if the buffer is dirty and the debounce window (if any)
// has elapsed since the most recent Append. Intended to be called once
// per frame from the engine's Update phase.
func (m *StreamingMarkdown) Tick(now time.Duration) {
	if !m.dirty {
		return
	}
	if m.debounce > 0 && now-m.lastAppend < m.debounce {
		return
	}
	m.reparse()
}

// Complete forces an immediate reparse regardless of the debounce
// window. Per spec.md §5, this discards any pending debounce wait rather
// than scheduling one more timer on top of it.
func (m *StreamingMarkdown) Complete() {
	if m.dirty {
		m.reparse()
	}
}

// Document returns the most recently committed parse. The value is
// replaced, never mutated, by the next reparse, so callers may retain a
// reference across frames.
func (m *StreamingMarkdown) Document() *MarkdownDocument { return m.doc }

// StableThreshold returns the byte offset into the canonical buffer
// below which content was already present as of the previous reparse --
// the boundary RenderWithOpacity fades new content in relative to.
func (m *StreamingMarkdown) StableThreshold() int { return m.stableThreshold }

func (m *StreamingMarkdown) reparse() {
	repaired := repair(m.buf)
	m.doc = parseDocument(m.md, m.highlighter, repaired)

	// spec.md §9 OQ3: a buffer whose length has decreased (the caller
	// reset or truncated it) starts the fade-in over from zero rather
	// than trusting a threshold computed against a longer buffer.
	if len(m.buf) < m.prevLen {
		m.stableThreshold = 0
	} else {
		m.stableThreshold = m.prevLen
	}
	m.prevLen = len(m.buf)
	m.dirty = false
}

type linesNode interface{ Lines() *gmtext.Segments }

func blockStart(n ast.Node) int {
	if ln, ok := n.(linesNode); ok && ln.Lines().Len() > 0 {
		return ln.Lines().At(0).Start
	}
	return 0
}

func blockEnd(n ast.Node) int {
	if ln, ok := n.(linesNode); ok && ln.Lines().Len() > 0 {
		segs := ln.Lines()
		return segs.At(segs.Len() - 1).Stop
	}
	return 0
}

func codeBlockText(n ast.Node, source []byte) string {
	ln, ok := n.(linesNode)
	if !ok {
		return ""
	}
	var sb strings.Builder
	lines := ln.Lines()
	for i := 0; i < lines.Len(); i++ {
		sb.Write(lines.At(i).Value(source))
	}
	return sb.String()
}

func parseDocument(md goldmark.Markdown, hl *Highlighter, source []byte) *MarkdownDocument {
	root := md.Parser().Parse(gmtext.NewReader(source))
	doc := &MarkdownDocument{}
	walkBlocks(root, source, hl, 0, 0, doc)
	return doc
}

func walkBlocks(n ast.Node, source []byte, hl *Highlighter, listDepth, quoteDepth int, doc *MarkdownDocument) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Heading:
			appendInlineBlock(doc, BlockHeading, v.Level, v, source)
		case *ast.Paragraph, *ast.TextBlock:
			kind, level := BlockParagraph, listDepth
			if quoteDepth > 0 {
				kind, level = BlockBlockquote, quoteDepth
			} else if listDepth > 0 {
				kind = BlockListItem
			}
			appendInlineBlock(doc, kind, level, v, source)
		case *ast.FencedCodeBlock:
			lang := normalizeLanguage(string(v.Language(source)))
			code := codeBlockText(v, source)
			spans := highlightOrPlain(hl, code, lang)
			start := blockStart(v)
			for i := range spans {
				if spans[i].End == 0 {
					spans[i].End = len(spans[i].Text)
				}
				spans[i].Start += start
				spans[i].End += start
			}
			doc.Blocks = append(doc.Blocks, MarkdownBlock{
				Kind: BlockCodeFence, Language: lang,
				Spans: spans,
				Start: blockStart(v), End: blockEnd(v),
			})
		case *ast.CodeBlock:
			code := codeBlockText(v, source)
			start := blockStart(v)
			doc.Blocks = append(doc.Blocks, MarkdownBlock{
				Kind: BlockCodeFence, Spans: []StyledSpan{{Text: code, Code: true, Start: start, End: start + len(code)}},
				Start: blockStart(v), End: blockEnd(v),
			})
		case *ast.Blockquote:
			walkBlocks(v, source, hl, listDepth, quoteDepth+1, doc)
		case *ast.List:
			for item := v.FirstChild(); item != nil; item = item.NextSibling() {
				walkBlocks(item, source, hl, listDepth+1, quoteDepth, doc)
			}
		case *ast.ThematicBreak:
			doc.Blocks = append(doc.Blocks, MarkdownBlock{Kind: BlockThematicBreak, Start: blockStart(v), End: blockEnd(v)})
		default:
			walkBlocks(c, source, hl, listDepth, quoteDepth, doc)
		}
	}
}

func highlightOrPlain(hl *Highlighter, code, lang string) []StyledSpan {
	if hl == nil {
		return []StyledSpan{{Text: code, Code: true}}
	}
	return hl.Highlight(code, lang)
}

func appendInlineBlock(doc *MarkdownDocument, kind BlockKind, level int, n ast.Node, source []byte) {
	doc.Blocks = append(doc.Blocks, MarkdownBlock{
		Kind:  kind,
		Level: level,
		Spans: inlineSpans(n, source, false, false, false, ""),
		Start: blockStart(n),
		End:   blockEnd(n),
	})
}

// inlineSpans walks n's inline children, flattening nested
// emphasis/strong/link/strikethrough markup into a flat run of
// StyledSpans. Soft/hard line breaks become a literal "\n" span so the
// renderer can treat a block's spans as one continuous text stream.
func inlineSpans(n ast.Node, source []byte, bold, italic, strike bool, linkURL string) []StyledSpan {
	var spans []StyledSpan
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			seg := v.Segment
			spans = append(spans, StyledSpan{
				Text: string(v.Value(source)), Bold: bold, Italic: italic, Strike: strike,
				LinkURL: linkURL, Start: seg.Start, End: seg.Stop,
			})
			if v.SoftLineBreak() || v.HardLineBreak() {
				spans = append(spans, StyledSpan{Text: "\n"})
			}
		case *ast.CodeSpan:
			spans = append(spans, StyledSpan{Text: inlineText(v, source), Code: true, LinkURL: linkURL})
		case *ast.Emphasis:
			nb, ni := bold, italic
			if v.Level >= 2 {
				nb = true
			} else {
				ni = true
			}
			spans = append(spans, inlineSpans(v, source, nb, ni, strike, linkURL)...)
		case *extast.Strikethrough:
			spans = append(spans, inlineSpans(v, source, bold, italic, true, linkURL)...)
		case *ast.Link:
			spans = append(spans, inlineSpans(v, source, bold, italic, strike, string(v.Destination))...)
		case *ast.AutoLink:
			url := string(v.URL(source))
			spans = append(spans, StyledSpan{Text: url, LinkURL: url})
		default:
			spans = append(spans, inlineSpans(c, source, bold, italic, strike, linkURL)...)
		}
	}
	return spans
}

func inlineText(n ast.Node, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Value(source))
		}
	}
	return sb.String()
}
