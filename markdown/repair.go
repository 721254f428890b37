// SPDX-License-Identifier: Unlicense OR MIT

package markdown

import "bytes"

// repair returns a copy of buf with a "remend" normalization pass applied
// (spec.md §4.J): mid-stream markdown almost always ends with an odd
// emphasis/code-span marker, an unterminated link, or a bare setext-rule
// line, any of which sends goldmark's block parser down an unintended
// path for the remainder of the buffer. repair patches the copy only --
// the caller's canonical buffer (StreamingMarkdown.buf) is never mutated.
func repair(buf []byte) []byte {
	out := append([]byte(nil), buf...)
	plain := blankFencedCode(out)
	counts := scanMarkers(plain)

	if counts.doubleStar%2 == 1 {
		out = append(out, '*', '*')
	}
	if counts.singleStar%2 == 1 && !endsLikeListMarkerOrWhitespace(plain) {
		out = append(out, '*')
	}
	if counts.backtick%2 == 1 {
		out = append(out, '`')
	}
	if counts.doubleTilde%2 == 1 {
		out = append(out, '~', '~')
	}
	if idx, ok := unterminatedLink(plain); ok {
		out = repairUnterminatedLink(out, idx)
	}
	if endsWithBareRuleLine(plain) {
		out = append(out, "​"...)
	}
	return out
}

type markerCounts struct {
	doubleStar  int
	singleStar  int
	backtick    int
	doubleTilde int
}

// scanMarkers counts repair-relevant markers in a single left-to-right
// pass, skipping escaped markers (`\*`, `` \` ``, `\~`) and, for the
// star/tilde markers, skipping runs that fall inside an inline code span
// (itself delimited by the very backticks being counted).
func scanMarkers(plain []byte) markerCounts {
	var c markerCounts
	inCode := false
	for i := 0; i < len(plain); {
		b := plain[i]
		if b == '\\' && i+1 < len(plain) {
			i += 2
			continue
		}
		if b == '`' {
			c.backtick++
			inCode = !inCode
			i++
			continue
		}
		if inCode {
			i++
			continue
		}
		if b == '*' {
			if i+1 < len(plain) && plain[i+1] == '*' {
				c.doubleStar++
				i += 2
				continue
			}
			c.singleStar++
			i++
			continue
		}
		if b == '~' && i+1 < len(plain) && plain[i+1] == '~' {
			c.doubleTilde++
			i += 2
			continue
		}
		i++
	}
	return c
}

// blankFencedCode returns a same-length copy of buf with every byte
// inside a fenced code block (``` or ~~~, three or more characters,
// matched by the same fence character and at least the same length)
// replaced by a space, so marker counting ignores fenced regions while
// every other byte offset stays aligned with the original buffer.
func blankFencedCode(buf []byte) []byte {
	out := append([]byte(nil), buf...)
	inFence := false
	var fenceChar byte
	var fenceLen int

	start := 0
	for start <= len(buf) {
		end := start
		for end < len(buf) && buf[end] != '\n' {
			end++
		}
		line := buf[start:end]
		trimmed := bytes.TrimLeft(line, " \t")
		isFenceLine := false
		if len(trimmed) >= 3 {
			ch := trimmed[0]
			if ch == '`' || ch == '~' {
				n := 0
				for n < len(trimmed) && trimmed[n] == ch {
					n++
				}
				if n >= 3 {
					if !inFence {
						inFence, fenceChar, fenceLen = true, ch, n
						isFenceLine = true
					} else if ch == fenceChar && n >= fenceLen {
						inFence = false
						isFenceLine = true
					}
				}
			}
		}
		if inFence || isFenceLine {
			for i := start; i < end; i++ {
				out[i] = ' '
			}
		}
		if end >= len(buf) {
			break
		}
		start = end + 1
	}
	return out
}

func lastLine(plain []byte) []byte {
	idx := bytes.LastIndexByte(plain, '\n')
	return plain[idx+1:]
}

func trimTrailingSpace(b []byte) []byte {
	i := len(b)
	for i > 0 && (b[i-1] == ' ' || b[i-1] == '\t' || b[i-1] == '\r') {
		i--
	}
	return b[:i]
}

// endsLikeListMarkerOrWhitespace reports whether plain's trailing content
// looks like trailing whitespace or a bare list-bullet line ("*", "-",
// "+"), the cases spec.md §4.J excludes from single-`*` repair so a
// streaming list bullet isn't mistaken for unterminated emphasis.
func endsLikeListMarkerOrWhitespace(plain []byte) bool {
	if len(plain) == 0 {
		return true
	}
	if last := plain[len(plain)-1]; last == ' ' || last == '\t' || last == '\n' {
		return true
	}
	line := trimTrailingSpace(bytes.TrimLeft(lastLine(plain), " \t"))
	return len(line) == 1 && (line[0] == '*' || line[0] == '-' || line[0] == '+')
}

// unterminatedLink reports the byte index of "](" in plain when a link's
// destination was opened but never closed by a ")".
func unterminatedLink(plain []byte) (int, bool) {
	idx := bytes.LastIndex(plain, []byte("]("))
	if idx < 0 {
		return 0, false
	}
	if bytes.IndexByte(plain[idx+2:], ')') >= 0 {
		return 0, false
	}
	if bytes.LastIndexByte(plain[:idx], '[') < 0 {
		return 0, false
	}
	return idx, true
}

// repairUnterminatedLink truncates out's unterminated destination
// (everything after the "](" at idx) and replaces it with a sentinel
// placeholder URL that parses as a well-formed link.
func repairUnterminatedLink(out []byte, idx int) []byte {
	out = out[:idx+2]
	return append(out, []byte("streaming-pending)")...)
}

// endsWithBareRuleLine reports whether plain's final non-empty line
// consists solely of "-" or "=" characters, which goldmark would
// otherwise read as a setext heading underline for the previous line.
func endsWithBareRuleLine(plain []byte) bool {
	line := bytes.TrimSpace(lastLine(plain))
	if len(line) == 0 {
		return false
	}
	allDash, allEq := true, true
	for _, b := range line {
		if b != '-' {
			allDash = false
		}
		if b != '=' {
			allEq = false
		}
	}
	return allDash || allEq
}
