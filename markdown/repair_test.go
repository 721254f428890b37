// SPDX-License-Identifier: Unlicense OR MIT

package markdown

import (
	"strings"
	"testing"
)

func TestRepairClosesOddDoubleStar(t *testing.T) {
	got := string(repair([]byte("hello **world")))
	if !strings.HasSuffix(got, "**") {
		t.Fatalf("repair(%q) = %q, want a closing ** appended", "hello **world", got)
	}
}

func TestRepairClosesOddBacktick(t *testing.T) {
	got := string(repair([]byte("see `code")))
	if !strings.HasSuffix(got, "`") {
		t.Fatalf("repair(%q) = %q, want a closing backtick appended", "see `code", got)
	}
}

func TestRepairClosesOddDoubleTilde(t *testing.T) {
	got := string(repair([]byte("~~gone")))
	if !strings.HasSuffix(got, "~~") {
		t.Fatalf("repair(%q) = %q, want a closing ~~ appended", "~~gone", got)
	}
}

func TestRepairIgnoresMarkersInsideFencedCodeBlock(t *testing.T) {
	in := "```\n**not emphasis**\n`also not a span\n"
	got := string(repair([]byte(in)))
	if got != in {
		t.Fatalf("repair(%q) = %q, want unchanged (unterminated fence body holds balanced markers that should not be touched)", in, got)
	}
}

func TestRepairDoesNotCloseSingleStarListMarker(t *testing.T) {
	in := "- item one\n*"
	got := string(repair([]byte(in)))
	if got != in {
		t.Fatalf("repair(%q) = %q, want unchanged: a trailing bare \"*\" line reads as a list bullet, not unterminated emphasis", in, got)
	}
}

func TestRepairReplacesUnterminatedLinkURL(t *testing.T) {
	got := string(repair([]byte("see [docs](https://example.com/str")))
	if !strings.HasSuffix(got, "streaming-pending)") {
		t.Fatalf("repair(...) = %q, want the unterminated URL replaced by the sentinel placeholder", got)
	}
	if strings.Contains(got, "example.com") {
		t.Fatalf("repair(...) = %q, want the broken partial URL discarded", got)
	}
}

func TestRepairAppendsZeroWidthSpaceAfterBareRuleLine(t *testing.T) {
	in := "Some Heading\n---"
	got := repair([]byte(in))
	if len(got) <= len(in) {
		t.Fatalf("repair(%q) did not grow the buffer, want a trailing zero-width space appended", in)
	}
}

func TestRepairLeavesWellFormedBufferUnchanged(t *testing.T) {
	in := "a **bold** and `code` and ~~gone~~ and [a link](https://x.test) paragraph.\n"
	got := string(repair([]byte(in)))
	if got != in {
		t.Fatalf("repair(%q) = %q, want unchanged (every marker already balanced)", in, got)
	}
}

func TestRepairIgnoresEscapedMarkers(t *testing.T) {
	in := `a \*lone escaped star`
	got := string(repair([]byte(in)))
	if got != in {
		t.Fatalf("repair(%q) = %q, want unchanged: an escaped \\* is not a real emphasis marker", in, got)
	}
}
