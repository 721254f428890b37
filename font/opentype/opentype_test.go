// SPDX-License-Identifier: Unlicense OR MIT

package opentype

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestParseValidTTFReturnsUsableFace(t *testing.T) {
	face, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if face.Face() == nil {
		t.Fatal("Face() returned nil for a successfully parsed font")
	}
}

func TestParseInvalidBytesReturnsError(t *testing.T) {
	if _, err := Parse([]byte("not a font file")); err == nil {
		t.Fatal("Parse of garbage bytes returned nil error")
	}
}
