// SPDX-License-Identifier: Unlicense OR MIT

// Package f32color implements the sRGB <-> linear conversions and
// premultiplication used at the GPU upload boundary (spec.md §3: "Conversion
// to linear-premultiplied sRGB is defined and is the form uploaded to GPU
// buffers").
package f32color

import (
	"image/color"
	"math"
)

// RGBA is a linear, alpha-premultiplied color with float32 components in
// [0,1] (alpha may exceed that range only transiently during arithmetic).
type RGBA struct {
	R, G, B, A float32
}

// LinearFromSRGB converts a non-premultiplied sRGB-encoded color to a
// premultiplied linear RGBA.
func LinearFromSRGB(c color.NRGBA) RGBA {
	a := float32(c.A) / 0xFF
	return RGBA{
		R: srgbToLinear(float32(c.R)/0xFF) * a,
		G: srgbToLinear(float32(c.G)/0xFF) * a,
		B: srgbToLinear(float32(c.B)/0xFF) * a,
		A: a,
	}
}

// SRGB converts a premultiplied linear RGBA back to non-premultiplied sRGB.
func (col RGBA) SRGB() color.NRGBA {
	if col.A == 0 {
		return color.NRGBA{}
	}
	r := linearToSRGB(col.R/col.A) * 0xFF
	g := linearToSRGB(col.G/col.A) * 0xFF
	b := linearToSRGB(col.B/col.A) * 0xFF
	a := col.A * 0xFF
	return color.NRGBA{
		R: clampByte(r),
		G: clampByte(g),
		B: clampByte(b),
		A: clampByte(a),
	}
}

// NRGBAToLinearRGBA converts a non-premultiplied sRGB color directly into
// premultiplied, 8-bit sRGB-encoded color.RGBA -- the representation
// uploaded verbatim to vertex buffers consumed by the glyph and quad
// pipelines, which perform the sRGB->linear step themselves in the shader.
func NRGBAToLinearRGBA(c color.NRGBA) color.RGBA {
	a := float32(c.A) / 0xFF
	return color.RGBA{
		R: clampByte(float32(c.R) * a),
		G: clampByte(float32(c.G) * a),
		B: clampByte(float32(c.B) * a),
		A: c.A,
	}
}

func srgbToLinear(s float32) float32 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return pow((s+0.055)/1.055, 2.4)
}

func linearToSRGB(l float32) float32 {
	if l < 0 {
		l = 0
	}
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*pow(l, 1/2.4) - 0.055
}

func pow(base, exp float32) float32 {
	if base <= 0 {
		return 0
	}
	return float32(math.Pow(float64(base), float64(exp)))
}

func clampByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
