// SPDX-License-Identifier: Unlicense OR MIT

// Package colorx implements the kernel's color model: HSLA values and their
// conversion to the linear-premultiplied sRGB form uploaded to the GPU
// (spec.md §3, §4.A).
package colorx

import (
	"image/color"
	"math"

	"kernelui.dev/internal/f32color"
)

// Hsla is a hue/saturation/lightness/alpha color. Hue is in [0,360),
// saturation, lightness and alpha are in [0,1].
type Hsla struct {
	Hue        float32
	Saturation float32
	Lightness  float32
	Alpha      float32
}

// Hsl constructs an opaque Hsla.
func Hsl(hue, sat, lum float32) Hsla {
	return Hsla{Hue: hue, Saturation: sat, Lightness: lum, Alpha: 1}
}

// WithAlpha returns a copy of c with the alpha replaced.
func (c Hsla) WithAlpha(a float32) Hsla {
	c.Alpha = a
	return c
}

// NRGBA converts c to non-premultiplied sRGB, the representation most
// painting call sites and theme tokens are authored in.
func (c Hsla) NRGBA() color.NRGBA {
	r, g, b := hslToRGB(c.Hue, c.Saturation, c.Lightness)
	return color.NRGBA{
		R: toByte(r),
		G: toByte(g),
		B: toByte(b),
		A: toByte(c.Alpha),
	}
}

// Premultiplied converts c directly to linear-premultiplied sRGB, the form
// spec.md §3 says is "uploaded to GPU buffers". Premultiplication happens
// only at this boundary -- Hsla values themselves are never premultiplied.
func (c Hsla) Premultiplied() f32color.RGBA {
	return f32color.LinearFromSRGB(c.NRGBA())
}

func toByte(v float32) uint8 {
	v *= 255
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// hslToRGB is the standard HSL->RGB conversion (piecewise linear in hue),
// returning components in [0,1].
func hslToRGB(h, s, l float32) (r, g, b float32) {
	if s == 0 {
		return l, l, l
	}
	h = float32(math.Mod(float64(h), 360))
	if h < 0 {
		h += 360
	}
	var q float32
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	hk := h / 360
	r = hueToRGB(p, q, hk+1.0/3)
	g = hueToRGB(p, q, hk)
	b = hueToRGB(p, q, hk-1.0/3)
	return
}

func hueToRGB(p, q, t float32) float32 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}
