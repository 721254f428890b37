// SPDX-License-Identifier: Unlicense OR MIT

// Package theme implements the kernel's named token set: backgrounds, text
// layers, accents, borders, status colors and spacing (spec.md §4.B).
// Tokens are resolved at paint time, never baked into a widget at
// construction, so a theme swap invalidates only paint.
package theme

import (
	"kernelui.dev/colorx"
	"kernelui.dev/unit"
)

// ColorToken names a semantic color slot. Text, Button and TextInput
// reference tokens, so a Theme swap recolors them without a layout pass;
// a Div's Fill and Border are raw colors and do not follow a swap.
type ColorToken uint8

const (
	BackgroundBase ColorToken = iota
	BackgroundElevated
	BackgroundSunken
	TextPrimary
	TextSecondary
	TextDisabled
	Accent
	AccentMuted
	Border
	BorderFocused
	StatusSuccess
	StatusWarning
	StatusError
	StatusInfo
	// SyntaxKeyword..SyntaxPunctuation are the fixed token-kind palette the
	// markdown package's fenced-code highlighter resolves chroma token
	// kinds against (spec.md §4.J, §9 OQ1: "a fixed token-kind -> color
	// mapping" rather than chroma's own style/formatter).
	SyntaxKeyword
	SyntaxString
	SyntaxComment
	SyntaxNumber
	SyntaxFunction
	SyntaxOperator
	SyntaxPunctuation
	numColorTokens
)

// SpaceToken names a semantic spacing slot.
type SpaceToken uint8

const (
	SpaceXS SpaceToken = iota
	SpaceSM
	SpaceMD
	SpaceLG
	SpaceXL
	numSpaceTokens
)

// Theme is an immutable, process-wide-but-injected set of resolved tokens.
// A Theme value is safe to share across goroutines and across frames; a
// "swap" is simply substituting the *Theme a Context holds at a phase
// boundary (between frames, never mid-paint).
type Theme struct {
	colors [numColorTokens]colorx.Hsla
	spaces [numSpaceTokens]unit.Value

	CornerRadius unit.Value
	BorderWidth  unit.Value
}

// Color resolves a color token.
func (t *Theme) Color(tok ColorToken) colorx.Hsla {
	return t.colors[tok]
}

// Space resolves a spacing token.
func (t *Theme) Space(tok SpaceToken) unit.Value {
	return t.spaces[tok]
}

// SetColor overrides a single color token.
func (t *Theme) SetColor(tok ColorToken, c colorx.Hsla) {
	t.colors[tok] = c
}

// SetSpace overrides a single spacing token.
func (t *Theme) SetSpace(tok SpaceToken, v unit.Value) {
	t.spaces[tok] = v
}

// Dark returns the built-in dark theme, the default for IDE-class surfaces.
func Dark() *Theme {
	t := &Theme{
		CornerRadius: unit.Dp(4),
		BorderWidth:  unit.Dp(1),
	}
	t.colors = [numColorTokens]colorx.Hsla{
		BackgroundBase:     colorx.Hsl(222, 0.16, 0.12),
		BackgroundElevated: colorx.Hsl(222, 0.14, 0.16),
		BackgroundSunken:   colorx.Hsl(222, 0.18, 0.09),
		TextPrimary:        colorx.Hsl(210, 0.2, 0.92),
		TextSecondary:      colorx.Hsl(210, 0.12, 0.68),
		TextDisabled:       colorx.Hsl(210, 0.08, 0.42),
		Accent:             colorx.Hsl(210, 0.9, 0.62),
		AccentMuted:        colorx.Hsl(210, 0.5, 0.35),
		Border:             colorx.Hsl(222, 0.12, 0.24),
		BorderFocused:      colorx.Hsl(210, 0.9, 0.62),
		StatusSuccess:      colorx.Hsl(142, 0.6, 0.45),
		StatusWarning:      colorx.Hsl(38, 0.9, 0.55),
		StatusError:        colorx.Hsl(4, 0.8, 0.58),
		StatusInfo:         colorx.Hsl(205, 0.75, 0.58),
		SyntaxKeyword:      colorx.Hsl(286, 0.6, 0.68),
		SyntaxString:       colorx.Hsl(95, 0.5, 0.6),
		SyntaxComment:      colorx.Hsl(210, 0.1, 0.48),
		SyntaxNumber:       colorx.Hsl(25, 0.75, 0.65),
		SyntaxFunction:     colorx.Hsl(210, 0.8, 0.68),
		SyntaxOperator:     colorx.Hsl(210, 0.2, 0.8),
		SyntaxPunctuation:  colorx.Hsl(210, 0.12, 0.68),
	}
	t.spaces = [numSpaceTokens]unit.Value{
		SpaceXS: unit.Dp(2),
		SpaceSM: unit.Dp(4),
		SpaceMD: unit.Dp(8),
		SpaceLG: unit.Dp(16),
		SpaceXL: unit.Dp(24),
	}
	return t
}

// Light returns the built-in light theme.
func Light() *Theme {
	t := &Theme{
		CornerRadius: unit.Dp(4),
		BorderWidth:  unit.Dp(1),
	}
	t.colors = [numColorTokens]colorx.Hsla{
		BackgroundBase:     colorx.Hsl(0, 0, 1),
		BackgroundElevated: colorx.Hsl(0, 0, 0.98),
		BackgroundSunken:   colorx.Hsl(210, 0.2, 0.95),
		TextPrimary:        colorx.Hsl(222, 0.3, 0.12),
		TextSecondary:      colorx.Hsl(222, 0.12, 0.35),
		TextDisabled:       colorx.Hsl(222, 0.08, 0.65),
		Accent:             colorx.Hsl(210, 0.9, 0.45),
		AccentMuted:        colorx.Hsl(210, 0.5, 0.75),
		Border:             colorx.Hsl(222, 0.12, 0.85),
		BorderFocused:      colorx.Hsl(210, 0.9, 0.45),
		StatusSuccess:      colorx.Hsl(142, 0.6, 0.35),
		StatusWarning:      colorx.Hsl(38, 0.9, 0.45),
		StatusError:        colorx.Hsl(4, 0.8, 0.48),
		StatusInfo:         colorx.Hsl(205, 0.75, 0.45),
		SyntaxKeyword:      colorx.Hsl(286, 0.5, 0.42),
		SyntaxString:       colorx.Hsl(95, 0.45, 0.35),
		SyntaxComment:      colorx.Hsl(210, 0.1, 0.55),
		SyntaxNumber:       colorx.Hsl(25, 0.7, 0.4),
		SyntaxFunction:     colorx.Hsl(210, 0.7, 0.38),
		SyntaxOperator:     colorx.Hsl(222, 0.2, 0.3),
		SyntaxPunctuation:  colorx.Hsl(222, 0.12, 0.4),
	}
	t.spaces = [numSpaceTokens]unit.Value{
		SpaceXS: unit.Dp(2),
		SpaceSM: unit.Dp(4),
		SpaceMD: unit.Dp(8),
		SpaceLG: unit.Dp(16),
		SpaceXL: unit.Dp(24),
	}
	return t
}
