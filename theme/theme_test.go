// SPDX-License-Identifier: Unlicense OR MIT

package theme

import (
	"testing"

	"kernelui.dev/colorx"
)

func TestDarkAndLightCoverAllTokens(t *testing.T) {
	for _, th := range []*Theme{Dark(), Light()} {
		for tok := ColorToken(0); tok < numColorTokens; tok++ {
			c := th.Color(tok)
			if c.Alpha == 0 && c.Saturation == 0 && c.Lightness == 0 && c.Hue == 0 {
				t.Errorf("token %d resolved to zero value", tok)
			}
		}
		for tok := SpaceToken(0); tok < numSpaceTokens; tok++ {
			if th.Space(tok).V <= 0 {
				t.Errorf("space token %d resolved to non-positive value", tok)
			}
		}
	}
}

func TestSetColorOverrides(t *testing.T) {
	th := Dark()
	custom := colorx.Hsl(1, 2, 3)
	th.SetColor(Accent, custom)
	if got := th.Color(Accent); got != custom {
		t.Errorf("Color(Accent) = %+v, want %+v", got, custom)
	}
}

func TestDarkAndLightDiffer(t *testing.T) {
	dark, light := Dark(), Light()
	if dark.Color(BackgroundBase) == light.Color(BackgroundBase) {
		t.Error("Dark and Light themes share identical BackgroundBase")
	}
}
