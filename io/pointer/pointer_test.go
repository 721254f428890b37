// SPDX-License-Identifier: Unlicense OR MIT

package pointer

import "testing"

func TestButtonsString(t *testing.T) {
	b := ButtonLeft | ButtonMiddle
	if !b.Contain(ButtonLeft) || !b.Contain(ButtonMiddle) {
		t.Fatal("Contain failed to report set buttons")
	}
	if b.Contain(ButtonRight) {
		t.Fatal("Contain reported an unset button")
	}
	if got, want := b.String(), "ButtonLeft|ButtonMiddle"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTypeString(t *testing.T) {
	for _, typ := range []Type{Cancel, Press, Release, Move, Wheel} {
		if typ.String() == "" {
			t.Errorf("Type(%d).String() returned empty string", typ)
		}
	}
}
