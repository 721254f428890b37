// SPDX-License-Identifier: Unlicense OR MIT

package kerr

import (
	"errors"
	"testing"
)

func TestRepeatedRenderFailureUnwraps(t *testing.T) {
	inner := ErrSurfaceLost
	err := &RepeatedRenderFailure{Attempts: 3, Last: inner}
	if !errors.Is(err, ErrSurfaceLost) {
		t.Error("errors.Is did not see through RepeatedRenderFailure to its Last error")
	}
}

func TestUnknownHighlightLanguageMessage(t *testing.T) {
	err := &UnknownHighlightLanguage{Language: "cobol"}
	if err.Error() == "" {
		t.Error("expected a non-empty error message")
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrCyclicDependency, ErrReactiveDidNotSettle, ErrAtlasExhausted,
		ErrSurfaceLost, ErrRenderTimeout, ErrPlatformInitFailed, ErrUnknownCommand,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %d unexpectedly matches sentinel %d", i, j)
			}
		}
	}
}
