// Package indicator implements the technical indicators consumed by the
// backtest engine: SMA, EMA, RSI, StochRSI and Bollinger Bands.
//
// Every indicator is a pure function from a bar sequence to one or more
// aligned series. Warm-up entries, where the trailing window is not yet
// full, are explicitly undefined; the engine's crossover predicates skip
// them, so an indicator never has to emit NaN or a placeholder number.
package indicator

import (
	"github.com/oscillab/crossbt/internal/types"
	"github.com/oscillab/crossbt/pkg/errors"
)

// validatePeriod rejects non-positive trailing window lengths.
func validatePeriod(name string, period int) error {
	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "%s period must be a positive integer, got %d", name, period)
	}

	return nil
}

// rollingWindow returns the window of defined values ending at index i, or
// false if any entry in the window is undefined or out of range.
func rollingWindow(src types.Series, i, period int) ([]float64, bool) {
	if i-period+1 < 0 {
		return nil, false
	}

	window := make([]float64, 0, period)

	for j := i - period + 1; j <= i; j++ {
		v, ok := src.Value(j)
		if !ok {
			return nil, false
		}

		window = append(window, v)
	}

	return window, true
}
