package indicator

import (
	"math"

	"github.com/oscillab/crossbt/internal/types"
	"github.com/oscillab/crossbt/pkg/errors"
)

// BollingerBands computes a moving average with bands at a configurable
// number of rolling standard deviations, used as dynamic support and
// resistance levels.
type BollingerBands struct {
	period int
	stdDev float64
}

// NewBollingerBands creates a new Bollinger Bands indicator. The classic
// parameterization is NewBollingerBands(20, 2.0).
func NewBollingerBands(period int, stdDev float64) *BollingerBands {
	return &BollingerBands{
		period: period,
		stdDev: stdDev,
	}
}

// Compute calculates the upper, middle and lower bands over the close
// prices. All three series are undefined during the warm-up window.
func (bb *BollingerBands) Compute(bars []types.Bar) (types.Series, types.Series, types.Series, error) {
	if err := validatePeriod("BollingerBands", bb.period); err != nil {
		return types.Series{}, types.Series{}, types.Series{}, err
	}

	if bb.stdDev <= 0 {
		return types.Series{}, types.Series{}, types.Series{},
			errors.Newf(errors.ErrCodeInvalidStdDev, "stdDev must be a positive number, got %f", bb.stdDev)
	}

	closes := types.Closes(bars)
	upper := types.NewSeries(len(bars))
	middle := types.NewSeries(len(bars))
	lower := types.NewSeries(len(bars))

	for i := 0; i < len(bars); i++ {
		window, ok := rollingWindow(closes, i, bb.period)
		if !ok {
			continue
		}

		sum := 0.0
		for _, v := range window {
			sum += v
		}

		mean := sum / float64(bb.period)

		variance := 0.0
		for _, v := range window {
			variance += (v - mean) * (v - mean)
		}

		sd := math.Sqrt(variance / float64(bb.period))

		middle.Set(i, mean)
		upper.Set(i, mean+bb.stdDev*sd)
		lower.Set(i, mean-bb.stdDev*sd)
	}

	return upper, middle, lower, nil
}
