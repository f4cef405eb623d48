package indicator

import (
	"github.com/oscillab/crossbt/internal/types"
)

// RSI is the Relative Strength Index: a bounded [0,100] momentum oscillator
// computed from average gains versus losses over a trailing window, using
// Wilder's smoothing method.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator.
func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

// Compute calculates the RSI of the close prices. The first defined entry
// is at index period, since the first average needs period price changes.
func (r *RSI) Compute(bars []types.Bar) (types.Series, error) {
	if err := validatePeriod("RSI", r.period); err != nil {
		return types.Series{}, err
	}

	out := types.NewSeries(len(bars))
	if len(bars) < r.period+1 {
		return out, nil
	}

	gains := make([]float64, len(bars))
	losses := make([]float64, len(bars))

	for i := 1; i < len(bars); i++ {
		change := bars[i].Close - bars[i-1].Close
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	// First average over the initial window
	avgGain := 0.0
	avgLoss := 0.0

	for i := 1; i <= r.period; i++ {
		avgGain += gains[i]
		avgLoss += losses[i]
	}

	avgGain /= float64(r.period)
	avgLoss /= float64(r.period)

	out.Set(r.period, rsiFromAverages(avgGain, avgLoss))

	// Subsequent averages use Wilder's smoothing method
	for i := r.period + 1; i < len(bars); i++ {
		avgGain = (avgGain*float64(r.period-1) + gains[i]) / float64(r.period)
		avgLoss = (avgLoss*float64(r.period-1) + losses[i]) / float64(r.period)

		out.Set(i, rsiFromAverages(avgGain, avgLoss))
	}

	return out, nil
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		// Perfect uptrend (or a flat window): the loss denominator is
		// zero, so the oscillator saturates instead of dividing.
		return 100
	}

	rs := avgGain / avgLoss

	return 100 - (100 / (1 + rs))
}
