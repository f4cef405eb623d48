package indicator

import (
	"github.com/oscillab/crossbt/internal/types"
)

// EMA is an exponential moving average with the conventional 2/(period+1)
// smoothing factor, seeded by the SMA of the first full window.
type EMA struct {
	period int
}

// NewEMA creates a new exponential moving average indicator.
func NewEMA(period int) *EMA {
	return &EMA{period: period}
}

// Compute calculates the EMA of the close prices.
func (e *EMA) Compute(bars []types.Bar) (types.Series, error) {
	return e.ComputeSeries(types.Closes(bars))
}

// ComputeSeries calculates the EMA over an arbitrary source series. The
// source may carry leading undefined entries (e.g. the output of another
// indicator); the EMA seeds itself at the first full window of defined
// values and stays defined from there on.
func (e *EMA) ComputeSeries(src types.Series) (types.Series, error) {
	if err := validatePeriod("EMA", e.period); err != nil {
		return types.Series{}, err
	}

	out := types.NewSeries(src.Len())
	multiplier := 2.0 / (float64(e.period) + 1.0)

	seeded := false
	prev := 0.0

	for i := 0; i < src.Len(); i++ {
		v, ok := src.Value(i)
		if !ok {
			// An undefined entry after seeding restarts the warm-up.
			seeded = false

			continue
		}

		if !seeded {
			window, full := rollingWindow(src, i, e.period)
			if !full {
				continue
			}

			sum := 0.0
			for _, w := range window {
				sum += w
			}

			prev = sum / float64(e.period)
			seeded = true
		} else {
			prev = (v-prev)*multiplier + prev
		}

		out.Set(i, prev)
	}

	return out, nil
}
