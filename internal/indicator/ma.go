package indicator

import (
	"github.com/oscillab/crossbt/internal/types"
)

// MA is a simple moving average over a trailing window.
type MA struct {
	period int
}

// NewMA creates a new simple moving average indicator.
func NewMA(period int) *MA {
	return &MA{period: period}
}

// Compute calculates the SMA of the close prices.
func (m *MA) Compute(bars []types.Bar) (types.Series, error) {
	return m.ComputeSeries(types.Closes(bars))
}

// ComputeSeries calculates the SMA over an arbitrary source series. Output
// entries are defined only where the full trailing window is defined, which
// lets moving averages stack (e.g. %D as the SMA of %K).
func (m *MA) ComputeSeries(src types.Series) (types.Series, error) {
	if err := validatePeriod("MA", m.period); err != nil {
		return types.Series{}, err
	}

	out := types.NewSeries(src.Len())

	for i := 0; i < src.Len(); i++ {
		window, ok := rollingWindow(src, i, m.period)
		if !ok {
			continue
		}

		sum := 0.0
		for _, v := range window {
			sum += v
		}

		out.Set(i, sum/float64(m.period))
	}

	return out, nil
}
