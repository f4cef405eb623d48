package indicator

import (
	"github.com/oscillab/crossbt/internal/types"
)

// StochRSI rescales RSI into [0,100] using its own rolling min/max, then
// smooths the result twice: %K is the SMA of the raw stochastic, %D is the
// SMA of %K. A %K/%D cross is the canonical entry/exit trigger.
type StochRSI struct {
	rsiPeriod   int
	stochPeriod int
	kSmooth     int
	dSmooth     int
}

// NewStochRSI creates a new StochRSI indicator. The classic parameterization
// is NewStochRSI(14, 14, 3, 3).
func NewStochRSI(rsiPeriod, stochPeriod, kSmooth, dSmooth int) *StochRSI {
	return &StochRSI{
		rsiPeriod:   rsiPeriod,
		stochPeriod: stochPeriod,
		kSmooth:     kSmooth,
		dSmooth:     dSmooth,
	}
}

// Compute calculates the %K and %D lines. Both series are aligned with the
// bars and undefined until their stacked warm-up windows are full.
func (s *StochRSI) Compute(bars []types.Bar) (types.Series, types.Series, error) {
	for name, period := range map[string]int{
		"StochRSI rsi":   s.rsiPeriod,
		"StochRSI stoch": s.stochPeriod,
		"StochRSI k":     s.kSmooth,
		"StochRSI d":     s.dSmooth,
	} {
		if err := validatePeriod(name, period); err != nil {
			return types.Series{}, types.Series{}, err
		}
	}

	rsi, err := NewRSI(s.rsiPeriod).Compute(bars)
	if err != nil {
		return types.Series{}, types.Series{}, err
	}

	stoch := types.NewSeries(len(bars))

	for i := 0; i < len(bars); i++ {
		window, ok := rollingWindow(rsi, i, s.stochPeriod)
		if !ok {
			continue
		}

		lowest := window[0]
		highest := window[0]

		for _, v := range window[1:] {
			if v < lowest {
				lowest = v
			}

			if v > highest {
				highest = v
			}
		}

		// A flat RSI window maps to 0, not NaN: the zero-range rescale
		// is defined as the bottom of the band.
		if highest-lowest == 0 {
			stoch.Set(i, 0)

			continue
		}

		current, _ := rsi.Value(i)
		stoch.Set(i, (current-lowest)/(highest-lowest)*100)
	}

	k, err := NewMA(s.kSmooth).ComputeSeries(stoch)
	if err != nil {
		return types.Series{}, types.Series{}, err
	}

	d, err := NewMA(s.dSmooth).ComputeSeries(k)
	if err != nil {
		return types.Series{}, types.Series{}, err
	}

	return k, d, nil
}
