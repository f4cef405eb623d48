package strategy

import (
	"github.com/moznion/go-optional"

	"github.com/oscillab/crossbt/internal/indicator"
	"github.com/oscillab/crossbt/internal/types"
)

// BollingerReversion is the close-price band variant: buy when the close
// crosses below the lower band, sell when it crosses above the upper band.
// Executions happen at the close, not at the band price.
type BollingerReversion struct {
	period int
	stdDev float64

	bars   []types.Bar
	closes types.Series
	upper  types.Series
	lower  types.Series
	middle types.Series
}

// NewBollingerReversion creates the Bollinger mean-reversion variant.
func NewBollingerReversion(period int, stdDev float64) *BollingerReversion {
	return &BollingerReversion{
		period: period,
		stdDev: stdDev,
	}
}

// Name implements Strategy.
func (s *BollingerReversion) Name() string {
	return "boll-reversion"
}

// MinEngineVersion implements Strategy.
func (s *BollingerReversion) MinEngineVersion() string {
	return ">= 1.0.0"
}

// Prepare implements Strategy.
func (s *BollingerReversion) Prepare(bars []types.Bar) error {
	upper, middle, lower, err := indicator.NewBollingerBands(s.period, s.stdDev).Compute(bars)
	if err != nil {
		return err
	}

	s.bars = bars
	s.closes = types.Closes(bars)
	s.upper = upper
	s.middle = middle
	s.lower = lower

	return nil
}

// Entry implements Strategy.
func (s *BollingerReversion) Entry(t int) optional.Option[float64] {
	if !types.CrossedBelow(s.closes, s.lower, t) {
		return optional.None[float64]()
	}

	return optional.Some(s.bars[t].Close)
}

// Exit implements Strategy.
func (s *BollingerReversion) Exit(t int) optional.Option[float64] {
	if !types.CrossedAbove(s.closes, s.upper, t) {
		return optional.None[float64]()
	}

	return optional.Some(s.bars[t].Close)
}

// Lines implements Strategy.
func (s *BollingerReversion) Lines() map[string]types.Series {
	return map[string]types.Series{
		"BB upper":  s.upper,
		"BB middle": s.middle,
		"BB lower":  s.lower,
	}
}
