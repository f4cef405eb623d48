package strategy

import (
	"github.com/moznion/go-optional"

	"github.com/oscillab/crossbt/internal/indicator"
	"github.com/oscillab/crossbt/internal/types"
	"github.com/oscillab/crossbt/pkg/errors"
)

// RSIThreshold is the classic oversold/overbought level-crossing variant:
// buy when RSI crosses up through the oversold level, sell when it crosses
// down through the overbought level.
type RSIThreshold struct {
	period     int
	oversold   float64
	overbought float64

	bars      []types.Bar
	rsi       types.Series
	lowLevel  types.Series
	highLevel types.Series
}

// NewRSIThreshold creates the RSI threshold variant. The classic
// parameterization is NewRSIThreshold(14, 30, 70).
func NewRSIThreshold(period int, oversold, overbought float64) *RSIThreshold {
	return &RSIThreshold{
		period:     period,
		oversold:   oversold,
		overbought: overbought,
	}
}

// Name implements Strategy.
func (s *RSIThreshold) Name() string {
	return "rsi-threshold"
}

// MinEngineVersion implements Strategy.
func (s *RSIThreshold) MinEngineVersion() string {
	return ">= 1.0.0"
}

// Prepare implements Strategy.
func (s *RSIThreshold) Prepare(bars []types.Bar) error {
	if s.oversold >= s.overbought {
		return errors.Newf(errors.ErrCodeInvalidThreshold,
			"oversold level %.2f must be below overbought level %.2f", s.oversold, s.overbought)
	}

	rsi, err := indicator.NewRSI(s.period).Compute(bars)
	if err != nil {
		return err
	}

	s.bars = bars
	s.rsi = rsi
	s.lowLevel = types.ConstantSeries(len(bars), s.oversold)
	s.highLevel = types.ConstantSeries(len(bars), s.overbought)

	return nil
}

// Entry implements Strategy.
func (s *RSIThreshold) Entry(t int) optional.Option[float64] {
	if !types.CrossedAbove(s.rsi, s.lowLevel, t) {
		return optional.None[float64]()
	}

	return optional.Some(s.bars[t].Close)
}

// Exit implements Strategy.
func (s *RSIThreshold) Exit(t int) optional.Option[float64] {
	if !types.CrossedBelow(s.rsi, s.highLevel, t) {
		return optional.None[float64]()
	}

	return optional.Some(s.bars[t].Close)
}

// Lines implements Strategy.
func (s *RSIThreshold) Lines() map[string]types.Series {
	return map[string]types.Series{
		"RSI": s.rsi,
	}
}
