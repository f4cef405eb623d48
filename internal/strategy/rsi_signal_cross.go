package strategy

import (
	"github.com/moznion/go-optional"

	"github.com/oscillab/crossbt/internal/indicator"
	"github.com/oscillab/crossbt/internal/types"
)

// RSISignalCross trades RSI against its own moving average: buy when RSI
// crosses above the signal line, sell when it crosses back below.
type RSISignalCross struct {
	rsiPeriod    int
	signalPeriod int

	bars   []types.Bar
	rsi    types.Series
	signal types.Series
}

// NewRSISignalCross creates the RSI signal-line crossover variant.
func NewRSISignalCross(rsiPeriod, signalPeriod int) *RSISignalCross {
	return &RSISignalCross{
		rsiPeriod:    rsiPeriod,
		signalPeriod: signalPeriod,
	}
}

// Name implements Strategy.
func (s *RSISignalCross) Name() string {
	return "rsi-signal"
}

// MinEngineVersion implements Strategy.
func (s *RSISignalCross) MinEngineVersion() string {
	return ">= 1.0.0"
}

// Prepare implements Strategy.
func (s *RSISignalCross) Prepare(bars []types.Bar) error {
	rsi, err := indicator.NewRSI(s.rsiPeriod).Compute(bars)
	if err != nil {
		return err
	}

	signal, err := indicator.NewMA(s.signalPeriod).ComputeSeries(rsi)
	if err != nil {
		return err
	}

	s.bars = bars
	s.rsi = rsi
	s.signal = signal

	return nil
}

// Entry implements Strategy.
func (s *RSISignalCross) Entry(t int) optional.Option[float64] {
	if !types.CrossedAbove(s.rsi, s.signal, t) {
		return optional.None[float64]()
	}

	return optional.Some(s.bars[t].Close)
}

// Exit implements Strategy.
func (s *RSISignalCross) Exit(t int) optional.Option[float64] {
	if !types.CrossedBelow(s.rsi, s.signal, t) {
		return optional.None[float64]()
	}

	return optional.Some(s.bars[t].Close)
}

// Lines implements Strategy.
func (s *RSISignalCross) Lines() map[string]types.Series {
	return map[string]types.Series{
		"RSI":    s.rsi,
		"signal": s.signal,
	}
}
