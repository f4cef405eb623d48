package strategy

import (
	"github.com/moznion/go-optional"

	"github.com/oscillab/crossbt/internal/indicator"
	"github.com/oscillab/crossbt/internal/types"
)

// StochRSICross is the reference variant: buy when the fast %K line crosses
// above the slow %D line while %K is still below a ceiling (so crosses deep
// in overbought territory are filtered out), sell on the downward cross.
// Both executions happen at the bar's close.
type StochRSICross struct {
	rsiPeriod    int
	stochPeriod  int
	kSmooth      int
	dSmooth      int
	entryCeiling float64

	bars []types.Bar
	k    types.Series
	d    types.Series
}

// NewStochRSICross creates the StochRSI %K/%D crossover variant.
func NewStochRSICross(rsiPeriod, stochPeriod, kSmooth, dSmooth int, entryCeiling float64) *StochRSICross {
	return &StochRSICross{
		rsiPeriod:    rsiPeriod,
		stochPeriod:  stochPeriod,
		kSmooth:      kSmooth,
		dSmooth:      dSmooth,
		entryCeiling: entryCeiling,
	}
}

// Name implements Strategy.
func (s *StochRSICross) Name() string {
	return "stochrsi-cross"
}

// MinEngineVersion implements Strategy.
func (s *StochRSICross) MinEngineVersion() string {
	return ">= 1.0.0"
}

// Prepare implements Strategy.
func (s *StochRSICross) Prepare(bars []types.Bar) error {
	k, d, err := indicator.NewStochRSI(s.rsiPeriod, s.stochPeriod, s.kSmooth, s.dSmooth).Compute(bars)
	if err != nil {
		return err
	}

	s.bars = bars
	s.k = k
	s.d = d

	return nil
}

// Entry implements Strategy.
func (s *StochRSICross) Entry(t int) optional.Option[float64] {
	if !types.CrossedAbove(s.k, s.d, t) {
		return optional.None[float64]()
	}

	// Entry filter: the fast line must still be under the ceiling.
	k, ok := s.k.Value(t)
	if !ok || k >= s.entryCeiling {
		return optional.None[float64]()
	}

	return optional.Some(s.bars[t].Close)
}

// Exit implements Strategy.
func (s *StochRSICross) Exit(t int) optional.Option[float64] {
	if !types.CrossedBelow(s.k, s.d, t) {
		return optional.None[float64]()
	}

	return optional.Some(s.bars[t].Close)
}

// Lines implements Strategy.
func (s *StochRSICross) Lines() map[string]types.Series {
	return map[string]types.Series{
		"%K": s.k,
		"%D": s.d,
	}
}
