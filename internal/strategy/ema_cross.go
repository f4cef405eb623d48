package strategy

import (
	"github.com/moznion/go-optional"

	"github.com/oscillab/crossbt/internal/indicator"
	"github.com/oscillab/crossbt/internal/types"
	"github.com/oscillab/crossbt/pkg/errors"
)

// EMACross buys when the fast EMA crosses above the slow EMA and sells on
// the cross back below.
type EMACross struct {
	fastPeriod int
	slowPeriod int

	bars []types.Bar
	fast types.Series
	slow types.Series
}

// NewEMACross creates the EMA crossover variant.
func NewEMACross(fastPeriod, slowPeriod int) *EMACross {
	return &EMACross{
		fastPeriod: fastPeriod,
		slowPeriod: slowPeriod,
	}
}

// Name implements Strategy.
func (s *EMACross) Name() string {
	return "ema-cross"
}

// MinEngineVersion implements Strategy.
func (s *EMACross) MinEngineVersion() string {
	return ">= 1.0.0"
}

// Prepare implements Strategy.
func (s *EMACross) Prepare(bars []types.Bar) error {
	if s.fastPeriod >= s.slowPeriod {
		return errors.Newf(errors.ErrCodeInvalidPeriod,
			"fast period %d must be shorter than slow period %d", s.fastPeriod, s.slowPeriod)
	}

	fast, err := indicator.NewEMA(s.fastPeriod).Compute(bars)
	if err != nil {
		return err
	}

	slow, err := indicator.NewEMA(s.slowPeriod).Compute(bars)
	if err != nil {
		return err
	}

	s.bars = bars
	s.fast = fast
	s.slow = slow

	return nil
}

// Entry implements Strategy.
func (s *EMACross) Entry(t int) optional.Option[float64] {
	if !types.CrossedAbove(s.fast, s.slow, t) {
		return optional.None[float64]()
	}

	return optional.Some(s.bars[t].Close)
}

// Exit implements Strategy.
func (s *EMACross) Exit(t int) optional.Option[float64] {
	if !types.CrossedBelow(s.fast, s.slow, t) {
		return optional.None[float64]()
	}

	return optional.Some(s.bars[t].Close)
}

// Lines implements Strategy.
func (s *EMACross) Lines() map[string]types.Series {
	return map[string]types.Series{
		"EMA fast": s.fast,
		"EMA slow": s.slow,
	}
}
