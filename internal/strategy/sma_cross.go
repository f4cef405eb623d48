package strategy

import (
	"github.com/moznion/go-optional"

	"github.com/oscillab/crossbt/internal/indicator"
	"github.com/oscillab/crossbt/internal/types"
	"github.com/oscillab/crossbt/pkg/errors"
)

// SMACross buys when the fast SMA crosses above the slow SMA and sells on
// the cross back below.
type SMACross struct {
	fastPeriod int
	slowPeriod int

	bars []types.Bar
	fast types.Series
	slow types.Series
}

// NewSMACross creates the SMA crossover variant.
func NewSMACross(fastPeriod, slowPeriod int) *SMACross {
	return &SMACross{
		fastPeriod: fastPeriod,
		slowPeriod: slowPeriod,
	}
}

// Name implements Strategy.
func (s *SMACross) Name() string {
	return "sma-cross"
}

// MinEngineVersion implements Strategy.
func (s *SMACross) MinEngineVersion() string {
	return ">= 1.0.0"
}

// Prepare implements Strategy.
func (s *SMACross) Prepare(bars []types.Bar) error {
	if s.fastPeriod >= s.slowPeriod {
		return errors.Newf(errors.ErrCodeInvalidPeriod,
			"fast period %d must be shorter than slow period %d", s.fastPeriod, s.slowPeriod)
	}

	fast, err := indicator.NewMA(s.fastPeriod).Compute(bars)
	if err != nil {
		return err
	}

	slow, err := indicator.NewMA(s.slowPeriod).Compute(bars)
	if err != nil {
		return err
	}

	s.bars = bars
	s.fast = fast
	s.slow = slow

	return nil
}

// Entry implements Strategy.
func (s *SMACross) Entry(t int) optional.Option[float64] {
	if !types.CrossedAbove(s.fast, s.slow, t) {
		return optional.None[float64]()
	}

	return optional.Some(s.bars[t].Close)
}

// Exit implements Strategy.
func (s *SMACross) Exit(t int) optional.Option[float64] {
	if !types.CrossedBelow(s.fast, s.slow, t) {
		return optional.None[float64]()
	}

	return optional.Some(s.bars[t].Close)
}

// Lines implements Strategy.
func (s *SMACross) Lines() map[string]types.Series {
	return map[string]types.Series{
		"SMA fast": s.fast,
		"SMA slow": s.slow,
	}
}
