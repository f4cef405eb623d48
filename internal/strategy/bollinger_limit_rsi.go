package strategy

import (
	"github.com/moznion/go-optional"

	"github.com/oscillab/crossbt/internal/indicator"
	"github.com/oscillab/crossbt/internal/types"
)

// BollingerLimitRSI is the limit-order variant: the lower band is a buy
// limit that only fills when the bar's low actually trades through it, with
// RSI confirming the dip; the upper band is a sell limit filled when the
// bar's high reaches it. The limit price is recomputed fresh from the
// current band every bar, so a missed fill is simply re-evaluated — no
// order state is carried across bars.
type BollingerLimitRSI struct {
	period        int
	stdDev        float64
	rsiPeriod     int
	buyThreshold  float64
	sellThreshold float64

	bars  []types.Bar
	upper types.Series
	lower types.Series
	rsi   types.Series
}

// NewBollingerLimitRSI creates the Bollinger limit-order variant with RSI
// confirmation.
func NewBollingerLimitRSI(period int, stdDev float64, rsiPeriod int, buyThreshold, sellThreshold float64) *BollingerLimitRSI {
	return &BollingerLimitRSI{
		period:        period,
		stdDev:        stdDev,
		rsiPeriod:     rsiPeriod,
		buyThreshold:  buyThreshold,
		sellThreshold: sellThreshold,
	}
}

// Name implements Strategy.
func (s *BollingerLimitRSI) Name() string {
	return "boll-limit-rsi"
}

// MinEngineVersion implements Strategy.
func (s *BollingerLimitRSI) MinEngineVersion() string {
	return ">= 1.0.0"
}

// Prepare implements Strategy.
func (s *BollingerLimitRSI) Prepare(bars []types.Bar) error {
	upper, _, lower, err := indicator.NewBollingerBands(s.period, s.stdDev).Compute(bars)
	if err != nil {
		return err
	}

	rsi, err := indicator.NewRSI(s.rsiPeriod).Compute(bars)
	if err != nil {
		return err
	}

	s.bars = bars
	s.upper = upper
	s.lower = lower
	s.rsi = rsi

	return nil
}

// Entry implements Strategy. The buy limit at the lower band fills only
// when the bar's range reaches it and RSI confirms the dip.
func (s *BollingerLimitRSI) Entry(t int) optional.Option[float64] {
	limit, ok := s.lower.Value(t)
	if !ok || limit <= 0 {
		return optional.None[float64]()
	}

	rsi, ok := s.rsi.Value(t)
	if !ok || rsi >= s.buyThreshold {
		return optional.None[float64]()
	}

	// The fill condition: the bar must actually trade through the limit.
	if s.bars[t].Low > limit {
		return optional.None[float64]()
	}

	return optional.Some(limit)
}

// Exit implements Strategy. The sell limit at the upper band fills when the
// bar's high reaches it; the band touch alone confirms the top. Failing
// that, an overbought RSI closes the position at the bar's close.
func (s *BollingerLimitRSI) Exit(t int) optional.Option[float64] {
	limit, ok := s.upper.Value(t)
	if !ok {
		return optional.None[float64]()
	}

	if s.bars[t].High >= limit {
		return optional.Some(limit)
	}

	if rsi, ok := s.rsi.Value(t); ok && rsi > s.sellThreshold {
		return optional.Some(s.bars[t].Close)
	}

	return optional.None[float64]()
}

// Lines implements Strategy.
func (s *BollingerLimitRSI) Lines() map[string]types.Series {
	return map[string]types.Series{
		"BB upper": s.upper,
		"BB lower": s.lower,
		"RSI":      s.rsi,
	}
}
