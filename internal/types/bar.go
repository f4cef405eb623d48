package types

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/oscillab/crossbt/pkg/errors"
)

// Bar is a single price bar. Bars form an ordered sequence with
// monotonically non-decreasing timestamps; the index is the time order.
// High and Low are only consulted by limit-order execution models, Close
// drives everything else.
type Bar struct {
	Time   time.Time `yaml:"time" json:"time" csv:"time" validate:"required"`
	Open   float64   `yaml:"open" json:"open" csv:"open"`
	High   float64   `yaml:"high" json:"high" csv:"high"`
	Low    float64   `yaml:"low" json:"low" csv:"low"`
	Close  float64   `yaml:"close" json:"close" csv:"close" validate:"gt=0"`
	Volume float64   `yaml:"volume" json:"volume" csv:"volume"`
}

// Validate validates a single bar.
func (b *Bar) Validate() error {
	validate := validator.New()
	if err := validate.Struct(b); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid bar", err)
	}

	return nil
}

// ValidateBars checks the shape preconditions the backtest engine requires:
// at least two bars (rules need a previous-bar comparison) and
// non-decreasing timestamps.
func ValidateBars(bars []Bar) error {
	if len(bars) == 0 {
		return errors.New(errors.ErrCodeEmptyBars, "bar sequence is empty")
	}

	if len(bars) < 2 {
		return errors.Newf(errors.ErrCodeTooFewBars, "need at least 2 bars, got %d", len(bars))
	}

	for i := 1; i < len(bars); i++ {
		if bars[i].Time.Before(bars[i-1].Time) {
			return errors.Newf(errors.ErrCodeInvalidParameter,
				"bar timestamps must be non-decreasing, bar %d (%s) precedes bar %d (%s)",
				i, bars[i].Time, i-1, bars[i-1].Time)
		}
	}

	return nil
}

// Closes extracts the close prices of a bar sequence as a fully defined series.
func Closes(bars []Bar) Series {
	s := NewSeries(len(bars))
	for i, bar := range bars {
		s.Set(i, bar.Close)
	}

	return s
}
