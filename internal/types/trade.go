package types

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/oscillab/crossbt/pkg/errors"
)

type Side string

type PositionState string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

const (
	PositionStateFlat PositionState = "FLAT"
	PositionStateLong PositionState = "LONG"
)

const (
	// TradeReasonSignal marks a trade triggered by the strategy's entry or exit rule.
	TradeReasonSignal string = "signal"
	// TradeReasonFinalLiquidation marks the forced sell of an open position at the last bar.
	TradeReasonFinalLiquidation string = "final_liquidation"
)

// Trade is one entry in the append-only trade log. Entries are never
// mutated after creation.
type Trade struct {
	OrderID    string    `yaml:"order_id" json:"order_id" csv:"order_id" validate:"required,uuid"`
	BarIndex   int       `yaml:"bar_index" json:"bar_index" csv:"bar_index" validate:"gte=0"`
	Time       time.Time `yaml:"time" json:"time" csv:"time" validate:"required"`
	Side       Side      `yaml:"side" json:"side" csv:"side" validate:"required,oneof=BUY SELL"`
	Price      float64   `yaml:"price" json:"price" csv:"price" validate:"gt=0"`
	Shares     int64     `yaml:"shares" json:"shares" csv:"shares" validate:"gt=0"`
	Commission float64   `yaml:"commission" json:"commission" csv:"commission" validate:"gte=0"`
	// Reason records why the trade happened: a rule signal or the
	// end-of-period liquidation.
	Reason string `yaml:"reason" json:"reason" csv:"reason" validate:"required"`
	// PnL is the realized profit and loss for sell trades, zero for buys.
	PnL float64 `yaml:"pnl" json:"pnl" csv:"pnl"`
}

// Validate validates the Trade struct.
func (t *Trade) Validate() error {
	validate := validator.New()
	if err := validate.Struct(t); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid trade", err)
	}

	return nil
}
