package engine

import (
	"github.com/shopspring/decimal"

	"github.com/oscillab/crossbt/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/oscillab/crossbt/internal/types"
)

// Account is the single cash/position pair owned by one run. It is created
// fresh at backtest start and mutated only by the bar-processing step.
// Invariants: shares > 0 iff the state is LONG, cash never goes negative,
// and equity(t) = cash + shares*close(t) at every bar.
type Account struct {
	cash       decimal.Decimal
	shares     int64
	state      types.PositionState
	entryPrice decimal.Decimal
}

// NewAccount creates a flat account holding the initial capital in cash.
func NewAccount(initialCapital float64) *Account {
	return &Account{
		cash:       decimal.NewFromFloat(initialCapital),
		shares:     0,
		state:      types.PositionStateFlat,
		entryPrice: decimal.Zero,
	}
}

// State returns the current position state.
func (a *Account) State() types.PositionState {
	return a.state
}

// Shares returns the current holding.
func (a *Account) Shares() int64 {
	return a.shares
}

// Cash returns the current cash balance.
func (a *Account) Cash() float64 {
	cash, _ := a.cash.Float64()

	return cash
}

// Equity returns the mark-to-market value of the account at the given price.
func (a *Account) Equity(price float64) float64 {
	equity, _ := a.cash.
		Add(decimal.NewFromInt(a.shares).Mul(decimal.NewFromFloat(price))).
		Float64()

	return equity
}

// Buy opens a whole-share position sized with floor(cash / price). If the
// cash cannot cover a single share plus the commission, nothing happens and
// zero shares are returned: insufficient cash is a silent no-op, not an
// error. Returns the shares bought and the commission charged.
func (a *Account) Buy(price float64, fee commission_fee.CommissionFee, charge bool) (int64, float64) {
	if a.state != types.PositionStateFlat || price <= 0 {
		return 0, 0
	}

	priceDec := decimal.NewFromFloat(price)
	shares := a.cash.Div(priceDec).IntPart()

	// Shrink until the cost including commission fits in cash. The fee
	// can depend on the quantity, so it is recomputed per step.
	var feeAmount decimal.Decimal

	for shares > 0 {
		feeAmount = decimal.Zero
		if charge {
			feeAmount = decimal.NewFromFloat(fee.Calculate(float64(shares)))
		}

		cost := priceDec.Mul(decimal.NewFromInt(shares)).Add(feeAmount)
		if cost.LessThanOrEqual(a.cash) {
			a.cash = a.cash.Sub(cost)
			a.shares = shares
			a.state = types.PositionStateLong
			a.entryPrice = priceDec

			charged, _ := feeAmount.Float64()

			return shares, charged
		}

		shares--
	}

	return 0, 0
}

// Sell closes the entire position at the given price. Returns the shares
// sold, the commission charged, and the realized PnL net of the exit
// commission. Selling while flat is a no-op.
func (a *Account) Sell(price float64, fee commission_fee.CommissionFee, charge bool) (int64, float64, float64) {
	if a.state != types.PositionStateLong || a.shares == 0 {
		return 0, 0, 0
	}

	priceDec := decimal.NewFromFloat(price)
	sharesDec := decimal.NewFromInt(a.shares)

	feeAmount := decimal.Zero
	if charge {
		feeAmount = decimal.NewFromFloat(fee.Calculate(float64(a.shares)))
	}

	proceeds := priceDec.Mul(sharesDec).Sub(feeAmount)
	pnl := priceDec.Sub(a.entryPrice).Mul(sharesDec).Sub(feeAmount)

	a.cash = a.cash.Add(proceeds)

	sold := a.shares
	a.shares = 0
	a.state = types.PositionStateFlat
	a.entryPrice = decimal.Zero

	charged, _ := feeAmount.Float64()
	realized, _ := pnl.Float64()

	return sold, charged, realized
}
