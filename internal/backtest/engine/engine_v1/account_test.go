package engine

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/oscillab/crossbt/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/oscillab/crossbt/internal/types"
)

type AccountTestSuite struct {
	suite.Suite
}

func TestAccountSuite(t *testing.T) {
	suite.Run(t, new(AccountTestSuite))
}

func (suite *AccountTestSuite) TestBuyFloorsToWholeShares() {
	account := NewAccount(10050)
	fee := commission_fee.NewZeroCommissionFee()

	shares, charged := account.Buy(100, fee, false)
	suite.Equal(int64(100), shares)
	suite.Equal(0.0, charged)
	suite.Equal(types.PositionStateLong, account.State())
	suite.InDelta(50.0, account.Cash(), 1e-9)
}

func (suite *AccountTestSuite) TestBuyAllInLeavesZeroCash() {
	account := NewAccount(10000)
	fee := commission_fee.NewZeroCommissionFee()

	shares, _ := account.Buy(100, fee, false)
	suite.Equal(int64(100), shares)
	suite.Equal(0.0, account.Cash())
}

func (suite *AccountTestSuite) TestBuyInsufficientCashIsNoOp() {
	account := NewAccount(50)
	fee := commission_fee.NewZeroCommissionFee()

	shares, charged := account.Buy(100, fee, false)
	suite.Equal(int64(0), shares)
	suite.Equal(0.0, charged)
	suite.Equal(types.PositionStateFlat, account.State())
	suite.Equal(50.0, account.Cash())
}

// Commission reduces the affordable share count: the fee is paid from the
// same cash pool, so cash never goes negative.
func (suite *AccountTestSuite) TestBuyShrinksForCommission() {
	account := NewAccount(10000)
	fee := commission_fee.NewFixedCommissionFee(150)

	shares, charged := account.Buy(100, fee, true)
	suite.Equal(int64(98), shares)
	suite.Equal(150.0, charged)
	suite.InDelta(50.0, account.Cash(), 1e-9)
	suite.GreaterOrEqual(account.Cash(), 0.0)
}

func (suite *AccountTestSuite) TestSellRealizesPnL() {
	account := NewAccount(10000)
	fee := commission_fee.NewZeroCommissionFee()

	account.Buy(100, fee, false)

	shares, charged, pnl := account.Sell(110, fee, false)
	suite.Equal(int64(100), shares)
	suite.Equal(0.0, charged)
	suite.InDelta(1000.0, pnl, 1e-9)
	suite.Equal(types.PositionStateFlat, account.State())
	suite.InDelta(11000.0, account.Cash(), 1e-9)
}

func (suite *AccountTestSuite) TestSellCommissionReducesPnL() {
	account := NewAccount(10000)
	zero := commission_fee.NewZeroCommissionFee()
	fixed := commission_fee.NewFixedCommissionFee(2)

	account.Buy(100, zero, false)

	_, charged, pnl := account.Sell(110, fixed, true)
	suite.Equal(2.0, charged)
	suite.InDelta(998.0, pnl, 1e-9)
	suite.InDelta(10998.0, account.Cash(), 1e-9)
}

func (suite *AccountTestSuite) TestEquityMarksToMarket() {
	account := NewAccount(10000)
	fee := commission_fee.NewZeroCommissionFee()

	suite.Equal(10000.0, account.Equity(123))

	account.Buy(100, fee, false)
	suite.InDelta(9000.0, account.Equity(90), 1e-9)
	suite.InDelta(11000.0, account.Equity(110), 1e-9)
}
