package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/oscillab/crossbt/internal/types"
)

type SummaryTestSuite struct {
	suite.Suite
}

func TestSummarySuite(t *testing.T) {
	suite.Run(t, new(SummaryTestSuite))
}

func tradeAt(side types.Side, price float64, shares int64, commission, pnl float64) types.Trade {
	return types.Trade{
		BarIndex:   0,
		Time:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Side:       side,
		Price:      price,
		Shares:     shares,
		Commission: commission,
		Reason:     types.TradeReasonSignal,
		PnL:        pnl,
	}
}

func (suite *SummaryTestSuite) TestStrategyWins() {
	equity := []float64{10000, 10500, 12000}
	benchmark := []float64{10000, 10200, 11000}
	trades := []types.Trade{
		tradeAt(types.SideBuy, 100, 100, 1, 0),
		tradeAt(types.SideSell, 120, 100, 1, 1998),
	}

	summary := Summarize("run-1", "sma-cross", 10000, equity, benchmark, trades)

	suite.Equal("run-1", summary.ID)
	suite.Equal("sma-cross", summary.StrategyName)
	suite.Equal(12000.0, summary.FinalEquity)
	suite.InDelta(2000.0, summary.StrategyProfit, 1e-9)
	suite.InDelta(1000.0, summary.BenchmarkProfit, 1e-9)
	suite.Equal(types.WinnerStrategy, summary.Winner)
	suite.InDelta(1000.0, summary.Margin, 1e-9)
	suite.Equal(2.0, summary.TotalCommission)
}

func (suite *SummaryTestSuite) TestBuyAndHoldWinsTies() {
	equity := []float64{10000, 11000}
	benchmark := []float64{10000, 11000}

	summary := Summarize("run-2", "ema-cross", 10000, equity, benchmark, nil)
	suite.Equal(types.WinnerBuyAndHold, summary.Winner)
	suite.InDelta(0.0, summary.Margin, 1e-9)
}

func (suite *SummaryTestSuite) TestTradeCounts() {
	trades := []types.Trade{
		tradeAt(types.SideBuy, 100, 10, 0, 0),
		tradeAt(types.SideSell, 110, 10, 0, 100),
		tradeAt(types.SideBuy, 105, 10, 0, 0),
		tradeAt(types.SideSell, 95, 10, 0, -100),
		tradeAt(types.SideBuy, 90, 10, 0, 0),
		tradeAt(types.SideSell, 130, 10, 0, 400),
	}

	summary := Summarize("run-3", "rsi-threshold", 10000,
		[]float64{10000, 10400}, []float64{10000, 10100}, trades)

	result := summary.TradeResult
	suite.Equal(6, result.NumberOfTrades)
	suite.Equal(2, result.NumberOfWinningTrades)
	suite.Equal(1, result.NumberOfLosingTrades)
	suite.InDelta(2.0/3.0, result.WinRate, 1e-9)
	suite.Equal(400.0, result.MaximumProfit)
	suite.Equal(-100.0, result.MaximumLoss)
}

func (suite *SummaryTestSuite) TestNoTrades() {
	summary := Summarize("run-4", "boll-reversion", 10000,
		[]float64{10000, 10000}, []float64{10000, 9800}, nil)

	result := summary.TradeResult
	suite.Equal(0, result.NumberOfTrades)
	suite.Equal(0.0, result.WinRate)
	suite.Equal(types.WinnerStrategy, summary.Winner)
}
