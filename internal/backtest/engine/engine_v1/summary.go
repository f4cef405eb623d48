package engine

import (
	"math"
	"time"

	"github.com/oscillab/crossbt/internal/types"
)

// Summarize builds the performance scoreboard from a finished run. Pure
// function over the equity curves and the trade log.
func Summarize(runID, strategyName string, initialCapital float64, equity, benchmark []float64, trades []types.Trade) types.Summary {
	finalEquity := initialCapital
	if len(equity) > 0 {
		finalEquity = equity[len(equity)-1]
	}

	benchmarkFinal := initialCapital
	if len(benchmark) > 0 {
		benchmarkFinal = benchmark[len(benchmark)-1]
	}

	strategyProfit := finalEquity - initialCapital
	benchmarkProfit := benchmarkFinal - initialCapital

	winner := types.WinnerBuyAndHold
	if strategyProfit > benchmarkProfit {
		winner = types.WinnerStrategy
	}

	return types.Summary{
		ID:                   runID,
		Timestamp:            time.Now(),
		StrategyName:         strategyName,
		InitialCapital:       initialCapital,
		FinalEquity:          finalEquity,
		StrategyProfit:       strategyProfit,
		BenchmarkFinalEquity: benchmarkFinal,
		BenchmarkProfit:      benchmarkProfit,
		Winner:               winner,
		Margin:               math.Abs(strategyProfit - benchmarkProfit),
		TradeResult:          tradeResult(trades),
		TotalCommission:      totalCommission(trades),
	}
}

// tradeResult aggregates the trade log. Every log entry counts toward the
// trade count; win/loss statistics only consider closing trades, since a
// buy realizes nothing.
func tradeResult(trades []types.Trade) types.TradeResult {
	result := types.TradeResult{
		NumberOfTrades: len(trades),
	}

	closing := 0

	for _, trade := range trades {
		if trade.Side != types.SideSell {
			continue
		}

		closing++

		if trade.PnL > 0 {
			result.NumberOfWinningTrades++
		} else if trade.PnL < 0 {
			result.NumberOfLosingTrades++
		}

		if trade.PnL > result.MaximumProfit {
			result.MaximumProfit = trade.PnL
		}

		if trade.PnL < result.MaximumLoss {
			result.MaximumLoss = trade.PnL
		}
	}

	if closing > 0 {
		result.WinRate = float64(result.NumberOfWinningTrades) / float64(closing)
	}

	return result
}

func totalCommission(trades []types.Trade) float64 {
	total := 0.0
	for _, trade := range trades {
		total += trade.Commission
	}

	return total
}
