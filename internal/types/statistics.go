package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// BenchmarkSide identifies which side of the comparison won.
type BenchmarkSide string

const (
	WinnerStrategy   BenchmarkSide = "strategy"
	WinnerBuyAndHold BenchmarkSide = "buy_and_hold"
)

type TradeResult struct {
	// Count of all trades. A round trip counts twice: the buy and the
	// sell are separate log entries.
	NumberOfTrades int `yaml:"number_of_trades"`
	// Count of closing trades that realized a positive pnl.
	NumberOfWinningTrades int `yaml:"number_of_winning_trades"`
	// Count of closing trades that realized a negative pnl.
	NumberOfLosingTrades int `yaml:"number_of_losing_trades"`
	// Win rate over closing trades.
	WinRate float64 `yaml:"win_rate"`
	// Maximum realized profit of a single closing trade.
	MaximumProfit float64 `yaml:"maximum_profit"`
	// Maximum realized loss of a single closing trade.
	MaximumLoss float64 `yaml:"maximum_loss"`
}

// Summary is the performance scoreboard of a finished run: the strategy
// against the unconditional buy-and-hold baseline over the same bars.
type Summary struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this backtest run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// StrategyName is the registered name of the strategy variant.
	StrategyName string `yaml:"strategy_name" json:"strategy_name"`
	// InitialCapital is the starting cash of both the strategy and the benchmark.
	InitialCapital float64 `yaml:"initial_capital"`
	// FinalEquity is the strategy's equity after forced liquidation.
	FinalEquity float64 `yaml:"final_equity"`
	// StrategyProfit is FinalEquity minus InitialCapital.
	StrategyProfit float64 `yaml:"strategy_profit"`
	// BenchmarkFinalEquity is the buy-and-hold equity at the last bar.
	BenchmarkFinalEquity float64 `yaml:"benchmark_final_equity"`
	// BenchmarkProfit is BenchmarkFinalEquity minus InitialCapital.
	BenchmarkProfit float64 `yaml:"benchmark_profit"`
	// Winner is the side with the larger profit.
	Winner BenchmarkSide `yaml:"winner"`
	// Margin is the absolute difference between the two profits.
	Margin float64 `yaml:"margin"`
	// TradeResult aggregates the trade log.
	TradeResult TradeResult `yaml:"trade_result"`
	// TotalCommission is the sum of all commissions charged.
	TotalCommission float64 `yaml:"total_commission"`
}

// WriteSummary writes a run summary to a YAML file.
func WriteSummary(path string, summary Summary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary to file: %w", err)
	}

	return nil
}
