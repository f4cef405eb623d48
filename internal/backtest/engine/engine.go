package engine

import (
	"github.com/moznion/go-optional"

	"github.com/oscillab/crossbt/internal/strategy"
	"github.com/oscillab/crossbt/internal/types"
)

// OnBarCallback reports progress after each processed bar.
type OnBarCallback func(current, total int)

// Engine replays a bar sequence through a strategy and produces a Result.
type Engine interface {
	// Initialize parses and validates a YAML engine configuration.
	Initialize(config string) error
	// SetStrategy sets the strategy variant to run.
	SetStrategy(s strategy.Strategy) error
	// SetBars sets the bar sequence to replay.
	SetBars(bars []types.Bar) error
	// Run executes the backtest. The optional callback is invoked once
	// per bar for progress reporting.
	Run(onBar optional.Option[OnBarCallback]) (*Result, error)
}

// Result is the complete output of one backtest run. The reporting layer
// formats it into text and files and must not mutate it.
type Result struct {
	// RunID uniquely identifies this run.
	RunID string
	// StrategyName is the registered name of the strategy variant.
	StrategyName string
	// EquityCurve is the mark-to-market equity at every bar, including
	// warm-up bars where equity is simply flat capital.
	EquityCurve []float64
	// BenchmarkCurve is the buy-and-hold equity at every bar.
	BenchmarkCurve []float64
	// BuyMarks and SellMarks annotate the signal bars.
	BuyMarks  []types.Mark
	SellMarks []types.Mark
	// Trades is the append-only trade log.
	Trades []types.Trade
	// FinalCash is the cash balance after forced liquidation.
	FinalCash float64
	// Summary is the performance scoreboard versus buy-and-hold.
	Summary types.Summary
}
