// Package strategy implements the trading rule variants that run on the
// backtest engine. Each variant is a parameterized rule set over the same
// single-position state machine: the engine asks the strategy for an entry
// price while flat and an exit price while long, and the strategy answers
// from indicator series it computed once in Prepare.
package strategy

import (
	"github.com/moznion/go-optional"

	"github.com/oscillab/crossbt/internal/types"
)

// Strategy is one trading rule variant. Prepare is called once per run with
// the full bar sequence; Entry and Exit are then evaluated per bar. Both
// return the execution price when the rule triggers, or none: an undefined
// operand, a missed limit price, or simply no signal all look the same to
// the engine — no trade this bar.
type Strategy interface {
	// Name returns the registered name of the variant.
	Name() string
	// MinEngineVersion returns a semver constraint the engine version
	// must satisfy, e.g. ">= 1.0.0".
	MinEngineVersion() string
	// Prepare computes the indicator series for the given bars. It is a
	// pure pre-pass: after Prepare, Entry and Exit must not recompute
	// anything.
	Prepare(bars []types.Bar) error
	// Entry returns the execution price if the entry rule triggers at
	// bar t. Only consulted while the account is flat.
	Entry(t int) optional.Option[float64]
	// Exit returns the execution price if the exit rule triggers at
	// bar t. Only consulted while the account is long.
	Exit(t int) optional.Option[float64]
	// Lines returns the computed indicator series for reporting. Every
	// series must be aligned 1:1 with the bars passed to Prepare.
	Lines() map[string]types.Series
}
