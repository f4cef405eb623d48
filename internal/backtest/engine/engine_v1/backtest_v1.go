package engine

import (
	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	backtest "github.com/oscillab/crossbt/internal/backtest/engine"
	"github.com/oscillab/crossbt/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/oscillab/crossbt/internal/logger"
	"github.com/oscillab/crossbt/internal/strategy"
	"github.com/oscillab/crossbt/internal/types"
	"github.com/oscillab/crossbt/pkg/errors"
)

// BacktestEngineV1 replays bars through a single strategy. The run is a
// deterministic single-threaded fold: one Account, one pass, no hidden
// randomness, so re-running the same inputs yields an identical Result.
type BacktestEngineV1 struct {
	config   BacktestConfig
	log      *logger.Logger
	strategy strategy.Strategy
	bars     []types.Bar
}

// NewBacktestEngineV1 creates an engine with an empty configuration.
func NewBacktestEngineV1() backtest.Engine {
	return &BacktestEngineV1{
		config:   EmptyConfig(),
		log:      nil,
		strategy: nil,
		bars:     nil,
	}
}

// Initialize implements engine.Engine. Unset fields keep their defaults,
// so an empty config string runs with DefaultConfig.
func (b *BacktestEngineV1) Initialize(config string) error {
	parsed, err := ParseConfig(config)
	if err != nil {
		return err
	}

	b.config = parsed

	var loggerError error

	b.log, loggerError = logger.NewLogger()
	if loggerError != nil {
		return loggerError
	}

	if err := b.config.Validate(); err != nil {
		return err
	}

	b.log.Debug("Backtest engine initialized",
		zap.Float64("initial_capital", b.config.InitialCapital),
		zap.String("broker", string(b.config.Commission.Broker)),
	)

	return nil
}

// SetStrategy implements engine.Engine.
func (b *BacktestEngineV1) SetStrategy(s strategy.Strategy) error {
	b.strategy = s

	return nil
}

// SetBars implements engine.Engine. Bars outside the configured start/end
// period are dropped, so call Initialize before SetBars.
func (b *BacktestEngineV1) SetBars(bars []types.Bar) error {
	b.bars = b.config.FilterBars(bars)

	return nil
}

// Run implements engine.Engine. Input-shape errors surface before any
// simulation step; within the loop every non-firing condition is a silent
// no-op and never an error.
func (b *BacktestEngineV1) Run(onBar optional.Option[backtest.OnBarCallback]) (*backtest.Result, error) {
	if err := b.preRunCheck(); err != nil {
		return nil, err
	}

	if err := b.strategy.Prepare(b.bars); err != nil {
		return nil, err
	}

	// Every indicator line must be aligned 1:1 with the bars.
	for name, line := range b.strategy.Lines() {
		if line.Len() != len(b.bars) {
			return nil, errors.Newf(errors.ErrCodeSeriesLengthMismatch,
				"series %q has length %d, expected %d", name, line.Len(), len(b.bars))
		}
	}

	runID := uuid.New().String()
	account := NewAccount(b.config.InitialCapital)
	fee := commission_fee.GetCommissionFeeHandler(b.config.Commission.Broker, b.config.Commission.FixedAmount)

	total := len(b.bars)
	equity := make([]float64, total)

	var trades []types.Trade

	var buyMarks, sellMarks []types.Mark

	for t, bar := range b.bars {
		// Rules need a previous-bar comparison, so bar 0 only marks to market.
		if t >= 1 {
			// State-gated dispatch: the position state decides which rule
			// is even evaluated, so a buy and a sell can never share a bar.
			switch account.State() {
			case types.PositionStateFlat:
				if price, err := b.strategy.Entry(t).Take(); err == nil {
					shares, charged := account.Buy(price, fee, b.config.Commission.ChargeOnEntry)
					if shares > 0 {
						trades = append(trades, types.Trade{
							OrderID:    uuid.New().String(),
							BarIndex:   t,
							Time:       bar.Time,
							Side:       types.SideBuy,
							Price:      price,
							Shares:     shares,
							Commission: charged,
							Reason:     types.TradeReasonSignal,
						})
						buyMarks = append(buyMarks, types.NewBuyMark(t, bar.Time, price))

						b.log.Debug("Opened position",
							zap.Int("bar", t),
							zap.Float64("price", price),
							zap.Int64("shares", shares),
						)
					}
				}
			case types.PositionStateLong:
				if price, err := b.strategy.Exit(t).Take(); err == nil {
					shares, charged, pnl := account.Sell(price, fee, b.config.Commission.ChargeOnExit)
					if shares > 0 {
						trades = append(trades, types.Trade{
							OrderID:    uuid.New().String(),
							BarIndex:   t,
							Time:       bar.Time,
							Side:       types.SideSell,
							Price:      price,
							Shares:     shares,
							Commission: charged,
							Reason:     types.TradeReasonSignal,
							PnL:        pnl,
						})
						sellMarks = append(sellMarks, types.NewSellMark(t, bar.Time, price))

						b.log.Debug("Closed position",
							zap.Int("bar", t),
							zap.Float64("price", price),
							zap.Float64("pnl", pnl),
						)
					}
				}
			}
		}

		equity[t] = account.Equity(bar.Close)

		if onBar.IsSome() {
			onBar.Unwrap()(t+1, total)
		}
	}

	// Forced liquidation: whatever is still open sells at the last close.
	if account.State() == types.PositionStateLong {
		last := total - 1
		price := b.bars[last].Close

		shares, charged, pnl := account.Sell(price, fee, b.config.Commission.ChargeOnLiquidation)
		if shares > 0 {
			trades = append(trades, types.Trade{
				OrderID:    uuid.New().String(),
				BarIndex:   last,
				Time:       b.bars[last].Time,
				Side:       types.SideSell,
				Price:      price,
				Shares:     shares,
				Commission: charged,
				Reason:     types.TradeReasonFinalLiquidation,
				PnL:        pnl,
			})

			equity[last] = account.Equity(price)

			b.log.Debug("Forced liquidation",
				zap.Int64("shares", shares),
				zap.Float64("price", price),
			)
		}
	}

	benchmark := BuyAndHold(b.bars, b.config.InitialCapital)
	summary := Summarize(runID, b.strategy.Name(), b.config.InitialCapital, equity, benchmark, trades)

	return &backtest.Result{
		RunID:          runID,
		StrategyName:   b.strategy.Name(),
		EquityCurve:    equity,
		BenchmarkCurve: benchmark,
		BuyMarks:       buyMarks,
		SellMarks:      sellMarks,
		Trades:         trades,
		FinalCash:      account.Cash(),
		Summary:        summary,
	}, nil
}

func (b *BacktestEngineV1) preRunCheck() error {
	if b.log == nil {
		b.log = logger.NewNopLogger()
	}

	if b.strategy == nil {
		return errors.New(errors.ErrCodeBacktestNoStrategy, "no strategy set")
	}

	if err := b.config.Validate(); err != nil {
		return err
	}

	if err := types.ValidateBars(b.bars); err != nil {
		return err
	}

	return nil
}
