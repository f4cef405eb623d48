package engine

import (
	"github.com/shopspring/decimal"

	"github.com/oscillab/crossbt/internal/types"
)

// BuyAndHold computes the passive baseline: buy floor(initialCapital /
// firstClose) whole shares at the first bar and hold unconditionally
// through the last. The benchmark never touches the strategy's account;
// it only shares the bars and the starting capital.
func BuyAndHold(bars []types.Bar, initialCapital float64) []float64 {
	curve := make([]float64, len(bars))
	if len(bars) == 0 {
		return curve
	}

	capital := decimal.NewFromFloat(initialCapital)
	firstPrice := decimal.NewFromFloat(bars[0].Close)

	shares := int64(0)
	if firstPrice.IsPositive() {
		shares = capital.Div(firstPrice).IntPart()
	}

	sharesDec := decimal.NewFromInt(shares)
	residualCash := capital.Sub(sharesDec.Mul(firstPrice))

	for i, bar := range bars {
		equity, _ := residualCash.
			Add(sharesDec.Mul(decimal.NewFromFloat(bar.Close))).
			Float64()
		curve[i] = equity
	}

	return curve
}
