package engine

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type BenchmarkTestSuite struct {
	suite.Suite
}

func TestBenchmarkSuite(t *testing.T) {
	suite.Run(t, new(BenchmarkTestSuite))
}

func (suite *BenchmarkTestSuite) TestBuyAndHoldFromFirstBar() {
	bars := testBars(100, 110, 90, 120)

	curve := BuyAndHold(bars, 10000)
	suite.Len(curve, 4)

	// 100 shares at 100, no residual cash
	suite.InDelta(10000.0, curve[0], 1e-9)
	suite.InDelta(11000.0, curve[1], 1e-9)
	suite.InDelta(9000.0, curve[2], 1e-9)
	suite.InDelta(12000.0, curve[3], 1e-9)
}

func (suite *BenchmarkTestSuite) TestResidualCashCarries() {
	bars := testBars(300, 330)

	curve := BuyAndHold(bars, 1000)

	// 3 shares at 300, 100 residual
	suite.InDelta(1000.0, curve[0], 1e-9)
	suite.InDelta(1090.0, curve[1], 1e-9)
}

func (suite *BenchmarkTestSuite) TestUnaffordableFirstBarStaysInCash() {
	bars := testBars(5000, 6000, 4000)

	curve := BuyAndHold(bars, 1000)
	for _, equity := range curve {
		suite.Equal(1000.0, equity)
	}
}
