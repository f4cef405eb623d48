package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type StochRSITestSuite struct {
	suite.Suite
}

func TestStochRSISuite(t *testing.T) {
	suite.Run(t, new(StochRSITestSuite))
}

func (suite *StochRSITestSuite) TestFlatRangeMapsToZero() {
	// Constant prices: RSI saturates at a constant, so every rolling
	// min/max window is flat. The zero-range rescale must map to 0.
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100
	}

	k, d, err := NewStochRSI(5, 5, 3, 3).Compute(barsFromCloses(closes...))
	suite.NoError(err)

	foundDefined := false

	for i := range 30 {
		if v, ok := k.Value(i); ok {
			foundDefined = true

			suite.InDelta(0.0, v, 1e-9)
		}
	}

	suite.True(foundDefined, "expected %%K to become defined after warm-up")

	last, ok := d.Value(29)
	suite.True(ok)
	suite.InDelta(0.0, last, 1e-9)
}

func (suite *StochRSITestSuite) TestBounded() {
	closes := []float64{
		10, 12, 9, 14, 8, 15, 11, 13, 7, 16,
		12, 18, 9, 17, 10, 19, 14, 11, 20, 13,
		15, 12, 21, 16, 18, 14, 22, 17, 19, 15,
	}

	k, d, err := NewStochRSI(5, 5, 3, 3).Compute(barsFromCloses(closes...))
	suite.NoError(err)

	for i := range len(closes) {
		if v, ok := k.Value(i); ok {
			suite.GreaterOrEqual(v, 0.0)
			suite.LessOrEqual(v, 100.0)
		}

		if v, ok := d.Value(i); ok {
			suite.GreaterOrEqual(v, 0.0)
			suite.LessOrEqual(v, 100.0)
		}
	}
}

func (suite *StochRSITestSuite) TestWarmupStacksAcrossStages() {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i%7)
	}

	k, d, err := NewStochRSI(14, 14, 3, 3).Compute(barsFromCloses(closes...))
	suite.NoError(err)

	// raw stoch defined from 14+14-1 = 27, %K from 29, %D from 31
	suite.False(k.Defined(28))
	suite.True(k.Defined(29))
	suite.False(d.Defined(30))
	suite.True(d.Defined(31))
}

func (suite *StochRSITestSuite) TestLengthsMatchBars() {
	k, d, err := NewStochRSI(5, 5, 3, 3).Compute(barsFromCloses(1, 2, 3))
	suite.NoError(err)
	suite.Equal(3, k.Len())
	suite.Equal(3, d.Len())
}
