package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/oscillab/crossbt/pkg/errors"
)

type BollingerBandsTestSuite struct {
	suite.Suite
}

func TestBollingerBandsSuite(t *testing.T) {
	suite.Run(t, new(BollingerBandsTestSuite))
}

func (suite *BollingerBandsTestSuite) TestConstantPriceBandsCollapse() {
	upper, middle, lower, err := NewBollingerBands(4, 2.0).Compute(barsFromCloses(10, 10, 10, 10, 10, 10))
	suite.NoError(err)

	u, ok := upper.Value(4)
	suite.True(ok)

	m, _ := middle.Value(4)
	l, _ := lower.Value(4)

	suite.InDelta(10.0, u, 1e-9)
	suite.InDelta(10.0, m, 1e-9)
	suite.InDelta(10.0, l, 1e-9)
}

func (suite *BollingerBandsTestSuite) TestBandsSymmetricAroundMiddle() {
	upper, middle, lower, err := NewBollingerBands(3, 2.0).Compute(barsFromCloses(9, 11, 10, 12, 8, 13))
	suite.NoError(err)

	for i := 2; i < 6; i++ {
		u, _ := upper.Value(i)
		m, _ := middle.Value(i)
		l, _ := lower.Value(i)

		suite.InDelta(m-l, u-m, 1e-9)
		suite.GreaterOrEqual(u, m)
		suite.LessOrEqual(l, m)
	}
}

func (suite *BollingerBandsTestSuite) TestWarmupUndefined() {
	upper, _, lower, err := NewBollingerBands(5, 2.0).Compute(barsFromCloses(1, 2, 3, 4, 5, 6))
	suite.NoError(err)

	suite.False(upper.Defined(3))
	suite.True(upper.Defined(4))
	suite.False(lower.Defined(3))
	suite.True(lower.Defined(4))
}

func (suite *BollingerBandsTestSuite) TestInvalidStdDev() {
	_, _, _, err := NewBollingerBands(5, 0).Compute(barsFromCloses(1, 2, 3))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidStdDev))
}
