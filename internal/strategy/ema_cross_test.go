package strategy

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/oscillab/crossbt/pkg/errors"
)

type EMACrossTestSuite struct {
	suite.Suite
}

func TestEMACrossSuite(t *testing.T) {
	suite.Run(t, new(EMACrossTestSuite))
}

func (suite *EMACrossTestSuite) TestCrossSignals() {
	s := NewEMACross(2, 3)
	bars := barsFromCloses(10, 10, 10, 20, 20, 5)
	suite.NoError(s.Prepare(bars))

	// fast EMA(2) pulls above slow EMA(3) at bar 3
	entry := s.Entry(3)
	suite.True(entry.IsSome())
	suite.Equal(20.0, entry.Unwrap())

	// and collapses back below at bar 5
	exit := s.Exit(5)
	suite.True(exit.IsSome())
	suite.Equal(5.0, exit.Unwrap())
}

func (suite *EMACrossTestSuite) TestNoSignalDuringWarmup() {
	s := NewEMACross(2, 3)
	bars := barsFromCloses(10, 10, 10, 20, 20)
	suite.NoError(s.Prepare(bars))

	// slow EMA seeds at bar 2, so no comparison can fire before bar 3
	for t := 0; t < 3; t++ {
		suite.True(s.Entry(t).IsNone(), "bar %d", t)
		suite.True(s.Exit(t).IsNone(), "bar %d", t)
	}
}

func (suite *EMACrossTestSuite) TestRejectsFastNotShorterThanSlow() {
	s := NewEMACross(9, 9)

	err := s.Prepare(barsFromCloses(10, 10, 10, 10, 10, 10))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}

func (suite *EMACrossTestSuite) TestLines() {
	s := NewEMACross(2, 3)
	suite.NoError(s.Prepare(barsFromCloses(10, 10, 10, 20)))

	lines := s.Lines()
	suite.Len(lines, 2)
	suite.Equal(4, lines["EMA fast"].Len())
	suite.Equal(4, lines["EMA slow"].Len())
}
