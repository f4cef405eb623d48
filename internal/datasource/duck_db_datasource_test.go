package datasource

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"

	"github.com/oscillab/crossbt/internal/logger"
	"github.com/oscillab/crossbt/internal/types"
)

type DuckDBDataSourceTestSuite struct {
	suite.Suite

	source DataSource
	csv    string
}

func TestDuckDBDataSourceSuite(t *testing.T) {
	suite.Run(t, new(DuckDBDataSourceTestSuite))
}

func (suite *DuckDBDataSourceTestSuite) SetupTest() {
	source, err := NewDuckDBDataSource(":memory:", logger.NewNopLogger())
	suite.Require().NoError(err)
	suite.source = source

	content := `time,open,high,low,close,volume
2024-01-01 00:00:00,100,101,99,100.5,1000
2024-01-01 01:00:00,100.5,102,100,101.5,1200
2024-01-01 02:00:00,101.5,103,101,102.5,900
2024-01-01 03:00:00,102.5,104,102,103.5,1100
`

	suite.csv = filepath.Join(suite.T().TempDir(), "bars.csv")
	suite.Require().NoError(os.WriteFile(suite.csv, []byte(content), 0644))
}

func (suite *DuckDBDataSourceTestSuite) TearDownTest() {
	suite.NoError(suite.source.Close())
}

func noRange() optional.Option[time.Time] {
	return optional.None[time.Time]()
}

func (suite *DuckDBDataSourceTestSuite) TestInitializeAndCount() {
	suite.NoError(suite.source.Initialize(suite.csv))

	count, err := suite.source.Count(noRange(), noRange())
	suite.NoError(err)
	suite.Equal(4, count)
}

func (suite *DuckDBDataSourceTestSuite) TestCountWithRange() {
	suite.NoError(suite.source.Initialize(suite.csv))

	start := time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC)

	count, err := suite.source.Count(optional.Some(start), optional.Some(end))
	suite.NoError(err)
	suite.Equal(2, count)
}

func (suite *DuckDBDataSourceTestSuite) TestReadAllOrdered() {
	suite.NoError(suite.source.Initialize(suite.csv))

	bars, err := LoadAll(suite.source, noRange(), noRange())
	suite.NoError(err)
	suite.Len(bars, 4)

	for i := 1; i < len(bars); i++ {
		suite.True(bars[i].Time.After(bars[i-1].Time))
	}

	suite.Equal(100.0, bars[0].Open)
	suite.Equal(103.5, bars[3].Close)
	suite.Equal(1000.0, bars[0].Volume)
}

func (suite *DuckDBDataSourceTestSuite) TestReadAllEarlyStop() {
	suite.NoError(suite.source.Initialize(suite.csv))

	read := 0

	suite.source.ReadAll(noRange(), noRange())(func(bar types.Bar, err error) bool {
		suite.NoError(err)

		read++

		return read < 2
	})

	suite.Equal(2, read)
}

func (suite *DuckDBDataSourceTestSuite) TestInitializeMissingFile() {
	err := suite.source.Initialize(filepath.Join(suite.T().TempDir(), "missing.csv"))
	suite.Error(err)
}
