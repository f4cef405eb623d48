package writer

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"

	"github.com/oscillab/crossbt/internal/types"
)

type CSVWriterTestSuite struct {
	suite.Suite

	writer ResultWriter
}

func TestCSVWriterSuite(t *testing.T) {
	suite.Run(t, new(CSVWriterTestSuite))
}

func (suite *CSVWriterTestSuite) SetupTest() {
	writer, err := NewCSVWriter(suite.T().TempDir())
	suite.Require().NoError(err)
	suite.writer = writer
}

func (suite *CSVWriterTestSuite) TearDownTest() {
	suite.NoError(suite.writer.Close())
}

func (suite *CSVWriterTestSuite) readCSV(name string) [][]string {
	f, err := os.Open(filepath.Join(suite.writer.RunDir(), name))
	suite.Require().NoError(err)

	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	suite.Require().NoError(err)

	return records
}

func (suite *CSVWriterTestSuite) TestWriteTrade() {
	trade := types.Trade{
		OrderID:    "order-1",
		BarIndex:   4,
		Time:       time.Date(2024, 1, 1, 4, 0, 0, 0, time.UTC),
		Side:       types.SideBuy,
		Price:      100,
		Shares:     100,
		Commission: 1,
		Reason:     types.TradeReasonSignal,
	}

	suite.NoError(suite.writer.WriteTrade(trade))

	records := suite.readCSV("trades.csv")
	suite.Len(records, 2)
	suite.Equal("order_id", records[0][0])
	suite.Equal("order-1", records[1][0])
	suite.Equal("4", records[1][1])
	suite.Equal("BUY", records[1][3])
	suite.Equal("100", records[1][5])
}

func (suite *CSVWriterTestSuite) TestWriteEquityCurves() {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	timestamps := []time.Time{start, start.Add(time.Hour)}

	suite.NoError(suite.writer.WriteEquityCurves(
		[]float64{10000, 10100}, []float64{10000, 10050}, timestamps))

	records := suite.readCSV("equity.csv")
	suite.Len(records, 3)
	suite.Equal([]string{"time", "equity", "benchmark"}, records[0])
}

func (suite *CSVWriterTestSuite) TestWriteEquityCurvesLengthMismatch() {
	err := suite.writer.WriteEquityCurves(
		[]float64{1, 2}, []float64{1}, []time.Time{time.Now(), time.Now()})
	suite.Error(err)
}

func (suite *CSVWriterTestSuite) TestWriteMarks() {
	mark := types.NewBuyMark(2, time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC), 101.5)
	suite.NoError(suite.writer.WriteMarks([]types.Mark{mark}))

	records := suite.readCSV("marks.csv")
	suite.Len(records, 2)
	suite.Equal("green", records[1][3])
	suite.Equal("triangle", records[1][4])
	suite.Equal("BUY", records[1][5])
}

func (suite *CSVWriterTestSuite) TestWriteSummary() {
	summary := types.Summary{
		ID:             "run-1",
		StrategyName:   "sma-cross",
		InitialCapital: 10000,
		FinalEquity:    11000,
		Winner:         types.WinnerStrategy,
	}

	suite.NoError(suite.writer.WriteSummary(summary))

	data, err := os.ReadFile(filepath.Join(suite.writer.RunDir(), "summary.yaml"))
	suite.NoError(err)

	var loaded types.Summary
	suite.NoError(yaml.Unmarshal(data, &loaded))
	suite.Equal("sma-cross", loaded.StrategyName)
	suite.Equal(types.WinnerStrategy, loaded.Winner)
}
