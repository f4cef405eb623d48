// Package writer persists backtest results to disk, one timestamped
// directory per run.
package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/oscillab/crossbt/internal/types"
	"github.com/oscillab/crossbt/pkg/errors"
)

// ResultWriter defines the interface for writing backtest results.
type ResultWriter interface {
	// WriteTrade appends a trade to the trade log output.
	WriteTrade(trade types.Trade) error

	// WriteEquityCurves writes the strategy and benchmark equity curves,
	// one row per bar.
	WriteEquityCurves(equity, benchmark []float64, timestamps []time.Time) error

	// WriteMarks writes the chart annotations for executed trades.
	WriteMarks(marks []types.Mark) error

	// WriteSummary writes the performance summary.
	WriteSummary(summary types.Summary) error

	// RunDir returns the directory results are written into.
	RunDir() string

	// Close finalizes the writing process.
	Close() error
}

// CSVWriter implements ResultWriter by writing CSV files plus a YAML
// summary into a per-run directory.
type CSVWriter struct {
	baseDir string
	runDir  string

	tradesFile *os.File
	equityFile *os.File
	marksFile  *os.File

	tradesCsv *csv.Writer
	equityCsv *csv.Writer
	marksCsv  *csv.Writer
}

// NewCSVWriter creates a CSVWriter rooted at baseDir. Each writer gets its
// own run directory named after the current timestamp.
func NewCSVWriter(baseDir string) (ResultWriter, error) {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	runDir := filepath.Join(baseDir, timestamp)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to create run directory", err)
	}

	writer := &CSVWriter{
		baseDir: baseDir,
		runDir:  runDir,
	}

	if err := writer.initFiles(); err != nil {
		return nil, err
	}

	return writer, nil
}

func (w *CSVWriter) initFiles() error {
	tradesFile, err := os.Create(filepath.Join(w.runDir, "trades.csv"))
	if err != nil {
		return errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to create trades file", err)
	}

	w.tradesFile = tradesFile
	w.tradesCsv = csv.NewWriter(tradesFile)

	if err := w.tradesCsv.Write([]string{
		"order_id", "bar_index", "time", "side", "price",
		"shares", "commission", "reason", "pnl",
	}); err != nil {
		return errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to write trades header", err)
	}

	equityFile, err := os.Create(filepath.Join(w.runDir, "equity.csv"))
	if err != nil {
		return errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to create equity file", err)
	}

	w.equityFile = equityFile
	w.equityCsv = csv.NewWriter(equityFile)

	if err := w.equityCsv.Write([]string{"time", "equity", "benchmark"}); err != nil {
		return errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to write equity header", err)
	}

	marksFile, err := os.Create(filepath.Join(w.runDir, "marks.csv"))
	if err != nil {
		return errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to create marks file", err)
	}

	w.marksFile = marksFile
	w.marksCsv = csv.NewWriter(marksFile)

	if err := w.marksCsv.Write([]string{"bar_index", "time", "price", "color", "shape", "title"}); err != nil {
		return errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to write marks header", err)
	}

	return nil
}

// WriteTrade implements ResultWriter.
func (w *CSVWriter) WriteTrade(trade types.Trade) error {
	record := []string{
		trade.OrderID,
		strconv.Itoa(trade.BarIndex),
		trade.Time.Format(time.RFC3339),
		string(trade.Side),
		fmt.Sprintf("%f", trade.Price),
		strconv.FormatInt(trade.Shares, 10),
		fmt.Sprintf("%f", trade.Commission),
		trade.Reason,
		fmt.Sprintf("%f", trade.PnL),
	}

	if err := w.tradesCsv.Write(record); err != nil {
		return errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to write trade", err)
	}

	w.tradesCsv.Flush()

	return w.tradesCsv.Error()
}

// WriteEquityCurves implements ResultWriter. The three slices must cover
// the same bars.
func (w *CSVWriter) WriteEquityCurves(equity, benchmark []float64, timestamps []time.Time) error {
	if len(equity) != len(benchmark) || len(equity) != len(timestamps) {
		return errors.Newf(errors.ErrCodeSeriesLengthMismatch,
			"equity curve lengths disagree: equity %d, benchmark %d, timestamps %d",
			len(equity), len(benchmark), len(timestamps))
	}

	for i := range equity {
		record := []string{
			timestamps[i].Format(time.RFC3339),
			fmt.Sprintf("%f", equity[i]),
			fmt.Sprintf("%f", benchmark[i]),
		}

		if err := w.equityCsv.Write(record); err != nil {
			return errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to write equity point", err)
		}
	}

	w.equityCsv.Flush()

	return w.equityCsv.Error()
}

// WriteMarks implements ResultWriter.
func (w *CSVWriter) WriteMarks(marks []types.Mark) error {
	for _, mark := range marks {
		record := []string{
			strconv.Itoa(mark.BarIndex),
			mark.Time.Format(time.RFC3339),
			fmt.Sprintf("%f", mark.Price),
			string(mark.Color),
			string(mark.Shape),
			mark.Title,
		}

		if err := w.marksCsv.Write(record); err != nil {
			return errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to write mark", err)
		}
	}

	w.marksCsv.Flush()

	return w.marksCsv.Error()
}

// WriteSummary implements ResultWriter.
func (w *CSVWriter) WriteSummary(summary types.Summary) error {
	if err := types.WriteSummary(filepath.Join(w.runDir, "summary.yaml"), summary); err != nil {
		return errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to write summary", err)
	}

	return nil
}

// RunDir implements ResultWriter.
func (w *CSVWriter) RunDir() string {
	return w.runDir
}

// Close implements ResultWriter.
func (w *CSVWriter) Close() error {
	for _, c := range []*csv.Writer{w.tradesCsv, w.equityCsv, w.marksCsv} {
		if c != nil {
			c.Flush()
		}
	}

	for _, f := range []*os.File{w.tradesFile, w.equityFile, w.marksFile} {
		if f != nil {
			f.Close()
		}
	}

	return nil
}
