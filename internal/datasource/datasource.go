// Package datasource loads OHLCV bars into the backtest engine, either from
// CSV files through DuckDB or from a seeded synthetic generator.
package datasource

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/oscillab/crossbt/internal/types"
)

type DataSource interface {
	// Initialize loads market data from the given CSV path.
	Initialize(path string) error
	// Count returns the number of bars within the optional time range.
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// ReadAll yields bars in ascending time order within the optional range.
	ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.Bar, error) bool)
	// Close releases the underlying resources.
	Close() error
}

// LoadAll drains a datasource iterator into a slice.
func LoadAll(source DataSource, start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.Bar, error) {
	var (
		bars    []types.Bar
		readErr error
	)

	source.ReadAll(start, end)(func(bar types.Bar, err error) bool {
		if err != nil {
			readErr = err
			return false
		}

		bars = append(bars, bar)

		return true
	})

	if readErr != nil {
		return nil, readErr
	}

	return bars, nil
}
