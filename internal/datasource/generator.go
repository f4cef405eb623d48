package datasource

import (
	"math"
	"math/rand"
	"time"

	"github.com/oscillab/crossbt/internal/types"
	"github.com/oscillab/crossbt/pkg/errors"
)

// Pattern selects the shape of a synthetic price series.
type Pattern string

const (
	// PatternIncreasing simulates a continuously increasing price trend.
	PatternIncreasing Pattern = "increasing"
	// PatternDecreasing simulates a continuously decreasing price trend.
	PatternDecreasing Pattern = "decreasing"
	// PatternVolatile simulates a choppy price with a drawdown constraint.
	PatternVolatile Pattern = "volatile"
)

// AllPatterns lists the supported synthetic patterns.
var AllPatterns = []Pattern{PatternIncreasing, PatternDecreasing, PatternVolatile}

const (
	// minimumPrice is the price floor that keeps the walk strictly positive.
	minimumPrice = 0.01
	baseVolume   = 1000000.0

	increasingNoiseBias = 0.3
	decreasingNoiseBias = 0.7
	volatileUpwardBias  = 0.45
)

// GeneratorConfig holds the configuration for synthetic bar generation.
type GeneratorConfig struct {
	// StartTime is the timestamp of the first bar.
	StartTime time.Time
	// Interval is the spacing between consecutive bars.
	Interval time.Duration
	// NumBars is the number of bars to generate.
	NumBars int
	// Pattern selects the price shape.
	Pattern Pattern
	// InitialPrice is the starting price for the walk. Defaults to 100.
	InitialPrice float64
	// MaxDrawdownPercent caps how far the volatile pattern can fall from its
	// peak. Defaults to 10.
	MaxDrawdownPercent float64
	// VolatilityPercent is the per-bar volatility. Defaults to 2.
	VolatilityPercent float64
	// TrendStrength is the per-bar drift for trending patterns. Defaults to 0.01.
	TrendStrength float64
	// Seed makes the walk reproducible. If 0, the current time is used.
	Seed int64
}

// Generator produces deterministic synthetic OHLCV bars.
type Generator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewGenerator creates a Generator, filling in defaults for unset knobs.
func NewGenerator(config GeneratorConfig) *Generator {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if config.InitialPrice <= 0 {
		config.InitialPrice = 100.0
	}

	if config.TrendStrength <= 0 {
		config.TrendStrength = 0.01
	}

	if config.VolatilityPercent <= 0 {
		config.VolatilityPercent = 2.0
	}

	if config.MaxDrawdownPercent <= 0 {
		config.MaxDrawdownPercent = 10.0
	}

	return &Generator{
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Generate produces the configured number of bars.
func (g *Generator) Generate() ([]types.Bar, error) {
	if g.config.StartTime.IsZero() {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "start time is required")
	}

	if g.config.Interval <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "interval must be positive")
	}

	if g.config.NumBars <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "number of bars must be positive")
	}

	bars := make([]types.Bar, g.config.NumBars)
	currentPrice := g.config.InitialPrice
	peakPrice := currentPrice
	currentTime := g.config.StartTime

	for i := 0; i < g.config.NumBars; i++ {
		var priceChange float64

		switch g.config.Pattern {
		case PatternIncreasing:
			priceChange = g.increasingChange(currentPrice)
		case PatternDecreasing:
			priceChange = g.decreasingChange(currentPrice)
		case PatternVolatile:
			priceChange = g.volatileChange(currentPrice, peakPrice)
		default:
			return nil, errors.Newf(errors.ErrCodeInvalidParameter, "unknown pattern %q", g.config.Pattern)
		}

		newPrice := currentPrice + priceChange
		if newPrice <= 0 {
			newPrice = minimumPrice
		}

		open := currentPrice
		closePrice := newPrice

		lowest := math.Min(open, closePrice)
		highest := math.Max(open, closePrice)
		wiggle := highest * (g.config.VolatilityPercent / 100.0) * 0.5

		high := highest + g.rng.Float64()*wiggle

		low := lowest - g.rng.Float64()*wiggle
		if low <= 0 {
			low = minimumPrice
		}

		if low > lowest {
			low = lowest
		}

		bars[i] = types.Bar{
			Time:   currentTime,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: baseVolume * (0.5 + g.rng.Float64()),
		}

		currentPrice = newPrice
		currentTime = currentTime.Add(g.config.Interval)

		if currentPrice > peakPrice {
			peakPrice = currentPrice
		}
	}

	return bars, nil
}

func (g *Generator) increasingChange(currentPrice float64) float64 {
	trend := currentPrice * g.config.TrendStrength
	noise := currentPrice * (g.config.VolatilityPercent / 100.0) * (g.rng.Float64() - increasingNoiseBias)

	return trend + noise
}

func (g *Generator) decreasingChange(currentPrice float64) float64 {
	trend := -currentPrice * g.config.TrendStrength
	noise := currentPrice * (g.config.VolatilityPercent / 100.0) * (g.rng.Float64() - decreasingNoiseBias)

	return trend + noise
}

func (g *Generator) volatileChange(currentPrice, peakPrice float64) float64 {
	direction := g.rng.Float64() - volatileUpwardBias
	change := currentPrice * (g.config.VolatilityPercent / 100.0) * direction

	newPrice := currentPrice + change
	drawdownFloor := peakPrice * (1 - g.config.MaxDrawdownPercent/100.0)

	if newPrice < drawdownFloor {
		newPrice = drawdownFloor + g.rng.Float64()*(g.config.VolatilityPercent/100.0)*currentPrice
		change = newPrice - currentPrice
	}

	return change
}
