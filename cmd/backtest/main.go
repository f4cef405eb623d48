package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	backtest "github.com/oscillab/crossbt/internal/backtest/engine"
	enginev1 "github.com/oscillab/crossbt/internal/backtest/engine/engine_v1"
	"github.com/oscillab/crossbt/internal/datasource"
	"github.com/oscillab/crossbt/internal/logger"
	"github.com/oscillab/crossbt/internal/report"
	"github.com/oscillab/crossbt/internal/strategy"
	"github.com/oscillab/crossbt/internal/types"
	"github.com/oscillab/crossbt/internal/writer"
)

// runAction executes a single backtest: load bars, run the selected
// strategy, persist the results, and print the scoreboard.
func runAction(ctx context.Context, cmd *cli.Command) error {
	config, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	// Parsed up front so the configured period reaches the data source.
	parsed, err := enginev1.ParseConfig(config)
	if err != nil {
		return err
	}

	bars, err := loadBars(cmd, parsed.StartTime, parsed.EndTime)
	if err != nil {
		return err
	}

	// Generated bars carry their own timeline, so trim them here as well;
	// the result timestamps must line up with the equity curve.
	bars = parsed.FilterBars(bars)

	registry, err := strategy.DefaultRegistry(enginev1.Version)
	if err != nil {
		return err
	}

	selected, err := registry.Get(cmd.String("strategy"))
	if err != nil {
		return err
	}

	engine := enginev1.NewBacktestEngineV1()

	if err := engine.Initialize(config); err != nil {
		return err
	}

	if err := engine.SetStrategy(selected); err != nil {
		return err
	}

	if err := engine.SetBars(bars); err != nil {
		return err
	}

	var bar *progressbar.ProgressBar

	onBar := backtest.OnBarCallback(func(current, total int) {
		if bar == nil {
			bar = progressbar.Default(int64(total))
		}

		_ = bar.Set(current)
	})

	result, err := engine.Run(optional.Some(onBar))
	if err != nil {
		return err
	}

	if err := writeResult(cmd.String("output"), bars, result); err != nil {
		return err
	}

	fmt.Println(report.Render(result.Summary))

	return nil
}

// loadBars picks the data source: a CSV file when --data is given, the
// synthetic generator otherwise. The start/end bounds come from the engine
// config and restrict what the CSV source reads; generated bars are trimmed
// by the caller.
func loadBars(cmd *cli.Command, start, end optional.Option[time.Time]) ([]types.Bar, error) {
	if path := cmd.String("data"); path != "" {
		log, err := logger.NewLogger()
		if err != nil {
			return nil, err
		}

		source, err := datasource.NewDuckDBDataSource(":memory:", log)
		if err != nil {
			return nil, err
		}
		defer source.Close()

		if err := source.Initialize(path); err != nil {
			return nil, err
		}

		return datasource.LoadAll(source, start, end)
	}

	return generateBars(cmd)
}

func generateBars(cmd *cli.Command) ([]types.Bar, error) {
	numBars := int(cmd.Int("bars"))

	generator := datasource.NewGenerator(datasource.GeneratorConfig{
		StartTime: time.Now().AddDate(0, 0, -numBars).Truncate(24 * time.Hour),
		Interval:  24 * time.Hour,
		NumBars:   numBars,
		Pattern:   datasource.Pattern(cmd.String("pattern")),
		Seed:      cmd.Int("seed"),
	})

	return generator.Generate()
}

func loadConfig(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read config %q: %w", path, err)
	}

	return string(data), nil
}

func writeResult(outputDir string, bars []types.Bar, result *backtest.Result) error {
	out, err := writer.NewCSVWriter(outputDir)
	if err != nil {
		return err
	}
	defer out.Close()

	for _, trade := range result.Trades {
		if err := out.WriteTrade(trade); err != nil {
			return err
		}
	}

	timestamps := make([]time.Time, len(bars))
	for i, b := range bars {
		timestamps[i] = b.Time
	}

	if err := out.WriteEquityCurves(result.EquityCurve, result.BenchmarkCurve, timestamps); err != nil {
		return err
	}

	marks := append(append([]types.Mark{}, result.BuyMarks...), result.SellMarks...)
	if err := out.WriteMarks(marks); err != nil {
		return err
	}

	if err := out.WriteSummary(result.Summary); err != nil {
		return err
	}

	log.Printf("Results written to %s", out.RunDir())

	return nil
}

// generateAction writes synthetic bars to a CSV file that later runs can
// consume through --data.
func generateAction(ctx context.Context, cmd *cli.Command) error {
	bars, err := generateBars(cmd)
	if err != nil {
		return err
	}

	path := cmd.String("out")

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"time", "open", "high", "low", "close", "volume"}); err != nil {
		return err
	}

	for _, bar := range bars {
		record := []string{
			bar.Time.Format("2006-01-02 15:04:05"),
			strconv.FormatFloat(bar.Open, 'f', -1, 64),
			strconv.FormatFloat(bar.High, 'f', -1, 64),
			strconv.FormatFloat(bar.Low, 'f', -1, 64),
			strconv.FormatFloat(bar.Close, 'f', -1, 64),
			strconv.FormatFloat(bar.Volume, 'f', -1, 64),
		}

		if err := w.Write(record); err != nil {
			return err
		}
	}

	log.Printf("Wrote %d bars to %s", len(bars), path)

	return nil
}

func strategiesAction(ctx context.Context, cmd *cli.Command) error {
	registry, err := strategy.DefaultRegistry(enginev1.Version)
	if err != nil {
		return err
	}

	for _, name := range registry.Names() {
		fmt.Println(name)
	}

	return nil
}

func schemaAction(ctx context.Context, cmd *cli.Command) error {
	config := enginev1.DefaultConfig()

	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return err
	}

	fmt.Println(schema)

	return nil
}

func syntheticFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "bars",
			Usage: "Number of synthetic bars to generate",
			Value: 500,
		},
		&cli.IntFlag{
			Name:  "seed",
			Usage: "Random seed for the synthetic walk (0 uses the current time)",
			Value: 0,
		},
		&cli.StringFlag{
			Name:  "pattern",
			Usage: fmt.Sprintf("Synthetic price pattern (%v)", datasource.AllPatterns),
			Value: string(datasource.PatternVolatile),
		},
	}
}

func main() {
	cmd := &cli.Command{
		Name:  "crossbt",
		Usage: "Crossover strategy backtesting against a buy-and-hold benchmark",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a backtest",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "strategy",
						Aliases:  []string{"s"},
						Usage:    "Strategy variant to run (see the strategies command)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to a YAML engine config; defaults apply when omitted",
					},
					&cli.StringFlag{
						Name:    "data",
						Aliases: []string{"d"},
						Usage:   "Path to an OHLCV CSV file; synthetic data is generated when omitted",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Directory for run results",
						Value:   "results",
					},
				}, syntheticFlags()...),
				Action: runAction,
			},
			{
				Name:  "generate",
				Usage: "Generate a synthetic OHLCV CSV file",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "Output CSV path",
						Value: "data/synthetic.csv",
					},
				}, syntheticFlags()...),
				Action: generateAction,
			},
			{
				Name:   "strategies",
				Usage:  "List the available strategy variants",
				Action: strategiesAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the engine configuration",
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
