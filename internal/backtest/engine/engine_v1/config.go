package engine

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"gopkg.in/yaml.v2"

	"github.com/oscillab/crossbt/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/oscillab/crossbt/internal/types"
	"github.com/oscillab/crossbt/pkg/errors"
)

// CommissionConfig selects the fee model and where it applies. Charge
// points are explicit configuration instead of a hard-coded policy.
type CommissionConfig struct {
	Broker commission_fee.Broker `yaml:"broker" json:"broker" jsonschema:"title=Broker,description=The commission model to apply"`
	// FixedAmount is the per-trade charge used by the fixed_per_trade broker.
	FixedAmount float64 `yaml:"fixed_amount" json:"fixed_amount" validate:"gte=0" jsonschema:"title=Fixed Amount,description=Per-trade commission for the fixed model,minimum=0"`
	// ChargeOnEntry charges commission when a position is opened.
	ChargeOnEntry bool `yaml:"charge_on_entry" json:"charge_on_entry" jsonschema:"title=Charge On Entry"`
	// ChargeOnExit charges commission when a position is closed by the exit rule.
	ChargeOnExit bool `yaml:"charge_on_exit" json:"charge_on_exit" jsonschema:"title=Charge On Exit"`
	// ChargeOnLiquidation charges commission on the forced end-of-period sell.
	ChargeOnLiquidation bool `yaml:"charge_on_liquidation" json:"charge_on_liquidation" jsonschema:"title=Charge On Liquidation"`
}

type BacktestConfig struct {
	InitialCapital float64                    `yaml:"initial_capital" json:"initial_capital" validate:"gt=0" jsonschema:"title=Initial Capital,description=Starting capital for the backtest in USD,minimum=0"`
	Commission     CommissionConfig           `yaml:"commission" json:"commission" jsonschema:"title=Commission"`
	StartTime      optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional start time for the backtest period"`
	EndTime        optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional end time for the backtest period"`
}

// UnmarshalYAML implements custom unmarshaling for BacktestConfig.
func (c *BacktestConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type Config struct {
		InitialCapital float64          `yaml:"initial_capital"`
		Commission     CommissionConfig `yaml:"commission"`
		StartTime      *time.Time       `yaml:"start_time"`
		EndTime        *time.Time       `yaml:"end_time"`
	}

	// Seed with current values so absent fields keep their defaults.
	config := Config{
		InitialCapital: c.InitialCapital,
		Commission:     c.Commission,
	}

	if err := unmarshal(&config); err != nil {
		return err
	}

	c.InitialCapital = config.InitialCapital
	c.Commission = config.Commission

	if config.StartTime != nil {
		c.StartTime = optional.Some(*config.StartTime)
	}

	if config.EndTime != nil {
		c.EndTime = optional.Some(*config.EndTime)
	}

	return nil
}

// ParseConfig parses a YAML config string on top of the defaults, so unset
// fields keep their default values. An empty string yields DefaultConfig.
func ParseConfig(raw string) (BacktestConfig, error) {
	config := DefaultConfig()

	if err := yaml.Unmarshal([]byte(raw), &config); err != nil {
		return BacktestConfig{}, errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to parse config", err)
	}

	return config, nil
}

// FilterBars restricts bars to the configured backtest period. Both bounds
// are inclusive and optional; an unset bound leaves that side open.
func (c *BacktestConfig) FilterBars(bars []types.Bar) []types.Bar {
	if c.StartTime.IsNone() && c.EndTime.IsNone() {
		return bars
	}

	filtered := make([]types.Bar, 0, len(bars))

	for _, bar := range bars {
		if c.StartTime.IsSome() && bar.Time.Before(c.StartTime.Unwrap()) {
			continue
		}

		if c.EndTime.IsSome() && bar.Time.After(c.EndTime.Unwrap()) {
			continue
		}

		filtered = append(filtered, bar)
	}

	return filtered
}

// Validate checks the configuration preconditions. A non-positive initial
// capital is an input error that fails the run before any simulation step.
func (c *BacktestConfig) Validate() error {
	if c.InitialCapital <= 0 {
		return errors.Newf(errors.ErrCodeNonPositiveCapital,
			"initial capital must be positive, got %f", c.InitialCapital)
	}

	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid backtest config", err)
	}

	return nil
}

// GenerateSchema generates a JSON schema for the BacktestConfig.
func (c *BacktestConfig) GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}
			if strings.Contains(t.String(), "commission_fee.Broker") {
				return &jsonschema.Schema{
					Type: "string",
					Enum: commission_fee.AllBrokers,
				}
			}
			return nil
		},
	}

	schema := reflector.Reflect(c)
	schema.Title = "backtest-config"
	schema.Description = "Configuration schema for the backtest engine"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON generates a JSON schema string for the BacktestConfig.
func (c *BacktestConfig) GenerateSchemaJSON() (string, error) {
	schemaBytes, err := json.MarshalIndent(c.GenerateSchema(), "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// DefaultConfig returns the standard configuration: $10,000 starting
// capital, a flat commission charged on entry and exit, and a free forced
// liquidation.
func DefaultConfig() BacktestConfig {
	return BacktestConfig{
		InitialCapital: 10000,
		Commission: CommissionConfig{
			Broker:              commission_fee.BrokerFixed,
			FixedAmount:         1.0,
			ChargeOnEntry:       true,
			ChargeOnExit:        true,
			ChargeOnLiquidation: false,
		},
		StartTime: optional.None[time.Time](),
		EndTime:   optional.None[time.Time](),
	}
}

// EmptyConfig returns a BacktestConfig with zero values.
func EmptyConfig() BacktestConfig {
	return BacktestConfig{
		InitialCapital: 0,
		Commission: CommissionConfig{
			Broker: commission_fee.BrokerZero,
		},
		StartTime: optional.None[time.Time](),
		EndTime:   optional.None[time.Time](),
	}
}
