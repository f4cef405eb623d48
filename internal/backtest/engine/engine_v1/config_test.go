package engine

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v2"

	"github.com/oscillab/crossbt/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/oscillab/crossbt/internal/types"
	"github.com/oscillab/crossbt/pkg/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TestUnmarshalYAML() {
	raw := `
initial_capital: 20000
commission:
  broker: interactive_broker
  charge_on_entry: true
  charge_on_exit: true
  charge_on_liquidation: true
start_time: 2024-01-01T00:00:00Z
`

	var config BacktestConfig
	suite.NoError(yaml.Unmarshal([]byte(raw), &config))
	suite.Equal(20000.0, config.InitialCapital)
	suite.Equal(commission_fee.BrokerInteractiveBroker, config.Commission.Broker)
	suite.True(config.Commission.ChargeOnLiquidation)
	suite.True(config.StartTime.IsSome())
	suite.True(config.EndTime.IsNone())
}

func (suite *ConfigTestSuite) TestParseConfigKeepsDefaultsForUnsetFields() {
	config, err := ParseConfig("initial_capital: 5000")
	suite.NoError(err)
	suite.Equal(5000.0, config.InitialCapital)
	suite.Equal(commission_fee.BrokerFixed, config.Commission.Broker)
	suite.True(config.Commission.ChargeOnEntry)
	suite.True(config.StartTime.IsNone())
}

func (suite *ConfigTestSuite) TestParseConfigRejectsMalformedYAML() {
	_, err := ParseConfig("initial_capital: [")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeBacktestConfigError))
}

func (suite *ConfigTestSuite) TestFilterBarsAppliesInclusiveBounds() {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]types.Bar, 5)

	for i := range bars {
		bars[i] = types.Bar{Time: start.AddDate(0, 0, i), Close: 100}
	}

	config := DefaultConfig()
	config.StartTime = optional.Some(bars[1].Time)
	config.EndTime = optional.Some(bars[3].Time)

	filtered := config.FilterBars(bars)
	suite.Len(filtered, 3)
	suite.Equal(bars[1].Time, filtered[0].Time)
	suite.Equal(bars[3].Time, filtered[2].Time)
}

func (suite *ConfigTestSuite) TestFilterBarsOpenEnded() {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]types.Bar, 4)

	for i := range bars {
		bars[i] = types.Bar{Time: start.AddDate(0, 0, i), Close: 100}
	}

	config := DefaultConfig()
	suite.Len(config.FilterBars(bars), 4)

	config.StartTime = optional.Some(bars[2].Time)
	suite.Len(config.FilterBars(bars), 2)
}

func (suite *ConfigTestSuite) TestValidateRejectsNonPositiveCapital() {
	config := DefaultConfig()
	config.InitialCapital = -100

	err := config.Validate()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeNonPositiveCapital))
	suite.True(errors.IsInputError(err))
}

func (suite *ConfigTestSuite) TestValidateRejectsNegativeFixedAmount() {
	config := DefaultConfig()
	config.Commission.FixedAmount = -1

	err := config.Validate()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestDefaultConfigIsValid() {
	config := DefaultConfig()
	suite.NoError(config.Validate())
	suite.True(config.Commission.ChargeOnEntry)
	suite.True(config.Commission.ChargeOnExit)
	suite.False(config.Commission.ChargeOnLiquidation)
}

func (suite *ConfigTestSuite) TestGenerateSchemaJSON() {
	config := DefaultConfig()

	raw, err := config.GenerateSchemaJSON()
	suite.NoError(err)

	var schema map[string]interface{}
	suite.NoError(json.Unmarshal([]byte(raw), &schema))
	suite.Equal("backtest-config", schema["title"])

	properties, ok := schema["properties"].(map[string]interface{})
	suite.True(ok)
	suite.Contains(properties, "initial_capital")
	suite.Contains(properties, "commission")
}
