package engine

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"

	"github.com/quantlab-hq/futures-backtest/pkg/errors"
)

const (
	// DefaultInitialCapital is the starting capital when none is given.
	DefaultInitialCapital = 1_000_000
	// DefaultCommissionRate is the proportional commission per trade.
	DefaultCommissionRate = 0.0003
)

type BacktestEngineV1Config struct {
	// Symbol is either a concrete contract (IF2503) or a product code
	// (IF) that selects the dominant-contract series.
	Symbol         string  `yaml:"symbol" json:"symbol" validate:"required" jsonschema:"title=Symbol,description=Contract or product code to replay"`
	InitialCapital float64 `yaml:"initial_capital" json:"initial_capital" validate:"gt=0" jsonschema:"title=Initial Capital,description=Starting capital for the backtest,minimum=0"`
	CommissionRate float64 `yaml:"commission_rate" json:"commission_rate" validate:"gte=0" jsonschema:"title=Commission Rate,description=Proportional commission charged on every fill,minimum=0"`
	StartTime      optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=First trading day of the replay"`
	EndTime        optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Last trading day of the replay"`
	// WriteIndicators exports the strategy's indicator series alongside
	// the run artifacts when set.
	WriteIndicators bool `yaml:"write_indicators" json:"write_indicators" jsonschema:"title=Write Indicators,description=Export indicator series with the run artifacts"`

	// commissionRateSet records whether the yaml carried an explicit
	// commission_rate, so a configured zero is not mistaken for unset.
	commissionRateSet bool
}

// UnmarshalYAML implements custom unmarshaling for BacktestEngineV1Config.
func (c *BacktestEngineV1Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type Config struct {
		Symbol          string     `yaml:"symbol"`
		InitialCapital  float64    `yaml:"initial_capital"`
		CommissionRate  *float64   `yaml:"commission_rate"`
		StartTime       *time.Time `yaml:"start_time"`
		EndTime         *time.Time `yaml:"end_time"`
		WriteIndicators bool       `yaml:"write_indicators"`
	}

	var config Config
	if err := unmarshal(&config); err != nil {
		return err
	}

	c.Symbol = config.Symbol
	c.InitialCapital = config.InitialCapital
	c.WriteIndicators = config.WriteIndicators

	if config.CommissionRate != nil {
		c.CommissionRate = *config.CommissionRate
		c.commissionRateSet = true
	}

	if config.StartTime != nil {
		c.StartTime = optional.Some(*config.StartTime)
	}

	if config.EndTime != nil {
		c.EndTime = optional.Some(*config.EndTime)
	}

	return nil
}

// ApplyDefaults fills in the standard capital and commission rate where
// the config left them unset.
func (c *BacktestEngineV1Config) ApplyDefaults() {
	if c.InitialCapital == 0 {
		c.InitialCapital = DefaultInitialCapital
	}

	if !c.commissionRateSet && c.CommissionRate == 0 {
		c.CommissionRate = DefaultCommissionRate
	}
}

// Validate checks the config against its validation tags.
func (c *BacktestEngineV1Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid engine configuration", err)
	}

	return nil
}

// GenerateSchema generates a JSON schema for the BacktestEngineV1Config.
func (c *BacktestEngineV1Config) GenerateSchema() (*jsonschema.Schema, error) {
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

			return nil
		},
	}

	schema := reflector.Reflect(c)
	schema.Title = "backtest-engine-v1-config"
	schema.Description = "Configuration schema for BacktestEngineV1"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the BacktestEngineV1Config.
func (c *BacktestEngineV1Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// TestConfig returns a small fully populated config for tests.
func TestConfig(symbol string, startTime time.Time, endTime time.Time) BacktestEngineV1Config {
	return BacktestEngineV1Config{
		Symbol:          symbol,
		InitialCapital:  10000,
		CommissionRate:  DefaultCommissionRate,
		StartTime:       optional.Some(startTime),
		EndTime:         optional.Some(endTime),
		WriteIndicators: false,
	}
}

// EmptyConfig returns a BacktestEngineV1Config with zero values.
func EmptyConfig() BacktestEngineV1Config {
	return BacktestEngineV1Config{
		Symbol:          "",
		InitialCapital:  0,
		CommissionRate:  0,
		StartTime:       optional.None[time.Time](),
		EndTime:         optional.None[time.Time](),
		WriteIndicators: false,
	}
}
