package engine

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/coin-signal/internal/input"
	"github.com/rxtech-lab/coin-signal/internal/model"
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
)

// BacktestEngineV1Config is the backtest document: the inputs and models to build plus
// the parameters of the run.
type BacktestEngineV1Config struct {
	Version  string         `yaml:"version,omitempty" json:"version,omitempty" jsonschema:"title=Version,description=Engine version the document was written for. Major and minor must match"`
	Inputs   []input.Config `yaml:"inputs,omitempty" json:"inputs,omitempty" jsonschema:"title=Inputs,description=Named feature series. Defaults to rsi_14 when empty" validate:"dive"`
	Models   []model.Config `yaml:"models,omitempty" json:"models,omitempty" jsonschema:"title=Models,description=Named trading models. Defaults to RSI reversion 30/70 when empty" validate:"dive"`
	Backtest BacktestConfig `yaml:"backtest" json:"backtest" jsonschema:"title=Backtest,required"`
}

// BacktestConfig holds the parameters of one run.
type BacktestConfig struct {
	Exchange  types.Exchange  `yaml:"exchange" json:"exchange" jsonschema:"title=Exchange,enum=upbit,enum=binance,required" validate:"required,oneof=upbit binance"`
	Symbol    string          `yaml:"symbol" json:"symbol" jsonschema:"title=Symbol,description=Market symbol such as KRW-BTC or BTCUSDT,required" validate:"required"`
	Timeframe types.Timeframe `yaml:"timeframe" json:"timeframe" jsonschema:"title=Timeframe,enum=1m,enum=3m,enum=5m,enum=15m,enum=30m,enum=1h,enum=4h,enum=1d,required" validate:"required,oneof=1m 3m 5m 15m 30m 1h 4h 1d"`
	// Model names the configured model to run. Ignored when no models are configured.
	Model            string     `yaml:"model,omitempty" json:"model,omitempty" jsonschema:"title=Model,description=Name of the model to run"`
	StartTime        time.Time  `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=First candle open time (inclusive),required" validate:"required"`
	EndTime          time.Time  `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Last candle open time (inclusive),required" validate:"required,gtfield=StartTime"`
	InitialCapital   float64    `yaml:"initial_capital" json:"initial_capital" jsonschema:"title=Initial Capital,minimum=0,default=1000000" validate:"gt=0"`
	EntrySizePercent float64    `yaml:"entry_size_percent" json:"entry_size_percent" jsonschema:"title=Entry Size Percent,description=Share of equity committed per entry,minimum=0,maximum=100,default=10" validate:"gt=0,lte=100"`
	Costs            CostConfig `yaml:"costs" json:"costs" jsonschema:"title=Costs"`
	Risk             RiskConfig `yaml:"risk" json:"risk" jsonschema:"title=Risk"`
}

type CostConfig struct {
	SlippageBps float64 `yaml:"slippage_bps" json:"slippage_bps" jsonschema:"title=Slippage,description=Slippage in basis points applied against every fill,minimum=0,default=10" validate:"gte=0"`
	// FeeBpsOverrides replaces the default taker fee of an exchange
	FeeBpsOverrides map[string]float64 `yaml:"fee_bps_overrides,omitempty" json:"fee_bps_overrides,omitempty" jsonschema:"title=Fee Overrides,description=Fee in basis points keyed by exchange" validate:"omitempty,dive,keys,oneof=upbit binance,endkeys,gte=0"`
}

type RiskConfig struct {
	// MaxEntriesPerPosition caps concurrently open lots. 0 means unlimited.
	MaxEntriesPerPosition int `yaml:"max_entries_per_position" json:"max_entries_per_position" jsonschema:"title=Max Entries,description=Maximum concurrently open lots. 0 means unlimited,minimum=0,default=3" validate:"gte=0"`
	CooldownBars          int `yaml:"cooldown_bars" json:"cooldown_bars" jsonschema:"title=Cooldown Bars,description=Bars to wait after an entry fill before the next entry,minimum=0,default=3" validate:"gte=0"`
}

// EmptyConfig returns a BacktestEngineV1Config with default values.
// Documents are decoded on top of it so explicit zeros survive.
func EmptyConfig() BacktestEngineV1Config {
	return BacktestEngineV1Config{
		Backtest: BacktestConfig{
			InitialCapital:   1_000_000,
			EntrySizePercent: 10,
			Costs: CostConfig{
				SlippageBps: 10,
			},
			Risk: RiskConfig{
				MaxEntriesPerPosition: 3,
				CooldownBars:          3,
			},
		},
	}
}

// Validate checks field constraints and reports the first failures with their YAML path.
func (c *BacktestEngineV1Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(yamlFieldName)

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid backtest config", err)
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields = append(fields, fieldPath(fieldError.Namespace())+" failed "+fieldError.Tag())
	}

	return errors.Newf(errors.ErrCodeInvalidConfiguration, "invalid backtest config: %s", strings.Join(fields, "; "))
}

// GenerateSchema generates a JSON schema for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == reflect.TypeOf(time.Time{}) {
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

// GenerateSchemaJSON generates a JSON schema string for the BacktestEngineV1Config
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

func yamlFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
	if name == "-" {
		return ""
	}

	if name == "" {
		return field.Name
	}

	return name
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	_, path, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}

	return path
}
