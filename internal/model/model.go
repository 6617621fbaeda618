// Package model holds the trading decision functions evaluated by the backtest engine.
package model

import (
	"github.com/rxtech-lab/coin-signal/internal/types"
)

// Snapshot holds the named feature values available at one simulation step.
type Snapshot map[string]float64

// Config declares a named model.
type Config struct {
	Name   string         `yaml:"name" json:"name" jsonschema:"title=Name,description=Unique model name selected by backtest.model" validate:"required"`
	Kind   string         `yaml:"kind" json:"kind" jsonschema:"title=Kind,enum=rsi_reversion,enum=sma_cross" validate:"required"`
	Inputs []string       `yaml:"inputs,omitempty" json:"inputs,omitempty" jsonschema:"title=Inputs,description=Names of the inputs the model reads"`
	Params map[string]any `yaml:"params,omitempty" json:"params,omitempty" jsonschema:"title=Params,description=Kind specific parameters"`
}

// TradingModel maps a feature snapshot to an action.
type TradingModel interface {
	Name() string
	// RequiredInputs lists the names that must have values before Evaluate is called
	RequiredInputs() []string
	Evaluate(snapshot Snapshot) types.Action
}

// DefaultModelName is the name of the model used when none are configured.
const DefaultModelName = "rsi_reversion_default"

// DefaultModel is RSI reversion at 30/70 over rsi_14.
func DefaultModel() TradingModel {
	return NewRSIReversion(DefaultModelName, "rsi_14", 30, 70)
}
