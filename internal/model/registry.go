package model

import (
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/internal/utils"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
)

// Builder creates a model of one kind from its configuration.
type Builder func(config Config) (TradingModel, error)

// Registry maps model kinds to builders.
type Registry struct {
	builders map[types.ModelType]Builder
}

// NewRegistry creates a registry with every built-in model kind.
//
// Kinds and their parameter defaults:
//
//	rsi_reversion  input=inputs[0]|rsi_14 oversold=30 overbought=70
//	sma_cross      short_input=inputs[0]|sma_short long_input=inputs[1]|sma_long
func NewRegistry() *Registry {
	r := &Registry{builders: make(map[types.ModelType]Builder)}
	r.builders[types.ModelTypeRSIReversion] = buildRSIReversion
	r.builders[types.ModelTypeSMACross] = buildSMACross

	return r
}

// Register adds or replaces the builder for kind.
func (r *Registry) Register(kind types.ModelType, builder Builder) {
	r.builders[kind] = builder
}

// Build creates one model from its configuration.
func (r *Registry) Build(config Config) (TradingModel, error) {
	builder, ok := r.builders[types.ModelType(config.Kind)]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeUnknownModelKind, "model %q: unknown kind %q", config.Name, config.Kind)
	}

	m, err := builder(config)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "model %q", config.Name)
	}

	return m, nil
}

// Select builds and validates every configured model and returns the one named
// selected. Every model must only reference names in available, the names of the
// resolved inputs. With no models configured the default model is validated and
// returned regardless of selected.
func (r *Registry) Select(configs []Config, selected string, available []string) (TradingModel, error) {
	names := make(map[string]struct{}, len(available))
	for _, name := range available {
		names[name] = struct{}{}
	}

	if len(configs) == 0 {
		m := DefaultModel()
		if err := checkReferences(m.Name(), m.RequiredInputs(), names); err != nil {
			return nil, err
		}

		return m, nil
	}

	seen := make(map[string]struct{}, len(configs))

	var chosen TradingModel

	for _, config := range configs {
		if config.Name == "" {
			return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "model of kind %q has no name", config.Kind)
		}

		if _, dup := seen[config.Name]; dup {
			return nil, errors.Newf(errors.ErrCodeDuplicateName, "duplicate model name %q", config.Name)
		}

		seen[config.Name] = struct{}{}

		if err := checkReferences(config.Name, config.Inputs, names); err != nil {
			return nil, err
		}

		m, err := r.Build(config)
		if err != nil {
			return nil, err
		}

		if err := checkReferences(config.Name, m.RequiredInputs(), names); err != nil {
			return nil, err
		}

		if config.Name == selected {
			chosen = m
		}
	}

	if chosen == nil {
		return nil, errors.Newf(errors.ErrCodeModelNotFound, "model %q not found", selected)
	}

	return chosen, nil
}

func checkReferences(model string, references []string, available map[string]struct{}) error {
	for _, ref := range references {
		if _, ok := available[ref]; !ok {
			return errors.Newf(errors.ErrCodeMissingInputReference, "model %q references unknown input %q", model, ref)
		}
	}

	return nil
}

func inputAt(inputs []string, index int, def string) string {
	if index < len(inputs) && inputs[index] != "" {
		return inputs[index]
	}

	return def
}

func buildRSIReversion(config Config) (TradingModel, error) {
	input, err := utils.StringParam(config.Params, "input", inputAt(config.Inputs, 0, "rsi_14"))
	if err != nil {
		return nil, err
	}

	oversold, err := utils.FloatParam(config.Params, "oversold", 30)
	if err != nil {
		return nil, err
	}

	overbought, err := utils.FloatParam(config.Params, "overbought", 70)
	if err != nil {
		return nil, err
	}

	if oversold >= overbought {
		return nil, errors.Newf(errors.ErrCodeInvalidThreshold, "oversold (%v) must be below overbought (%v)", oversold, overbought)
	}

	return NewRSIReversion(config.Name, input, oversold, overbought), nil
}

func buildSMACross(config Config) (TradingModel, error) {
	shortInput, err := utils.StringParam(config.Params, "short_input", inputAt(config.Inputs, 0, "sma_short"))
	if err != nil {
		return nil, err
	}

	longInput, err := utils.StringParam(config.Params, "long_input", inputAt(config.Inputs, 1, "sma_long"))
	if err != nil {
		return nil, err
	}

	if shortInput == longInput {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "short_input and long_input must differ, both are %q", shortInput)
	}

	return NewSMACross(config.Name, shortInput, longInput), nil
}
