package model

import (
	"github.com/rxtech-lab/coin-signal/internal/types"
)

// RSIReversion buys when RSI is oversold and sells when it is overbought.
type RSIReversion struct {
	name       string
	input      string
	oversold   float64
	overbought float64
}

// NewRSIReversion creates an RSI reversion model reading the named input.
func NewRSIReversion(name string, input string, oversold float64, overbought float64) *RSIReversion {
	return &RSIReversion{
		name:       name,
		input:      input,
		oversold:   oversold,
		overbought: overbought,
	}
}

func (m *RSIReversion) Name() string {
	return m.name
}

func (m *RSIReversion) RequiredInputs() []string {
	return []string{m.input}
}

// Evaluate holds when the input is missing.
func (m *RSIReversion) Evaluate(snapshot Snapshot) types.Action {
	value, ok := snapshot[m.input]
	if !ok {
		return types.ActionHold
	}

	switch {
	case value < m.oversold:
		return types.ActionBuy
	case value > m.overbought:
		return types.ActionSell
	default:
		return types.ActionHold
	}
}
