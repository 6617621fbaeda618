package model

import (
	"github.com/rxtech-lab/coin-signal/internal/types"
)

// SMACross buys while the short average is above the long one and sells while it is below.
type SMACross struct {
	name       string
	shortInput string
	longInput  string
}

// NewSMACross creates a crossover model over two named inputs.
func NewSMACross(name string, shortInput string, longInput string) *SMACross {
	return &SMACross{
		name:       name,
		shortInput: shortInput,
		longInput:  longInput,
	}
}

func (m *SMACross) Name() string {
	return m.name
}

func (m *SMACross) RequiredInputs() []string {
	return []string{m.shortInput, m.longInput}
}

// Evaluate holds on equality or when either input is missing.
func (m *SMACross) Evaluate(snapshot Snapshot) types.Action {
	short, ok := snapshot[m.shortInput]
	if !ok {
		return types.ActionHold
	}

	long, ok := snapshot[m.longInput]
	if !ok {
		return types.ActionHold
	}

	switch {
	case short > long:
		return types.ActionBuy
	case short < long:
		return types.ActionSell
	default:
		return types.ActionHold
	}
}
