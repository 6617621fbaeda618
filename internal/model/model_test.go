package model

import (
	"testing"

	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/stretchr/testify/suite"
)

type ModelTestSuite struct {
	suite.Suite
}

func TestModelSuite(t *testing.T) {
	suite.Run(t, new(ModelTestSuite))
}

func (suite *ModelTestSuite) TestRSIReversion() {
	m := NewRSIReversion("rsi", "rsi_14", 30, 70)
	suite.Equal("rsi", m.Name())
	suite.Equal([]string{"rsi_14"}, m.RequiredInputs())

	testCases := []struct {
		name     string
		snapshot Snapshot
		expected types.Action
	}{
		{name: "oversold", snapshot: Snapshot{"rsi_14": 29.9}, expected: types.ActionBuy},
		{name: "at oversold", snapshot: Snapshot{"rsi_14": 30}, expected: types.ActionHold},
		{name: "neutral", snapshot: Snapshot{"rsi_14": 50}, expected: types.ActionHold},
		{name: "at overbought", snapshot: Snapshot{"rsi_14": 70}, expected: types.ActionHold},
		{name: "overbought", snapshot: Snapshot{"rsi_14": 70.1}, expected: types.ActionSell},
		{name: "missing", snapshot: Snapshot{"other": 10}, expected: types.ActionHold},
		{name: "empty", snapshot: nil, expected: types.ActionHold},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.Equal(tc.expected, m.Evaluate(tc.snapshot))
		})
	}
}

func (suite *ModelTestSuite) TestSMACross() {
	m := NewSMACross("cross", "fast", "slow")
	suite.Equal([]string{"fast", "slow"}, m.RequiredInputs())

	testCases := []struct {
		name     string
		snapshot Snapshot
		expected types.Action
	}{
		{name: "short above", snapshot: Snapshot{"fast": 11, "slow": 10}, expected: types.ActionBuy},
		{name: "short below", snapshot: Snapshot{"fast": 9, "slow": 10}, expected: types.ActionSell},
		{name: "equal", snapshot: Snapshot{"fast": 10, "slow": 10}, expected: types.ActionHold},
		{name: "missing short", snapshot: Snapshot{"slow": 10}, expected: types.ActionHold},
		{name: "missing long", snapshot: Snapshot{"fast": 10}, expected: types.ActionHold},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.Equal(tc.expected, m.Evaluate(tc.snapshot))
		})
	}
}

func (suite *ModelTestSuite) TestDefaultModel() {
	m := DefaultModel()
	suite.Equal(DefaultModelName, m.Name())
	suite.Equal([]string{"rsi_14"}, m.RequiredInputs())
	suite.Equal(types.ActionBuy, m.Evaluate(Snapshot{"rsi_14": 20}))
	suite.Equal(types.ActionSell, m.Evaluate(Snapshot{"rsi_14": 80}))
}
