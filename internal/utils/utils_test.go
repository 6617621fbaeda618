package utils

import (
	"testing"

	"github.com/rxtech-lab/coin-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type UtilsTestSuite struct {
	suite.Suite
}

func TestUtilsSuite(t *testing.T) {
	suite.Run(t, new(UtilsTestSuite))
}

func (suite *UtilsTestSuite) TestIntParam() {
	params := map[string]any{
		"int":        14,
		"int64":      int64(9),
		"whole":      26.0,
		"fractional": 2.5,
		"text":       "fourteen",
		"null":       nil,
	}

	testCases := []struct {
		name     string
		key      string
		expected int
		wantErr  bool
	}{
		{name: "int", key: "int", expected: 14},
		{name: "int64", key: "int64", expected: 9},
		{name: "whole float", key: "whole", expected: 26},
		{name: "missing uses default", key: "missing", expected: 7},
		{name: "null uses default", key: "null", expected: 7},
		{name: "fractional float", key: "fractional", wantErr: true},
		{name: "string", key: "text", wantErr: true},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			value, err := IntParam(params, tc.key, 7)
			if tc.wantErr {
				suite.Error(err)
				suite.True(errors.HasCode(err, errors.ErrCodeInvalidType))
				suite.Contains(err.Error(), tc.key)

				return
			}

			suite.NoError(err)
			suite.Equal(tc.expected, value)
		})
	}
}

func (suite *UtilsTestSuite) TestFloatParam() {
	params := map[string]any{"float": 2.5, "int": 3, "text": "x"}

	value, err := FloatParam(params, "float", 1)
	suite.NoError(err)
	suite.Equal(2.5, value)

	value, err = FloatParam(params, "int", 1)
	suite.NoError(err)
	suite.Equal(3.0, value)

	value, err = FloatParam(params, "missing", 1.5)
	suite.NoError(err)
	suite.Equal(1.5, value)

	_, err = FloatParam(params, "text", 1)
	suite.Error(err)
}

func (suite *UtilsTestSuite) TestStringParam() {
	params := map[string]any{"input": "rsi_7", "empty": "", "number": 3}

	value, err := StringParam(params, "input", "rsi_14")
	suite.NoError(err)
	suite.Equal("rsi_7", value)

	value, err = StringParam(params, "empty", "rsi_14")
	suite.NoError(err)
	suite.Equal("rsi_14", value)

	value, err = StringParam(nil, "input", "rsi_14")
	suite.NoError(err)
	suite.Equal("rsi_14", value)

	_, err = StringParam(params, "number", "")
	suite.Error(err)
}

func (suite *UtilsTestSuite) TestCalculateEntryNotional() {
	// target 10% of 1,000,000 is well within cash
	suite.InDelta(100_000.0, CalculateEntryNotional(1_000_000, 1_000_000, 10, 5), 1e-9)

	// cash-limited: notional plus fee must fit in cash
	notional := CalculateEntryNotional(1_000_000, 50_000, 10, 10)
	suite.InDelta(50_000/1.001, notional, 1e-9)
	suite.LessOrEqual(notional+CalculateFee(notional, 10), 50_000.0+1e-9)

	suite.Equal(0.0, CalculateEntryNotional(1_000_000, 0, 10, 10))
}

func (suite *UtilsTestSuite) TestCalculateFee() {
	suite.InDelta(5.0, CalculateFee(10_000, 5), 1e-12)
	suite.Equal(0.0, CalculateFee(10_000, 0))
	suite.Equal(0.001, BpsToRatio(10))
}
