package indicator

import (
	"testing"

	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type RSITestSuite struct {
	suite.Suite
}

func TestRSISuite(t *testing.T) {
	suite.Run(t, new(RSITestSuite))
}

func (suite *RSITestSuite) TestDefaults() {
	rsi := NewRSI()
	suite.Equal(types.IndicatorTypeRSI, rsi.Name())
	suite.Equal(15, rsi.RequiredCandles())
}

func (suite *RSITestSuite) TestRequiredCandlesIsPeriodPlusOne() {
	rsi := NewRSI()
	suite.Require().NoError(rsi.Config(3))
	suite.Equal(4, rsi.RequiredCandles())

	_, err := rsi.Calculate(candlesFromCloses(1, 2, 3))
	suite.True(errors.IsInsufficientDataError(err))

	values, err := rsi.Calculate(candlesFromCloses(1, 2, 3, 4))
	suite.Require().NoError(err)
	suite.Len(values, 1)
}

func (suite *RSITestSuite) TestOnlyGainsIs100() {
	rsi := NewRSI()
	suite.Require().NoError(rsi.Config(3))

	values, err := rsi.Calculate(candlesFromCloses(1, 2, 3, 4, 5, 6))
	suite.Require().NoError(err)
	suite.Len(values, 3)

	for _, v := range values {
		suite.Equal(100.0, v)
	}
}

func (suite *RSITestSuite) TestFlatSeriesIs100() {
	rsi := NewRSI()
	suite.Require().NoError(rsi.Config(3))

	values, err := rsi.Calculate(flatCandles(5, 4))
	suite.Require().NoError(err)
	suite.Equal([]float64{100}, values)
}

func (suite *RSITestSuite) TestOnlyLossesIsZero() {
	rsi := NewRSI()
	suite.Require().NoError(rsi.Config(3))

	values, err := rsi.Calculate(candlesFromCloses(6, 5, 4, 3))
	suite.Require().NoError(err)
	suite.Require().Len(values, 1)
	suite.InDelta(0.0, values[0], 1e-12)
}

func (suite *RSITestSuite) TestWilderSmoothing() {
	rsi := NewRSI()
	suite.Require().NoError(rsi.Config(3))

	// deltas +1 -1 +2 -1
	values, err := rsi.Calculate(candlesFromCloses(10, 11, 10, 12, 11))
	suite.Require().NoError(err)
	suite.Require().Len(values, 2)

	// avg_gain 1, avg_loss 1/3
	suite.InDelta(75.0, values[0], 1e-9)
	// avg_gain (1*2+0)/3, avg_loss (1/3*2+1)/3
	suite.InDelta(100-100/(1+(2.0/3.0)/(5.0/9.0)), values[1], 1e-9)
}

func (suite *RSITestSuite) TestValuesStayInRange() {
	rsi := NewRSI()
	suite.Require().NoError(rsi.Config(5))

	values, err := rsi.Calculate(candlesFromCloses(10, 12, 9, 14, 13, 15, 8, 9, 11, 10, 16, 7))
	suite.Require().NoError(err)

	for _, v := range values {
		suite.GreaterOrEqual(v, 0.0)
		suite.LessOrEqual(v, 100.0)
	}
}
