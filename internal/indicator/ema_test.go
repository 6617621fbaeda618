package indicator

import (
	"testing"

	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type EMATestSuite struct {
	suite.Suite
}

func TestEMASuite(t *testing.T) {
	suite.Run(t, new(EMATestSuite))
}

func (suite *EMATestSuite) TestDefaults() {
	ema := NewEMA()
	suite.Equal(types.IndicatorTypeEMA, ema.Name())
	suite.Equal(20, ema.RequiredCandles())
}

func (suite *EMATestSuite) TestConfigRejectsZeroPeriod() {
	ema := NewEMA()
	err := ema.Config(0)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}

func (suite *EMATestSuite) TestCalculateSeedsWithSMA() {
	ema := NewEMA()
	suite.Require().NoError(ema.Config(3))

	// seed = (1+2+3)/3 = 2, k = 0.5
	values, err := ema.Calculate(candlesFromCloses(1, 2, 3, 4, 5))
	suite.Require().NoError(err)
	suite.Equal([]float64{2, 3, 4}, values)
}

func (suite *EMATestSuite) TestCalculateWithReversal() {
	ema := NewEMA()
	suite.Require().NoError(ema.Config(4))

	// k = 0.4, seed = 10
	values, err := ema.Calculate(candlesFromCloses(10, 10, 10, 10, 20, 5))
	suite.Require().NoError(err)
	suite.Require().Len(values, 3)
	suite.InDelta(10.0, values[0], 1e-12)
	suite.InDelta(14.0, values[1], 1e-12)
	suite.InDelta(10.4, values[2], 1e-12)
}

func (suite *EMATestSuite) TestInsufficientData() {
	ema := NewEMA()
	suite.Require().NoError(ema.Config(3))

	_, err := ema.Calculate(candlesFromCloses(1, 2))
	suite.True(errors.IsInsufficientDataError(err))

	values, err := ema.Calculate(candlesFromCloses(1, 2, 3))
	suite.NoError(err)
	suite.Len(values, 1)
}

func (suite *EMATestSuite) TestFlatSeries() {
	ema := NewEMA()
	suite.Require().NoError(ema.Config(5))

	values, err := ema.Calculate(flatCandles(3.3, 25))
	suite.Require().NoError(err)

	for _, v := range values {
		suite.InDelta(3.3, v, 1e-9)
	}
}
