package indicator

import (
	"math"

	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
)

// ATR represents the Average True Range indicator.
type ATR struct {
	period int
}

// NewATR creates a new ATR indicator with default configuration.
func NewATR() Indicator {
	return &ATR{
		period: 14, // Default period
	}
}

// Name returns the name of the indicator.
func (a *ATR) Name() types.IndicatorType {
	return types.IndicatorTypeATR
}

// Config configures the ATR indicator. Expected parameters: period (int).
func (a *ATR) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, err := periodParam(params[0], "period")
	if err != nil {
		return err
	}

	a.period = period

	return nil
}

// RequiredCandles returns period+1 since the true range needs the previous close.
func (a *ATR) RequiredCandles() int {
	return a.period + 1
}

// Calculate returns len(candles)-period values. The first is the mean true range of
// the first period bars; later values use Wilder smoothing like RSI.
func (a *ATR) Calculate(candles []types.Candle) ([]float64, error) {
	if err := checkLength(candles, a.RequiredCandles(), a.Name()); err != nil {
		return nil, err
	}

	trueRanges := make([]float64, len(candles)-1)
	for i := 1; i < len(candles); i++ {
		prevClose := candles[i-1].Close
		trueRanges[i-1] = math.Max(
			candles[i].High-candles[i].Low,
			math.Max(math.Abs(candles[i].High-prevClose), math.Abs(candles[i].Low-prevClose)),
		)
	}

	period := float64(a.period)
	atr := mean(trueRanges[:a.period])

	result := make([]float64, 0, len(trueRanges)-a.period+1)
	result = append(result, atr)

	for _, tr := range trueRanges[a.period:] {
		atr = (atr*(period-1) + tr) / period
		result = append(result, atr)
	}

	return result, nil
}
