package indicator

import (
	"math"

	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
)

// RSI represents the Relative Strength Index indicator using Wilder's smoothing.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() Indicator {
	return &RSI{
		period: 14, // Default period
	}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Config configures the RSI indicator. Expected parameters: period (int).
func (r *RSI) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, err := periodParam(params[0], "period")
	if err != nil {
		return err
	}

	r.period = period

	return nil
}

// RequiredCandles returns period+1 since RSI works on deltas between closes.
func (r *RSI) RequiredCandles() int {
	return r.period + 1
}

// Calculate returns len(candles)-period RSI values.
func (r *RSI) Calculate(candles []types.Candle) ([]float64, error) {
	if err := checkLength(candles, r.RequiredCandles(), r.Name()); err != nil {
		return nil, err
	}

	closes := types.Closes(candles)
	period := float64(r.period)

	gains := make([]float64, len(closes)-1)
	losses := make([]float64, len(closes)-1)

	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gains[i-1] = math.Max(delta, 0)
		losses[i-1] = math.Max(-delta, 0)
	}

	avgGain := mean(gains[:r.period])
	avgLoss := mean(losses[:r.period])

	result := make([]float64, 0, len(closes)-r.period)
	result = append(result, relativeStrength(avgGain, avgLoss))

	for i := r.period; i < len(gains); i++ {
		avgGain = (avgGain*(period-1) + gains[i]) / period
		avgLoss = (avgLoss*(period-1) + losses[i]) / period
		result = append(result, relativeStrength(avgGain, avgLoss))
	}

	return result, nil
}

func relativeStrength(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}

	return 100 - 100/(1+avgGain/avgLoss)
}
