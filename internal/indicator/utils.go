package indicator

import (
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
)

// periodParam reads a positive period from a positional Config parameter.
// Whole float64 values are accepted since YAML and JSON decoders may produce them.
func periodParam(value any, field string) (int, error) {
	var period int

	switch v := value.(type) {
	case int:
		period = v
	case int64:
		period = int(v)
	case float64:
		if v != float64(int(v)) {
			return 0, errors.Newf(errors.ErrCodeInvalidType, "%s must be a whole number, got %v", field, v)
		}

		period = int(v)
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected int", field)
	}

	if period <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a positive integer, got %d", field, period)
	}

	return period, nil
}

// multiplierParam reads a strictly positive multiplier from a positional Config parameter.
func multiplierParam(value any, field string) (float64, error) {
	var multiplier float64

	switch v := value.(type) {
	case float64:
		multiplier = v
	case int:
		multiplier = float64(v)
	case int64:
		multiplier = float64(v)
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected float64", field)
	}

	if multiplier <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidMultiplier, "%s must be greater than 0, got %v", field, multiplier)
	}

	return multiplier, nil
}

func checkLength(candles []types.Candle, required int, name types.IndicatorType) error {
	if len(candles) < required {
		return errors.NewInsufficientDataError(required, len(candles), string(name))
	}

	return nil
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// simpleMovingAverage returns one mean per full window, len(values)-period+1 values.
// The caller guarantees len(values) >= period.
func simpleMovingAverage(values []float64, period int) []float64 {
	result := make([]float64, 0, len(values)-period+1)
	for end := period; end <= len(values); end++ {
		result = append(result, mean(values[end-period:end]))
	}

	return result
}

// exponentialMovingAverage seeds with the mean of the first period values and then
// applies ema = value*k + ema*(1-k) with k = 2/(period+1).
// It returns len(values)-period+1 values. The caller guarantees len(values) >= period.
func exponentialMovingAverage(values []float64, period int) []float64 {
	alpha := 2.0 / float64(period+1)

	ema := mean(values[:period])
	result := make([]float64, 0, len(values)-period+1)
	result = append(result, ema)

	for _, value := range values[period:] {
		ema = value*alpha + ema*(1-alpha)
		result = append(result, ema)
	}

	return result
}
