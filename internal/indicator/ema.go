package indicator

import (
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
)

// EMA represents the Exponential Moving Average indicator.
type EMA struct {
	period int
}

// NewEMA creates a new EMA indicator with default configuration.
func NewEMA() Indicator {
	return &EMA{
		period: 20, // Default period
	}
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Config configures the EMA indicator. Expected parameters: period (int).
func (e *EMA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, err := periodParam(params[0], "period")
	if err != nil {
		return err
	}

	e.period = period

	return nil
}

// RequiredCandles returns the period.
func (e *EMA) RequiredCandles() int {
	return e.period
}

// Calculate seeds with the SMA of the first period closes and then smooths with
// k = 2/(period+1), the same recurrence pandas uses for ewm(span, adjust=False).
func (e *EMA) Calculate(candles []types.Candle) ([]float64, error) {
	if err := checkLength(candles, e.RequiredCandles(), e.Name()); err != nil {
		return nil, err
	}

	return exponentialMovingAverage(types.Closes(candles), e.period), nil
}
