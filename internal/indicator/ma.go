package indicator

import (
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
)

// SMA indicator implements Simple Moving Average calculation over close prices.
type SMA struct {
	period int
}

// NewSMA creates a new SMA indicator with default configuration.
func NewSMA() Indicator {
	return &SMA{
		period: 20, // Default period
	}
}

// Name returns the name of the indicator.
func (m *SMA) Name() types.IndicatorType {
	return types.IndicatorTypeSMA
}

// Config configures the SMA indicator. Expected parameters: period (int).
func (m *SMA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, err := periodParam(params[0], "period")
	if err != nil {
		return err
	}

	m.period = period

	return nil
}

// RequiredCandles returns the period.
func (m *SMA) RequiredCandles() int {
	return m.period
}

// Calculate returns the mean close of every period-length window.
func (m *SMA) Calculate(candles []types.Candle) ([]float64, error) {
	if err := checkLength(candles, m.RequiredCandles(), m.Name()); err != nil {
		return nil, err
	}

	return simpleMovingAverage(types.Closes(candles), m.period), nil
}
