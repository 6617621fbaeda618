package indicator

import (
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
)

// VolumeMA is a simple moving average over traded volume.
type VolumeMA struct {
	period int
}

// NewVolumeMA creates a new VolumeMA indicator with default configuration.
func NewVolumeMA() Indicator {
	return &VolumeMA{
		period: 20, // Default period
	}
}

// Name returns the name of the indicator.
func (v *VolumeMA) Name() types.IndicatorType {
	return types.IndicatorTypeVolumeMA
}

// Config configures the VolumeMA indicator. Expected parameters: period (int).
func (v *VolumeMA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, err := periodParam(params[0], "period")
	if err != nil {
		return err
	}

	v.period = period

	return nil
}

// RequiredCandles returns the period.
func (v *VolumeMA) RequiredCandles() int {
	return v.period
}

// Calculate returns the mean volume of every period-length window.
func (v *VolumeMA) Calculate(candles []types.Candle) ([]float64, error) {
	if err := checkLength(candles, v.RequiredCandles(), v.Name()); err != nil {
		return nil, err
	}

	return simpleMovingAverage(types.Volumes(candles), v.period), nil
}

// DetectSurges flags every window whose last volume is strictly greater than
// multiplier times the window's average volume. The result is aligned with Calculate.
func (v *VolumeMA) DetectSurges(candles []types.Candle, multiplier float64) ([]bool, error) {
	if multiplier <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidMultiplier, "multiplier must be greater than 0, got %v", multiplier)
	}

	averages, err := v.Calculate(candles)
	if err != nil {
		return nil, err
	}

	surges := make([]bool, len(averages))
	for i, avg := range averages {
		surges[i] = candles[i+v.period-1].Volume > avg*multiplier
	}

	return surges, nil
}
