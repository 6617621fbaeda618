package indicator

import (
	"math"

	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
)

// BollingerBands implements the Indicator interface for Bollinger Bands.
type BollingerBands struct {
	period int     // Number of periods for moving average
	stdDev float64 // Number of standard deviations
}

// Band is one window of Bollinger Bands.
type Band struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// NewBollingerBands creates a new Bollinger Bands indicator with default configuration.
func NewBollingerBands() Indicator {
	return &BollingerBands{
		period: 20,  // Default period
		stdDev: 2.0, // Default standard deviation
	}
}

// Name returns the name of the indicator.
func (bb *BollingerBands) Name() types.IndicatorType {
	return types.IndicatorTypeBollinger
}

// Config configures the Bollinger Bands indicator. Expected parameters: period (int), stdDev (float64).
func (bb *BollingerBands) Config(params ...any) error {
	if len(params) != 2 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 2 parameters: period (int), stdDev (float64)")
	}

	period, err := periodParam(params[0], "period")
	if err != nil {
		return err
	}

	stdDev, err := multiplierParam(params[1], "stdDev")
	if err != nil {
		return err
	}

	bb.period = period
	bb.stdDev = stdDev

	return nil
}

// RequiredCandles returns the period.
func (bb *BollingerBands) RequiredCandles() int {
	return bb.period
}

// Calculate returns the middle band.
func (bb *BollingerBands) Calculate(candles []types.Candle) ([]float64, error) {
	bands, err := bb.CalculateBands(candles)
	if err != nil {
		return nil, err
	}

	result := make([]float64, len(bands))
	for i, band := range bands {
		result[i] = band.Middle
	}

	return result, nil
}

// CalculateBands returns upper, middle and lower bands for every window.
// Variance is the population variance of the window, divided by period.
func (bb *BollingerBands) CalculateBands(candles []types.Candle) ([]Band, error) {
	if err := checkLength(candles, bb.RequiredCandles(), bb.Name()); err != nil {
		return nil, err
	}

	closes := types.Closes(candles)
	middles := simpleMovingAverage(closes, bb.period)
	bands := make([]Band, len(middles))

	for i, middle := range middles {
		variance := 0.0
		for _, c := range closes[i : i+bb.period] {
			variance += (c - middle) * (c - middle)
		}

		width := bb.stdDev * math.Sqrt(variance/float64(bb.period))
		bands[i] = Band{
			Upper:  middle + width,
			Middle: middle,
			Lower:  middle - width,
		}
	}

	return bands, nil
}
