package indicator

import (
	"github.com/rxtech-lab/coin-signal/internal/types"
)

// Indicator interface defines methods that any technical indicator must implement.
// Indicators are pure: Calculate keeps no state between calls and never re-sorts
// its input, so candles must already be ascending by open time.
type Indicator interface {
	// Name returns the kind of the indicator
	Name() types.IndicatorType
	// Config sets the positional parameters of the indicator
	Config(params ...any) error
	// RequiredCandles is the minimum input length that yields at least one value
	RequiredCandles() int
	// Calculate returns the indicator series, shorter than candles by the indicator lookback
	Calculate(candles []types.Candle) ([]float64, error)
}
