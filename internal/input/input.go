// Package input turns candles into named feature series aligned to the candle axis.
package input

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/coin-signal/internal/types"
)

// Series holds one optional value per candle. Entries before an indicator's
// lookback is satisfied are None.
type Series []optional.Option[float64]

// Config declares a named input.
type Config struct {
	Name   string         `yaml:"name" json:"name" jsonschema:"title=Name,description=Unique name that models reference" validate:"required"`
	Kind   string         `yaml:"kind" json:"kind" jsonschema:"title=Kind,enum=close,enum=rsi,enum=sma,enum=ema,enum=macd,enum=bollinger,enum=volume_ma,enum=volume_surge,enum=atr" validate:"required"`
	Params map[string]any `yaml:"params,omitempty" json:"params,omitempty" jsonschema:"title=Params,description=Kind specific parameters; unset ones take their defaults"`
}

// SignalInput is a named feature computed over the whole candle history.
type SignalInput interface {
	// Name returns the name models use to reference this input
	Name() string
	// RequiredCandles is the minimum history needed for at least one value
	RequiredCandles() int
	// Series returns exactly len(candles) entries
	Series(candles []types.Candle) (Series, error)
}

// DefaultInputs is used when no inputs are configured.
func DefaultInputs() []Config {
	return []Config{
		{
			Name:   "rsi_14",
			Kind:   string(types.IndicatorTypeRSI),
			Params: map[string]any{"period": 14},
		},
	}
}

// Align right-aligns values onto a series of length n. The first n-len(values)
// entries are None.
func Align(values []float64, n int) Series {
	series := make(Series, n)

	offset := n - len(values)
	if offset < 0 {
		values = values[-offset:]
		offset = 0
	}

	for i := 0; i < offset; i++ {
		series[i] = optional.None[float64]()
	}

	for i, v := range values {
		series[offset+i] = optional.Some(v)
	}

	return series
}

// At returns the value at index i, or None when i is out of range.
func (s Series) At(i int) optional.Option[float64] {
	if i < 0 || i >= len(s) {
		return optional.None[float64]()
	}

	return s[i]
}
