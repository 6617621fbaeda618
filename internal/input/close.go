package input

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/coin-signal/internal/types"
)

// CloseInput exposes the raw close price.
type CloseInput struct {
	name string
}

// NewCloseInput creates a close price input.
func NewCloseInput(name string) SignalInput {
	return &CloseInput{name: name}
}

func (c *CloseInput) Name() string {
	return c.name
}

func (c *CloseInput) RequiredCandles() int {
	return 1
}

// Series never fails and never holds None.
func (c *CloseInput) Series(candles []types.Candle) (Series, error) {
	series := make(Series, len(candles))
	for i, candle := range candles {
		series[i] = optional.Some(candle.Close)
	}

	return series, nil
}
