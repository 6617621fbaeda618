package input

import (
	"github.com/rxtech-lab/coin-signal/internal/indicator"
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
)

// CalculateFunc produces the raw, unaligned values of an indicator-backed input.
type CalculateFunc func(candles []types.Candle) ([]float64, error)

// IndicatorInput wraps an indicator and right-aligns its output onto the candle axis.
type IndicatorInput struct {
	name      string
	indicator indicator.Indicator
	calculate CalculateFunc
}

// NewIndicatorInput exposes the indicator's Calculate output under name.
func NewIndicatorInput(name string, ind indicator.Indicator) SignalInput {
	return &IndicatorInput{
		name:      name,
		indicator: ind,
		calculate: ind.Calculate,
	}
}

// NewIndicatorInputWith exposes a derived series of ind, such as a single MACD
// component. calculate must return no more values than ind.Calculate would.
func NewIndicatorInputWith(name string, ind indicator.Indicator, calculate CalculateFunc) SignalInput {
	return &IndicatorInput{
		name:      name,
		indicator: ind,
		calculate: calculate,
	}
}

func (i *IndicatorInput) Name() string {
	return i.name
}

func (i *IndicatorInput) RequiredCandles() int {
	return i.indicator.RequiredCandles()
}

// Kind returns the kind of the wrapped indicator.
func (i *IndicatorInput) Kind() types.IndicatorType {
	return i.indicator.Name()
}

// Series computes the indicator once and pads the front with None.
func (i *IndicatorInput) Series(candles []types.Candle) (Series, error) {
	values, err := i.calculate(candles)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInputCalculation, err, "input %q", i.name)
	}

	return Align(values, len(candles)), nil
}
