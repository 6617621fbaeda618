package indicator

import (
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
)

// MACD represents the Moving Average Convergence Divergence indicator.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// MACDValue is one aligned point of the MACD line, its signal line and their difference.
type MACDValue struct {
	MACD      float64
	Signal    float64
	Histogram float64
}

// NewMACD creates a new MACD indicator with default configuration.
func NewMACD() Indicator {
	return &MACD{
		fastPeriod:   12, // Default fast period
		slowPeriod:   26, // Default slow period
		signalPeriod: 9,  // Default signal period
	}
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Config configures the MACD indicator. Expected parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int).
func (m *MACD) Config(params ...any) error {
	if len(params) != 3 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 3 parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int)")
	}

	fastPeriod, err := periodParam(params[0], "fastPeriod")
	if err != nil {
		return err
	}

	slowPeriod, err := periodParam(params[1], "slowPeriod")
	if err != nil {
		return err
	}

	signalPeriod, err := periodParam(params[2], "signalPeriod")
	if err != nil {
		return err
	}

	if fastPeriod >= slowPeriod {
		return errors.Newf(errors.ErrCodeInvalidParameter, "fastPeriod (%d) must be less than slowPeriod (%d)", fastPeriod, slowPeriod)
	}

	m.fastPeriod = fastPeriod
	m.slowPeriod = slowPeriod
	m.signalPeriod = signalPeriod

	return nil
}

// RequiredCandles returns slowPeriod+signalPeriod. At exactly that length
// Calculate yields two values.
func (m *MACD) RequiredCandles() int {
	return m.slowPeriod + m.signalPeriod
}

// Calculate returns the MACD line aligned with its signal line.
func (m *MACD) Calculate(candles []types.Candle) ([]float64, error) {
	values, err := m.CalculateFull(candles)
	if err != nil {
		return nil, err
	}

	result := make([]float64, len(values))
	for i, v := range values {
		result[i] = v.MACD
	}

	return result, nil
}

// CalculateFull returns the MACD line, signal line and histogram, all aligned to
// the signal line. The result has len(candles)-slowPeriod-signalPeriod+2 values.
func (m *MACD) CalculateFull(candles []types.Candle) ([]MACDValue, error) {
	if err := checkLength(candles, m.RequiredCandles(), m.Name()); err != nil {
		return nil, err
	}

	closes := types.Closes(candles)
	fast := exponentialMovingAverage(closes, m.fastPeriod)
	slow := exponentialMovingAverage(closes, m.slowPeriod)

	// the fast series starts slowPeriod-fastPeriod closes earlier
	offset := m.slowPeriod - m.fastPeriod
	macdLine := make([]float64, len(slow))

	for i := range slow {
		macdLine[i] = fast[i+offset] - slow[i]
	}

	signalLine := exponentialMovingAverage(macdLine, m.signalPeriod)
	aligned := macdLine[m.signalPeriod-1:]

	result := make([]MACDValue, len(signalLine))
	for i, signal := range signalLine {
		result[i] = MACDValue{
			MACD:      aligned[i],
			Signal:    signal,
			Histogram: aligned[i] - signal,
		}
	}

	return result, nil
}
