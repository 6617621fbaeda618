package types

import "time"

// Candle is one OHLCV bar for an (exchange, symbol, timeframe) series.
// Candles are immutable once produced and must be ascending by OpenTime.
type Candle struct {
	Exchange  Exchange  `yaml:"exchange" json:"exchange"`
	Symbol    string    `yaml:"symbol" json:"symbol"`
	Timeframe Timeframe `yaml:"timeframe" json:"timeframe"`
	OpenTime  time.Time `yaml:"open_time" json:"open_time"`
	Open      float64   `yaml:"open" json:"open"`
	High      float64   `yaml:"high" json:"high"`
	Low       float64   `yaml:"low" json:"low"`
	Close     float64   `yaml:"close" json:"close"`
	Volume    float64   `yaml:"volume" json:"volume"`
}

// Closes returns the close prices of the candles in order.
func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}

	return closes
}

// Volumes returns the volumes of the candles in order.
func Volumes(candles []Candle) []float64 {
	volumes := make([]float64, len(candles))
	for i, c := range candles {
		volumes[i] = c.Volume
	}

	return volumes
}
