package writer

import (
	"time"

	"github.com/rxtech-lab/coin-signal/internal/types"
)

// MarketDataWriter defines the interface for writing candles to a destination.
type MarketDataWriter interface {
	// Initialize sets up the writer, potentially creating tables or files.
	Initialize() error
	// Write persists a single candle.
	Write(candle types.Candle) error
	// Finalize completes the writing process (e.g., commits transactions, exports files).
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
	// GetOutputPath returns the configured output location.
	GetOutputPath() string
}

// CandleRow is the on-disk layout of a candle in parquet files. open_time is
// unix milliseconds so that DuckDB and parquet readers agree without timezone
// handling.
type CandleRow struct {
	Exchange  string  `parquet:"exchange"`
	Symbol    string  `parquet:"symbol"`
	Timeframe string  `parquet:"timeframe"`
	OpenTime  int64   `parquet:"open_time"`
	Open      float64 `parquet:"open"`
	High      float64 `parquet:"high"`
	Low       float64 `parquet:"low"`
	Close     float64 `parquet:"close"`
	Volume    float64 `parquet:"volume"`
}

func NewCandleRow(c types.Candle) CandleRow {
	return CandleRow{
		Exchange:  string(c.Exchange),
		Symbol:    c.Symbol,
		Timeframe: string(c.Timeframe),
		OpenTime:  c.OpenTime.UnixMilli(),
		Open:      c.Open,
		High:      c.High,
		Low:       c.Low,
		Close:     c.Close,
		Volume:    c.Volume,
	}
}

func (r CandleRow) Candle() types.Candle {
	return types.Candle{
		Exchange:  types.Exchange(r.Exchange),
		Symbol:    r.Symbol,
		Timeframe: types.Timeframe(r.Timeframe),
		OpenTime:  time.UnixMilli(r.OpenTime).UTC(),
		Open:      r.Open,
		High:      r.High,
		Low:       r.Low,
		Close:     r.Close,
		Volume:    r.Volume,
	}
}
