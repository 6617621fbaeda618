package datasource

import (
	"context"
	"sync"
	"time"

	"github.com/rxtech-lab/coin-signal/internal/types"
)

// InMemoryDataSource serves candles from a slice held in memory.
type InMemoryDataSource struct {
	candles []types.Candle
	mu      sync.RWMutex
}

func NewInMemoryDataSource(candles []types.Candle) *InMemoryDataSource {
	ds := &InMemoryDataSource{}
	ds.Add(candles...)

	return ds
}

// Add appends candles. Later candles replace earlier ones with the same key.
func (ds *InMemoryDataSource) Add(candles ...types.Candle) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ds.candles = append(ds.candles, candles...)
}

// GetCandles implements CandleSource.
func (ds *InMemoryDataSource) GetCandles(_ context.Context, exchange types.Exchange, symbol string, timeframe types.Timeframe, start time.Time, end time.Time) ([]types.Candle, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	matched := make([]types.Candle, 0)

	for _, candle := range ds.candles {
		if candle.Exchange != exchange || candle.Symbol != symbol || candle.Timeframe != timeframe {
			continue
		}

		if !inWindow(candle.OpenTime, start, end) {
			continue
		}

		matched = append(matched, candle)
	}

	return normalize(matched), nil
}
