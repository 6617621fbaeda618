package indicator

import (
	"time"

	"github.com/rxtech-lab/coin-signal/internal/types"
)

var testStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// candlesFromCloses builds hourly candles whose open, high and low all equal the close.
func candlesFromCloses(closes ...float64) []types.Candle {
	candles := make([]types.Candle, len(closes))
	for i, c := range closes {
		candles[i] = types.Candle{
			Exchange:  types.ExchangeUpbit,
			Symbol:    "KRW-BTC",
			Timeframe: types.Timeframe1h,
			OpenTime:  testStart.Add(time.Duration(i) * time.Hour),
			Open:      c,
			High:      c,
			Low:       c,
			Close:     c,
			Volume:    1,
		}
	}

	return candles
}

func flatCandles(value float64, count int) []types.Candle {
	closes := make([]float64, count)
	for i := range closes {
		closes[i] = value
	}

	return candlesFromCloses(closes...)
}
