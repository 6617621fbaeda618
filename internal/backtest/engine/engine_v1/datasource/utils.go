package datasource

import (
	"sort"
	"time"

	"github.com/rxtech-lab/coin-signal/internal/types"
)

// normalize sorts candles by open time and keeps the last candle seen for
// each open time.
func normalize(candles []types.Candle) []types.Candle {
	sort.SliceStable(candles, func(i, j int) bool {
		return candles[i].OpenTime.Before(candles[j].OpenTime)
	})

	result := make([]types.Candle, 0, len(candles))
	for _, candle := range candles {
		if n := len(result); n > 0 && result[n-1].OpenTime.Equal(candle.OpenTime) {
			result[n-1] = candle

			continue
		}

		result = append(result, candle)
	}

	return result
}

func inWindow(t time.Time, start time.Time, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
