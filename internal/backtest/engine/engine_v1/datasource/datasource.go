package datasource

import (
	"context"
	"time"

	"github.com/rxtech-lab/coin-signal/internal/types"
)

// CandleSource loads the candle window a backtest runs over.
// Both bounds are inclusive on open_time. Results are ascending with no duplicate
// open_time. Failures are ErrCodeQueryFailed, never a silently empty slice.
type CandleSource interface {
	GetCandles(ctx context.Context, exchange types.Exchange, symbol string, timeframe types.Timeframe, start time.Time, end time.Time) ([]types.Candle, error)
}
