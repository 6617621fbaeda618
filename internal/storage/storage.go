// Package storage persists candles and backtest results in an embedded SQL database.
package storage

import (
	"context"
	"time"

	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
)

const (
	DefaultRunsLimit   = 10
	DefaultTradesLimit = 20
)

// Page selects a window of a listing. A non-positive Limit falls back to the
// listing's default.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) normalize(defaultLimit int) Page {
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}

	if p.Offset < 0 {
		p.Offset = 0
	}

	return p
}

// ResultStore persists completed backtests.
type ResultStore interface {
	// SaveRun writes the run and its trades as one unit.
	SaveRun(ctx context.Context, run types.Run, trades []types.Trade) error
	// ListRuns returns runs newest first.
	ListRuns(ctx context.Context, page Page) ([]types.Run, error)
	// GetRun fails with ErrCodeRunNotFound when runID is unknown.
	GetRun(ctx context.Context, runID string) (types.Run, error)
	// ListTrades returns the trades of a run, most recent exit first.
	ListTrades(ctx context.Context, runID string, page Page) ([]types.Trade, error)
}

// CandleStore persists downloaded candles.
type CandleStore interface {
	UpsertCandles(ctx context.Context, candles []types.Candle) error
	GetCandles(ctx context.Context, exchange types.Exchange, symbol string, timeframe types.Timeframe, start time.Time, end time.Time) ([]types.Candle, error)
}

// Driver names a database/sql driver the store can run on.
type Driver string

const (
	DriverDuckDB Driver = "duckdb"
	DriverSQLite Driver = "sqlite3"
)

func ParseDriver(value string) (Driver, error) {
	switch Driver(value) {
	case DriverDuckDB, DriverSQLite:
		return Driver(value), nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidConfiguration, "unsupported storage driver %q", value)
	}
}
