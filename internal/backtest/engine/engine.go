package engine

import (
	"context"

	"github.com/rxtech-lab/coin-signal/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/coin-signal/internal/storage"
	"github.com/rxtech-lab/coin-signal/internal/types"
)

// Lifecycle callback types for backtest phases
// All callbacks with error return can abort execution if they return an error

// OnRunStartCallback is called once the candle window is loaded, before the simulation begins.
type OnRunStartCallback func(totalCandles int) error

// OnProcessDataCallback is called for each simulated candle.
type OnProcessDataCallback func(current int, total int) error

// OnRunEndCallback is called with the assembled run once the simulation completes.
type OnRunEndCallback func(run types.Run)

// LifecycleCallbacks holds all lifecycle callback functions for the backtest engine.
// All fields are pointers - nil means no callback will be invoked.
type LifecycleCallbacks struct {
	OnRunStart    *OnRunStartCallback
	OnProcessData *OnProcessDataCallback
	OnRunEnd      *OnRunEndCallback
}

// Output is everything one backtest produces.
type Output struct {
	Run    types.Run
	Trades []types.Trade
	// EquityCurve holds one point per simulated step plus the final equity
	EquityCurve []float64
}

type Engine interface {
	// Initialize parses, validates and builds everything the run needs from a YAML document.
	Initialize(config string) error
	// SetDataSource sets the candle source the run reads its window from.
	SetDataSource(dataSource datasource.CandleSource) error
	// SetResultStore sets the store completed runs are persisted to. Optional.
	SetResultStore(store storage.ResultStore) error
	// Run fetches candles, simulates, and persists the result.
	// The context is only checked around the fetch and the persistence.
	Run(ctx context.Context, callbacks LifecycleCallbacks) (Output, error)
	// Simulate runs the pure simulation over candles the caller already holds.
	Simulate(candles []types.Candle) (Output, error)
	// GetConfigSchema returns the schema of the engine configuration
	GetConfigSchema() (string, error)
}
