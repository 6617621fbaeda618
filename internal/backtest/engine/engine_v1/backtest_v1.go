package engine

import (
	"context"
	"time"

	"github.com/rxtech-lab/coin-signal/internal/backtest/engine"
	"github.com/rxtech-lab/coin-signal/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/coin-signal/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/coin-signal/internal/input"
	"github.com/rxtech-lab/coin-signal/internal/logger"
	"github.com/rxtech-lab/coin-signal/internal/model"
	"github.com/rxtech-lab/coin-signal/internal/storage"
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/internal/version"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

type BacktestEngineV1 struct {
	config      BacktestEngineV1Config
	log         *logger.Logger
	inputs      []input.SignalInput
	model       model.TradingModel
	commission  commission_fee.CommissionFee
	datasource  datasource.CandleSource
	store       storage.ResultStore
	initialized bool
	// now stamps created_at on runs
	now func() time.Time
}

func NewBacktestEngineV1() engine.Engine {
	return NewBacktestEngineV1WithLogger(nil)
}

// NewBacktestEngineV1WithLogger creates an engine logging to log. A nil log
// gets a production logger on Initialize.
func NewBacktestEngineV1WithLogger(log *logger.Logger) engine.Engine {
	return &BacktestEngineV1{
		config:      EmptyConfig(),
		log:         log,
		inputs:      nil,
		model:       nil,
		commission:  nil,
		datasource:  nil,
		store:       nil,
		initialized: false,
		now:         time.Now,
	}
}

// Initialize implements engine.Engine.
// Every input and model is built and cross-checked here so that a bad document
// fails before any candle is read.
func (b *BacktestEngineV1) Initialize(config string) error {
	b.initialized = false

	if b.log == nil {
		log, err := logger.NewLogger()
		if err != nil {
			return err
		}

		b.log = log
	}

	parsed := EmptyConfig()
	// Strict so a misspelled key fails instead of keeping its default
	if err := yaml.UnmarshalStrict([]byte(config), &parsed); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse backtest config", err)
	}

	if err := parsed.Validate(); err != nil {
		return err
	}

	if parsed.Version != "" {
		if err := version.CheckVersionCompatibility(version.GetVersion(), parsed.Version); err != nil {
			return err
		}
	}

	inputs, err := input.NewRegistry().BuildAll(parsed.Inputs)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(inputs))
	for _, in := range inputs {
		names = append(names, in.Name())
	}

	tradingModel, err := model.NewRegistry().Select(parsed.Models, parsed.Backtest.Model, names)
	if err != nil {
		return err
	}

	b.config = parsed
	b.inputs = inputs
	b.model = tradingModel
	b.commission = commission_fee.GetCommissionFeeHandler(parsed.Backtest.Exchange, parsed.Backtest.Costs.FeeBpsOverrides)
	b.initialized = true

	b.log.Info("Backtest engine initialized",
		zap.Strings("inputs", names),
		zap.String("model", tradingModel.Name()),
		zap.String("exchange", string(parsed.Backtest.Exchange)),
		zap.String("symbol", parsed.Backtest.Symbol),
		zap.String("timeframe", string(parsed.Backtest.Timeframe)),
		zap.Float64("fee_bps", b.commission.Bps()),
	)

	return nil
}

// SetDataSource implements engine.Engine.
func (b *BacktestEngineV1) SetDataSource(dataSource datasource.CandleSource) error {
	if dataSource == nil {
		return errors.New(errors.ErrCodeDataSourceNotSet, "data source cannot be nil")
	}

	b.datasource = dataSource

	return nil
}

// SetResultStore implements engine.Engine.
func (b *BacktestEngineV1) SetResultStore(store storage.ResultStore) error {
	b.store = store

	return nil
}

// Run implements engine.Engine.
// A persistence failure still returns the computed output next to the error so
// the caller can retry saving without recomputing.
func (b *BacktestEngineV1) Run(ctx context.Context, callbacks engine.LifecycleCallbacks) (engine.Output, error) {
	if err := b.preRunCheck(); err != nil {
		return engine.Output{}, err
	}

	if err := ctx.Err(); err != nil {
		return engine.Output{}, errors.Wrap(errors.ErrCodeBacktestCancelled, "backtest cancelled before loading candles", err)
	}

	cfg := b.config.Backtest

	candles, err := b.datasource.GetCandles(ctx, cfg.Exchange, cfg.Symbol, cfg.Timeframe, cfg.StartTime, cfg.EndTime)
	if err != nil {
		return engine.Output{}, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to load candles for %s %s", cfg.Exchange, cfg.Symbol)
	}

	if callbacks.OnRunStart != nil {
		if err := (*callbacks.OnRunStart)(len(candles)); err != nil {
			return engine.Output{}, errors.Wrap(errors.ErrCodeCallbackFailed, "run start callback failed", err)
		}
	}

	output, err := b.simulate(candles, callbacks.OnProcessData)
	if err != nil {
		return engine.Output{}, err
	}

	persistErr := b.persist(ctx, output)

	if callbacks.OnRunEnd != nil {
		(*callbacks.OnRunEnd)(output.Run)
	}

	return output, persistErr
}

// Simulate implements engine.Engine.
func (b *BacktestEngineV1) Simulate(candles []types.Candle) (engine.Output, error) {
	if !b.initialized {
		return engine.Output{}, errors.New(errors.ErrCodeBacktestInitFailed, "engine is not initialized")
	}

	return b.simulate(candles, nil)
}

// GetConfigSchema implements engine.Engine.
func (b *BacktestEngineV1) GetConfigSchema() (string, error) {
	config := b.config

	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to generate schema", err)
	}

	return schema, nil
}

// simulate walks every candle but the last, which only serves as the fill
// reference for the decision before it. All state is local to the call.
func (b *BacktestEngineV1) simulate(candles []types.Candle, onProcessData *engine.OnProcessDataCallback) (engine.Output, error) {
	cfg := b.config.Backtest

	required := max(2, input.MaxRequiredCandles(b.inputs))
	if len(candles) < required {
		return engine.Output{}, errors.NewInsufficientDataError(required, len(candles), cfg.Symbol)
	}

	series := make(map[string]input.Series, len(b.inputs))

	for _, in := range b.inputs {
		values, err := in.Series(candles)
		if err != nil {
			return engine.Output{}, err
		}

		series[in.Name()] = values
	}

	state := NewBacktestState(cfg.InitialCapital)
	trading := NewBacktestTrading(state, cfg, b.commission, b.log)
	requiredInputs := b.model.RequiredInputs()
	steps := len(candles) - 1

	for i := 0; i < steps; i++ {
		if snapshot, ok := snapshotAt(series, requiredInputs, i); ok {
			switch b.model.Evaluate(snapshot) {
			case types.ActionBuy:
				trading.Enter(i, candles)
			case types.ActionSell:
				trading.Exit(i, candles)
			case types.ActionHold:
			}
		}

		state.RecordEquity(candles[i].Close)

		if onProcessData != nil {
			if err := (*onProcessData)(i+1, steps); err != nil {
				return engine.Output{}, errors.Wrap(errors.ErrCodeCallbackFailed, "process data callback failed", err)
			}
		}
	}

	trading.ForceExit(candles[len(candles)-1])
	state.RecordCash()

	run := buildRun(state, cfg, b.model.Name(), version.GetVersion(), b.now().UTC())

	b.log.Info("Backtest completed",
		zap.String("run_id", run.RunID),
		zap.String("model", run.ModelName),
		zap.Int("candles", len(candles)),
		zap.Int("trades", run.TradeCount),
		zap.Float64("final_equity", run.FinalEquity),
		zap.Float64("total_return_pct", run.TotalReturnPct),
		zap.Float64("max_drawdown_pct", run.MaxDrawdownPct),
	)

	return engine.Output{
		Run:         run,
		Trades:      state.Trades(),
		EquityCurve: state.EquityCurve(),
	}, nil
}

func (b *BacktestEngineV1) persist(ctx context.Context, output engine.Output) error {
	if b.store == nil {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestCancelled, "backtest cancelled before saving results", err)
	}

	if err := b.store.SaveRun(ctx, output.Run, output.Trades); err != nil {
		return errors.Wrapf(errors.ErrCodePersistFailed, err, "failed to save run %s", output.Run.RunID)
	}

	return nil
}

func (b *BacktestEngineV1) preRunCheck() error {
	if !b.initialized {
		return errors.New(errors.ErrCodeBacktestInitFailed, "engine is not initialized")
	}

	if b.datasource == nil {
		return errors.New(errors.ErrCodeDataSourceNotSet, "data source is not set")
	}

	return nil
}

// snapshotAt gathers the values of names at index. It reports false when any
// of them has no value yet.
func snapshotAt(series map[string]input.Series, names []string, index int) (model.Snapshot, bool) {
	snapshot := make(model.Snapshot, len(names))

	for _, name := range names {
		value := series[name].At(index)
		if value.IsNone() {
			return nil, false
		}

		snapshot[name] = value.Unwrap()
	}

	return snapshot, true
}
