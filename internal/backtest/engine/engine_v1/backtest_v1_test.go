package engine

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/rxtech-lab/coin-signal/internal/backtest/engine"
	"github.com/rxtech-lab/coin-signal/internal/logger"
	"github.com/rxtech-lab/coin-signal/internal/storage"
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/mocks"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BacktestEngineV1TestSuite struct {
	suite.Suite
	ctrl *gomock.Controller
}

func TestBacktestEngineV1Suite(t *testing.T) {
	suite.Run(t, new(BacktestEngineV1TestSuite))
}

func (suite *BacktestEngineV1TestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
}

func (suite *BacktestEngineV1TestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// reversalCloses dips for five bars and recovers for six. RSI(3) reads 0 at
// index 3 and rises above 70 at index 8.
func reversalCloses() []float64 {
	return []float64{100, 99, 98, 97, 96, 95, 96, 97, 98, 99, 100, 101}
}

func (suite *BacktestEngineV1TestSuite) newEngine(config string) *BacktestEngineV1 {
	eng, err := newTestEngine(config)
	suite.Require().NoError(err)

	return eng
}

func (suite *BacktestEngineV1TestSuite) TestSimulateRoundTrip() {
	eng := suite.newEngine(rsiConfig())
	candles := hourlyCandles(reversalCloses()...)

	output, err := eng.Simulate(candles)
	suite.Require().NoError(err)
	suite.Require().Len(output.Trades, 1)

	trade := output.Trades[0]
	suite.Equal(96.0, trade.EntryPrice)
	suite.Equal(candles[4].OpenTime, trade.EntryTime)
	suite.Equal(99.0, trade.ExitPrice)
	suite.Equal(candles[9].OpenTime, trade.ExitTime)
	suite.Equal(types.ExitReasonModelSell, trade.Reason)
	suite.InDelta(3125.0, trade.NetPnL, 1e-6)
	suite.Equal(0.0, trade.FeePaid)

	run := output.Run
	suite.NotEmpty(run.RunID)
	suite.Equal(run.RunID, trade.RunID)
	suite.Equal("reversion", run.ModelName)
	suite.Equal(types.ExchangeUpbit, run.Exchange)
	suite.Equal("KRW-BTC", run.Symbol)
	suite.Equal(1, run.TradeCount)
	suite.Equal(100.0, run.WinRatePct)
	suite.InDelta(1_003_125.0, run.FinalEquity, 1e-6)
	suite.InDelta(0.3125, run.TotalReturnPct, 1e-9)

	suite.Len(output.EquityCurve, len(candles))
	suite.Equal(1_000_000.0, output.EquityCurve[0])
	suite.Equal(run.FinalEquity, output.EquityCurve[len(output.EquityCurve)-1])
}

func (suite *BacktestEngineV1TestSuite) TestSimulateForcesExitOnLastCandle() {
	eng := suite.newEngine(rsiConfig())
	candles := hourlyCandles(declining(8)...)

	output, err := eng.Simulate(candles)
	suite.Require().NoError(err)
	suite.Require().Len(output.Trades, 1)

	trade := output.Trades[0]
	suite.Equal(96.0, trade.EntryPrice)
	suite.Equal(93.0, trade.ExitPrice)
	suite.Equal(candles[7].OpenTime, trade.ExitTime)
	suite.Equal(types.ExitReasonForcedExit, trade.Reason)
	suite.InDelta(-3125.0, trade.NetPnL, 1e-6)

	suite.Equal(0.0, output.Run.WinRatePct)
	suite.Greater(output.Run.MaxDrawdownPct, 0.0)
	suite.InDelta(996_875.0, output.Run.FinalEquity, 1e-6)
	suite.Len(output.EquityCurve, len(candles))
}

func (suite *BacktestEngineV1TestSuite) TestSimulateRespectsCooldown() {
	eng := suite.newEngine(rsiConfig("  risk:\n    max_entries_per_position: 0\n    cooldown_bars: 3"))

	output, err := eng.Simulate(hourlyCandles(declining(14)...))
	suite.Require().NoError(err)

	// RSI reads 0 from index 3 on; fills land at 4, 8 and 12
	suite.Require().Len(output.Trades, 3)
	suite.Equal(96.0, output.Trades[0].EntryPrice)
	suite.Equal(92.0, output.Trades[1].EntryPrice)
	suite.Equal(88.0, output.Trades[2].EntryPrice)

	for _, trade := range output.Trades {
		suite.Equal(types.ExitReasonForcedExit, trade.Reason)
		suite.Equal(87.0, trade.ExitPrice)
	}
}

func (suite *BacktestEngineV1TestSuite) TestSimulateCapsOpenLots() {
	eng := suite.newEngine(rsiConfig("  risk:\n    max_entries_per_position: 1\n    cooldown_bars: 0"))

	output, err := eng.Simulate(hourlyCandles(declining(14)...))
	suite.Require().NoError(err)
	suite.Len(output.Trades, 1)
}

func (suite *BacktestEngineV1TestSuite) TestSimulateWithoutSignalHoldsCash() {
	eng := suite.newEngine(rsiConfig())
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100
	}

	output, err := eng.Simulate(hourlyCandles(closes...))
	suite.Require().NoError(err)

	suite.Empty(output.Trades)
	suite.Equal(0, output.Run.TradeCount)
	suite.Equal(0.0, output.Run.WinRatePct)
	suite.Equal(0.0, output.Run.TotalReturnPct)
	suite.Equal(0.0, output.Run.MaxDrawdownPct)

	for _, point := range output.EquityCurve {
		suite.Equal(1_000_000.0, point)
	}
}

func (suite *BacktestEngineV1TestSuite) TestSimulateIsDeterministic() {
	generator := mocks.NewDataGenerator(42)
	config := mocks.DefaultConfig()
	config.Count = 2000
	config.Volatility = 0.01
	candles := generator.Generate(config)

	eng := suite.newEngine(rsiConfig())
	fixed := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	eng.now = func() time.Time { return fixed }

	first, err := eng.Simulate(candles)
	suite.Require().NoError(err)
	second, err := eng.Simulate(candles)
	suite.Require().NoError(err)

	suite.NotEqual(first.Run.RunID, second.Run.RunID)
	suite.NotEmpty(first.Trades)

	first.Run.RunID, second.Run.RunID = "", ""
	for i := range first.Trades {
		first.Trades[i].RunID = ""
	}

	for i := range second.Trades {
		second.Trades[i].RunID = ""
	}

	suite.Equal(first.Run, second.Run)
	suite.Equal(first.Trades, second.Trades)
	suite.Equal(first.EquityCurve, second.EquityCurve)
}

func (suite *BacktestEngineV1TestSuite) TestSimulateInsufficientData() {
	eng := suite.newEngine(rsiConfig())

	_, err := eng.Simulate(hourlyCandles(100, 99, 98))
	suite.Require().Error(err)
	suite.True(errors.IsInsufficientDataError(err))

	var insufficient *errors.InsufficientDataError
	suite.Require().True(errors.As(err, &insufficient))
	suite.Equal(4, insufficient.Required)
	suite.Equal(3, insufficient.Available)
}

func (suite *BacktestEngineV1TestSuite) TestSimulateRequiresInitialize() {
	eng := NewBacktestEngineV1WithLogger(logger.NewNopLogger())

	_, err := eng.Simulate(hourlyCandles(reversalCloses()...))
	suite.True(errors.HasCode(err, errors.ErrCodeBacktestInitFailed))
}

func (suite *BacktestEngineV1TestSuite) TestInitializeRejectsBadDocument() {
	eng := NewBacktestEngineV1WithLogger(logger.NewNopLogger())

	err := eng.Initialize("backtest: [not, a, map]")
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))

	_, err = eng.Simulate(hourlyCandles(reversalCloses()...))
	suite.True(errors.HasCode(err, errors.ErrCodeBacktestInitFailed))
}

func (suite *BacktestEngineV1TestSuite) TestInitializeRejectsUnknownKeys() {
	documents := []struct {
		name     string
		document string
		key      string
	}{
		{
			name:     "misspelled risk field",
			document: rsiConfig() + "  risk:\n    cooldown_bar: 0\n",
			key:      "cooldown_bar",
		},
		{
			name:     "unknown top level section",
			document: rsiConfig() + "strategy:\n  name: x\n",
			key:      "strategy",
		},
		{
			name:     "unknown input field",
			document: strings.Replace(rsiConfig(), "    params:\n      period: 3\n", "    period: 3\n", 1),
			key:      "period",
		},
	}

	for _, tc := range documents {
		suite.Run(tc.name, func() {
			eng := NewBacktestEngineV1WithLogger(logger.NewNopLogger())

			err := eng.Initialize(tc.document)
			suite.Require().Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
			suite.Contains(err.Error(), tc.key)
		})
	}
}

func (suite *BacktestEngineV1TestSuite) TestRunRequiresDataSource() {
	eng := suite.newEngine(rsiConfig())

	_, err := eng.Run(context.Background(), engine.LifecycleCallbacks{})
	suite.True(errors.HasCode(err, errors.ErrCodeDataSourceNotSet))

	suite.True(errors.HasCode(eng.SetDataSource(nil), errors.ErrCodeDataSourceNotSet))
}

func (suite *BacktestEngineV1TestSuite) TestRunLoadsWindowAndPersists() {
	candles := hourlyCandles(reversalCloses()...)
	source := mocks.NewMockCandleSource(suite.ctrl)
	store := mocks.NewMockResultStore(suite.ctrl)

	var start, end time.Time
	source.EXPECT().
		GetCandles(gomock.Any(), types.ExchangeUpbit, "KRW-BTC", types.Timeframe1h, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ types.Exchange, _ string, _ types.Timeframe, from time.Time, to time.Time) ([]types.Candle, error) {
			start, end = from, to

			return candles, nil
		})

	var saved types.Run
	store.EXPECT().
		SaveRun(gomock.Any(), gomock.Any(), gomock.Len(1)).
		DoAndReturn(func(_ context.Context, run types.Run, _ []types.Trade) error {
			saved = run

			return nil
		})

	eng := suite.newEngine(rsiConfig())
	suite.Require().NoError(eng.SetDataSource(source))
	suite.Require().NoError(eng.SetResultStore(store))

	startedWith := 0
	processed := 0
	lastTotal := 0
	var ended types.Run

	onStart := engine.OnRunStartCallback(func(total int) error {
		startedWith = total

		return nil
	})
	onProcess := engine.OnProcessDataCallback(func(current int, total int) error {
		processed++
		lastTotal = total

		return nil
	})
	onEnd := engine.OnRunEndCallback(func(run types.Run) {
		ended = run
	})

	output, err := eng.Run(context.Background(), engine.LifecycleCallbacks{
		OnRunStart:    &onStart,
		OnProcessData: &onProcess,
		OnRunEnd:      &onEnd,
	})
	suite.Require().NoError(err)

	suite.True(start.Equal(testStart))
	suite.True(end.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	suite.Equal(len(candles), startedWith)
	suite.Equal(len(candles)-1, processed)
	suite.Equal(len(candles)-1, lastTotal)
	suite.Equal(output.Run, saved)
	suite.Equal(output.Run, ended)
}

func (suite *BacktestEngineV1TestSuite) TestRunReturnsOutputWhenPersistFails() {
	source := mocks.NewMockCandleSource(suite.ctrl)
	store := mocks.NewMockResultStore(suite.ctrl)

	source.EXPECT().
		GetCandles(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(hourlyCandles(reversalCloses()...), nil)
	store.EXPECT().
		SaveRun(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(stderrors.New("disk full"))

	eng := suite.newEngine(rsiConfig())
	suite.Require().NoError(eng.SetDataSource(source))
	suite.Require().NoError(eng.SetResultStore(store))

	ended := false
	onEnd := engine.OnRunEndCallback(func(types.Run) { ended = true })

	output, err := eng.Run(context.Background(), engine.LifecycleCallbacks{OnRunEnd: &onEnd})
	suite.True(errors.HasCode(err, errors.ErrCodePersistFailed))
	suite.Len(output.Trades, 1)
	suite.NotEmpty(output.Run.RunID)
	suite.True(ended)
}

func (suite *BacktestEngineV1TestSuite) TestRunCancelledBeforeFetch() {
	source := mocks.NewMockCandleSource(suite.ctrl)

	eng := suite.newEngine(rsiConfig())
	suite.Require().NoError(eng.SetDataSource(source))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.Run(ctx, engine.LifecycleCallbacks{})
	suite.True(errors.HasCode(err, errors.ErrCodeBacktestCancelled))
}

func (suite *BacktestEngineV1TestSuite) TestRunWrapsDataSourceError() {
	source := mocks.NewMockCandleSource(suite.ctrl)
	source.EXPECT().
		GetCandles(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, stderrors.New("connection reset"))

	eng := suite.newEngine(rsiConfig())
	suite.Require().NoError(eng.SetDataSource(source))

	_, err := eng.Run(context.Background(), engine.LifecycleCallbacks{})
	suite.True(errors.HasCode(err, errors.ErrCodeQueryFailed))
}

func (suite *BacktestEngineV1TestSuite) TestRunAbortsOnCallbackError() {
	source := mocks.NewMockCandleSource(suite.ctrl)
	store := mocks.NewMockResultStore(suite.ctrl)
	source.EXPECT().
		GetCandles(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(hourlyCandles(reversalCloses()...), nil).
		Times(2)
	store.EXPECT().SaveRun(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	eng := suite.newEngine(rsiConfig())
	suite.Require().NoError(eng.SetDataSource(source))
	suite.Require().NoError(eng.SetResultStore(store))

	onStart := engine.OnRunStartCallback(func(int) error { return stderrors.New("stop") })
	_, err := eng.Run(context.Background(), engine.LifecycleCallbacks{OnRunStart: &onStart})
	suite.True(errors.HasCode(err, errors.ErrCodeCallbackFailed))

	onProcess := engine.OnProcessDataCallback(func(current int, _ int) error {
		if current == 5 {
			return stderrors.New("stop")
		}

		return nil
	})
	_, err = eng.Run(context.Background(), engine.LifecycleCallbacks{OnProcessData: &onProcess})
	suite.True(errors.HasCode(err, errors.ErrCodeCallbackFailed))
}

func (suite *BacktestEngineV1TestSuite) TestRunAgainstSQLiteStore() {
	store, err := storage.NewSQLStore(storage.DriverSQLite, ":memory:", logger.NewNopLogger())
	suite.Require().NoError(err)
	defer store.Close()

	ctx := context.Background()
	candles := hourlyCandles(reversalCloses()...)
	suite.Require().NoError(store.UpsertCandles(ctx, candles))

	eng := suite.newEngine(rsiConfig())
	suite.Require().NoError(eng.SetDataSource(store))
	suite.Require().NoError(eng.SetResultStore(store))

	output, err := eng.Run(ctx, engine.LifecycleCallbacks{})
	suite.Require().NoError(err)

	run, err := store.GetRun(ctx, output.Run.RunID)
	suite.Require().NoError(err)
	suite.Equal(output.Run.FinalEquity, run.FinalEquity)
	suite.Equal(output.Run.TradeCount, run.TradeCount)

	trades, err := store.ListTrades(ctx, output.Run.RunID, storage.Page{})
	suite.Require().NoError(err)
	suite.Require().Len(trades, 1)
	suite.Equal(output.Trades[0].ExitPrice, trades[0].ExitPrice)
	suite.True(output.Trades[0].ExitTime.Equal(trades[0].ExitTime))
}

func (suite *BacktestEngineV1TestSuite) TestGetConfigSchema() {
	schema, err := NewBacktestEngineV1().GetConfigSchema()
	suite.Require().NoError(err)
	suite.Contains(schema, "backtest-engine-v1-config")
	suite.Contains(schema, "entry_size_percent")
}
