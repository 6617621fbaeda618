package engine

import (
	"strings"
	"time"

	"github.com/rxtech-lab/coin-signal/internal/logger"
	"github.com/rxtech-lab/coin-signal/internal/types"
)

var testStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// hourlyCandles builds upbit KRW-BTC candles whose open equals their close.
func hourlyCandles(closes ...float64) []types.Candle {
	candles := make([]types.Candle, len(closes))
	for i, c := range closes {
		candles[i] = types.Candle{
			Exchange:  types.ExchangeUpbit,
			Symbol:    "KRW-BTC",
			Timeframe: types.Timeframe1h,
			OpenTime:  testStart.Add(time.Duration(i) * time.Hour),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    10,
		}
	}

	return candles
}

func declining(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 - float64(i)
	}

	return closes
}

// rsiConfig runs RSI(3) reversion at 30/70 without costs. extra is appended
// under backtest: and may override risk settings.
func rsiConfig(extra ...string) string {
	return `
inputs:
  - name: rsi_3
    kind: rsi
    params:
      period: 3
models:
  - name: reversion
    kind: rsi_reversion
    inputs: [rsi_3]
    params:
      oversold: 30
      overbought: 70
backtest:
  exchange: upbit
  symbol: KRW-BTC
  timeframe: 1h
  model: reversion
  start_time: 2024-01-01T00:00:00Z
  end_time: 2024-02-01T00:00:00Z
  initial_capital: 1000000
  entry_size_percent: 10
  costs:
    slippage_bps: 0
    fee_bps_overrides:
      upbit: 0
` + strings.Join(extra, "\n") + "\n"
}

func newTestEngine(config string) (*BacktestEngineV1, error) {
	eng := NewBacktestEngineV1WithLogger(logger.NewNopLogger()).(*BacktestEngineV1)

	return eng, eng.Initialize(config)
}
