package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/internal/utils"
)

// applySlippage moves price against the trader: buys fill higher, sells lower.
func applySlippage(price float64, slippageBps float64, side types.Action) float64 {
	ratio := utils.BpsToRatio(slippageBps)
	if side == types.ActionBuy {
		return price * (1 + ratio)
	}

	return price * (1 - ratio)
}

// maxDrawdownPct is the largest fall from a running peak, in percent.
// Points are skipped while the running peak is not positive.
func maxDrawdownPct(curve []float64) float64 {
	if len(curve) == 0 {
		return 0
	}

	peak := curve[0]
	maxDrawdown := 0.0

	for _, equity := range curve {
		if equity > peak {
			peak = equity
		}

		if peak <= 0 {
			continue
		}

		drawdown := (peak - equity) / peak
		if drawdown > maxDrawdown {
			maxDrawdown = drawdown
		}
	}

	return maxDrawdown * 100
}

func winRatePct(trades []types.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}

	wins := 0

	for _, trade := range trades {
		if trade.NetPnL > 0 {
			wins++
		}
	}

	return float64(wins) / float64(len(trades)) * 100
}

// buildRun mints the run id, stamps it onto every trade and summarizes the ledger.
func buildRun(state *BacktestState, config BacktestConfig, modelName string, engineVersion string, createdAt time.Time) types.Run {
	runID := uuid.New().String()
	state.AssignRunID(runID)

	finalEquity := state.Cash()

	return types.Run{
		RunID:          runID,
		ModelName:      modelName,
		Exchange:       config.Exchange,
		Symbol:         config.Symbol,
		Timeframe:      config.Timeframe,
		StartTime:      config.StartTime,
		EndTime:        config.EndTime,
		InitialCapital: config.InitialCapital,
		FinalEquity:    finalEquity,
		TotalReturnPct: (finalEquity/config.InitialCapital - 1) * 100,
		MaxDrawdownPct: maxDrawdownPct(state.EquityCurve()),
		WinRatePct:     winRatePct(state.Trades()),
		TradeCount:     len(state.Trades()),
		EngineVersion:  engineVersion,
		CreatedAt:      createdAt,
	}
}
