package engine

import (
	"time"

	"github.com/rxtech-lab/coin-signal/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/coin-signal/internal/logger"
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/internal/utils"
	"go.uber.org/zap"
)

// BacktestTrading fills entries and exits against the ledger of one run.
// Fills happen at the open of the candle after the decision, never at the
// decision candle itself.
type BacktestTrading struct {
	state      *BacktestState
	config     BacktestConfig
	commission commission_fee.CommissionFee
	log        *logger.Logger
}

func NewBacktestTrading(state *BacktestState, config BacktestConfig, commission commission_fee.CommissionFee, log *logger.Logger) *BacktestTrading {
	return &BacktestTrading{
		state:      state,
		config:     config,
		commission: commission,
		log:        log,
	}
}

// Enter opens a lot at the next candle's open. It reports whether a lot was opened.
func (b *BacktestTrading) Enter(index int, candles []types.Candle) bool {
	if index+1 >= len(candles) {
		b.log.Debug("Entry rejected", zap.Int("index", index), zap.String("reason", "no next candle"))

		return false
	}

	maxEntries := b.config.Risk.MaxEntriesPerPosition
	if maxEntries > 0 && len(b.state.OpenLots()) >= maxEntries {
		b.log.Debug("Entry rejected", zap.Int("index", index), zap.String("reason", "max entries"))

		return false
	}

	if !b.cooldownElapsed(index + 1) {
		b.log.Debug("Entry rejected", zap.Int("index", index), zap.String("reason", "cooldown"))

		return false
	}

	next := candles[index+1]
	fillPrice := applySlippage(next.Open, b.config.Costs.SlippageBps, types.ActionBuy)
	equity := b.state.Equity(candles[index].Close)
	notional := utils.CalculateEntryNotional(equity, b.state.Cash(), b.config.EntrySizePercent, b.commission.Bps())

	if notional <= 0 || fillPrice <= 0 {
		return false
	}

	lot := types.OpenLot{
		EntryTime:  next.OpenTime,
		EntryPrice: fillPrice,
		Quantity:   notional / fillPrice,
		FeePaid:    b.commission.Calculate(notional),
	}
	b.state.AddLot(lot, notional, index+1)

	b.log.Debug("Entry filled",
		zap.Time("time", lot.EntryTime),
		zap.Float64("price", lot.EntryPrice),
		zap.Float64("quantity", lot.Quantity),
		zap.Float64("fee", lot.FeePaid),
	)

	return true
}

// Exit closes every open lot at the next candle's open. It returns the number of lots closed.
func (b *BacktestTrading) Exit(index int, candles []types.Candle) int {
	if len(b.state.OpenLots()) == 0 || index+1 >= len(candles) {
		return 0
	}

	next := candles[index+1]
	fillPrice := applySlippage(next.Open, b.config.Costs.SlippageBps, types.ActionSell)

	return b.closeAll(fillPrice, next.OpenTime, types.ExitReasonModelSell)
}

// ForceExit closes every lot still open at the close of the last candle.
func (b *BacktestTrading) ForceExit(last types.Candle) int {
	if len(b.state.OpenLots()) == 0 {
		return 0
	}

	fillPrice := applySlippage(last.Close, b.config.Costs.SlippageBps, types.ActionSell)

	return b.closeAll(fillPrice, last.OpenTime, types.ExitReasonForcedExit)
}

func (b *BacktestTrading) closeAll(fillPrice float64, exitTime time.Time, reason types.ExitReason) int {
	lots := b.state.TakeLots()

	for _, lot := range lots {
		exitNotional := fillPrice * lot.Quantity
		exitFee := b.commission.Calculate(exitNotional)
		grossPnL := (fillPrice - lot.EntryPrice) * lot.Quantity

		b.state.AddTrade(types.Trade{
			Exchange:   b.config.Exchange,
			Symbol:     b.config.Symbol,
			EntryTime:  lot.EntryTime,
			ExitTime:   exitTime,
			EntryPrice: lot.EntryPrice,
			ExitPrice:  fillPrice,
			Quantity:   lot.Quantity,
			GrossPnL:   grossPnL,
			NetPnL:     grossPnL - lot.FeePaid - exitFee,
			FeePaid:    lot.FeePaid + exitFee,
			Reason:     reason,
		}, exitNotional-exitFee)
	}

	b.log.Debug("Lots closed",
		zap.Time("time", exitTime),
		zap.Float64("price", fillPrice),
		zap.Int("lots", len(lots)),
		zap.String("reason", string(reason)),
	)

	return len(lots)
}

// cooldownElapsed reports whether a fill at fillIndex is more than cooldown_bars
// past the last entry fill.
func (b *BacktestTrading) cooldownElapsed(fillIndex int) bool {
	last := b.state.LastEntryFill()
	if last.IsNone() {
		return true
	}

	return fillIndex > last.Unwrap()+b.config.Risk.CooldownBars
}
