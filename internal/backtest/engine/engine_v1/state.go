package engine

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/coin-signal/internal/types"
)

// BacktestState is the ledger of one simulation: cash, open lots, closed trades
// and the equity curve. It is owned by a single run and never shared.
type BacktestState struct {
	cash        float64
	lots        []types.OpenLot
	trades      []types.Trade
	equityCurve []float64
	// lastEntryFill is the candle index the most recent entry filled at
	lastEntryFill optional.Option[int]
}

func NewBacktestState(initialCapital float64) *BacktestState {
	return &BacktestState{
		cash:          initialCapital,
		lots:          []types.OpenLot{},
		trades:        []types.Trade{},
		equityCurve:   []float64{},
		lastEntryFill: optional.None[int](),
	}
}

func (s *BacktestState) Cash() float64 {
	return s.cash
}

func (s *BacktestState) OpenLots() []types.OpenLot {
	return s.lots
}

func (s *BacktestState) Trades() []types.Trade {
	return s.trades
}

func (s *BacktestState) EquityCurve() []float64 {
	return s.equityCurve
}

func (s *BacktestState) LastEntryFill() optional.Option[int] {
	return s.lastEntryFill
}

// Equity marks every open lot at markPrice.
func (s *BacktestState) Equity(markPrice float64) float64 {
	equity := s.cash
	for _, lot := range s.lots {
		equity += lot.Quantity * markPrice
	}

	return equity
}

// RecordEquity appends the equity marked at markPrice to the curve.
func (s *BacktestState) RecordEquity(markPrice float64) {
	s.equityCurve = append(s.equityCurve, s.Equity(markPrice))
}

// RecordCash appends the cash balance to the curve. Used once every lot is closed.
func (s *BacktestState) RecordCash() {
	s.equityCurve = append(s.equityCurve, s.cash)
}

// AddLot books an entry fill at candle index fillIndex. The lot's notional and
// entry fee are paid from cash.
func (s *BacktestState) AddLot(lot types.OpenLot, notional float64, fillIndex int) {
	s.cash -= notional + lot.FeePaid
	s.lots = append(s.lots, lot)
	s.lastEntryFill = optional.Some(fillIndex)
}

// TakeLots removes and returns every open lot.
func (s *BacktestState) TakeLots() []types.OpenLot {
	lots := s.lots
	s.lots = []types.OpenLot{}

	return lots
}

// AddTrade books a closed lot and credits its exit proceeds to cash.
func (s *BacktestState) AddTrade(trade types.Trade, proceeds float64) {
	s.cash += proceeds
	s.trades = append(s.trades, trade)
}

// AssignRunID stamps runID onto every trade.
func (s *BacktestState) AssignRunID(runID string) {
	for i := range s.trades {
		s.trades[i].RunID = runID
	}
}
