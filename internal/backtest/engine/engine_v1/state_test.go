package engine

import (
	"testing"
	"time"

	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/stretchr/testify/suite"
)

type BacktestStateTestSuite struct {
	suite.Suite
	state *BacktestState
}

func TestBacktestStateSuite(t *testing.T) {
	suite.Run(t, new(BacktestStateTestSuite))
}

func (suite *BacktestStateTestSuite) SetupTest() {
	suite.state = NewBacktestState(1000)
}

func (suite *BacktestStateTestSuite) TestInitialState() {
	suite.Equal(1000.0, suite.state.Cash())
	suite.Empty(suite.state.OpenLots())
	suite.Empty(suite.state.Trades())
	suite.Empty(suite.state.EquityCurve())
	suite.True(suite.state.LastEntryFill().IsNone())
}

func (suite *BacktestStateTestSuite) TestAddLotPaysNotionalAndFee() {
	lot := types.OpenLot{EntryTime: time.Unix(0, 0), EntryPrice: 10, Quantity: 10, FeePaid: 1}
	suite.state.AddLot(lot, 100, 4)

	suite.Equal(899.0, suite.state.Cash())
	suite.Len(suite.state.OpenLots(), 1)
	suite.Equal(4, suite.state.LastEntryFill().Unwrap())
}

func (suite *BacktestStateTestSuite) TestEquityMarksOpenLots() {
	suite.state.AddLot(types.OpenLot{EntryPrice: 10, Quantity: 10}, 100, 1)
	suite.state.AddLot(types.OpenLot{EntryPrice: 20, Quantity: 5}, 100, 2)

	suite.Equal(800.0, suite.state.Cash())
	suite.Equal(800.0+15*12, suite.state.Equity(12))

	suite.state.RecordEquity(12)
	suite.state.RecordEquity(8)
	suite.Equal([]float64{980, 920}, suite.state.EquityCurve())
}

func (suite *BacktestStateTestSuite) TestTakeLotsEmptiesPosition() {
	suite.state.AddLot(types.OpenLot{Quantity: 1}, 10, 1)
	suite.state.AddLot(types.OpenLot{Quantity: 2}, 10, 2)

	lots := suite.state.TakeLots()
	suite.Len(lots, 2)
	suite.Empty(suite.state.OpenLots())
	suite.Equal(2, suite.state.LastEntryFill().Unwrap())
}

func (suite *BacktestStateTestSuite) TestAddTradeCreditsProceeds() {
	suite.state.AddTrade(types.Trade{NetPnL: 5}, 105)
	suite.Equal(1105.0, suite.state.Cash())
	suite.Len(suite.state.Trades(), 1)

	suite.state.RecordCash()
	suite.Equal([]float64{1105}, suite.state.EquityCurve())
}

func (suite *BacktestStateTestSuite) TestAssignRunID() {
	suite.state.AddTrade(types.Trade{}, 0)
	suite.state.AddTrade(types.Trade{}, 0)
	suite.state.AssignRunID("run-1")

	for _, trade := range suite.state.Trades() {
		suite.Equal("run-1", trade.RunID)
	}
}
