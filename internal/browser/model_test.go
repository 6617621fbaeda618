package browser

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/rxtech-lab/coin-signal/internal/storage"
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/mocks"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func sampleRun(id string, returnPct float64) types.Run {
	return types.Run{
		RunID:          id,
		ModelName:      "rsi_reversion",
		Exchange:       types.ExchangeBinance,
		Symbol:         "BTCUSDT",
		Timeframe:      types.Timeframe1h,
		StartTime:      testStart,
		EndTime:        testStart.Add(24 * time.Hour),
		InitialCapital: 1_000_000,
		FinalEquity:    1_000_000 * (1 + returnPct/100),
		TotalReturnPct: returnPct,
		TradeCount:     1,
	}
}

func sampleTrades(runID string) []types.Trade {
	return []types.Trade{
		{
			RunID:      runID,
			Exchange:   types.ExchangeBinance,
			Symbol:     "BTCUSDT",
			EntryTime:  testStart,
			ExitTime:   testStart.Add(3 * time.Hour),
			EntryPrice: 100,
			ExitPrice:  102.5,
			Quantity:   4,
			GrossPnL:   10,
			NetPnL:     10,
			Reason:     types.ExitReasonModelSell,
		},
	}
}

func sized(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	return updated.(Model)
}

func TestNewModel(t *testing.T) {
	m := NewModel(nil, storage.Page{Limit: 10}, 20)

	assert.Equal(t, StateLoading, m.state)
	assert.Empty(t, m.trades)
	assert.Contains(t, m.View(), "Loading runs")
}

func TestInitLoadsRuns(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockResultStore(ctrl)
	page := storage.Page{Limit: 5, Offset: 5}

	store.EXPECT().ListRuns(gomock.Any(), page).Return([]types.Run{sampleRun("run-1", 1)}, nil)

	msg := NewModel(store, page, 20).Init()()

	loaded, ok := msg.(RunsLoadedMsg)
	require.True(t, ok)
	assert.Len(t, loaded.Runs, 1)
}

func TestInitReportsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockResultStore(ctrl)

	store.EXPECT().ListRuns(gomock.Any(), gomock.Any()).Return(nil, errors.New(errors.ErrCodeQueryFailed, "database is locked"))

	m := sized(NewModel(store, storage.Page{Limit: 10}, 20))
	updated, _ := m.Update(m.Init()())
	m = updated.(Model)

	assert.Equal(t, StateRunList, m.state)
	assert.Contains(t, m.View(), "database is locked")
}

func TestRunsLoaded(t *testing.T) {
	m := sized(NewModel(nil, storage.Page{Limit: 10}, 20))

	updated, _ := m.Update(RunsLoadedMsg{Runs: []types.Run{sampleRun("run-1", 1), sampleRun("run-2", -2)}})
	m = updated.(Model)

	assert.Equal(t, StateRunList, m.state)
	assert.Len(t, m.runList.Items(), 2)
}

func TestNoRuns(t *testing.T) {
	m := sized(NewModel(nil, storage.Page{Limit: 10}, 20))

	updated, _ := m.Update(RunsLoadedMsg{Runs: nil})
	m = updated.(Model)

	assert.Contains(t, m.View(), "No runs found.")
}

func TestEnterLoadsTradesAndEscGoesBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockResultStore(ctrl)
	run := sampleRun("run-1", 1)

	store.EXPECT().
		ListTrades(gomock.Any(), "run-1", storage.Page{Limit: 7, Offset: 0}).
		Return(sampleTrades("run-1"), nil)

	m := sized(NewModel(store, storage.Page{Limit: 10}, 7))
	updated, _ := m.Update(RunsLoadedMsg{Runs: []types.Run{run}})
	m = updated.(Model)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.NotNil(t, cmd)

	updated, _ = m.Update(cmd())
	m = updated.(Model)

	assert.Equal(t, StateRunDetail, m.state)
	assert.Equal(t, "run-1", m.selected.RunID)
	assert.Len(t, m.tradeTable.Rows(), 1)
	assert.Contains(t, m.View(), "Run run-1")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	assert.Equal(t, StateRunList, m.state)
	assert.Empty(t, m.trades)
}

func TestTradeRows(t *testing.T) {
	rows := TradeRows(sampleTrades("run-1"))

	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0][0])
	assert.Equal(t, "2024-01-01 00:00", rows[0][1])
	assert.Equal(t, "2024-01-01 03:00", rows[0][2])
	assert.Equal(t, "102.5", rows[0][4])
	assert.Equal(t, "10.00", rows[0][6])
	assert.Equal(t, "model_sell", rows[0][7])
}

func TestFormatReturnWithArrow(t *testing.T) {
	tests := []struct {
		name     string
		pct      float64
		expected string
	}{
		{name: "gain", pct: 1.5, expected: "1.50% ▲"},
		{name: "loss", pct: -0.25, expected: "-0.25% ▼"},
		{name: "flat", pct: 0, expected: "0.00%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatReturnWithArrow(tt.pct))
		})
	}
}

func TestBrowseRunsAndTrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockResultStore(ctrl)

	store.EXPECT().ListRuns(gomock.Any(), gomock.Any()).Return([]types.Run{sampleRun("run-1", 1)}, nil)
	store.EXPECT().ListTrades(gomock.Any(), "run-1", gomock.Any()).Return(sampleTrades("run-1"), nil)

	tm := teatest.NewTestModel(t, NewModel(store, storage.Page{Limit: 10}, 20), teatest.WithInitialTermSize(100, 30))

	// Wait for the run list to render
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("run-1"))
	}, teatest.WithDuration(2*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Trades: 1 of 1"))
	}, teatest.WithDuration(2*time.Second))

	err := tm.Quit()
	assert.NoError(t, err)
}
