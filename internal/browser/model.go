// Package browser is a terminal UI for paging through stored backtest runs.
package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/coin-signal/internal/report"
	"github.com/rxtech-lab/coin-signal/internal/storage"
	"github.com/rxtech-lab/coin-signal/internal/types"
)

// Application states.
const (
	StateLoading = iota
	StateRunList
	StateRunDetail
)

// Model is the Bubble Tea model of the run browser.
type Model struct {
	state       int
	store       storage.ResultStore
	page        storage.Page
	tradesLimit int
	runList     list.Model
	tradeTable  table.Model
	selected    types.Run
	trades      []types.Trade
	err         error
	width       int
	height      int
}

// NewModel creates a browser over store showing one page of runs.
func NewModel(store storage.ResultStore, page storage.Page, tradesLimit int) Model {
	return Model{
		state:       StateLoading,
		store:       store,
		page:        page,
		tradesLimit: tradesLimit,
		runList:     NewRunList(),
		tradeTable:  NewTradeTable(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.loadRuns()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			return m.handleEsc()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.runList.SetSize(msg.Width, msg.Height-4)
		m.tradeTable.SetWidth(msg.Width)
		m.tradeTable.SetHeight(msg.Height - 10)

		return m, nil

	case RunsLoadedMsg:
		m.err = nil
		m.state = StateRunList

		return m, m.runList.SetItems(RunItems(msg.Runs))

	case TradesLoadedMsg:
		m.err = nil
		m.selected = msg.Run
		m.trades = msg.Trades
		m.tradeTable.SetRows(TradeRows(msg.Trades))
		m.tradeTable.GotoTop()
		m.state = StateRunDetail

		return m, nil

	case LoadErrorMsg:
		m.err = msg.Err

		if m.state == StateLoading {
			m.state = StateRunList
		}

		return m, nil
	}

	// Delegate to state-specific update
	switch m.state {
	case StateRunList:
		return m.updateRunList(msg)
	case StateRunDetail:
		return m.updateRunDetail(msg)
	}

	return m, nil
}

func (m Model) handleEsc() (tea.Model, tea.Cmd) {
	if m.state == StateRunDetail {
		m.state = StateRunList
		m.trades = nil
		m.err = nil
	}

	return m, nil
}

func (m Model) updateRunList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if item, ok := m.runList.SelectedItem().(runItem); ok {
			return m, m.loadTrades(item.run)
		}
	}

	var cmd tea.Cmd
	m.runList, cmd = m.runList.Update(msg)

	return m, cmd
}

func (m Model) updateRunDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.tradeTable, cmd = m.tradeTable.Update(msg)

	return m, cmd
}

func (m Model) loadRuns() tea.Cmd {
	store, page := m.store, m.page

	return func() tea.Msg {
		runs, err := store.ListRuns(context.Background(), page)
		if err != nil {
			return LoadErrorMsg{Err: err}
		}

		return RunsLoadedMsg{Runs: runs}
	}
}

func (m Model) loadTrades(run types.Run) tea.Cmd {
	store, limit := m.store, m.tradesLimit

	return func() tea.Msg {
		trades, err := store.ListTrades(context.Background(), run.RunID, storage.Page{Limit: limit, Offset: 0})
		if err != nil {
			return LoadErrorMsg{Err: err}
		}

		return TradesLoadedMsg{Run: run, Trades: trades}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StateLoading:
		s.WriteString("Loading runs...\n")

	case StateRunList:
		if m.err != nil {
			s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			s.WriteString("\n\n")
		}

		if len(m.runList.Items()) == 0 {
			s.WriteString(TitleStyle.Render("Backtest Runs"))
			s.WriteString("\n\nNo runs found.\n")
		} else {
			s.WriteString(m.runList.View())
		}

		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Press Enter to show trades, q to quit"))

	case StateRunDetail:
		run := m.selected
		s.WriteString(TitleStyle.Render(fmt.Sprintf("Run %s - %s %s %s", run.RunID, run.Exchange, run.Symbol, run.Timeframe)))
		s.WriteString("\n\n")
		s.WriteString(fmt.Sprintf("model %s | final equity %s | return %s | mdd %s | win rate %s\n\n",
			run.ModelName,
			report.FormatMoney(run.FinalEquity),
			FormatReturnWithArrow(run.TotalReturnPct),
			report.FormatPercent(run.MaxDrawdownPct),
			report.FormatPercent(run.WinRatePct)))

		if len(m.trades) == 0 {
			s.WriteString("No trades.\n")
		} else {
			s.WriteString(m.tradeTable.View())
		}

		s.WriteString("\n")
		s.WriteString(HelpStyle.Render(fmt.Sprintf("q: quit | Esc: back | Trades: %d of %d", len(m.trades), run.TradeCount)))
	}

	return s.String()
}
