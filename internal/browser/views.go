package browser

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/coin-signal/internal/report"
	"github.com/rxtech-lab/coin-signal/internal/types"
)

const timeLayout = "2006-01-02 15:04"

// runItem implements list.Item for a stored run.
type runItem struct {
	run types.Run
}

func (i runItem) Title() string {
	return fmt.Sprintf("%s  %s", i.run.RunID, i.run.ModelName)
}

func (i runItem) Description() string {
	return fmt.Sprintf("%s %s %s | %d trades | return %s | mdd %s",
		i.run.Exchange, i.run.Symbol, i.run.Timeframe, i.run.TradeCount,
		FormatReturnWithArrow(i.run.TotalReturnPct), report.FormatPercent(i.run.MaxDrawdownPct))
}

func (i runItem) FilterValue() string { return i.run.RunID }

// NewRunList creates an empty list for run selection.
func NewRunList() list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Backtest Runs"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

// RunItems wraps runs as list items, keeping their order.
func RunItems(runs []types.Run) []list.Item {
	items := make([]list.Item, len(runs))
	for i, run := range runs {
		items[i] = runItem{run: run}
	}

	return items
}

// NewTradeTable creates a table for the trades of one run.
func NewTradeTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Entry", Width: 17},
		{Title: "Exit", Width: 17},
		{Title: "Entry Price", Width: 14},
		{Title: "Exit Price", Width: 14},
		{Title: "Qty", Width: 12},
		{Title: "Net PnL", Width: 14},
		{Title: "Reason", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t.SetStyles(s)

	return t
}

// TradeRows converts trades into table rows.
func TradeRows(trades []types.Trade) []table.Row {
	rows := make([]table.Row, 0, len(trades))

	for i, trade := range trades {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			trade.EntryTime.UTC().Format(timeLayout),
			trade.ExitTime.UTC().Format(timeLayout),
			report.FormatPrice(trade.EntryPrice),
			report.FormatPrice(trade.ExitPrice),
			report.FormatPrice(trade.Quantity),
			report.FormatMoney(trade.NetPnL),
			string(trade.Reason),
		})
	}

	return rows
}
