package report

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/shopspring/decimal"
)

const timeLayout = "2006-01-02 15:04"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	gainStyle   = cellStyle.Foreground(lipgloss.Color("42"))
	lossStyle   = cellStyle.Foreground(lipgloss.Color("196"))
)

// RenderRuns lists runs as a table, one row per run.
func RenderRuns(runs []types.Run) string {
	if len(runs) == 0 {
		return "No runs found."
	}

	rows := make([][]string, len(runs))
	for i, run := range runs {
		rows[i] = []string{
			run.RunID,
			run.CreatedAt.UTC().Format(timeLayout),
			run.ModelName,
			string(run.Exchange) + ":" + run.Symbol,
			string(run.Timeframe),
			strconv.Itoa(run.TradeCount),
			FormatMoney(run.FinalEquity),
			FormatPercent(run.TotalReturnPct),
			FormatPercent(run.MaxDrawdownPct),
			FormatPercent(run.WinRatePct),
		}
	}

	// Return is column 7
	return newTable(rows, 7).
		Headers("RUN ID", "CREATED", "MODEL", "MARKET", "TF", "TRADES", "FINAL EQUITY", "RETURN", "MDD", "WIN RATE").
		String()
}

// RenderRun shows one run's metrics followed by its trades.
func RenderRun(run types.Run, trades []types.Trade) string {
	summary := Summarize(trades)

	metrics := newTable([][]string{
		{"run_id", run.RunID},
		{"model", run.ModelName},
		{"market", string(run.Exchange) + ":" + run.Symbol + " " + string(run.Timeframe)},
		{"window", run.StartTime.UTC().Format(timeLayout) + " to " + run.EndTime.UTC().Format(timeLayout)},
		{"initial_capital", FormatMoney(run.InitialCapital)},
		{"final_equity", FormatMoney(run.FinalEquity)},
		{"total_return", FormatPercent(run.TotalReturnPct)},
		{"max_drawdown", FormatPercent(run.MaxDrawdownPct)},
		{"win_rate", FormatPercent(run.WinRatePct)},
		{"trades", strconv.Itoa(run.TradeCount)},
		{"net_pnl", FormatDecimal(summary.NetPnL)},
		{"total_fees", FormatDecimal(summary.TotalFees)},
		{"engine_version", run.EngineVersion},
	}, -1).Headers("METRIC", "VALUE")

	var b strings.Builder

	b.WriteString(titleStyle.Render("Run " + run.RunID))
	b.WriteString("\n")
	b.WriteString(metrics.String())
	b.WriteString("\n")

	if len(trades) == 0 {
		b.WriteString("No trades.")

		return b.String()
	}

	b.WriteString(RenderTrades(trades))

	return b.String()
}

// RenderTrades lists trades as a table in the order given.
func RenderTrades(trades []types.Trade) string {
	rows := make([][]string, len(trades))
	for i, t := range trades {
		rows[i] = []string{
			t.EntryTime.UTC().Format(timeLayout),
			t.ExitTime.UTC().Format(timeLayout),
			FormatPrice(t.EntryPrice),
			FormatPrice(t.ExitPrice),
			decimal.NewFromFloat(t.Quantity).Round(8).String(),
			FormatMoney(t.NetPnL),
			FormatMoney(t.FeePaid),
			string(t.Reason),
		}
	}

	// Net PnL is column 5
	return newTable(rows, 5).
		Headers("ENTRY", "EXIT", "ENTRY PRICE", "EXIT PRICE", "QTY", "NET PNL", "FEE", "REASON").
		String()
}

// FormatMoney renders an amount with two decimals.
func FormatMoney(value float64) string {
	return FormatDecimal(decimal.NewFromFloat(value))
}

func FormatDecimal(value decimal.Decimal) string {
	return value.StringFixed(2)
}

// FormatPrice keeps up to eight decimals for low priced markets.
func FormatPrice(value float64) string {
	return decimal.NewFromFloat(value).Round(8).String()
}

func FormatPercent(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2) + "%"
}

// newTable builds a bordered table over rows. Cells of signedColumn are green
// or red by sign; pass -1 to disable coloring.
func newTable(rows [][]string, signedColumn int) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			if col != signedColumn || row < 0 || row >= len(rows) {
				return cellStyle
			}

			if strings.HasPrefix(rows[row][col], "-") {
				return lossStyle
			}

			return gainStyle
		})
}
