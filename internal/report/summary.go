package report

import (
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/shopspring/decimal"
)

// Summary aggregates the trades of a run. Money is summed in decimal so long
// runs do not drift.
type Summary struct {
	TradeCount  int             `yaml:"trade_count" json:"trade_count"`
	Winning     int             `yaml:"winning" json:"winning"`
	Losing      int             `yaml:"losing" json:"losing"`
	ForcedExits int             `yaml:"forced_exits" json:"forced_exits"`
	GrossPnL    decimal.Decimal `yaml:"gross_pnl" json:"gross_pnl"`
	NetPnL      decimal.Decimal `yaml:"net_pnl" json:"net_pnl"`
	TotalFees   decimal.Decimal `yaml:"total_fees" json:"total_fees"`
	BestTrade   decimal.Decimal `yaml:"best_trade" json:"best_trade"`
	WorstTrade  decimal.Decimal `yaml:"worst_trade" json:"worst_trade"`
}

func Summarize(trades []types.Trade) Summary {
	summary := Summary{
		TradeCount: len(trades),
		GrossPnL:   decimal.Zero,
		NetPnL:     decimal.Zero,
		TotalFees:  decimal.Zero,
		BestTrade:  decimal.Zero,
		WorstTrade: decimal.Zero,
	}

	for i, t := range trades {
		net := decimal.NewFromFloat(t.NetPnL)

		summary.GrossPnL = summary.GrossPnL.Add(decimal.NewFromFloat(t.GrossPnL))
		summary.NetPnL = summary.NetPnL.Add(net)
		summary.TotalFees = summary.TotalFees.Add(decimal.NewFromFloat(t.FeePaid))

		if t.NetPnL > 0 {
			summary.Winning++
		} else {
			summary.Losing++
		}

		if t.Reason == types.ExitReasonForcedExit {
			summary.ForcedExits++
		}

		if i == 0 || net.GreaterThan(summary.BestTrade) {
			summary.BestTrade = net
		}

		if i == 0 || net.LessThan(summary.WorstTrade) {
			summary.WorstTrade = net
		}
	}

	return summary
}
