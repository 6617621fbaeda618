// Package report exports and renders completed backtests.
package report

import (
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	StatsFileName  = "stats.yaml"
	TradesFileName = "trades.parquet"
)

// RunStats is the content of stats.yaml.
type RunStats struct {
	Run     types.Run `yaml:"run"`
	Summary Summary   `yaml:"summary"`
	// TradesFilePath is the path to the trades parquet file.
	TradesFilePath string `yaml:"trades_file_path"`
}

// TradeRow is the parquet layout of a trade. Times are unix milliseconds.
type TradeRow struct {
	RunID      string  `parquet:"run_id"`
	Exchange   string  `parquet:"exchange"`
	Symbol     string  `parquet:"symbol"`
	EntryTime  int64   `parquet:"entry_time"`
	ExitTime   int64   `parquet:"exit_time"`
	EntryPrice float64 `parquet:"entry_price"`
	ExitPrice  float64 `parquet:"exit_price"`
	Quantity   float64 `parquet:"quantity"`
	GrossPnL   float64 `parquet:"gross_pnl"`
	NetPnL     float64 `parquet:"net_pnl"`
	FeePaid    float64 `parquet:"fee_paid"`
	Reason     string  `parquet:"reason"`
}

func NewTradeRow(t types.Trade) TradeRow {
	return TradeRow{
		RunID:      t.RunID,
		Exchange:   string(t.Exchange),
		Symbol:     t.Symbol,
		EntryTime:  t.EntryTime.UnixMilli(),
		ExitTime:   t.ExitTime.UnixMilli(),
		EntryPrice: t.EntryPrice,
		ExitPrice:  t.ExitPrice,
		Quantity:   t.Quantity,
		GrossPnL:   t.GrossPnL,
		NetPnL:     t.NetPnL,
		FeePaid:    t.FeePaid,
		Reason:     string(t.Reason),
	}
}

func (r TradeRow) Trade() types.Trade {
	return types.Trade{
		RunID:      r.RunID,
		Exchange:   types.Exchange(r.Exchange),
		Symbol:     r.Symbol,
		EntryTime:  time.UnixMilli(r.EntryTime).UTC(),
		ExitTime:   time.UnixMilli(r.ExitTime).UTC(),
		EntryPrice: r.EntryPrice,
		ExitPrice:  r.ExitPrice,
		Quantity:   r.Quantity,
		GrossPnL:   r.GrossPnL,
		NetPnL:     r.NetPnL,
		FeePaid:    r.FeePaid,
		Reason:     types.ExitReason(r.Reason),
	}
}

// WriteRunReport writes stats.yaml and trades.parquet for a run into dir,
// creating dir when needed.
func WriteRunReport(dir string, run types.Run, trades []types.Trade) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(errors.ErrCodePersistFailed, err, "failed to create report directory %s", dir)
	}

	tradesPath := filepath.Join(dir, TradesFileName)

	rows := make([]TradeRow, len(trades))
	for i, t := range trades {
		rows[i] = NewTradeRow(t)
	}

	if err := parquet.WriteFile(tradesPath, rows); err != nil {
		return errors.Wrapf(errors.ErrCodePersistFailed, err, "failed to write %s", tradesPath)
	}

	stats := RunStats{
		Run:            run,
		Summary:        Summarize(trades),
		TradesFilePath: tradesPath,
	}

	data, err := yaml.Marshal(stats)
	if err != nil {
		return errors.Wrap(errors.ErrCodePersistFailed, "failed to marshal run stats to YAML", err)
	}

	if err := os.WriteFile(filepath.Join(dir, StatsFileName), data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodePersistFailed, "failed to write run stats", err)
	}

	return nil
}

// ReadRunStats loads a stats.yaml written by WriteRunReport.
func ReadRunStats(path string) (RunStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunStats{}, errors.Wrapf(errors.ErrCodeDataNotFound, err, "failed to read %s", path)
	}

	var stats RunStats
	if err := yaml.Unmarshal(data, &stats); err != nil {
		return RunStats{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse %s", path)
	}

	return stats, nil
}

// ReadTrades loads a trades.parquet written by WriteRunReport.
func ReadTrades(path string) ([]types.Trade, error) {
	rows, err := parquet.ReadFile[TradeRow](path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataNotFound, err, "failed to read %s", path)
	}

	trades := make([]types.Trade, len(rows))
	for i, row := range rows {
		trades[i] = row.Trade()
	}

	return trades, nil
}
