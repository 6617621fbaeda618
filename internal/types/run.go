package types

import "time"

// Run is the summary of one backtest execution.
type Run struct {
	RunID          string    `yaml:"run_id" json:"run_id"`
	ModelName      string    `yaml:"model_name" json:"model_name"`
	Exchange       Exchange  `yaml:"exchange" json:"exchange"`
	Symbol         string    `yaml:"symbol" json:"symbol"`
	Timeframe      Timeframe `yaml:"timeframe" json:"timeframe"`
	StartTime      time.Time `yaml:"start_time" json:"start_time"`
	EndTime        time.Time `yaml:"end_time" json:"end_time"`
	InitialCapital float64   `yaml:"initial_capital" json:"initial_capital"`
	FinalEquity    float64   `yaml:"final_equity" json:"final_equity"`
	TotalReturnPct float64   `yaml:"total_return_pct" json:"total_return_pct"`
	MaxDrawdownPct float64   `yaml:"max_drawdown_pct" json:"max_drawdown_pct"`
	WinRatePct     float64   `yaml:"win_rate_pct" json:"win_rate_pct"`
	TradeCount     int       `yaml:"trade_count" json:"trade_count"`
	// EngineVersion is the version of the engine that produced the run
	EngineVersion string    `yaml:"engine_version" json:"engine_version"`
	CreatedAt     time.Time `yaml:"created_at" json:"created_at"`
}
