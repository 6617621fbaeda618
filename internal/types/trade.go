package types

import "time"

// OpenLot is one entry fill held until the whole lot is closed.
type OpenLot struct {
	EntryTime  time.Time
	EntryPrice float64
	Quantity   float64
	// FeePaid is the entry fee charged when the lot was opened
	FeePaid float64
}

// Trade is the record of a closed lot.
type Trade struct {
	// RunID is empty until the run that produced the trade concludes
	RunID      string    `yaml:"run_id" json:"run_id"`
	Exchange   Exchange  `yaml:"exchange" json:"exchange"`
	Symbol     string    `yaml:"symbol" json:"symbol"`
	EntryTime  time.Time `yaml:"entry_time" json:"entry_time"`
	ExitTime   time.Time `yaml:"exit_time" json:"exit_time"`
	EntryPrice float64   `yaml:"entry_price" json:"entry_price"`
	ExitPrice  float64   `yaml:"exit_price" json:"exit_price"`
	Quantity   float64   `yaml:"quantity" json:"quantity"`
	// GrossPnL is (exit - entry) * quantity, before fees
	GrossPnL float64 `yaml:"gross_pnl" json:"gross_pnl"`
	// NetPnL is GrossPnL minus the entry and exit fees
	NetPnL float64 `yaml:"net_pnl" json:"net_pnl"`
	// FeePaid is the sum of the entry and exit fees
	FeePaid float64    `yaml:"fee_paid" json:"fee_paid"`
	Reason  ExitReason `yaml:"reason" json:"reason"`
}
