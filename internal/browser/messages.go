package browser

import "github.com/rxtech-lab/coin-signal/internal/types"

// RunsLoadedMsg carries a page of stored runs.
type RunsLoadedMsg struct {
	Runs []types.Run
}

// TradesLoadedMsg carries the trades of the selected run.
type TradesLoadedMsg struct {
	Run    types.Run
	Trades []types.Trade
}

// LoadErrorMsg indicates that reading the store failed.
type LoadErrorMsg struct {
	Err error
}
