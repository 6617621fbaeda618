package types

// Action is the decision a trading model takes at one simulation step.
type Action int

const (
	// ActionHold keeps the current position unchanged
	ActionHold Action = iota
	// ActionBuy opens a new lot on the next candle
	ActionBuy
	// ActionSell closes every open lot on the next candle
	ActionSell
)

func (a Action) String() string {
	switch a {
	case ActionBuy:
		return "buy"
	case ActionSell:
		return "sell"
	default:
		return "hold"
	}
}

// ExitReason tags why a lot was closed.
type ExitReason string

const (
	ExitReasonModelSell  ExitReason = "model_sell"
	ExitReasonForcedExit ExitReason = "forced_exit"
)
