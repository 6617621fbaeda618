package types

import (
	"time"

	"github.com/rxtech-lab/coin-signal/pkg/errors"
)

// Timeframe is the bar width of a candle series.
type Timeframe string

const (
	Timeframe1m  Timeframe = "1m"
	Timeframe3m  Timeframe = "3m"
	Timeframe5m  Timeframe = "5m"
	Timeframe15m Timeframe = "15m"
	Timeframe30m Timeframe = "30m"
	Timeframe1h  Timeframe = "1h"
	Timeframe4h  Timeframe = "4h"
	Timeframe1d  Timeframe = "1d"
)

// AllTimeframes lists every supported timeframe, shortest first.
var AllTimeframes = []Timeframe{
	Timeframe1m,
	Timeframe3m,
	Timeframe5m,
	Timeframe15m,
	Timeframe30m,
	Timeframe1h,
	Timeframe4h,
	Timeframe1d,
}

// ParseTimeframe converts a configuration string into a Timeframe.
func ParseTimeframe(value string) (Timeframe, error) {
	for _, tf := range AllTimeframes {
		if string(tf) == value {
			return tf, nil
		}
	}

	return "", errors.Newf(errors.ErrCodeUnknownTimeframe, "unknown timeframe %q", value)
}

// Duration returns the length of one bar. Unknown timeframes return 0.
func (t Timeframe) Duration() time.Duration {
	switch t {
	case Timeframe1m:
		return time.Minute
	case Timeframe3m:
		return 3 * time.Minute
	case Timeframe5m:
		return 5 * time.Minute
	case Timeframe15m:
		return 15 * time.Minute
	case Timeframe30m:
		return 30 * time.Minute
	case Timeframe1h:
		return time.Hour
	case Timeframe4h:
		return 4 * time.Hour
	case Timeframe1d:
		return 24 * time.Hour
	default:
		return 0
	}
}
