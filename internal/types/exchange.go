package types

import (
	"github.com/rxtech-lab/coin-signal/pkg/errors"
)

// Exchange identifies the venue a candle series and its fee schedule belong to.
type Exchange string

const (
	ExchangeUpbit   Exchange = "upbit"
	ExchangeBinance Exchange = "binance"
)

// AllExchanges lists every supported exchange.
var AllExchanges = []Exchange{
	ExchangeUpbit,
	ExchangeBinance,
}

// ParseExchange converts a configuration string into an Exchange.
func ParseExchange(value string) (Exchange, error) {
	switch Exchange(value) {
	case ExchangeUpbit, ExchangeBinance:
		return Exchange(value), nil
	default:
		return "", errors.Newf(errors.ErrCodeUnknownExchange, "unknown exchange %q", value)
	}
}

// DefaultFeeBps returns the taker fee of the exchange in basis points.
// Unknown exchanges pay nothing.
func (e Exchange) DefaultFeeBps() float64 {
	switch e {
	case ExchangeUpbit:
		return 5
	case ExchangeBinance:
		return 10
	default:
		return 0
	}
}
