package commission_fee

import (
	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/rxtech-lab/coin-signal/internal/utils"
)

type CommissionFee interface {
	// Calculate the commission fee charged on a fill of the given notional
	Calculate(notional float64) float64
	// Bps returns the fee rate in basis points
	Bps() float64
}

// GetCommissionFeeHandler resolves the fee schedule of an exchange.
// An entry in overrides keyed by the exchange name wins over the exchange default.
func GetCommissionFeeHandler(exchange types.Exchange, overrides map[string]float64) CommissionFee {
	bps, ok := overrides[string(exchange)]
	if !ok {
		bps = exchange.DefaultFeeBps()
	}

	if bps == 0 {
		return NewZeroCommissionFee()
	}

	return NewBpsCommissionFee(bps)
}

// BpsCommissionFee charges a flat rate of the fill notional.
type BpsCommissionFee struct {
	bps float64
}

func NewBpsCommissionFee(bps float64) CommissionFee {
	return &BpsCommissionFee{bps: bps}
}

func (c *BpsCommissionFee) Calculate(notional float64) float64 {
	return utils.CalculateFee(notional, c.bps)
}

func (c *BpsCommissionFee) Bps() float64 {
	return c.bps
}
