package commission_fee

// ZeroCommissionFee implements CommissionFee interface with zero commission.
type ZeroCommissionFee struct{}

// NewZeroCommissionFee creates a new zero commission fee.
func NewZeroCommissionFee() CommissionFee {
	return &ZeroCommissionFee{}
}

// Calculate returns 0 for any notional.
func (c *ZeroCommissionFee) Calculate(_ float64) float64 {
	return 0.0
}

func (c *ZeroCommissionFee) Bps() float64 {
	return 0
}
