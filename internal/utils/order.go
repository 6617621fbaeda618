package utils

import "math"

// BpsToRatio converts basis points into a fraction.
func BpsToRatio(bps float64) float64 {
	return bps / 10000
}

// CalculateEntryNotional returns how much cash to commit to a new lot.
// The target is entrySizePercent of equity, capped so that notional plus the
// entry fee never exceeds cash.
func CalculateEntryNotional(equity float64, cash float64, entrySizePercent float64, feeBps float64) float64 {
	target := equity * entrySizePercent / 100
	affordable := cash / (1 + BpsToRatio(feeBps))

	return math.Min(target, affordable)
}

// CalculateFee returns the fee charged on a notional at the given rate in basis points.
func CalculateFee(notional float64, feeBps float64) float64 {
	return notional * BpsToRatio(feeBps)
}
