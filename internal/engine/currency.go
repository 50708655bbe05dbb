package engine

import "math"

// Convert multiplies a transaction-currency amount into the settlement
// currency without rounding. Use this for intermediate arithmetic so
// rounding error never compounds across the fee chain.
func Convert(amount, rate float64) (float64, error) {
	if rate <= 0 {
		return 0, ErrInvalidRate
	}
	return amount * rate, nil
}

// ToSettlement converts and rounds to the nearest settlement unit. This is
// the display-boundary form; never feed its result back into further
// arithmetic.
func ToSettlement(amount, rate float64) (float64, error) {
	if rate <= 0 {
		return 0, ErrInvalidRate
	}
	return math.Round(amount * rate), nil
}

// ToTransaction converts a settlement-currency amount back into the
// transaction currency.
func ToTransaction(amount, rate float64) (float64, error) {
	if rate <= 0 {
		return 0, ErrInvalidRate
	}
	return amount / rate, nil
}
