package engine

// UK import VAT rule: consignments under the threshold get VAT charged at
// the point of sale, at or above it VAT is collected at import instead.
// Both values are fixed by law, not configuration.
const (
	VATThreshold = 135.0
	VATRate      = 0.20
)

// IsUnderVATThreshold reports whether point-of-sale VAT applies. The
// comparison is strictly less-than: a price of exactly 135 is settled at
// import.
func IsUnderVATThreshold(price float64) bool {
	return price < VATThreshold
}

// VATAmount returns the VAT due at the point of sale, zero at or above the
// threshold.
func VATAmount(price float64) float64 {
	if IsUnderVATThreshold(price) {
		return price * VATRate
	}
	return 0
}

// PriceInclVAT returns the buyer-facing price with any point-of-sale VAT
// added.
func PriceInclVAT(price float64) float64 {
	return price + VATAmount(price)
}
