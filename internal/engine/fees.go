package engine

// CalculateFees runs the marketplace fee chain for one tax-exclusive
// selling price. The stage order is load-bearing: category and payment
// fees are charged on the tax-inclusive price, the fee tax on the fees
// plus the flat listing fee, while gross profit before payout subtracts
// the fees from the tax-exclusive price. That asymmetry is how the
// marketplace actually bills, not an accident.
func CalculateFees(price float64, s FeeSchedule) FeeBreakdown {
	priceInclSalesTax := price * (1 + s.SalesTaxRate)

	categoryFee := priceInclSalesTax * s.CategoryFeePercent / 100
	paymentFee := priceInclSalesTax * s.PaymentFeePercent / 100

	feeTax := (categoryFee + paymentFee + s.FixedListingFee) * s.FeeTaxRate

	grossBeforePayout := price - (categoryFee + paymentFee + feeTax)
	payoutFee := grossBeforePayout * s.PayoutFeeRate

	totalFees := categoryFee + paymentFee + feeTax + payoutFee + s.FixedListingFee

	return FeeBreakdown{
		PriceInclSalesTax: priceInclSalesTax,
		CategoryFee:       categoryFee,
		PaymentFee:        paymentFee,
		FeeTax:            feeTax,
		GrossBeforePayout: grossBeforePayout,
		PayoutFee:         payoutFee,
		TotalFees:         totalFees,
	}
}
