package engine

// Evaluate produces the complete profit breakdown for one candidate
// tax-exclusive selling price. It is fail-fast: a zero or negative rate
// returns ErrMissingRate before anything is computed, negative inputs an
// InvalidInputError. Identical inputs always produce identical output;
// the summation order below is fixed.
func Evaluate(price float64, cost CostStructure, s FeeSchedule, rate float64) (ProfitDetail, error) {
	if rate <= 0 {
		return ProfitDetail{}, ErrMissingRate
	}
	if price < 0 {
		return ProfitDetail{}, invalidInput("selling_price", "must not be negative")
	}
	if err := cost.validate(); err != nil {
		return ProfitDetail{}, err
	}
	if err := s.Validate(); err != nil {
		return ProfitDetail{}, err
	}

	fees := CalculateFees(price, s)

	netSelling := price - fees.TotalFees
	exchangeFee := netSelling * s.ExchangeSurchargePerUnit
	netSellingSettlement := netSelling*rate - exchangeFee

	netProfit := netSellingSettlement - cost.CostPrice - cost.ShippingCost

	revenueExclTax := price * rate
	margin := 0.0
	if revenueExclTax != 0 {
		margin = netProfit / revenueExclTax * 100
	}

	return ProfitDetail{
		SellingPrice:                  price,
		SellingPriceInclTax:           fees.PriceInclSalesTax,
		SellingPriceSettlement:        price * rate,
		SellingPriceInclTaxSettlement: fees.PriceInclSalesTax * rate,

		CategoryFee:     fees.CategoryFee,
		PaymentFee:      fees.PaymentFee,
		FeeTax:          fees.FeeTax,
		PayoutFee:       fees.PayoutFee,
		FixedListingFee: s.FixedListingFee,
		TotalFees:       fees.TotalFees,

		CategoryFeeSettlement: fees.CategoryFee * rate,
		PaymentFeeSettlement:  fees.PaymentFee * rate,
		FeeTaxSettlement:      fees.FeeTax * rate,
		PayoutFeeSettlement:   fees.PayoutFee * rate,
		TotalFeesSettlement:   fees.TotalFees * rate,

		ExchangeFeeSettlement: exchangeFee,

		NetSelling:           netSelling,
		NetSellingSettlement: netSellingSettlement,

		GrossProfit:           fees.GrossBeforePayout,
		GrossProfitSettlement: fees.GrossBeforePayout * rate,

		NetProfitSettlement: netProfit,
		ProfitMargin:        margin,

		Rate:         rate,
		CostPrice:    cost.CostPrice,
		ShippingCost: cost.ShippingCost,
	}, nil
}
