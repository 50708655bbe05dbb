// Package engine computes cross-border selling profitability: a forward
// evaluator that turns a candidate selling price into a full fee/tax/profit
// breakdown, and a reverse solver that finds the price hitting a target
// profit margin. All functions are pure; every value is built per call and
// never mutated afterwards.
package engine

// FeeSchedule bundles the marketplace fee policy for one computation.
// Rates ending in Rate are fractions (0.10 = 10%), fields ending in
// Percent are percentages (10 = 10%), matching how each marketplace
// publishes them.
type FeeSchedule struct {
	SalesTaxRate             float64 // point-of-sale tax added on top of the listed price
	CategoryFeePercent       float64 // marketplace category fee, charged on the tax-inclusive price
	PaymentFeePercent        float64 // payment processing fee, charged on the tax-inclusive price
	FixedListingFee          float64 // flat per-listing fee, transaction currency
	FeeTaxRate               float64 // tax levied on the fees themselves
	PayoutFeeRate            float64 // payout provider fee on net proceeds
	ExchangeSurchargePerUnit float64 // flat settlement-currency spread per unit of transaction currency converted
}

// Validate rejects schedules outside the domain where profit margin is
// monotonically non-decreasing in price. The bound below keeps the marginal
// fee take on one extra unit of price strictly under one unit, which is
// what makes the reverse solver's bisection sound.
func (s FeeSchedule) Validate() error {
	switch {
	case s.SalesTaxRate < 0:
		return invalidInput("sales_tax_rate", "must not be negative")
	case s.CategoryFeePercent < 0:
		return invalidInput("category_fee_percent", "must not be negative")
	case s.PaymentFeePercent < 0:
		return invalidInput("payment_fee_percent", "must not be negative")
	case s.FixedListingFee < 0:
		return invalidInput("fixed_listing_fee", "must not be negative")
	case s.FeeTaxRate < 0:
		return invalidInput("fee_tax_rate", "must not be negative")
	case s.PayoutFeeRate < 0:
		return invalidInput("payout_fee_rate", "must not be negative")
	case s.ExchangeSurchargePerUnit < 0:
		return invalidInput("exchange_surcharge", "must not be negative")
	}

	if s.PayoutFeeRate >= 1 {
		return invalidInput("payout_fee_rate", "must be below 100%")
	}

	adValorem := (s.CategoryFeePercent + s.PaymentFeePercent) / 100 *
		(1 + s.SalesTaxRate) * (1 + s.FeeTaxRate)
	if adValorem >= 1 {
		return invalidInput("fee_schedule", "combined ad-valorem fees reach 100% of price")
	}

	return nil
}

// CostStructure is the settlement-currency cost side of one computation.
type CostStructure struct {
	CostPrice    float64
	ShippingCost float64
}

func (c CostStructure) validate() error {
	if c.CostPrice < 0 {
		return invalidInput("cost_price", "must not be negative")
	}
	if c.ShippingCost < 0 {
		return invalidInput("shipping_cost", "must not be negative")
	}
	return nil
}

// FeeBreakdown is the ordered marketplace fee chain for one selling price,
// all amounts in the transaction currency.
type FeeBreakdown struct {
	PriceInclSalesTax float64
	CategoryFee       float64
	PaymentFee        float64
	FeeTax            float64
	GrossBeforePayout float64
	PayoutFee         float64
	TotalFees         float64
}

// ProfitDetail is the complete forward-evaluation output. Transaction and
// settlement amounts are both carried unrounded; rounding happens only at
// the display boundary.
type ProfitDetail struct {
	SellingPrice                  float64 // transaction currency, tax-exclusive
	SellingPriceInclTax           float64
	SellingPriceSettlement        float64
	SellingPriceInclTaxSettlement float64

	CategoryFee     float64
	PaymentFee      float64
	FeeTax          float64
	PayoutFee       float64
	FixedListingFee float64
	TotalFees       float64

	CategoryFeeSettlement float64
	PaymentFeeSettlement  float64
	FeeTaxSettlement      float64
	PayoutFeeSettlement   float64
	TotalFeesSettlement   float64

	ExchangeFeeSettlement float64

	NetSelling           float64 // price less total fees, transaction currency
	NetSellingSettlement float64 // after conversion and exchange surcharge

	GrossProfit           float64 // before payout fee, transaction currency
	GrossProfitSettlement float64

	NetProfitSettlement float64
	ProfitMargin        float64 // percent, relative to tax-exclusive revenue

	Rate         float64
	CostPrice    float64
	ShippingCost float64
}

// SolveResult is the reverse solver output. Converged is false when the
// iteration budget ran out and the prices are the final bracket midpoint,
// a best-effort approximation the caller should flag rather than present
// as exact.
type SolveResult struct {
	PriceTransaction float64
	PriceSettlement  float64 // converted and rounded up to avoid under-quoting
	AchievedMargin   float64
	Iterations       int
	Converged        bool
}
