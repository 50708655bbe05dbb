package server

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"profitcalc/internal/engine"
)

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// round2 / round0 round for display only; the engine keeps full precision
// internally. Going through decimal keeps binary-float artifacts like
// 10.670999999999999 out of the rendered amounts.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func round0(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(0).Float64()
	return f
}

// profitDetailDTO is the wire form of an engine.ProfitDetail: transaction
// amounts to two decimals, settlement amounts to whole units.
type profitDetailDTO struct {
	SellingPrice                  float64 `json:"selling_price"`
	SellingPriceInclTax           float64 `json:"selling_price_incl_tax"`
	SellingPriceSettlement        float64 `json:"selling_price_settlement"`
	SellingPriceInclTaxSettlement float64 `json:"selling_price_incl_tax_settlement"`

	CategoryFee     float64 `json:"category_fee"`
	PaymentFee      float64 `json:"payment_fee"`
	FeeTax          float64 `json:"fee_tax"`
	PayoutFee       float64 `json:"payout_fee"`
	FixedListingFee float64 `json:"fixed_listing_fee"`
	TotalFees       float64 `json:"total_fees"`

	CategoryFeeSettlement float64 `json:"category_fee_settlement"`
	PaymentFeeSettlement  float64 `json:"payment_fee_settlement"`
	FeeTaxSettlement      float64 `json:"fee_tax_settlement"`
	PayoutFeeSettlement   float64 `json:"payout_fee_settlement"`
	TotalFeesSettlement   float64 `json:"total_fees_settlement"`

	ExchangeFeeSettlement float64 `json:"exchange_fee_settlement"`

	NetSelling           float64 `json:"net_selling"`
	NetSellingSettlement float64 `json:"net_selling_settlement"`

	GrossProfit           float64 `json:"gross_profit"`
	GrossProfitSettlement float64 `json:"gross_profit_settlement"`

	NetProfitSettlement float64 `json:"net_profit_settlement"`
	ProfitMargin        float64 `json:"profit_margin"`

	Rate         float64 `json:"rate"`
	CostPrice    float64 `json:"cost_price"`
	ShippingCost float64 `json:"shipping_cost"`
}

func renderDetail(d engine.ProfitDetail) profitDetailDTO {
	return profitDetailDTO{
		SellingPrice:                  round2(d.SellingPrice),
		SellingPriceInclTax:           round2(d.SellingPriceInclTax),
		SellingPriceSettlement:        round0(d.SellingPriceSettlement),
		SellingPriceInclTaxSettlement: round0(d.SellingPriceInclTaxSettlement),

		CategoryFee:     round2(d.CategoryFee),
		PaymentFee:      round2(d.PaymentFee),
		FeeTax:          round2(d.FeeTax),
		PayoutFee:       round2(d.PayoutFee),
		FixedListingFee: round2(d.FixedListingFee),
		TotalFees:       round2(d.TotalFees),

		CategoryFeeSettlement: round0(d.CategoryFeeSettlement),
		PaymentFeeSettlement:  round0(d.PaymentFeeSettlement),
		FeeTaxSettlement:      round0(d.FeeTaxSettlement),
		PayoutFeeSettlement:   round0(d.PayoutFeeSettlement),
		TotalFeesSettlement:   round0(d.TotalFeesSettlement),

		ExchangeFeeSettlement: round0(d.ExchangeFeeSettlement),

		NetSelling:           round2(d.NetSelling),
		NetSellingSettlement: round0(d.NetSellingSettlement),

		GrossProfit:           round2(d.GrossProfit),
		GrossProfitSettlement: round0(d.GrossProfitSettlement),

		NetProfitSettlement: round0(d.NetProfitSettlement),
		ProfitMargin:        round2(d.ProfitMargin),

		Rate:         d.Rate,
		CostPrice:    round0(d.CostPrice),
		ShippingCost: round0(d.ShippingCost),
	}
}

type solveResponseDTO struct {
	PriceTransaction float64         `json:"price_transaction"`
	PriceSettlement  float64         `json:"price_settlement"`
	AchievedMargin   float64         `json:"achieved_margin"`
	Iterations       int             `json:"iterations"`
	Converged        bool            `json:"converged"`
	ShippingMethod   string          `json:"shipping_method,omitempty"`
	Detail           profitDetailDTO `json:"detail"`
}

func renderSolve(res engine.SolveResult, detail engine.ProfitDetail, shippingMethod string) solveResponseDTO {
	return solveResponseDTO{
		PriceTransaction: round2(res.PriceTransaction),
		// Already rounded up by the solver; rounding again would undo
		// the ceil.
		PriceSettlement: res.PriceSettlement,
		AchievedMargin:  round2(res.AchievedMargin),
		Iterations:      res.Iterations,
		Converged:       res.Converged,
		ShippingMethod:  shippingMethod,
		Detail:          renderDetail(detail),
	}
}
