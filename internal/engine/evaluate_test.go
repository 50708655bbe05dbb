package engine

import (
	"errors"
	"testing"
)

func testSchedule() FeeSchedule {
	return FeeSchedule{
		SalesTaxRate:             0.0671,
		CategoryFeePercent:       9,
		PaymentFeePercent:        1.35,
		FixedListingFee:          0.40,
		FeeTaxRate:               0.10,
		PayoutFeeRate:            0.02,
		ExchangeSurchargePerUnit: 0.5,
	}
}

func TestEvaluateMissingRate(t *testing.T) {
	cost := CostStructure{CostPrice: 3000, ShippingCost: 1450}

	for _, rate := range []float64{0, -147.2} {
		_, err := Evaluate(100, cost, testSchedule(), rate)
		if !errors.Is(err, ErrMissingRate) {
			t.Errorf("rate %v: got %v, want ErrMissingRate", rate, err)
		}
	}
}

func TestEvaluateRejectsNegativeInputs(t *testing.T) {
	cases := []struct {
		name  string
		price float64
		cost  CostStructure
	}{
		{"negative price", -1, CostStructure{CostPrice: 100}},
		{"negative cost", 100, CostStructure{CostPrice: -100}},
		{"negative shipping", 100, CostStructure{ShippingCost: -1}},
	}

	for _, tc := range cases {
		_, err := Evaluate(tc.price, tc.cost, testSchedule(), 147.2)
		var inputErr *InvalidInputError
		if !errors.As(err, &inputErr) {
			t.Errorf("%s: got %v, want InvalidInputError", tc.name, err)
		}
	}
}

func TestEvaluateZeroPrice(t *testing.T) {
	cost := CostStructure{CostPrice: 3000, ShippingCost: 1450}

	d, err := Evaluate(0, cost, testSchedule(), 147.2)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if d.ProfitMargin != 0 {
		t.Errorf("margin at zero price: got %v, want 0", d.ProfitMargin)
	}
	if d.NetProfitSettlement >= 0 {
		t.Errorf("net profit at zero price should be negative, got %v", d.NetProfitSettlement)
	}
}

func TestEvaluateBreakdown(t *testing.T) {
	cost := CostStructure{CostPrice: 3000, ShippingCost: 1450}
	s := testSchedule()
	rate := 147.2

	d, err := Evaluate(100, cost, s, rate)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	fees := CalculateFees(100, s)
	wantNetSelling := 100 - fees.TotalFees
	if !almostEqual(d.NetSelling, wantNetSelling) {
		t.Errorf("net selling: got %.6f, want %.6f", d.NetSelling, wantNetSelling)
	}

	wantExchangeFee := wantNetSelling * s.ExchangeSurchargePerUnit
	if !almostEqual(d.ExchangeFeeSettlement, wantExchangeFee) {
		t.Errorf("exchange fee: got %.6f, want %.6f", d.ExchangeFeeSettlement, wantExchangeFee)
	}

	wantNetProfit := wantNetSelling*rate - wantExchangeFee - 3000 - 1450
	if !almostEqual(d.NetProfitSettlement, wantNetProfit) {
		t.Errorf("net profit: got %.6f, want %.6f", d.NetProfitSettlement, wantNetProfit)
	}

	wantMargin := wantNetProfit / (100 * rate) * 100
	if !almostEqual(d.ProfitMargin, wantMargin) {
		t.Errorf("margin: got %.6f, want %.6f", d.ProfitMargin, wantMargin)
	}

	if !almostEqual(d.SellingPriceInclTax, 106.71) {
		t.Errorf("price incl tax: got %.6f, want 106.71", d.SellingPriceInclTax)
	}
	if !almostEqual(d.SellingPriceSettlement, 14720) {
		t.Errorf("settlement price: got %.6f, want 14720", d.SellingPriceSettlement)
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	cost := CostStructure{CostPrice: 3000, ShippingCost: 1450}

	a, err := Evaluate(123.45, cost, testSchedule(), 147.2)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	b, err := Evaluate(123.45, cost, testSchedule(), 147.2)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if a != b {
		t.Errorf("identical inputs produced different details:\n%+v\n%+v", a, b)
	}
}

func TestEvaluateMonotonicInPrice(t *testing.T) {
	cost := CostStructure{CostPrice: 3000, ShippingCost: 1450}
	s := testSchedule()

	prevProfit := 0.0
	prevMargin := 0.0
	for i, price := range []float64{10, 25, 50, 100, 200, 400, 800} {
		d, err := Evaluate(price, cost, s, 147.2)
		if err != nil {
			t.Fatalf("Evaluate(%v) failed: %v", price, err)
		}
		if i > 0 {
			if d.NetProfitSettlement <= prevProfit {
				t.Errorf("net profit not increasing at price %v: %v <= %v", price, d.NetProfitSettlement, prevProfit)
			}
			if d.ProfitMargin <= prevMargin {
				t.Errorf("margin not increasing at price %v: %v <= %v", price, d.ProfitMargin, prevMargin)
			}
		}
		prevProfit = d.NetProfitSettlement
		prevMargin = d.ProfitMargin
	}
}
