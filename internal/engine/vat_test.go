package engine

import "testing"

func TestIsUnderVATThreshold(t *testing.T) {
	cases := []struct {
		price float64
		want  bool
	}{
		{0, true},
		{134.999, true},
		{135, false}, // boundary is exclusive
		{135.01, false},
		{500, false},
	}

	for _, tc := range cases {
		if got := IsUnderVATThreshold(tc.price); got != tc.want {
			t.Errorf("IsUnderVATThreshold(%v): got %v, want %v", tc.price, got, tc.want)
		}
	}
}

func TestVATAmount(t *testing.T) {
	if got := VATAmount(100); !almostEqual(got, 20) {
		t.Errorf("VATAmount(100): got %.6f, want 20", got)
	}
	if got := VATAmount(135); got != 0 {
		t.Errorf("VATAmount(135): got %.6f, want 0", got)
	}
}

func TestPriceInclVAT(t *testing.T) {
	if got := PriceInclVAT(100); !almostEqual(got, 120) {
		t.Errorf("PriceInclVAT(100): got %.6f, want 120", got)
	}
	if got := PriceInclVAT(200); got != 200 {
		t.Errorf("PriceInclVAT(200): got %.6f, want 200", got)
	}
}
