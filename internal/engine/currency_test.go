package engine

import (
	"errors"
	"testing"
)

func TestConvertRejectsBadRate(t *testing.T) {
	for _, rate := range []float64{0, -1, -147.2} {
		if _, err := Convert(10, rate); !errors.Is(err, ErrInvalidRate) {
			t.Errorf("Convert with rate %v: got %v, want ErrInvalidRate", rate, err)
		}
		if _, err := ToSettlement(10, rate); !errors.Is(err, ErrInvalidRate) {
			t.Errorf("ToSettlement with rate %v: got %v, want ErrInvalidRate", rate, err)
		}
		if _, err := ToTransaction(10, rate); !errors.Is(err, ErrInvalidRate) {
			t.Errorf("ToTransaction with rate %v: got %v, want ErrInvalidRate", rate, err)
		}
	}
}

func TestConvertDoesNotRound(t *testing.T) {
	got, err := Convert(1.005, 147.2)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !almostEqual(got, 147.936) {
		t.Errorf("Convert(1.005, 147.2): got %v, want 147.936", got)
	}
}

func TestToSettlementRounds(t *testing.T) {
	got, err := ToSettlement(1.005, 147.2)
	if err != nil {
		t.Fatalf("ToSettlement failed: %v", err)
	}
	if got != 148 {
		t.Errorf("ToSettlement(1.005, 147.2): got %v, want 148", got)
	}
}

func TestToTransaction(t *testing.T) {
	got, err := ToTransaction(1472, 147.2)
	if err != nil {
		t.Fatalf("ToTransaction failed: %v", err)
	}
	if !almostEqual(got, 10) {
		t.Errorf("ToTransaction(1472, 147.2): got %v, want 10", got)
	}
}
