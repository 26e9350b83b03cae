package services

import (
	"errors"
	"testing"
)

func TestComputePriceSummaryBreakdown(t *testing.T) {
	villa := testVilla() // 400/night, 50 cleaning, 20 service, 10 taxes

	summary, err := ComputePriceSummary(villa, 2, 4)
	if err != nil {
		t.Fatalf("ComputePriceSummary: %v", err)
	}

	if summary.Nights != 2 {
		t.Errorf("nights = %d, want 2", summary.Nights)
	}
	if summary.NightlyPrice != 400 {
		t.Errorf("nightly = %v, want 400", summary.NightlyPrice)
	}
	// 400*2 + 50 + 20 + 10
	if summary.TotalPrice != 880 {
		t.Errorf("total = %v, want 880", summary.TotalPrice)
	}
}

func TestComputePriceSummaryExactAtCentPrecision(t *testing.T) {
	villa := testVilla()
	villa.PricePerNight = 123.45
	villa.CleaningFee = 67.89
	villa.ServiceFee = 0.01
	villa.Taxes = 9.99

	// Totals must equal the cent-level sum for any stay length.
	for nights := 1; nights <= 365; nights++ {
		summary, err := ComputePriceSummary(villa, nights, 2)
		if err != nil {
			t.Fatalf("nights %d: %v", nights, err)
		}
		wantCents := int64(12345)*int64(nights) + 6789 + 1 + 999
		gotCents := int64(summary.TotalPrice * 100)
		// Rounding the float back should land exactly on the cent sum
		if gotCents != wantCents && int64(summary.TotalPrice*100+0.5) != wantCents {
			t.Fatalf("nights %d: total %v, want %v cents", nights, summary.TotalPrice, wantCents)
		}
	}
}

func TestComputePriceSummaryGuestCountIndependent(t *testing.T) {
	villa := testVilla()

	base, err := ComputePriceSummary(villa, 3, 1)
	if err != nil {
		t.Fatalf("ComputePriceSummary: %v", err)
	}
	for guests := 2; guests <= villa.MaxGuests; guests++ {
		summary, err := ComputePriceSummary(villa, 3, guests)
		if err != nil {
			t.Fatalf("guests %d: %v", guests, err)
		}
		if summary.TotalPrice != base.TotalPrice {
			t.Errorf("guests %d: total %v, want %v (flat nightly rate)", guests, summary.TotalPrice, base.TotalPrice)
		}
	}
}

func TestComputePriceSummaryGuestCountBounds(t *testing.T) {
	villa := testVilla() // max 6 guests

	if _, err := ComputePriceSummary(villa, 2, 0); !errors.Is(err, ErrGuestCountInvalid) {
		t.Errorf("0 guests: got %v, want ErrGuestCountInvalid", err)
	}
	if _, err := ComputePriceSummary(villa, 2, 7); !errors.Is(err, ErrGuestCountInvalid) {
		t.Errorf("7 guests over max: got %v, want ErrGuestCountInvalid", err)
	}
	if _, err := ComputePriceSummary(villa, 2, 6); err != nil {
		t.Errorf("6 guests at max: got %v, want nil", err)
	}
}

func TestComputePriceSummaryRejectsZeroNights(t *testing.T) {
	villa := testVilla()
	if _, err := ComputePriceSummary(villa, 0, 2); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("0 nights: got %v, want ErrInvalidRange", err)
	}
}

func TestComputePriceSummaryDeterministic(t *testing.T) {
	villa := testVilla()

	first, err := ComputePriceSummary(villa, 7, 3)
	if err != nil {
		t.Fatalf("ComputePriceSummary: %v", err)
	}
	for i := 0; i < 100; i++ {
		summary, err := ComputePriceSummary(villa, 7, 3)
		if err != nil {
			t.Fatalf("iteration %d: %v", i, err)
		}
		if *summary != *first {
			t.Fatalf("iteration %d: summary changed from %+v to %+v", i, first, summary)
		}
	}
}
