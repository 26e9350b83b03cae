package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/villabay/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func stay(checkin, checkout time.Time) models.StayRange {
	return models.StayRange{CheckIn: checkin, CheckOut: checkout}
}

func testVilla() *models.Villa {
	return &models.Villa{
		Id:            uuid.New(),
		HostId:        uuid.New(),
		Name:          "Sea Breeze",
		MaxGuests:     6,
		MinNights:     2,
		MaxNights:     14,
		PricePerNight: 400,
		CleaningFee:   50,
		ServiceFee:    20,
		Taxes:         10,
		IsInstantBook: false,
		Status:        models.StatusActive,
	}
}

func bookingWithRange(status models.BookingStatus, checkin, checkout time.Time) *models.Booking {
	return &models.Booking{
		Id:       uuid.New(),
		Status:   status,
		CheckIn:  checkin,
		CheckOut: checkout,
	}
}

func TestCheckAvailabilityInvalidRange(t *testing.T) {
	villa := testVilla()

	cases := []models.StayRange{
		stay(date(2026, 7, 10), date(2026, 7, 10)), // zero nights
		stay(date(2026, 7, 12), date(2026, 7, 10)), // checkout before checkin
	}
	for _, c := range cases {
		if err := CheckAvailability(villa, c, nil, nil); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("range %v to %v: got %v, want ErrInvalidRange", c.CheckIn, c.CheckOut, err)
		}
	}
}

func TestCheckAvailabilityStayLengthBounds(t *testing.T) {
	villa := testVilla() // min 2, max 14

	if err := CheckAvailability(villa, stay(date(2026, 7, 1), date(2026, 7, 2)), nil, nil); !errors.Is(err, ErrStayLengthInvalid) {
		t.Errorf("1 night below min: got %v, want ErrStayLengthInvalid", err)
	}
	if err := CheckAvailability(villa, stay(date(2026, 7, 1), date(2026, 7, 16)), nil, nil); !errors.Is(err, ErrStayLengthInvalid) {
		t.Errorf("15 nights above max: got %v, want ErrStayLengthInvalid", err)
	}
	// Exactly at the bounds is fine
	if err := CheckAvailability(villa, stay(date(2026, 7, 1), date(2026, 7, 3)), nil, nil); err != nil {
		t.Errorf("2 nights at min: got %v, want nil", err)
	}
	if err := CheckAvailability(villa, stay(date(2026, 7, 1), date(2026, 7, 15)), nil, nil); err != nil {
		t.Errorf("14 nights at max: got %v, want nil", err)
	}
}

func TestCheckAvailabilityOverlap(t *testing.T) {
	villa := testVilla()
	existing := []*models.Booking{
		bookingWithRange(models.BookingConfirmed, date(2026, 7, 10), date(2026, 7, 15)),
	}

	cases := []struct {
		name    string
		request models.StayRange
		wantErr bool
	}{
		{"identical range", stay(date(2026, 7, 10), date(2026, 7, 15)), true},
		{"request straddles start", stay(date(2026, 7, 8), date(2026, 7, 11)), true},
		{"request straddles end", stay(date(2026, 7, 14), date(2026, 7, 17)), true},
		{"request contains existing", stay(date(2026, 7, 8), date(2026, 7, 17)), true},
		{"request inside existing", stay(date(2026, 7, 11), date(2026, 7, 13)), true},
		{"checkin on their checkout day", stay(date(2026, 7, 15), date(2026, 7, 18)), false},
		{"checkout on their checkin day", stay(date(2026, 7, 7), date(2026, 7, 10)), false},
		{"fully before", stay(date(2026, 7, 1), date(2026, 7, 5)), false},
		{"fully after", stay(date(2026, 7, 20), date(2026, 7, 24)), false},
	}

	for _, tc := range cases {
		err := CheckAvailability(villa, tc.request, existing, nil)
		if tc.wantErr && !errors.Is(err, ErrDateRangeUnavailable) {
			t.Errorf("%s: got %v, want ErrDateRangeUnavailable", tc.name, err)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: got %v, want nil", tc.name, err)
		}
	}
}

func TestCheckAvailabilityIgnoresNonBlockingBookings(t *testing.T) {
	villa := testVilla()
	request := stay(date(2026, 7, 10), date(2026, 7, 15))

	for _, status := range []models.BookingStatus{models.BookingCancelled, models.BookingRejected, models.BookingCompleted} {
		existing := []*models.Booking{bookingWithRange(status, date(2026, 7, 10), date(2026, 7, 15))}
		if err := CheckAvailability(villa, request, existing, nil); err != nil {
			t.Errorf("status %s should release dates: got %v", status, err)
		}
	}

	for _, status := range []models.BookingStatus{models.BookingRequested, models.BookingPending, models.BookingConfirmed, models.BookingModified} {
		existing := []*models.Booking{bookingWithRange(status, date(2026, 7, 10), date(2026, 7, 15))}
		if err := CheckAvailability(villa, request, existing, nil); !errors.Is(err, ErrDateRangeUnavailable) {
			t.Errorf("status %s should block dates: got %v", status, err)
		}
	}
}

func TestCheckAvailabilityCalendarBlocks(t *testing.T) {
	villa := testVilla()
	blocks := []models.CalendarBlock{
		{Id: uuid.New(), VillaId: villa.Id, StartDate: date(2026, 8, 1), EndDate: date(2026, 8, 10), Reason: "maintenance"},
	}

	if err := CheckAvailability(villa, stay(date(2026, 8, 5), date(2026, 8, 8)), nil, blocks); !errors.Is(err, ErrDateRangeUnavailable) {
		t.Errorf("stay inside block: got %v, want ErrDateRangeUnavailable", err)
	}
	// Half-open: checking in the day a block ends is allowed
	if err := CheckAvailability(villa, stay(date(2026, 8, 10), date(2026, 8, 13)), nil, blocks); err != nil {
		t.Errorf("stay starting on block end: got %v, want nil", err)
	}
	if err := CheckAvailability(villa, stay(date(2026, 7, 28), date(2026, 8, 1)), nil, blocks); err != nil {
		t.Errorf("stay ending on block start: got %v, want nil", err)
	}
}

func TestCheckAvailabilityIsDeterministic(t *testing.T) {
	villa := testVilla()
	request := stay(date(2026, 7, 10), date(2026, 7, 13))
	existing := []*models.Booking{
		bookingWithRange(models.BookingConfirmed, date(2026, 7, 1), date(2026, 7, 5)),
	}

	first := CheckAvailability(villa, request, existing, nil)
	for i := 0; i < 100; i++ {
		if got := CheckAvailability(villa, request, existing, nil); !errors.Is(got, first) && got != first {
			t.Fatalf("iteration %d: verdict changed from %v to %v", i, first, got)
		}
	}
}

func TestParseStayRange(t *testing.T) {
	r, err := ParseStayRange("2026-07-10", "2026-07-15")
	if err != nil {
		t.Fatalf("valid range: %v", err)
	}
	if r.Nights() != 5 {
		t.Errorf("nights = %d, want 5", r.Nights())
	}

	if _, err := ParseStayRange("2026-07-15", "2026-07-10"); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("reversed range: got %v, want ErrInvalidRange", err)
	}
	if _, err := ParseStayRange("not-a-date", "2026-07-10"); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("garbage checkin: got %v, want ErrInvalidRange", err)
	}
	if _, err := ParseStayRange("2026-07-10", "2026-07-10"); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("zero-night range: got %v, want ErrInvalidRange", err)
	}
}

func TestParseBlockRangeSingleDay(t *testing.T) {
	// A host blanking out one day may pass the same start and end date;
	// the range widens to the half-open day interval.
	r, err := ParseBlockRange("2026-08-05", "2026-08-05")
	if err != nil {
		t.Fatalf("single-day block: %v", err)
	}
	if !r.CheckIn.Equal(date(2026, 8, 5)) || !r.CheckOut.Equal(date(2026, 8, 6)) {
		t.Errorf("range = %v to %v, want 2026-08-05 to 2026-08-06", r.CheckIn, r.CheckOut)
	}

	r, err = ParseBlockRange("2026-08-05", "2026-08-10")
	if err != nil {
		t.Fatalf("multi-day block: %v", err)
	}
	if r.Nights() != 5 {
		t.Errorf("nights = %d, want 5", r.Nights())
	}

	if _, err := ParseBlockRange("2026-08-10", "2026-08-05"); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("reversed block: got %v, want ErrInvalidRange", err)
	}
	if _, err := ParseBlockRange("bad", "2026-08-05"); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("garbage start: got %v, want ErrInvalidRange", err)
	}
}

func TestNormalizeDateStripsTime(t *testing.T) {
	in := time.Date(2026, 7, 10, 18, 42, 3, 500, time.UTC)
	got := NormalizeDate(in)
	want := date(2026, 7, 10)
	if !got.Equal(want) {
		t.Errorf("NormalizeDate = %v, want %v", got, want)
	}
}
