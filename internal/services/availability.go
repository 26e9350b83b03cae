package services

import (
	"time"

	"github.com/joshua-takyi/villabay/internal/models"
)

// CheckAvailability decides whether a candidate stay can be booked on a
// villa given its current blocking bookings and host calendar blocks. It is
// a pure function: it never mutates its inputs and identical inputs always
// produce the same verdict.
//
// Intervals are half-open [checkin, checkout): a stay checking out on the
// same day another checks in is a same-day turnover, not a conflict.
func CheckAvailability(villa *models.Villa, stay models.StayRange, existing []*models.Booking, blocks []models.CalendarBlock) error {
	if !stay.IsValid() {
		return ErrInvalidRange
	}

	nights := stay.Nights()
	if nights < villa.MinNights || nights > villa.MaxNights {
		return ErrStayLengthInvalid
	}

	for _, booking := range existing {
		if !booking.Status.IsBlocking() {
			continue
		}
		if stay.Overlaps(booking.Range()) {
			return ErrDateRangeUnavailable
		}
	}

	for _, block := range blocks {
		if stay.Overlaps(block.Range()) {
			return ErrDateRangeUnavailable
		}
	}

	return nil
}

// NormalizeDate strips the time-of-day component so stay arithmetic works
// on whole calendar days.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseStayRange parses YYYY-MM-DD checkin/checkout strings into a
// normalized StayRange.
func ParseStayRange(checkin, checkout string) (models.StayRange, error) {
	start, err := time.Parse("2006-01-02", checkin)
	if err != nil {
		return models.StayRange{}, ErrInvalidRange
	}
	end, err := time.Parse("2006-01-02", checkout)
	if err != nil {
		return models.StayRange{}, ErrInvalidRange
	}

	stay := models.StayRange{CheckIn: NormalizeDate(start), CheckOut: NormalizeDate(end)}
	if !stay.IsValid() {
		return models.StayRange{}, ErrInvalidRange
	}
	return stay, nil
}

// ParseBlockRange parses a host blackout range. Unlike stays, a block may
// name a single day by giving the same start and end date; it is widened
// to the half-open day interval.
func ParseBlockRange(startDate, endDate string) (models.StayRange, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return models.StayRange{}, ErrInvalidRange
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return models.StayRange{}, ErrInvalidRange
	}

	blockRange := models.StayRange{CheckIn: NormalizeDate(start), CheckOut: NormalizeDate(end)}
	if blockRange.CheckOut.Equal(blockRange.CheckIn) {
		blockRange.CheckOut = blockRange.CheckIn.AddDate(0, 0, 1)
	}
	if !blockRange.IsValid() {
		return models.StayRange{}, ErrInvalidRange
	}
	return blockRange, nil
}
