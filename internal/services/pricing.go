package services

import (
	"math"

	"github.com/joshua-takyi/villabay/internal/models"
)

// PriceSummary is the derived, non-persisted breakdown returned by the
// preview and booking endpoints. Amounts are decimal with cent precision.
type PriceSummary struct {
	NightlyPrice float64 `json:"nightly_price"`
	Nights       int     `json:"nights"`
	CleaningFee  float64 `json:"cleaning_fee"`
	ServiceFee   float64 `json:"service_fee"`
	Taxes        float64 `json:"taxes"`
	TotalPrice   float64 `json:"total_price"`
}

// toCents converts a decimal amount to integer minor units.
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromCents(cents int64) float64 {
	return float64(cents) / 100
}

// ComputePriceSummary prices a stay. The nightly rate is flat (guest count
// does not scale it) and all arithmetic happens in cents so the total is
// exact at cent precision. Pure function; never mutates the villa.
func ComputePriceSummary(villa *models.Villa, nights int, numGuests int) (*PriceSummary, error) {
	if nights < 1 {
		return nil, ErrInvalidRange
	}
	if numGuests < 1 || numGuests > villa.MaxGuests {
		return nil, ErrGuestCountInvalid
	}

	nightlyCents := toCents(villa.PricePerNight)
	cleaningCents := toCents(villa.CleaningFee)
	serviceCents := toCents(villa.ServiceFee)
	taxCents := toCents(villa.Taxes)

	totalCents := nightlyCents*int64(nights) + cleaningCents + serviceCents + taxCents

	return &PriceSummary{
		NightlyPrice: fromCents(nightlyCents),
		Nights:       nights,
		CleaningFee:  fromCents(cleaningCents),
		ServiceFee:   fromCents(serviceCents),
		Taxes:        fromCents(taxCents),
		TotalPrice:   fromCents(totalCents),
	}, nil
}
