package services

import "errors"

// Booking validation errors. All of these are user-facing and map to 4xx
// responses in the handlers; none are fatal.
var (
	ErrInvalidRange         = errors.New("checkout date must be after checkin date")
	ErrStayLengthInvalid    = errors.New("stay length is outside the villa's night limits")
	ErrGuestCountInvalid    = errors.New("guest count must be between 1 and the villa's max guests")
	ErrDateRangeUnavailable = errors.New("selected dates are no longer available")
	ErrVillaNotFound        = errors.New("villa not found")
	ErrVillaInactive        = errors.New("villa is not accepting bookings")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrBlockNotFound        = errors.New("calendar block not found")
	ErrInvalidTransition    = errors.New("booking status does not allow this action")
	ErrNotAuthorized        = errors.New("caller is not allowed to perform this action")
	ErrCompletionTooEarly   = errors.New("booking cannot be completed before checkout")
)
