package models

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingRequested BookingStatus = "requested"
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingModified  BookingStatus = "modified"
	BookingCancelled BookingStatus = "cancelled"
	BookingRejected  BookingStatus = "rejected"
	BookingCompleted BookingStatus = "completed"
)

// IsBlocking reports whether a booking in this status reserves its date
// range against new bookings. Cancelled, rejected and completed stays
// release their dates.
func (s BookingStatus) IsBlocking() bool {
	switch s {
	case BookingRequested, BookingPending, BookingConfirmed, BookingModified:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingCancelled, BookingRejected, BookingCompleted:
		return true
	}
	return false
}

// CanTransitionTo encodes the booking lifecycle:
// requested/pending -> confirmed (host approval or instant-book),
// requested/pending/confirmed -> modified,
// any blocking status -> cancelled,
// requested/pending -> rejected,
// confirmed/modified -> completed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch next {
	case BookingConfirmed:
		return s == BookingRequested || s == BookingPending
	case BookingModified:
		return s == BookingRequested || s == BookingPending || s == BookingConfirmed || s == BookingModified
	case BookingCancelled:
		return s.IsBlocking()
	case BookingRejected:
		return s == BookingRequested || s == BookingPending
	case BookingCompleted:
		return s == BookingConfirmed || s == BookingModified
	}
	return false
}

// BlockingStatusStrings is the status filter used when querying bookings
// that reserve dates against new requests.
func BlockingStatusStrings() []string {
	return []string{
		string(BookingRequested),
		string(BookingPending),
		string(BookingConfirmed),
		string(BookingModified),
	}
}

// StayRange is a half-open [CheckIn, CheckOut) date interval. The checkout
// day itself is excluded so back-to-back stays on the same villa never
// conflict.
type StayRange struct {
	CheckIn  time.Time `json:"checkin_date"`
	CheckOut time.Time `json:"checkout_date"`
}

// Nights returns the number of nights covered by the range.
func (r StayRange) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// IsValid reports whether checkout is strictly after checkin.
func (r StayRange) IsValid() bool {
	return r.CheckOut.After(r.CheckIn)
}

// Overlaps uses the closed-form half-open comparison: two ranges share a
// night iff each starts before the other ends.
func (r StayRange) Overlaps(o StayRange) bool {
	return r.CheckIn.Before(o.CheckOut) && o.CheckIn.Before(r.CheckOut)
}

type GuestDetails struct {
	FullName    string `json:"fullname"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Note        string `json:"note,omitempty"`
}

type Booking struct {
	Id           uuid.UUID     `db:"id" json:"id"`
	VillaId      uuid.UUID     `db:"villa_id" json:"villa_id"`
	GuestId      uuid.UUID     `db:"guest_id" json:"guest_id"`
	CheckIn      time.Time     `db:"checkin_date" json:"checkin_date"`
	CheckOut     time.Time     `db:"checkout_date" json:"checkout_date"`
	NumGuests    int           `db:"num_guests" json:"num_guests"`
	GuestDetails GuestDetails  `db:"guest_details" json:"guest_details"`
	Status       BookingStatus `db:"status" json:"status"`
	TotalPrice   float64       `db:"total_price" json:"total_price"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// Range returns the booking's stay interval.
func (b *Booking) Range() StayRange {
	return StayRange{CheckIn: b.CheckIn, CheckOut: b.CheckOut}
}

// CalendarBlock is a host-set blackout range on a villa, independent of
// bookings. Treated with the same half-open semantics as stays: EndDate
// is exclusive, so a one-day blackout has EndDate = StartDate + 1 day
// (the handler widens start == end input to that form).
type CalendarBlock struct {
	Id        uuid.UUID `db:"id" json:"id"`
	VillaId   uuid.UUID `db:"villa_id" json:"villa_id"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	Reason    string    `db:"reason" json:"reason,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Range returns the blocked interval.
func (cb CalendarBlock) Range() StayRange {
	return StayRange{CheckIn: cb.StartDate, CheckOut: cb.EndDate}
}
