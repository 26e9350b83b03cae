package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/villabay/internal/models"
)

// BookingService wraps the pure availability/pricing functions with
// persistence and the per-villa commit discipline: two concurrent booking
// attempts for overlapping ranges on the same villa must not both succeed,
// so the "re-check overlap, then insert" step runs under a per-villa mutex.
// Previews are read-only and take no lock.
type BookingService struct {
	villasRepo    models.VillasRepo
	bookingsRepo  models.BookingsRepo
	notifications *NotificationService

	mu         sync.Mutex
	villaLocks map[uuid.UUID]*sync.Mutex
}

func NewBookingService(villasRepo models.VillasRepo, bookingsRepo models.BookingsRepo, notifications *NotificationService) *BookingService {
	return &BookingService{
		villasRepo:    villasRepo,
		bookingsRepo:  bookingsRepo,
		notifications: notifications,
		villaLocks:    make(map[uuid.UUID]*sync.Mutex),
	}
}

// villaLock returns the mutex serializing booking commits for one villa.
func (bs *BookingService) villaLock(villaId uuid.UUID) *sync.Mutex {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	lock, ok := bs.villaLocks[villaId]
	if !ok {
		lock = &sync.Mutex{}
		bs.villaLocks[villaId] = lock
	}
	return lock
}

// loadActiveVilla fetches the villa and enforces existence and active status.
func (bs *BookingService) loadActiveVilla(ctx context.Context, villaId uuid.UUID) (*models.Villa, error) {
	villa, err := bs.villasRepo.GetVillaByID(ctx, villaId)
	if err != nil {
		return nil, fmt.Errorf("failed to load villa: %v", err)
	}
	if villa == nil {
		return nil, ErrVillaNotFound
	}
	if !villa.IsActive() {
		return nil, ErrVillaInactive
	}
	return villa, nil
}

// AvailabilityPreview is the advisory response of the preview endpoint.
// A brief staleness window is acceptable here; only the commit path
// re-validates under the lock.
type AvailabilityPreview struct {
	Available    bool          `json:"available"`
	Reason       string        `json:"reason,omitempty"`
	PriceSummary *PriceSummary `json:"price_summary,omitempty"`
}

func (bs *BookingService) PreviewAvailability(ctx context.Context, villaId uuid.UUID, stay models.StayRange, numGuests int) (*AvailabilityPreview, error) {
	villa, err := bs.loadActiveVilla(ctx, villaId)
	if err != nil {
		return nil, err
	}

	if numGuests < 1 || numGuests > villa.MaxGuests {
		return nil, ErrGuestCountInvalid
	}

	existing, err := bs.bookingsRepo.ListBlockingBookings(ctx, villaId)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %v", err)
	}
	blocks, err := bs.bookingsRepo.ListCalendarBlocks(ctx, villaId)
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar blocks: %v", err)
	}

	if err := CheckAvailability(villa, stay, existing, blocks); err != nil {
		if err == ErrDateRangeUnavailable {
			return &AvailabilityPreview{Available: false, Reason: err.Error()}, nil
		}
		return nil, err
	}

	summary, err := ComputePriceSummary(villa, stay.Nights(), numGuests)
	if err != nil {
		return nil, err
	}

	return &AvailabilityPreview{Available: true, PriceSummary: summary}, nil
}

// SubmitBooking creates a booking if the range is still free at commit
// time. A preview that reported available can still lose the race; that
// surfaces as ErrDateRangeUnavailable, which is the expected outcome, not
// a bug.
func (bs *BookingService) SubmitBooking(ctx context.Context, villaId, guestId uuid.UUID, stay models.StayRange, numGuests int, details models.GuestDetails) (*models.Booking, error) {
	villa, err := bs.loadActiveVilla(ctx, villaId)
	if err != nil {
		return nil, err
	}

	if numGuests < 1 || numGuests > villa.MaxGuests {
		return nil, ErrGuestCountInvalid
	}

	lock := bs.villaLock(villaId)
	lock.Lock()
	defer lock.Unlock()

	// Re-validate against persisted state inside the critical section
	existing, err := bs.bookingsRepo.ListBlockingBookings(ctx, villaId)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %v", err)
	}
	blocks, err := bs.bookingsRepo.ListCalendarBlocks(ctx, villaId)
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar blocks: %v", err)
	}

	if err := CheckAvailability(villa, stay, existing, blocks); err != nil {
		return nil, err
	}

	summary, err := ComputePriceSummary(villa, stay.Nights(), numGuests)
	if err != nil {
		return nil, err
	}

	status := models.BookingRequested
	if villa.IsInstantBook {
		status = models.BookingConfirmed
	}

	now := time.Now()
	booking := &models.Booking{
		Id:           uuid.New(),
		VillaId:      villaId,
		GuestId:      guestId,
		CheckIn:      stay.CheckIn,
		CheckOut:     stay.CheckOut,
		NumGuests:    numGuests,
		GuestDetails: details,
		Status:       status,
		TotalPrice:   summary.TotalPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := bs.bookingsRepo.CreateBooking(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %v", err)
	}

	if bs.notifications != nil {
		kind := models.NotificationBookingRequested
		title := "New booking request"
		if status == models.BookingConfirmed {
			kind = models.NotificationBookingConfirmed
			title = "New confirmed booking"
		}
		bs.notifications.Notify(ctx, villa.HostId, kind, title,
			fmt.Sprintf("%s, %s to %s", villa.Name, stay.CheckIn.Format("2006-01-02"), stay.CheckOut.Format("2006-01-02")),
			created.Id.String())
	}

	return created, nil
}

// ModifyBooking re-validates a new range and guest count for an existing
// booking, treating the booking's own reservation as non-blocking. On any
// failure the stored booking is left untouched.
func (bs *BookingService) ModifyBooking(ctx context.Context, bookingId, callerId uuid.UUID, stay models.StayRange, numGuests int) (*models.Booking, error) {
	booking, err := bs.bookingsRepo.GetBookingByID(ctx, bookingId)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %v", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.GuestId != callerId {
		return nil, ErrNotAuthorized
	}
	if !booking.Status.CanTransitionTo(models.BookingModified) {
		return nil, ErrInvalidTransition
	}

	villa, err := bs.loadActiveVilla(ctx, booking.VillaId)
	if err != nil {
		return nil, err
	}

	if numGuests < 1 || numGuests > villa.MaxGuests {
		return nil, ErrGuestCountInvalid
	}

	lock := bs.villaLock(booking.VillaId)
	lock.Lock()
	defer lock.Unlock()

	existing, err := bs.bookingsRepo.ListBlockingBookings(ctx, booking.VillaId)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %v", err)
	}
	// The booking must not block its own new range
	others := make([]*models.Booking, 0, len(existing))
	for _, other := range existing {
		if other.Id == booking.Id {
			continue
		}
		others = append(others, other)
	}

	blocks, err := bs.bookingsRepo.ListCalendarBlocks(ctx, booking.VillaId)
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar blocks: %v", err)
	}

	if err := CheckAvailability(villa, stay, others, blocks); err != nil {
		return nil, err
	}

	summary, err := ComputePriceSummary(villa, stay.Nights(), numGuests)
	if err != nil {
		return nil, err
	}

	updated, err := bs.bookingsRepo.UpdateBooking(ctx, booking.Id, map[string]interface{}{
		"checkin_date":  stay.CheckIn.Format("2006-01-02"),
		"checkout_date": stay.CheckOut.Format("2006-01-02"),
		"num_guests":    numGuests,
		"status":        models.BookingModified,
		"total_price":   summary.TotalPrice,
		"updated_at":    time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update booking: %v", err)
	}

	if bs.notifications != nil {
		bs.notifications.Notify(ctx, villa.HostId, models.NotificationBookingModified,
			"Booking modified",
			fmt.Sprintf("%s, new dates %s to %s", villa.Name, stay.CheckIn.Format("2006-01-02"), stay.CheckOut.Format("2006-01-02")),
			updated.Id.String())
	}

	return updated, nil
}

// transition applies a status change after checking the state machine and
// the caller's authority over the booking.
func (bs *BookingService) transition(ctx context.Context, bookingId uuid.UUID, next models.BookingStatus, authorize func(booking *models.Booking, villa *models.Villa) error) (*models.Booking, error) {
	booking, err := bs.bookingsRepo.GetBookingByID(ctx, bookingId)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %v", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if !booking.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	villa, err := bs.villasRepo.GetVillaByID(ctx, booking.VillaId)
	if err != nil {
		return nil, fmt.Errorf("failed to load villa: %v", err)
	}
	if villa == nil {
		return nil, ErrVillaNotFound
	}

	if err := authorize(booking, villa); err != nil {
		return nil, err
	}

	updated, err := bs.bookingsRepo.UpdateBooking(ctx, booking.Id, map[string]interface{}{
		"status":     next,
		"updated_at": time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update booking: %v", err)
	}

	return updated, nil
}

// ConfirmBooking is the host-approval transition.
func (bs *BookingService) ConfirmBooking(ctx context.Context, bookingId, hostId uuid.UUID) (*models.Booking, error) {
	updated, err := bs.transition(ctx, bookingId, models.BookingConfirmed, func(booking *models.Booking, villa *models.Villa) error {
		if villa.HostId != hostId {
			return ErrNotAuthorized
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if bs.notifications != nil {
		bs.notifications.Notify(ctx, updated.GuestId, models.NotificationBookingConfirmed,
			"Booking confirmed", "Your booking request was approved by the host", updated.Id.String())
	}
	return updated, nil
}

// RejectBooking is the host-decline transition.
func (bs *BookingService) RejectBooking(ctx context.Context, bookingId, hostId uuid.UUID) (*models.Booking, error) {
	updated, err := bs.transition(ctx, bookingId, models.BookingRejected, func(booking *models.Booking, villa *models.Villa) error {
		if villa.HostId != hostId {
			return ErrNotAuthorized
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if bs.notifications != nil {
		bs.notifications.Notify(ctx, updated.GuestId, models.NotificationBookingRejected,
			"Booking declined", "Your booking request was declined by the host", updated.Id.String())
	}
	return updated, nil
}

// CancelBooking may be initiated by the guest or the host. Refund
// computation under the cancellation policy is a billing concern handled
// elsewhere.
func (bs *BookingService) CancelBooking(ctx context.Context, bookingId, callerId uuid.UUID) (*models.Booking, error) {
	var counterpart uuid.UUID
	updated, err := bs.transition(ctx, bookingId, models.BookingCancelled, func(booking *models.Booking, villa *models.Villa) error {
		switch callerId {
		case booking.GuestId:
			counterpart = villa.HostId
		case villa.HostId:
			counterpart = booking.GuestId
		default:
			return ErrNotAuthorized
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if bs.notifications != nil {
		bs.notifications.Notify(ctx, counterpart, models.NotificationBookingCancelled,
			"Booking cancelled", "A booking on your calendar was cancelled", updated.Id.String())
	}
	return updated, nil
}

// CompleteBooking moves a confirmed/modified stay to completed once its
// checkout date has passed.
func (bs *BookingService) CompleteBooking(ctx context.Context, bookingId, hostId uuid.UUID) (*models.Booking, error) {
	return bs.transition(ctx, bookingId, models.BookingCompleted, func(booking *models.Booking, villa *models.Villa) error {
		if villa.HostId != hostId {
			return ErrNotAuthorized
		}
		if NormalizeDate(time.Now()).Before(booking.CheckOut) {
			return ErrCompletionTooEarly
		}
		return nil
	})
}

func (bs *BookingService) GetBooking(ctx context.Context, bookingId uuid.UUID) (*models.Booking, error) {
	booking, err := bs.bookingsRepo.GetBookingByID(ctx, bookingId)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %v", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (bs *BookingService) ListGuestBookings(ctx context.Context, guestId uuid.UUID) ([]*models.Booking, error) {
	return bs.bookingsRepo.ListBookingsByGuest(ctx, guestId)
}

// ListHostBookings returns all bookings across the host's villas.
func (bs *BookingService) ListHostBookings(ctx context.Context, hostId uuid.UUID) ([]*models.Booking, error) {
	villas, err := bs.villasRepo.ListVillasByHost(ctx, hostId)
	if err != nil {
		return nil, fmt.Errorf("failed to load host villas: %v", err)
	}

	var bookings []*models.Booking
	for _, villa := range villas {
		villaBookings, err := bs.bookingsRepo.ListBookingsByVilla(ctx, villa.Id)
		if err != nil {
			return nil, fmt.Errorf("failed to load bookings for villa %s: %v", villa.Id, err)
		}
		bookings = append(bookings, villaBookings...)
	}
	return bookings, nil
}

// Calendar block management (host blackouts)

func (bs *BookingService) CreateCalendarBlock(ctx context.Context, villaId, hostId uuid.UUID, blockRange models.StayRange, reason string) (*models.CalendarBlock, error) {
	if !blockRange.IsValid() {
		return nil, ErrInvalidRange
	}

	villa, err := bs.villasRepo.GetVillaByID(ctx, villaId)
	if err != nil {
		return nil, fmt.Errorf("failed to load villa: %v", err)
	}
	if villa == nil {
		return nil, ErrVillaNotFound
	}
	if villa.HostId != hostId {
		return nil, ErrNotAuthorized
	}

	lock := bs.villaLock(villaId)
	lock.Lock()
	defer lock.Unlock()

	// A new blackout must not cut through an already reserved stay
	existing, err := bs.bookingsRepo.ListBlockingBookings(ctx, villaId)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %v", err)
	}
	for _, booking := range existing {
		if blockRange.Overlaps(booking.Range()) {
			return nil, ErrDateRangeUnavailable
		}
	}

	block := &models.CalendarBlock{
		Id:        uuid.New(),
		VillaId:   villaId,
		StartDate: blockRange.CheckIn,
		EndDate:   blockRange.CheckOut,
		Reason:    reason,
		CreatedAt: time.Now(),
	}

	return bs.bookingsRepo.CreateCalendarBlock(ctx, block)
}

func (bs *BookingService) ListCalendarBlocks(ctx context.Context, villaId uuid.UUID) ([]models.CalendarBlock, error) {
	return bs.bookingsRepo.ListCalendarBlocks(ctx, villaId)
}

// DeleteCalendarBlock removes a blackout; only the host of the villa the
// block belongs to may do so.
func (bs *BookingService) DeleteCalendarBlock(ctx context.Context, blockId, callerId uuid.UUID) error {
	block, err := bs.bookingsRepo.GetCalendarBlockByID(ctx, blockId)
	if err != nil {
		return fmt.Errorf("failed to load calendar block: %v", err)
	}
	if block == nil {
		return ErrBlockNotFound
	}

	villa, err := bs.villasRepo.GetVillaByID(ctx, block.VillaId)
	if err != nil {
		return fmt.Errorf("failed to load villa: %v", err)
	}
	if villa == nil {
		return ErrVillaNotFound
	}
	if villa.HostId != callerId {
		return ErrNotAuthorized
	}

	return bs.bookingsRepo.DeleteCalendarBlock(ctx, blockId)
}
