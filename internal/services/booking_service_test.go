package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/villabay/internal/models"
)

// fakeVillasRepo serves villas from memory; only the read paths the
// booking service touches are implemented.
type fakeVillasRepo struct {
	mu     sync.Mutex
	villas map[uuid.UUID]*models.Villa
}

func newFakeVillasRepo(villas ...*models.Villa) *fakeVillasRepo {
	repo := &fakeVillasRepo{villas: make(map[uuid.UUID]*models.Villa)}
	for _, v := range villas {
		repo.villas[v.Id] = v
	}
	return repo
}

func (f *fakeVillasRepo) CreateVilla(ctx context.Context, villa *models.Villa, hostId uuid.UUID) (*models.Villa, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	villa.HostId = hostId
	f.villas[villa.Id] = villa
	return villa, nil
}

func (f *fakeVillasRepo) GetVillaByID(ctx context.Context, id uuid.UUID) (*models.Villa, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.villas[id], nil
}

func (f *fakeVillasRepo) ListVillas(ctx context.Context, offset, limit int) ([]*models.Villa, int, error) {
	return nil, 0, nil
}

func (f *fakeVillasRepo) SearchVillas(ctx context.Context, filters models.VillaFilters, offset, limit int) ([]*models.Villa, int, error) {
	return nil, 0, nil
}

func (f *fakeVillasRepo) ListVillasByHost(ctx context.Context, hostId uuid.UUID) ([]*models.Villa, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Villa
	for _, v := range f.villas {
		if v.HostId == hostId {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVillasRepo) UpdateVilla(ctx context.Context, id uuid.UUID, fields map[string]interface{}, accessToken string) (*models.Villa, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeVillasRepo) DeleteVilla(ctx context.Context, id uuid.UUID, hostId uuid.UUID, accessToken string) error {
	return errors.New("not implemented")
}

// fakeBookingsRepo stores bookings and calendar blocks in memory and
// applies UpdateBooking field maps the way the real table would.
type fakeBookingsRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*models.Booking
	blocks   map[uuid.UUID]models.CalendarBlock
}

func newFakeBookingsRepo() *fakeBookingsRepo {
	return &fakeBookingsRepo{
		bookings: make(map[uuid.UUID]*models.Booking),
		blocks:   make(map[uuid.UUID]models.CalendarBlock),
	}
}

func (f *fakeBookingsRepo) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *booking
	f.bookings[booking.Id] = &copied
	return booking, nil
}

func (f *fakeBookingsRepo) GetBookingByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingsRepo) ListBlockingBookings(ctx context.Context, villaId uuid.UUID) ([]*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Booking
	for _, b := range f.bookings {
		if b.VillaId == villaId && b.Status.IsBlocking() {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeBookingsRepo) ListBookingsByGuest(ctx context.Context, guestId uuid.UUID) ([]*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Booking
	for _, b := range f.bookings {
		if b.GuestId == guestId {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeBookingsRepo) ListBookingsByVilla(ctx context.Context, villaId uuid.UUID) ([]*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Booking
	for _, b := range f.bookings {
		if b.VillaId == villaId {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeBookingsRepo) UpdateBooking(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return nil, errors.New("booking not found")
	}
	for key, value := range fields {
		switch key {
		case "status":
			booking.Status = value.(models.BookingStatus)
		case "checkin_date":
			parsed, err := time.Parse("2006-01-02", value.(string))
			if err != nil {
				return nil, err
			}
			booking.CheckIn = parsed
		case "checkout_date":
			parsed, err := time.Parse("2006-01-02", value.(string))
			if err != nil {
				return nil, err
			}
			booking.CheckOut = parsed
		case "num_guests":
			booking.NumGuests = value.(int)
		case "total_price":
			booking.TotalPrice = value.(float64)
		case "updated_at":
			booking.UpdatedAt = value.(time.Time)
		}
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingsRepo) GetCalendarBlockByID(ctx context.Context, id uuid.UUID) (*models.CalendarBlock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	block, ok := f.blocks[id]
	if !ok {
		return nil, nil
	}
	return &block, nil
}

func (f *fakeBookingsRepo) ListCalendarBlocks(ctx context.Context, villaId uuid.UUID) ([]models.CalendarBlock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.CalendarBlock
	for _, block := range f.blocks {
		if block.VillaId == villaId {
			out = append(out, block)
		}
	}
	return out, nil
}

func (f *fakeBookingsRepo) CreateCalendarBlock(ctx context.Context, block *models.CalendarBlock) (*models.CalendarBlock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blocks[block.Id] = *block
	return block, nil
}

func (f *fakeBookingsRepo) DeleteCalendarBlock(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.blocks, id)
	return nil
}

func newTestBookingService(villas ...*models.Villa) (*BookingService, *fakeBookingsRepo) {
	bookings := newFakeBookingsRepo()
	return NewBookingService(newFakeVillasRepo(villas...), bookings, nil), bookings
}

func TestSubmitBookingRequestedByDefault(t *testing.T) {
	villa := testVilla()
	bs, _ := newTestBookingService(villa)

	booking, err := bs.SubmitBooking(context.Background(), villa.Id, uuid.New(),
		stay(date(2026, 7, 10), date(2026, 7, 12)), 2, models.GuestDetails{FullName: "Ama Mensah"})
	if err != nil {
		t.Fatalf("SubmitBooking: %v", err)
	}
	if booking.Status != models.BookingRequested {
		t.Errorf("status = %s, want requested", booking.Status)
	}
	if booking.TotalPrice != 880 {
		t.Errorf("total = %v, want 880", booking.TotalPrice)
	}
}

func TestSubmitBookingInstantBookConfirms(t *testing.T) {
	villa := testVilla()
	villa.IsInstantBook = true
	bs, _ := newTestBookingService(villa)

	booking, err := bs.SubmitBooking(context.Background(), villa.Id, uuid.New(),
		stay(date(2026, 7, 10), date(2026, 7, 12)), 2, models.GuestDetails{})
	if err != nil {
		t.Fatalf("SubmitBooking: %v", err)
	}
	if booking.Status != models.BookingConfirmed {
		t.Errorf("status = %s, want confirmed", booking.Status)
	}
}

func TestSubmitBookingVillaChecks(t *testing.T) {
	villa := testVilla()
	villa.Status = models.StatusInactive
	bs, _ := newTestBookingService(villa)
	request := stay(date(2026, 7, 10), date(2026, 7, 12))

	if _, err := bs.SubmitBooking(context.Background(), uuid.New(), uuid.New(), request, 2, models.GuestDetails{}); !errors.Is(err, ErrVillaNotFound) {
		t.Errorf("unknown villa: got %v, want ErrVillaNotFound", err)
	}
	if _, err := bs.SubmitBooking(context.Background(), villa.Id, uuid.New(), request, 2, models.GuestDetails{}); !errors.Is(err, ErrVillaInactive) {
		t.Errorf("inactive villa: got %v, want ErrVillaInactive", err)
	}
}

func TestSubmitBookingConflictAtCommit(t *testing.T) {
	villa := testVilla()
	bs, _ := newTestBookingService(villa)
	ctx := context.Background()

	if _, err := bs.SubmitBooking(ctx, villa.Id, uuid.New(), stay(date(2026, 7, 10), date(2026, 7, 15)), 2, models.GuestDetails{}); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := bs.SubmitBooking(ctx, villa.Id, uuid.New(), stay(date(2026, 7, 12), date(2026, 7, 17)), 2, models.GuestDetails{}); !errors.Is(err, ErrDateRangeUnavailable) {
		t.Errorf("overlapping booking: got %v, want ErrDateRangeUnavailable", err)
	}

	// Back-to-back is a same-day turnover, never a conflict
	if _, err := bs.SubmitBooking(ctx, villa.Id, uuid.New(), stay(date(2026, 7, 15), date(2026, 7, 18)), 2, models.GuestDetails{}); err != nil {
		t.Errorf("back-to-back booking: got %v, want nil", err)
	}
}

func TestSubmitBookingConcurrentOverlapOneWinner(t *testing.T) {
	villa := testVilla()
	bs, _ := newTestBookingService(villa)
	request := stay(date(2026, 7, 10), date(2026, 7, 15))

	const attempts = 16
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := bs.SubmitBooking(context.Background(), villa.Id, uuid.New(), request, 2, models.GuestDetails{})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, conflicted int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrDateRangeUnavailable):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("succeeded = %d, want exactly 1", succeeded)
	}
	if conflicted != attempts-1 {
		t.Errorf("conflicted = %d, want %d", conflicted, attempts-1)
	}
}

func TestModifyBookingExcludesOwnRange(t *testing.T) {
	villa := testVilla()
	bs, _ := newTestBookingService(villa)
	ctx := context.Background()
	guestId := uuid.New()

	booking, err := bs.SubmitBooking(ctx, villa.Id, guestId, stay(date(2026, 7, 10), date(2026, 7, 15)), 2, models.GuestDetails{})
	if err != nil {
		t.Fatalf("SubmitBooking: %v", err)
	}

	// Shifting by one day overlaps the booking's own current range, which
	// must not block the modification.
	updated, err := bs.ModifyBooking(ctx, booking.Id, guestId, stay(date(2026, 7, 11), date(2026, 7, 16)), 3)
	if err != nil {
		t.Fatalf("ModifyBooking: %v", err)
	}
	if updated.Status != models.BookingModified {
		t.Errorf("status = %s, want modified", updated.Status)
	}
	if updated.NumGuests != 3 {
		t.Errorf("num_guests = %d, want 3", updated.NumGuests)
	}
	// 400*5 + 50 + 20 + 10
	if updated.TotalPrice != 2080 {
		t.Errorf("total = %v, want 2080", updated.TotalPrice)
	}
}

func TestModifyBookingStillConflictsWithOthers(t *testing.T) {
	villa := testVilla()
	bs, _ := newTestBookingService(villa)
	ctx := context.Background()
	guestId := uuid.New()

	booking, err := bs.SubmitBooking(ctx, villa.Id, guestId, stay(date(2026, 7, 1), date(2026, 7, 5)), 2, models.GuestDetails{})
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := bs.SubmitBooking(ctx, villa.Id, uuid.New(), stay(date(2026, 7, 10), date(2026, 7, 15)), 2, models.GuestDetails{}); err != nil {
		t.Fatalf("second booking: %v", err)
	}

	if _, err := bs.ModifyBooking(ctx, booking.Id, guestId, stay(date(2026, 7, 12), date(2026, 7, 16)), 2); !errors.Is(err, ErrDateRangeUnavailable) {
		t.Errorf("modify into other booking: got %v, want ErrDateRangeUnavailable", err)
	}

	// Failure leaves the stored booking untouched
	stored, err := bs.GetBooking(ctx, booking.Id)
	if err != nil {
		t.Fatalf("GetBooking: %v", err)
	}
	if !stored.CheckIn.Equal(date(2026, 7, 1)) || !stored.CheckOut.Equal(date(2026, 7, 5)) {
		t.Errorf("booking range changed after failed modify: %v to %v", stored.CheckIn, stored.CheckOut)
	}
	if stored.Status != models.BookingRequested {
		t.Errorf("status changed after failed modify: %s", stored.Status)
	}
}

func TestModifyBookingGuestOnly(t *testing.T) {
	villa := testVilla()
	bs, _ := newTestBookingService(villa)
	ctx := context.Background()

	booking, err := bs.SubmitBooking(ctx, villa.Id, uuid.New(), stay(date(2026, 7, 10), date(2026, 7, 15)), 2, models.GuestDetails{})
	if err != nil {
		t.Fatalf("SubmitBooking: %v", err)
	}

	if _, err := bs.ModifyBooking(ctx, booking.Id, uuid.New(), stay(date(2026, 7, 11), date(2026, 7, 16)), 2); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("modify by stranger: got %v, want ErrNotAuthorized", err)
	}
}

func TestBookingTransitions(t *testing.T) {
	villa := testVilla()
	bs, repo := newTestBookingService(villa)
	ctx := context.Background()
	guestId := uuid.New()

	booking, err := bs.SubmitBooking(ctx, villa.Id, guestId, stay(date(2026, 7, 10), date(2026, 7, 15)), 2, models.GuestDetails{})
	if err != nil {
		t.Fatalf("SubmitBooking: %v", err)
	}

	if _, err := bs.ConfirmBooking(ctx, booking.Id, uuid.New()); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("confirm by non-host: got %v, want ErrNotAuthorized", err)
	}

	confirmed, err := bs.ConfirmBooking(ctx, booking.Id, villa.HostId)
	if err != nil {
		t.Fatalf("ConfirmBooking: %v", err)
	}
	if confirmed.Status != models.BookingConfirmed {
		t.Errorf("status = %s, want confirmed", confirmed.Status)
	}

	// A confirmed booking can no longer be rejected
	if _, err := bs.RejectBooking(ctx, booking.Id, villa.HostId); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("reject confirmed: got %v, want ErrInvalidTransition", err)
	}

	cancelled, err := bs.CancelBooking(ctx, booking.Id, guestId)
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if cancelled.Status != models.BookingCancelled {
		t.Errorf("status = %s, want cancelled", cancelled.Status)
	}

	// Terminal: nothing else applies
	if _, err := bs.CancelBooking(ctx, booking.Id, guestId); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("cancel cancelled: got %v, want ErrInvalidTransition", err)
	}
	if _, err := bs.ConfirmBooking(ctx, booking.Id, villa.HostId); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("confirm cancelled: got %v, want ErrInvalidTransition", err)
	}

	// Cancelled dates are released
	if _, err := bs.SubmitBooking(ctx, villa.Id, uuid.New(), stay(date(2026, 7, 10), date(2026, 7, 15)), 2, models.GuestDetails{}); err != nil {
		t.Errorf("rebooking released range: got %v, want nil", err)
	}

	_ = repo
}

func TestCompleteBookingRequiresCheckoutPassed(t *testing.T) {
	villa := testVilla()
	bs, _ := newTestBookingService(villa)
	ctx := context.Background()

	// A stay in the future cannot be completed
	future, err := bs.SubmitBooking(ctx, villa.Id, uuid.New(),
		stay(NormalizeDate(time.Now()).AddDate(0, 1, 0), NormalizeDate(time.Now()).AddDate(0, 1, 3)), 2, models.GuestDetails{})
	if err != nil {
		t.Fatalf("SubmitBooking: %v", err)
	}
	if _, err := bs.ConfirmBooking(ctx, future.Id, villa.HostId); err != nil {
		t.Fatalf("ConfirmBooking: %v", err)
	}
	if _, err := bs.CompleteBooking(ctx, future.Id, villa.HostId); !errors.Is(err, ErrCompletionTooEarly) {
		t.Errorf("completing a future stay: got %v, want ErrCompletionTooEarly", err)
	}
	if _, err := bs.CompleteBooking(ctx, future.Id, uuid.New()); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("complete by non-host: got %v, want ErrNotAuthorized", err)
	}
}

func TestPreviewAvailability(t *testing.T) {
	villa := testVilla()
	bs, _ := newTestBookingService(villa)
	ctx := context.Background()

	preview, err := bs.PreviewAvailability(ctx, villa.Id, stay(date(2026, 7, 10), date(2026, 7, 12)), 2)
	if err != nil {
		t.Fatalf("PreviewAvailability: %v", err)
	}
	if !preview.Available {
		t.Fatalf("expected available, reason: %s", preview.Reason)
	}
	if preview.PriceSummary == nil || preview.PriceSummary.TotalPrice != 880 {
		t.Errorf("price summary = %+v, want total 880", preview.PriceSummary)
	}

	if _, err := bs.SubmitBooking(ctx, villa.Id, uuid.New(), stay(date(2026, 7, 10), date(2026, 7, 12)), 2, models.GuestDetails{}); err != nil {
		t.Fatalf("SubmitBooking: %v", err)
	}

	// An occupied range previews as unavailable with a reason, not an error
	preview, err = bs.PreviewAvailability(ctx, villa.Id, stay(date(2026, 7, 10), date(2026, 7, 12)), 2)
	if err != nil {
		t.Fatalf("PreviewAvailability: %v", err)
	}
	if preview.Available {
		t.Error("expected unavailable after booking")
	}
	if preview.Reason == "" {
		t.Error("expected a reason on unavailable preview")
	}
	if preview.PriceSummary != nil {
		t.Error("unavailable preview should carry no price summary")
	}
}

func TestCalendarBlockLifecycle(t *testing.T) {
	villa := testVilla()
	bs, _ := newTestBookingService(villa)
	ctx := context.Background()

	block, err := bs.CreateCalendarBlock(ctx, villa.Id, villa.HostId, stay(date(2026, 8, 1), date(2026, 8, 10)), "maintenance")
	if err != nil {
		t.Fatalf("CreateCalendarBlock: %v", err)
	}

	if _, err := bs.SubmitBooking(ctx, villa.Id, uuid.New(), stay(date(2026, 8, 5), date(2026, 8, 8)), 2, models.GuestDetails{}); !errors.Is(err, ErrDateRangeUnavailable) {
		t.Errorf("booking into block: got %v, want ErrDateRangeUnavailable", err)
	}

	// Blocks cannot cut through reserved stays
	if _, err := bs.SubmitBooking(ctx, villa.Id, uuid.New(), stay(date(2026, 9, 1), date(2026, 9, 5)), 2, models.GuestDetails{}); err != nil {
		t.Fatalf("SubmitBooking: %v", err)
	}
	if _, err := bs.CreateCalendarBlock(ctx, villa.Id, villa.HostId, stay(date(2026, 9, 3), date(2026, 9, 6)), ""); !errors.Is(err, ErrDateRangeUnavailable) {
		t.Errorf("block over booking: got %v, want ErrDateRangeUnavailable", err)
	}

	// Only the host may block
	if _, err := bs.CreateCalendarBlock(ctx, villa.Id, uuid.New(), stay(date(2026, 10, 1), date(2026, 10, 3)), ""); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("block by non-host: got %v, want ErrNotAuthorized", err)
	}

	if err := bs.DeleteCalendarBlock(ctx, block.Id, villa.HostId); err != nil {
		t.Fatalf("DeleteCalendarBlock: %v", err)
	}
	if _, err := bs.SubmitBooking(ctx, villa.Id, uuid.New(), stay(date(2026, 8, 5), date(2026, 8, 8)), 2, models.GuestDetails{}); err != nil {
		t.Errorf("booking after block removed: got %v, want nil", err)
	}
}

func TestDeleteCalendarBlockOwnership(t *testing.T) {
	villa := testVilla()
	bs, _ := newTestBookingService(villa)
	ctx := context.Background()

	block, err := bs.CreateCalendarBlock(ctx, villa.Id, villa.HostId, stay(date(2026, 8, 5), date(2026, 8, 8)), "maintenance")
	if err != nil {
		t.Fatalf("CreateCalendarBlock: %v", err)
	}

	// Another host (or any stranger) cannot free someone else's blackout
	if err := bs.DeleteCalendarBlock(ctx, block.Id, uuid.New()); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("delete by stranger: got %v, want ErrNotAuthorized", err)
	}

	// The block must still hold the dates
	if _, err := bs.SubmitBooking(ctx, villa.Id, uuid.New(), stay(date(2026, 8, 5), date(2026, 8, 8)), 2, models.GuestDetails{}); !errors.Is(err, ErrDateRangeUnavailable) {
		t.Errorf("booking into surviving block: got %v, want ErrDateRangeUnavailable", err)
	}

	if err := bs.DeleteCalendarBlock(ctx, uuid.New(), villa.HostId); !errors.Is(err, ErrBlockNotFound) {
		t.Errorf("delete unknown block: got %v, want ErrBlockNotFound", err)
	}

	if err := bs.DeleteCalendarBlock(ctx, block.Id, villa.HostId); err != nil {
		t.Fatalf("delete by owner: %v", err)
	}
}
