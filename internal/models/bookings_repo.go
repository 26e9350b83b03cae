package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type BookingsRepo interface {
	CreateBooking(ctx context.Context, booking *Booking) (*Booking, error)
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListBlockingBookings(ctx context.Context, villaId uuid.UUID) ([]*Booking, error)
	ListBookingsByGuest(ctx context.Context, guestId uuid.UUID) ([]*Booking, error)
	ListBookingsByVilla(ctx context.Context, villaId uuid.UUID) ([]*Booking, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*Booking, error)
	ListCalendarBlocks(ctx context.Context, villaId uuid.UUID) ([]CalendarBlock, error)
	GetCalendarBlockByID(ctx context.Context, id uuid.UUID) (*CalendarBlock, error)
	CreateCalendarBlock(ctx context.Context, block *CalendarBlock) (*CalendarBlock, error)
	DeleteCalendarBlock(ctx context.Context, id uuid.UUID) error
}

// bookingRow mirrors the bookings table; Supabase returns date and
// timestamp columns as strings.
type bookingRow struct {
	Id           uuid.UUID    `json:"id"`
	VillaId      uuid.UUID    `json:"villa_id"`
	GuestId      uuid.UUID    `json:"guest_id"`
	CheckIn      string       `json:"checkin_date"`
	CheckOut     string       `json:"checkout_date"`
	NumGuests    int          `json:"num_guests"`
	GuestDetails GuestDetails `json:"guest_details"`
	Status       string       `json:"status"`
	TotalPrice   float64      `json:"total_price"`
	CreatedAt    string       `json:"created_at"`
	UpdatedAt    string       `json:"updated_at"`
}

func (row bookingRow) toBooking() (*Booking, error) {
	checkin, err := time.Parse(dateLayout, row.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("invalid checkin_date %q: %v", row.CheckIn, err)
	}
	checkout, err := time.Parse(dateLayout, row.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("invalid checkout_date %q: %v", row.CheckOut, err)
	}

	booking := &Booking{
		Id:           row.Id,
		VillaId:      row.VillaId,
		GuestId:      row.GuestId,
		CheckIn:      checkin,
		CheckOut:     checkout,
		NumGuests:    row.NumGuests,
		GuestDetails: row.GuestDetails,
		Status:       BookingStatus(row.Status),
		TotalPrice:   row.TotalPrice,
	}

	// Timestamps are informational; tolerate missing or odd formats
	if t, err := time.Parse(time.RFC3339, row.CreatedAt); err == nil {
		booking.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, row.UpdatedAt); err == nil {
		booking.UpdatedAt = t
	}

	return booking, nil
}

func rowsToBookings(raw []byte) ([]*Booking, error) {
	var rows []bookingRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking rows: %v", err)
	}

	bookings := make([]*Booking, 0, len(rows))
	for _, row := range rows {
		booking, err := row.toBooking()
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

func (su *SupabaseRepo) CreateBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	bookingData := map[string]interface{}{
		"id":            booking.Id,
		"villa_id":      booking.VillaId,
		"guest_id":      booking.GuestId,
		"checkin_date":  booking.CheckIn.Format(dateLayout),
		"checkout_date": booking.CheckOut.Format(dateLayout),
		"num_guests":    booking.NumGuests,
		"guest_details": booking.GuestDetails,
		"status":        booking.Status,
		"total_price":   booking.TotalPrice,
		"created_at":    booking.CreatedAt,
		"updated_at":    booking.UpdatedAt,
	}

	raw, count, err := su.supabaseClient.
		From(BookingsTable).
		Insert(bookingData, false, "", "", "exact").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to insert booking: %v", err)
	}

	if count == 0 {
		return nil, fmt.Errorf("no booking returned after insert")
	}

	created, err := rowsToBookings(raw)
	if err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("no booking returned after insert")
	}
	return created[0], nil
}

func (su *SupabaseRepo) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}

	raw, _, err := su.supabaseClient.From(BookingsTable).
		Select("*", "exact", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get booking by ID: %v", err)
	}

	bookings, err := rowsToBookings(raw)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, nil
	}
	return bookings[0], nil
}

// ListBlockingBookings returns every booking on the villa whose status still
// reserves its date range (requested, pending, confirmed, modified).
func (su *SupabaseRepo) ListBlockingBookings(ctx context.Context, villaId uuid.UUID) ([]*Booking, error) {
	raw, _, err := su.supabaseClient.From(BookingsTable).
		Select("*", "exact", false).
		Eq("villa_id", villaId.String()).
		In("status", BlockingStatusStrings()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list blocking bookings: %v", err)
	}

	return rowsToBookings(raw)
}

func (su *SupabaseRepo) ListBookingsByGuest(ctx context.Context, guestId uuid.UUID) ([]*Booking, error) {
	raw, _, err := su.supabaseClient.From(BookingsTable).
		Select("*", "exact", false).
		Eq("guest_id", guestId.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings by guest: %v", err)
	}

	return rowsToBookings(raw)
}

func (su *SupabaseRepo) ListBookingsByVilla(ctx context.Context, villaId uuid.UUID) ([]*Booking, error) {
	raw, _, err := su.supabaseClient.From(BookingsTable).
		Select("*", "exact", false).
		Eq("villa_id", villaId.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings by villa: %v", err)
	}

	return rowsToBookings(raw)
}

func (su *SupabaseRepo) UpdateBooking(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*Booking, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	raw, count, err := su.supabaseClient.From(BookingsTable).
		Update(fields, "", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update booking: %v", err)
	}

	if count == 0 {
		return nil, fmt.Errorf("no booking found to update")
	}

	updated, err := rowsToBookings(raw)
	if err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, fmt.Errorf("no booking data returned after update")
	}
	return updated[0], nil
}

type calendarBlockRow struct {
	Id        uuid.UUID `json:"id"`
	VillaId   uuid.UUID `json:"villa_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Reason    string    `json:"reason"`
	CreatedAt string    `json:"created_at"`
}

func (row calendarBlockRow) toBlock() (CalendarBlock, error) {
	start, err := time.Parse(dateLayout, row.StartDate)
	if err != nil {
		return CalendarBlock{}, fmt.Errorf("invalid start_date %q: %v", row.StartDate, err)
	}
	end, err := time.Parse(dateLayout, row.EndDate)
	if err != nil {
		return CalendarBlock{}, fmt.Errorf("invalid end_date %q: %v", row.EndDate, err)
	}

	block := CalendarBlock{
		Id:        row.Id,
		VillaId:   row.VillaId,
		StartDate: start,
		EndDate:   end,
		Reason:    row.Reason,
	}
	if t, err := time.Parse(time.RFC3339, row.CreatedAt); err == nil {
		block.CreatedAt = t
	}
	return block, nil
}

func (su *SupabaseRepo) ListCalendarBlocks(ctx context.Context, villaId uuid.UUID) ([]CalendarBlock, error) {
	raw, _, err := su.supabaseClient.From(CalendarBlocksTable).
		Select("*", "exact", false).
		Eq("villa_id", villaId.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar blocks: %v", err)
	}

	var rows []calendarBlockRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal calendar block rows: %v", err)
	}

	blocks := make([]CalendarBlock, 0, len(rows))
	for _, row := range rows {
		block, err := row.toBlock()
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func (su *SupabaseRepo) GetCalendarBlockByID(ctx context.Context, id uuid.UUID) (*CalendarBlock, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}

	raw, count, err := su.supabaseClient.From(CalendarBlocksTable).
		Select("*", "exact", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar block: %v", err)
	}
	if count == 0 {
		return nil, nil
	}

	var rows []calendarBlockRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal calendar block row: %v", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	block, err := rows[0].toBlock()
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (su *SupabaseRepo) CreateCalendarBlock(ctx context.Context, block *CalendarBlock) (*CalendarBlock, error) {
	blockData := map[string]interface{}{
		"id":         block.Id,
		"villa_id":   block.VillaId,
		"start_date": block.StartDate.Format(dateLayout),
		"end_date":   block.EndDate.Format(dateLayout),
		"reason":     block.Reason,
		"created_at": block.CreatedAt,
	}

	raw, count, err := su.supabaseClient.From(CalendarBlocksTable).
		Insert(blockData, false, "", "", "exact").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to insert calendar block: %v", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("no calendar block returned after insert")
	}

	var rows []calendarBlockRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal created calendar block: %v", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no calendar block returned after insert")
	}

	created, err := rows[0].toBlock()
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (su *SupabaseRepo) DeleteCalendarBlock(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("invalid UUID")
	}

	_, count, err := su.supabaseClient.From(CalendarBlocksTable).
		Delete("", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete calendar block: %v", err)
	}
	if count == 0 {
		return fmt.Errorf("no calendar block found to delete")
	}
	return nil
}
