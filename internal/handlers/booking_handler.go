package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/villabay/internal/helpers"
	"github.com/joshua-takyi/villabay/internal/models"
	"github.com/joshua-takyi/villabay/internal/services"
)

type bookingRequest struct {
	CheckinDate  string              `json:"checkin_date" binding:"required"`
	CheckoutDate string              `json:"checkout_date" binding:"required"`
	NumGuests    int                 `json:"num_guests" binding:"required"`
	GuestDetails models.GuestDetails `json:"guest_details"`
}

func parseVillaParam(c *gin.Context) (uuid.UUID, bool) {
	villaID := helpers.StringTrim(c.Param("id"))
	if villaID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("villa ID is required"))
		return uuid.Nil, false
	}
	parsedId, err := uuid.Parse(villaID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid villa ID format"))
		return uuid.Nil, false
	}
	return parsedId, true
}

// PreviewBooking is the read-only availability/price check. It takes no
// lock; the verdict is advisory until the booking is committed.
func PreviewBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		villaId, ok := parseVillaParam(c)
		if !ok {
			return
		}

		var req bookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		stay, err := services.ParseStayRange(req.CheckinDate, req.CheckoutDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		preview, err := bs.PreviewAvailability(c.Request.Context(), villaId, stay, req.NumGuests)
		if err != nil {
			c.JSON(statusForBookingError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(preview, ""))
	}
}

func CreateBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		villaId, ok := parseVillaParam(c)
		if !ok {
			return
		}

		guestId, ok := currentUserID(c)
		if !ok {
			return
		}

		var req bookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		stay, err := services.ParseStayRange(req.CheckinDate, req.CheckoutDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		booking, err := bs.SubmitBooking(c.Request.Context(), villaId, guestId, stay, req.NumGuests, req.GuestDetails)
		if err != nil {
			c.JSON(statusForBookingError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(booking, "Booking created successfully"))
	}
}

type modifyBookingRequest struct {
	CheckinDate  string `json:"checkin_date" binding:"required"`
	CheckoutDate string `json:"checkout_date" binding:"required"`
	NumGuests    int    `json:"num_guests" binding:"required"`
}

func ModifyBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId, err := uuid.Parse(helpers.StringTrim(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid booking ID format"))
			return
		}

		callerId, ok := currentUserID(c)
		if !ok {
			return
		}

		var req modifyBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		stay, err := services.ParseStayRange(req.CheckinDate, req.CheckoutDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		booking, err := bs.ModifyBooking(c.Request.Context(), bookingId, callerId, stay, req.NumGuests)
		if err != nil {
			c.JSON(statusForBookingError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(booking, "Booking modified successfully"))
	}
}

// bookingTransition builds the handler shared by the status-change routes.
func bookingTransition(action func(*gin.Context, uuid.UUID, uuid.UUID) (*models.Booking, error), message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId, err := uuid.Parse(helpers.StringTrim(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid booking ID format"))
			return
		}

		callerId, ok := currentUserID(c)
		if !ok {
			return
		}

		booking, err := action(c, bookingId, callerId)
		if err != nil {
			c.JSON(statusForBookingError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(booking, message))
	}
}

func ConfirmBooking(bs *services.BookingService) gin.HandlerFunc {
	return bookingTransition(func(c *gin.Context, bookingId, callerId uuid.UUID) (*models.Booking, error) {
		return bs.ConfirmBooking(c.Request.Context(), bookingId, callerId)
	}, "Booking confirmed")
}

func RejectBooking(bs *services.BookingService) gin.HandlerFunc {
	return bookingTransition(func(c *gin.Context, bookingId, callerId uuid.UUID) (*models.Booking, error) {
		return bs.RejectBooking(c.Request.Context(), bookingId, callerId)
	}, "Booking rejected")
}

func CancelBooking(bs *services.BookingService) gin.HandlerFunc {
	return bookingTransition(func(c *gin.Context, bookingId, callerId uuid.UUID) (*models.Booking, error) {
		return bs.CancelBooking(c.Request.Context(), bookingId, callerId)
	}, "Booking cancelled")
}

func CompleteBooking(bs *services.BookingService) gin.HandlerFunc {
	return bookingTransition(func(c *gin.Context, bookingId, callerId uuid.UUID) (*models.Booking, error) {
		return bs.CompleteBooking(c.Request.Context(), bookingId, callerId)
	}, "Booking completed")
}

func GetBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId, err := uuid.Parse(helpers.StringTrim(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid booking ID format"))
			return
		}

		booking, err := bs.GetBooking(c.Request.Context(), bookingId)
		if err != nil {
			c.JSON(statusForBookingError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(booking, ""))
	}
}

func ListGuestBookings(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestId, ok := currentUserID(c)
		if !ok {
			return
		}

		bookings, err := bs.ListGuestBookings(c.Request.Context(), guestId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(bookings, ""))
	}
}

func ListHostBookings(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}
		if !claims.IsHost() && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("only hosts can list villa bookings"))
			return
		}

		hostId, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user ID in token"))
			return
		}

		bookings, err := bs.ListHostBookings(c.Request.Context(), hostId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(bookings, ""))
	}
}

type calendarBlockRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

func CreateCalendarBlock(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		villaId, ok := parseVillaParam(c)
		if !ok {
			return
		}

		claims, ok := currentClaims(c)
		if !ok {
			return
		}
		if !claims.IsHost() && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("only hosts can block dates"))
			return
		}

		hostId, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user ID in token"))
			return
		}

		var req calendarBlockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		blockRange, err := services.ParseBlockRange(req.StartDate, req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		block, err := bs.CreateCalendarBlock(c.Request.Context(), villaId, hostId, blockRange, req.Reason)
		if err != nil {
			c.JSON(statusForBookingError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(block, "Dates blocked"))
	}
}

func ListCalendarBlocks(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		villaId, ok := parseVillaParam(c)
		if !ok {
			return
		}

		blocks, err := bs.ListCalendarBlocks(c.Request.Context(), villaId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(blocks, ""))
	}
}

func DeleteCalendarBlock(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		blockId, err := uuid.Parse(helpers.StringTrim(c.Param("block_id")))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid block ID format"))
			return
		}

		callerId, ok := currentUserID(c)
		if !ok {
			return
		}

		if err := bs.DeleteCalendarBlock(c.Request.Context(), blockId, callerId); err != nil {
			c.JSON(statusForBookingError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Block removed"))
	}
}
