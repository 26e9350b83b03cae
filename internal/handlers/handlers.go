package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/villabay/internal/helpers"
	"github.com/joshua-takyi/villabay/internal/services"
)

// currentClaims pulls the enhanced claims set by AuthMiddleware, aborting
// with a JSON error if they are missing or malformed.
func currentClaims(c *gin.Context) (*helpers.EnhancedClaims, bool) {
	userClaims, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}

	claims, ok := userClaims.(*helpers.EnhancedClaims)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid user claims"})
		return nil, false
	}
	return claims, true
}

// currentUserID parses the caller's user ID out of the claims.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	claims, ok := currentClaims(c)
	if !ok {
		return uuid.Nil, false
	}
	userId, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID in token"})
		return uuid.Nil, false
	}
	return userId, true
}

// statusForBookingError maps engine errors onto HTTP status codes. All the
// engine's validation errors are user-facing; a commit-time overlap is a
// conflict, not a server fault.
func statusForBookingError(err error) int {
	switch {
	case errors.Is(err, services.ErrVillaNotFound),
		errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrBlockNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDateRangeUnavailable):
		return http.StatusConflict
	case errors.Is(err, services.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidRange),
		errors.Is(err, services.ErrStayLengthInvalid),
		errors.Is(err, services.ErrGuestCountInvalid),
		errors.Is(err, services.ErrVillaInactive),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrCompletionTooEarly):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
