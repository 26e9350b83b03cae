package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/joshua-takyi/villabay/internal/services"
)

func TestStatusForBookingError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{services.ErrVillaNotFound, http.StatusNotFound},
		{services.ErrBookingNotFound, http.StatusNotFound},
		{services.ErrBlockNotFound, http.StatusNotFound},
		{services.ErrDateRangeUnavailable, http.StatusConflict},
		{services.ErrNotAuthorized, http.StatusForbidden},
		{services.ErrInvalidRange, http.StatusBadRequest},
		{services.ErrStayLengthInvalid, http.StatusBadRequest},
		{services.ErrGuestCountInvalid, http.StatusBadRequest},
		{services.ErrVillaInactive, http.StatusBadRequest},
		{services.ErrInvalidTransition, http.StatusBadRequest},
		{services.ErrCompletionTooEarly, http.StatusBadRequest},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := statusForBookingError(tc.err); got != tc.want {
			t.Errorf("%v: status = %d, want %d", tc.err, got, tc.want)
		}
	}
}
