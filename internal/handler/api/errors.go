package api

import (
	"errors"
	"net/http"

	"parking-booking-gateway/internal/handler/httperr"
	"parking-booking-gateway/internal/pkg/errs"
	"parking-booking-gateway/internal/usecase/commands"
	"parking-booking-gateway/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

var (
	errNoNamespace = errors.New("session namespace missing from context")
	errInvalidID   = errors.New("invalid path id")
	errInvalidTab  = errors.New("invalid tab")
)

const (
	msgInvalidRequest = "Invalid request"
	msgInternal       = "Internal server error"
	msgAuthRequired   = "Authentication required."
)

// writeError answers with the status matching the failure class of err and
// the user-facing message it carries.
func writeError(c *gin.Context, err error, fallback string) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		httperr.AbortWithError(c, status, err, msgInternal, nil)
		return
	}

	if status == http.StatusUnauthorized {
		httperr.AbortWithRedirect(c, status, err, shared.MessageOf(err, msgAuthRequired), httperr.LoginRedirect)
		return
	}

	var detail any
	var overnight *commands.OvernightError
	if errors.As(err, &overnight) {
		detail = gin.H{"intervals": overnight.Intervals}
	}
	httperr.AbortWithError(c, status, err, shared.MessageOf(err, fallback), detail)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrUnauthenticated), errors.Is(err, errs.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrBookingValidation), errors.Is(err, errs.ErrOvernightBooking):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrSlotUnavailable), errors.Is(err, errs.ErrSubmissionInProcess):
		return http.StatusConflict
	case errors.Is(err, errs.ErrNoDraft), errors.Is(err, errs.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrUpstreamUnavailable):
		if shared.UpstreamStatus(err) == 0 {
			return http.StatusServiceUnavailable
		}
		return http.StatusBadGateway
	case errors.Is(err, errs.ErrUpstreamRejected):
		// Relay client errors as they came; anything else is the upstream misbehaving.
		if status := shared.UpstreamStatus(err); status >= 400 && status < 500 {
			return status
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
