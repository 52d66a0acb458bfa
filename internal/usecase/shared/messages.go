package shared

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"parking-booking-gateway/internal/pkg/errs"
)

// UpstreamError is implemented by errors returned from ParkingAPI.
type UpstreamError interface {
	error
	HTTPStatus() int
	ServerMessage() string
	FieldMessages() []string
}

const (
	MsgSessionExpired = "Your session has expired. Please log in again."
	MsgConnection     = "Unable to connect to the server. Please check your connection."
	MsgForbidden      = "You are not authorized to perform this action."
	MsgValidation     = "Validation failed."
	MsgServerError    = "Server error. Please try again later."
	MsgUnknownError   = "Something went wrong. Please try again."
)

func AsUpstream(err error) (UpstreamError, bool) {
	var up UpstreamError
	if errors.As(err, &up) {
		return up, true
	}
	return nil, false
}

// UpstreamStatus is 0 for transport failures and -1 when err did not come
// from the parking API.
func UpstreamStatus(err error) int {
	if up, ok := AsUpstream(err); ok {
		return up.HTTPStatus()
	}
	return -1
}

// ValidationMessage joins per-field messages into one line, falling back to
// the server message.
func ValidationMessage(up UpstreamError) string {
	if fields := up.FieldMessages(); len(fields) > 0 {
		return strings.Join(fields, " ")
	}
	if msg := up.ServerMessage(); msg != "" {
		return msg
	}
	return MsgValidation
}

// UserMessage converts a failed call into the text shown next to the form.
// 401 is not covered; callers force a logout instead.
func UserMessage(err error, fallback string) string {
	up, ok := AsUpstream(err)
	if !ok {
		return fallback
	}
	switch status := up.HTTPStatus(); {
	case status == 0:
		return MsgConnection
	case status == http.StatusForbidden:
		return MsgForbidden
	case status == http.StatusUnprocessableEntity:
		return ValidationMessage(up)
	case status >= 500:
		return MsgServerError
	default:
		return fallback
	}
}

// Failure pairs the text shown to the user with the sentinel that classifies
// the failure and, when there is one, the upstream cause.
type Failure struct {
	Message string
	Kind    error
	Cause   error
}

func Fail(kind error, msg string, cause error) *Failure {
	return &Failure{Message: msg, Kind: kind, Cause: cause}
}

func (f *Failure) Error() string {
	if f.Cause != nil {
		return f.Message + ": " + f.Cause.Error()
	}
	return f.Message
}

func (f *Failure) Unwrap() []error {
	out := make([]error, 0, 2)
	if f.Kind != nil {
		out = append(out, f.Kind)
	}
	if f.Cause != nil {
		out = append(out, f.Cause)
	}
	return out
}

// MessageOf returns the user-facing text carried by err, or fallback.
func MessageOf(err error, fallback string) string {
	var f *Failure
	if errors.As(err, &f) && f.Message != "" {
		return f.Message
	}
	return fallback
}

// Reject classifies a failed upstream call made for namespace. A 401 ends
// the session through creds.
func Reject(ctx context.Context, creds Credentials, namespace string, err error, fallback string) error {
	switch status := UpstreamStatus(err); {
	case status == http.StatusUnauthorized:
		creds.ForceLogout(ctx, namespace)
		return Fail(errs.ErrUnauthenticated, MsgSessionExpired, err)
	case status == 0:
		return Fail(errs.ErrUpstreamUnavailable, MsgConnection, err)
	case status >= 500:
		return Fail(errs.ErrUpstreamUnavailable, MsgServerError, err)
	default:
		return Fail(errs.ErrUpstreamRejected, UserMessage(err, fallback), err)
	}
}
