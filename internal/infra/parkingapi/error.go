package parkingapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"parking-booking-gateway/internal/usecase/shared"
)

var _ shared.UpstreamError = (*APIError)(nil)

// APIError is a failed call. Status 0 means no response was received.
type APIError struct {
	Status      int
	Message     string
	FieldErrors map[string][]string
	cause       error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		if e.cause != nil {
			return "parking api unreachable: " + e.cause.Error()
		}
		return "parking api unreachable"
	}
	return fmt.Sprintf("parking api status %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

func (e *APIError) HTTPStatus() int {
	return e.Status
}

func (e *APIError) ServerMessage() string {
	return e.Message
}

// FieldMessages flattens validation errors in field order.
func (e *APIError) FieldMessages() []string {
	fields := make([]string, 0, len(e.FieldErrors))
	for f := range e.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var out []string
	for _, f := range fields {
		out = append(out, e.FieldErrors[f]...)
	}
	return out
}

func StatusOf(err error) (int, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, true
	}
	return 0, false
}

func IsTransport(err error) bool {
	status, ok := StatusOf(err)
	return ok && status == 0
}

func IsUnauthorized(err error) bool {
	status, ok := StatusOf(err)
	return ok && status == http.StatusUnauthorized
}

// errorBody covers the shapes the API uses: {"message", "errors": {field: [..]}}
// and {"error": "..."}.
type errorBody struct {
	Message string                     `json:"message"`
	Error   string                     `json:"error"`
	Errors  map[string]json.RawMessage `json:"errors"`
}

func decodeError(status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		apiErr.Message = strings.TrimSpace(string(raw))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
		return apiErr
	}

	apiErr.Message = body.Message
	if apiErr.Message == "" {
		apiErr.Message = body.Error
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}

	if len(body.Errors) > 0 {
		apiErr.FieldErrors = make(map[string][]string, len(body.Errors))
		for field, v := range body.Errors {
			var list []string
			if err := json.Unmarshal(v, &list); err == nil {
				apiErr.FieldErrors[field] = list
				continue
			}
			var single string
			if err := json.Unmarshal(v, &single); err == nil {
				apiErr.FieldErrors[field] = []string{single}
			}
		}
	}
	return apiErr
}
