package parkingapi

import (
	"context"
	"net/http"
	"net/url"

	"parking-booking-gateway/internal/domain/booking"
	"parking-booking-gateway/internal/usecase/shared"
)

func (c *Client) ListBookings(ctx context.Context, token string) ([]booking.Booking, error) {
	raw, err := c.doList(ctx, call{method: http.MethodGet, path: "/bookings", token: token})
	if err != nil {
		return nil, err
	}

	out := []booking.Booking{}
	if err := decodeWrapped(raw, "bookings", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBooking(ctx context.Context, token, id string) (*booking.Booking, error) {
	raw, err := c.do(ctx, call{method: http.MethodGet, path: "/bookings/" + url.PathEscape(id), token: token})
	if err != nil {
		return nil, err
	}
	return decodeBooking(raw)
}

func (c *Client) CreateCheckIn(ctx context.Context, token string, req shared.CheckInRequest) (*booking.Booking, error) {
	raw, err := c.do(ctx, call{method: http.MethodPost, path: "/bookings/check-in", token: token, body: req})
	if err != nil {
		return nil, err
	}
	return decodeBooking(raw)
}

func (c *Client) CreateAdvance(ctx context.Context, token string, req shared.AdvanceRequest) (*booking.Booking, error) {
	raw, err := c.do(ctx, call{method: http.MethodPost, path: "/bookings/advance", token: token, body: req})
	if err != nil {
		return nil, err
	}
	return decodeBooking(raw)
}

func (c *Client) CancelBooking(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, call{method: http.MethodPost, path: "/bookings/" + url.PathEscape(id) + "/cancel", token: token})
	return err
}

func (c *Client) CompleteBooking(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, call{method: http.MethodPost, path: "/bookings/" + url.PathEscape(id) + "/complete", token: token})
	return err
}

func decodeBooking(raw []byte) (*booking.Booking, error) {
	var out booking.Booking
	if err := decodeWrapped(raw, "booking", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
