package parkingapi

import (
	"context"
	"net/http"
	"net/url"

	"parking-booking-gateway/internal/domain/slot"
	"parking-booking-gateway/internal/usecase/readmodel"
	"parking-booking-gateway/internal/usecase/shared"
)

func (c *Client) AvailableSlots(ctx context.Context, token string, q shared.SlotQuery) (*slot.SearchResult, error) {
	query := map[string]string{
		"date":       q.Date,
		"start_time": q.StartTime,
		"end_time":   q.EndTime,
	}
	if q.VehicleType != "" {
		query["vehicle_type"] = q.VehicleType
	}

	raw, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/parking-locations/" + url.PathEscape(q.LocationID) + "/available-slots",
		query:  query,
		token:  token,
	})
	if err != nil {
		return nil, err
	}

	out := slot.SearchResult{Slots: []slot.ParkingSlot{}, SlotAvailabilities: []slot.Availability{}}
	if err := decode(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListLocations(ctx context.Context, token string) ([]readmodel.LocationRM, error) {
	raw, err := c.doList(ctx, call{method: http.MethodGet, path: "/parking-locations", token: token})
	if err != nil {
		return nil, err
	}

	out := []readmodel.LocationRM{}
	if err := decodeWrapped(raw, "parking_locations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetLocation(ctx context.Context, token, id string) (*readmodel.LocationRM, error) {
	raw, err := c.do(ctx, call{method: http.MethodGet, path: "/parking-locations/" + url.PathEscape(id), token: token})
	if err != nil {
		return nil, err
	}

	var out readmodel.LocationRM
	if err := decodeWrapped(raw, "parking_location", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListVehicles(ctx context.Context, token string) ([]readmodel.VehicleRM, error) {
	raw, err := c.doList(ctx, call{method: http.MethodGet, path: "/vehicles", token: token})
	if err != nil {
		return nil, err
	}

	out := []readmodel.VehicleRM{}
	if err := decodeWrapped(raw, "vehicles", &out); err != nil {
		return nil, err
	}
	return out, nil
}

var _ shared.ParkingAPI = (*Client)(nil)
