package shared

import (
	"context"

	"parking-booking-gateway/internal/domain/booking"
	"parking-booking-gateway/internal/domain/slot"
	"parking-booking-gateway/internal/usecase/readmodel"
)

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/shared/ports_mock.go -package=sharedmock

// ParkingAPI is the remote parking REST backend. Every call that needs a
// session passes its bearer token explicitly.
type ParkingAPI interface {
	Login(ctx context.Context, contactNumber, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*readmodel.AuthorizedUserRM, error)

	ListBookings(ctx context.Context, token string) ([]booking.Booking, error)
	GetBooking(ctx context.Context, token, id string) (*booking.Booking, error)
	CreateCheckIn(ctx context.Context, token string, req CheckInRequest) (*booking.Booking, error)
	CreateAdvance(ctx context.Context, token string, req AdvanceRequest) (*booking.Booking, error)
	CancelBooking(ctx context.Context, token, id string) error
	CompleteBooking(ctx context.Context, token, id string) error

	AvailableSlots(ctx context.Context, token string, q SlotQuery) (*slot.SearchResult, error)
	ListLocations(ctx context.Context, token string) ([]readmodel.LocationRM, error)
	GetLocation(ctx context.Context, token, id string) (*readmodel.LocationRM, error)
	ListVehicles(ctx context.Context, token string) ([]readmodel.VehicleRM, error)
}

type LoginResult struct {
	Token   string                     `json:"token"`
	User    readmodel.AuthorizedUserRM `json:"user"`
	Message string                     `json:"message,omitempty"`
}

type CheckInRequest struct {
	ParkingLocationID booking.FlexString `json:"parking_location_id"`
	VehicleID         booking.FlexString `json:"vehicle_id"`
	ParkingSlotID     booking.FlexString `json:"parking_slot_id"`
	DurationHours     float64            `json:"duration_hours"`
}

type AdvanceRequest struct {
	ParkingLocationID booking.FlexString `json:"parking_location_id"`
	VehicleID         booking.FlexString `json:"vehicle_id"`
	ParkingSlotID     booking.FlexString `json:"parking_slot_id"`
	Date              string             `json:"date"`
	StartTime         string             `json:"start_time"`
	EndTime           string             `json:"end_time"`
}

// SlotQuery identifies one availability search; the same value is used for
// the pre-submit re-check.
type SlotQuery struct {
	LocationID  string `json:"location_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	VehicleType string `json:"vehicle_type"`
}

// Credentials hands out the bearer token of one browser session and tears
// the session down when the upstream rejects it.
type Credentials interface {
	Token(ctx context.Context, namespace string) (string, error)
	User(ctx context.Context, namespace string) (readmodel.MinimalUserRM, bool)
	ForceLogout(ctx context.Context, namespace string)
}
