package request

import (
	"strings"

	"parking-booking-gateway/internal/domain/booking"
	"parking-booking-gateway/internal/usecase/commands"
)

type SearchSlotsRequest struct {
	Mode              string             `json:"mode" binding:"required,oneof=check_in advance"`
	ParkingLocationID booking.FlexString `json:"parking_location_id"`
	VehicleID         booking.FlexString `json:"vehicle_id,omitempty"`
	VehicleType       string             `json:"vehicle_type,omitempty"`
	Date              string             `json:"date,omitempty"`
	StartTime         string             `json:"start_time,omitempty"`
	EndTime           string             `json:"end_time,omitempty"`
	DurationHours     float64            `json:"duration_hours,omitempty" binding:"gte=0"`
}

// ToCommand leaves presence checks of the location and the window to the
// draft so they surface as form messages instead of 400s.
func (r SearchSlotsRequest) ToCommand() commands.SearchRequest {
	return commands.SearchRequest{
		Mode:          commands.Mode(r.Mode),
		LocationID:    strings.TrimSpace(string(r.ParkingLocationID)),
		VehicleID:     strings.TrimSpace(string(r.VehicleID)),
		VehicleType:   strings.TrimSpace(r.VehicleType),
		Date:          strings.TrimSpace(r.Date),
		StartTime:     strings.TrimSpace(r.StartTime),
		EndTime:       strings.TrimSpace(r.EndTime),
		DurationHours: r.DurationHours,
	}
}

type ToggleSlotRequest struct {
	SlotID booking.FlexString `json:"slot_id" binding:"required"`
}

type SubmitBookingRequest struct {
	VehicleID booking.FlexString `json:"vehicle_id,omitempty"`
}

func (r SubmitBookingRequest) ToCommand() commands.SubmitRequest {
	return commands.SubmitRequest{VehicleID: strings.TrimSpace(string(r.VehicleID))}
}
