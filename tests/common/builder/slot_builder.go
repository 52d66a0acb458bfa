//go:build unit || e2e

package builder

import (
	"parking-booking-gateway/internal/domain/booking"
	"parking-booking-gateway/internal/domain/slot"
)

// NewSlot returns an active slot that is free for the requested range.
func NewSlot(id, vehicleType string) slot.ParkingSlot {
	return slot.ParkingSlot{
		ID:                      booking.FlexString(id),
		SlotNumber:              "A-" + id,
		VehicleType:             vehicleType,
		IsActive:                true,
		IsAvailableForTimeRange: true,
		Status:                  "available",
	}
}

func NewTakenSlot(id, vehicleType string) slot.ParkingSlot {
	s := NewSlot(id, vehicleType)
	s.IsAvailableForTimeRange = false
	s.HasUpcomingBooking = true
	s.Status = "booked"
	return s
}
