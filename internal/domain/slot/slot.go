package slot

import (
	"strings"

	"parking-booking-gateway/internal/domain/booking"
)

type VehicleClass string

const (
	TwoWheeler  VehicleClass = "2-wheeler"
	FourWheeler VehicleClass = "4-wheeler"
	OtherClass  VehicleClass = "other"
)

// ClassOf normalizes the vehicle type spellings the API and the SPA use.
func ClassOf(vehicleType string) VehicleClass {
	switch strings.ToLower(strings.TrimSpace(vehicleType)) {
	case "2-wheeler", "2wheeler", "two_wheeler", "two-wheeler", "bike", "motorcycle", "scooter":
		return TwoWheeler
	case "4-wheeler", "4wheeler", "four_wheeler", "four-wheeler", "car", "suv":
		return FourWheeler
	default:
		return OtherClass
	}
}

type ParkingSlot struct {
	ID                      booking.FlexString `json:"id"`
	SlotNumber              string             `json:"slot_number"`
	VehicleType             string             `json:"vehicle_type"`
	IsActive                bool               `json:"is_active"`
	IsOccupied              bool               `json:"is_occupied"`
	HasUpcomingBooking      bool               `json:"has_upcoming_booking"`
	IsAvailableForTimeRange bool               `json:"is_available_for_time_range"`
	Status                  string             `json:"status"`
}

// Selectable is the only flag that decides whether a slot can be picked.
func (s ParkingSlot) Selectable() bool {
	return s.IsAvailableForTimeRange
}

type Availability struct {
	VehicleType    string `json:"vehicle_type"`
	AvailableSlots int    `json:"available_slots"`
	TotalSlots     int    `json:"total_slots"`
}

type SearchResult struct {
	Slots              []ParkingSlot  `json:"slots"`
	SlotAvailabilities []Availability `json:"slot_availabilities"`
}

type Partitioned struct {
	TwoWheeler  []ParkingSlot `json:"two_wheeler"`
	FourWheeler []ParkingSlot `json:"four_wheeler"`
	Other       []ParkingSlot `json:"other,omitempty"`
}

func Partition(slots []ParkingSlot) Partitioned {
	p := Partitioned{
		TwoWheeler:  []ParkingSlot{},
		FourWheeler: []ParkingSlot{},
	}
	for _, s := range slots {
		switch ClassOf(s.VehicleType) {
		case TwoWheeler:
			p.TwoWheeler = append(p.TwoWheeler, s)
		case FourWheeler:
			p.FourWheeler = append(p.FourWheeler, s)
		default:
			p.Other = append(p.Other, s)
		}
	}
	return p
}

func Find(slots []ParkingSlot, id string) (ParkingSlot, bool) {
	for _, s := range slots {
		if s.ID.String() == id {
			return s, true
		}
	}
	return ParkingSlot{}, false
}

// Selectable reports whether id is present in slots and still flagged
// available for the requested range.
func Selectable(slots []ParkingSlot, id string) bool {
	s, ok := Find(slots, id)
	return ok && s.Selectable()
}
