package booking

import (
	"time"
)

type LocationRef struct {
	ID   FlexString `json:"id"`
	Name string     `json:"name"`
}

type VehicleRef struct {
	ID          FlexString `json:"id"`
	Type        string     `json:"type,omitempty"`
	NumberPlate string     `json:"number_plate,omitempty"`
	Brand       string     `json:"brand,omitempty"`
	Model       string     `json:"model,omitempty"`
}

type SlotRef struct {
	ID          FlexString `json:"id"`
	SlotNumber  string     `json:"slot_number,omitempty"`
	VehicleType string     `json:"vehicle_type,omitempty"`
}

// Booking is the record as the parking API returns it. Either the check-in pair
// or the start/end pair carries the times.
type Booking struct {
	ID                FlexString   `json:"id"`
	Status            string       `json:"status"`
	CheckInTime       *Timestamp   `json:"check_in_time,omitempty"`
	CheckOutTime      *Timestamp   `json:"check_out_time,omitempty"`
	StartTime         *Timestamp   `json:"start_time,omitempty"`
	EndTime           *Timestamp   `json:"end_time,omitempty"`
	DurationHours     *FlexFloat   `json:"duration_hours,omitempty"`
	VehicleID         FlexString   `json:"vehicle_id"`
	ParkingLocationID FlexString   `json:"parking_location_id"`
	ParkingSlotID     FlexString   `json:"parking_slot_id,omitempty"`
	LocationName      string       `json:"parking_location_name,omitempty"`
	SlotNumber        string       `json:"slot_number,omitempty"`
	Amount            FlexFloat    `json:"amount"`
	ParkingLocation   *LocationRef `json:"parking_location,omitempty"`
	Vehicle           *VehicleRef  `json:"vehicle,omitempty"`
	ParkingSlot       *SlotRef     `json:"parking_slot,omitempty"`
}

// Entry returns the authoritative start: check-in time first, then start time.
func (b Booking) Entry(loc *time.Location) (time.Time, bool) {
	for _, ts := range []*Timestamp{b.CheckInTime, b.StartTime} {
		if ts == nil {
			continue
		}
		if t, err := ts.In(loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Exit returns check-out, then end time, then entry plus duration.
func (b Booking) Exit(loc *time.Location) (time.Time, bool) {
	for _, ts := range []*Timestamp{b.CheckOutTime, b.EndTime} {
		if ts == nil {
			continue
		}
		if t, err := ts.In(loc); err == nil {
			return t, true
		}
	}
	if b.DurationHours != nil {
		if entry, ok := b.Entry(loc); ok {
			return entry.Add(time.Duration(b.DurationHours.Float64() * float64(time.Hour))), true
		}
	}
	return time.Time{}, false
}

// FillPlaceholders synthesizes slot and location objects when the detail
// payload only carries foreign keys.
func (b *Booking) FillPlaceholders(locationName string) {
	if b.ParkingSlot == nil && b.ParkingSlotID != "" {
		slotNumber := b.SlotNumber
		if slotNumber == "" {
			slotNumber = "Slot #" + b.ParkingSlotID.String()
		}
		vehicleType := "Unknown"
		switch {
		case b.Vehicle != nil && b.Vehicle.Type != "":
			vehicleType = b.Vehicle.Type
		case b.VehicleID != "":
			vehicleType = "Vehicle"
		}
		b.ParkingSlot = &SlotRef{ID: b.ParkingSlotID, SlotNumber: slotNumber, VehicleType: vehicleType}
	}
	if b.ParkingLocation == nil && b.ParkingLocationID != "" {
		if locationName == "" {
			locationName = "Parking Location"
		}
		b.ParkingLocation = &LocationRef{ID: b.ParkingLocationID, Name: locationName}
	}
}
