//go:build unit || e2e

package builder

import (
	"time"

	"parking-booking-gateway/internal/domain/booking"
)

type BookingBuilder struct {
	ID           string
	Status       string
	CheckIn      *time.Time
	CheckOut     *time.Time
	Start        *time.Time
	End          *time.Time
	Duration     *float64
	VehicleID    string
	LocationID   string
	SlotID       string
	Amount       float64
	LocationName string
	Plate        string
	Brand        string
	Model        string
}

func NewBookingBuilder() *BookingBuilder {
	checkIn := time.Date(2025, 7, 15, 9, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(2 * time.Hour)
	return &BookingBuilder{
		ID:           "1",
		Status:       booking.ServerCheckedIn,
		CheckIn:      &checkIn,
		CheckOut:     &checkOut,
		VehicleID:    "12",
		LocationID:   "5",
		SlotID:       "7",
		Amount:       35,
		LocationName: "Downtown Parking",
		Plate:        "GJ01AB1234",
		Brand:        "Honda",
		Model:        "City",
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithID(id string) *BookingBuilder {
	b.ID = id
	return b
}

func (b *BookingBuilder) WithStatus(status string) *BookingBuilder {
	b.Status = status
	return b
}

// WithWindow sets check-in/check-out.
func (b *BookingBuilder) WithWindow(in, out time.Time) *BookingBuilder {
	b.CheckIn = &in
	b.CheckOut = &out
	return b
}

func (b *BookingBuilder) BuildWire() booking.Booking {
	out := booking.Booking{
		ID:                booking.FlexString(b.ID),
		Status:            b.Status,
		VehicleID:         booking.FlexString(b.VehicleID),
		ParkingLocationID: booking.FlexString(b.LocationID),
		ParkingSlotID:     booking.FlexString(b.SlotID),
		Amount:            booking.FlexFloat(b.Amount),
	}
	if b.CheckIn != nil {
		out.CheckInTime = booking.NewTimestamp(*b.CheckIn)
	}
	if b.CheckOut != nil {
		out.CheckOutTime = booking.NewTimestamp(*b.CheckOut)
	}
	if b.Start != nil {
		out.StartTime = booking.NewTimestamp(*b.Start)
	}
	if b.End != nil {
		out.EndTime = booking.NewTimestamp(*b.End)
	}
	if b.Duration != nil {
		d := booking.FlexFloat(*b.Duration)
		out.DurationHours = &d
	}
	if b.LocationName != "" {
		out.ParkingLocation = &booking.LocationRef{ID: out.ParkingLocationID, Name: b.LocationName}
	}
	if b.Plate != "" {
		out.Vehicle = &booking.VehicleRef{ID: out.VehicleID, NumberPlate: b.Plate, Brand: b.Brand, Model: b.Model}
	}
	return out
}

func (b *BookingBuilder) BuildDisplay() booking.DisplayBooking {
	return booking.Project(b.BuildWire(), booking.Names{}, time.UTC, time.Now())
}
