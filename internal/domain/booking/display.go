package booking

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	UnknownLocation = "Unknown Location"
	UnknownVehicle  = "Unknown Vehicle"
)

// SyncState tells whether a display status came from the server or from a
// local auto-completion that the server has not confirmed yet.
type SyncState string

const (
	SyncConfirmed  SyncState = "confirmed-server"
	SyncOptimistic SyncState = "optimistic-local"
	SyncReverted   SyncState = "reverted"
)

// DisplayBooking is the read model rebuilt on every fetch. It is never authoritative.
type DisplayBooking struct {
	ID                string       `json:"id"`
	Location          string       `json:"location"`
	Vehicle           string       `json:"vehicle"`
	EntryTime         time.Time    `json:"entry_time"`
	ExitTime          *time.Time   `json:"exit_time"`
	Status            ClientStatus `json:"status"`
	ServerStatus      string       `json:"server_status"`
	Amount            float64      `json:"amount"`
	VehicleID         string       `json:"vehicle_id"`
	ParkingLocationID string       `json:"parking_location_id"`
	ParkingSlotID     string       `json:"parking_slot_id,omitempty"`
	Sync              SyncState    `json:"sync"`
}

// MarshalJSON adds the tab bucket and badge class derived from Status, so
// cancelled rows land in the completed tab but keep their own badge.
func (d DisplayBooking) MarshalJSON() ([]byte, error) {
	type row DisplayBooking
	return json.Marshal(struct {
		row
		Bucket Bucket `json:"bucket"`
		Badge  string `json:"badge"`
	}{row(d), d.Status.Bucket(), d.Status.BadgeClass()})
}

// Expired reports whether the derived exit time is strictly before now.
func (d DisplayBooking) Expired(now time.Time) bool {
	return d.ExitTime != nil && d.ExitTime.Before(now)
}

// Names resolves foreign keys the payload did not embed.
type Names struct {
	Locations map[string]string
	Vehicles  map[string]string
}

func (n Names) location(b Booking) string {
	if b.ParkingLocation != nil && b.ParkingLocation.Name != "" {
		return b.ParkingLocation.Name
	}
	if b.LocationName != "" {
		return b.LocationName
	}
	if name, ok := n.Locations[b.ParkingLocationID.String()]; ok && name != "" {
		return name
	}
	return UnknownLocation
}

func (n Names) vehicle(b Booking) string {
	if b.Vehicle != nil && b.Vehicle.NumberPlate != "" {
		return DescribeVehicle(b.Vehicle.NumberPlate, b.Vehicle.Brand, b.Vehicle.Model)
	}
	if desc, ok := n.Vehicles[b.VehicleID.String()]; ok && desc != "" {
		return desc
	}
	return UnknownVehicle
}

// DescribeVehicle formats "GJ01AB1234 (Honda City)".
func DescribeVehicle(plate, brand, model string) string {
	label := strings.TrimSpace(brand + " " + model)
	if label == "" {
		return plate
	}
	return fmt.Sprintf("%s (%s)", plate, label)
}

// Project builds the display row for b. A booking with no parsable entry time
// is anchored to now.
func Project(b Booking, names Names, loc *time.Location, now time.Time) DisplayBooking {
	entry, ok := b.Entry(loc)
	if !ok {
		entry = now
	}

	var exit *time.Time
	if t, ok := b.Exit(loc); ok {
		exit = &t
	}

	return DisplayBooking{
		ID:                b.ID.String(),
		Location:          names.location(b),
		Vehicle:           names.vehicle(b),
		EntryTime:         entry,
		ExitTime:          exit,
		Status:            MapStatus(b.Status),
		ServerStatus:      b.Status,
		Amount:            b.Amount.Float64(),
		VehicleID:         b.VehicleID.String(),
		ParkingLocationID: b.ParkingLocationID.String(),
		ParkingSlotID:     b.ParkingSlotID.String(),
		Sync:              SyncConfirmed,
	}
}

func ProjectAll(list []Booking, names Names, loc *time.Location, now time.Time) []DisplayBooking {
	out := make([]DisplayBooking, 0, len(list))
	for _, b := range list {
		out = append(out, Project(b, names, loc, now))
	}
	return out
}
