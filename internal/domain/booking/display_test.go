//go:build unit

package booking_test

import (
	"encoding/json"
	"testing"
	"time"

	"parking-booking-gateway/internal/domain/booking"
	"parking-booking-gateway/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooking_UnmarshalJSON(t *testing.T) {
	t.Run("numeric ids and string amount", func(t *testing.T) {
		raw := `{"id":99,"status":"checked_in","vehicle_id":12,"parking_location_id":"5",
			"parking_slot_id":null,"amount":"35.50","check_in_time":"2025-07-15 09:00:00","duration_hours":2}`

		var b booking.Booking
		require.NoError(t, json.Unmarshal([]byte(raw), &b))

		assert.Equal(t, booking.FlexString("99"), b.ID)
		assert.Equal(t, booking.FlexString("12"), b.VehicleID)
		assert.Equal(t, booking.FlexString(""), b.ParkingSlotID)
		assert.InDelta(t, 35.5, b.Amount.Float64(), 0.0001)
		require.NotNil(t, b.DurationHours)
		assert.InDelta(t, 2.0, b.DurationHours.Float64(), 0.0001)
	})
}

func TestProject(t *testing.T) {
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

	t.Run("embedded names and check-in pair", func(t *testing.T) {
		wire := builder.NewBookingBuilder().BuildWire()

		got := booking.Project(wire, booking.Names{}, time.UTC, now)

		exit := time.Date(2025, 7, 15, 11, 0, 0, 0, time.UTC)
		want := booking.DisplayBooking{
			ID:                "1",
			Location:          "Downtown Parking",
			Vehicle:           "GJ01AB1234 (Honda City)",
			EntryTime:         time.Date(2025, 7, 15, 9, 0, 0, 0, time.UTC),
			ExitTime:          &exit,
			Status:            booking.StatusActive,
			ServerStatus:      booking.ServerCheckedIn,
			Amount:            35,
			VehicleID:         "12",
			ParkingLocationID: "5",
			ParkingSlotID:     "7",
			Sync:              booking.SyncConfirmed,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("DisplayBooking mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("start/end pair wins when check-in is absent", func(t *testing.T) {
		start := time.Date(2025, 7, 16, 8, 0, 0, 0, time.UTC)
		end := start.Add(3 * time.Hour)
		wire := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.CheckIn, b.CheckOut = nil, nil
			b.Start, b.End = &start, &end
			b.Status = booking.ServerBooked
		}).BuildWire()

		got := booking.Project(wire, booking.Names{}, time.UTC, now)

		assert.True(t, got.EntryTime.Equal(start))
		require.NotNil(t, got.ExitTime)
		assert.True(t, got.ExitTime.Equal(end))
		assert.Equal(t, booking.StatusUpcoming, got.Status)
	})

	t.Run("exit derived from duration", func(t *testing.T) {
		dur := 1.5
		wire := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.CheckOut = nil
			b.Duration = &dur
		}).BuildWire()

		got := booking.Project(wire, booking.Names{}, time.UTC, now)

		require.NotNil(t, got.ExitTime)
		assert.Equal(t, 90*time.Minute, got.ExitTime.Sub(got.EntryTime))
	})

	t.Run("no times anchors entry to now with no exit", func(t *testing.T) {
		wire := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.CheckIn, b.CheckOut = nil, nil
		}).BuildWire()

		got := booking.Project(wire, booking.Names{}, time.UTC, now)

		assert.True(t, got.EntryTime.Equal(now))
		assert.Nil(t, got.ExitTime)
		assert.False(t, got.Expired(now))
	})

	t.Run("names resolved from lookup tables, then placeholders", func(t *testing.T) {
		wire := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.LocationName, b.Plate = "", ""
		}).BuildWire()
		names := booking.Names{
			Locations: map[string]string{"5": "East Side Garage"},
		}

		got := booking.Project(wire, names, time.UTC, now)

		assert.Equal(t, "East Side Garage", got.Location)
		assert.Equal(t, booking.UnknownVehicle, got.Vehicle)

		got = booking.Project(wire, booking.Names{}, time.UTC, now)
		assert.Equal(t, booking.UnknownLocation, got.Location)
	})

	t.Run("naive timestamps use the supplied zone", func(t *testing.T) {
		ist := time.FixedZone("IST", 19800)
		ts := booking.Timestamp("2025-07-15 09:00:00")

		got, err := ts.In(ist)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 7, 15, 3, 30, 0, 0, time.UTC), got.UTC())

		_, err = booking.Timestamp("yesterday").In(ist)
		assert.ErrorIs(t, err, booking.ErrInvalidTimestamp)
	})
}

func TestBooking_FillPlaceholders(t *testing.T) {
	wire := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.LocationName, b.Plate = "", ""
	}).BuildWire()

	wire.FillPlaceholders("")

	require.NotNil(t, wire.ParkingSlot)
	assert.Equal(t, "Slot #7", wire.ParkingSlot.SlotNumber)
	assert.Equal(t, "Vehicle", wire.ParkingSlot.VehicleType)
	require.NotNil(t, wire.ParkingLocation)
	assert.Equal(t, "Parking Location", wire.ParkingLocation.Name)
}

func TestDisplayBooking_MarshalJSON(t *testing.T) {
	cancelled := builder.NewBookingBuilder().WithStatus(booking.ServerCancelled).BuildDisplay()

	raw, err := json.Marshal(cancelled)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "cancelled", fields["status"])
	assert.Equal(t, "completed", fields["bucket"])
	assert.Equal(t, booking.StatusCancelled.BadgeClass(), fields["badge"])

	var back booking.DisplayBooking
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, cancelled.ID, back.ID)
	assert.Equal(t, cancelled.Status, back.Status)
}
