//go:build unit

package booking_test

import (
	"testing"

	"parking-booking-gateway/internal/domain/booking"

	"github.com/stretchr/testify/assert"
)

func TestMapStatus(t *testing.T) {
	cases := []struct {
		server string
		want   booking.ClientStatus
	}{
		{server: "checked_in", want: booking.StatusActive},
		{server: "upcoming", want: booking.StatusUpcoming},
		{server: "booked", want: booking.StatusUpcoming},
		{server: "reserved", want: booking.StatusUpcoming},
		{server: "pending", want: booking.StatusUpcoming},
		{server: "confirmed", want: booking.StatusUpcoming},
		{server: "checked_out", want: booking.StatusCompleted},
		{server: "completed", want: booking.StatusCompleted},
		{server: "cancelled", want: booking.StatusCancelled},
		{server: " Checked_In ", want: booking.StatusActive},
		{server: "no_show", want: booking.StatusUnknown},
		{server: "", want: booking.StatusUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.server, func(t *testing.T) {
			assert.Equal(t, tc.want, booking.MapStatus(tc.server))
		})
	}
}

func TestClientStatus_Bucket(t *testing.T) {
	t.Run("cancelled shares the completed tab but keeps its badge", func(t *testing.T) {
		assert.Equal(t, booking.BucketCompleted, booking.StatusCancelled.Bucket())
		assert.Equal(t, booking.BucketCompleted, booking.StatusCompleted.Bucket())
		assert.NotEqual(t, booking.StatusCompleted.BadgeClass(), booking.StatusCancelled.BadgeClass())
	})

	t.Run("rank orders active, upcoming, completed, unknown", func(t *testing.T) {
		assert.Less(t, booking.StatusActive.Rank(), booking.StatusUpcoming.Rank())
		assert.Less(t, booking.StatusUpcoming.Rank(), booking.StatusCompleted.Rank())
		assert.Equal(t, booking.StatusCompleted.Rank(), booking.StatusCancelled.Rank())
		assert.Less(t, booking.StatusCancelled.Rank(), booking.StatusUnknown.Rank())
	})

	t.Run("unknown is in no tab", func(t *testing.T) {
		assert.Equal(t, booking.BucketNone, booking.StatusUnknown.Bucket())
		assert.True(t, booking.StatusUnknown.IsValid())
		assert.False(t, booking.ClientStatus("archived").IsValid())
	})
}

func TestParseBucket(t *testing.T) {
	for in, want := range map[string]booking.Bucket{
		"active":     booking.BucketActive,
		" Upcoming ": booking.BucketUpcoming,
		"COMPLETED":  booking.BucketCompleted,
	} {
		got, ok := booking.ParseBucket(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "cancelled", "archived"} {
		_, ok := booking.ParseBucket(in)
		assert.False(t, ok, in)
	}
}
