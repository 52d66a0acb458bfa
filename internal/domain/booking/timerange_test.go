//go:build unit

package booking_test

import (
	"testing"
	"time"

	"parking-booking-gateway/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAdvance(t *testing.T) {
	cases := []struct {
		name  string
		date  string
		start string
		end   string
		errIs error
	}{
		{name: "valid ISO date", date: "2025-07-20", start: "09:00", end: "11:30"},
		{name: "valid day-first date", date: "20-07-2025", start: "9:00", end: "9:30"},
		{name: "missing date", date: "", start: "09:00", end: "10:00", errIs: booking.ErrMissingTimeRange},
		{name: "bad date", date: "07/20/2025", start: "09:00", end: "10:00", errIs: booking.ErrInvalidDate},
		{name: "bad clock", date: "2025-07-20", start: "24:00", end: "10:00", errIs: booking.ErrInvalidClock},
		{name: "end before start", date: "2025-07-20", start: "10:00", end: "09:00", errIs: booking.ErrEndNotAfterStart},
		{name: "equal times", date: "2025-07-20", start: "10:00", end: "10:00", errIs: booking.ErrEndNotAfterStart},
		{name: "29 minute window", date: "2025-07-20", start: "10:00", end: "10:29", errIs: booking.ErrWindowTooShort},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			iv, err := booking.ValidateAdvance(tc.date, tc.start, tc.end, time.UTC, 30*time.Minute)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.True(t, iv.End.After(iv.Start))
			assert.Equal(t, 20, iv.Start.Day())
		})
	}
}

func TestFormatClock(t *testing.T) {
	got, err := booking.FormatClock("9:05")
	require.NoError(t, err)
	assert.Equal(t, "09:05", got)
}

func TestValidateDuration(t *testing.T) {
	assert.NoError(t, booking.ValidateDuration(0.5))
	assert.NoError(t, booking.ValidateDuration(3))
	assert.ErrorIs(t, booking.ValidateDuration(0.25), booking.ErrDurationTooShort)
}

func TestSplitOvernight(t *testing.T) {
	t.Run("23:00 plus 3 hours splits at midnight", func(t *testing.T) {
		start := time.Date(2025, 7, 15, 23, 0, 0, 0, time.UTC)

		parts, overnight := booking.SplitOvernight(start, 3)

		require.True(t, overnight)
		require.Len(t, parts, 2)
		midnight := time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC)
		assert.True(t, parts[0].Start.Equal(start))
		assert.True(t, parts[0].End.Equal(midnight))
		assert.InDelta(t, 1.0, parts[0].Hours(), 0.0001)
		assert.True(t, parts[1].Start.Equal(midnight))
		assert.True(t, parts[1].End.Equal(time.Date(2025, 7, 16, 2, 0, 0, 0, time.UTC)))
		assert.InDelta(t, 2.0, parts[1].Hours(), 0.0001)
	})

	t.Run("ending exactly at midnight stays on one day", func(t *testing.T) {
		start := time.Date(2025, 7, 15, 22, 0, 0, 0, time.UTC)
		parts, overnight := booking.SplitOvernight(start, 2)
		assert.False(t, overnight)
		assert.Nil(t, parts)
	})
}
