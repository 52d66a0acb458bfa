//go:build unit

package booking_test

import (
	"testing"
	"time"

	"parking-booking-gateway/internal/domain/booking"
	"parking-booking-gateway/tests/common/builder"

	"github.com/stretchr/testify/assert"
)

func display(id, status string) booking.DisplayBooking {
	return builder.NewBookingBuilder().WithID(id).WithStatus(status).BuildDisplay()
}

func TestSummarize(t *testing.T) {
	list := []booking.DisplayBooking{
		display("1", booking.ServerCheckedIn),
		display("2", booking.ServerBooked),
		display("3", booking.ServerCompleted),
		display("4", booking.ServerCancelled),
		display("5", "mystery"),
	}

	got := booking.Summarize(list)

	assert.Equal(t, booking.Summary{Total: 5, Active: 1, Upcoming: 1, Completed: 2, Cancelled: 1, Unknown: 1}, got)
	assert.Len(t, booking.Filter(list, booking.BucketCompleted), 2)
}

func TestSortForDisplay(t *testing.T) {
	older := display("1", booking.ServerCheckedIn)
	newer := display("2", booking.ServerCheckedIn)
	newer.EntryTime = older.EntryTime.Add(time.Hour)
	done := display("3", booking.ServerCompleted)
	next := display("4", booking.ServerPending)

	list := []booking.DisplayBooking{done, older, next, newer}
	booking.SortForDisplay(list)

	ids := make([]string, 0, len(list))
	for _, b := range list {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"2", "1", "4", "3"}, ids)
}

func TestStatusChanges(t *testing.T) {
	prev := []booking.DisplayBooking{
		display("1", booking.ServerCheckedIn),
		display("2", booking.ServerBooked),
	}

	t.Run("identical statuses", func(t *testing.T) {
		next := []booking.DisplayBooking{
			display("2", booking.ServerBooked),
			display("1", booking.ServerCheckedIn),
		}
		assert.False(t, booking.HasStatusChanges(prev, next))
	})

	t.Run("status differs for one id", func(t *testing.T) {
		next := []booking.DisplayBooking{
			display("1", booking.ServerCompleted),
			display("2", booking.ServerBooked),
		}
		changes := booking.StatusChanges(prev, next)
		assert.Equal(t, []booking.StatusChange{{ID: "1", From: booking.StatusActive, To: booking.StatusCompleted}}, changes)
	})

	t.Run("membership changes count", func(t *testing.T) {
		next := []booking.DisplayBooking{
			display("1", booking.ServerCheckedIn),
			display("3", booking.ServerBooked),
		}
		changes := booking.StatusChanges(prev, next)
		assert.ElementsMatch(t, []booking.StatusChange{
			{ID: "3", To: booking.StatusUpcoming},
			{ID: "2", From: booking.StatusUpcoming},
		}, changes)
	})
}
