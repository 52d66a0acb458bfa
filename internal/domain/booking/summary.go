package booking

import (
	"sort"
)

type Summary struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Upcoming  int `json:"upcoming"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	Unknown   int `json:"unknown"`
}

// Summarize counts cancelled bookings both on their own and inside Completed.
func Summarize(list []DisplayBooking) Summary {
	s := Summary{Total: len(list)}
	for _, b := range list {
		switch b.Status {
		case StatusActive:
			s.Active++
		case StatusUpcoming:
			s.Upcoming++
		case StatusCompleted:
			s.Completed++
		case StatusCancelled:
			s.Completed++
			s.Cancelled++
		default:
			s.Unknown++
		}
	}
	return s
}

func Filter(list []DisplayBooking, bucket Bucket) []DisplayBooking {
	out := make([]DisplayBooking, 0, len(list))
	for _, b := range list {
		if b.Status.Bucket() == bucket {
			out = append(out, b)
		}
	}
	return out
}

// SortForDisplay orders by bucket, most recent entry first within a bucket.
func SortForDisplay(list []DisplayBooking) {
	sort.SliceStable(list, func(i, j int) bool {
		ri, rj := list[i].Status.Rank(), list[j].Status.Rank()
		if ri != rj {
			return ri < rj
		}
		return list[i].EntryTime.After(list[j].EntryTime)
	})
}

type StatusChange struct {
	ID   string       `json:"id"`
	From ClientStatus `json:"from,omitempty"`
	To   ClientStatus `json:"to,omitempty"`
}

// StatusChanges compares two lists by booking ID. A booking present in only
// one of them is reported with an empty From or To.
func StatusChanges(prev, next []DisplayBooking) []StatusChange {
	before := make(map[string]ClientStatus, len(prev))
	for _, b := range prev {
		before[b.ID] = b.Status
	}

	var changes []StatusChange
	seen := make(map[string]struct{}, len(next))
	for _, b := range next {
		seen[b.ID] = struct{}{}
		old, ok := before[b.ID]
		if !ok || old != b.Status {
			changes = append(changes, StatusChange{ID: b.ID, From: old, To: b.Status})
		}
	}
	for _, b := range prev {
		if _, ok := seen[b.ID]; !ok {
			changes = append(changes, StatusChange{ID: b.ID, From: b.Status})
		}
	}
	return changes
}

func HasStatusChanges(prev, next []DisplayBooking) bool {
	return len(StatusChanges(prev, next)) > 0
}
