// Package board holds the booking list a watch session is looking at.
//
// A Board is the single source of truth for one view. It only changes through
// its actions (Apply, AutoComplete, MarkCancelled, Invalidate) and every action
// reports what changed so callers decide whether to notify.
package board

import (
	"sync"
	"time"

	"github.com/jinzhu/copier"

	"parking-booking-gateway/internal/domain/booking"
)

type Outcome struct {
	List    []booking.DisplayBooking `json:"bookings"`
	Changes []booking.StatusChange   `json:"changes"`
	// Flipped lists the bookings moved to completed locally by this action.
	Flipped []string `json:"-"`
	// NewlyCompleted holds each booking at most once over the board's life.
	NewlyCompleted []booking.DisplayBooking `json:"-"`
}

func (o Outcome) Changed() bool {
	return len(o.Changes) > 0
}

type Board struct {
	mu       sync.Mutex
	list     []booking.DisplayBooking
	issued   uint64
	applied  uint64
	alive    bool
	notified map[string]struct{}
}

func New() *Board {
	return &Board{
		alive:    true,
		notified: make(map[string]struct{}),
	}
}

// Seed installs a cached list as the baseline for change detection. It has
// no effect once a server response has been applied.
func (b *Board) Seed(list []booking.DisplayBooking) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.applied > 0 || !b.alive {
		return
	}
	b.list = clone(list)
}

// Begin issues the generation a fetch must present to Apply.
func (b *Board) Begin() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.issued++
	return b.issued
}

// Apply replaces the list with a server response. Responses older than the
// last applied one, and responses arriving after Close, are dropped.
func (b *Board) Apply(gen uint64, server []booking.DisplayBooking, now time.Time) (Outcome, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.alive || gen <= b.applied {
		return Outcome{}, false
	}
	b.applied = gen

	next := carrySync(b.list, clone(server))
	flipped := ExpireActive(next, now)
	return b.commit(next, flipped), true
}

// AutoComplete runs the time-based override on the current list without a
// server response, e.g. when a fetch failed.
func (b *Board) AutoComplete(now time.Time) (Outcome, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.alive {
		return Outcome{}, false
	}
	next := clone(b.list)
	flipped := ExpireActive(next, now)
	return b.commit(next, flipped), true
}

// MarkCancelled records a cancel the server already accepted.
func (b *Board) MarkCancelled(id string) (Outcome, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.alive {
		return Outcome{}, false
	}
	next := clone(b.list)
	found := false
	for i := range next {
		if next[i].ID == id {
			next[i].Status = booking.StatusCancelled
			next[i].Sync = booking.SyncConfirmed
			found = true
		}
	}
	if !found {
		return Outcome{}, false
	}
	return b.commit(next, nil), true
}

// Invalidate drops the list and every fetch issued so far.
func (b *Board) Invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.list = nil
	b.applied = b.issued
}

// Close marks the board dead; later actions are no-ops.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.alive = false
}

func (b *Board) Alive() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.alive
}

func (b *Board) Snapshot() []booking.DisplayBooking {
	b.mu.Lock()
	defer b.mu.Unlock()
	return clone(b.list)
}

func (b *Board) commit(next []booking.DisplayBooking, flipped []string) Outcome {
	prev := b.list
	before := make(map[string]booking.ClientStatus, len(prev))
	for _, d := range prev {
		before[d.ID] = d.Status
	}

	local := make(map[string]struct{}, len(flipped))
	for _, id := range flipped {
		local[id] = struct{}{}
	}

	var completed []booking.DisplayBooking
	for _, d := range next {
		if d.Status != booking.StatusCompleted {
			continue
		}
		// A server-side completion only counts against a known earlier status.
		old, seen := before[d.ID]
		if _, flippedHere := local[d.ID]; !flippedHere && (!seen || old == booking.StatusCompleted) {
			continue
		}
		if _, done := b.notified[d.ID]; done {
			continue
		}
		b.notified[d.ID] = struct{}{}
		completed = append(completed, d)
	}

	b.list = next
	return Outcome{
		List:           clone(next),
		Changes:        booking.StatusChanges(prev, next),
		Flipped:        flipped,
		NewlyCompleted: completed,
	}
}

// carrySync settles the sync state of bookings that were completed locally:
// confirmed when the server agrees, reverted otherwise.
func carrySync(prev, next []booking.DisplayBooking) []booking.DisplayBooking {
	optimistic := make(map[string]struct{})
	for _, d := range prev {
		if d.Sync == booking.SyncOptimistic {
			optimistic[d.ID] = struct{}{}
		}
	}
	for i := range next {
		if _, ok := optimistic[next[i].ID]; !ok {
			continue
		}
		if next[i].Status == booking.StatusCompleted {
			next[i].Sync = booking.SyncConfirmed
		} else {
			next[i].Sync = booking.SyncReverted
		}
	}
	return next
}

// ExpireActive flips every active booking whose exit time has passed to
// completed, marks it optimistic and returns the flipped IDs.
func ExpireActive(list []booking.DisplayBooking, now time.Time) []string {
	var flipped []string
	for i := range list {
		if list[i].Status == booking.StatusActive && list[i].Expired(now) {
			list[i].Status = booking.StatusCompleted
			list[i].Sync = booking.SyncOptimistic
			flipped = append(flipped, list[i].ID)
		}
	}
	return flipped
}

func clone(list []booking.DisplayBooking) []booking.DisplayBooking {
	if list == nil {
		return nil
	}
	out := make([]booking.DisplayBooking, 0, len(list))
	// ExitTime is a pointer; a shallow copy would let callers edit the board.
	if err := copier.CopyWithOption(&out, &list, copier.Option{DeepCopy: true}); err != nil {
		out = out[:0]
		for _, b := range list {
			if b.ExitTime != nil {
				exit := *b.ExitTime
				b.ExitTime = &exit
			}
			out = append(out, b)
		}
	}
	return out
}
