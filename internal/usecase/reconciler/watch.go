package reconciler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"parking-booking-gateway/internal/domain/booking"
	"parking-booking-gateway/internal/usecase/board"
)

// View selects the polling cadence of a watch.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewBookings  View = "bookings"
)

func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewDashboard, "":
		return ViewDashboard, nil
	case ViewBookings:
		return ViewBookings, nil
	default:
		return "", fmt.Errorf("unknown view %q", s)
	}
}

type State int32

const (
	StateIdle State = iota
	StateChecking
	StateReconciling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateChecking:
		return "checking"
	case StateReconciling:
		return "reconciling"
	default:
		return "unknown"
	}
}

type EventType string

const (
	EventBookingsUpdated  EventType = "bookings_updated"
	EventBookingCompleted EventType = "booking_completed"
	EventSessionEnded     EventType = "session_ended"
)

type Event struct {
	Type    EventType
	Payload any
}

type BookingsPayload struct {
	Bookings []booking.DisplayBooking `json:"bookings"`
	Summary  booking.Summary          `json:"summary"`
	Changes  []booking.StatusChange   `json:"changes"`
	Stale    bool                     `json:"stale"`
}

type CompletedPayload struct {
	ID       string `json:"id"`
	Location string `json:"location"`
	Vehicle  string `json:"vehicle"`
	Message  string `json:"message"`
}

type SessionEndedPayload struct {
	Redirect string `json:"redirect"`
}

const eventBuffer = 16

// Watch is one open view of a browser session.
type Watch struct {
	ID        string
	Namespace string
	View      View

	board    *board.Board
	state    atomic.Int32
	events   chan Event
	done     chan struct{}
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
	ended    atomic.Bool
}

func newWatch(parent context.Context, id, ns string, view View) *Watch {
	ctx, cancel := context.WithCancel(parent)
	return &Watch{
		ID:        id,
		Namespace: ns,
		View:      view,
		board:     board.New(),
		events:    make(chan Event, eventBuffer),
		done:      make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Events is never closed; select on Done as well.
func (w *Watch) Events() <-chan Event {
	return w.events
}

func (w *Watch) Done() <-chan struct{} {
	return w.done
}

func (w *Watch) State() State {
	return State(w.state.Load())
}

func (w *Watch) Board() *board.Board {
	return w.board
}

func (w *Watch) tryBegin() bool {
	return w.state.CompareAndSwap(int32(StateIdle), int32(StateChecking))
}

func (w *Watch) setState(s State) {
	w.state.Store(int32(s))
}

// emit drops the event when the view is gone or not keeping up.
func (w *Watch) emit(e Event) bool {
	select {
	case <-w.done:
		return false
	default:
	}
	select {
	case w.events <- e:
		return true
	default:
		return false
	}
}

func (w *Watch) endSession() {
	if w.ended.CompareAndSwap(false, true) {
		w.board.Invalidate()
		w.emit(Event{Type: EventSessionEnded, Payload: SessionEndedPayload{Redirect: "/login"}})
	}
}

func (w *Watch) stop() {
	w.stopOnce.Do(func() {
		w.board.Close()
		w.cancel()
		close(w.done)
	})
}

func (w *Watch) interval(dashboard, bookings time.Duration) time.Duration {
	if w.View == ViewBookings {
		return bookings
	}
	return dashboard
}
