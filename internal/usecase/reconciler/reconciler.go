package reconciler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"parking-booking-gateway/internal/domain/booking"
	"parking-booking-gateway/internal/pkg/clock"
	"parking-booking-gateway/internal/pkg/config"
	"parking-booking-gateway/internal/pkg/errs"
	"parking-booking-gateway/internal/usecase/board"
	"parking-booking-gateway/internal/usecase/bookingcache"
	"parking-booking-gateway/internal/usecase/projection"
	"parking-booking-gateway/internal/usecase/shared"
)

// Reconciler runs one fetch-project-autocomplete cycle for a watch.
type Reconciler struct {
	api             shared.ParkingAPI
	creds           shared.Credentials
	cache           *bookingcache.Cache
	projector       *projection.Projector
	clock           clock.Clock
	completeTimeout time.Duration
	logger          *slog.Logger
	wg              sync.WaitGroup
}

func New(
	api shared.ParkingAPI,
	creds shared.Credentials,
	cache *bookingcache.Cache,
	projector *projection.Projector,
	clk clock.Clock,
	cfg config.ReconcileConfig,
	logger *slog.Logger,
) *Reconciler {
	timeout := cfg.CompleteTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Reconciler{
		api:             api,
		creds:           creds,
		cache:           cache,
		projector:       projector,
		clock:           clk,
		completeTimeout: timeout,
		logger:          logger,
	}
}

// Tick reconciles w once. A scheduled tick is skipped while another one is
// running; a manual tick always runs and relies on the board's generation
// guard to stay ordered.
func (r *Reconciler) Tick(ctx context.Context, w *Watch, manual bool) {
	if !w.board.Alive() {
		return
	}
	if !manual {
		if !w.tryBegin() {
			r.logger.Debug("tick skipped", "watch_id", w.ID, "state", w.State().String())
			return
		}
		defer w.setState(StateIdle)
	}

	gen := w.board.Begin()
	token, err := r.creds.Token(ctx, w.Namespace)
	if err != nil {
		w.endSession()
		return
	}

	raw, err := r.api.ListBookings(ctx, token)
	if err != nil {
		r.fetchFailed(ctx, w, token, err)
		return
	}

	if !manual {
		w.setState(StateReconciling)
	}
	list := r.projector.Project(ctx, w.Namespace, token, raw)
	booking.SortForDisplay(list)

	out, ok := w.board.Apply(gen, list, r.clock.Now())
	if !ok {
		r.logger.Debug("result dropped", "watch_id", w.ID, "generation", gen)
		return
	}

	r.cache.Save(ctx, w.Namespace, out.List)
	for _, id := range out.Flipped {
		r.complete(token, w.Namespace, id)
	}
	r.publish(w, out, false)
}

func (r *Reconciler) fetchFailed(ctx context.Context, w *Watch, token string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	if shared.UpstreamStatus(err) == http.StatusUnauthorized {
		r.creds.ForceLogout(ctx, w.Namespace)
		w.endSession()
		return
	}

	r.logger.Warn("booking fetch failed", "watch_id", w.ID, "namespace", w.Namespace, "error", err)
	out, ok := w.board.AutoComplete(r.clock.Now())
	if !ok {
		return
	}
	for _, id := range out.Flipped {
		r.complete(token, w.Namespace, id)
	}
	r.publish(w, out, true)
}

// complete asks the backend to close a booking. Its outcome never touches
// the board; the next fetch is authoritative.
func (r *Reconciler) complete(token, ns, id string) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.completeTimeout)
		defer cancel()
		if err := r.api.CompleteBooking(ctx, token, id); err != nil {
			r.logger.Warn("auto-complete request failed", "namespace", ns, "booking_id", id, "error", errs.Wrap(err, "complete booking"))
			return
		}
		r.logger.Info("booking auto-completed", "namespace", ns, "booking_id", id)
	}()
}

func (r *Reconciler) publish(w *Watch, out board.Outcome, stale bool) {
	if !out.Changed() {
		return
	}
	w.emit(Event{
		Type: EventBookingsUpdated,
		Payload: BookingsPayload{
			Bookings: out.List,
			Summary:  booking.Summarize(out.List),
			Changes:  out.Changes,
			Stale:    stale,
		},
	})
	for _, b := range out.NewlyCompleted {
		w.emit(Event{
			Type: EventBookingCompleted,
			Payload: CompletedPayload{
				ID:       b.ID,
				Location: b.Location,
				Vehicle:  b.Vehicle,
				Message:  "Your parking booking at " + b.Location + " has been completed.",
			},
		})
	}
}

// Wait blocks until every fire-and-forget complete request returned.
func (r *Reconciler) Wait() {
	r.wg.Wait()
}
