package reconciler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"parking-booking-gateway/internal/pkg/config"
	"parking-booking-gateway/internal/usecase/bookingcache"
	"parking-booking-gateway/internal/usecase/shared"
)

var ErrWatchNotFound = errors.New("watch not found")

// Scheduler owns the open watches and their reconcile timers.
type Scheduler struct {
	cron   *cron.Cron
	rec    *Reconciler
	store  shared.SessionStore
	cache  *bookingcache.Cache
	cfg    config.ReconcileConfig
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.RWMutex
	watches map[string]*Watch
	entries map[string]cron.EntryID
}

func NewScheduler(rec *Reconciler, store shared.SessionStore, cache *bookingcache.Cache, cfg config.ReconcileConfig, logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		rec:     rec,
		store:   store,
		cache:   cache,
		cfg:     cfg,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		watches: make(map[string]*Watch),
		entries: make(map[string]cron.EntryID),
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("reconcile scheduler started",
		"dashboard_interval", s.cfg.DashboardInterval.String(),
		"bookings_interval", s.cfg.BookingsInterval.String())
}

// Stop closes every watch, stops the timers and waits for running ticks and
// pending complete requests or ctx, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) {
	s.mu.Lock()
	for id, w := range s.watches {
		s.cron.Remove(s.entries[id])
		w.stop()
	}
	s.watches = make(map[string]*Watch)
	s.entries = make(map[string]cron.EntryID)
	s.mu.Unlock()
	s.cancel()

	cronCtx := s.cron.Stop()
	select {
	case <-cronCtx.Done():
	case <-ctx.Done():
	}

	done := make(chan struct{})
	go func() {
		s.rec.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
	s.logger.Info("reconcile scheduler stopped")
}

// Watch opens a view. The board is seeded from the cache and the first
// reconcile runs right away.
func (s *Scheduler) Watch(ns string, view View) (*Watch, error) {
	w := newWatch(s.ctx, uuid.NewString(), ns, view)
	if cached, ok := s.cache.Load(w.ctx, ns); ok {
		w.board.Seed(cached)
	}

	interval := w.interval(s.cfg.DashboardInterval, s.cfg.BookingsInterval)
	entryID, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		s.rec.Tick(w.ctx, w, false)
	})
	if err != nil {
		w.stop()
		return nil, fmt.Errorf("failed to schedule watch: %w", err)
	}

	s.mu.Lock()
	s.watches[w.ID] = w
	s.entries[w.ID] = entryID
	s.mu.Unlock()

	go s.followStorage(w)
	go s.rec.Tick(w.ctx, w, false)

	s.logger.Info("watch opened", "watch_id", w.ID, "namespace", ns, "view", string(view), "interval", interval.String())
	return w, nil
}

// Unwatch tears a view down. Results still in flight are dropped by the board.
func (s *Scheduler) Unwatch(id string) {
	s.mu.Lock()
	w, ok := s.watches[id]
	if ok {
		s.cron.Remove(s.entries[id])
		delete(s.watches, id)
		delete(s.entries, id)
	}
	s.mu.Unlock()

	if ok {
		w.stop()
		s.logger.Info("watch closed", "watch_id", id, "namespace", w.Namespace)
	}
}

// Refresh runs a manual reconcile for the watch.
func (s *Scheduler) Refresh(id string) error {
	w, ok := s.get(id)
	if !ok {
		return ErrWatchNotFound
	}
	go s.rec.Tick(w.ctx, w, true)
	return nil
}

// MarkCancelled pushes an accepted cancel to every watch of the session.
func (s *Scheduler) MarkCancelled(ns, bookingID string) {
	for _, w := range s.byNamespace(ns) {
		if out, ok := w.board.MarkCancelled(bookingID); ok {
			s.rec.publish(w, out, false)
		}
	}
}

// RefreshNamespace runs a manual reconcile on every watch of the session,
// e.g. after a booking was created.
func (s *Scheduler) RefreshNamespace(ns string) {
	for _, w := range s.byNamespace(ns) {
		go s.rec.Tick(w.ctx, w, true)
	}
}

func (s *Scheduler) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.watches)
}

// followStorage ends the watch's session when another request of the same
// browser session removes the token, the way a storage event reaches other tabs.
func (s *Scheduler) followStorage(w *Watch) {
	changes, cancel := s.store.Subscribe(w.Namespace)
	defer cancel()
	for {
		select {
		case <-w.done:
			return
		case c, ok := <-changes:
			if !ok {
				return
			}
			if c.Removed && (c.Key == shared.KeyToken || c.Key == "") {
				s.rec.projector.Forget(w.Namespace)
				w.endSession()
			}
		}
	}
}

func (s *Scheduler) get(id string) (*Watch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.watches[id]
	return w, ok
}

func (s *Scheduler) byNamespace(ns string) []*Watch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Watch
	for _, w := range s.watches {
		if w.Namespace == ns {
			out = append(out, w)
		}
	}
	return out
}
