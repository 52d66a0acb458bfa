package bookingcache

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"parking-booking-gateway/internal/domain/booking"
	"parking-booking-gateway/internal/pkg/clock"
	"parking-booking-gateway/internal/pkg/config"
	"parking-booking-gateway/internal/usecase/shared"
)

// Cache is a best-effort acceleration layer over session storage. It never
// returns an error: failures are logged and read as a miss.
type Cache struct {
	store       shared.SessionStore
	clock       clock.Clock
	recentLimit int
	logger      *slog.Logger
}

type Entry struct {
	Data      booking.DisplayBooking `json:"data"`
	Timestamp int64                  `json:"timestamp"`
}

func New(store shared.SessionStore, clk clock.Clock, cfg config.BookingConfig, logger *slog.Logger) *Cache {
	limit := cfg.RecentLimit
	if limit <= 0 {
		limit = 10
	}
	return &Cache{store: store, clock: clk, recentLimit: limit, logger: logger}
}

// Save writes the full list, the recent ids and the detail map. An empty
// list clears the cache instead.
func (c *Cache) Save(ctx context.Context, ns string, list []booking.DisplayBooking) {
	if len(list) == 0 {
		c.Clear(ctx, ns)
		return
	}

	now := c.clock.Now().UnixMilli()
	c.writeLists(ctx, ns, list, now)
	c.put(ctx, ns, shared.KeyDashboardRefresh, now)
}

func (c *Cache) writeLists(ctx context.Context, ns string, list []booking.DisplayBooking, now int64) {
	details := make(map[string]Entry, len(list))
	recent := make([]string, 0, c.recentLimit)
	for _, b := range list {
		details[b.ID] = Entry{Data: b, Timestamp: now}
		if len(recent) < c.recentLimit {
			recent = append(recent, b.ID)
		}
	}

	c.put(ctx, ns, shared.KeyAllProcessed, list)
	c.put(ctx, ns, shared.KeyRecentBookings, recent)
	c.put(ctx, ns, shared.KeyBookingsCache, details)
}

// Load returns the cached list; absent or malformed data is a miss.
func (c *Cache) Load(ctx context.Context, ns string) ([]booking.DisplayBooking, bool) {
	var list []booking.DisplayBooking
	if !c.get(ctx, ns, shared.KeyAllProcessed, &list) || list == nil {
		return nil, false
	}
	return list, true
}

func (c *Cache) Clear(ctx context.Context, ns string) {
	for _, key := range []string{shared.KeyAllProcessed, shared.KeyRecentBookings, shared.KeyBookingsCache, shared.KeyDashboardRefresh} {
		if err := c.store.Remove(ctx, ns, key); err != nil {
			c.logger.Warn("booking cache clear failed", "namespace", ns, "key", key, "error", err)
		}
	}
}

func (c *Cache) Detail(ctx context.Context, ns, id string) (Entry, bool) {
	details := map[string]Entry{}
	if !c.get(ctx, ns, shared.KeyBookingsCache, &details) {
		return Entry{}, false
	}
	e, ok := details[id]
	return e, ok
}

// Remember records a freshly created booking ahead of the next full fetch.
func (c *Cache) Remember(ctx context.Context, ns string, b booking.DisplayBooking) {
	var recent []string
	c.get(ctx, ns, shared.KeyRecentBookings, &recent)
	next := make([]string, 0, c.recentLimit)
	next = append(next, b.ID)
	for _, id := range recent {
		if id != b.ID && len(next) < c.recentLimit {
			next = append(next, id)
		}
	}

	details := map[string]Entry{}
	c.get(ctx, ns, shared.KeyBookingsCache, &details)
	details[b.ID] = Entry{Data: b, Timestamp: c.clock.Now().UnixMilli()}

	c.put(ctx, ns, shared.KeyRecentBookings, next)
	c.put(ctx, ns, shared.KeyBookingsCache, details)
}

func (c *Cache) Recent(ctx context.Context, ns string) []string {
	var recent []string
	c.get(ctx, ns, shared.KeyRecentBookings, &recent)
	return recent
}

// UpdateStatus rewrites one cached booking in place, e.g. after a cancel.
// The refresh stamp is left alone since nothing was fetched.
func (c *Cache) UpdateStatus(ctx context.Context, ns, id string, status booking.ClientStatus) {
	list, ok := c.Load(ctx, ns)
	if !ok {
		return
	}
	changed := false
	for i := range list {
		if list[i].ID == id {
			list[i].Status = status
			changed = true
		}
	}
	if changed {
		c.writeLists(ctx, ns, list, c.clock.Now().UnixMilli())
	}
}

func (c *Cache) LastRefresh(ctx context.Context, ns string) (time.Time, bool) {
	raw, ok, err := c.store.Get(ctx, ns, shared.KeyDashboardRefresh)
	if err != nil || !ok {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

func (c *Cache) get(ctx context.Context, ns, key string, out any) bool {
	ok, err := shared.GetJSON(ctx, c.store, ns, key, out)
	if err != nil {
		c.logger.Warn("booking cache read failed", "namespace", ns, "key", key, "error", err)
		return false
	}
	return ok
}

func (c *Cache) put(ctx context.Context, ns, key string, v any) {
	if err := shared.SetJSON(ctx, c.store, ns, key, v); err != nil {
		c.logger.Warn("booking cache write failed", "namespace", ns, "key", key, "error", err)
	}
}
