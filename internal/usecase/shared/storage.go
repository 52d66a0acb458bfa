package shared

import "context"

//go:generate mockgen -source=storage.go -destination=../../../tests/mock/shared/storage_mock.go -package=sharedmock

// SessionStore is per-browser-session key/value storage. Values are JSON
// text. There is no locking; the last writer wins.
type SessionStore interface {
	Get(ctx context.Context, namespace, key string) (string, bool, error)
	Set(ctx context.Context, namespace, key, value string) error
	Remove(ctx context.Context, namespace, key string) error
	Clear(ctx context.Context, namespace string) error
	// Subscribe delivers every change made to namespace until cancel is called.
	Subscribe(namespace string) (<-chan Change, func())
}

type Change struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Removed   bool   `json:"removed"`
}

// Storage keys. recent_bookings holds at most the configured number of ids.
const (
	KeyToken              = "token"
	KeyUserMinimal        = "user_minimal"
	KeyBookingsCache      = "bookings_cache"
	KeyRecentBookings     = "recent_bookings"
	KeyAllProcessed       = "all_processed_bookings"
	KeyDashboardRefresh   = "dashboard_last_refresh"
	KeyRedirectAfterLogin = "redirectAfterLogin"
	KeyBookingDraft       = "booking_draft"
)

