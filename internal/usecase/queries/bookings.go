package queries

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"parking-booking-gateway/internal/domain/booking"
	"parking-booking-gateway/internal/pkg/errs"
	"parking-booking-gateway/internal/usecase/bookingcache"
	"parking-booking-gateway/internal/usecase/projection"
	"parking-booking-gateway/internal/usecase/shared"
)

//go:generate mockgen -source=bookings.go -destination=../../../tests/mock/queries/bookings_mock.go -package=queriesmock

const (
	MsgBookingsLoadFailed = "Failed to load bookings."
	MsgBookingLoadFailed  = "Failed to load booking details."
	MsgBookingNotFound    = "Booking not found."
)

type BookingList struct {
	Bookings    []booking.DisplayBooking `json:"bookings"`
	Summary     booking.Summary          `json:"summary"`
	Tab         booking.Bucket           `json:"tab,omitempty"`
	Stale       bool                     `json:"stale"`
	LastRefresh *time.Time               `json:"last_refresh,omitempty"`
}

// InTab keeps only the bookings of one tab. The summary still counts the
// whole list so every tab header can show its total.
func (l *BookingList) InTab(tab booking.Bucket) *BookingList {
	out := *l
	out.Bookings = booking.Filter(l.Bookings, tab)
	out.Tab = tab
	return &out
}

// BookingDetail carries the upstream record when it could be fetched. A
// detail served from the cache only has the display row.
type BookingDetail struct {
	Booking *booking.Booking       `json:"booking,omitempty"`
	Display booking.DisplayBooking `json:"display"`
	Cached  bool                   `json:"cached"`
}

type BookingQueries interface {
	Cached(ctx context.Context, ns string) (*BookingList, error)
	Refresh(ctx context.Context, ns string) (*BookingList, error)
	Details(ctx context.Context, ns, id string) (*BookingDetail, error)
}

type bookingQueriesImpl struct {
	api       shared.ParkingAPI
	creds     shared.Credentials
	cache     *bookingcache.Cache
	projector *projection.Projector
	logger    *slog.Logger
}

func NewBookingQueries(
	api shared.ParkingAPI,
	creds shared.Credentials,
	cache *bookingcache.Cache,
	projector *projection.Projector,
	logger *slog.Logger,
) BookingQueries {
	return &bookingQueriesImpl{
		api:       api,
		creds:     creds,
		cache:     cache,
		projector: projector,
		logger:    logger,
	}
}

// Cached renders whatever the last fetch left behind; a miss is an empty list.
func (q *bookingQueriesImpl) Cached(ctx context.Context, ns string) (*BookingList, error) {
	list, _ := q.cache.Load(ctx, ns)
	return q.listOf(ctx, ns, list, false), nil
}

func (q *bookingQueriesImpl) Refresh(ctx context.Context, ns string) (*BookingList, error) {
	token, err := q.creds.Token(ctx, ns)
	if err != nil {
		return nil, err
	}

	raw, err := q.api.ListBookings(ctx, token)
	if err != nil {
		if recoverable(err) {
			if cached, ok := q.cache.Load(ctx, ns); ok {
				q.logger.Warn("serving cached bookings", "namespace", ns, "error", err)
				return q.listOf(ctx, ns, cached, true), nil
			}
		}
		return nil, shared.Reject(ctx, q.creds, ns, err, MsgBookingsLoadFailed)
	}

	list := q.projector.Project(ctx, ns, token, raw)
	booking.SortForDisplay(list)
	q.cache.Save(ctx, ns, list)
	return q.listOf(ctx, ns, list, false), nil
}

func (q *bookingQueriesImpl) Details(ctx context.Context, ns, id string) (*BookingDetail, error) {
	token, err := q.creds.Token(ctx, ns)
	if err != nil {
		return nil, err
	}

	cached, hasCached := q.cache.Detail(ctx, ns, id)
	b, err := q.api.GetBooking(ctx, token, id)
	if err != nil {
		status := shared.UpstreamStatus(err)
		if status != http.StatusUnauthorized && hasCached {
			q.logger.Warn("serving cached booking detail", "namespace", ns, "booking_id", id, "error", err)
			return &BookingDetail{Display: cached.Data, Cached: true}, nil
		}
		if status == http.StatusNotFound {
			return nil, shared.Fail(errs.ErrBookingNotFound, MsgBookingNotFound, err)
		}
		return nil, shared.Reject(ctx, q.creds, ns, err, MsgBookingLoadFailed)
	}

	locationName := ""
	if hasCached && cached.Data.Location != booking.UnknownLocation {
		locationName = cached.Data.Location
	}
	b.FillPlaceholders(locationName)
	return &BookingDetail{
		Booking: b,
		Display: q.projector.ProjectOne(ctx, ns, token, *b),
	}, nil
}

func (q *bookingQueriesImpl) listOf(ctx context.Context, ns string, list []booking.DisplayBooking, stale bool) *BookingList {
	if list == nil {
		list = []booking.DisplayBooking{}
	}
	out := &BookingList{
		Bookings: list,
		Summary:  booking.Summarize(list),
		Stale:    stale,
	}
	if t, ok := q.cache.LastRefresh(ctx, ns); ok {
		out.LastRefresh = &t
	}
	return out
}

// recoverable failures are the ones a cached list can stand in for.
func recoverable(err error) bool {
	status := shared.UpstreamStatus(err)
	return status == 0 || status >= 500
}
