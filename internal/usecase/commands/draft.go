package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"parking-booking-gateway/internal/domain/booking"
	"parking-booking-gateway/internal/domain/slot"
	"parking-booking-gateway/internal/pkg/clock"
	"parking-booking-gateway/internal/pkg/config"
	"parking-booking-gateway/internal/pkg/errs"
	"parking-booking-gateway/internal/usecase/shared"
)

//go:generate mockgen -source=draft.go -destination=../../../tests/mock/commands/draft_mock.go -package=commandsmock

type Mode string

const (
	ModeCheckIn Mode = "check_in"
	ModeAdvance Mode = "advance"
)

const (
	MsgSelectLocation   = "Please select a parking location."
	MsgSelectMode       = "Please choose check-in or advance booking."
	MsgMissingTimeRange = "Please select date, start time and end time."
	MsgInvalidTime      = "Please enter a valid time (HH:MM)."
	MsgInvalidDate      = "Please enter a valid date."
	MsgEndBeforeStart   = "End time must be after start time."
	MsgDurationTooShort = "Minimum booking duration is 0.5 hours."
	MsgSlotsLoadFailed  = "Failed to load available slots."
)

const (
	lastClockOfDay = "23:59"
	apiDateLayout  = "2006-01-02"
	apiClockLayout = "15:04"
)

type SearchRequest struct {
	Mode          Mode
	LocationID    string
	VehicleID     string
	VehicleType   string
	Date          string
	StartTime     string
	EndTime       string
	DurationHours float64
}

// Draft is the booking form between slot search and submission. It lives in
// session storage under booking_draft.
type Draft struct {
	Mode          Mode    `json:"mode"`
	LocationID    string  `json:"location_id"`
	VehicleID     string  `json:"vehicle_id,omitempty"`
	VehicleType   string  `json:"vehicle_type,omitempty"`
	Date          string  `json:"date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	DurationHours float64 `json:"duration_hours,omitempty"`

	// Query is replayed verbatim for the pre-submit re-check.
	Query          shared.SlotQuery    `json:"query"`
	Slots          []slot.ParkingSlot  `json:"slots"`
	Partitioned    slot.Partitioned    `json:"partitioned"`
	Availabilities []slot.Availability `json:"slot_availabilities"`
	slot.Selection

	ShowSlotSelection bool   `json:"show_slot_selection"`
	ErrorMessage      string `json:"error_message,omitempty"`
	InProgress        bool   `json:"in_progress"`
}

// DraftCommands drives slot search and selection.
type DraftCommands interface {
	Search(ctx context.Context, ns string, req SearchRequest) (*Draft, error)
	Toggle(ctx context.Context, ns, slotID string) (*Draft, error)
	Get(ctx context.Context, ns string) (*Draft, error)
}

type draftCommandsImpl struct {
	api    shared.ParkingAPI
	creds  shared.Credentials
	drafts *draftStore
	clock  clock.Clock
	cfg    config.BookingConfig
	logger *slog.Logger
}

func NewDraftCommands(
	api shared.ParkingAPI,
	creds shared.Credentials,
	store shared.SessionStore,
	clk clock.Clock,
	cfg config.BookingConfig,
	logger *slog.Logger,
) DraftCommands {
	return &draftCommandsImpl{
		api:    api,
		creds:  creds,
		drafts: &draftStore{store: store, logger: logger},
		clock:  clk,
		cfg:    cfg,
		logger: logger,
	}
}

// Search validates the requested window, fetches the slots and stores the
// draft. A failed fetch is recorded on the draft and never retried.
func (c *draftCommandsImpl) Search(ctx context.Context, ns string, req SearchRequest) (*Draft, error) {
	draft, err := c.compose(req)
	if err != nil {
		failed := &Draft{Mode: req.Mode, LocationID: req.LocationID, VehicleID: req.VehicleID, ErrorMessage: shared.MessageOf(err, "")}
		c.drafts.keep(ctx, ns, failed)
		return failed, err
	}

	token, err := c.creds.Token(ctx, ns)
	if err != nil {
		return nil, err
	}

	previous, _ := c.drafts.load(ctx, ns)
	res, err := c.api.AvailableSlots(ctx, token, draft.Query)
	if err != nil {
		c.logger.Warn("slot search failed", "namespace", ns, "location_id", draft.Query.LocationID, "error", err)
		failure := shared.Reject(ctx, c.creds, ns, err, MsgSlotsLoadFailed)
		draft.ErrorMessage = shared.MessageOf(failure, MsgSlotsLoadFailed)
		c.drafts.keep(ctx, ns, draft)
		return draft, failure
	}

	draft.applyResult(res)
	if previous != nil && previous.Query == draft.Query && slot.Selectable(draft.Slots, previous.SlotID) {
		draft.Selection = previous.Selection
	}
	if err := c.drafts.save(ctx, ns, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Toggle applies single-selection semantics. Unknown or unavailable slots
// leave the draft untouched.
func (c *draftCommandsImpl) Toggle(ctx context.Context, ns, slotID string) (*Draft, error) {
	draft, err := c.drafts.load(ctx, ns)
	if err != nil {
		return nil, err
	}
	s, ok := slot.Find(draft.Slots, slotID)
	if !ok {
		return draft, nil
	}
	if draft.Selection.Toggle(s) {
		draft.ErrorMessage = ""
		if err := c.drafts.save(ctx, ns, draft); err != nil {
			return nil, err
		}
	}
	return draft, nil
}

func (c *draftCommandsImpl) Get(ctx context.Context, ns string) (*Draft, error) {
	return c.drafts.load(ctx, ns)
}

func (c *draftCommandsImpl) compose(req SearchRequest) (*Draft, error) {
	if strings.TrimSpace(req.LocationID) == "" {
		return nil, shared.Fail(errs.ErrBookingValidation, MsgSelectLocation, nil)
	}
	draft := &Draft{
		Mode:        req.Mode,
		LocationID:  strings.TrimSpace(req.LocationID),
		VehicleID:   strings.TrimSpace(req.VehicleID),
		VehicleType: strings.TrimSpace(req.VehicleType),
	}

	loc := c.cfg.Location()
	switch req.Mode {
	case ModeAdvance:
		window, err := booking.ValidateAdvance(req.Date, req.StartTime, req.EndTime, loc, minWindow(c.cfg))
		if err != nil {
			return nil, validationFailure(err, minWindow(c.cfg))
		}
		draft.Date = window.Start.Format(apiDateLayout)
		draft.StartTime = window.Start.Format(apiClockLayout)
		draft.EndTime = window.End.Format(apiClockLayout)
	case ModeCheckIn:
		if err := booking.ValidateDuration(req.DurationHours); err != nil {
			return nil, validationFailure(err, minWindow(c.cfg))
		}
		now := c.clock.Now().In(loc)
		end := now.Add(time.Duration(req.DurationHours * float64(time.Hour)))
		draft.DurationHours = req.DurationHours
		draft.Date = now.Format(apiDateLayout)
		draft.StartTime = now.Format(apiClockLayout)
		draft.EndTime = end.Format(apiClockLayout)
		if !end.Before(clock.NextMidnight(now)) {
			draft.EndTime = lastClockOfDay
		}
	default:
		return nil, shared.Fail(errs.ErrBookingValidation, MsgSelectMode, nil)
	}

	draft.Query = shared.SlotQuery{
		LocationID:  draft.LocationID,
		Date:        draft.Date,
		StartTime:   draft.StartTime,
		EndTime:     draft.EndTime,
		VehicleType: draft.VehicleType,
	}
	return draft, nil
}

func minWindow(cfg config.BookingConfig) time.Duration {
	if cfg.MinAdvanceWindow <= 0 {
		return 30 * time.Minute
	}
	return cfg.MinAdvanceWindow
}

func validationFailure(err error, window time.Duration) error {
	var msg string
	switch {
	case errors.Is(err, booking.ErrMissingTimeRange):
		msg = MsgMissingTimeRange
	case errors.Is(err, booking.ErrInvalidClock):
		msg = MsgInvalidTime
	case errors.Is(err, booking.ErrInvalidDate):
		msg = MsgInvalidDate
	case errors.Is(err, booking.ErrEndNotAfterStart):
		msg = MsgEndBeforeStart
	case errors.Is(err, booking.ErrWindowTooShort):
		msg = fmt.Sprintf("Booking must be at least %d minutes long.", int(window.Minutes()))
	case errors.Is(err, booking.ErrDurationTooShort):
		msg = MsgDurationTooShort
	default:
		msg = shared.MsgValidation
	}
	return shared.Fail(errs.ErrBookingValidation, msg, err)
}

func (d *Draft) applyResult(res *slot.SearchResult) {
	d.Slots = []slot.ParkingSlot{}
	d.Availabilities = []slot.Availability{}
	if res != nil {
		if res.Slots != nil {
			d.Slots = res.Slots
		}
		if res.SlotAvailabilities != nil {
			d.Availabilities = res.SlotAvailabilities
		}
	}
	d.Partitioned = slot.Partition(d.Slots)
	d.ShowSlotSelection = true
	d.ErrorMessage = ""
}

type draftStore struct {
	store  shared.SessionStore
	logger *slog.Logger
}

func (s *draftStore) load(ctx context.Context, ns string) (*Draft, error) {
	var d Draft
	ok, err := shared.GetJSON(ctx, s.store, ns, shared.KeyBookingDraft, &d)
	if err != nil {
		return nil, errs.Wrap(err, "loading booking draft")
	}
	if !ok {
		return nil, shared.Fail(errs.ErrNoDraft, "Please search for available slots first.", nil)
	}
	return &d, nil
}

func (s *draftStore) save(ctx context.Context, ns string, d *Draft) error {
	return errs.Wrap(shared.SetJSON(ctx, s.store, ns, shared.KeyBookingDraft, d), "storing booking draft")
}

// keep stores d and only logs a failure.
func (s *draftStore) keep(ctx context.Context, ns string, d *Draft) {
	if err := s.save(ctx, ns, d); err != nil {
		s.logger.Warn("draft not stored", "namespace", ns, "error", err)
	}
}

func (s *draftStore) remove(ctx context.Context, ns string) error {
	return errs.Wrap(s.store.Remove(ctx, ns, shared.KeyBookingDraft), "removing booking draft")
}
