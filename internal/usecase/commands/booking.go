package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"parking-booking-gateway/internal/domain/booking"
	"parking-booking-gateway/internal/domain/slot"
	"parking-booking-gateway/internal/pkg/clock"
	"parking-booking-gateway/internal/pkg/config"
	"parking-booking-gateway/internal/pkg/errs"
	"parking-booking-gateway/internal/usecase/bookingcache"
	"parking-booking-gateway/internal/usecase/projection"
	"parking-booking-gateway/internal/usecase/shared"
)

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/commands/booking_mock.go -package=commandsmock

const (
	MsgBookingCreated     = "Booking created successfully!"
	MsgBookingCancelled   = "Booking cancelled successfully."
	MsgSelectVehicle      = "Please select a vehicle."
	MsgSelectSlot         = "Please select a parking slot."
	MsgSlotUnavailable    = "The selected slot is no longer available. Please choose another slot."
	MsgSubmitting         = "Your booking is already being processed."
	MsgBookingForbidden   = "You are not authorized to make this booking."
	MsgVehicleParked      = "This vehicle is already parked."
	MsgBookingFailed      = "Failed to process your booking. Please try again."
	MsgAvailabilityFailed = "Failed to verify slot availability."
	MsgCancelFailed       = "Failed to cancel booking."
	MsgBookingNotFound    = "Booking not found."
)

// Notifier pushes accepted writes to the open watches of a session.
type Notifier interface {
	MarkCancelled(ns, bookingID string)
	RefreshNamespace(ns string)
}

type SubmitRequest struct {
	// VehicleID overrides the vehicle stored on the draft when set.
	VehicleID string
}

type SubmitResult struct {
	Booking         booking.DisplayBooking `json:"booking"`
	Message         string                 `json:"message"`
	Redirect        string                 `json:"redirect"`
	RedirectAfterMs int64                  `json:"redirect_after_ms"`
}

type CancelResult struct {
	ID      string               `json:"id"`
	Status  booking.ClientStatus `json:"status"`
	Message string               `json:"message"`
}

// OvernightError carries the two same-day bookings a duration booking that
// crosses midnight has to be split into.
type OvernightError struct {
	Intervals []booking.Interval
}

func (e *OvernightError) Error() string {
	return "booking crosses midnight"
}

type BookingCommands interface {
	Submit(ctx context.Context, ns string, req SubmitRequest) (*SubmitResult, error)
	Cancel(ctx context.Context, ns, id string) (*CancelResult, error)
}

type bookingCommandsImpl struct {
	api       shared.ParkingAPI
	creds     shared.Credentials
	drafts    *draftStore
	cache     *bookingcache.Cache
	projector *projection.Projector
	notifier  Notifier
	clock     clock.Clock
	cfg       config.BookingConfig
	logger    *slog.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewBookingCommands(
	api shared.ParkingAPI,
	creds shared.Credentials,
	store shared.SessionStore,
	cache *bookingcache.Cache,
	projector *projection.Projector,
	notifier Notifier,
	clk clock.Clock,
	cfg config.BookingConfig,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		api:       api,
		creds:     creds,
		drafts:    &draftStore{store: store, logger: logger},
		cache:     cache,
		projector: projector,
		notifier:  notifier,
		clock:     clk,
		cfg:       cfg,
		logger:    logger,
		inflight:  make(map[string]struct{}),
	}
}

// Submit validates the draft, re-checks the selected slot with the exact
// query that listed it and only then creates the booking.
func (c *bookingCommandsImpl) Submit(ctx context.Context, ns string, req SubmitRequest) (*SubmitResult, error) {
	if !c.acquire(ns) {
		return nil, shared.Fail(errs.ErrSubmissionInProcess, MsgSubmitting, nil)
	}
	defer c.release(ns)

	draft, err := c.drafts.load(ctx, ns)
	if err != nil {
		return nil, err
	}
	if req.VehicleID != "" {
		draft.VehicleID = req.VehicleID
	}

	if err := c.validate(draft); err != nil {
		draft.ErrorMessage = shared.MessageOf(err, "")
		c.drafts.keep(ctx, ns, draft)
		return nil, err
	}

	token, err := c.creds.Token(ctx, ns)
	if err != nil {
		return nil, err
	}

	draft.InProgress = true
	c.drafts.keep(ctx, ns, draft)

	res, err := c.api.AvailableSlots(ctx, token, draft.Query)
	if err != nil {
		return nil, c.fail(ctx, ns, draft, shared.Reject(ctx, c.creds, ns, err, MsgAvailabilityFailed))
	}
	if res == nil || !slot.Selectable(res.Slots, draft.SlotID) {
		c.logger.Info("selected slot taken before submit", "namespace", ns, "slot_id", draft.SlotID)
		draft.applyResult(res)
		draft.Selection.Reset()
		return nil, c.fail(ctx, ns, draft, shared.Fail(errs.ErrSlotUnavailable, MsgSlotUnavailable, nil))
	}

	created, err := c.create(ctx, token, draft)
	if err != nil {
		return nil, c.fail(ctx, ns, draft, c.createFailure(ctx, ns, err))
	}

	display := c.projector.ProjectOne(ctx, ns, token, *created)
	c.cache.Remember(ctx, ns, display)
	if err := c.drafts.remove(ctx, ns); err != nil {
		c.logger.Warn("draft not cleared", "namespace", ns, "error", err)
	}
	c.notifier.RefreshNamespace(ns)

	c.logger.Info("booking created", "namespace", ns, "booking_id", display.ID, "mode", string(draft.Mode))
	return &SubmitResult{
		Booking:         display,
		Message:         MsgBookingCreated,
		Redirect:        c.successRedirect(ctx, ns, display.ID),
		RedirectAfterMs: c.cfg.RedirectDelay.Milliseconds(),
	}, nil
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, ns, id string) (*CancelResult, error) {
	token, err := c.creds.Token(ctx, ns)
	if err != nil {
		return nil, err
	}
	if err := c.api.CancelBooking(ctx, token, id); err != nil {
		if shared.UpstreamStatus(err) == http.StatusNotFound {
			return nil, shared.Fail(errs.ErrBookingNotFound, MsgBookingNotFound, err)
		}
		return nil, shared.Reject(ctx, c.creds, ns, err, MsgCancelFailed)
	}

	c.cache.UpdateStatus(ctx, ns, id, booking.StatusCancelled)
	c.notifier.MarkCancelled(ns, id)
	c.logger.Info("booking cancelled", "namespace", ns, "booking_id", id)
	return &CancelResult{ID: id, Status: booking.StatusCancelled, Message: MsgBookingCancelled}, nil
}

func (c *bookingCommandsImpl) validate(d *Draft) error {
	if d.VehicleID == "" {
		return shared.Fail(errs.ErrBookingValidation, MsgSelectVehicle, nil)
	}
	if d.Empty() {
		return shared.Fail(errs.ErrBookingValidation, MsgSelectSlot, nil)
	}

	loc := c.cfg.Location()
	switch d.Mode {
	case ModeAdvance:
		if _, err := booking.ValidateAdvance(d.Date, d.StartTime, d.EndTime, loc, minWindow(c.cfg)); err != nil {
			return validationFailure(err, minWindow(c.cfg))
		}
	case ModeCheckIn:
		if err := booking.ValidateDuration(d.DurationHours); err != nil {
			return validationFailure(err, minWindow(c.cfg))
		}
		if parts, crosses := booking.SplitOvernight(c.clock.Now().In(loc), d.DurationHours); crosses {
			return shared.Fail(errs.ErrOvernightBooking, overnightMessage(parts), &OvernightError{Intervals: parts})
		}
	default:
		return shared.Fail(errs.ErrBookingValidation, MsgSelectMode, nil)
	}
	return nil
}

func (c *bookingCommandsImpl) create(ctx context.Context, token string, d *Draft) (*booking.Booking, error) {
	if d.Mode == ModeCheckIn {
		return c.api.CreateCheckIn(ctx, token, shared.CheckInRequest{
			ParkingLocationID: booking.FlexString(d.LocationID),
			VehicleID:         booking.FlexString(d.VehicleID),
			ParkingSlotID:     booking.FlexString(d.SlotID),
			DurationHours:     d.DurationHours,
		})
	}
	return c.api.CreateAdvance(ctx, token, shared.AdvanceRequest{
		ParkingLocationID: booking.FlexString(d.LocationID),
		VehicleID:         booking.FlexString(d.VehicleID),
		ParkingSlotID:     booking.FlexString(d.SlotID),
		Date:              d.Date,
		StartTime:         d.StartTime,
		EndTime:           d.EndTime,
	})
}

func (c *bookingCommandsImpl) createFailure(ctx context.Context, ns string, err error) error {
	up, ok := shared.AsUpstream(err)
	if !ok {
		return shared.Fail(errs.ErrUpstreamRejected, MsgBookingFailed, err)
	}
	switch status := up.HTTPStatus(); {
	case status == 0:
		return shared.Fail(errs.ErrUpstreamUnavailable, shared.MsgConnection, err)
	case status == http.StatusUnauthorized:
		c.creds.ForceLogout(ctx, ns)
		return shared.Fail(errs.ErrUnauthenticated, shared.MsgSessionExpired, err)
	case status == http.StatusForbidden:
		return shared.Fail(errs.ErrUpstreamRejected, MsgBookingForbidden, err)
	case status == http.StatusUnprocessableEntity:
		return shared.Fail(errs.ErrUpstreamRejected, shared.ValidationMessage(up), err)
	case status == http.StatusConflict:
		return shared.Fail(errs.ErrUpstreamRejected, MsgVehicleParked, err)
	case status >= 500:
		return shared.Fail(errs.ErrUpstreamUnavailable, shared.MsgServerError, err)
	default:
		return shared.Fail(errs.ErrUpstreamRejected, MsgBookingFailed, err)
	}
}

// fail keeps the form populated with the message so the user can correct
// and resubmit.
func (c *bookingCommandsImpl) fail(ctx context.Context, ns string, d *Draft, err error) error {
	c.logger.Warn("booking submission failed", "namespace", ns, "error", err)
	d.InProgress = false
	d.ErrorMessage = shared.MessageOf(err, MsgBookingFailed)
	c.drafts.keep(ctx, ns, d)
	return err
}

func (c *bookingCommandsImpl) successRedirect(ctx context.Context, ns, bookingID string) string {
	u, ok := c.creds.User(ctx, ns)
	if !ok || u.ID == "" {
		return fmt.Sprintf("/dashboard?booking_success=true&booking_id=%s", bookingID)
	}
	return fmt.Sprintf("/user/%s/dashboard?booking_success=true&booking_id=%s", u.ID, bookingID)
}

func (c *bookingCommandsImpl) acquire(ns string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inflight[ns]; busy {
		return false
	}
	c.inflight[ns] = struct{}{}
	return true
}

func (c *bookingCommandsImpl) release(ns string) {
	c.mu.Lock()
	delete(c.inflight, ns)
	c.mu.Unlock()
}

func overnightMessage(parts []booking.Interval) string {
	const layout = "15:04"
	return fmt.Sprintf(
		"Bookings cannot span midnight. Please create two bookings: %s to %s on %s, and %s to %s on %s.",
		parts[0].Start.Format(layout), parts[0].End.Format(layout), parts[0].Start.Format(apiDateLayout),
		parts[1].Start.Format(layout), parts[1].End.Format(layout), parts[1].Start.Format(apiDateLayout),
	)
}
