//go:build unit

package commands_test

import (
	"context"
	"errors"
	"net/http"
	"time"

	"parking-booking-gateway/internal/domain/booking"
	"parking-booking-gateway/internal/domain/slot"
	"parking-booking-gateway/internal/infra/parkingapi"
	"parking-booking-gateway/internal/pkg/errs"
	"parking-booking-gateway/internal/usecase/commands"
	"parking-booking-gateway/internal/usecase/readmodel"
	"parking-booking-gateway/internal/usecase/shared"
	"parking-booking-gateway/tests/common/builder"

	"go.uber.org/mock/gomock"
)

func (s *CommandsTestSuite) created(id string) *booking.Booking {
	b := builder.NewBookingBuilder().WithID(id).WithStatus(booking.ServerUpcoming).
		WithWindow(time.Date(2025, 7, 16, 9, 0, 0, 0, time.UTC), time.Date(2025, 7, 16, 11, 0, 0, 0, time.UTC)).
		BuildWire()
	return &b
}

func (s *CommandsTestSuite) TestSubmit() {
	s.Run("success: re-checks, creates and remembers the booking", func() {
		s.selectSlot(advanceSearch(), "A")

		gomock.InOrder(
			s.api.EXPECT().AvailableSlots(gomock.Any(), "tok", advanceQuery()).Return(slotsResult(), nil),
			s.api.EXPECT().CreateAdvance(gomock.Any(), "tok", shared.AdvanceRequest{
				ParkingLocationID: "5",
				VehicleID:         "12",
				ParkingSlotID:     "A",
				Date:              "2025-07-16",
				StartTime:         "09:00",
				EndTime:           "11:00",
			}).Return(s.created("31"), nil),
		)
		s.creds.EXPECT().User(gomock.Any(), ns).Return(readmodel.MinimalUserRM{ID: "42", Role: "user"}, true)
		s.notifier.EXPECT().RefreshNamespace(ns)

		res, err := s.bookings.Submit(s.ctx, ns, commands.SubmitRequest{})
		s.Require().NoError(err)
		s.Equal(commands.MsgBookingCreated, res.Message)
		s.Equal("/user/42/dashboard?booking_success=true&booking_id=31", res.Redirect)
		s.Equal(int64(2000), res.RedirectAfterMs)
		s.Equal(booking.StatusUpcoming, res.Booking.Status)

		s.Equal([]string{"31"}, s.cache.Recent(s.ctx, ns))
		_, err = s.drafts.Get(s.ctx, ns)
		s.ErrorIs(err, errs.ErrNoDraft)
	})

	s.Run("success: check-in sends the duration", func() {
		s.selectSlot(commands.SearchRequest{Mode: commands.ModeCheckIn, LocationID: "5", DurationHours: 1.5}, "B")

		s.api.EXPECT().AvailableSlots(gomock.Any(), "tok", gomock.Any()).Return(slotsResult(), nil)
		s.api.EXPECT().CreateCheckIn(gomock.Any(), "tok", shared.CheckInRequest{
			ParkingLocationID: "5",
			VehicleID:         "12",
			ParkingSlotID:     "B",
			DurationHours:     1.5,
		}).Return(s.created("32"), nil)
		s.creds.EXPECT().User(gomock.Any(), ns).Return(readmodel.MinimalUserRM{}, false)
		s.notifier.EXPECT().RefreshNamespace(ns)

		res, err := s.bookings.Submit(s.ctx, ns, commands.SubmitRequest{VehicleID: "12"})
		s.Require().NoError(err)
		s.Equal("/dashboard?booking_success=true&booking_id=32", res.Redirect)
	})

	s.Run("error: slot taken since selection aborts without creating", func() {
		s.selectSlot(advanceSearch(), "A")

		taken := slotsResult()
		taken.Slots[0] = builder.NewTakenSlot("A", "4-wheeler")
		s.api.EXPECT().AvailableSlots(gomock.Any(), "tok", advanceQuery()).Return(taken, nil)

		_, err := s.bookings.Submit(s.ctx, ns, commands.SubmitRequest{})
		s.ErrorIs(err, errs.ErrSlotUnavailable)
		s.Equal(commands.MsgSlotUnavailable, shared.MessageOf(err, ""))

		draft, err := s.drafts.Get(s.ctx, ns)
		s.Require().NoError(err)
		s.True(draft.Empty())
		s.True(draft.ShowSlotSelection)
		s.False(draft.InProgress)
		s.Equal(commands.MsgSlotUnavailable, draft.ErrorMessage)
		s.False(slot.Selectable(draft.Slots, "A"))
	})

	s.Run("error: local validation", func() {
		s.api.EXPECT().AvailableSlots(gomock.Any(), "tok", gomock.Any()).Return(slotsResult(), nil)
		_, err := s.drafts.Search(s.ctx, ns, commands.SearchRequest{Mode: commands.ModeAdvance, LocationID: "5", Date: "2025-07-16", StartTime: "09:00", EndTime: "11:00"})
		s.Require().NoError(err)

		_, err = s.bookings.Submit(s.ctx, ns, commands.SubmitRequest{})
		s.ErrorIs(err, errs.ErrBookingValidation)
		s.Equal(commands.MsgSelectVehicle, shared.MessageOf(err, ""))

		_, err = s.bookings.Submit(s.ctx, ns, commands.SubmitRequest{VehicleID: "12"})
		s.ErrorIs(err, errs.ErrBookingValidation)
		s.Equal(commands.MsgSelectSlot, shared.MessageOf(err, ""))
	})

	s.Run("error: overnight duration booking is split instead of submitted", func() {
		s.clock.Set(time.Date(2025, 7, 15, 23, 0, 0, 0, time.UTC))
		defer s.clock.Set(time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC))
		s.selectSlot(commands.SearchRequest{Mode: commands.ModeCheckIn, LocationID: "5", VehicleID: "12", DurationHours: 2}, "A")

		_, err := s.bookings.Submit(s.ctx, ns, commands.SubmitRequest{})
		s.ErrorIs(err, errs.ErrOvernightBooking)

		var overnight *commands.OvernightError
		s.Require().True(errors.As(err, &overnight))
		s.Require().Len(overnight.Intervals, 2)
		midnight := time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC)
		s.Equal(time.Date(2025, 7, 15, 23, 0, 0, 0, time.UTC), overnight.Intervals[0].Start)
		s.Equal(midnight, overnight.Intervals[0].End)
		s.Equal(midnight, overnight.Intervals[1].Start)
		s.Equal(time.Date(2025, 7, 16, 1, 0, 0, 0, time.UTC), overnight.Intervals[1].End)
	})

	s.Run("error: no draft", func() {
		_, err := s.bookings.Submit(s.ctx, "fresh", commands.SubmitRequest{})
		s.ErrorIs(err, errs.ErrNoDraft)
	})

	s.Run("error: a second submit while one is in flight", func() {
		s.selectSlot(advanceSearch(), "A")

		s.api.EXPECT().AvailableSlots(gomock.Any(), "tok", advanceQuery()).
			DoAndReturn(func(context.Context, string, shared.SlotQuery) (*slot.SearchResult, error) {
				_, err := s.bookings.Submit(s.ctx, ns, commands.SubmitRequest{})
				s.ErrorIs(err, errs.ErrSubmissionInProcess)
				return nil, &parkingapi.APIError{Status: 0}
			})

		_, err := s.bookings.Submit(s.ctx, ns, commands.SubmitRequest{})
		s.ErrorIs(err, errs.ErrUpstreamUnavailable)
	})

	s.Run("error: maps create failures to user messages", func() {
		testCases := []struct {
			name    string
			err     error
			kind    error
			message string
		}{
			{
				name:    "offline",
				err:     &parkingapi.APIError{Status: 0},
				kind:    errs.ErrUpstreamUnavailable,
				message: shared.MsgConnection,
			},
			{
				name:    "forbidden",
				err:     &parkingapi.APIError{Status: http.StatusForbidden, Message: "Forbidden"},
				kind:    errs.ErrUpstreamRejected,
				message: commands.MsgBookingForbidden,
			},
			{
				name: "validation fields are concatenated",
				err: &parkingapi.APIError{Status: http.StatusUnprocessableEntity, FieldErrors: map[string][]string{
					"end_time":   {"The end time must be after start time."},
					"vehicle_id": {"The selected vehicle is invalid."},
				}},
				kind:    errs.ErrUpstreamRejected,
				message: "The end time must be after start time. The selected vehicle is invalid.",
			},
			{
				name:    "validation without fields uses the server message",
				err:     &parkingapi.APIError{Status: http.StatusUnprocessableEntity, Message: "Slot is closed."},
				kind:    errs.ErrUpstreamRejected,
				message: "Slot is closed.",
			},
			{
				name:    "vehicle already parked",
				err:     &parkingapi.APIError{Status: http.StatusConflict, Message: "Conflict"},
				kind:    errs.ErrUpstreamRejected,
				message: commands.MsgVehicleParked,
			},
			{
				name:    "server error",
				err:     &parkingapi.APIError{Status: http.StatusBadGateway},
				kind:    errs.ErrUpstreamUnavailable,
				message: shared.MsgServerError,
			},
			{
				name:    "anything else",
				err:     &parkingapi.APIError{Status: http.StatusBadRequest},
				kind:    errs.ErrUpstreamRejected,
				message: commands.MsgBookingFailed,
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.selectSlot(advanceSearch(), "A")
				s.api.EXPECT().AvailableSlots(gomock.Any(), "tok", advanceQuery()).Return(slotsResult(), nil)
				s.api.EXPECT().CreateAdvance(gomock.Any(), "tok", gomock.Any()).Return(nil, tc.err)

				_, err := s.bookings.Submit(s.ctx, ns, commands.SubmitRequest{})
				s.ErrorIs(err, tc.kind)
				s.Equal(tc.message, shared.MessageOf(err, ""))

				draft, derr := s.drafts.Get(s.ctx, ns)
				s.Require().NoError(derr)
				s.Equal("A", draft.SlotID)
				s.False(draft.InProgress)
				s.Equal(tc.message, draft.ErrorMessage)
			})
		}
	})

	s.Run("error: 401 on create ends the session", func() {
		s.selectSlot(advanceSearch(), "A")
		s.api.EXPECT().AvailableSlots(gomock.Any(), "tok", advanceQuery()).Return(slotsResult(), nil)
		s.api.EXPECT().CreateAdvance(gomock.Any(), "tok", gomock.Any()).Return(nil, &parkingapi.APIError{Status: http.StatusUnauthorized})
		s.creds.EXPECT().ForceLogout(gomock.Any(), ns)

		_, err := s.bookings.Submit(s.ctx, ns, commands.SubmitRequest{})
		s.ErrorIs(err, errs.ErrUnauthenticated)
	})
}

func (s *CommandsTestSuite) TestCancel() {
	s.Run("success: updates the cached status and open watches", func() {
		s.cache.Save(s.ctx, ns, []booking.DisplayBooking{builder.NewBookingBuilder().WithID("8").BuildDisplay()})
		s.api.EXPECT().CancelBooking(gomock.Any(), "tok", "8").Return(nil)
		s.notifier.EXPECT().MarkCancelled(ns, "8")

		res, err := s.bookings.Cancel(s.ctx, ns, "8")
		s.Require().NoError(err)
		s.Equal(booking.StatusCancelled, res.Status)

		list, ok := s.cache.Load(s.ctx, ns)
		s.Require().True(ok)
		s.Equal(booking.StatusCancelled, list[0].Status)
	})

	s.Run("error: unknown booking", func() {
		s.api.EXPECT().CancelBooking(gomock.Any(), "tok", "99").Return(&parkingapi.APIError{Status: http.StatusNotFound})

		_, err := s.bookings.Cancel(s.ctx, ns, "99")
		s.ErrorIs(err, errs.ErrBookingNotFound)
	})
}
