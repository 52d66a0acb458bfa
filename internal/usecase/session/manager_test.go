//go:build unit

package session_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"parking-booking-gateway/internal/infra/parkingapi"
	"parking-booking-gateway/internal/infra/storage"
	"parking-booking-gateway/internal/pkg/clock"
	"parking-booking-gateway/internal/pkg/errs"
	"parking-booking-gateway/internal/pkg/sealer"
	"parking-booking-gateway/internal/usecase/readmodel"
	"parking-booking-gateway/internal/usecase/session"
	"parking-booking-gateway/internal/usecase/shared"
	sharedmock "parking-booking-gateway/tests/mock/shared"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const ns = "browser-1"

type ManagerTestSuite struct {
	suite.Suite
	ctx     context.Context
	ctrl    *gomock.Controller
	api     *sharedmock.MockParkingAPI
	store   *storage.MemoryStore
	clock   *clock.MockClock
	manager *session.Manager
}

func (s *ManagerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.api = sharedmock.NewMockParkingAPI(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.store = storage.NewMemoryStore(logger)
	s.clock = clock.NewMockClock(time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC))
	s.manager = session.NewManager(s.api, s.store, sealer.New("test-session-secret"), s.clock, logger)
}

func (s *ManagerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}

func (s *ManagerTestSuite) login(tok string, user readmodel.AuthorizedUserRM) *session.LoginResult {
	s.api.EXPECT().Login(gomock.Any(), "9876543210", "password123").
		Return(&shared.LoginResult{Token: tok, User: user, Message: "Login successful"}, nil)
	res, err := s.manager.Login(s.ctx, ns, "9876543210", "password123")
	s.Require().NoError(err)
	return res
}

func (s *ManagerTestSuite) signed(exp time.Time) string {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "42",
		"exp": exp.Unix(),
	}).SignedString([]byte("upstream-key"))
	s.Require().NoError(err)
	return tok
}

func (s *ManagerTestSuite) TestLogin() {
	s.Run("success: seals the token and stores the minimal user", func() {
		res := s.login("plain-token", readmodel.AuthorizedUserRM{ID: "42", Name: "Asha", Role: "user"})

		s.Equal(session.DefaultRedirect, res.Redirect)
		s.Equal("Login successful", res.Message)

		raw, ok, err := s.store.Get(s.ctx, ns, shared.KeyToken)
		s.Require().NoError(err)
		s.True(ok)
		s.NotContains(raw, "plain-token")

		tok, err := s.manager.Token(s.ctx, ns)
		s.Require().NoError(err)
		s.Equal("plain-token", tok)

		u, ok := s.manager.User(s.ctx, ns)
		s.True(ok)
		s.Equal(readmodel.MinimalUserRM{ID: "42", Role: "user"}, u)
	})

	s.Run("success: owner lands on the owner dashboard", func() {
		res := s.login("owner-token", readmodel.AuthorizedUserRM{ID: "7", Role: readmodel.RoleOwner})
		s.Equal("/owner/7/dashboard", res.Redirect)
	})

	s.Run("success: remembered redirect wins once", func() {
		s.manager.RememberRedirect(s.ctx, ns, "/bookings/15")

		res := s.login("t", readmodel.AuthorizedUserRM{ID: "7", Role: readmodel.RoleOwner})
		s.Equal("/bookings/15", res.Redirect)

		res = s.login("t", readmodel.AuthorizedUserRM{ID: "7", Role: readmodel.RoleOwner})
		s.Equal("/owner/7/dashboard", res.Redirect)
	})

	s.Run("error: maps upstream failures", func() {
		testCases := []struct {
			name    string
			err     error
			kind    error
			message string
		}{
			{
				name:    "bad credentials",
				err:     &parkingapi.APIError{Status: http.StatusUnauthorized, Message: "Unauthorized"},
				kind:    errs.ErrUnauthenticated,
				message: session.MsgInvalidCredentials,
			},
			{
				name:    "validation",
				err:     &parkingapi.APIError{Status: http.StatusUnprocessableEntity, FieldErrors: map[string][]string{"contact_number": {"The contact number field is required."}}},
				kind:    errs.ErrUpstreamRejected,
				message: "The contact number field is required.",
			},
			{
				name:    "offline",
				err:     &parkingapi.APIError{Status: 0},
				kind:    errs.ErrUpstreamUnavailable,
				message: shared.MsgConnection,
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.api.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)

				_, err := s.manager.Login(s.ctx, "other", "1", "2")
				s.ErrorIs(err, tc.kind)
				s.Equal(tc.message, shared.MessageOf(err, ""))
			})
		}
	})
}

func (s *ManagerTestSuite) TestToken() {
	s.Run("error: no token stored", func() {
		_, err := s.manager.Token(s.ctx, "nobody")
		s.ErrorIs(err, errs.ErrUnauthenticated)
		s.NotErrorIs(err, errs.ErrTokenExpired)
	})

	s.Run("error: expired JWT ends the session", func() {
		s.login(s.signed(s.clock.Now().Add(-time.Minute)), readmodel.AuthorizedUserRM{ID: "42", Role: "user"})

		_, err := s.manager.Token(s.ctx, ns)
		s.ErrorIs(err, errs.ErrTokenExpired)
		s.ErrorIs(err, errs.ErrUnauthenticated)

		_, ok := s.manager.User(s.ctx, ns)
		s.False(ok)
	})

	s.Run("success: JWT before expiry", func() {
		live := s.signed(s.clock.Now().Add(time.Hour))
		s.login(live, readmodel.AuthorizedUserRM{ID: "42", Role: "user"})

		tok, err := s.manager.Token(s.ctx, ns)
		s.Require().NoError(err)
		s.Equal(live, tok)
	})

	s.Run("error: tampered value ends the session", func() {
		s.Require().NoError(shared.SetJSON(s.ctx, s.store, ns, shared.KeyToken, "not-sealed"))

		_, err := s.manager.Token(s.ctx, ns)
		s.ErrorIs(err, errs.ErrUnauthenticated)
	})
}

func (s *ManagerTestSuite) TestForceLogoutIsBroadcast() {
	s.login("t", readmodel.AuthorizedUserRM{ID: "42", Role: "user"})
	changes, cancel := s.store.Subscribe(ns)
	defer cancel()

	s.manager.ForceLogout(s.ctx, ns)

	select {
	case c := <-changes:
		s.Equal(shared.KeyToken, c.Key)
		s.True(c.Removed)
	case <-time.After(time.Second):
		s.Fail("no change delivered")
	}
}

func (s *ManagerTestSuite) TestLogout() {
	s.Run("success: clears the session even when the upstream fails", func() {
		s.login("t", readmodel.AuthorizedUserRM{ID: "42", Role: "user"})
		s.Require().NoError(s.store.Set(s.ctx, ns, shared.KeyAllProcessed, "[]"))
		s.api.EXPECT().Logout(gomock.Any(), "t").Return(errors.New("boom"))

		s.Require().NoError(s.manager.Logout(s.ctx, ns))

		_, ok, _ := s.store.Get(s.ctx, ns, shared.KeyAllProcessed)
		s.False(ok)
		_, err := s.manager.Token(s.ctx, ns)
		s.ErrorIs(err, errs.ErrUnauthenticated)
	})

	s.Run("success: nothing to tell the upstream without a token", func() {
		s.Require().NoError(s.manager.Logout(s.ctx, "anonymous"))
	})
}

func (s *ManagerTestSuite) TestCurrentUser() {
	s.Run("success", func() {
		s.login("t", readmodel.AuthorizedUserRM{ID: "42", Role: "user"})
		s.api.EXPECT().CurrentUser(gomock.Any(), "t").
			Return(&readmodel.AuthorizedUserRM{ID: "42", Name: "Asha", Role: "user"}, nil)

		u, err := s.manager.CurrentUser(s.ctx, ns)
		s.Require().NoError(err)
		s.Equal("Asha", u.Name)
	})

	s.Run("error: 401 forces logout", func() {
		s.login("t", readmodel.AuthorizedUserRM{ID: "42", Role: "user"})
		s.api.EXPECT().CurrentUser(gomock.Any(), "t").
			Return(nil, &parkingapi.APIError{Status: http.StatusUnauthorized})

		_, err := s.manager.CurrentUser(s.ctx, ns)
		s.ErrorIs(err, errs.ErrUnauthenticated)
		_, ok := s.manager.User(s.ctx, ns)
		s.False(ok)
	})
}
