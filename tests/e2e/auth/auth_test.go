//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"parking-booking-gateway/internal/handler/dto/request"
	resdto "parking-booking-gateway/internal/handler/dto/response"
	"parking-booking-gateway/internal/handler/middleware"
	"parking-booking-gateway/internal/pkg/cookie"
	"parking-booking-gateway/internal/usecase/readmodel"
	"parking-booking-gateway/internal/usecase/shared"
	"parking-booking-gateway/tests/common/authtest"
	"parking-booking-gateway/tests/common/dbtest"
	"parking-booking-gateway/tests/common/fakeapi"
	"parking-booking-gateway/tests/common/httptest"
	"parking-booking-gateway/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL  = "/api/auth/login"
	logoutURL = "/api/auth/logout"
	meURL     = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		contactNumber  string
		password       string
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "valid credentials",
			contactNumber:  fakeapi.ContactNumber,
			password:       fakeapi.Password,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong password",
			contactNumber:  fakeapi.ContactNumber,
			password:       "wrong",
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Invalid contact number or password.",
		},
		{
			name:           "unknown contact number",
			contactNumber:  "0000000000",
			password:       fakeapi.Password,
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Invalid contact number or password.",
		},
		{
			name:           "empty contact number",
			contactNumber:  "",
			password:       fakeapi.Password,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty password",
			contactNumber:  fakeapi.ContactNumber,
			password:       "",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
				request.LoginRequest{ContactNumber: tt.contactNumber, Password: tt.password})
			if tt.expectedStatus != http.StatusOK {
				httptest.AssertErrorResponse(t, w, tt.expectedStatus, tt.expectedMsg)
				return
			}

			var res resdto.LoginResponse
			httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
			require.Equal(t, "42", res.User.ID.String())
			require.Equal(t, "/dashboard", res.Redirect)

			sessionCookie := httptest.ExtractCookie(w, cookie.SessionCookieName)
			require.NotNil(t, sessionCookie)
			keys := dbtest.StoredKeys(t, s.DB, sessionCookie.Value)
			require.Contains(t, keys, shared.KeyToken)
			require.Contains(t, keys, shared.KeyUserMinimal)
			require.JSONEq(t, `{"id":"42","role":"user"}`, dbtest.StoredValue(t, s.DB, sessionCookie.Value, shared.KeyUserMinimal))
		})
	}
}

func (s *authSuite) TestMe() {
	s.Run("returns the upstream user", func() {
		t := s.T()
		cookies := authtest.LoginUser(t, s.Router, fakeapi.ContactNumber, fakeapi.Password)

		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodGet, meURL, nil, cookies)
		var user readmodel.AuthorizedUserRM
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &user)
		require.Equal(t, "Asha Rao", user.Name)
		require.Equal(t, "user", user.Role)
	})

	s.Run("without a session redirects to login", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil)
		body := httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Authentication required.")
		require.Equal(t, "/login", body.Redirect)
	})

	s.Run("revoked upstream token ends the session", func() {
		t := s.T()
		cookies := authtest.LoginUser(t, s.Router, fakeapi.ContactNumber, fakeapi.Password)
		s.Upstream.RevokeTokens()

		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodGet, meURL, nil, cookies)
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
		require.NotContains(t, dbtest.StoredKeys(t, s.DB, cookies[0].Value), shared.KeyToken)
	})
}

func (s *authSuite) TestLogout() {
	s.Run("wipes the stored session", func() {
		t := s.T()
		cookies := authtest.LoginUser(t, s.Router, fakeapi.ContactNumber, fakeapi.Password)

		authtest.LogoutUser(t, s.Router, cookies)
		require.Empty(t, dbtest.StoredKeys(t, s.DB, cookies[0].Value))

		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodGet, meURL, nil, cookies)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("without a session still succeeds", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, logoutURL, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})
}

func (s *authSuite) TestRedirectAfterLogin() {
	s.Run("a rejected deep link is restored after login", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/bookings", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		sessionCookie := httptest.ExtractCookie(w, cookie.SessionCookieName)
		require.NotNil(t, sessionCookie)
		cookies := []*http.Cookie{sessionCookie}

		w = httptest.PerformRequestWithCookies(t, s.Router, http.MethodGet, "/api/bookings", nil, cookies,
			httptest.WithHeader(middleware.ReturnToHeader, "/bookings/new"))
		require.Equal(t, http.StatusUnauthorized, w.Code)

		w = httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{ContactNumber: fakeapi.ContactNumber, Password: fakeapi.Password}, cookies)
		var res resdto.LoginResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		require.Equal(t, "/bookings/new", res.Redirect)
	})
}

