//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"parking-booking-gateway/internal/handler/dto/request"
	"parking-booking-gateway/internal/pkg/cookie"
	"parking-booking-gateway/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// LoginUser logs a fresh browser session in and returns its cookies.
func LoginUser(t *testing.T, router *gin.Engine, contactNumber, password string) []*http.Cookie {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{ContactNumber: contactNumber, Password: password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	sessionCookie := httptest.ExtractCookie(w, cookie.SessionCookieName)
	require.NotNil(t, sessionCookie, "Session cookie not found in response")
	require.NotEmpty(t, sessionCookie.Value, "Session cookie is empty")

	return []*http.Cookie{sessionCookie}
}

func LogoutUser(t *testing.T, router *gin.Engine, cookies []*http.Cookie) {
	t.Helper()

	w := httptest.PerformRequestWithCookies(t, router, http.MethodPost, "/api/auth/logout", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
