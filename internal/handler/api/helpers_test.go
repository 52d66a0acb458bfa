//go:build unit

package api_test

import (
	"log/slog"
	"net/http"

	"parking-booking-gateway/internal/handler/middleware"
	"parking-booking-gateway/internal/pkg/config"
	"parking-booking-gateway/internal/pkg/cookie"
	"parking-booking-gateway/internal/usecase/session"

	"github.com/gin-gonic/gin"
)

const testNamespace = "0b6a3c1e-8f1d-4c59-9a43-5d2f0e7b9c10"

func sessionCookies() []*http.Cookie {
	return []*http.Cookie{{Name: cookie.SessionCookieName, Value: testNamespace}}
}

// newTestRouter resolves the session namespace like the real router does
// but leaves authentication to the handler under test.
func newTestRouter(sessions session.Service) (*gin.Engine, *gin.RouterGroup) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler(slog.New(slog.DiscardHandler)))
	mw := middleware.NewSessionMiddleware(sessions, config.NewTestConfig())
	return router, router.Group("", mw.EnsureSession())
}

