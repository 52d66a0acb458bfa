//go:build unit

package middleware_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	stdhttptest "net/http/httptest"
	"testing"

	"parking-booking-gateway/internal/handler/middleware"
	"parking-booking-gateway/internal/pkg/config"
	"parking-booking-gateway/internal/pkg/cookie"
	"parking-booking-gateway/internal/pkg/errs"
	"parking-booking-gateway/internal/usecase/readmodel"
	"parking-booking-gateway/tests/common/httptest"
	sessionmock "parking-booking-gateway/tests/mock/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const ns = "6f1c2a9e-3b7d-4e21-8c5a-0d9f4b6e2a17"

type SessionMiddlewareTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockSessions *sessionmock.MockService
}

func (s *SessionMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSessions = sessionmock.NewMockService(s.mockCtrl)
	mw := middleware.NewSessionMiddleware(s.mockSessions, config.NewTestConfig())

	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler(slog.New(slog.DiscardHandler)), mw.EnsureSession())
	s.router.GET("/open", func(c *gin.Context) {
		got, _ := middleware.GetNamespace(c)
		c.JSON(http.StatusOK, gin.H{"namespace": got})
	})
	s.router.GET("/private", mw.RequireAuth(), func(c *gin.Context) {
		userID, _ := middleware.GetUserID(c)
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})
}

func (s *SessionMiddlewareTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(SessionMiddlewareTestSuite))
}

func (s *SessionMiddlewareTestSuite) request(path string, cookies []*http.Cookie, returnTo string) *stdhttptest.ResponseRecorder {
	req := stdhttptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	if returnTo != "" {
		req.Header.Set(middleware.ReturnToHeader, returnTo)
	}
	rec := stdhttptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *SessionMiddlewareTestSuite) TestEnsureSession() {
	s.Run("success: a first visit gets a fresh namespace", func() {
		rec := s.request("/open", nil, "")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		_, err := uuid.Parse(body["namespace"])
		s.NoError(err)

		c := httptest.ExtractCookie(rec, cookie.SessionCookieName)
		s.Require().NotNil(c)
		s.Equal(body["namespace"], c.Value)
	})

	s.Run("success: a known cookie keeps its namespace", func() {
		rec := s.request("/open", []*http.Cookie{{Name: cookie.SessionCookieName, Value: ns}}, "")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(ns, body["namespace"])
	})

	s.Run("success: a malformed cookie is replaced", func() {
		rec := s.request("/open", []*http.Cookie{{Name: cookie.SessionCookieName, Value: "../../etc"}}, "")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.NotEqual("../../etc", body["namespace"])
		_, err := uuid.Parse(body["namespace"])
		s.NoError(err)
	})
}

func (s *SessionMiddlewareTestSuite) TestRequireAuth() {
	cookies := []*http.Cookie{{Name: cookie.SessionCookieName, Value: ns}}

	s.Run("success: exposes the stored user", func() {
		s.mockSessions.EXPECT().Token(gomock.Any(), ns).Return("tok", nil)
		s.mockSessions.EXPECT().User(gomock.Any(), ns).Return(readmodel.MinimalUserRM{ID: "42", Role: "user"}, true)

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), s.request("/private", cookies, ""), http.StatusOK, &body)
		s.Equal("42", body["user_id"])
		s.Equal("user", body["role"])
	})

	s.Run("error: 401 with the login redirect and the return path remembered", func() {
		s.mockSessions.EXPECT().Token(gomock.Any(), ns).Return("", errs.ErrUnauthenticated)
		s.mockSessions.EXPECT().RememberRedirect(gomock.Any(), ns, "/bookings/new")

		rec := s.request("/private", cookies, "/bookings/new")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Authentication required.")

		var body struct {
			Redirect string `json:"redirect"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal("/login", body.Redirect)
	})

	s.Run("error: unsafe return paths are not remembered", func() {
		for _, target := range []string{"//evil.example", "https://evil.example", "/login", "/login?next=/x"} {
			s.mockSessions.EXPECT().Token(gomock.Any(), ns).Return("", errs.ErrUnauthenticated)

			rec := s.request("/private", cookies, target)
			s.Equal(http.StatusUnauthorized, rec.Code, target)
		}
	})
}
