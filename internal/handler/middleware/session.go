package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"parking-booking-gateway/internal/handler/httperr"
	"parking-booking-gateway/internal/pkg/config"
	"parking-booking-gateway/internal/pkg/cookie"
	"parking-booking-gateway/internal/usecase/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReturnToHeader names the SPA route that was open when a request was
// refused; the login flow sends the user back there.
const ReturnToHeader = "X-Return-To"

const (
	ctxNamespaceKey = "session_namespace"
	ctxUserIDKey    = "user_id"
	ctxUserRoleKey  = "user_role"
)

var errNoSession = errors.New("session namespace missing from context")

type SessionMiddleware struct {
	sessions session.Service
	cfg      config.SessionConfig
}

func NewSessionMiddleware(sessions session.Service, cfg config.Config) *SessionMiddleware {
	return &SessionMiddleware{
		sessions: sessions,
		cfg:      cfg.Session,
	}
}

// EnsureSession resolves the browser session namespace from the session
// cookie, issuing a fresh one when it is missing or malformed.
func (m *SessionMiddleware) EnsureSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		ns := cookie.GetSessionID(c)
		if _, err := uuid.Parse(ns); err != nil {
			ns = uuid.NewString()
			slog.Debug("issuing session cookie", "namespace", ns)
		}
		// Sliding expiry.
		cookie.SetSessionCookie(c, m.cfg, ns)
		c.Set(ctxNamespaceKey, ns)
		c.Next()
	}
}

// RequireAuth lets the request through only when the session holds a
// usable token. Refused requests get 401 and the login redirect.
func (m *SessionMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ns, ok := GetNamespace(c)
		if !ok {
			// Unexpected error: should be used after EnsureSession()
			httperr.AbortWithError(c, http.StatusInternalServerError, errNoSession, "Internal server error", nil)
			return
		}

		ctx := c.Request.Context()
		if _, err := m.sessions.Token(ctx, ns); err != nil {
			if target := strings.TrimSpace(c.GetHeader(ReturnToHeader)); safeReturnPath(target) {
				m.sessions.RememberRedirect(ctx, ns, target)
			}
			httperr.AbortWithRedirect(c, http.StatusUnauthorized, err, "Authentication required.", httperr.LoginRedirect)
			return
		}

		if u, found := m.sessions.User(ctx, ns); found {
			c.Set(ctxUserIDKey, u.ID)
			c.Set(ctxUserRoleKey, u.Role)
		}
		c.Next()
	}
}

// GetNamespace returns the session namespace set by EnsureSession.
func GetNamespace(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxNamespaceKey)
	if !exists {
		return "", false
	}
	ns, ok := v.(string)
	return ns, ok && ns != ""
}

func GetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

func GetUserRole(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}

// safeReturnPath accepts same-origin paths only, never the login page itself.
func safeReturnPath(p string) bool {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return false
	}
	return p != httperr.LoginRedirect && !strings.HasPrefix(p, httperr.LoginRedirect+"?")
}
