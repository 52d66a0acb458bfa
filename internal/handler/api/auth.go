package api

import (
	"net/http"

	reqdto "parking-booking-gateway/internal/handler/dto/request"
	resdto "parking-booking-gateway/internal/handler/dto/response"
	"parking-booking-gateway/internal/handler/httperr"
	"parking-booking-gateway/internal/handler/middleware"
	"parking-booking-gateway/internal/pkg/config"
	"parking-booking-gateway/internal/pkg/cookie"
	"parking-booking-gateway/internal/usecase/session"
	"parking-booking-gateway/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	sessions session.Service
	cfg      config.SessionConfig
}

func NewAuthHandler(sessions session.Service, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		cfg:      cfg.Session,
	}
}

// @Summary User login
// @Description Login with contact number and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	ns, ok := namespace(c)
	if !ok {
		return
	}
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Contact number and password are required.", nil)
		return
	}

	result, err := h.sessions.Login(c.Request.Context(), ns, req.ContactNumber, req.Password)
	if err != nil {
		// A refused login stays on the login page.
		httperr.AbortWithError(c, statusOf(err), err, loginMessage(err), nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromLoginResult(result))
}

// @Summary User logout
// @Description End the browser session here and upstream
// @Tags auth
// @Produce json
// @Success 200 {object} resdto.LogoutResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	ns, ok := namespace(c)
	if !ok {
		return
	}
	if err := h.sessions.Logout(c.Request.Context(), ns); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msgInternal, nil)
		return
	}
	// Overrides the sliding refresh set by EnsureSession.
	cookie.ClearSessionCookie(c, h.cfg)
	c.JSON(http.StatusOK, resdto.LogoutResponse{Redirect: httperr.LoginRedirect})
}

// @Summary Get current user
// @Description Get the user of the current session from the upstream
// @Tags auth
// @Produce json
// @Success 200 {object} readmodel.AuthorizedUserRM
// @Failure 401 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	ns, ok := namespace(c)
	if !ok {
		return
	}
	user, err := h.sessions.CurrentUser(c.Request.Context(), ns)
	if err != nil {
		writeError(c, err, "Failed to load user.")
		return
	}
	c.JSON(http.StatusOK, user)
}

func loginMessage(err error) string {
	if statusOf(err) == http.StatusInternalServerError {
		return msgInternal
	}
	return shared.MessageOf(err, session.MsgLoginFailed)
}

// namespace aborts with 500 when the session middleware did not run.
func namespace(c *gin.Context) (string, bool) {
	ns, ok := middleware.GetNamespace(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errNoNamespace, msgInternal, nil)
	}
	return ns, ok
}
