package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"parking-booking-gateway/internal/pkg/clock"
	"parking-booking-gateway/internal/pkg/errs"
	"parking-booking-gateway/internal/pkg/sealer"
	"parking-booking-gateway/internal/pkg/token"
	"parking-booking-gateway/internal/usecase/readmodel"
	"parking-booking-gateway/internal/usecase/shared"
)

const (
	DefaultRedirect = "/dashboard"
	LoginPath       = "/login"

	MsgInvalidCredentials = "Invalid contact number or password."
	MsgLoginFailed        = "Login failed. Please try again."
)

type LoginResult struct {
	User     readmodel.AuthorizedUserRM `json:"user"`
	Redirect string                     `json:"redirect"`
	Message  string                     `json:"message,omitempty"`
}

//go:generate mockgen -source=manager.go -destination=../../../tests/mock/session/manager_mock.go -package=sessionmock

// Service is the session surface the HTTP layer depends on.
type Service interface {
	shared.Credentials
	Login(ctx context.Context, ns, contactNumber, password string) (*LoginResult, error)
	Logout(ctx context.Context, ns string) error
	CurrentUser(ctx context.Context, ns string) (*readmodel.AuthorizedUserRM, error)
	RememberRedirect(ctx context.Context, ns, target string)
}

// Manager owns the token and user of each browser session.
type Manager struct {
	api    shared.ParkingAPI
	store  shared.SessionStore
	sealer *sealer.Sealer
	clock  clock.Clock
	logger *slog.Logger
}

func NewManager(api shared.ParkingAPI, store shared.SessionStore, s *sealer.Sealer, clk clock.Clock, logger *slog.Logger) *Manager {
	return &Manager{api: api, store: store, sealer: s, clock: clk, logger: logger}
}

func (m *Manager) Login(ctx context.Context, ns, contactNumber, password string) (*LoginResult, error) {
	res, err := m.api.Login(ctx, contactNumber, password)
	if err != nil {
		switch shared.UpstreamStatus(err) {
		case http.StatusUnauthorized:
			return nil, shared.Fail(errs.ErrUnauthenticated, MsgInvalidCredentials, err)
		case http.StatusUnprocessableEntity:
			up, _ := shared.AsUpstream(err)
			return nil, shared.Fail(errs.ErrUpstreamRejected, shared.ValidationMessage(up), err)
		case 0:
			return nil, shared.Fail(errs.ErrUpstreamUnavailable, shared.MsgConnection, err)
		default:
			return nil, shared.Fail(errs.ErrUpstreamRejected, shared.UserMessage(err, MsgLoginFailed), err)
		}
	}
	if res.Token == "" {
		return nil, shared.Fail(errs.ErrUpstreamRejected, MsgLoginFailed, errs.New("login response carried no token"))
	}

	sealed, err := m.sealer.Seal(res.Token)
	if err != nil {
		return nil, errs.Wrap(err, "sealing token")
	}
	if err := shared.SetJSON(ctx, m.store, ns, shared.KeyToken, sealed); err != nil {
		return nil, errs.Wrap(err, "storing token")
	}
	if err := shared.SetJSON(ctx, m.store, ns, shared.KeyUserMinimal, res.User.Minimal()); err != nil {
		return nil, errs.Wrap(err, "storing user")
	}

	m.logger.Info("session started", "namespace", ns, "user_id", res.User.ID.String(), "role", res.User.Role)
	return &LoginResult{
		User:     res.User,
		Redirect: m.consumeRedirect(ctx, ns, res.User.Minimal()),
		Message:  res.Message,
	}, nil
}

// Token returns the bearer token of ns. A missing, unreadable or expired
// token ends the session and reports ErrUnauthenticated.
func (m *Manager) Token(ctx context.Context, ns string) (string, error) {
	var sealed string
	ok, err := shared.GetJSON(ctx, m.store, ns, shared.KeyToken, &sealed)
	if err != nil {
		m.logger.Warn("token read failed", "namespace", ns, "error", err)
		return "", errs.ErrUnauthenticated
	}
	if !ok || sealed == "" {
		return "", errs.ErrUnauthenticated
	}

	raw, err := m.sealer.Open(sealed)
	if err != nil {
		m.logger.Warn("stored token could not be opened", "namespace", ns)
		m.ForceLogout(ctx, ns)
		return "", errs.ErrUnauthenticated
	}
	if token.Expired(raw, m.clock.Now()) {
		m.logger.Info("token expired", "namespace", ns)
		m.ForceLogout(ctx, ns)
		return "", errs.ErrTokenExpired
	}
	return raw, nil
}

func (m *Manager) User(ctx context.Context, ns string) (readmodel.MinimalUserRM, bool) {
	var u readmodel.MinimalUserRM
	ok, err := shared.GetJSON(ctx, m.store, ns, shared.KeyUserMinimal, &u)
	if err != nil {
		m.logger.Warn("user read failed", "namespace", ns, "error", err)
		return readmodel.MinimalUserRM{}, false
	}
	return u, ok
}

// ForceLogout clears the credentials after the upstream rejected them. The
// removal reaches every other watch of the same session through storage.
func (m *Manager) ForceLogout(ctx context.Context, ns string) {
	for _, key := range []string{shared.KeyToken, shared.KeyUserMinimal} {
		if err := m.store.Remove(ctx, ns, key); err != nil {
			m.logger.Warn("credential removal failed", "namespace", ns, "key", key, "error", err)
		}
	}
	m.logger.Info("session ended", "namespace", ns)
}

// Logout tells the upstream on a best-effort basis, then wipes the session.
func (m *Manager) Logout(ctx context.Context, ns string) error {
	if tok, err := m.Token(ctx, ns); err == nil {
		if err := m.api.Logout(ctx, tok); err != nil {
			m.logger.Warn("upstream logout failed", "namespace", ns, "error", err)
		}
	}
	if err := m.store.Clear(ctx, ns); err != nil {
		return errs.Wrap(err, "clearing session")
	}
	return nil
}

func (m *Manager) RememberRedirect(ctx context.Context, ns, target string) {
	if err := shared.SetJSON(ctx, m.store, ns, shared.KeyRedirectAfterLogin, target); err != nil {
		m.logger.Warn("redirect not stored", "namespace", ns, "error", err)
	}
}

func (m *Manager) CurrentUser(ctx context.Context, ns string) (*readmodel.AuthorizedUserRM, error) {
	tok, err := m.Token(ctx, ns)
	if err != nil {
		return nil, err
	}
	u, err := m.api.CurrentUser(ctx, tok)
	if err != nil {
		return nil, shared.Reject(ctx, m, ns, err, "Failed to load user.")
	}
	return u, nil
}

func (m *Manager) consumeRedirect(ctx context.Context, ns string, u readmodel.MinimalUserRM) string {
	var target string
	if ok, _ := shared.GetJSON(ctx, m.store, ns, shared.KeyRedirectAfterLogin, &target); ok && target != "" {
		if err := m.store.Remove(ctx, ns, shared.KeyRedirectAfterLogin); err != nil {
			m.logger.Warn("redirect not cleared", "namespace", ns, "error", err)
		}
		return target
	}
	if u.Role == readmodel.RoleOwner && u.ID != "" {
		return fmt.Sprintf("/owner/%s/dashboard", u.ID)
	}
	return DefaultRedirect
}

var _ Service = (*Manager)(nil)
