package parkingapi

import (
	"context"
	"net/http"

	"parking-booking-gateway/internal/usecase/readmodel"
	"parking-booking-gateway/internal/usecase/shared"
)

type loginRequest struct {
	ContactNumber string `json:"contact_number"`
	Password      string `json:"password"`
}

func (c *Client) Login(ctx context.Context, contactNumber, password string) (*shared.LoginResult, error) {
	raw, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   loginRequest{ContactNumber: contactNumber, Password: password},
	})
	if err != nil {
		return nil, err
	}

	var out shared.LoginResult
	if err := decode(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, call{method: http.MethodPost, path: "/auth/logout", token: token})
	return err
}

// CurrentUser accepts the user object bare or under "user".
func (c *Client) CurrentUser(ctx context.Context, token string) (*readmodel.AuthorizedUserRM, error) {
	raw, err := c.do(ctx, call{method: http.MethodGet, path: "/auth/user", token: token})
	if err != nil {
		return nil, err
	}

	var out readmodel.AuthorizedUserRM
	if err := decodeWrapped(raw, "user", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
