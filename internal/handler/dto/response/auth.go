package response

import (
	"parking-booking-gateway/internal/usecase/readmodel"
	"parking-booking-gateway/internal/usecase/session"
)

type LoginResponse struct {
	User     readmodel.AuthorizedUserRM `json:"user"`
	Redirect string                     `json:"redirect"`
	Message  string                     `json:"message,omitempty"`
}

func FromLoginResult(r *session.LoginResult) LoginResponse {
	return LoginResponse{User: r.User, Redirect: r.Redirect, Message: r.Message}
}

type LogoutResponse struct {
	Redirect string `json:"redirect"`
}
