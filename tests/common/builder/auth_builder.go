//go:build unit || e2e

package builder

import (
	"parking-booking-gateway/internal/domain/booking"
	reqdto "parking-booking-gateway/internal/handler/dto/request"
	"parking-booking-gateway/internal/usecase/readmodel"
)

type AuthBuilder struct {
	ContactNumber string
	Password      string
}

func NewAuthBuilder() *AuthBuilder {
	return &AuthBuilder{
		ContactNumber: "9876543210",
		Password:      "password123",
	}
}

func (a *AuthBuilder) BuildDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		ContactNumber: a.ContactNumber,
		Password:      a.Password,
	}
}

type UserBuilder struct {
	ID   string
	Name string
	Role string
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:   "42",
		Name: "Asha Rao",
		Role: "user",
	}
}

func (u *UserBuilder) BuildReadModel() readmodel.AuthorizedUserRM {
	return readmodel.AuthorizedUserRM{
		ID:            booking.FlexString(u.ID),
		Name:          u.Name,
		ContactNumber: "9876543210",
		Role:          u.Role,
	}
}
