package readmodel

import (
	"parking-booking-gateway/internal/domain/booking"
)

const RoleOwner = "owner"

type AuthorizedUserRM struct {
	ID            booking.FlexString `json:"id"`
	Name          string             `json:"name,omitempty"`
	Email         string             `json:"email,omitempty"`
	ContactNumber string             `json:"contact_number,omitempty"`
	Role          string             `json:"role"`
}

// MinimalUserRM is what gets persisted under user_minimal.
type MinimalUserRM struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func (u AuthorizedUserRM) Minimal() MinimalUserRM {
	return MinimalUserRM{ID: u.ID.String(), Role: u.Role}
}
