package request

type LoginRequest struct {
	ContactNumber string `json:"contact_number" binding:"required"`
	Password      string `json:"password" binding:"required"`
}
