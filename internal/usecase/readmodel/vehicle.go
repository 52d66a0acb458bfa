package readmodel

import (
	"parking-booking-gateway/internal/domain/booking"
)

type VehicleRM struct {
	ID          booking.FlexString `json:"id"`
	Type        string             `json:"type"`
	NumberPlate string             `json:"number_plate"`
	Brand       string             `json:"brand"`
	Model       string             `json:"model"`
}

func (v VehicleRM) Description() string {
	return booking.DescribeVehicle(v.NumberPlate, v.Brand, v.Model)
}
