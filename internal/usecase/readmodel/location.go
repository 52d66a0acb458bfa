package readmodel

import (
	"parking-booking-gateway/internal/domain/booking"
)

type LocationRM struct {
	ID               booking.FlexString `json:"id"`
	Name             string             `json:"name"`
	Address          string             `json:"address,omitempty"`
	Latitude         booking.FlexFloat  `json:"latitude,omitempty"`
	Longitude        booking.FlexFloat  `json:"longitude,omitempty"`
	TotalSpots       int                `json:"total_spots,omitempty"`
	AvailableSpots   int                `json:"available_spots,omitempty"`
	HourlyRate       booking.FlexFloat  `json:"hourly_rate,omitempty"`
	TwoWheelerPrice  booking.FlexFloat  `json:"two_wheeler_price,omitempty"`
	FourWheelerPrice booking.FlexFloat  `json:"four_wheeler_price,omitempty"`
	Description      string             `json:"description,omitempty"`
	IsActive         bool               `json:"is_active"`
}
