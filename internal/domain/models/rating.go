package models

import "time"

// Rating is feedback for a completed rental, one per booking. Submitting a
// rating is what moves a confirmed booking to completed.
type Rating struct {
	ID        string    `json:"id"`
	BookingID string    `json:"bookingId"`
	VehicleID string    `json:"vehicleId"`
	UserID    string    `json:"userId"`
	Stars     int       `json:"stars"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
