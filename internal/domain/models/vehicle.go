package models

import "time"

// Vehicle is a rentable unit in the fleet. The Available flag is a
// staff-level "not for rent" override and is independent of calendar
// conflicts.
type Vehicle struct {
	ID          string    `json:"id"`
	Make        string    `json:"make"`
	Model       string    `json:"model"`
	Category    string    `json:"category"`
	FuelType    string    `json:"fuelType"`
	Seats       int       `json:"seats"`
	PricePerDay int64     `json:"pricePerDay"`
	Available   bool      `json:"available"`
	ImageRef    string    `json:"imageRef,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
