package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// ParseBookingStatus normalizes raw status strings from the database or payloads.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// Blocks reports whether a booking in this status occupies its calendar days.
// Only cancelled bookings free their days.
func (s BookingStatus) Blocks() bool {
	return s == BookingPending || s == BookingConfirmed || s == BookingCompleted
}

// Terminal reports whether no further status transition is allowed.
func (s BookingStatus) Terminal() bool {
	return s == BookingCancelled || s == BookingCompleted
}

// Booking is a validated rental reservation. Records fetched from storage are
// normalized into this shape at the repository boundary; rows with missing
// pickup/return never reach the availability logic.
type Booking struct {
	ID               string        `json:"id"`
	VehicleID        string        `json:"vehicleId"`
	RequesterID      string        `json:"requesterId"`
	PickupAt         time.Time     `json:"pickupAt"`
	ReturnAt         time.Time     `json:"returnAt"`
	PickupLocation   string        `json:"pickupLocation"`
	ReturnLocation   string        `json:"returnLocation"`
	Status           BookingStatus `json:"status"`
	TotalCost        int64         `json:"totalCost"`
	DayCount         int           `json:"dayCount"`
	DriverRequired   bool          `json:"driverRequired"`
	PaymentProofID   string        `json:"paymentProofId"`
	PaymentProofName string        `json:"paymentProofName,omitempty"`
	EmergencyName    string        `json:"emergencyName,omitempty"`
	EmergencyPhone   string        `json:"emergencyPhone,omitempty"`
	SpecialRequests  string        `json:"specialRequests,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}
