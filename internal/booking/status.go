package booking

import (
	"fmt"
	"time"

	"rental-backend/internal/domain/models"
)

// allowedTransitions is the booking lifecycle as a directed graph. Completed
// and cancelled are terminal; a completed booking is reached only through a
// submitted rating, a cancelled one frees its calendar days immediately.
var allowedTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingPending:   {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed: {models.BookingCompleted, models.BookingCancelled},
	models.BookingCancelled: {},
	models.BookingCompleted: {},
}

// CanTransition reports whether from -> to is an allowed status change.
func CanTransition(from, to models.BookingStatus) bool {
	if from == to {
		return true
	}
	allowed, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyTransition moves a booking to the target status and bumps UpdatedAt.
func ApplyTransition(b *models.Booking, to models.BookingStatus, now time.Time) error {
	if b == nil {
		return fmt.Errorf("booking is nil")
	}
	if !CanTransition(b.Status, to) {
		return fmt.Errorf("transisi status booking tidak valid: %s -> %s", b.Status, to)
	}
	b.Status = to
	b.UpdatedAt = now
	return nil
}
