package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"rental-backend/internal/booking"
	intconfig "rental-backend/internal/config"
	"rental-backend/internal/domain"
	"rental-backend/internal/domain/models"
	"rental-backend/internal/repositories"
	"rental-backend/internal/utils"
)

// BookingService orchestrates the booking lifecycle on top of the pure
// booking package: availability checks, quotes, the submit flow and the
// status transitions staff and requesters are allowed to make.
type BookingService struct {
	BookingRepo   repositories.BookingRepository
	VehicleRepo   repositories.VehicleRepository
	DriverDayRate int64
	RequestID     string
	DB            *sql.DB

	// Now is swappable for tests; defaults to wall-clock time.
	Now func() time.Time
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s BookingService) vehicles() repositories.VehicleRepository {
	if s.VehicleRepo.DB != nil {
		return s.VehicleRepo
	}
	return repositories.VehicleRepository{DB: s.db()}
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s BookingService) driverRate() int64 {
	if s.DriverDayRate > 0 {
		return s.DriverDayRate
	}
	return booking.DefaultDriverDayRate
}

// CheckAvailability answers "can this vehicle be booked for [pickup, ret]".
// A fetch failure yields an indeterminate decision, never an available one.
func (s BookingService) CheckAvailability(ctx context.Context, vehicleID string, pickup, ret time.Time) (booking.Decision, error) {
	v, err := s.vehicles().GetVehicleByID(ctx, vehicleID)
	if err != nil {
		if domain.IsNotFound(err) {
			return booking.Decision{}, err
		}
		return booking.Indeterminate(vehicleID), domain.IndeterminateError{VehicleID: vehicleID, Err: err}
	}
	if !v.Available {
		// staff pulled the unit from the fleet; no conflict list applies
		return booking.Decision{VehicleID: vehicleID, Verdict: booking.VerdictUnavailable}, nil
	}

	existing, err := s.bookings().ListBookingsForVehicle(ctx, vehicleID)
	if err != nil {
		return booking.Indeterminate(vehicleID), domain.IndeterminateError{VehicleID: vehicleID, Err: err}
	}
	return booking.CheckAvailability(vehicleID, pickup, ret, existing)
}

// DisabledDays lists the calendar days the booking form should grey out.
func (s BookingService) DisabledDays(ctx context.Context, vehicleID string) ([]booking.DayKey, error) {
	if _, err := s.vehicles().GetVehicleByID(ctx, vehicleID); err != nil {
		return nil, err
	}
	existing, err := s.bookings().ListBookingsForVehicle(ctx, vehicleID)
	if err != nil {
		return nil, domain.IndeterminateError{VehicleID: vehicleID, Err: err}
	}
	return booking.DisabledDays(existing), nil
}

// QuoteDraft prices a candidate window using the vehicle's stored rate. The
// rate is never taken from the client.
func (s BookingService) QuoteDraft(ctx context.Context, vehicleID string, pickup, ret time.Time, driverRequired bool) (booking.Quote, error) {
	v, err := s.vehicles().GetVehicleByID(ctx, vehicleID)
	if err != nil {
		return booking.Quote{}, err
	}
	return booking.QuoteFor(pickup, ret, v.PricePerDay, driverRequired, s.driverRate())
}

// Submit drives a draft through the full flow. The requester is always the
// authenticated caller regardless of what the payload claims.
func (s BookingService) Submit(ctx context.Context, caller domain.RequestContext, d booking.Draft) (booking.SubmitResult, error) {
	d.RequesterID = caller.UserID

	var pricePerDay int64
	if strings.TrimSpace(d.VehicleID) != "" {
		v, err := s.vehicles().GetVehicleByID(ctx, d.VehicleID)
		if err != nil {
			if domain.IsNotFound(err) {
				return booking.SubmitResult{State: booking.StateFailed}, err
			}
			return booking.SubmitResult{
				State:    booking.StateFailed,
				Decision: booking.Indeterminate(d.VehicleID),
			}, domain.IndeterminateError{VehicleID: d.VehicleID, Err: err}
		}
		if !v.Available {
			return booking.SubmitResult{
				State:    booking.StateFailed,
				Decision: booking.Decision{VehicleID: d.VehicleID, Verdict: booking.VerdictUnavailable},
			}, domain.ConflictError{Resource: "kendaraan", Msg: "kendaraan sedang tidak disewakan"}
		}
		pricePerDay = v.PricePerDay
	}

	flow := booking.SubmitFlow{
		Lister:        s.bookings(),
		Creator:       s.bookings(),
		DriverDayRate: s.driverRate(),
		Now:           s.Now,
		OnTransition: func(from, to booking.SubmitState) {
			utils.LogEvent(s.RequestID, "booking", "submit_state", string(from)+" -> "+string(to))
		},
	}
	return flow.Submit(ctx, d, pricePerDay)
}

// ListBookings returns bookings for staff screens.
func (s BookingService) ListBookings(ctx context.Context, f repositories.BookingFilter) ([]models.Booking, error) {
	return s.bookings().ListBookings(ctx, f)
}

// ListMyBookings returns only the caller's own bookings.
func (s BookingService) ListMyBookings(ctx context.Context, caller domain.RequestContext) ([]models.Booking, error) {
	return s.bookings().ListBookings(ctx, repositories.BookingFilter{RequesterID: caller.UserID})
}

// GetBooking fetches one booking; requesters only see their own.
func (s BookingService) GetBooking(ctx context.Context, caller domain.RequestContext, id string) (models.Booking, error) {
	b, err := s.bookings().GetBookingByID(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.RequesterID != caller.UserID && !caller.IsStaff() {
		return models.Booking{}, domain.ForbiddenError{Msg: "booking milik pengguna lain"}
	}
	return b, nil
}

// Confirm moves a pending booking to confirmed. Staff only.
func (s BookingService) Confirm(ctx context.Context, caller domain.RequestContext, id string) (models.Booking, error) {
	if !caller.IsStaff() {
		return models.Booking{}, domain.ForbiddenError{Msg: "hanya staf yang dapat mengkonfirmasi booking"}
	}
	b, err := s.bookings().GetBookingByID(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	return s.transition(ctx, b, models.BookingConfirmed)
}

// Cancel ends a pending or confirmed booking; the cancelled days are free for
// others immediately. Requesters cancel their own, staff cancel any.
func (s BookingService) Cancel(ctx context.Context, caller domain.RequestContext, id string) (models.Booking, error) {
	b, err := s.bookings().GetBookingByID(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.RequesterID != caller.UserID && !caller.IsStaff() {
		return models.Booking{}, domain.ForbiddenError{Msg: "booking milik pengguna lain"}
	}
	return s.transition(ctx, b, models.BookingCancelled)
}

func (s BookingService) transition(ctx context.Context, b models.Booking, to models.BookingStatus) (models.Booking, error) {
	now := s.now()
	if err := booking.ApplyTransition(&b, to, now); err != nil {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: err.Error()}
	}
	if err := s.bookings().UpdateStatus(ctx, b.ID, b.Status, now); err != nil {
		return models.Booking{}, err
	}
	utils.LogEvent(s.RequestID, "booking", "status", b.ID+" -> "+string(to))
	return b, nil
}

// DeleteHistory lets a requester prune a finished booking from their history.
// Active bookings stay; deleting them would resurrect their calendar days.
func (s BookingService) DeleteHistory(ctx context.Context, caller domain.RequestContext, id string) error {
	b, err := s.bookings().GetBookingByID(ctx, id)
	if err != nil {
		return err
	}
	if b.RequesterID != caller.UserID && !caller.IsStaff() {
		return domain.ForbiddenError{Msg: "booking milik pengguna lain"}
	}
	if !b.Status.Terminal() {
		return domain.ConflictError{Resource: "booking", Msg: "booking masih aktif, tidak dapat dihapus"}
	}
	if err := s.bookings().DeleteBooking(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "booking", "delete_history", id)
	return nil
}
