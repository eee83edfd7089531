package services

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"rental-backend/internal/booking"
	intconfig "rental-backend/internal/config"
	"rental-backend/internal/domain"
	"rental-backend/internal/domain/models"
	"rental-backend/internal/repositories"
	"rental-backend/internal/utils"

	"github.com/google/uuid"
)

// RatingService stores post-rental feedback. Submitting a rating is also the
// act that closes a confirmed booking: confirmed -> completed.
type RatingService struct {
	RatingRepo  repositories.RatingRepository
	BookingRepo repositories.BookingRepository
	RequestID   string
	DB          *sql.DB

	Now   func() time.Time
	NewID func() string
}

func (s RatingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s RatingService) ratings() repositories.RatingRepository {
	if s.RatingRepo.DB != nil {
		return s.RatingRepo
	}
	return repositories.RatingRepository{DB: s.db()}
}

func (s RatingService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s RatingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s RatingService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

// SubmitRating validates and stores feedback for the caller's own confirmed
// booking, then marks the booking completed.
func (s RatingService) SubmitRating(ctx context.Context, caller domain.RequestContext, bookingID string, stars int, comment string) (models.Rating, error) {
	if stars < 1 || stars > 5 {
		return models.Rating{}, domain.ValidationError{Field: "stars", Msg: "harus antara 1 dan 5"}
	}

	b, err := s.bookings().GetBookingByID(ctx, bookingID)
	if err != nil {
		return models.Rating{}, err
	}
	if b.RequesterID != caller.UserID {
		return models.Rating{}, domain.ForbiddenError{Msg: "booking milik pengguna lain"}
	}
	if b.Status != models.BookingConfirmed {
		return models.Rating{}, domain.ConflictError{Resource: "rating", Msg: "hanya booking terkonfirmasi yang dapat dinilai"}
	}
	// table must exist before the duplicate check reads it
	if err := s.ratings().EnsureTable(ctx); err != nil {
		return models.Rating{}, domain.InternalError{Err: err}
	}
	if _, err := s.ratings().GetRatingByBookingID(ctx, bookingID); err == nil {
		return models.Rating{}, domain.ConflictError{Resource: "rating", Msg: "booking sudah dinilai"}
	} else if !domain.IsNotFound(err) {
		return models.Rating{}, err
	}

	now := s.now()
	rating := models.Rating{
		ID:        s.newID(),
		BookingID: bookingID,
		VehicleID: b.VehicleID,
		UserID:    caller.UserID,
		Stars:     stars,
		Comment:   utils.NormalizeSpace(comment),
		CreatedAt: now,
	}
	if err := s.ratings().CreateRating(ctx, rating); err != nil {
		return models.Rating{}, domain.PersistenceError{Op: "menyimpan rating", Err: err}
	}

	if err := booking.ApplyTransition(&b, models.BookingCompleted, now); err != nil {
		return models.Rating{}, domain.ConflictError{Resource: "booking", Msg: err.Error()}
	}
	if err := s.bookings().UpdateStatus(ctx, bookingID, b.Status, now); err != nil {
		return models.Rating{}, err
	}

	utils.LogEvent(s.RequestID, "rating", "submit", "booking "+bookingID+" selesai dengan "+strconv.Itoa(stars)+" bintang")
	return rating, nil
}

// ListRatings returns feedback, optionally limited to one vehicle.
func (s RatingService) ListRatings(ctx context.Context, vehicleID string) ([]models.Rating, error) {
	return s.ratings().ListRatings(ctx, vehicleID)
}

// GetRatingForBooking returns the feedback left for a booking.
func (s RatingService) GetRatingForBooking(ctx context.Context, bookingID string) (models.Rating, error) {
	return s.ratings().GetRatingByBookingID(ctx, bookingID)
}
