package repositories

import (
	"context"
	"database/sql"
	"errors"

	intconfig "rental-backend/internal/config"
	intdb "rental-backend/internal/db"
	"rental-backend/internal/domain"
	"rental-backend/internal/domain/models"
)

type RatingRepository struct {
	DB *sql.DB
}

func (r RatingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// EnsureTable creates the ratings table on first use.
func (r RatingRepository) EnsureTable(ctx context.Context) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db tidak tersedia"}
	}
	if intdb.HasTable(db, "ratings") {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS ratings (
	id CHAR(36) PRIMARY KEY,
	booking_id CHAR(36) NOT NULL,
	vehicle_id CHAR(36) NOT NULL,
	user_id VARCHAR(64) NOT NULL,
	stars TINYINT NOT NULL,
	comment TEXT,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_booking (booking_id),
	KEY idx_vehicle (vehicle_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.ExecContext(ctx, ddl)
	return err
}

// CreateRating stores feedback; one per booking (unique key).
func (r RatingRepository) CreateRating(ctx context.Context, rating models.Rating) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db tidak tersedia"}
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO ratings (id, booking_id, vehicle_id, user_id, stars, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rating.ID, rating.BookingID, rating.VehicleID, rating.UserID,
		rating.Stars, intdb.NullIfEmpty(rating.Comment), rating.CreatedAt)
	return err
}

// GetRatingByBookingID returns the feedback left for a booking, if any.
func (r RatingRepository) GetRatingByBookingID(ctx context.Context, bookingID string) (models.Rating, error) {
	db := r.db()
	if db == nil {
		return models.Rating{}, domain.InternalError{Msg: "db tidak tersedia"}
	}

	var out models.Rating
	err := db.QueryRowContext(ctx, `
		SELECT id, booking_id, vehicle_id, user_id, stars, COALESCE(comment, ''), created_at
		FROM ratings
		WHERE booking_id = ? LIMIT 1
	`, bookingID).Scan(&out.ID, &out.BookingID, &out.VehicleID, &out.UserID,
		&out.Stars, &out.Comment, &out.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Rating{}, domain.NotFoundError{Resource: "rating", Err: err}
		}
		return models.Rating{}, err
	}
	return out, nil
}

// ListRatings returns feedback, optionally per vehicle, newest first.
func (r RatingRepository) ListRatings(ctx context.Context, vehicleID string) ([]models.Rating, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db tidak tersedia"}
	}

	query := `
		SELECT id, booking_id, vehicle_id, user_id, stars, COALESCE(comment, ''), created_at
		FROM ratings`
	args := []any{}
	if vehicleID != "" {
		query += " WHERE vehicle_id = ?"
		args = append(args, vehicleID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Rating{}
	for rows.Next() {
		var rt models.Rating
		if err := rows.Scan(&rt.ID, &rt.BookingID, &rt.VehicleID, &rt.UserID,
			&rt.Stars, &rt.Comment, &rt.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}
