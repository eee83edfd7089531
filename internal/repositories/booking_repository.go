package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	intconfig "rental-backend/internal/config"
	"rental-backend/internal/domain"
	"rental-backend/internal/domain/models"
	"rental-backend/internal/utils"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `
	id, vehicle_id, requester_id,
	pickup_at, return_at,
	COALESCE(pickup_location, ''), COALESCE(return_location, ''),
	status, total_cost, day_count, driver_required,
	COALESCE(payment_proof_id, ''), COALESCE(payment_proof_name, ''),
	COALESCE(emergency_name, ''), COALESCE(emergency_phone, ''),
	COALESCE(special_requests, ''),
	created_at, updated_at`

// BookingFilter narrows staff listings.
type BookingFilter struct {
	VehicleID   string
	RequesterID string
	Status      string
	From        time.Time
	To          time.Time
}

// ListBookingsForVehicle returns the vehicle's current bookings straight from
// the store, ordered by pickup. No caching: the availability re-check before
// a submit depends on this being fresh.
func (r BookingRepository) ListBookingsForVehicle(ctx context.Context, vehicleID string) ([]models.Booking, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db tidak tersedia"}
	}

	rows, err := db.QueryContext(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE vehicle_id = ?
		ORDER BY pickup_at ASC
	`, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListBookings returns bookings matching the filter, newest first.
func (r BookingRepository) ListBookings(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db tidak tersedia"}
	}

	where := []string{}
	args := []any{}
	if f.VehicleID != "" {
		where = append(where, "vehicle_id = ?")
		args = append(args, f.VehicleID)
	}
	if f.RequesterID != "" {
		where = append(where, "requester_id = ?")
		args = append(args, f.RequesterID)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	if !f.From.IsZero() {
		where = append(where, "return_at >= ?")
		args = append(args, f.From)
	}
	if !f.To.IsZero() {
		where = append(where, "pickup_at <= ?")
		args = append(args, f.To)
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetBookingByID fetches one booking.
func (r BookingRepository) GetBookingByID(ctx context.Context, id string) (models.Booking, error) {
	db := r.db()
	if db == nil {
		return models.Booking{}, domain.InternalError{Msg: "db tidak tersedia"}
	}

	row := db.QueryRowContext(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE id = ? LIMIT 1
	`, id)

	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, err
	}
	return b, nil
}

// CreateBooking persists a new booking record.
func (r BookingRepository) CreateBooking(ctx context.Context, b models.Booking) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db tidak tersedia"}
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO bookings (
			id, vehicle_id, requester_id,
			pickup_at, return_at, pickup_location, return_location,
			status, total_cost, day_count, driver_required,
			payment_proof_id, payment_proof_name,
			emergency_name, emergency_phone, special_requests,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.ID, b.VehicleID, b.RequesterID,
		b.PickupAt, b.ReturnAt, b.PickupLocation, b.ReturnLocation,
		string(b.Status), b.TotalCost, b.DayCount, b.DriverRequired,
		b.PaymentProofID, b.PaymentProofName,
		b.EmergencyName, b.EmergencyPhone, b.SpecialRequests,
		b.CreatedAt, b.UpdatedAt,
	)
	return err
}

// UpdateStatus changes only the status column plus updated_at. Transition
// legality is checked in the service layer before this runs.
func (r BookingRepository) UpdateStatus(ctx context.Context, id string, status models.BookingStatus, now time.Time) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db tidak tersedia"}
	}

	res, err := db.ExecContext(ctx, `
		UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?
	`, string(status), now, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

// DeleteBooking removes a record permanently (requester pruning history).
func (r BookingRepository) DeleteBooking(ctx context.Context, id string) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db tidak tersedia"}
	}

	res, err := db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanBooking normalizes one row into a validated Booking. Loosely-shaped
// records are rejected here so they never reach the availability logic.
func scanBooking(row rowScanner) (models.Booking, error) {
	var (
		b         models.Booking
		pickup    sql.NullTime
		ret       sql.NullTime
		rawStatus string
	)
	if err := row.Scan(
		&b.ID, &b.VehicleID, &b.RequesterID,
		&pickup, &ret,
		&b.PickupLocation, &b.ReturnLocation,
		&rawStatus, &b.TotalCost, &b.DayCount, &b.DriverRequired,
		&b.PaymentProofID, &b.PaymentProofName,
		&b.EmergencyName, &b.EmergencyPhone,
		&b.SpecialRequests,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return models.Booking{}, err
	}

	if !pickup.Valid || !ret.Valid {
		return models.Booking{}, domain.ValidationError{Field: "booking", Msg: "record tanpa pickup/return"}
	}
	status, ok := models.ParseBookingStatus(strings.ToLower(strings.TrimSpace(rawStatus)))
	if !ok {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "status tidak dikenali: " + rawStatus}
	}

	b.PickupAt = pickup.Time
	b.ReturnAt = ret.Time
	b.Status = status
	return b, nil
}

func scanBookings(rows *sql.Rows) ([]models.Booking, error) {
	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			if domain.IsValidation(err) {
				// drop malformed records instead of poisoning the whole list
				utils.LogEvent("", "booking", "scan", "record dibuang: "+err.Error())
				continue
			}
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
