package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intconfig "rental-backend/internal/config"
	intdb "rental-backend/internal/db"
	"rental-backend/internal/domain"
	"rental-backend/internal/domain/models"
)

type VehicleRepository struct {
	DB *sql.DB
}

func (r VehicleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const vehicleColumns = `
	id, make, model, COALESCE(category, ''), COALESCE(fuel_type, ''),
	seats, price_per_day, available, COALESCE(image_ref, ''),
	created_at, updated_at`

// VehicleFilter narrows catalog listings.
type VehicleFilter struct {
	Query         string
	Category      string
	AvailableOnly bool
	Page          int
	Limit         int
}

// ListVehicles searches the fleet with optional paging.
func (r VehicleRepository) ListVehicles(ctx context.Context, f VehicleFilter) ([]models.Vehicle, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db tidak tersedia"}
	}

	where := []string{}
	args := []any{}
	if q := strings.TrimSpace(f.Query); q != "" {
		where = append(where, "(make LIKE ? OR model LIKE ?)")
		like := "%" + q + "%"
		args = append(args, like, like)
	}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.AvailableOnly {
		where = append(where, "available = 1")
	}

	query := `SELECT ` + vehicleColumns + ` FROM vehicles`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	if f.Page > 0 && f.Limit > 0 {
		limit := f.Limit
		if limit > 200 {
			limit = 200
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, (f.Page-1)*limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Vehicle{}
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(
			&v.ID, &v.Make, &v.Model, &v.Category, &v.FuelType,
			&v.Seats, &v.PricePerDay, &v.Available, &v.ImageRef,
			&v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// GetVehicleByID fetches one vehicle.
func (r VehicleRepository) GetVehicleByID(ctx context.Context, id string) (models.Vehicle, error) {
	db := r.db()
	if db == nil {
		return models.Vehicle{}, domain.InternalError{Msg: "db tidak tersedia"}
	}

	var v models.Vehicle
	err := db.QueryRowContext(ctx, `
		SELECT `+vehicleColumns+`
		FROM vehicles
		WHERE id = ? LIMIT 1
	`, id).Scan(
		&v.ID, &v.Make, &v.Model, &v.Category, &v.FuelType,
		&v.Seats, &v.PricePerDay, &v.Available, &v.ImageRef,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Vehicle{}, domain.NotFoundError{Resource: "kendaraan", Err: err}
		}
		return models.Vehicle{}, err
	}
	return v, nil
}

// CreateVehicle inserts a fleet unit.
func (r VehicleRepository) CreateVehicle(ctx context.Context, v models.Vehicle) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db tidak tersedia"}
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO vehicles (id, make, model, category, fuel_type, seats,
			price_per_day, available, image_ref, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, v.ID, v.Make, v.Model, intdb.NullIfEmpty(v.Category), intdb.NullIfEmpty(v.FuelType),
		v.Seats, v.PricePerDay, v.Available, intdb.NullIfEmpty(v.ImageRef),
		v.CreatedAt, v.UpdatedAt)
	return err
}

// UpdateVehicle overwrites the editable fields.
func (r VehicleRepository) UpdateVehicle(ctx context.Context, v models.Vehicle) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db tidak tersedia"}
	}

	res, err := db.ExecContext(ctx, `
		UPDATE vehicles
		SET make = ?, model = ?, category = ?, fuel_type = ?, seats = ?,
			price_per_day = ?, available = ?, image_ref = ?, updated_at = ?
		WHERE id = ?
	`, v.Make, v.Model, intdb.NullIfEmpty(v.Category), intdb.NullIfEmpty(v.FuelType),
		v.Seats, v.PricePerDay, v.Available, intdb.NullIfEmpty(v.ImageRef),
		v.UpdatedAt, v.ID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "kendaraan"}
	}
	return nil
}

// DeleteVehicle removes a fleet unit.
func (r VehicleRepository) DeleteVehicle(ctx context.Context, id string) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db tidak tersedia"}
	}

	res, err := db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "kendaraan"}
	}
	return nil
}
