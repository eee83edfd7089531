package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intconfig "rental-backend/internal/config"
	"rental-backend/internal/domain"
	"rental-backend/internal/domain/models"
)

// UserRepository reads the user directory mirrored from the identity
// service. No credential columns are touched here.
type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = `
	id, name, email, COALESCE(phone, ''), role, status, created_at, updated_at`

// ListUsers returns directory entries, optionally filtered by a search term.
func (r UserRepository) ListUsers(ctx context.Context, query string) ([]models.User, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db tidak tersedia"}
	}

	stmt := `SELECT ` + userColumns + ` FROM users`
	args := []any{}
	if q := strings.TrimSpace(query); q != "" {
		stmt += " WHERE name LIKE ? OR email LIKE ?"
		like := "%" + q + "%"
		args = append(args, like, like)
	}
	stmt += " ORDER BY created_at DESC"

	rows, err := db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone,
			&u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// GetUserByID fetches one directory entry.
func (r UserRepository) GetUserByID(ctx context.Context, id string) (models.User, error) {
	db := r.db()
	if db == nil {
		return models.User{}, domain.InternalError{Msg: "db tidak tersedia"}
	}

	var u models.User
	err := db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = ? LIMIT 1
	`, id).Scan(&u.ID, &u.Name, &u.Email, &u.Phone,
		&u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, err
	}
	return u, nil
}

// UpdateUser changes role/status, the only fields staff maintain locally.
func (r UserRepository) UpdateUser(ctx context.Context, id, role, status string) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db tidak tersedia"}
	}

	sets := []string{}
	args := []any{}
	if role != "" {
		sets = append(sets, "role = ?")
		args = append(args, role)
	}
	if status != "" {
		sets = append(sets, "status = ?")
		args = append(args, status)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	res, err := db.ExecContext(ctx, `UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

// DeleteUser removes a directory entry.
func (r UserRepository) DeleteUser(ctx context.Context, id string) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db tidak tersedia"}
	}

	res, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}
