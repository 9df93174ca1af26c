package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/arjav-14/cost-console/internal"
	"github.com/arjav-14/cost-console/internal/user"
)

// Repository implements user.Repository over sqlx.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var row struct {
		ID           int64        `db:"id"`
		Name         string       `db:"name"`
		Email        string       `db:"email"`
		PasswordHash string       `db:"password_hash"`
		Role         string       `db:"role"`
		CreatedAt    sql.NullTime `db:"created_at"`
		UpdatedAt    sql.NullTime `db:"updated_at"`
	}

	query := `SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}

	role, err := user.ParseRole(row.Role)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Role:         role,
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
	}
	return u, nil
}
