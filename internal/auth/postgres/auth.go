package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"github.com/arjav-14/cost-console/internal"
	"github.com/arjav-14/cost-console/internal/user"
)

// Repository implements auth.UserRepository over the users table.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, `SELECT id, name, email, password_hash, role, created_at, updated_at FROM users WHERE email = ?`, email)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return r.getOne(ctx, `SELECT id, name, email, password_hash, role, created_at, updated_at FROM users WHERE id = ?`, id)
}

func (r *Repository) getOne(ctx context.Context, query string, arg interface{}) (*user.User, error) {
	var u user.User
	var role string

	row := r.db.WithContext(ctx).Raw(query, arg).Row()
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}

	parsed, err := user.ParseRole(role)
	if err != nil {
		return nil, err
	}
	u.Role = parsed

	return &u, nil
}

func (r *Repository) Create(ctx context.Context, u *user.User) error {
	row := r.db.WithContext(ctx).Raw(
		`INSERT INTO users (name, email, password_hash, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		u.Name, u.Email, u.PasswordHash, string(u.Role), u.CreatedAt, u.UpdatedAt,
	).Row()
	return row.Scan(&u.ID)
}
