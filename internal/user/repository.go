package user

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/fkhayef/tableboard/internal/database"
)

const userColumns = `id, email, username, password, avatar, created_at, updated_at`

// Repository handles user data persistence
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new user repository with database dependency injected
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts u and sets its ID
func (r *Repository) Create(ctx context.Context, u *User) error {
	query := r.db.Rebind(`
		INSERT INTO users (email, username, password, avatar, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	err := r.db.QueryRowxContext(ctx, query,
		u.Email, u.Username, u.Password, u.Avatar, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		return errors.Wrap(err, "create user")
	}
	return nil
}

// GetByID retrieves a user by their ID. It returns nil when none exists.
func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.getOne(ctx, "id", id)
}

// GetByEmail retrieves a user by their email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx, "email", email)
}

// GetByUsername retrieves a user by their username
func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.getOne(ctx, "username", username)
}

func (r *Repository) getOne(ctx context.Context, column string, value any) (*User, error) {
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = ?`)

	var u User
	if err := r.db.GetContext(ctx, &u, query, value); err != nil {
		if database.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "get user by %s", column)
	}
	return &u, nil
}

// Update writes the mutable columns of u
func (r *Repository) Update(ctx context.Context, u *User) error {
	query := r.db.Rebind(`
		UPDATE users
		SET email = ?, password = ?, avatar = ?, updated_at = ?
		WHERE id = ?
	`)

	if _, err := r.db.ExecContext(ctx, query, u.Email, u.Password, u.Avatar, u.UpdatedAt, u.ID); err != nil {
		return errors.Wrap(err, "update user")
	}
	return nil
}
