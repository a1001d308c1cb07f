package session

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/fkhayef/tableboard/internal/database"
)

// Repository handles API token persistence
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new token repository with database dependency injected
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts t and sets its ID
func (r *Repository) Create(ctx context.Context, t *Token) error {
	query := r.db.Rebind(`
		INSERT INTO api_tokens (user_id, name, type, token, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	err := r.db.QueryRowxContext(ctx, query,
		t.UserID, t.Name, t.Type, t.Hash, t.ExpiresAt, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		return errors.Wrap(err, "create api token")
	}
	return nil
}

// GetByHash retrieves a token by the hash of its secret. It returns nil
// when none exists.
func (r *Repository) GetByHash(ctx context.Context, hash string) (*Token, error) {
	query := r.db.Rebind(`
		SELECT id, user_id, name, type, token, expires_at, created_at
		FROM api_tokens
		WHERE token = ?
	`)

	var t Token
	if err := r.db.GetContext(ctx, &t, query, hash); err != nil {
		if database.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get api token")
	}
	return &t, nil
}

// Delete removes a token. Deleting a missing token is not an error.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query := r.db.Rebind(`DELETE FROM api_tokens WHERE id = ?`)

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return errors.Wrap(err, "delete api token")
	}
	return nil
}
