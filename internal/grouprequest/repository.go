package grouprequest

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/fkhayef/tableboard/internal/database"
	"github.com/fkhayef/tableboard/internal/group"
)

const requestColumns = `id, group_id, user_id, status, created_at, updated_at`

// Repository handles membership request persistence
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new request repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts req and sets its ID
func (r *Repository) Create(ctx context.Context, req *Request) error {
	query := r.db.Rebind(`
		INSERT INTO group_requests (group_id, user_id, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`)

	err := r.db.QueryRowxContext(ctx, query,
		req.GroupID, req.UserID, req.Status, req.CreatedAt, req.UpdatedAt,
	).Scan(&req.ID)
	if err != nil {
		return errors.Wrap(err, "create group request")
	}
	return nil
}

// GetByGroupAndUser retrieves the request userID made for groupID. It
// returns nil when none exists.
func (r *Repository) GetByGroupAndUser(ctx context.Context, groupID, userID int64) (*Request, error) {
	query := r.db.Rebind(`SELECT ` + requestColumns + ` FROM group_requests WHERE group_id = ? AND user_id = ?`)
	return r.getOne(ctx, query, groupID, userID)
}

// GetByIDAndGroup retrieves a request only if it belongs to groupID
func (r *Repository) GetByIDAndGroup(ctx context.Context, id, groupID int64) (*Request, error) {
	query := r.db.Rebind(`SELECT ` + requestColumns + ` FROM group_requests WHERE id = ? AND group_id = ?`)
	return r.getOne(ctx, query, id, groupID)
}

func (r *Repository) getOne(ctx context.Context, query string, args ...any) (*Request, error) {
	var req Request
	if err := r.db.GetContext(ctx, &req, query, args...); err != nil {
		if database.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get group request")
	}
	return &req, nil
}

// ListPendingByMaster retrieves every pending request for the groups run
// by masterID
func (r *Repository) ListPendingByMaster(ctx context.Context, masterID int64) ([]*Listing, error) {
	query := r.db.Rebind(`
		SELECT gr.id, gr.group_id, gr.user_id, gr.status, gr.created_at, gr.updated_at,
		       g.name AS group_name, g.master AS group_master, u.username
		FROM group_requests gr
		JOIN tabletop_groups g ON g.id = gr.group_id
		JOIN users u ON u.id = gr.user_id
		WHERE g.master = ? AND gr.status = ?
		ORDER BY gr.id
	`)

	listings := []*Listing{}
	if err := r.db.SelectContext(ctx, &listings, query, masterID, StatusPending); err != nil {
		return nil, errors.Wrap(err, "list pending group requests")
	}
	return listings, nil
}

// Accept marks req as accepted and adds its user to the group roster in
// the same transaction
func (r *Repository) Accept(ctx context.Context, req *Request, at time.Time) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := tx.Rebind(`
			UPDATE group_requests
			SET status = ?, updated_at = ?
			WHERE id = ?
		`)
		if _, err := tx.ExecContext(ctx, query, StatusAccepted, at, req.ID); err != nil {
			return errors.Wrap(err, "accept group request")
		}

		return group.AddPlayer(ctx, tx, req.GroupID, req.UserID, at)
	})
}

// Delete removes a request
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query := r.db.Rebind(`DELETE FROM group_requests WHERE id = ?`)

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return errors.Wrap(err, "delete group request")
	}
	return nil
}
