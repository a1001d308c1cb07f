package group

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/fkhayef/tableboard/internal/database"
)

// Repository handles group and roster persistence
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithMaster inserts g and puts its master on the roster in the
// same transaction
func (r *Repository) CreateWithMaster(ctx context.Context, g *Group) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := tx.Rebind(`
			INSERT INTO tabletop_groups (name, description, schedule, location, chronicle, master, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id
		`)

		err := tx.QueryRowxContext(ctx, query,
			g.Name, g.Description, g.Schedule, g.Location, g.Chronicle, g.Master, g.CreatedAt, g.UpdatedAt,
		).Scan(&g.ID)
		if err != nil {
			return errors.Wrap(err, "create group")
		}

		return AddPlayer(ctx, tx, g.ID, g.Master, g.CreatedAt)
	})
}

// AddPlayer puts userID on the roster of groupID within tx. Adding a
// player twice is a no-op.
func AddPlayer(ctx context.Context, tx *sqlx.Tx, groupID, userID int64, at time.Time) error {
	query := tx.Rebind(`
		INSERT INTO group_players (group_id, user_id, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT DO NOTHING
	`)

	if _, err := tx.ExecContext(ctx, query, groupID, userID, at); err != nil {
		return errors.Wrap(err, "add player")
	}
	return nil
}

// GetByID retrieves a group by its ID. It returns nil when none exists.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Group, error) {
	query := r.db.Rebind(`
		SELECT id, name, description, schedule, location, chronicle, master, created_at, updated_at
		FROM tabletop_groups
		WHERE id = ?
	`)

	var g Group
	if err := r.db.GetContext(ctx, &g, query, id); err != nil {
		if database.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get group")
	}
	return &g, nil
}

// ListPlayers retrieves the roster of a group in join order
func (r *Repository) ListPlayers(ctx context.Context, groupID int64) ([]*Player, error) {
	query := r.db.Rebind(`
		SELECT u.id, u.email, u.username, u.avatar, gp.created_at AS joined_at
		FROM group_players gp
		JOIN users u ON u.id = gp.user_id
		WHERE gp.group_id = ?
		ORDER BY gp.created_at, u.id
	`)

	players := []*Player{}
	if err := r.db.SelectContext(ctx, &players, query, groupID); err != nil {
		return nil, errors.Wrap(err, "list players")
	}
	return players, nil
}

// IsPlayer reports whether userID is on the roster of groupID
func (r *Repository) IsPlayer(ctx context.Context, groupID, userID int64) (bool, error) {
	query := r.db.Rebind(`
		SELECT COUNT(*) FROM group_players WHERE group_id = ? AND user_id = ?
	`)

	var count int
	if err := r.db.GetContext(ctx, &count, query, groupID, userID); err != nil {
		return false, errors.Wrap(err, "check player")
	}
	return count > 0, nil
}
