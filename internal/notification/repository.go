package notification

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/fkhayef/tableboard/internal/database"
)

const notificationColumns = `id, recipient_id, kind, message, group_id, is_read, created_at`

// Repository handles notification persistence
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new notification repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts n and sets its ID
func (r *Repository) Create(ctx context.Context, n *Notification) error {
	query := r.db.Rebind(`
		INSERT INTO notifications (recipient_id, kind, message, group_id, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	err := r.db.QueryRowxContext(ctx, query,
		n.RecipientID, n.Kind, n.Message, n.GroupID, n.IsRead, n.CreatedAt,
	).Scan(&n.ID)
	if err != nil {
		return errors.Wrap(err, "create notification")
	}
	return nil
}

// GetByID retrieves a notification by ID. It returns nil when none exists.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Notification, error) {
	query := r.db.Rebind(`SELECT ` + notificationColumns + ` FROM notifications WHERE id = ?`)

	var n Notification
	if err := r.db.GetContext(ctx, &n, query, id); err != nil {
		if database.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get notification")
	}
	return &n, nil
}

// ListByRecipient retrieves one page of recipientID's notifications, newest
// first, along with the total number that match
func (r *Repository) ListByRecipient(ctx context.Context, recipientID int64, limit, offset int, unreadOnly bool) ([]*Notification, int, error) {
	where := `WHERE recipient_id = ?`
	args := []any{recipientID}
	if unreadOnly {
		where += ` AND is_read = ?`
		args = append(args, false)
	}

	var total int
	countQuery := r.db.Rebind(`SELECT COUNT(*) FROM notifications ` + where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, errors.Wrap(err, "count notifications")
	}

	query := r.db.Rebind(`SELECT ` + notificationColumns + ` FROM notifications ` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`)

	notifications := []*Notification{}
	if err := r.db.SelectContext(ctx, &notifications, query, append(args, limit, offset)...); err != nil {
		return nil, 0, errors.Wrap(err, "list notifications")
	}
	return notifications, total, nil
}

// MarkAsRead flags a single notification as read
func (r *Repository) MarkAsRead(ctx context.Context, id int64) error {
	query := r.db.Rebind(`UPDATE notifications SET is_read = ? WHERE id = ?`)

	if _, err := r.db.ExecContext(ctx, query, true, id); err != nil {
		return errors.Wrap(err, "mark notification as read")
	}
	return nil
}

// MarkAllAsRead flags every unread notification of recipientID as read
func (r *Repository) MarkAllAsRead(ctx context.Context, recipientID int64) error {
	query := r.db.Rebind(`UPDATE notifications SET is_read = ? WHERE recipient_id = ? AND is_read = ?`)

	if _, err := r.db.ExecContext(ctx, query, true, recipientID, false); err != nil {
		return errors.Wrap(err, "mark all notifications as read")
	}
	return nil
}

// CountUnread returns how many unread notifications recipientID has
func (r *Repository) CountUnread(ctx context.Context, recipientID int64) (int, error) {
	query := r.db.Rebind(`SELECT COUNT(*) FROM notifications WHERE recipient_id = ? AND is_read = ?`)

	var count int
	if err := r.db.GetContext(ctx, &count, query, recipientID, false); err != nil {
		return 0, errors.Wrap(err, "count unread notifications")
	}
	return count, nil
}
