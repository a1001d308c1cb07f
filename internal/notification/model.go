package notification

import "time"

// Kind tells what happened to produce a notification
type Kind string

const (
	KindRequestReceived Kind = "GROUP_REQUEST_RECEIVED"
	KindRequestAccepted Kind = "GROUP_REQUEST_ACCEPTED"
	KindRequestRejected Kind = "GROUP_REQUEST_REJECTED"
)

// Notification is an inbox entry for a single user
type Notification struct {
	ID          int64     `db:"id"`
	RecipientID int64     `db:"recipient_id"`
	Kind        Kind      `db:"kind"`
	Message     string    `db:"message"`
	GroupID     *int64    `db:"group_id"`
	IsRead      bool      `db:"is_read"`
	CreatedAt   time.Time `db:"created_at"`
}
