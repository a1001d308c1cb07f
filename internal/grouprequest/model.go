package grouprequest

import "time"

// Status is the state of a membership request. Rejected requests are
// deleted, so there is no rejected state.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
)

// Request is a user's request to join a group
type Request struct {
	ID        int64     `db:"id"`
	GroupID   int64     `db:"group_id"`
	UserID    int64     `db:"user_id"`
	Status    Status    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Listing is a pending request joined with its group and requester
type Listing struct {
	Request
	GroupName   string `db:"group_name"`
	GroupMaster int64  `db:"group_master"`
	Username    string `db:"username"`
}
