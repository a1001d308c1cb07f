package group

import "time"

// Group represents a tabletop group run by its master
type Group struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Schedule    string    `db:"schedule"`
	Location    string    `db:"location"`
	Chronicle   string    `db:"chronicle"`
	Master      int64     `db:"master"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Player is a user on a group's roster
type Player struct {
	ID       int64     `db:"id"`
	Email    string    `db:"email"`
	Username string    `db:"username"`
	Avatar   *string   `db:"avatar"`
	JoinedAt time.Time `db:"joined_at"`
}

// IsMaster reports whether userID runs g
func IsMaster(g *Group, userID int64) bool {
	return g != nil && g.Master == userID
}
