package session

import "time"

const (
	tokenName = "Opaque Access Token"
	tokenType = "api"
)

// Token is a persisted API token. Hash is the SHA-256 of the raw secret
// handed to the client, which is never stored.
type Token struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Name      string    `db:"name"`
	Type      string    `db:"type"`
	Hash      string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

// Expired reports whether the token is no longer valid at now
func (t *Token) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
