package session

import (
	"context"
	"time"

	"github.com/fkhayef/tableboard/internal/user"
	"github.com/fkhayef/tableboard/pkg/apperror"
	"github.com/fkhayef/tableboard/pkg/middleware"
)

// Common errors
var (
	ErrInvalidCredentials = apperror.BadRequest("invalid credentials")
	ErrInvalidPassword    = apperror.BadRequest("invalid password")
	ErrInvalidToken       = apperror.Unauthorized("invalid api token")
)

// Store is the token persistence the service needs
type Store interface {
	Create(ctx context.Context, t *Token) error
	GetByHash(ctx context.Context, hash string) (*Token, error)
	Delete(ctx context.Context, id int64) error
}

// UserFinder looks up the account behind a login
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// PasswordVerifier compares a stored hash with a plain password
type PasswordVerifier interface {
	Verify(hash, plain string) bool
}

// Service issues, verifies and revokes API tokens
type Service struct {
	tokens    Store
	users     UserFinder
	passwords PasswordVerifier
	ttl       time.Duration
	now       func() time.Time
}

// NewService creates a new session service. Issued tokens live for ttl.
func NewService(tokens Store, users UserFinder, passwords PasswordVerifier, ttl time.Duration) *Service {
	return &Service{
		tokens:    tokens,
		users:     users,
		passwords: passwords,
		ttl:       ttl,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Login checks the credentials and issues a new token. The raw secret is
// only ever returned here.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*user.User, *TokenResponse, error) {
	if req.Email == "" {
		return nil, nil, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, err
	}
	if u == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !s.passwords.Verify(u.Password, req.Password) {
		return nil, nil, ErrInvalidPassword
	}

	secret, err := newSecret()
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	t := &Token{
		UserID:    u.ID,
		Name:      tokenName,
		Type:      tokenType,
		Hash:      hashSecret(secret),
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.tokens.Create(ctx, t); err != nil {
		return nil, nil, err
	}

	return u, &TokenResponse{Type: "bearer", Token: secret, ExpiresAt: t.ExpiresAt}, nil
}

// VerifyToken resolves a raw bearer token into the caller identity
func (s *Service) VerifyToken(ctx context.Context, raw string) (middleware.Identity, error) {
	t, err := s.tokens.GetByHash(ctx, hashSecret(raw))
	if err != nil {
		return middleware.Identity{}, err
	}
	if t == nil {
		return middleware.Identity{}, ErrInvalidToken
	}
	if t.Expired(s.now()) {
		return middleware.Identity{}, apperror.TokenExpired()
	}

	return middleware.Identity{UserID: t.UserID, TokenID: t.ID}, nil
}

// Logout revokes the token the caller authenticated with
func (s *Service) Logout(ctx context.Context, identity middleware.Identity) error {
	return s.tokens.Delete(ctx, identity.TokenID)
}
