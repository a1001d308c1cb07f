package user

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/fkhayef/tableboard/internal/database"
	"github.com/fkhayef/tableboard/pkg/apperror"
)

// Common errors
var (
	ErrUserNotFound         = apperror.NotFound("resource not found")
	ErrEmailAlreadyInUse    = apperror.Conflict("email already in use")
	ErrUsernameAlreadyInUse = apperror.Conflict("username already in use")
)

// Store is the persistence the service needs
type Store interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, u *User) error
}

// PasswordHasher hashes plain passwords
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// Service handles user business logic
type Service struct {
	repo   Store
	hasher PasswordHasher
	now    func() time.Time
}

// NewService creates a new user service with its dependencies injected
func NewService(repo Store, hasher PasswordHasher) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create registers a new user. Email is checked before username.
func (s *Service) Create(ctx context.Context, req *CreateUserRequest) (*User, error) {
	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyInUse
	}

	existing, err = s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameAlreadyInUse
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	u := &User{
		Email:     req.Email,
		Username:  req.Username,
		Password:  hash,
		Avatar:    req.Avatar,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, conflictFrom(err)
	}

	return u, nil
}

// GetByID retrieves a user by their ID
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// Update replaces the email and password of a user. The avatar is only
// changed when the request carries one.
func (s *Service) Update(ctx context.Context, id int64, req *UpdateUserRequest) (*User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != u.Email {
		other, err := s.repo.GetByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != u.ID {
			return nil, ErrEmailAlreadyInUse
		}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	u.Email = req.Email
	u.Password = hash
	if req.Avatar != nil {
		u.Avatar = req.Avatar
	}
	u.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, conflictFrom(err)
	}
	return u, nil
}

// conflictFrom maps a unique violation lost to a concurrent writer onto
// the matching conflict error.
func conflictFrom(err error) error {
	detail, ok := database.UniqueViolation(err)
	if !ok {
		return err
	}
	if strings.Contains(detail, "username") {
		return errors.WithStack(ErrUsernameAlreadyInUse)
	}
	return errors.WithStack(ErrEmailAlreadyInUse)
}
