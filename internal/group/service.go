package group

import (
	"context"
	"time"

	"github.com/fkhayef/tableboard/internal/user"
	"github.com/fkhayef/tableboard/pkg/apperror"
)

// Common errors
var (
	ErrGroupNotFound  = apperror.NotFound("resource not found")
	ErrMasterNotFound = apperror.Unprocessable("master user does not exist")
)

// Store is the persistence the service needs
type Store interface {
	CreateWithMaster(ctx context.Context, g *Group) error
	GetByID(ctx context.Context, id int64) (*Group, error)
	ListPlayers(ctx context.Context, groupID int64) ([]*Player, error)
}

// UserFinder looks up the user named as master
type UserFinder interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

// Service handles group business logic
type Service struct {
	repo  Store
	users UserFinder
	now   func() time.Time
}

// NewService creates a new group service
func NewService(repo Store, users UserFinder) *Service {
	return &Service{
		repo:  repo,
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create creates a new group. The master named in the request joins the
// roster as its first player.
func (s *Service) Create(ctx context.Context, req *CreateGroupRequest) (*Group, []*Player, error) {
	master, err := s.users.GetByID(ctx, req.Master)
	if err != nil {
		return nil, nil, err
	}
	if master == nil {
		return nil, nil, ErrMasterNotFound
	}

	now := s.now()
	g := &Group{
		Name:        req.Name,
		Description: req.Description,
		Schedule:    req.Schedule,
		Location:    req.Location,
		Chronicle:   req.Chronicle,
		Master:      master.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateWithMaster(ctx, g); err != nil {
		return nil, nil, err
	}

	players, err := s.repo.ListPlayers(ctx, g.ID)
	if err != nil {
		return nil, nil, err
	}
	return g, players, nil
}

// GetByID retrieves a group by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Group, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	return g, nil
}

// GetByIDWithPlayers retrieves a group with its roster
func (s *Service) GetByIDWithPlayers(ctx context.Context, id int64) (*Group, []*Player, error) {
	g, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	players, err := s.repo.ListPlayers(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return g, players, nil
}
