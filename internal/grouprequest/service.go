package grouprequest

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/fkhayef/tableboard/internal/database"
	"github.com/fkhayef/tableboard/internal/group"
	"github.com/fkhayef/tableboard/pkg/apperror"
	"github.com/fkhayef/tableboard/pkg/logging"
)

// Common errors
var (
	ErrRequestNotFound = apperror.NotFound("resource not found")
	ErrRequestExists   = apperror.Conflict("group request already exists")
	ErrAlreadyInGroup  = apperror.Unprocessable("user is already in the group")
	ErrNotMaster       = apperror.Forbidden("not authorized to perform this action")
	ErrMasterRequired  = apperror.Unprocessable("Master user should be provided")
)

// Store is the request persistence the service needs
type Store interface {
	Create(ctx context.Context, req *Request) error
	GetByGroupAndUser(ctx context.Context, groupID, userID int64) (*Request, error)
	GetByIDAndGroup(ctx context.Context, id, groupID int64) (*Request, error)
	ListPendingByMaster(ctx context.Context, masterID int64) ([]*Listing, error)
	Accept(ctx context.Context, req *Request, at time.Time) error
	Delete(ctx context.Context, id int64) error
}

// Groups gives access to groups and their rosters
type Groups interface {
	GetByID(ctx context.Context, id int64) (*group.Group, error)
	IsPlayer(ctx context.Context, groupID, userID int64) (bool, error)
}

// Notifier is told about every step of the workflow. Failures are logged
// and never undo the step.
type Notifier interface {
	RequestReceived(ctx context.Context, g *group.Group, requesterID int64) error
	RequestAccepted(ctx context.Context, g *group.Group, userID int64) error
	RequestRejected(ctx context.Context, g *group.Group, userID int64) error
}

// Service runs the membership request workflow
type Service struct {
	repo     Store
	groups   Groups
	notifier Notifier
	now      func() time.Time
}

// NewService creates a new request service
func NewService(repo Store, groups Groups, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		groups:   groups,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// List returns every pending request for groups run by masterID
func (s *Service) List(ctx context.Context, masterID int64) ([]*Listing, error) {
	return s.repo.ListPendingByMaster(ctx, masterID)
}

// Create files a pending request from callerID to join groupID
func (s *Service) Create(ctx context.Context, groupID, callerID int64) (*Request, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, group.ErrGroupNotFound
	}

	existing, err := s.repo.GetByGroupAndUser(ctx, groupID, callerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrRequestExists
	}

	isPlayer, err := s.groups.IsPlayer(ctx, groupID, callerID)
	if err != nil {
		return nil, err
	}
	if isPlayer {
		return nil, ErrAlreadyInGroup
	}

	now := s.now()
	req := &Request{
		GroupID:   groupID,
		UserID:    callerID,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return nil, errors.WithStack(ErrRequestExists)
		}
		return nil, err
	}

	s.notify(ctx, "request received", s.notifier.RequestReceived(ctx, g, callerID))
	return req, nil
}

// Accept lets the group master admit the requester to the roster.
// Accepting an already accepted request returns it unchanged.
func (s *Service) Accept(ctx context.Context, groupID, requestID, callerID int64) (*Request, error) {
	req, g, err := s.authorize(ctx, groupID, requestID, callerID)
	if err != nil {
		return nil, err
	}
	if req.Status == StatusAccepted {
		return req, nil
	}

	now := s.now()
	if err := s.repo.Accept(ctx, req, now); err != nil {
		return nil, err
	}
	req.Status = StatusAccepted
	req.UpdatedAt = now

	s.notify(ctx, "request accepted", s.notifier.RequestAccepted(ctx, g, req.UserID))
	return req, nil
}

// Reject lets the group master discard a request
func (s *Service) Reject(ctx context.Context, groupID, requestID, callerID int64) error {
	req, g, err := s.authorize(ctx, groupID, requestID, callerID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, req.ID); err != nil {
		return err
	}

	s.notify(ctx, "request rejected", s.notifier.RequestRejected(ctx, g, req.UserID))
	return nil
}

func (s *Service) notify(ctx context.Context, event string, err error) {
	if err != nil {
		logging.Default().WarnContext(ctx, "group request notification failed", "event", event, "error", err)
	}
}

// authorize loads the request addressed by (requestID, groupID) and its
// group, and checks that callerID is the group master
func (s *Service) authorize(ctx context.Context, groupID, requestID, callerID int64) (*Request, *group.Group, error) {
	req, err := s.repo.GetByIDAndGroup(ctx, requestID, groupID)
	if err != nil {
		return nil, nil, err
	}
	if req == nil {
		return nil, nil, ErrRequestNotFound
	}

	g, err := s.groups.GetByID(ctx, req.GroupID)
	if err != nil {
		return nil, nil, err
	}
	if g == nil {
		return nil, nil, ErrRequestNotFound
	}
	if !group.IsMaster(g, callerID) {
		return nil, nil, ErrNotMaster
	}
	return req, g, nil
}
