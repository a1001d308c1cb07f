package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/fkhayef/tableboard/internal/group"
	"github.com/fkhayef/tableboard/internal/user"
	"github.com/fkhayef/tableboard/pkg/apperror"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// Common errors
var (
	ErrNotificationNotFound = apperror.NotFound("resource not found")
	ErrNotRecipient         = apperror.Forbidden("not the recipient of this notification")
)

// Store is the notification persistence the service needs
type Store interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id int64) (*Notification, error)
	ListByRecipient(ctx context.Context, recipientID int64, limit, offset int, unreadOnly bool) ([]*Notification, int, error)
	MarkAsRead(ctx context.Context, id int64) error
	MarkAllAsRead(ctx context.Context, recipientID int64) error
	CountUnread(ctx context.Context, recipientID int64) (int, error)
}

// UserFinder looks users up by ID
type UserFinder interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

// Page selects a slice of an inbox
type Page struct {
	Page       int
	PerPage    int
	UnreadOnly bool
}

// Service handles notification business logic
type Service struct {
	repo  Store
	users UserFinder
	now   func() time.Time
}

// NewService creates a new notification service
func NewService(repo Store, users UserFinder) *Service {
	return &Service{
		repo:  repo,
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// List returns one page of recipientID's inbox and the pagination metadata
func (s *Service) List(ctx context.Context, recipientID int64, p Page) ([]*Notification, Meta, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = defaultPerPage
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}

	items, total, err := s.repo.ListByRecipient(ctx, recipientID, p.PerPage, (p.Page-1)*p.PerPage, p.UnreadOnly)
	if err != nil {
		return nil, Meta{}, err
	}

	return items, Meta{
		Page:       p.Page,
		PerPage:    p.PerPage,
		Total:      total,
		TotalPages: (total + p.PerPage - 1) / p.PerPage,
	}, nil
}

// MarkAsRead flags notification id as read on behalf of userID
func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return ErrNotificationNotFound
	}
	if n.RecipientID != userID {
		return ErrNotRecipient
	}
	if n.IsRead {
		return nil
	}
	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead flags every notification of userID as read
func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// UnreadCount returns how many unread notifications userID has
func (s *Service) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

// RequestReceived tells the master of g that requesterID asked to join
func (s *Service) RequestReceived(ctx context.Context, g *group.Group, requesterID int64) error {
	name := "someone"
	u, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return err
	}
	if u != nil {
		name = u.Username
	}

	msg := fmt.Sprintf("%s requested to join %s", name, g.Name)
	return s.create(ctx, g.Master, KindRequestReceived, msg, g.ID)
}

// RequestAccepted tells userID they are now on the roster of g
func (s *Service) RequestAccepted(ctx context.Context, g *group.Group, userID int64) error {
	msg := fmt.Sprintf("your request to join %s was accepted", g.Name)
	return s.create(ctx, userID, KindRequestAccepted, msg, g.ID)
}

// RequestRejected tells userID the master of g turned their request down
func (s *Service) RequestRejected(ctx context.Context, g *group.Group, userID int64) error {
	msg := fmt.Sprintf("your request to join %s was rejected", g.Name)
	return s.create(ctx, userID, KindRequestRejected, msg, g.ID)
}

func (s *Service) create(ctx context.Context, recipientID int64, kind Kind, message string, groupID int64) error {
	return s.repo.Create(ctx, &Notification{
		RecipientID: recipientID,
		Kind:        kind,
		Message:     message,
		GroupID:     &groupID,
		CreatedAt:   s.now(),
	})
}
