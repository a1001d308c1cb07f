package notification

import "time"

// NotificationResponse represents the response for a notification
type NotificationResponse struct {
	ID        int64     `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	GroupID   *int64    `json:"groupId"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// Meta contains pagination metadata
type Meta struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ListEnvelope wraps a page of notifications in the response body
type ListEnvelope struct {
	Notifications []*NotificationResponse `json:"notifications"`
	Meta          Meta                    `json:"meta"`
}

// UnreadCountResponse is the body of GET /notifications/unread-count
type UnreadCountResponse struct {
	UnreadCount int `json:"unreadCount"`
}

// ToResponse converts a Notification to a NotificationResponse DTO
func (n *Notification) ToResponse() *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID,
		Kind:      n.Kind,
		Message:   n.Message,
		GroupID:   n.GroupID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
