package grouprequest

import "time"

// RequestResponse represents a membership request in a response
type RequestResponse struct {
	ID        int64     `json:"id"`
	GroupID   int64     `json:"groupId"`
	UserID    int64     `json:"userId"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListingResponse represents a pending request with its group and requester
type ListingResponse struct {
	ID      int64        `json:"id"`
	GroupID int64        `json:"groupId"`
	UserID  int64        `json:"userId"`
	Status  Status       `json:"status"`
	Group   ListingGroup `json:"group"`
	User    ListingUser  `json:"user"`
}

// ListingGroup is the group projection of a listing
type ListingGroup struct {
	Name   string `json:"name"`
	Master int64  `json:"master"`
}

// ListingUser is the requester projection of a listing
type ListingUser struct {
	Username string `json:"username"`
}

// RequestEnvelope wraps a single request in the response body
type RequestEnvelope struct {
	GroupRequest *RequestResponse `json:"groupRequest"`
}

// ListEnvelope wraps pending requests in the response body
type ListEnvelope struct {
	GroupRequests []*ListingResponse `json:"groupRequests"`
}

// ToResponse converts a Request model to a RequestResponse DTO
func (r *Request) ToResponse() *RequestResponse {
	return &RequestResponse{
		ID:        r.ID,
		GroupID:   r.GroupID,
		UserID:    r.UserID,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ToResponse converts a Listing to a ListingResponse DTO
func (l *Listing) ToResponse() *ListingResponse {
	return &ListingResponse{
		ID:      l.ID,
		GroupID: l.GroupID,
		UserID:  l.UserID,
		Status:  l.Status,
		Group:   ListingGroup{Name: l.GroupName, Master: l.GroupMaster},
		User:    ListingUser{Username: l.Username},
	}
}
