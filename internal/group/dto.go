package group

import "time"

// CreateGroupRequest represents the request to create a new group
type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Schedule    string `json:"schedule" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Chronicle   string `json:"chronicle" validate:"required"`
	Master      int64  `json:"master" validate:"required,gt=0"`
}

// GroupResponse represents the response for a group
type GroupResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Schedule    string            `json:"schedule"`
	Location    string            `json:"location"`
	Chronicle   string            `json:"chronicle"`
	Master      int64             `json:"master"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Players     []*PlayerResponse `json:"players"`
}

// PlayerResponse represents a roster entry in a group response
type PlayerResponse struct {
	ID       int64     `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Avatar   *string   `json:"avatar"`
	JoinedAt time.Time `json:"joinedAt"`
}

// GroupEnvelope wraps a single group in the response body
type GroupEnvelope struct {
	Group *GroupResponse `json:"group"`
}

// ToResponse converts a Group and its roster to a GroupResponse DTO
func (g *Group) ToResponse(players []*Player) *GroupResponse {
	resp := &GroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Schedule:    g.Schedule,
		Location:    g.Location,
		Chronicle:   g.Chronicle,
		Master:      g.Master,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
		Players:     make([]*PlayerResponse, 0, len(players)),
	}
	for _, p := range players {
		resp.Players = append(resp.Players, p.ToResponse())
	}
	return resp
}

// ToResponse converts a Player model to a PlayerResponse DTO
func (p *Player) ToResponse() *PlayerResponse {
	return &PlayerResponse{
		ID:       p.ID,
		Email:    p.Email,
		Username: p.Username,
		Avatar:   p.Avatar,
		JoinedAt: p.JoinedAt,
	}
}
