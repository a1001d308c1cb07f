package group

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/tableboard/pkg/request"
	"github.com/fkhayef/tableboard/pkg/response"
)

// Handler handles HTTP requests for group operations
type Handler struct {
	service   *Service
	validator request.Validator
}

// NewHandler creates a new group handler
func NewHandler(service *Service, validator request.Validator) *Handler {
	return &Handler{service: service, validator: validator}
}

// Routes returns the router for group endpoints with the membership
// request routes mounted under /{groupId}/requests
func (h *Handler) Routes(requests http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/{groupId}", h.GetByID)
	r.Mount("/{groupId}/requests", requests)

	return r
}

// Create handles POST /groups
// @Summary      Create a new group
// @Description  Create a group; the master joins its roster immediately
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateGroupRequest true "Group creation request"
// @Success      201 {object} GroupEnvelope
// @Failure      401 {object} response.ErrorBody
// @Failure      422 {object} response.ErrorBody
// @Router       /groups [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if err := request.Bind(r, h.validator, &req); err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	g, players, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	response.Created(w, GroupEnvelope{Group: g.ToResponse(players)})
}

// GetByID handles GET /groups/{groupId}
// @Summary      Get group by ID
// @Description  Get a group together with its roster
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        groupId path int true "Group ID"
// @Success      200 {object} GroupEnvelope
// @Failure      401 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /groups/{groupId} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := request.PathID(r, "groupId")
	if err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	g, players, err := h.service.GetByIDWithPlayers(r.Context(), id)
	if err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	response.OK(w, GroupEnvelope{Group: g.ToResponse(players)})
}
