package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/tableboard/pkg/request"
	"github.com/fkhayef/tableboard/pkg/response"
)

// Handler handles HTTP requests for user operations
type Handler struct {
	service   *Service
	validator request.Validator
}

// NewHandler creates a new user handler with service dependency injected
func NewHandler(service *Service, validator request.Validator) *Handler {
	return &Handler{service: service, validator: validator}
}

// Routes returns the router for user endpoints. Registration is public,
// reads and updates go through auth.
func (h *Handler) Routes(auth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.With(auth).Get("/{id}", h.GetByID)
	r.With(auth).Put("/{id}", h.Update)

	return r
}

// Create handles POST /users
// @Summary      Register a user
// @Description  Create a new user with email, username and password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "User creation request"
// @Success      201 {object} UserEnvelope
// @Failure      409 {object} response.ErrorBody
// @Failure      422 {object} response.ErrorBody
// @Router       /users [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := request.Bind(r, h.validator, &req); err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	user, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	response.Created(w, UserEnvelope{User: user.ToResponse()})
}

// GetByID handles GET /users/{id}
// @Summary      Get user by ID
// @Description  Get a single user by their ID
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      200 {object} UserEnvelope
// @Failure      401 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /users/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := request.PathID(r, "id")
	if err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	user, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	response.OK(w, UserEnvelope{User: user.ToResponse()})
}

// Update handles PUT /users/{id}
// @Summary      Update a user
// @Description  Replace email and password, and the avatar when given
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Param        request body UpdateUserRequest true "User update request"
// @Success      200 {object} UserEnvelope
// @Failure      401 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Failure      409 {object} response.ErrorBody
// @Failure      422 {object} response.ErrorBody
// @Router       /users/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := request.Bind(r, h.validator, &req); err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	id, err := request.PathID(r, "id")
	if err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	user, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	response.OK(w, UserEnvelope{User: user.ToResponse()})
}
