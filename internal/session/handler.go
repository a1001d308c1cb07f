package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/tableboard/pkg/apperror"
	"github.com/fkhayef/tableboard/pkg/middleware"
	"github.com/fkhayef/tableboard/pkg/request"
	"github.com/fkhayef/tableboard/pkg/response"
)

// Handler handles HTTP requests for session operations
type Handler struct {
	service *Service
}

// NewHandler creates a new session handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for session endpoints
func (h *Handler) Routes(auth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.With(auth).Delete("/", h.Delete)

	return r
}

// Create handles POST /sessions
// @Summary      Log in
// @Description  Exchange email and password for a bearer token
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      201 {object} LoginResponse
// @Failure      400 {object} response.ErrorBody
// @Router       /sessions [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := request.Decode(r, &req); err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	u, token, err := h.service.Login(r.Context(), &req)
	if err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	response.Created(w, LoginResponse{User: u.ToResponse(), Token: token})
}

// Delete handles DELETE /sessions
// @Summary      Log out
// @Description  Revoke the bearer token used for this request
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Empty
// @Failure      401 {object} response.ErrorBody
// @Router       /sessions [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Error(r.Context(), w, apperror.Unauthorized("unauthorized"))
		return
	}

	if err := h.service.Logout(r.Context(), identity); err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	response.OK(w, response.Empty{})
}
