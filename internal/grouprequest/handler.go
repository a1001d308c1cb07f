package grouprequest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/tableboard/pkg/apperror"
	"github.com/fkhayef/tableboard/pkg/middleware"
	"github.com/fkhayef/tableboard/pkg/request"
	"github.com/fkhayef/tableboard/pkg/response"
)

// Handler handles HTTP requests for membership requests
type Handler struct {
	service *Service
}

// NewHandler creates a new request handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router mounted at /groups/{groupId}/requests
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/{requestId}/accept", h.Accept)
	r.Delete("/{requestId}", h.Reject)

	return r
}

// List handles GET /groups/{groupId}/requests
// @Summary      List pending requests
// @Description  List every pending request for groups run by the given master. The group in the path does not filter.
// @Tags         group-requests
// @Produce      json
// @Security     BearerAuth
// @Param        groupId path int true "Group ID"
// @Param        master query int true "Master user ID"
// @Success      200 {object} ListEnvelope
// @Failure      401 {object} response.ErrorBody
// @Failure      422 {object} response.ErrorBody
// @Router       /groups/{groupId}/requests [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	masterID, err := strconv.ParseInt(r.URL.Query().Get("master"), 10, 64)
	if err != nil {
		response.Error(r.Context(), w, ErrMasterRequired)
		return
	}

	listings, err := h.service.List(r.Context(), masterID)
	if err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	out := make([]*ListingResponse, len(listings))
	for i, l := range listings {
		out[i] = l.ToResponse()
	}
	response.OK(w, ListEnvelope{GroupRequests: out})
}

// Create handles POST /groups/{groupId}/requests
// @Summary      Request to join a group
// @Description  File a pending membership request for the caller
// @Tags         group-requests
// @Produce      json
// @Security     BearerAuth
// @Param        groupId path int true "Group ID"
// @Success      201 {object} RequestEnvelope
// @Failure      401 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Failure      409 {object} response.ErrorBody
// @Failure      422 {object} response.ErrorBody
// @Router       /groups/{groupId}/requests [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(r.Context(), w, apperror.Unauthorized("unauthorized"))
		return
	}

	groupID, err := request.PathID(r, "groupId")
	if err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	req, err := h.service.Create(r.Context(), groupID, callerID)
	if err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	response.Created(w, RequestEnvelope{GroupRequest: req.ToResponse()})
}

// Accept handles POST /groups/{groupId}/requests/{requestId}/accept
// @Summary      Accept a request
// @Description  Group master admits the requester to the roster
// @Tags         group-requests
// @Produce      json
// @Security     BearerAuth
// @Param        groupId path int true "Group ID"
// @Param        requestId path int true "Request ID"
// @Success      200 {object} RequestEnvelope
// @Failure      401 {object} response.ErrorBody
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /groups/{groupId}/requests/{requestId}/accept [post]
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	callerID, groupID, requestID, err := targetOf(r)
	if err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	req, err := h.service.Accept(r.Context(), groupID, requestID, callerID)
	if err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	response.OK(w, RequestEnvelope{GroupRequest: req.ToResponse()})
}

// Reject handles DELETE /groups/{groupId}/requests/{requestId}
// @Summary      Reject a request
// @Description  Group master discards a membership request
// @Tags         group-requests
// @Produce      json
// @Security     BearerAuth
// @Param        groupId path int true "Group ID"
// @Param        requestId path int true "Request ID"
// @Success      200 {object} response.Empty
// @Failure      401 {object} response.ErrorBody
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /groups/{groupId}/requests/{requestId} [delete]
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	callerID, groupID, requestID, err := targetOf(r)
	if err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	if err := h.service.Reject(r.Context(), groupID, requestID, callerID); err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	response.OK(w, response.Empty{})
}

func targetOf(r *http.Request) (callerID, groupID, requestID int64, err error) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		return 0, 0, 0, apperror.Unauthorized("unauthorized")
	}
	if groupID, err = request.PathID(r, "groupId"); err != nil {
		return 0, 0, 0, err
	}
	if requestID, err = request.PathID(r, "requestId"); err != nil {
		return 0, 0, 0, err
	}
	return callerID, groupID, requestID, nil
}
