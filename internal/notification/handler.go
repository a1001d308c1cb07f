package notification

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/tableboard/pkg/apperror"
	"github.com/fkhayef/tableboard/pkg/middleware"
	"github.com/fkhayef/tableboard/pkg/request"
	"github.com/fkhayef/tableboard/pkg/response"
)

// Handler handles HTTP requests for notification operations
type Handler struct {
	service *Service
}

// NewHandler creates a new notification handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for notification endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/unread-count", h.UnreadCount)
	r.Post("/{id}/read", h.MarkAsRead)
	r.Post("/read-all", h.MarkAllAsRead)

	return r
}

// List handles GET /notifications
// @Summary      List notifications
// @Description  Page through the caller's inbox, newest first
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number"
// @Param        perPage query int false "Page size"
// @Param        unreadOnly query bool false "Only unread notifications"
// @Success      200 {object} ListEnvelope
// @Failure      401 {object} response.ErrorBody
// @Router       /notifications [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(r.Context(), w, apperror.Unauthorized("unauthorized"))
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("perPage"))
	unreadOnly, _ := strconv.ParseBool(q.Get("unreadOnly"))

	items, meta, err := h.service.List(r.Context(), userID, Page{Page: page, PerPage: perPage, UnreadOnly: unreadOnly})
	if err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	out := make([]*NotificationResponse, len(items))
	for i, n := range items {
		out[i] = n.ToResponse()
	}
	response.OK(w, ListEnvelope{Notifications: out, Meta: meta})
}

// UnreadCount handles GET /notifications/unread-count
// @Summary      Count unread notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} UnreadCountResponse
// @Failure      401 {object} response.ErrorBody
// @Router       /notifications/unread-count [get]
func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(r.Context(), w, apperror.Unauthorized("unauthorized"))
		return
	}

	count, err := h.service.UnreadCount(r.Context(), userID)
	if err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	response.OK(w, UnreadCountResponse{UnreadCount: count})
}

// MarkAsRead handles POST /notifications/{id}/read
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Notification ID"
// @Success      200 {object} response.Empty
// @Failure      401 {object} response.ErrorBody
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /notifications/{id}/read [post]
func (h *Handler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(r.Context(), w, apperror.Unauthorized("unauthorized"))
		return
	}

	id, err := request.PathID(r, "id")
	if err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	if err := h.service.MarkAsRead(r.Context(), id, userID); err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	response.OK(w, response.Empty{})
}

// MarkAllAsRead handles POST /notifications/read-all
// @Summary      Mark every notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Empty
// @Failure      401 {object} response.ErrorBody
// @Router       /notifications/read-all [post]
func (h *Handler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(r.Context(), w, apperror.Unauthorized("unauthorized"))
		return
	}

	if err := h.service.MarkAllAsRead(r.Context(), userID); err != nil {
		response.Error(r.Context(), w, err)
		return
	}

	response.OK(w, response.Empty{})
}
