package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"raincheck/internal/core"
	"raincheck/internal/types"
)

// NotificationServiceInterface defines the service contract for the
// notification history handler; *notifications.QueryService satisfies it.
type NotificationServiceInterface interface {
	ListNotifications(ctx context.Context, email string) ([]types.NotificationHistoryItem, error)
}

// NotificationHandler maps HTTP requests to the notification read path.
type NotificationHandler struct {
	service NotificationServiceInterface
	logger  *slog.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(svc NotificationServiceInterface, logger *slog.Logger) *NotificationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationHandler{service: svc, logger: logger}
}

// RegisterRoutes mounts the notification history endpoint onto the mux.
func (h *NotificationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListNotifications)
}

// notificationListResponse is the data payload for the history endpoint.
type notificationListResponse struct {
	Notifications []types.NotificationHistoryItem `json:"notifications"`
}

// HandleListNotifications handles GET /v1/notifications?email=...
// An email with no stored receipts yields an empty list with success status.
func (h *NotificationHandler) HandleListNotifications(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	items, err := h.service.ListNotifications(r.Context(), email)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{
		Data: notificationListResponse{Notifications: items},
	})
}
