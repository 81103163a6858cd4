// Package handlers contains the HTTP handler implementations for the
// Raincheck API.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"raincheck/internal/alert"
	"raincheck/internal/core"
	"raincheck/internal/types"
)

// AlertServiceInterface defines the service contract for the alert handler.
// Defined locally to avoid tight coupling per the handler injection pattern;
// *alert.Service satisfies it.
type AlertServiceInterface interface {
	HandleAlert(ctx context.Context, req types.AlertRequest) (alert.Outcome, error)
}

// AlertHandler maps HTTP requests to the alert pipeline.
type AlertHandler struct {
	service AlertServiceInterface
	logger  *slog.Logger
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(svc AlertServiceInterface, logger *slog.Logger) *AlertHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AlertHandler{service: svc, logger: logger}
}

// RegisterRoutes mounts the alert endpoint onto the mux.
func (h *AlertHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.HandleCreateAlert)
}

// HandleCreateAlert handles POST /v1/alerts.
//
// On success the envelope data carries the forecast code, description, and
// whether a warning was dispatched. A failed receipt write after a successful
// dispatch does not fail the request; it is reported via meta.warnings.
func (h *AlertHandler) HandleCreateAlert(w http.ResponseWriter, r *http.Request) {
	var req types.AlertRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}

	outcome, err := h.service.HandleAlert(r.Context(), req)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	resp := core.APIResponse{Data: outcome.Result}
	if outcome.StorageErr != nil {
		resp.Meta = &types.ResponseMeta{
			Warnings: []string{"notification was sent but its audit record could not be written"},
		}
	}

	core.JSON(w, r, http.StatusOK, resp)
}
