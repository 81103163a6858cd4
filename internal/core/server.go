// Package core provides the API chassis for the Raincheck service. It builds
// a chi router and enforces cross-cutting concerns -- panic recovery, request
// correlation, structured logging, metrics, and error handling -- before
// requests reach domain handlers.
package core

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"raincheck/internal/config"
)

// Server encapsulates the shared dependencies of the HTTP API, allowing easy
// injection during testing.
type Server struct {
	Config    *config.Config
	Logger    *slog.Logger
	Validator *Validator
	Metrics   *Metrics

	// HealthProbes are checked by GET /health. Registered by the entry point.
	HealthProbes []HealthProbe

	// V1RouteRegistrars mount domain handler routes under /v1. Populated by
	// the entry point to avoid import cycles between core and handlers.
	V1RouteRegistrars []func(chi.Router)

	router *chi.Mux
}

// NewServer initializes the chassis. The caller mounts routes afterwards via
// MountRoutes; this separation lets tests customize route registration.
func NewServer(cfg *config.Config, logger *slog.Logger, metrics *Metrics) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	return &Server{
		Config:    cfg,
		Logger:    logger,
		Validator: NewValidator(logger),
		Metrics:   metrics,
		router:    chi.NewRouter(),
	}, nil
}

// Handler returns the http.Handler for the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Router returns the underlying chi.Mux for route registration in tests.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Shutdown performs a graceful termination of server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.Info("server shutdown initiated")

	for _, probe := range s.HealthProbes {
		if closer, ok := probe.(interface{ Close() }); ok {
			closer.Close()
		}
	}

	s.Logger.Info("server shutdown complete")
	return nil
}
