// Package server wires the dashboard API into an HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kiranshivaraju/gitpulse/internal/api"
	"github.com/kiranshivaraju/gitpulse/internal/api/handler"
	"github.com/kiranshivaraju/gitpulse/internal/api/response"
	"github.com/kiranshivaraju/gitpulse/internal/backend"
	"github.com/kiranshivaraju/gitpulse/internal/config"
)

// ShutdownTimeout bounds how long in-flight requests may drain.
const ShutdownTimeout = 30 * time.Second

// NewHandler builds the routed API backed by client.
func NewHandler(cfg *config.Config, client backend.Client) http.Handler {
	return api.NewRouter(api.Dependencies{
		HealthHandler:    HealthHandler(cfg),
		DashboardHandler: handler.NewDashboardHandler(client),
		StreamHandler:    handler.NewStreamHandler(client),
	})
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config) error {
	client := backend.NewHTTPClient(cfg.Backend)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     NewHandler(cfg, client),
		ReadTimeout: 15 * time.Second,
		// A dashboard request spans both backend stages.
		WriteTimeout: cfg.Backend.ProfileTimeout + cfg.Backend.AITimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// HealthHandler reports liveness and the backend the server talks to.
func HealthHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, map[string]any{
			"status":  "ok",
			"env":     cfg.Server.Env,
			"backend": cfg.Backend.BaseURL,
		})
	}
}
