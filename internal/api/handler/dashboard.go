// Package handler implements the dashboard HTTP endpoints.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kiranshivaraju/gitpulse/internal/api/response"
	"github.com/kiranshivaraju/gitpulse/internal/backend"
	"github.com/kiranshivaraju/gitpulse/internal/dashboard"
	"github.com/kiranshivaraju/gitpulse/internal/fetch"
	"github.com/kiranshivaraju/gitpulse/internal/view"
	"github.com/kiranshivaraju/gitpulse/pkg/models"
)

// NewDashboardHandler returns an http.HandlerFunc for POST /api/v1/dashboard.
// Each request runs a fresh session to completion and returns its view.
func NewDashboardHandler(client backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.AnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		session := dashboard.NewSession(client)
		err := session.Run(r.Context(), req.Username)
		v := view.Build(session.Snapshot())
		if err != nil {
			status, code := classifyRunError(err)
			response.Error(w, status, code, v.Error, v)
			return
		}

		response.JSON(w, v)
	}
}

// classifyRunError maps a session failure to an HTTP status and error code.
func classifyRunError(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrEmptyUsername):
		return http.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, dashboard.ErrRunInProgress):
		return http.StatusConflict, "RUN_IN_PROGRESS"
	case fetch.IsTimeout(err):
		return http.StatusGatewayTimeout, "BACKEND_TIMEOUT"
	case errors.Is(err, fetch.ErrUnreachable):
		return http.StatusBadGateway, "BACKEND_UNREACHABLE"
	default:
		return http.StatusBadGateway, "BACKEND_ERROR"
	}
}
