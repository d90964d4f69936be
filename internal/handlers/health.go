package handlers

//go:generate mockgen -source=health.go -destination=health_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-notebook/internal/logger"
	"github.com/sbilibin2017/gw-notebook/internal/models"
	"github.com/sbilibin2017/gw-notebook/internal/services"
)

// Pinger checks connectivity to the database.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// SessionResolver resolves a session token.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*models.Identity, error)
}

// NewHealthHandler returns an HTTP handler reporting database connectivity.
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Failure 500 {object} models.HealthResponse
// @Router /health [get]
func NewHealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			logger.Log.Errorw("health check failed", "err", err)
			writeJSON(w, http.StatusInternalServerError, models.HealthResponse{
				Status: "unhealthy",
				Error:  "Database connection failed",
			})
			return
		}

		writeJSON(w, http.StatusOK, models.HealthResponse{
			Status:    "healthy",
			Timestamp: timestamp(),
		})
	}
}

// NewAuthHealthHandler returns an HTTP handler reporting whether the request has a live session.
// @Summary Auth health
// @Tags health
// @Produce json
// @Success 200 {object} models.AuthHealthResponse
// @Failure 500 {object} models.AuthHealthResponse
// @Router /auth/health [get]
func NewAuthHealthHandler(tokener Tokener, sessions SessionResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hasSession := false

		if token, err := tokener.GetTokenFromRequest(r.Context(), r); err == nil {
			_, err := sessions.Resolve(r.Context(), token)
			switch {
			case err == nil:
				hasSession = true
			case !errors.Is(err, services.ErrUnauthorized):
				logger.Log.Errorw("auth health check failed", "err", err)
				writeJSON(w, http.StatusInternalServerError, models.AuthHealthResponse{
					Status:    "error",
					Message:   "Auth system error",
					Timestamp: timestamp(),
				})
				return
			}
		}

		writeJSON(w, http.StatusOK, models.AuthHealthResponse{
			Status: "healthy",
			Auth: &models.AuthHealth{
				HasSession: hasSession,
				Timestamp:  timestamp(),
			},
		})
	}
}
