package handlers

//go:generate mockgen -source=session.go -destination=session_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-notebook/internal/logger"
	"github.com/sbilibin2017/gw-notebook/internal/models"
	"github.com/sbilibin2017/gw-notebook/internal/services"
)

// Tokener extracts the session token from a request.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// SessionChecker resolves the current session with fresh account data.
type SessionChecker interface {
	Current(ctx context.Context, token string) (*models.Identity, error)
}

// SessionRevoker ends a session.
type SessionRevoker interface {
	Revoke(ctx context.Context, token string) error
}

// NewSessionHandler returns an HTTP handler that reports the current session.
// @Summary Current session
// @Description Reports whether the request carries a live session and, if so, the user
// @Tags auth
// @Produce json
// @Success 200 {object} models.SessionResponse
// @Failure 500 {object} models.ErrorResponse "Failed to check session"
// @Security BearerAuth
// @Router /auth/session [get]
func NewSessionHandler(tokener Tokener, sessions SessionChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := tokener.GetTokenFromRequest(r.Context(), r)
		if err != nil {
			writeJSON(w, http.StatusOK, models.SessionResponse{IsLoggedIn: false})
			return
		}

		ident, err := sessions.Current(r.Context(), token)
		switch {
		case errors.Is(err, services.ErrUnauthorized):
			writeJSON(w, http.StatusOK, models.SessionResponse{IsLoggedIn: false})
		case err != nil:
			logger.Log.Errorw("session check failed", "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to check session")
		default:
			writeJSON(w, http.StatusOK, models.SessionResponse{IsLoggedIn: true, User: ident})
		}
	}
}

// NewLogoutHandler returns an HTTP handler that ends the current session and clears the cookie.
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} models.LogoutResponse
// @Failure 500 {object} models.ErrorResponse "Failed to log out"
// @Security BearerAuth
// @Router /auth/logout [post]
func NewLogoutHandler(tokener Tokener, sessions SessionRevoker, cookie SessionCookie) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token, err := tokener.GetTokenFromRequest(r.Context(), r); err == nil {
			if err := sessions.Revoke(r.Context(), token); err != nil {
				logger.Log.Errorw("logout failed", "err", err)
				writeError(w, http.StatusInternalServerError, "Failed to log out")
				return
			}
		}

		cookie.clear(w)
		writeJSON(w, http.StatusOK, models.LogoutResponse{
			Success: true,
			Message: "Logged out successfully",
		})
	}
}
