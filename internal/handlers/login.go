package handlers

//go:generate mockgen -source=login.go -destination=login_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sbilibin2017/gw-notebook/internal/logger"
	"github.com/sbilibin2017/gw-notebook/internal/models"
	"github.com/sbilibin2017/gw-notebook/internal/services"
)

// Authenticator checks login credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, req models.LoginRequest) (*models.Identity, error)
}

// SessionIssuer starts a session for an authenticated identity.
type SessionIssuer interface {
	Issue(ctx context.Context, ident models.Identity) (string, time.Time, error)
}

// NewLoginHandler returns an HTTP handler for user login.
// On success the session token is returned in the body and set as an HttpOnly cookie.
// @Summary User login
// @Description Authenticate by email or username and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body models.LoginRequest true "Login Request"
// @Success 200 {object} models.LoginResponse "Session started"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.ErrorResponse "Invalid credentials"
// @Failure 429 {object} models.ErrorResponse "Too many requests"
// @Failure 500 {object} models.ErrorResponse "Failed to login"
// @Router /auth/login [post]
func NewLoginHandler(auth Authenticator, sessions SessionIssuer, cookie SessionCookie) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest

		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		ident, err := auth.Authenticate(r.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				writeError(w, http.StatusUnauthorized, "Invalid credentials")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Failed to login")
			}
			return
		}

		token, expiresAt, err := sessions.Issue(r.Context(), *ident)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to login")
			return
		}

		cookie.set(w, token, expiresAt)
		writeJSON(w, http.StatusOK, models.LoginResponse{
			Success: true,
			Message: "Login successful",
			Token:   token,
			User:    *ident,
		})
	}
}
