package handlers

//go:generate mockgen -source=register.go -destination=register_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-notebook/internal/logger"
	"github.com/sbilibin2017/gw-notebook/internal/models"
	"github.com/sbilibin2017/gw-notebook/internal/services"
	"github.com/sbilibin2017/gw-notebook/internal/validators"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, req models.SignupRequest) (*models.Identity, error)
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new account. The email is lowercased; a taken username returns alternative suggestions.
// @Tags auth
// @Accept json
// @Produce json
// @Param signupRequest body models.SignupRequest true "User registration request"
// @Success 201 {object} models.SignupResponse "User successfully registered"
// @Failure 400 {object} models.UsernameTakenResponse "Validation failure, email taken, or username taken with suggestions"
// @Failure 429 {object} models.ErrorResponse "Too many requests"
// @Failure 500 {object} models.SignupErrorResponse "Failed to create user"
// @Router /auth/signup [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.SignupRequest

		if err := decodeJSON(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.SignupErrorResponse{
				Error: "Invalid request body",
			})
			return
		}

		ident, err := svc.Register(r.Context(), req)
		if err != nil {
			var (
				ruleErr *validators.RuleError
				taken   *services.UsernameTakenError
			)
			switch {
			case errors.As(err, &ruleErr):
				writeJSON(w, http.StatusBadRequest, models.SignupErrorResponse{Error: ruleErr.Message})
			case errors.As(err, &taken):
				suggestions := taken.Suggestions
				if suggestions == nil {
					suggestions = []string{}
				}
				writeJSON(w, http.StatusBadRequest, models.UsernameTakenResponse{
					Error:       "Username already exists",
					Suggestions: suggestions,
				})
			case errors.Is(err, services.ErrEmailAlreadyExists):
				writeJSON(w, http.StatusBadRequest, models.SignupErrorResponse{Error: "Email already exists"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeJSON(w, http.StatusInternalServerError, models.SignupErrorResponse{
					Error: "Failed to create user",
				})
			}
			return
		}

		writeJSON(w, http.StatusCreated, models.SignupResponse{
			Success: true,
			User:    *ident,
		})
	}
}
