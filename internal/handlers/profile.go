package handlers

//go:generate mockgen -source=profile.go -destination=profile_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-notebook/internal/logger"
	"github.com/sbilibin2017/gw-notebook/internal/middlewares"
	"github.com/sbilibin2017/gw-notebook/internal/models"
	"github.com/sbilibin2017/gw-notebook/internal/services"
	"github.com/sbilibin2017/gw-notebook/internal/validators"
)

// ProfileUpdater edits an account on behalf of the caller.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, caller models.Identity, userID uuid.UUID, req models.ProfileUpdateRequest) (*models.ProfileUpdateResult, error)
}

func writeProfileError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ProfileUpdateResponse{Success: false, Error: msg})
}

// NewProfileHandler returns an HTTP handler that updates the caller's own profile.
// @Summary Update profile
// @Description Changes username, email or password. A new password requires the current one.
// @Tags profile
// @Accept json
// @Produce json
// @Param userId path string true "Account id, must match the session"
// @Param profileUpdateRequest body models.ProfileUpdateRequest true "Fields to change"
// @Success 200 {object} models.ProfileUpdateResponse
// @Failure 400 {object} models.ProfileUpdateResponse "Validation failure, duplicate or wrong current password"
// @Failure 401 {object} models.ProfileUpdateResponse "Unauthorized"
// @Failure 404 {object} models.ProfileUpdateResponse "User not found"
// @Failure 500 {object} models.ProfileUpdateResponse "Failed to update profile"
// @Security BearerAuth
// @Router /profile/{userId} [put]
func NewProfileHandler(svc ProfileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := middlewares.GetIdentityFromContext(r.Context())
		if !ok {
			writeProfileError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		// An unparsable id cannot belong to the caller.
		userID, err := uuid.Parse(chi.URLParam(r, "userId"))
		if err != nil {
			writeProfileError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req models.ProfileUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeProfileError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		res, err := svc.UpdateProfile(r.Context(), caller, userID, req)
		if err != nil {
			var ruleErr *validators.RuleError
			switch {
			case errors.As(err, &ruleErr):
				writeProfileError(w, http.StatusBadRequest, ruleErr.Message)
			case errors.Is(err, services.ErrUnauthorized):
				writeProfileError(w, http.StatusUnauthorized, "Unauthorized")
			case errors.Is(err, services.ErrUserNotFound):
				writeProfileError(w, http.StatusNotFound, "User not found")
			case errors.Is(err, services.ErrEmailAlreadyExists):
				writeProfileError(w, http.StatusBadRequest, "Email already exists")
			case errors.Is(err, services.ErrUsernameAlreadyExists):
				writeProfileError(w, http.StatusBadRequest, "Username already exists")
			case errors.Is(err, services.ErrCurrentPasswordRequired):
				writeProfileError(w, http.StatusBadRequest, "Current password is required")
			case errors.Is(err, services.ErrInvalidCurrentPassword):
				writeProfileError(w, http.StatusBadRequest, "Current password is incorrect")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeProfileError(w, http.StatusInternalServerError, "Failed to update profile")
			}
			return
		}

		user := res.User
		if !res.Changed {
			writeJSON(w, http.StatusOK, models.ProfileUpdateResponse{
				Success: true,
				Message: "No changes to update",
				User:    &user,
			})
			return
		}

		writeJSON(w, http.StatusOK, models.ProfileUpdateResponse{
			Success: true,
			Message: "Profile updated successfully",
			User:    &user,
		})
	}
}
