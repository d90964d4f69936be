package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-notebook/internal/middlewares"
	"github.com/sbilibin2017/gw-notebook/internal/models"
	"github.com/sbilibin2017/gw-notebook/internal/services"
	"github.com/sbilibin2017/gw-notebook/internal/validators"
	"github.com/stretchr/testify/assert"
)

// routed attaches chi URL params and, when ident is non-nil, the caller identity.
func routed(r *http.Request, ident *models.Identity, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	if ident != nil {
		ctx = middlewares.WithIdentity(ctx, *ident)
	}
	return r.WithContext(ctx)
}

func TestProfileHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockProfileUpdater(ctrl)

	caller := models.Identity{UserID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	updated := models.Identity{UserID: caller.UserID, Username: "alice2", Email: "alice@example.com"}
	req := models.ProfileUpdateRequest{Username: "alice2"}

	svcError := func(err error) func() {
		return func() {
			mockSvc.EXPECT().UpdateProfile(gomock.Any(), caller, caller.UserID, req).Return(nil, err)
		}
	}

	tests := []struct {
		name         string
		ident        *models.Identity
		userID       string
		inputBody    any
		mockSetup    func()
		expectedCode int
		expectedBody any
	}{
		{
			name:      "updated",
			ident:     &caller,
			userID:    caller.UserID.String(),
			inputBody: req,
			mockSetup: func() {
				mockSvc.EXPECT().UpdateProfile(gomock.Any(), caller, caller.UserID, req).
					Return(&models.ProfileUpdateResult{Changed: true, User: updated}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: models.ProfileUpdateResponse{Success: true, Message: "Profile updated successfully", User: &updated},
		},
		{
			name:      "nothing changed",
			ident:     &caller,
			userID:    caller.UserID.String(),
			inputBody: req,
			mockSetup: func() {
				mockSvc.EXPECT().UpdateProfile(gomock.Any(), caller, caller.UserID, req).
					Return(&models.ProfileUpdateResult{Changed: false, User: caller}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: models.ProfileUpdateResponse{Success: true, Message: "No changes to update", User: &caller},
		},
		{
			name:      "empty body returns current profile",
			ident:     &caller,
			userID:    caller.UserID.String(),
			inputBody: "{}",
			mockSetup: func() {
				mockSvc.EXPECT().UpdateProfile(gomock.Any(), caller, caller.UserID, models.ProfileUpdateRequest{}).
					Return(&models.ProfileUpdateResult{Changed: false, User: caller}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: models.ProfileUpdateResponse{Success: true, Message: "No changes to update", User: &caller},
		},
		{
			name:         "no identity",
			userID:       caller.UserID.String(),
			inputBody:    req,
			mockSetup:    func() {},
			expectedCode: http.StatusUnauthorized,
			expectedBody: models.ProfileUpdateResponse{Error: "Unauthorized"},
		},
		{
			name:         "unparsable user id",
			ident:        &caller,
			userID:       "not-a-uuid",
			inputBody:    req,
			mockSetup:    func() {},
			expectedCode: http.StatusUnauthorized,
			expectedBody: models.ProfileUpdateResponse{Error: "Unauthorized"},
		},
		{
			name:         "invalid JSON",
			ident:        &caller,
			userID:       caller.UserID.String(),
			inputBody:    "{invalid json}",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: models.ProfileUpdateResponse{Error: "Invalid request body"},
		},
		{
			name:         "validation failure",
			ident:        &caller,
			userID:       caller.UserID.String(),
			inputBody:    req,
			mockSetup:    svcError(&validators.RuleError{Message: "Please enter a valid email address"}),
			expectedCode: http.StatusBadRequest,
			expectedBody: models.ProfileUpdateResponse{Error: "Please enter a valid email address"},
		},
		{
			name:         "other account",
			ident:        &caller,
			userID:       caller.UserID.String(),
			inputBody:    req,
			mockSetup:    svcError(services.ErrUnauthorized),
			expectedCode: http.StatusUnauthorized,
			expectedBody: models.ProfileUpdateResponse{Error: "Unauthorized"},
		},
		{
			name:         "user gone",
			ident:        &caller,
			userID:       caller.UserID.String(),
			inputBody:    req,
			mockSetup:    svcError(services.ErrUserNotFound),
			expectedCode: http.StatusNotFound,
			expectedBody: models.ProfileUpdateResponse{Error: "User not found"},
		},
		{
			name:         "email taken",
			ident:        &caller,
			userID:       caller.UserID.String(),
			inputBody:    req,
			mockSetup:    svcError(services.ErrEmailAlreadyExists),
			expectedCode: http.StatusBadRequest,
			expectedBody: models.ProfileUpdateResponse{Error: "Email already exists"},
		},
		{
			name:         "username taken",
			ident:        &caller,
			userID:       caller.UserID.String(),
			inputBody:    req,
			mockSetup:    svcError(services.ErrUsernameAlreadyExists),
			expectedCode: http.StatusBadRequest,
			expectedBody: models.ProfileUpdateResponse{Error: "Username already exists"},
		},
		{
			name:         "current password missing",
			ident:        &caller,
			userID:       caller.UserID.String(),
			inputBody:    req,
			mockSetup:    svcError(services.ErrCurrentPasswordRequired),
			expectedCode: http.StatusBadRequest,
			expectedBody: models.ProfileUpdateResponse{Error: "Current password is required"},
		},
		{
			name:         "current password wrong",
			ident:        &caller,
			userID:       caller.UserID.String(),
			inputBody:    req,
			mockSetup:    svcError(services.ErrInvalidCurrentPassword),
			expectedCode: http.StatusBadRequest,
			expectedBody: models.ProfileUpdateResponse{Error: "Current password is incorrect"},
		},
		{
			name:         "internal error",
			ident:        &caller,
			userID:       caller.UserID.String(),
			inputBody:    req,
			mockSetup:    svcError(errors.New("database error")),
			expectedCode: http.StatusInternalServerError,
			expectedBody: models.ProfileUpdateResponse{Error: "Failed to update profile"},
		},
	}

	handler := NewProfileHandler(mockSvc)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			r := httptest.NewRequest(http.MethodPut, "/profile/"+tt.userID, jsonBody(t, tt.inputBody))
			r = routed(r, tt.ident, map[string]string{"userId": tt.userID})
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.JSONEq(t, mustJSON(t, tt.expectedBody), w.Body.String())
		})
	}
}
