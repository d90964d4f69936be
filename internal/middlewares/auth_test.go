package middlewares

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-notebook/internal/models"
	"github.com/sbilibin2017/gw-notebook/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ident := &models.Identity{UserID: uuid.New(), Username: "alice", Email: "alice@example.com"}

	tests := []struct {
		name             string
		mockSetup        func(tk *MockTokener, sr *MockSessionResolver)
		expectedStatus   int
		expectedError    string
		expectNextCalled bool
	}{
		{
			name: "NoToken",
			mockSetup: func(tk *MockTokener, sr *MockSessionResolver) {
				tk.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("", errors.New("no token"))
			},
			expectedStatus:   http.StatusUnauthorized,
			expectedError:    "Unauthorized",
			expectNextCalled: false,
		},
		{
			name: "InvalidToken",
			mockSetup: func(tk *MockTokener, sr *MockSessionResolver) {
				tk.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("sometoken", nil)
				sr.EXPECT().Resolve(gomock.Any(), "sometoken").
					Return(nil, services.ErrUnauthorized)
			},
			expectedStatus:   http.StatusUnauthorized,
			expectedError:    "Unauthorized",
			expectNextCalled: false,
		},
		{
			name: "SessionStoreDown",
			mockSetup: func(tk *MockTokener, sr *MockSessionResolver) {
				tk.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("sometoken", nil)
				sr.EXPECT().Resolve(gomock.Any(), "sometoken").
					Return(nil, errors.New("redis down"))
			},
			expectedStatus:   http.StatusInternalServerError,
			expectedError:    "Internal server error",
			expectNextCalled: false,
		},
		{
			name: "ValidToken",
			mockSetup: func(tk *MockTokener, sr *MockSessionResolver) {
				tk.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				sr.EXPECT().Resolve(gomock.Any(), "validtoken").
					Return(ident, nil)
			},
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokener := NewMockTokener(ctrl)
			resolver := NewMockSessionResolver(ctrl)
			tt.mockSetup(tokener, resolver)

			nextCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				got, ok := GetIdentityFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, *ident, got)
				w.WriteHeader(http.StatusOK)
			})

			handler := AuthMiddleware(tokener, resolver)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNextCalled, nextCalled)

			if tt.expectedError != "" {
				var body models.ErrorResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
				assert.Equal(t, tt.expectedError, body.Error)
			}
		})
	}
}

func TestGetIdentityFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetIdentityFromContext(req.Context())
	assert.False(t, ok)
}
