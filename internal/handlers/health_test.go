package handlers

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

func TestHealthHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := NewMockPinger(ctrl)
	handler := NewHealthHandler(mockDB)

	t.Run("healthy", func(t *testing.T) {
		mockDB.EXPECT().PingContext(gomock.Any()).Return(nil)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp models.HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp.Status)
		assert.NotEmpty(t, resp.Timestamp)
		assert.Empty(t, resp.Error)
	})

	t.Run("database down", func(t *testing.T) {
		mockDB.EXPECT().PingContext(gomock.Any()).Return(errors.New("connection refused"))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"status":"unhealthy","error":"Database connection failed"}`, w.Body.String())
	})
}

func TestAuthHealthHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTokener := NewMockTokener(ctrl)
	mockSessions := NewMockSessionResolver(ctrl)
	handler := NewAuthHealthHandler(mockTokener, mockSessions)

	tests := []struct {
		name           string
		mockSetup      func()
		expectedCode   int
		expectedStatus string
		wantSession    bool
	}{
		{
			name: "no token",
			mockSetup: func() {
				mockTokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("", errors.New("missing token"))
			},
			expectedCode:   http.StatusOK,
			expectedStatus: "healthy",
		},
		{
			name: "live session",
			mockSetup: func() {
				mockTokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("tok", nil)
				mockSessions.EXPECT().Resolve(gomock.Any(), "tok").Return(&models.Identity{UserID: uuid.New()}, nil)
			},
			expectedCode:   http.StatusOK,
			expectedStatus: "healthy",
			wantSession:    true,
		},
		{
			name: "expired session",
			mockSetup: func() {
				mockTokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("tok", nil)
				mockSessions.EXPECT().Resolve(gomock.Any(), "tok").Return(nil, services.ErrUnauthorized)
			},
			expectedCode:   http.StatusOK,
			expectedStatus: "healthy",
		},
		{
			name: "session store down",
			mockSetup: func() {
				mockTokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("tok", nil)
				mockSessions.EXPECT().Resolve(gomock.Any(), "tok").Return(nil, errors.New("redis down"))
			},
			expectedCode:   http.StatusInternalServerError,
			expectedStatus: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/health", nil))

			require.Equal(t, tt.expectedCode, w.Code)
			var resp models.AuthHealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedStatus, resp.Status)

			if tt.expectedCode != http.StatusOK {
				assert.Nil(t, resp.Auth)
				assert.Equal(t, "Auth system error", resp.Message)
				return
			}
			require.NotNil(t, resp.Auth)
			assert.Equal(t, tt.wantSession, resp.Auth.HasSession)
			assert.NotEmpty(t, resp.Auth.Timestamp)
		})
	}
}
