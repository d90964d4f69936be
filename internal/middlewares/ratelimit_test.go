package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang/mock/gomock"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-notebook/internal/repositories"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitMiddleware_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	handler := RateLimitMiddleware(repositories.NewRateLimitRepository(client), "login", 2, time.Minute)(okHandler())

	do := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1111").Code)
	assert.Equal(t, http.StatusOK, do("10.0.0.1:2222").Code)

	blocked := do("10.0.0.1:3333")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "60", blocked.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"Too many requests, please try again later"}`, blocked.Body.String())

	// other clients keep their own budget
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1111").Code)

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, do("10.0.0.1:4444").Code)
}

func TestRateLimitMiddleware_FailsOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	counter := NewMockRateCounter(ctrl)
	counter.EXPECT().Incr(gomock.Any(), "signup:192.0.2.1", time.Minute).Return(int64(0), errors.New("redis down"))

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	rr := httptest.NewRecorder()

	RateLimitMiddleware(counter, "signup", 1, time.Minute)(okHandler()).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	counter := NewMockRateCounter(ctrl)
	rr := httptest.NewRecorder()

	RateLimitMiddleware(counter, "signup", 0, time.Minute)(okHandler()).
		ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
