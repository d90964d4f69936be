package middlewares

//go:generate mockgen -source=ratelimit.go -destination=ratelimit_mock.go -package=middlewares

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/sbilibin2017/gw-notebook/internal/logger"
)

// RateCounter counts hits per key within a fixed window.
type RateCounter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimitMiddleware allows at most limit requests per client address and
// scope within window. A limit of zero or less disables it. When the counter
// is unavailable the request is let through.
func RateLimitMiddleware(counter RateCounter, scope string, limit int64, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := scope + ":" + clientAddr(r)

			count, err := counter.Incr(r.Context(), key, window)
			if err != nil {
				logger.Log.Warnw("rate limit check failed, allowing request", "key", key, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if count > limit {
				logger.Log.Infow("rate limit exceeded", "key", key, "count", count)
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				writeError(w, http.StatusTooManyRequests, "Too many requests, please try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
