package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-notebook/internal/logger"
)

const rateLimitKeyPrefix = "rate_limit:"

// incrWindow bumps the counter and starts the window on the first hit.
// A counter that lost its TTL gets one again.
// KEYS[1]: counter key
// ARGV[1]: window in seconds
var incrWindow = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 or redis.call("TTL", KEYS[1]) == -1 then
    redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimitRepository keeps fixed-window request counters in Redis.
type RateLimitRepository struct {
	client *redis.Client
}

func NewRateLimitRepository(client *redis.Client) *RateLimitRepository {
	return &RateLimitRepository{client: client}
}

// Incr bumps the counter for key and returns the new value.
func (r *RateLimitRepository) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	fullKey := rateLimitKeyPrefix + key
	seconds := max(int64(window/time.Second), 1)

	count, err := incrWindow.Run(ctx, r.client, []string{fullKey}, seconds).Int64()

	logger.FromContext(ctx).Debugw(
		"redis command",
		"key", fullKey,
		"result", count,
		"error", err,
	)

	return count, err
}
