package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-notebook/internal/logger"
)

const sessionKeyPrefix = "session:"

// SessionRepository is the Redis registry of live sessions.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

// Save registers a session for userID that expires after ttl.
func (r *SessionRepository) Save(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error {
	key := sessionKeyPrefix + sessionID
	err := r.client.Set(ctx, key, userID.String(), ttl).Err()

	logger.FromContext(ctx).Infow(
		"redis command",
		"key", key,
		"ttl", ttl,
		"error", err,
	)

	return err
}

// Exists reports whether the session is still registered.
func (r *SessionRepository) Exists(ctx context.Context, sessionID string) (bool, error) {
	key := sessionKeyPrefix + sessionID
	n, err := r.client.Exists(ctx, key).Result()

	logger.FromContext(ctx).Debugw(
		"redis command",
		"key", key,
		"result", n,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes the session. Deleting an unknown session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	key := sessionKeyPrefix + sessionID
	err := r.client.Del(ctx, key).Err()

	logger.FromContext(ctx).Infow(
		"redis command",
		"key", key,
		"result", "deleted",
		"error", err,
	)

	return err
}
