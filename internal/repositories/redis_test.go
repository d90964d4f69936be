package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestSessionRepository(t *testing.T) {
	mr, client := newMiniRedis(t)
	repo := NewSessionRepository(client)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repo.Save(ctx, "abc", userID, time.Hour))

	val, err := mr.Get("session:abc")
	require.NoError(t, err)
	assert.Equal(t, userID.String(), val)
	assert.Equal(t, time.Hour, mr.TTL("session:abc"))

	ok, err := repo.Exists(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.Delete(ctx, "abc"))
	ok, err = repo.Exists(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, repo.Delete(ctx, "never-existed"))
}

func TestSessionRepository_Expiry(t *testing.T) {
	mr, client := newMiniRedis(t)
	repo := NewSessionRepository(client)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "short", uuid.New(), time.Minute))
	mr.FastForward(2 * time.Minute)

	ok, err := repo.Exists(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionRepository_Unavailable(t *testing.T) {
	mr, client := newMiniRedis(t)
	repo := NewSessionRepository(client)
	mr.Close()

	_, err := repo.Exists(context.Background(), "abc")
	assert.Error(t, err)
}

func TestRateLimitRepository_Incr(t *testing.T) {
	mr, client := newMiniRedis(t)
	repo := NewRateLimitRepository(client)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		n, err := repo.Incr(ctx, "login:1.2.3.4", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
	assert.Equal(t, time.Minute, mr.TTL("rate_limit:login:1.2.3.4"))

	mr.FastForward(61 * time.Second)

	n, err := repo.Incr(ctx, "login:1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRateLimitRepository_RestoresMissingTTL(t *testing.T) {
	mr, client := newMiniRedis(t)
	repo := NewRateLimitRepository(client)

	require.NoError(t, mr.Set("rate_limit:signup:5.6.7.8", "4"))

	n, err := repo.Incr(context.Background(), "signup:5.6.7.8", 30*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.Equal(t, 30*time.Second, mr.TTL("rate_limit:signup:5.6.7.8"))
}

func TestRateLimitRepository_Unavailable(t *testing.T) {
	mr, client := newMiniRedis(t)
	repo := NewRateLimitRepository(client)
	mr.Close()

	_, err := repo.Incr(context.Background(), "login:1.2.3.4", time.Minute)
	assert.Error(t, err)
}
