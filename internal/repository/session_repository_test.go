package repository

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-api/internal/models"
)

func unreachableRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestSessionRepositoryRejectsExpiredSession(t *testing.T) {
	repo := NewSessionRepository(unreachableRedis(t))

	err := repo.Create(context.Background(), &models.Session{ID: "s1", ExpiresAt: time.Now().Add(-time.Minute)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already expired")
}

func TestSessionRepositoryWrapsRedisErrors(t *testing.T) {
	repo := NewSessionRepository(unreachableRedis(t))
	ctx := context.Background()

	err := repo.Create(ctx, &models.Session{ID: "s1", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis set session")

	_, err = repo.Exists(ctx, "s1")
	assert.ErrorContains(t, err, "redis exists session")

	assert.ErrorContains(t, repo.Delete(ctx, "s1"), "redis delete session")
	assert.ErrorContains(t, repo.PingContext(ctx), "redis ping")
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "timetable:session:abc", sessionKey("abc"))
}
