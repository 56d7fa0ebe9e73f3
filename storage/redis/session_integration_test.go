//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"taxifleet/pkg/models"
	"taxifleet/storage"
)

func TestSessionRepoAgainstRedis(t *testing.T) {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	addr, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := goredis.ParseURL(addr)
	require.NoError(t, err)
	client := goredis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	repo := NewSessionRepo(client)
	now := time.Now()
	require.NoError(t, repo.Create(ctx, &models.Session{
		ID:        "5f1d7a2e-3c1b-4e8e-9d0a-1b2c3d4e5f60",
		DriverID:  7,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}))

	got, err := repo.Touch(ctx, "5f1d7a2e-3c1b-4e8e-9d0a-1b2c3d4e5f60")
	require.NoError(t, err)
	require.Equal(t, int64(7), got.DriverID)
	require.Equal(t, 1, got.Visits)

	ttl, err := client.TTL(ctx, key(got.ID)).Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))

	require.NoError(t, repo.Delete(ctx, got.ID))
	_, err = repo.Touch(ctx, got.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
	_, err = repo.Get(ctx, got.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}
