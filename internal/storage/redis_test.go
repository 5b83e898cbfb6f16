//go:build integration

package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/ZTormDev/pos/internal/storage"
)

func newRedisStore(t *testing.T) *storage.RedisStore {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	st, err := storage.NewRedis(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestRedisStoreRoundTrip(t *testing.T) {
	st := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, st.Ping(ctx))

	_, err := st.Load(ctx, storage.KeyMovements)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, st.Save(ctx, storage.KeyMovements, []byte(`[]`)))

	blob, err := st.Load(ctx, storage.KeyMovements)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), blob)
}

func TestRedisStoreRejectsBadURL(t *testing.T) {
	_, err := storage.NewRedis("not-a-url")
	assert.Error(t, err)
}
