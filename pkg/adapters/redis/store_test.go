package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/cellfill/internal/testutils"
	"github.com/aretw0/cellfill/pkg/adapters/redis"
	"github.com/aretw0/cellfill/pkg/domain"
	"github.com/aretw0/cellfill/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_Contract(t *testing.T) {
	_, client := testutils.NewRedis(t)
	store := redis.NewFromClient(client)
	ports.RunSequenceStoreContract(t, store)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := testutils.NewRedis(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", domain.NewSnapshot("abc")))
	assert.True(t, mr.Exists("test:s:abc"))
	assert.True(t, mr.Exists("test:index"))
	assert.Equal(t, "test:", store.Prefix())
	assert.NoError(t, store.Ping(ctx))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := testutils.NewRedis(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	sessionID := "session-ttl"

	snap := domain.NewSnapshot(sessionID)
	snap.Cells = domain.Sequence{domain.Alive}
	require.NoError(t, store.Save(ctx, sessionID, snap))

	sessions, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, sessions, sessionID)

	// Key expiration in miniredis follows its own clock.
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, sessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Index pruning uses time.Now, so wait past the score.
	time.Sleep(1200 * time.Millisecond)

	sessions, err = store.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestRedisStore_ReservedLookingIDs(t *testing.T) {
	_, client := testutils.NewRedis(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "other", domain.NewSnapshot("other")))
	for _, id := range []string{"index", "lock:other"} {
		require.NoError(t, store.Save(ctx, id, domain.NewSnapshot(id)), id)
	}

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"other", "index", "lock:other"}, sessions)

	loaded, err := store.Load(ctx, "index")
	require.NoError(t, err)
	assert.Equal(t, "index", loaded.SessionID)
}
