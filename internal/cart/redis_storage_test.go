package cart

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisStorage instance
func setupTestRedis(t *testing.T) (*RedisStorage, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	storage := NewRedisStorage(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return storage, mr, cleanup
}

func TestRedisStorage_Load(t *testing.T) {
	storage, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	cart := cartFixture("c1")
	cartJSON, _ := json.Marshal(cart)
	mr.Set(storageKey("c1"), string(cartJSON))

	loaded, err := storage.Load(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, cart.ID, loaded.ID)
	assert.Equal(t, cart.Lines, loaded.Lines)
}

func TestRedisStorage_LoadMissing(t *testing.T) {
	storage, _, cleanup := setupTestRedis(t)
	defer cleanup()

	_, err := storage.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestRedisStorage_LoadCorrupted(t *testing.T) {
	storage, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Set(storageKey("c1"), "{not json")

	_, err := storage.Load(context.Background(), "c1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCartNotFound)
}

func TestRedisStorage_SaveSetsTTL(t *testing.T) {
	storage, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	cart := cartFixture("c1")
	require.NoError(t, storage.Save(context.Background(), &cart))

	require.True(t, mr.Exists(storageKey("c1")))
	assert.GreaterOrEqual(t, mr.TTL(storageKey("c1")), storage.baseTTL)

	loaded, err := storage.Load(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, cart.Lines, loaded.Lines)
}

func TestRedisStorage_Delete(t *testing.T) {
	storage, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	cart := cartFixture("c1")
	require.NoError(t, storage.Save(context.Background(), &cart))
	require.NoError(t, storage.Delete(context.Background(), "c1"))

	assert.False(t, mr.Exists(storageKey("c1")))
}

func TestRedisStorage_Expiry(t *testing.T) {
	storage, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	cart := cartFixture("c1")
	require.NoError(t, storage.Save(context.Background(), &cart))

	mr.FastForward(storage.baseTTL * 2)

	_, err := storage.Load(context.Background(), "c1")
	assert.ErrorIs(t, err, ErrCartNotFound)
}
