package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/redis/go-redis/v9"
)

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{
		client:  client,
		baseTTL: 7 * 24 * time.Hour,
	}
}

// RedisStorage keeps carts alive across page reloads. TTL is jittered
// so a burst of carts created together does not expire together.
type RedisStorage struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r RedisStorage) Load(ctx context.Context, cartID string) (*domain.Cart, error) {
	key := storageKey(cartID)

	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var cart domain.Cart
	if err2 := json.Unmarshal(data, &cart); err2 != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err2)
	}

	return &cart, nil
}

func (r RedisStorage) Save(ctx context.Context, cart *domain.Cart) error {
	key := storageKey(cart.ID)
	jsonCart, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(60)) * time.Minute
	ttl := r.baseTTL + jitter
	if err := r.client.Set(ctx, key, string(jsonCart), ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r RedisStorage) Delete(ctx context.Context, cartID string) error {
	key := storageKey(cartID)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}

	return nil
}

func storageKey(cartID string) string {
	return fmt.Sprintf("cart:%s", cartID)
}
