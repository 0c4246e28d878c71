package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/internal/cart/domain"
	"storefront/internal/cart/ports"
)

// setCart stores a cart unless a newer version has already been written or
// invalidated. KEYS: cart, version floor. ARGV: version, payload, ttl ms.
var setCart = redis.NewScript(`
local floor = tonumber(redis.call('GET', KEYS[2]) or '-1')
local version = tonumber(ARGV[1])
if version < floor then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
redis.call('SET', KEYS[2], ARGV[1], 'PX', ARGV[3])
return 1
`)

// invalidateCart drops the cart and raises the version floor.
// KEYS: cart, version floor. ARGV: version, ttl ms.
var invalidateCart = redis.NewScript(`
local floor = tonumber(redis.call('GET', KEYS[2]) or '-1')
if tonumber(ARGV[1]) > floor then
	redis.call('SET', KEYS[2], ARGV[1], 'PX', ARGV[2])
end
redis.call('DEL', KEYS[1])
return 1
`)

// RedisCartCache caches carts as JSON under cart:<session>. A version floor
// under cart:<session>:version keeps a slow reader from caching a cart
// older than the last invalidation.
type RedisCartCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

// NewRedisCartCache creates a cart cache; entries live for ttl plus up to
// five minutes of jitter
func NewRedisCartCache(client *redis.Client, ttl time.Duration) *RedisCartCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &RedisCartCache{
		client:  client,
		baseTTL: ttl,
	}
}

// Get returns the cached cart or ports.ErrCacheMiss
func (r *RedisCartCache) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, cacheKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}

	return &cart, nil
}

// Set caches a cart unless it is older than the version floor
func (r *RedisCartCache) Set(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(5)) * time.Minute
	ttl := r.baseTTL + jitter
	keys := []string{cacheKey(cart.SessionID), versionKey(cart.SessionID)}
	if err := setCart.Run(ctx, r.client, keys, cart.Version, data, ttl.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Invalidate drops the cached cart and refuses later writes of any
// version below version
func (r *RedisCartCache) Invalidate(ctx context.Context, sessionID string, version int64) error {
	// the floor must outlive any cart entry a slow reader could still write
	ttl := r.baseTTL + 5*time.Minute
	keys := []string{cacheKey(sessionID), versionKey(sessionID)}
	if err := invalidateCart.Run(ctx, r.client, keys, version, ttl.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("redis invalidate failed: %w", err)
	}
	return nil
}

func cacheKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func versionKey(sessionID string) string {
	return fmt.Sprintf("cart:%s:version", sessionID)
}
