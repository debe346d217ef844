package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/oggyb/spacematch/internal/config"
	"github.com/oggyb/spacematch/internal/metrics"
)

const (
	swipeCache   = "swipes"
	pendingCache = "pending_count"

	breakerFailures = 5
	breakerTimeout  = 30 * time.Second
)

// ErrMiss is returned when a key is not cached.
var ErrMiss = errors.New("cache miss")

// RedisCache fronts Redis with a circuit breaker. Every read is best-effort:
// callers treat any error as a miss and fall back to the database.
type RedisCache struct {
	Client *redis.Client

	breaker    *gobreaker.CircuitBreaker[any]
	swipeTTL   time.Duration
	pendingTTL time.Duration
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return NewWithClient(redis.NewClient(opts), cfg)
}

// NewWithClient wraps an existing client, taking TTLs from cfg.
func NewWithClient(client *redis.Client, cfg *config.Config) *RedisCache {
	return &RedisCache{
		Client: client,
		breaker: gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
			Name:    "redis",
			Timeout: breakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerFailures
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, redis.Nil)
			},
		}),
		swipeTTL:   cfg.Cache.SwipeTTL,
		pendingTTL: cfg.Cache.PendingCountTTL,
	}
}

// BreakerState reports the circuit breaker state for health output.
func (c *RedisCache) BreakerState() string {
	return c.breaker.State().String()
}

func (c *RedisCache) do(fn func() (any, error)) (any, error) {
	return c.breaker.Execute(fn)
}

func (c *RedisCache) Ping(ctx context.Context) error {
	_, err := c.do(func() (any, error) { return nil, c.Client.Ping(ctx).Err() })
	return err
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	_, err := c.do(func() (any, error) { return nil, c.Client.Set(ctx, key, value, ttl).Err() })
	return err
}

// Get returns ErrMiss for an absent key.
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	v, err := c.do(func() (any, error) { return c.Client.Get(ctx, key).Result() })
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *RedisCache) Del(ctx context.Context, keys ...string) error {
	_, err := c.do(func() (any, error) { return nil, c.Client.Del(ctx, keys...).Err() })
	return err
}

// KeyForSwipes is the set of item ids a user has swiped on.
func KeyForSwipes(userID string) string {
	return fmt.Sprintf("swipes:items:%s", userID)
}

// KeyForPendingCount is a provider's pending match count.
func KeyForPendingCount(providerID string) string {
	return fmt.Sprintf("matches:pending:count:%s", providerID)
}

// KeyForSwipeVersion counts a user's swipes. A refill only lands if the
// counter has not moved since the refill started.
func KeyForSwipeVersion(userID string) string {
	return fmt.Sprintf("swipes:version:%s", userID)
}

// recordSwipe bumps the version and only extends a set that is already
// cached, so a partial set is never created.
var recordSwipe = redis.NewScript(`
redis.call("INCR", KEYS[2])
redis.call("PEXPIRE", KEYS[2], ARGV[2])
if redis.call("EXISTS", KEYS[1]) == 1 then
	redis.call("SADD", KEYS[1], ARGV[1])
	return 1
end
return 0
`)

// refillIfUnchanged replaces the set unless a swipe bumped the version
// after the caller read it.
var refillIfUnchanged = redis.NewScript(`
local v = redis.call("GET", KEYS[2]) or "0"
if v ~= ARGV[1] then
	return 0
end
redis.call("DEL", KEYS[1])
redis.call("SADD", KEYS[1], unpack(ARGV, 3))
redis.call("PEXPIRE", KEYS[1], ARGV[2])
return 1
`)

// SwipedItems returns the cached swipe set for userID, or ErrMiss.
func (c *RedisCache) SwipedItems(ctx context.Context, userID string) ([]string, error) {
	key := KeyForSwipes(userID)
	v, err := c.do(func() (any, error) {
		n, err := c.Client.Exists(ctx, key).Result()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, redis.Nil
		}
		return c.Client.SMembers(ctx, key).Result()
	})
	switch {
	case errors.Is(err, redis.Nil):
		metrics.RecordCacheLookup(swipeCache, false)
		return nil, ErrMiss
	case err != nil:
		metrics.RecordCacheError(swipeCache)
		return nil, err
	}
	metrics.RecordCacheLookup(swipeCache, true)
	return v.([]string), nil
}

// SwipeVersion returns the swipe counter to pass to SetSwipedItems. A user
// with no counter yet is at version 0.
func (c *RedisCache) SwipeVersion(ctx context.Context, userID string) (int64, error) {
	val, err := c.Get(ctx, KeyForSwipeVersion(userID))
	if errors.Is(err, ErrMiss) {
		return 0, nil
	} else if err != nil {
		metrics.RecordCacheError(swipeCache)
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

// SetSwipedItems replaces the cached swipe set if the swipe counter still
// equals version. It reports whether the set was written. An empty set is
// not cached since Redis cannot hold one.
func (c *RedisCache) SetSwipedItems(ctx context.Context, userID string, itemIDs []string, version int64) (bool, error) {
	if len(itemIDs) == 0 {
		return false, nil
	}
	args := make([]any, 0, len(itemIDs)+2)
	args = append(args, strconv.FormatInt(version, 10), c.swipeTTL.Milliseconds())
	for _, id := range itemIDs {
		args = append(args, id)
	}
	keys := []string{KeyForSwipes(userID), KeyForSwipeVersion(userID)}
	v, err := c.do(func() (any, error) {
		return refillIfUnchanged.Run(ctx, c.Client, keys, args...).Int()
	})
	if err != nil {
		metrics.RecordCacheError(swipeCache)
		return false, err
	}
	return v.(int) == 1, nil
}

// AddSwipedItem records a new swipe: it moves the swipe counter and appends
// itemID to an already cached set.
func (c *RedisCache) AddSwipedItem(ctx context.Context, userID, itemID string) error {
	keys := []string{KeyForSwipes(userID), KeyForSwipeVersion(userID)}
	_, err := c.do(func() (any, error) {
		return recordSwipe.Run(ctx, c.Client, keys, itemID, c.swipeTTL.Milliseconds()).Result()
	})
	if err != nil {
		metrics.RecordCacheError(swipeCache)
	}
	return err
}

// PendingCount returns a provider's cached pending match count, or ErrMiss.
func (c *RedisCache) PendingCount(ctx context.Context, providerID string) (int64, error) {
	val, err := c.Get(ctx, KeyForPendingCount(providerID))
	if errors.Is(err, ErrMiss) {
		metrics.RecordCacheLookup(pendingCache, false)
		return 0, ErrMiss
	} else if err != nil {
		metrics.RecordCacheError(pendingCache)
		return 0, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		// corrupt entry, drop it
		_ = c.Del(ctx, KeyForPendingCount(providerID))
		metrics.RecordCacheLookup(pendingCache, false)
		return 0, ErrMiss
	}
	metrics.RecordCacheLookup(pendingCache, true)
	return n, nil
}

func (c *RedisCache) SetPendingCount(ctx context.Context, providerID string, count int64) error {
	return c.Set(ctx, KeyForPendingCount(providerID), count, c.pendingTTL)
}

func (c *RedisCache) InvalidatePendingCount(ctx context.Context, providerID string) error {
	return c.Del(ctx, KeyForPendingCount(providerID))
}
