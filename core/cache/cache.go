package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"terminfinder-api/core/config"
	"terminfinder-api/core/constants"
	"terminfinder-api/core/logger"

	"github.com/redis/go-redis/v9"
)

// Cache tracks failed login attempts per group code.
type Cache interface {
	IncrementLoginAttempt(ctx context.Context, key string) (int64, error)
	IsLoginBlocked(ctx context.Context, key string) (bool, error)
	ResetLoginAttempts(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
}

// New returns a redis backed cache when enabled, otherwise an in-process one.
func New(cfg config.RedisConfig) (Cache, error) {
	if !cfg.Enabled {
		logger.Warn("Redis disabled, using in-memory login attempt cache")
		return NewMemoryCache(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Cache:New:Ping", "addr", cfg.Addr, "error", err)
		_ = client.Close()
		return nil, err
	}

	logger.Info("Redis connected", "addr", cfg.Addr, "db", cfg.DB)
	return NewRedisCache(client), nil
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func loginAttemptKey(key string) string {
	return constants.RedisKeyLoginAttempt + key
}

func (c *RedisCache) IncrementLoginAttempt(ctx context.Context, key string) (int64, error) {
	k := loginAttemptKey(key)
	count, err := c.client.Incr(ctx, k).Result()
	if err != nil {
		logger.Error("RedisCache:IncrementLoginAttempt", "key", k, "error", err)
		return 0, err
	}
	if count == 1 {
		if err := c.client.Expire(ctx, k, constants.LoginBlockDuration).Err(); err != nil {
			logger.Error("RedisCache:IncrementLoginAttempt:Expire", "key", k, "error", err)
			return count, err
		}
	}
	return count, nil
}

func (c *RedisCache) IsLoginBlocked(ctx context.Context, key string) (bool, error) {
	count, err := c.client.Get(ctx, loginAttemptKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		logger.Error("RedisCache:IsLoginBlocked", "key", key, "error", err)
		return false, err
	}
	return count >= constants.MaxLoginAttempts, nil
}

func (c *RedisCache) ResetLoginAttempts(ctx context.Context, key string) error {
	return c.client.Del(ctx, loginAttemptKey(key)).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type attempt struct {
	count     int64
	expiresAt time.Time
}

// MemoryCache keeps attempts in process. It is used when redis is disabled
// and in tests.
type MemoryCache struct {
	mu       sync.Mutex
	attempts map[string]*attempt
	now      func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		attempts: make(map[string]*attempt),
		now:      time.Now,
	}
}

func (c *MemoryCache) get(key string) *attempt {
	a, ok := c.attempts[key]
	if !ok {
		return nil
	}
	if !c.now().Before(a.expiresAt) {
		delete(c.attempts, key)
		return nil
	}
	return a
}

func (c *MemoryCache) IncrementLoginAttempt(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a := c.get(key)
	if a == nil {
		a = &attempt{expiresAt: c.now().Add(constants.LoginBlockDuration)}
		c.attempts[key] = a
	}
	a.count++
	return a.count, nil
}

func (c *MemoryCache) IsLoginBlocked(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a := c.get(key)
	return a != nil && a.count >= constants.MaxLoginAttempts, nil
}

func (c *MemoryCache) ResetLoginAttempts(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.attempts, key)
	return nil
}

func (c *MemoryCache) Ping(context.Context) error { return nil }

func (c *MemoryCache) Close() error { return nil }
