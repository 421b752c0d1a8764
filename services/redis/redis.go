package redis

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles the ephemeral side of the game: login throttling and
// short-lived dashboard caches. Nothing stored here is authoritative, the
// relational store always wins.
type RedisClient struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(addr string, db int) *RedisClient {
	var client *redis.Client
	if opt, err := redis.ParseURL(addr); err == nil {
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		})
	}
	return &RedisClient{
		Client: client,
		Ctx:    context.Background(),
	}
}

// AllowLogin counts a login attempt for the given email and reports whether
// it is still under the limit within the window. Fails open: if Redis is
// down, logins keep working.
func (rc *RedisClient) AllowLogin(email string, limit int, window time.Duration) bool {
	key := loginAttemptsKey(email)

	count, err := rc.Client.Incr(rc.Ctx, key).Result()
	if err != nil {
		log.Printf("redis: login throttle unavailable: %v", err)
		return true
	}
	if count == 1 {
		rc.Client.Expire(rc.Ctx, key, window)
	}
	return count <= int64(limit)
}

// GetCached returns a cached payload, or nil on miss.
func (rc *RedisClient) GetCached(key string) []byte {
	data, err := rc.Client.Get(rc.Ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return data
}

// SetCached stores a payload with a TTL.
func (rc *RedisClient) SetCached(key string, value []byte, ttl time.Duration) {
	if err := rc.Client.Set(rc.Ctx, key, value, ttl).Err(); err != nil {
		log.Printf("redis: failed to cache %s: %v", key, err)
	}
}

// InvalidateCached drops a cached payload.
func (rc *RedisClient) InvalidateCached(key string) {
	if err := rc.Client.Del(rc.Ctx, key).Err(); err != nil {
		log.Printf("redis: failed to invalidate %s: %v", key, err)
	}
}

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(keys []string) error {
	for _, key := range keys {
		if err := rc.Client.Del(rc.Ctx, key).Err(); err != nil {
			return err
		}
	}
	return nil
}
