package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"studynotes/internal/config"
)

const entitlementKeyPrefix = "studynotes:entitled:"

// NewRedis returns a configured Redis client after a connectivity check.
func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// RedisEntitlements is an EntitlementCache backed by Redis string keys with expiry.
type RedisEntitlements struct {
	client redis.Cmdable
}

// NewRedisEntitlements wraps a Redis client.
func NewRedisEntitlements(client redis.Cmdable) *RedisEntitlements {
	return &RedisEntitlements{client: client}
}

var _ EntitlementCache = (*RedisEntitlements)(nil)

func entitlementKey(userID string) string {
	return entitlementKeyPrefix + userID
}

func (r *RedisEntitlements) Entitled(ctx context.Context, userID string) (bool, error) {
	err := r.client.Get(ctx, entitlementKey(userID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisEntitlements) MarkEntitled(ctx context.Context, userID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, entitlementKey(userID), "1", ttl).Err()
}
