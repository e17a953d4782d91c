// Package cache wraps redis for request rate limiting and webhook idempotency.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/RoyKeane94/toad/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const eventKeyPrefix = "toad:stripe:event:"

// Redis is the redis-backed cache.
type Redis struct {
	log      *zap.SugaredLogger
	client   *redis.Client
	eventTTL time.Duration
	now      func() time.Time
}

// Quota is the outcome of a rate limit check.
type Quota struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// New connects to redis and verifies the connection.
func New(ctx context.Context, log *zap.SugaredLogger, cfg config.RedisConfig) (*Redis, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewWithClient(log, client, cfg.EventTTL), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(log *zap.SugaredLogger, client *redis.Client, eventTTL time.Duration) *Redis {
	return &Redis{
		log:      log.Named("cache.redis"),
		client:   client,
		eventTTL: eventTTL,
		now:      time.Now,
	}
}

// Allow counts a hit for key in the current fixed window.
func (r *Redis) Allow(ctx context.Context, key string, limit int, window time.Duration) (Quota, error) {
	seconds := int64(window / time.Second)
	if seconds <= 0 {
		seconds = 1
	}
	now := r.now().Unix()
	bucket := now / seconds
	windowKey := fmt.Sprintf("toad:rl:%s:%d", key, bucket)

	pipe := r.client.Pipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Quota{}, fmt.Errorf("rate limit: %w", err)
	}

	count := int(incr.Val())
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Quota{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		Reset:     time.Unix((bucket+1)*seconds, 0),
	}, nil
}

// ClaimEvent records a webhook event id. It reports false if the id was already claimed.
func (r *Redis) ClaimEvent(ctx context.Context, eventID string) (bool, error) {
	ok, err := r.client.SetNX(ctx, eventKeyPrefix+eventID, r.now().Unix(), r.eventTTL).Result()
	if err != nil {
		return false, fmt.Errorf("claim event: %w", err)
	}
	return ok, nil
}

// ReleaseEvent forgets a claimed event so a retry can process it again.
func (r *Redis) ReleaseEvent(ctx context.Context, eventID string) error {
	if err := r.client.Del(ctx, eventKeyPrefix+eventID).Err(); err != nil {
		return fmt.Errorf("release event: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the client.
func (r *Redis) Close() error {
	r.log.Infow("closing redis client")
	return r.client.Close()
}
