package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// tokenBucketScript refills and consumes atomically so concurrent API
// instances share one bucket per key.
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local limit = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])

	local tokens_key = key .. ":tokens"
	local stamp_key = key .. ":stamp"

	local tokens = tonumber(redis.call('GET', tokens_key))
	local stamp = tonumber(redis.call('GET', stamp_key))

	if tokens == nil then
		tokens = limit
		stamp = now
	end

	local refill_rate = limit / window
	local tokens_now = math.min(limit, tokens + ((now - stamp) * refill_rate))

	local allowed = 0
	if tokens_now >= 1 then
		tokens_now = tokens_now - 1
		allowed = 1
	end

	redis.call('SET', tokens_key, tokens_now, 'EX', window * 2)
	redis.call('SET', stamp_key, now, 'EX', window * 2)

	return {allowed, math.floor(tokens_now), stamp + window}
`)

// Info describes the state of a key's limit after a check.
type Info struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetTime time.Time `json:"reset_time"`
}

// RedisLimiter is a token-bucket limiter shared across instances via Redis.
type RedisLimiter struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisLimiter creates a limiter on top of an existing Redis client.
func NewRedisLimiter(client *redis.Client, keyPrefix string) *RedisLimiter {
	if keyPrefix == "" {
		keyPrefix = "ratelimit:"
	}

	return &RedisLimiter{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Allow reports whether a request for key is within limit per window, along
// with header-ready limit state.
func (r *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, *Info, error) {
	redisKey := r.keyPrefix + key
	now := time.Now().Unix()

	result, err := tokenBucketScript.Run(ctx, r.client, []string{redisKey}, limit, int(window.Seconds()), now).Result()
	if err != nil {
		return false, nil, fmt.Errorf("redis script execution failed: %w", err)
	}

	values, ok := result.([]interface{})
	if !ok || len(values) < 3 {
		return false, nil, fmt.Errorf("unexpected script result: %v", result)
	}

	allowed, _ := values[0].(int64)
	remaining, _ := values[1].(int64)
	reset, _ := values[2].(int64)

	info := &Info{
		Limit:     limit,
		Remaining: int(remaining),
		ResetTime: time.Unix(reset, 0),
	}

	return allowed == 1, info, nil
}

// Reset clears the bucket for key.
func (r *RedisLimiter) Reset(ctx context.Context, key string) error {
	redisKey := r.keyPrefix + key

	pipe := r.client.Pipeline()
	pipe.Del(ctx, redisKey+":tokens")
	pipe.Del(ctx, redisKey+":stamp")
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to reset rate limit: %w", err)
	}

	return nil
}

// Ping checks the Redis connection.
func (r *RedisLimiter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
