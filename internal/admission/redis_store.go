package admission

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ Store = (*RedisStore)(nil)

const bucketKeyPrefix = "admission:bucket:"

// tokenBucketScript refills and consumes in one round trip so concurrent
// instances sharing the same Redis agree on every token.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

local bucket = redis.call('HMGET', key, 'tokens', 'refreshed')
local tokens = tonumber(bucket[1])
local refreshed = tonumber(bucket[2])
if tokens == nil then
	tokens = capacity
	refreshed = now
end

local refill = capacity / window
local elapsed = now - refreshed
if elapsed > 0 then
	tokens = math.min(capacity, tokens + elapsed * refill)
end

local allowed = 0
if tokens >= 1 then
	tokens = tokens - 1
	allowed = 1
end

redis.call('HSET', key, 'tokens', tokens, 'refreshed', now)
redis.call('EXPIRE', key, window * 2)
return allowed
`)

// RedisStore keeps token buckets in Redis so multiple API instances share
// one admission state. Keys expire on their own after two idle windows.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// Allow consumes one token from the shared bucket for key.
func (s *RedisStore) Allow(ctx context.Context, key string, limit Limit) (bool, error) {
	now := float64(time.Now().UnixMilli()) / 1000.0
	result, err := tokenBucketScript.Run(
		ctx,
		s.client,
		[]string{bucketKeyPrefix + key},
		limit.Requests,
		limit.WindowSeconds,
		now,
	).Int()
	if err != nil {
		return false, err
	}
	return result == 1, nil
}
