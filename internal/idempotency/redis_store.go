package idempotency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ Store = (*RedisStore)(nil)

const tokenKeyPrefix = "idempotency:token:"

// RedisStore claims tokens with SET NX so every API instance sees the same
// seen-set. Expiry is handled by Redis.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) PutIfAbsent(ctx context.Context, token string) error {
	ok, err := s.client.SetNX(ctx, tokenKeyPrefix+token, 1, s.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrDuplicateKey
	}
	return nil
}
