package quotes

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "quote:"
	quoteTTL  = 1 * time.Hour
)

// Compile-time check to ensure RedisStore implements Store
var _ Store = (*RedisStore)(nil)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// SetLatest overwrites the cached tick for a symbol. The TTL keeps
// stale quotes from outliving an idle market by much.
func (r *RedisStore) SetLatest(ctx context.Context, symbol string, payload []byte) error {
	return r.client.Set(ctx, keyPrefix+symbol, payload, quoteTTL).Err()
}

// GetLatest fetches the cached tick for a symbol. A missing key is not
// an error; it just means nothing has been streamed for the symbol yet.
func (r *RedisStore) GetLatest(ctx context.Context, symbol string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, keyPrefix+symbol).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
