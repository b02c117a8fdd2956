package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const revokedKeyPrefix = "revoked:"

// RedisRevoker keeps revoked session tokens in redis. The TTL on each key
// replaces any explicit purge: once a token has also passed its signature
// expiry, the record quietly disappears. Absence of a key says nothing
// about validity — that is the signature check's job.
type RedisRevoker struct {
	client *redis.Client
}

func NewRedisRevoker(client *redis.Client) *RedisRevoker {
	return &RedisRevoker{client: client}
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKeyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("revocation lookup: %w", err)
	}
	return n > 0, nil
}

func (r *RedisRevoker) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if err := r.client.Set(ctx, revokedKeyPrefix+token, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revocation insert: %w", err)
	}
	return nil
}
