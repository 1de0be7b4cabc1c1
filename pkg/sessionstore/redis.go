package sessionstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the two session entries as plain redis strings under
// <prefix>auth_token and <prefix>refresh_token. Several CLI hosts pointed at
// the same prefix share one session.
type RedisStore struct {
	rdb    redis.UniversalClient
	prefix string
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(rdb redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (r *RedisStore) accessKey() string  { return r.prefix + KeyAccessToken }
func (r *RedisStore) refreshKey() string { return r.prefix + KeyRefreshToken }

func (r *RedisStore) Get(ctx context.Context) (Session, error) {
	vals, err := r.rdb.MGet(ctx, r.accessKey(), r.refreshKey()).Result()
	if err != nil {
		return Session{}, fmt.Errorf("sessionstore: redis get: %w", err)
	}

	var s Session
	s.AccessToken, _ = vals[0].(string)
	s.RefreshToken, _ = vals[1].(string)
	return s, nil
}

func (r *RedisStore) Set(ctx context.Context, access, refresh string) error {
	_, err := r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, r.accessKey(), access, 0)
		if refresh != "" {
			p.Set(ctx, r.refreshKey(), refresh, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("sessionstore: redis set: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	err := r.rdb.Del(ctx, r.accessKey(), r.refreshKey()).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("sessionstore: redis clear: %w", err)
	}
	return nil
}
