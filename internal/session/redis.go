package session

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/cache"
)

// RedisStore keeps the pair under two prefixed keys. Writes go through MULTI/EXEC.
type RedisStore struct {
	client *redis.Client
	keys   cache.Keyspace
}

func NewRedisStore(client *redis.Client, keys cache.Keyspace) *RedisStore {
	return &RedisStore{client: client, keys: keys}
}

func (r *RedisStore) key(name string) string {
	return r.keys.Key(name)
}

func (r *RedisStore) Load(ctx context.Context) (string, string, error) {
	vals, err := r.client.MGet(ctx, r.key(KeyAccessToken), r.key(KeyUser)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", "", err
	}
	return asString(vals, 0), asString(vals, 1), nil
}

func asString(vals []interface{}, i int) string {
	if i >= len(vals) {
		return ""
	}
	s, _ := vals[i].(string)
	return s
}

func (r *RedisStore) Save(ctx context.Context, token, userJSON string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(KeyAccessToken), token, 0)
		pipe.Set(ctx, r.key(KeyUser), userJSON, 0)
		return nil
	})
	return err
}

func (r *RedisStore) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key(KeyAccessToken), r.key(KeyUser)).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
