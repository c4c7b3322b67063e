package store

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// LocalStore is the local key-value snapshot lane. It is a disposable
// cache, never authoritative once a remote copy exists.
type LocalStore interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
	Remove(key string)
}

// MemoryLocalStore keeps snapshots in process memory
type MemoryLocalStore struct {
	cache *gocache.Cache
}

func NewMemoryLocalStore() *MemoryLocalStore {
	return &MemoryLocalStore{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

func (m *MemoryLocalStore) Get(key string) (string, bool) {
	v, ok := m.cache.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (m *MemoryLocalStore) Set(key string, value string) error {
	m.cache.Set(key, value, gocache.NoExpiration)
	return nil
}

func (m *MemoryLocalStore) Remove(key string) {
	m.cache.Delete(key)
}

// RedisLocalStore keeps snapshots in Redis under a per-session prefix,
// so the local lane survives store eviction and process restarts and a
// returning session re-hydrates its draft.
type RedisLocalStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisLocalStore(client *redis.Client, prefix string, ttl time.Duration) *RedisLocalStore {
	return &RedisLocalStore{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisLocalStore) key(k string) string {
	return r.prefix + ":" + k
}

func (r *RedisLocalStore) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		return "", false
	}
	return v, true
}

func (r *RedisLocalStore) Set(key string, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.client.Set(ctx, r.key(key), value, r.ttl).Err()
}

func (r *RedisLocalStore) Remove(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r.client.Del(ctx, r.key(key))
}
