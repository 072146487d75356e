package state

import (
	"context"
	"fmt"
	"time"

	pkgredis "github.com/darshak-ai/restaurant-platform/pkg/redis"
)

// RedisSnapshotter keeps session snapshots in Redis with a rolling TTL. This
// is the default backend.
type RedisSnapshotter struct {
	client *pkgredis.Client
	ttl    time.Duration
}

// NewRedisSnapshotter wraps the shared Redis client. TTL bounds how long an
// idle session survives; zero keeps snapshots forever.
func NewRedisSnapshotter(client *pkgredis.Client, ttl time.Duration) (*RedisSnapshotter, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisSnapshotter{client: client, ttl: ttl}, nil
}

// Save implements Snapshotter.
func (r *RedisSnapshotter) Save(ctx context.Context, sessionID string, payload []byte) error {
	return r.client.Set(ctx, r.client.SnapshotKey(StorageKey, sessionID), payload, r.ttl)
}

// Load implements Snapshotter.
func (r *RedisSnapshotter) Load(ctx context.Context, sessionID string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.client.SnapshotKey(StorageKey, sessionID))
	if err != nil {
		if pkgredis.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(value), true, nil
}

// Delete implements Snapshotter.
func (r *RedisSnapshotter) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.client.SnapshotKey(StorageKey, sessionID))
}
