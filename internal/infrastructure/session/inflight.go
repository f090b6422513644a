package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const inflightTTL = 30 * time.Second

// InflightGuard refuses a mutating operation while an identical one is still
// in flight for the same session, backed by Redis SETNX.
// Key format: inflight:<sid>:<operation>
//
// The TTL is a safety valve: if a release is lost (process crash mid-call)
// the slot frees itself.
type InflightGuard struct {
	client *redis.Client
}

// NewInflightGuard creates an InflightGuard wrapping the given Redis client.
func NewInflightGuard(client *redis.Client) *InflightGuard {
	return &InflightGuard{client: client}
}

// TryAcquire reports whether the caller won the slot for (sid, key).
func (g *InflightGuard) TryAcquire(ctx context.Context, sid, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(sid, key), "1", inflightTTL).Result()
	if err != nil {
		return false, fmt.Errorf("inflight acquire: %w", err)
	}
	return ok, nil
}

// Release frees the slot for (sid, key).
func (g *InflightGuard) Release(ctx context.Context, sid, key string) error {
	if err := g.client.Del(ctx, g.key(sid, key)).Err(); err != nil {
		return fmt.Errorf("inflight release: %w", err)
	}
	return nil
}

func (g *InflightGuard) key(sid, key string) string {
	return fmt.Sprintf("inflight:%s:%s", sid, key)
}
