package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore keeps the upstream bearer token per session in Redis.
// Key format: session:<sid>:token
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenStore creates a TokenStore whose entries expire after ttl.
func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenStore{client: client, ttl: ttl}
}

// Set stores the bearer token for sid, refreshing its TTL.
func (s *TokenStore) Set(ctx context.Context, sid, token string) error {
	if err := s.client.Set(ctx, s.key(sid), token, s.ttl).Err(); err != nil {
		return fmt.Errorf("token set: %w", err)
	}
	return nil
}

// Get returns the token for sid, or "" when none is stored.
func (s *TokenStore) Get(ctx context.Context, sid string) (string, error) {
	tok, err := s.client.Get(ctx, s.key(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("token get: %w", err)
	}
	return tok, nil
}

// Clear removes the token for sid. Clearing an absent token is a no-op.
func (s *TokenStore) Clear(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("token clear: %w", err)
	}
	return nil
}

func (s *TokenStore) key(sid string) string {
	return fmt.Sprintf("session:%s:token", sid)
}
