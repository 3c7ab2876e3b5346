package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const identifierTTL = 30 * 24 * time.Hour

// TokenStore persists the session identifier in Redis so a process restart
// can re-resolve the identity. Key format: identifier:<instance>
type TokenStore struct {
	client   *redis.Client
	instance string
}

// NewTokenStore creates a TokenStore scoped to one portal instance.
func NewTokenStore(client *redis.Client, instance string) *TokenStore {
	if instance == "" {
		instance = "default"
	}
	return &TokenStore{client: client, instance: instance}
}

// Load returns the stored identifier, or "" when none is stored.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, s.key()).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load identifier: %w", err)
	}
	return val, nil
}

// Save stores the identifier (refreshing the TTL on every write).
func (s *TokenStore) Save(ctx context.Context, id string) error {
	if err := s.client.Set(ctx, s.key(), id, identifierTTL).Err(); err != nil {
		return fmt.Errorf("save identifier: %w", err)
	}
	return nil
}

// Clear removes the identifier. Clearing an absent key is not an error.
func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("clear identifier: %w", err)
	}
	return nil
}

func (s *TokenStore) key() string {
	return fmt.Sprintf("identifier:%s", s.instance)
}
