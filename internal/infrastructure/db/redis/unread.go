package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// UnreadCounter tracks per-user unread message counts in Redis.
// Key format: unread:<user_id>
type UnreadCounter struct {
	client *redis.Client
}

// NewUnreadCounter creates an UnreadCounter wrapping the given Redis client.
func NewUnreadCounter(client *redis.Client) *UnreadCounter {
	return &UnreadCounter{client: client}
}

// Incr bumps the user's unread count by one.
func (u *UnreadCounter) Incr(ctx context.Context, userID string) error {
	if err := u.client.Incr(ctx, u.key(userID)).Err(); err != nil {
		return fmt.Errorf("incr unread: %w", err)
	}
	return nil
}

// Reset zeroes the user's unread count.
func (u *UnreadCounter) Reset(ctx context.Context, userID string) error {
	if err := u.client.Del(ctx, u.key(userID)).Err(); err != nil {
		return fmt.Errorf("reset unread: %w", err)
	}
	return nil
}

// Get returns the user's unread count. An absent key reads as zero.
func (u *UnreadCounter) Get(ctx context.Context, userID string) (int64, error) {
	n, err := u.client.Get(ctx, u.key(userID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get unread: %w", err)
	}
	return n, nil
}

func (u *UnreadCounter) key(userID string) string {
	return fmt.Sprintf("unread:%s", userID)
}
