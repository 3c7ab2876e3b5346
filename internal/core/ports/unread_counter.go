package ports

import "context"

// UnreadCounter tracks per-user unread message counts. Reads are best-effort:
// a failed read may report zero, callers must not treat it as fatal.
type UnreadCounter interface {
	Incr(ctx context.Context, userID string) error
	Reset(ctx context.Context, userID string) error
	Get(ctx context.Context, userID string) (int64, error)
}
