package ports

import "context"

// IdentifierStore persists the single identity identifier that survives a
// process restart. Load returns "" (and no error) when nothing is stored.
// Any durable key-value store satisfies this.
type IdentifierStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}
