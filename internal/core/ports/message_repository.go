package ports

import (
	"context"
	"time"

	"github.com/protolab/portal-api/internal/core/domain"
)

// ConversationRepository manages the one-thread-per-customer support model.
// FindOrCreate returns the customer's conversation, creating it on first use.
type ConversationRepository interface {
	FindOrCreate(ctx context.Context, customerID string) (*domain.Conversation, error)
	FindByID(ctx context.Context, id string) (*domain.Conversation, error)
	ListAll(ctx context.Context) ([]domain.Conversation, error)
}

// MessageRepository defines the interface for chat message persistence.
// ListSince returns messages created strictly after the given instant in
// ascending creation order; a zero time returns the full thread.
type MessageRepository interface {
	Insert(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	ListSince(ctx context.Context, conversationID string, since time.Time) ([]domain.Message, error)
	CountSince(ctx context.Context, conversationID string, since time.Time) (int64, error)
}
