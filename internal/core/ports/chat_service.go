package ports

import (
	"context"
	"time"

	"github.com/protolab/portal-api/internal/core/domain"
)

// SendMessageInput carries one outgoing chat message. ConversationID is
// required for admin senders; customers always post to their own thread.
type SendMessageInput struct {
	Sender         *domain.User
	ConversationID string
	Body           string
	AttachmentURL  string
}

// ChatService exposes the support chat operations.
type ChatService interface {
	Send(ctx context.Context, input SendMessageInput) (*domain.Message, error)
	ListSince(ctx context.Context, actor *domain.User, conversationID string, since time.Time) ([]domain.Message, error)
	Unread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID string) error
}

// ChatEvent is the notification emitted for every stored message. Events for
// one conversation are processed in order.
type ChatEvent struct {
	ConversationID string
	MessageID      string
	SenderID       string
	SenderRole     domain.Role
	At             time.Time
}

// ChatEventSink consumes chat events off the notification dispatcher.
type ChatEventSink interface {
	Process(ctx context.Context, event ChatEvent) error
}
