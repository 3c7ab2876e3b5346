package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/protolab/portal-api/internal/core/domain"
	"github.com/protolab/portal-api/internal/core/ports"
)

// EventEnqueuer hands stored messages to the notification dispatcher.
type EventEnqueuer interface {
	Enqueue(event ports.ChatEvent)
}

// ChatService implements the support chat. Each customer owns exactly one
// conversation; admin senders address any conversation by id. Every stored
// message is forwarded to the dispatcher for unread accounting.
type ChatService struct {
	conversations ports.ConversationRepository
	messages      ports.MessageRepository
	unread        ports.UnreadCounter
	events        EventEnqueuer
	logger        zerolog.Logger
}

func NewChatService(
	conversations ports.ConversationRepository,
	messages ports.MessageRepository,
	unread ports.UnreadCounter,
	events EventEnqueuer,
	logger zerolog.Logger,
) *ChatService {
	return &ChatService{
		conversations: conversations,
		messages:      messages,
		unread:        unread,
		events:        events,
		logger:        logger,
	}
}

// Send stores one message and emits a chat event. Customers always post to
// their own thread regardless of the supplied conversation id.
func (s *ChatService) Send(ctx context.Context, input ports.SendMessageInput) (*domain.Message, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" && input.AttachmentURL == "" {
		return nil, domain.ErrEmptyMessage
	}

	conversationID, err := s.resolveConversation(ctx, input.Sender, input.ConversationID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       input.Sender.ID,
		SenderRole:     input.Sender.Role,
		Body:           body,
		AttachmentURL:  input.AttachmentURL,
		CreatedAt:      time.Now().UTC(),
	}

	stored, err := s.messages.Insert(ctx, msg)
	if err != nil {
		s.logger.Error().Err(err).Str("conversation_id", conversationID).Msg("failed to store message")
		return nil, err
	}

	if s.events != nil {
		s.events.Enqueue(ports.ChatEvent{
			ConversationID: stored.ConversationID,
			MessageID:      stored.ID,
			SenderID:       stored.SenderID,
			SenderRole:     stored.SenderRole,
			At:             stored.CreatedAt,
		})
	}

	return stored, nil
}

// ListSince serves the polling fetch: messages created strictly after the
// given instant, oldest first. Customers may only read their own thread.
func (s *ChatService) ListSince(ctx context.Context, actor *domain.User, conversationID string, since time.Time) ([]domain.Message, error) {
	resolved, err := s.resolveConversation(ctx, actor, conversationID)
	if err != nil {
		return nil, err
	}
	return s.messages.ListSince(ctx, resolved, since)
}

// Unread returns the actor's unread count. Best-effort: a counter read
// failure reports zero rather than failing the request.
func (s *ChatService) Unread(ctx context.Context, userID string) (int64, error) {
	n, err := s.unread.Get(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("unread count unavailable")
		return 0, nil
	}
	return n, nil
}

// MarkRead resets the actor's unread counter.
func (s *ChatService) MarkRead(ctx context.Context, userID string) error {
	return s.unread.Reset(ctx, userID)
}

func (s *ChatService) resolveConversation(ctx context.Context, actor *domain.User, requested string) (string, error) {
	if actor.Role == domain.RoleAdmin {
		if requested == "" {
			return "", domain.ErrConversationNotFound
		}
		conv, err := s.conversations.FindByID(ctx, requested)
		if err != nil {
			return "", err
		}
		return conv.ID, nil
	}

	conv, err := s.conversations.FindOrCreate(ctx, actor.ID)
	if err != nil {
		return "", err
	}
	return conv.ID, nil
}
