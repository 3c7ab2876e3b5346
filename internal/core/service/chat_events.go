package service

import (
	"context"

	"github.com/protolab/portal-api/internal/core/domain"
	"github.com/protolab/portal-api/internal/core/ports"
)

// ChatEventProcessor consumes dispatcher events and maintains unread
// counters for the receiving side of each message.
type ChatEventProcessor struct {
	conversations ports.ConversationRepository
	unread        ports.UnreadCounter
}

func NewChatEventProcessor(conversations ports.ConversationRepository, unread ports.UnreadCounter) *ChatEventProcessor {
	return &ChatEventProcessor{conversations: conversations, unread: unread}
}

// Process increments the unread counter for whoever did not send the
// message: customer messages land in the pooled admin inbox, admin replies
// land on the conversation's customer.
func (p *ChatEventProcessor) Process(ctx context.Context, event ports.ChatEvent) error {
	if event.SenderRole == domain.RoleCustomer {
		return p.unread.Incr(ctx, domain.AdminInbox)
	}

	conv, err := p.conversations.FindByID(ctx, event.ConversationID)
	if err != nil {
		return err
	}
	return p.unread.Incr(ctx, conv.CustomerID)
}
