package domain

import (
	"errors"
	"time"
)

var ErrConversationNotFound = errors.New("conversation not found")
var ErrEmptyMessage = errors.New("message requires a body or attachment")

// AdminInbox is the shared unread-counter key for the admin side of every
// conversation: the team works a single pooled support queue.
const AdminInbox = "admin"

// Conversation is the single support thread between a customer and the
// admin team. One conversation exists per customer.
type Conversation struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Message is one entry in a support conversation. AttachmentURL points at
// an uploaded object when the message carries an image.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	SenderRole     Role      `json:"sender_role"`
	Body           string    `json:"body"`
	AttachmentURL  string    `json:"attachment_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
