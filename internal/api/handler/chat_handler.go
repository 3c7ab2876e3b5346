package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/protolab/portal-api/internal/api/metrics"
	"github.com/protolab/portal-api/internal/core/domain"
	"github.com/protolab/portal-api/internal/core/ports"
)

// ChatHandler handles HTTP requests for the support chat. Clients poll
// List with a since cursor to approximate realtime delivery.
type ChatHandler struct {
	service ports.ChatService
}

func NewChatHandler(service ports.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

type sendMessageRequest struct {
	ConversationID string `json:"conversation_id"`
	Body           string `json:"body"`
	AttachmentURL  string `json:"attachment_url"`
}

type unreadResponse struct {
	Unread int64 `json:"unread"`
}

// List returns messages created after the since cursor, oldest first.
// Without a cursor the full thread is returned.
//
// @Summary      Poll chat messages
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        since            query     string  false  "RFC3339 cursor; only newer messages are returned"
// @Param        conversation_id  query     string  false  "Conversation id (admin only)"
// @Success      200  {array}   domain.Message
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /chat/messages [get]
func (h *ChatHandler) List(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var since time.Time
	if raw := c.QueryParam("since"); raw != "" {
		since, err = time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "since must be RFC3339")
		}
	}

	messages, err := h.service.ListSince(c.Request().Context(), actor, c.QueryParam("conversation_id"), since)
	if err != nil {
		return err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return c.JSON(http.StatusOK, messages)
}

// Send stores one message in the caller's conversation.
//
// @Summary      Send a chat message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendMessageRequest  true  "Message"
// @Success      201   {object}  domain.Message
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /chat/messages [post]
func (h *ChatHandler) Send(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	msg, err := h.service.Send(c.Request().Context(), ports.SendMessageInput{
		Sender:         actor,
		ConversationID: req.ConversationID,
		Body:           req.Body,
		AttachmentURL:  req.AttachmentURL,
	})
	if err != nil {
		return err
	}

	metrics.MessagesSentTotal.WithLabelValues(string(actor.Role)).Inc()
	return c.JSON(http.StatusCreated, msg)
}

// Unread returns the caller's unread count. Best-effort: a counter outage
// reads as zero.
//
// @Summary      Unread message count
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  unreadResponse
// @Failure      401  {object}  map[string]string
// @Router       /chat/unread [get]
func (h *ChatHandler) Unread(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	n, err := h.service.Unread(c.Request().Context(), h.counterKey(actor))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, unreadResponse{Unread: n})
}

// MarkRead resets the caller's unread counter.
//
// @Summary      Mark chat as read
// @Tags         chat
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /chat/read [post]
func (h *ChatHandler) MarkRead(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkRead(c.Request().Context(), h.counterKey(actor)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// counterKey pools admin unread counts in one shared inbox; customers use
// their own id.
func (h *ChatHandler) counterKey(actor *domain.User) string {
	if actor.Role == domain.RoleAdmin {
		return domain.AdminInbox
	}
	return actor.ID
}
