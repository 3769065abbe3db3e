package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/accordia/securecomm/internal/httputil"
	messagingDomain "github.com/accordia/securecomm/internal/messaging/domain"
	"github.com/accordia/securecomm/internal/messaging/http/dto"
	messagingUseCase "github.com/accordia/securecomm/internal/messaging/usecase"
	customValidation "github.com/accordia/securecomm/internal/validation"
)

// MessageHandler handles HTTP requests for the secure message lifecycle.
type MessageHandler struct {
	messagingUseCase messagingUseCase.MessagingUseCase
	logger           *slog.Logger
}

// NewMessageHandler creates a new message handler with required dependencies.
func NewMessageHandler(
	useCase messagingUseCase.MessagingUseCase,
	logger *slog.Logger,
) *MessageHandler {
	return &MessageHandler{
		messagingUseCase: useCase,
		logger:           logger,
	}
}

// SendHandler encrypts, signs, and stores a message.
// POST /v1/messages
// Returns 201 Created with the stored message metadata. The plaintext is
// never echoed back.
func (h *MessageHandler) SendHandler(c *gin.Context) {
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	message, err := h.messagingUseCase.SendSecureMessage(
		c.Request.Context(),
		req.SenderID,
		req.RecipientID,
		req.Message,
		messagingDomain.MessageType(req.MessageType),
		req.Password,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapMessageResponse(message))
}

// ListHandler decrypts and returns the user's conversation.
// POST /v1/messages/list
// A POST because the body carries the unwrap password; passwords never
// appear in URLs or query strings.
func (h *MessageHandler) ListHandler(c *gin.Context) {
	var req dto.ListMessagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	messages, err := h.messagingUseCase.GetSecureMessages(
		c.Request.Context(),
		req.UserID,
		req.Password,
		req.ConversationWith,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapListMessagesResponse(messages))
}

// MarkReadHandler flags a message as read.
// POST /v1/messages/:id/read
// Returns 204 No Content, 403 Forbidden if the caller is not the recipient.
func (h *MessageHandler) MarkReadHandler(c *gin.Context) {
	messageID, req, ok := h.bindMessageAction(c)
	if !ok {
		return
	}

	if err := h.messagingUseCase.MarkMessageAsRead(c.Request.Context(), messageID, req.UserID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteHandler removes a message.
// DELETE /v1/messages/:id
// Returns 204 No Content, 403 Forbidden if the caller is neither party.
func (h *MessageHandler) DeleteHandler(c *gin.Context) {
	messageID, req, ok := h.bindMessageAction(c)
	if !ok {
		return
	}

	if err := h.messagingUseCase.DeleteSecureMessage(c.Request.Context(), messageID, req.UserID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ParticipantsHandler lists the user's conversation counterparts.
// GET /v1/users/:id/participants?offset=0&limit=50
func (h *MessageHandler) ParticipantsHandler(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		httputil.HandleBadRequestGin(c, fmt.Errorf("user id cannot be empty"), h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	participants, err := h.messagingUseCase.GetConversationParticipants(c.Request.Context(), userID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if participants == nil {
		participants = []string{}
	}
	c.JSON(http.StatusOK, dto.ParticipantsResponse{Participants: participants})
}

// UnreadCountHandler returns the user's unread message count.
// GET /v1/users/:id/unread-count
func (h *MessageHandler) UnreadCountHandler(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		httputil.HandleBadRequestGin(c, fmt.Errorf("user id cannot be empty"), h.logger)
		return
	}

	count, err := h.messagingUseCase.GetUnreadMessageCount(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.UnreadCountResponse{UnreadCount: count})
}

// bindMessageAction parses the message ID param and the acting-user body
// shared by the read and delete endpoints.
func (h *MessageHandler) bindMessageAction(c *gin.Context) (uuid.UUID, dto.MessageActionRequest, bool) {
	var req dto.MessageActionRequest

	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid message id: %w", err), h.logger)
		return uuid.Nil, req, false
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return uuid.Nil, req, false
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return uuid.Nil, req, false
	}

	return messageID, req, true
}
