package dto

import (
	"time"

	messagingDomain "github.com/accordia/securecomm/internal/messaging/domain"
)

// PublicKeyResponse carries a user's public key material and metadata.
type PublicKeyResponse struct {
	UserID    string    `json:"user_id"`
	Version   uint      `json:"version"`
	PublicKey string    `json:"public_key"`
	CreatedAt time.Time `json:"created_at"`
}

// MapPublicKeyResponse converts PublicKeyInfo to its response form.
func MapPublicKeyResponse(info *messagingDomain.PublicKeyInfo) PublicKeyResponse {
	return PublicKeyResponse{
		UserID:    info.UserID,
		Version:   info.Version,
		PublicKey: info.PublicKey,
		CreatedAt: info.CreatedAt,
	}
}

// MessageResponse carries a stored secure message. Content stays encrypted.
type MessageResponse struct {
	ID                  string    `json:"id"`
	SenderID            string    `json:"sender_id"`
	RecipientID         string    `json:"recipient_id"`
	MessageType         string    `json:"message_type"`
	RecipientKeyVersion uint      `json:"recipient_key_version"`
	IsRead              bool      `json:"is_read"`
	CreatedAt           time.Time `json:"created_at"`
}

// MapMessageResponse converts a SecureMessage to its response form. The
// encrypted content and signature are deliberately not echoed back.
func MapMessageResponse(message *messagingDomain.SecureMessage) MessageResponse {
	return MessageResponse{
		ID:                  message.ID.String(),
		SenderID:            message.SenderID,
		RecipientID:         message.RecipientID,
		MessageType:         string(message.MessageType),
		RecipientKeyVersion: message.RecipientKeyVersion,
		IsRead:              message.IsRead,
		CreatedAt:           message.CreatedAt,
	}
}

// DecryptedMessageResponse carries one decrypted conversation entry.
type DecryptedMessageResponse struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Content     string    `json:"content"`
	MessageType string    `json:"message_type"`
	IsRead      bool      `json:"is_read"`
	IsVerified  bool      `json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListMessagesResponse wraps a decrypted conversation.
type ListMessagesResponse struct {
	Messages []DecryptedMessageResponse `json:"messages"`
}

// MapListMessagesResponse converts decrypted messages to their response form.
func MapListMessagesResponse(messages []*messagingDomain.DecryptedMessage) ListMessagesResponse {
	out := ListMessagesResponse{
		Messages: make([]DecryptedMessageResponse, 0, len(messages)),
	}
	for _, message := range messages {
		out.Messages = append(out.Messages, DecryptedMessageResponse{
			ID:          message.ID.String(),
			SenderID:    message.SenderID,
			RecipientID: message.RecipientID,
			Content:     message.DecryptedContent,
			MessageType: string(message.MessageType),
			IsRead:      message.IsRead,
			IsVerified:  message.IsVerified,
			CreatedAt:   message.CreatedAt,
		})
	}
	return out
}

// ParticipantsResponse lists a user's conversation counterparts.
type ParticipantsResponse struct {
	Participants []string `json:"participants"`
}

// UnreadCountResponse carries the unread message count for a user.
type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}
