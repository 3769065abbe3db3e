// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	messagingDomain "github.com/accordia/securecomm/internal/messaging/domain"
	customValidation "github.com/accordia/securecomm/internal/validation"
)

// GenerateKeyPairRequest contains the parameters for issuing a user key pair.
type GenerateKeyPairRequest struct {
	Password string `json:"password"`
}

// Validate checks if the generate key pair request is valid.
func (r *GenerateKeyPairRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password,
			validation.Required,
			customValidation.NotBlank,
			customValidation.PasswordStrength{MinLength: 8},
		),
	)
}

// SendMessageRequest contains the parameters for sending a secure message.
type SendMessageRequest struct {
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id"`
	Message     string `json:"message"`
	MessageType string `json:"message_type"` // "text", "proposal", "document" or "system"
	Password    string `json:"password"`
}

// Validate checks if the send message request is valid.
func (r *SendMessageRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SenderID,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.Length(1, 255),
		),
		validation.Field(&r.RecipientID,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.Length(1, 255),
		),
		validation.Field(&r.Message,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.MessageType,
			validation.Required,
			validation.By(validateMessageType),
		),
		validation.Field(&r.Password,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// ListMessagesRequest contains the parameters for retrieving a conversation.
// The password is needed to unwrap the reader's private key, so retrieval is
// a POST with a body rather than a GET.
type ListMessagesRequest struct {
	UserID           string `json:"user_id"`
	Password         string `json:"password"`
	ConversationWith string `json:"conversation_with,omitempty"`
}

// Validate checks if the list messages request is valid.
func (r *ListMessagesRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.Length(1, 255),
		),
		validation.Field(&r.Password,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.ConversationWith,
			validation.Length(0, 255),
		),
	)
}

// MessageActionRequest identifies the acting user for read/delete operations.
type MessageActionRequest struct {
	UserID string `json:"user_id"`
}

// Validate checks if the message action request is valid.
func (r *MessageActionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.Length(1, 255),
		),
	)
}

// validateMessageType validates that the message type is supported.
func validateMessageType(value interface{}) error {
	t, ok := value.(string)
	if !ok {
		return validation.NewError("validation_message_type", "must be a string")
	}
	if !messagingDomain.ValidMessageType(messagingDomain.MessageType(t)) {
		return validation.NewError(
			"validation_message_type",
			"must be 'text', 'proposal', 'document' or 'system'",
		)
	}
	return nil
}
