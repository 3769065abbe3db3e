package domain

import (
	"time"

	"github.com/google/uuid"
)

// MessageType categorizes a secure message for the consuming services.
type MessageType string

const (
	MessageTypeText     MessageType = "text"
	MessageTypeProposal MessageType = "proposal"
	MessageTypeDocument MessageType = "document"
	MessageTypeSystem   MessageType = "system"
)

// ValidMessageType reports whether t is one of the known message types.
func ValidMessageType(t MessageType) bool {
	switch t {
	case MessageTypeText, MessageTypeProposal, MessageTypeDocument, MessageTypeSystem:
		return true
	}
	return false
}

// SecureMessage is an end-to-end encrypted message between two users.
//
// EncryptedContent is a hybrid envelope decryptable only by the recipient's
// private key; Signature is verifiable only with the sender's public key.
// RecipientKeyVersion pins the recipient key pair version used, so the
// message stays decryptable after the recipient re-keys.
//
// Messages are immutable except for the IsRead flag and authorized deletion
// by either party.
type SecureMessage struct {
	ID                  uuid.UUID
	SenderID            string
	RecipientID         string
	EncryptedContent    string
	Signature           string
	MessageType         MessageType
	RecipientKeyVersion uint
	IsRead              bool
	CreatedAt           time.Time
}

// DecryptedMessage is a SecureMessage as surfaced to its reader: content
// decrypted where possible and the signature verification result attached.
//
// IsVerified=false is surfaced rather than the message being discarded, so
// integrity failures reach the caller instead of being hidden.
type DecryptedMessage struct {
	ID               uuid.UUID
	SenderID         string
	RecipientID      string
	DecryptedContent string
	MessageType      MessageType
	IsRead           bool
	IsVerified       bool
	CreatedAt        time.Time
}
