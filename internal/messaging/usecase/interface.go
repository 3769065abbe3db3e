// Package usecase implements the secure messaging business logic: key pair
// issuance, end-to-end encrypted message exchange, and the read/delete
// lifecycle, coordinating the crypto services with the key/message store.
package usecase

import (
	"context"

	"github.com/google/uuid"

	messagingDomain "github.com/accordia/securecomm/internal/messaging/domain"
)

// KeyPairRepository defines persistence for user key pair records.
type KeyPairRepository interface {
	Create(ctx context.Context, record *messagingDomain.UserKeyPairRecord) error
	GetActiveByUserID(ctx context.Context, userID string) (*messagingDomain.UserKeyPairRecord, error)
	GetByUserIDAndVersion(ctx context.Context, userID string, version uint) (*messagingDomain.UserKeyPairRecord, error)
}

// MessageRepository defines persistence for secure messages.
type MessageRepository interface {
	Create(ctx context.Context, message *messagingDomain.SecureMessage) error
	GetByID(ctx context.Context, messageID uuid.UUID) (*messagingDomain.SecureMessage, error)
	ListByUser(ctx context.Context, userID string, counterpart string) ([]*messagingDomain.SecureMessage, error)
	MarkRead(ctx context.Context, messageID uuid.UUID) error
	Delete(ctx context.Context, messageID uuid.UUID) error
	CountUnread(ctx context.Context, userID string) (int, error)
	ListParticipants(ctx context.Context, userID string, offset, limit int) ([]string, error)
}

// MessagingUseCase defines the secure messaging operations.
type MessagingUseCase interface {
	// GenerateUserKeyPair issues a fresh key pair for the user, wraps the
	// private key under the password, and persists the record. Returns only
	// public material; the plaintext private key is never returned or logged.
	// Calling it again re-keys: a new version becomes active.
	GenerateUserKeyPair(ctx context.Context, userID, password string) (*messagingDomain.PublicKeyInfo, error)

	// GetUserPublicKey returns the user's active public key.
	// Returns ErrKeyPairNotFound if the user has never been issued one.
	GetUserPublicKey(ctx context.Context, userID string) (string, error)

	// GetUserPrivateKey unwraps the user's active private key with the
	// password. A wrong password and a missing record both yield ok=false
	// with no error, indistinguishably, to prevent account-existence probes.
	// The returned key is transient and must never be persisted.
	GetUserPrivateKey(ctx context.Context, userID, password string) (privateKey string, ok bool, err error)

	// SendSecureMessage encrypts a message to the recipient's public key,
	// signs it with the sender's private key, and persists it.
	SendSecureMessage(
		ctx context.Context,
		senderID, recipientID, message string,
		messageType messagingDomain.MessageType,
		senderPassword string,
	) (*messagingDomain.SecureMessage, error)

	// GetSecureMessages decrypts and verifies the user's conversation,
	// optionally filtered to one counterpart. Unverifiable messages are
	// returned with IsVerified=false rather than discarded.
	GetSecureMessages(
		ctx context.Context,
		userID, password string,
		conversationWith string,
	) ([]*messagingDomain.DecryptedMessage, error)

	// MarkMessageAsRead flags a message read; only the recipient may do so.
	MarkMessageAsRead(ctx context.Context, messageID uuid.UUID, userID string) error

	// DeleteSecureMessage removes a message; only sender or recipient may.
	DeleteSecureMessage(ctx context.Context, messageID uuid.UUID, userID string) error

	// GetConversationParticipants lists the user's distinct counterparts,
	// paginated.
	GetConversationParticipants(ctx context.Context, userID string, offset, limit int) ([]string, error)

	// GetUnreadMessageCount counts unread messages addressed to the user.
	GetUnreadMessageCount(ctx context.Context, userID string) (int, error)
}
