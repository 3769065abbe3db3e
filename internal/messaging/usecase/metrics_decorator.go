package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	messagingDomain "github.com/accordia/securecomm/internal/messaging/domain"
	"github.com/accordia/securecomm/internal/metrics"
)

// messagingUseCaseWithMetrics decorates MessagingUseCase with metrics instrumentation.
type messagingUseCaseWithMetrics struct {
	next    MessagingUseCase
	metrics metrics.BusinessMetrics
}

// NewMessagingUseCaseWithMetrics wraps a MessagingUseCase with metrics recording.
func NewMessagingUseCaseWithMetrics(useCase MessagingUseCase, m metrics.BusinessMetrics) MessagingUseCase {
	return &messagingUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// GenerateUserKeyPair records metrics for key pair issuance operations.
func (d *messagingUseCaseWithMetrics) GenerateUserKeyPair(
	ctx context.Context,
	userID, password string,
) (*messagingDomain.PublicKeyInfo, error) {
	start := time.Now()
	info, err := d.next.GenerateUserKeyPair(ctx, userID, password)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "messaging", "key_pair_generate", status)
	d.metrics.RecordDuration(ctx, "messaging", "key_pair_generate", time.Since(start), status)

	return info, err
}

// GetUserPublicKey records metrics for public key lookups.
func (d *messagingUseCaseWithMetrics) GetUserPublicKey(ctx context.Context, userID string) (string, error) {
	start := time.Now()
	publicKey, err := d.next.GetUserPublicKey(ctx, userID)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "messaging", "public_key_get", status)
	d.metrics.RecordDuration(ctx, "messaging", "public_key_get", time.Since(start), status)

	return publicKey, err
}

// GetUserPrivateKey records metrics for private key unwrap operations.
// The ok=false path is recorded as success: refusing to unwrap is the
// expected outcome for a wrong password, not an operational failure.
func (d *messagingUseCaseWithMetrics) GetUserPrivateKey(
	ctx context.Context,
	userID, password string,
) (string, bool, error) {
	start := time.Now()
	privateKey, ok, err := d.next.GetUserPrivateKey(ctx, userID, password)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "messaging", "private_key_unwrap", status)
	d.metrics.RecordDuration(ctx, "messaging", "private_key_unwrap", time.Since(start), status)

	return privateKey, ok, err
}

// SendSecureMessage records metrics for message send operations.
func (d *messagingUseCaseWithMetrics) SendSecureMessage(
	ctx context.Context,
	senderID, recipientID, message string,
	messageType messagingDomain.MessageType,
	senderPassword string,
) (*messagingDomain.SecureMessage, error) {
	start := time.Now()
	secureMessage, err := d.next.SendSecureMessage(ctx, senderID, recipientID, message, messageType, senderPassword)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "messaging", "message_send", status)
	d.metrics.RecordDuration(ctx, "messaging", "message_send", time.Since(start), status)

	return secureMessage, err
}

// GetSecureMessages records metrics for conversation retrieval operations.
func (d *messagingUseCaseWithMetrics) GetSecureMessages(
	ctx context.Context,
	userID, password string,
	conversationWith string,
) ([]*messagingDomain.DecryptedMessage, error) {
	start := time.Now()
	messages, err := d.next.GetSecureMessages(ctx, userID, password, conversationWith)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "messaging", "messages_get", status)
	d.metrics.RecordDuration(ctx, "messaging", "messages_get", time.Since(start), status)

	return messages, err
}

// MarkMessageAsRead records metrics for read flag updates.
func (d *messagingUseCaseWithMetrics) MarkMessageAsRead(
	ctx context.Context,
	messageID uuid.UUID,
	userID string,
) error {
	start := time.Now()
	err := d.next.MarkMessageAsRead(ctx, messageID, userID)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "messaging", "message_mark_read", status)
	d.metrics.RecordDuration(ctx, "messaging", "message_mark_read", time.Since(start), status)

	return err
}

// DeleteSecureMessage records metrics for message deletion operations.
func (d *messagingUseCaseWithMetrics) DeleteSecureMessage(
	ctx context.Context,
	messageID uuid.UUID,
	userID string,
) error {
	start := time.Now()
	err := d.next.DeleteSecureMessage(ctx, messageID, userID)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "messaging", "message_delete", status)
	d.metrics.RecordDuration(ctx, "messaging", "message_delete", time.Since(start), status)

	return err
}

// GetConversationParticipants records metrics for participant listing.
func (d *messagingUseCaseWithMetrics) GetConversationParticipants(
	ctx context.Context,
	userID string,
	offset, limit int,
) ([]string, error) {
	start := time.Now()
	participants, err := d.next.GetConversationParticipants(ctx, userID, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "messaging", "participants_list", status)
	d.metrics.RecordDuration(ctx, "messaging", "participants_list", time.Since(start), status)

	return participants, err
}

// GetUnreadMessageCount records metrics for unread count queries.
func (d *messagingUseCaseWithMetrics) GetUnreadMessageCount(ctx context.Context, userID string) (int, error) {
	start := time.Now()
	count, err := d.next.GetUnreadMessageCount(ctx, userID)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "messaging", "unread_count_get", status)
	d.metrics.RecordDuration(ctx, "messaging", "unread_count_get", time.Since(start), status)

	return count, err
}
