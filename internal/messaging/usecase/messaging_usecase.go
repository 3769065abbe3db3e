package usecase

import (
	"errors"
	"log/slog"
	"time"

	"context"

	"github.com/google/uuid"

	cryptoService "github.com/accordia/securecomm/internal/crypto/service"
	"github.com/accordia/securecomm/internal/database"
	apperrors "github.com/accordia/securecomm/internal/errors"
	messagingDomain "github.com/accordia/securecomm/internal/messaging/domain"
)

// messagingUseCase implements MessagingUseCase.
//
// All cryptographic work happens in-process through the injected services;
// the repositories are the only suspension points. Each key record and
// message is independently addressed, so no locking is needed here.
type messagingUseCase struct {
	txManager   database.TxManager
	keyPairRepo KeyPairRepository
	messageRepo MessageRepository
	cipher      cryptoService.Cipher
	engine      cryptoService.AsymmetricEngine
	logger      *slog.Logger
}

// NewMessagingUseCase creates a new messaging use case.
func NewMessagingUseCase(
	txManager database.TxManager,
	keyPairRepo KeyPairRepository,
	messageRepo MessageRepository,
	cipher cryptoService.Cipher,
	engine cryptoService.AsymmetricEngine,
	logger *slog.Logger,
) MessagingUseCase {
	return &messagingUseCase{
		txManager:   txManager,
		keyPairRepo: keyPairRepo,
		messageRepo: messageRepo,
		cipher:      cipher,
		engine:      engine,
		logger:      logger,
	}
}

// GenerateUserKeyPair issues a fresh key pair and persists it wrapped.
//
// Re-keying inserts the next version; prior versions stay stored so messages
// pinned to them remain decryptable with the same password.
func (m *messagingUseCase) GenerateUserKeyPair(
	ctx context.Context,
	userID, password string,
) (*messagingDomain.PublicKeyInfo, error) {
	keyPair, err := m.engine.GenerateKeyPair()
	if err != nil {
		return nil, err
	}

	wrapped, err := m.cipher.EncryptWithPassword([]byte(keyPair.PrivateKey), password)
	if err != nil {
		return nil, err
	}

	var record *messagingDomain.UserKeyPairRecord
	err = m.txManager.WithTx(ctx, func(txCtx context.Context) error {
		var version uint = 1
		existing, err := m.keyPairRepo.GetActiveByUserID(txCtx, userID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if existing != nil {
			version = existing.Version + 1
		}

		record = &messagingDomain.UserKeyPairRecord{
			ID:                uuid.Must(uuid.NewV7()),
			UserID:            userID,
			Version:           version,
			PublicKey:         keyPair.PublicKey,
			PrivateKeyWrapped: wrapped,
			CreatedAt:         time.Now().UTC(),
		}
		return m.keyPairRepo.Create(txCtx, record)
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("key pair issued",
		slog.String("user_id", userID),
		slog.Uint64("version", uint64(record.Version)),
	)

	info := record.Info()
	return &info, nil
}

// GetUserPublicKey returns the user's active public key.
func (m *messagingUseCase) GetUserPublicKey(ctx context.Context, userID string) (string, error) {
	record, err := m.keyPairRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", messagingDomain.ErrKeyPairNotFound
		}
		return "", err
	}
	return record.PublicKey, nil
}

// GetUserPrivateKey unwraps the user's active private key with the password.
//
// A missing record and a failed unwrap take the same return path: ok=false
// with a nil error. The caller cannot tell whether the user has no key pair
// or the password was wrong.
func (m *messagingUseCase) GetUserPrivateKey(
	ctx context.Context,
	userID, password string,
) (string, bool, error) {
	record, err := m.keyPairRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	return m.unwrapPrivateKey(record, password)
}

// unwrapPrivateKey decrypts the wrapped private key of one record.
func (m *messagingUseCase) unwrapPrivateKey(
	record *messagingDomain.UserKeyPairRecord,
	password string,
) (string, bool, error) {
	privateKey, err := m.cipher.DecryptWithPassword(record.PrivateKeyWrapped, password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			// Wrong password or corrupted blob; not distinguished.
			return "", false, nil
		}
		return "", false, err
	}
	return string(privateKey), true, nil
}

// SendSecureMessage encrypts, signs, and persists a message.
func (m *messagingUseCase) SendSecureMessage(
	ctx context.Context,
	senderID, recipientID, message string,
	messageType messagingDomain.MessageType,
	senderPassword string,
) (*messagingDomain.SecureMessage, error) {
	if !messagingDomain.ValidMessageType(messageType) {
		return nil, messagingDomain.ErrInvalidMessageType
	}

	recipientRecord, err := m.keyPairRepo.GetActiveByUserID(ctx, recipientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, messagingDomain.ErrRecipientKeyNotFound
		}
		return nil, err
	}

	senderKey, ok, err := m.GetUserPrivateKey(ctx, senderID, senderPassword)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, messagingDomain.ErrSenderAuthenticationFailed
	}

	envelope, err := m.engine.EncryptHybrid(message, recipientRecord.PublicKey)
	if err != nil {
		return nil, err
	}
	encryptedContent, err := cryptoService.SerializeEnvelope(envelope)
	if err != nil {
		return nil, err
	}

	signature, err := m.engine.SignMessage(message, senderKey)
	if err != nil {
		return nil, err
	}

	secureMessage := &messagingDomain.SecureMessage{
		ID:                  uuid.Must(uuid.NewV7()),
		SenderID:            senderID,
		RecipientID:         recipientID,
		EncryptedContent:    encryptedContent,
		Signature:           signature,
		MessageType:         messageType,
		RecipientKeyVersion: recipientRecord.Version,
		IsRead:              false,
		CreatedAt:           time.Now().UTC(),
	}

	if err := m.messageRepo.Create(ctx, secureMessage); err != nil {
		return nil, err
	}

	m.logger.Info("secure message sent",
		slog.String("message_id", secureMessage.ID.String()),
		slog.String("sender_id", senderID),
		slog.String("recipient_id", recipientID),
		slog.String("message_type", string(messageType)),
	)

	return secureMessage, nil
}

// GetSecureMessages decrypts and verifies the user's conversation.
//
// The user's private keys are unwrapped once per key version and cached for
// the duration of the call, so a conversation spanning a re-keying costs at
// most one extra derivation. Messages the user sent cannot be decrypted here
// (they are encrypted to the recipient's key, and no sender copy is kept);
// they are returned with empty content and IsVerified=false rather than
// omitted, so the conversation stays complete.
func (m *messagingUseCase) GetSecureMessages(
	ctx context.Context,
	userID, password string,
	conversationWith string,
) ([]*messagingDomain.DecryptedMessage, error) {
	messages, err := m.messageRepo.ListByUser(ctx, userID, conversationWith)
	if err != nil {
		return nil, err
	}

	privateKeys := make(map[uint]string)
	senderKeys := make(map[string]string)

	decrypted := make([]*messagingDomain.DecryptedMessage, 0, len(messages))
	for _, message := range messages {
		out := &messagingDomain.DecryptedMessage{
			ID:          message.ID,
			SenderID:    message.SenderID,
			RecipientID: message.RecipientID,
			MessageType: message.MessageType,
			IsRead:      message.IsRead,
			CreatedAt:   message.CreatedAt,
		}

		if message.RecipientID == userID {
			m.decryptAndVerify(ctx, message, userID, password, privateKeys, senderKeys, out)
		}

		decrypted = append(decrypted, out)
	}

	return decrypted, nil
}

// decryptAndVerify fills DecryptedContent and IsVerified on a message
// addressed to userID. Failures leave the zero values: empty content,
// IsVerified=false. They are surfaced, not hidden.
func (m *messagingUseCase) decryptAndVerify(
	ctx context.Context,
	message *messagingDomain.SecureMessage,
	userID, password string,
	privateKeys map[uint]string,
	senderKeys map[string]string,
	out *messagingDomain.DecryptedMessage,
) {
	privateKey, err := m.privateKeyForVersion(ctx, userID, password, message.RecipientKeyVersion, privateKeys)
	if err != nil || privateKey == "" {
		m.logWarn("failed to unwrap private key for message", message, err)
		return
	}

	envelope, err := cryptoService.ParseEnvelope(message.EncryptedContent)
	if err != nil {
		m.logWarn("failed to parse message envelope", message, err)
		return
	}

	plaintext, err := m.engine.DecryptHybrid(envelope, privateKey)
	if err != nil {
		m.logWarn("failed to decrypt message", message, err)
		return
	}
	out.DecryptedContent = plaintext

	senderPublicKey, ok := senderKeys[message.SenderID]
	if !ok {
		senderPublicKey, err = m.GetUserPublicKey(ctx, message.SenderID)
		if err != nil {
			m.logWarn("failed to fetch sender public key", message, err)
			senderPublicKey = ""
		}
		senderKeys[message.SenderID] = senderPublicKey
	}
	if senderPublicKey != "" {
		out.IsVerified = m.engine.VerifySignature(plaintext, message.Signature, senderPublicKey)
	}
}

// privateKeyForVersion unwraps and caches the private key for one version.
// An empty string in the cache marks a version that failed to unwrap.
func (m *messagingUseCase) privateKeyForVersion(
	ctx context.Context,
	userID, password string,
	version uint,
	cache map[uint]string,
) (string, error) {
	if key, ok := cache[version]; ok {
		return key, nil
	}

	record, err := m.keyPairRepo.GetByUserIDAndVersion(ctx, userID, version)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			cache[version] = ""
			return "", nil
		}
		return "", err
	}

	key, ok, err := m.unwrapPrivateKey(record, password)
	if err != nil {
		return "", err
	}
	if !ok {
		key = ""
	}
	cache[version] = key
	return key, nil
}

// MarkMessageAsRead flags a message read. Only the recipient may.
func (m *messagingUseCase) MarkMessageAsRead(
	ctx context.Context,
	messageID uuid.UUID,
	userID string,
) error {
	message, err := m.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return messagingDomain.ErrMessageNotFound
		}
		return err
	}

	if message.RecipientID != userID {
		return messagingDomain.ErrAccessDenied
	}

	return m.messageRepo.MarkRead(ctx, messageID)
}

// DeleteSecureMessage removes a message. Only sender or recipient may.
func (m *messagingUseCase) DeleteSecureMessage(
	ctx context.Context,
	messageID uuid.UUID,
	userID string,
) error {
	message, err := m.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return messagingDomain.ErrMessageNotFound
		}
		return err
	}

	if message.SenderID != userID && message.RecipientID != userID {
		return messagingDomain.ErrAccessDenied
	}

	if err := m.messageRepo.Delete(ctx, messageID); err != nil {
		return err
	}

	m.logger.Info("secure message deleted",
		slog.String("message_id", messageID.String()),
		slog.String("user_id", userID),
	)
	return nil
}

// GetConversationParticipants lists the user's distinct counterparts, paginated.
func (m *messagingUseCase) GetConversationParticipants(
	ctx context.Context,
	userID string,
	offset, limit int,
) ([]string, error) {
	return m.messageRepo.ListParticipants(ctx, userID, offset, limit)
}

// GetUnreadMessageCount counts unread messages addressed to the user.
func (m *messagingUseCase) GetUnreadMessageCount(ctx context.Context, userID string) (int, error) {
	return m.messageRepo.CountUnread(ctx, userID)
}

// logWarn logs a per-message failure with diagnostic context. Message
// contents and key material never appear in logs.
func (m *messagingUseCase) logWarn(msg string, message *messagingDomain.SecureMessage, err error) {
	m.logger.Warn(msg,
		slog.String("message_id", message.ID.String()),
		slog.String("sender_id", message.SenderID),
		slog.String("recipient_id", message.RecipientID),
		slog.Any("error", err),
	)
}
