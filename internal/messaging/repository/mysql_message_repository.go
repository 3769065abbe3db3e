package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/accordia/securecomm/internal/database"
	apperrors "github.com/accordia/securecomm/internal/errors"
	messagingDomain "github.com/accordia/securecomm/internal/messaging/domain"
)

// MySQLMessageRepository implements SecureMessage persistence for MySQL.
type MySQLMessageRepository struct {
	db *sql.DB
}

// NewMySQLMessageRepository creates a new MySQLMessageRepository.
func NewMySQLMessageRepository(db *sql.DB) *MySQLMessageRepository {
	return &MySQLMessageRepository{db: db}
}

// Create inserts a new secure message.
func (m *MySQLMessageRepository) Create(
	ctx context.Context,
	message *messagingDomain.SecureMessage,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO secure_messages (` + messageColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		message.ID,
		message.SenderID,
		message.RecipientID,
		message.EncryptedContent,
		message.Signature,
		message.MessageType,
		message.RecipientKeyVersion,
		message.IsRead,
		message.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create secure message")
	}
	return nil
}

// GetByID retrieves a message by its ID.
func (m *MySQLMessageRepository) GetByID(
	ctx context.Context,
	messageID uuid.UUID,
) (*messagingDomain.SecureMessage, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + messageColumns + `
			  FROM secure_messages
			  WHERE id = ?`

	var message messagingDomain.SecureMessage
	err := querier.QueryRowContext(ctx, query, messageID).Scan(
		&message.ID,
		&message.SenderID,
		&message.RecipientID,
		&message.EncryptedContent,
		&message.Signature,
		&message.MessageType,
		&message.RecipientKeyVersion,
		&message.IsRead,
		&message.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get secure message")
	}

	return &message, nil
}

// ListByUser retrieves all messages where the user is sender or recipient,
// optionally filtered to one counterpart, oldest first.
func (m *MySQLMessageRepository) ListByUser(
	ctx context.Context,
	userID string,
	counterpart string,
) ([]*messagingDomain.SecureMessage, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + messageColumns + `
			  FROM secure_messages
			  WHERE (sender_id = ? OR recipient_id = ?)`
	args := []any{userID, userID}

	if counterpart != "" {
		query += ` AND (sender_id = ? OR recipient_id = ?)`
		args = append(args, counterpart, counterpart)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list secure messages")
	}
	defer rows.Close()

	var messages []*messagingDomain.SecureMessage
	for rows.Next() {
		var message messagingDomain.SecureMessage
		if err := rows.Scan(
			&message.ID,
			&message.SenderID,
			&message.RecipientID,
			&message.EncryptedContent,
			&message.Signature,
			&message.MessageType,
			&message.RecipientKeyVersion,
			&message.IsRead,
			&message.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan secure message")
		}
		messages = append(messages, &message)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate secure messages")
	}

	return messages, nil
}

// MarkRead sets the read flag on a message.
func (m *MySQLMessageRepository) MarkRead(ctx context.Context, messageID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE secure_messages SET is_read = TRUE WHERE id = ?`
	result, err := querier.ExecContext(ctx, query, messageID)
	if err != nil {
		return apperrors.Wrap(err, "failed to mark message as read")
	}

	return requireOneRow(result)
}

// Delete removes a message.
func (m *MySQLMessageRepository) Delete(ctx context.Context, messageID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM secure_messages WHERE id = ?`
	result, err := querier.ExecContext(ctx, query, messageID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete secure message")
	}

	return requireOneRow(result)
}

// CountUnread counts unread messages addressed to the user.
func (m *MySQLMessageRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT COUNT(*) FROM secure_messages WHERE recipient_id = ? AND is_read = FALSE`

	var count int
	if err := querier.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count unread messages")
	}
	return count, nil
}

// ListParticipants returns the distinct counterparts the user has exchanged
// messages with, paginated.
func (m *MySQLMessageRepository) ListParticipants(
	ctx context.Context,
	userID string,
	offset, limit int,
) ([]string, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT DISTINCT CASE WHEN sender_id = ? THEN recipient_id ELSE sender_id END AS participant
			  FROM secure_messages
			  WHERE sender_id = ? OR recipient_id = ?
			  ORDER BY participant
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, userID, userID, userID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list conversation participants")
	}
	defer rows.Close()

	var participants []string
	for rows.Next() {
		var participant string
		if err := rows.Scan(&participant); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan participant")
		}
		participants = append(participants, participant)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate participants")
	}

	return participants, nil
}
