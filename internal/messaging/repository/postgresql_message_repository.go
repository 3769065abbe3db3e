package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/accordia/securecomm/internal/database"
	apperrors "github.com/accordia/securecomm/internal/errors"
	messagingDomain "github.com/accordia/securecomm/internal/messaging/domain"
)

// messageColumns is the column list shared by all message queries.
const messageColumns = `id, sender_id, recipient_id, encrypted_content, signature,
			  message_type, recipient_key_version, is_read, created_at`

// PostgreSQLMessageRepository implements SecureMessage persistence for PostgreSQL.
type PostgreSQLMessageRepository struct {
	db *sql.DB
}

// NewPostgreSQLMessageRepository creates a new PostgreSQLMessageRepository.
func NewPostgreSQLMessageRepository(db *sql.DB) *PostgreSQLMessageRepository {
	return &PostgreSQLMessageRepository{db: db}
}

// Create inserts a new secure message.
func (p *PostgreSQLMessageRepository) Create(
	ctx context.Context,
	message *messagingDomain.SecureMessage,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO secure_messages (` + messageColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

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
func (p *PostgreSQLMessageRepository) GetByID(
	ctx context.Context,
	messageID uuid.UUID,
) (*messagingDomain.SecureMessage, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + messageColumns + `
			  FROM secure_messages
			  WHERE id = $1`

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
func (p *PostgreSQLMessageRepository) ListByUser(
	ctx context.Context,
	userID string,
	counterpart string,
) ([]*messagingDomain.SecureMessage, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + messageColumns + `
			  FROM secure_messages
			  WHERE (sender_id = $1 OR recipient_id = $1)`
	args := []any{userID}

	if counterpart != "" {
		query += ` AND (sender_id = $2 OR recipient_id = $2)`
		args = append(args, counterpart)
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
func (p *PostgreSQLMessageRepository) MarkRead(ctx context.Context, messageID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE secure_messages SET is_read = TRUE WHERE id = $1`
	result, err := querier.ExecContext(ctx, query, messageID)
	if err != nil {
		return apperrors.Wrap(err, "failed to mark message as read")
	}

	return requireOneRow(result)
}

// Delete removes a message.
func (p *PostgreSQLMessageRepository) Delete(ctx context.Context, messageID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM secure_messages WHERE id = $1`
	result, err := querier.ExecContext(ctx, query, messageID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete secure message")
	}

	return requireOneRow(result)
}

// CountUnread counts unread messages addressed to the user.
func (p *PostgreSQLMessageRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM secure_messages WHERE recipient_id = $1 AND is_read = FALSE`

	var count int
	if err := querier.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count unread messages")
	}
	return count, nil
}

// ListParticipants returns the distinct counterparts the user has exchanged
// messages with, paginated.
func (p *PostgreSQLMessageRepository) ListParticipants(
	ctx context.Context,
	userID string,
	offset, limit int,
) ([]string, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT DISTINCT CASE WHEN sender_id = $1 THEN recipient_id ELSE sender_id END
			  FROM secure_messages
			  WHERE sender_id = $1 OR recipient_id = $1
			  ORDER BY 1
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, userID, limit, offset)
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

// requireOneRow maps a zero-row mutation to ErrNotFound.
func requireOneRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check affected rows")
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
