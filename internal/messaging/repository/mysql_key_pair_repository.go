package repository

import (
	"context"
	"database/sql"

	cryptoDomain "github.com/accordia/securecomm/internal/crypto/domain"
	"github.com/accordia/securecomm/internal/database"
	apperrors "github.com/accordia/securecomm/internal/errors"
	messagingDomain "github.com/accordia/securecomm/internal/messaging/domain"
)

// parseWrappedKey parses the stored wire form of a wrapped private key.
func parseWrappedKey(wrapped string) (cryptoDomain.EncryptedBlob, error) {
	blob, err := cryptoDomain.NewEncryptedBlob([]byte(wrapped))
	if err != nil {
		return cryptoDomain.EncryptedBlob{}, apperrors.Wrap(err, "failed to parse wrapped private key")
	}
	return blob, nil
}

// MySQLKeyPairRepository implements UserKeyPairRecord persistence for MySQL.
type MySQLKeyPairRepository struct {
	db *sql.DB
}

// NewMySQLKeyPairRepository creates a new MySQLKeyPairRepository.
func NewMySQLKeyPairRepository(db *sql.DB) *MySQLKeyPairRepository {
	return &MySQLKeyPairRepository{db: db}
}

// Create inserts a new key pair record.
func (m *MySQLKeyPairRepository) Create(
	ctx context.Context,
	record *messagingDomain.UserKeyPairRecord,
) error {
	querier := database.GetTx(ctx, m.db)

	wrapped, err := record.PrivateKeyWrapped.Serialize()
	if err != nil {
		return apperrors.Wrap(err, "failed to serialize wrapped private key")
	}

	query := `INSERT INTO user_key_pairs (id, user_id, version, public_key, private_key_wrapped, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		record.ID,
		record.UserID,
		record.Version,
		record.PublicKey,
		string(wrapped),
		record.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create key pair record")
	}
	return nil
}

// GetActiveByUserID retrieves the highest-version key pair record for a user.
func (m *MySQLKeyPairRepository) GetActiveByUserID(
	ctx context.Context,
	userID string,
) (*messagingDomain.UserKeyPairRecord, error) {
	query := `SELECT id, user_id, version, public_key, private_key_wrapped, created_at
			  FROM user_key_pairs
			  WHERE user_id = ?
			  ORDER BY version DESC
			  LIMIT 1`

	return m.scanOne(ctx, query, userID)
}

// GetByUserIDAndVersion retrieves a specific key pair version for a user.
func (m *MySQLKeyPairRepository) GetByUserIDAndVersion(
	ctx context.Context,
	userID string,
	version uint,
) (*messagingDomain.UserKeyPairRecord, error) {
	query := `SELECT id, user_id, version, public_key, private_key_wrapped, created_at
			  FROM user_key_pairs
			  WHERE user_id = ? AND version = ?
			  LIMIT 1`

	return m.scanOne(ctx, query, userID, version)
}

// scanOne runs a single-row key pair query and maps sql.ErrNoRows to ErrNotFound.
func (m *MySQLKeyPairRepository) scanOne(
	ctx context.Context,
	query string,
	args ...any,
) (*messagingDomain.UserKeyPairRecord, error) {
	querier := database.GetTx(ctx, m.db)

	var record messagingDomain.UserKeyPairRecord
	var wrapped string
	err := querier.QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&record.UserID,
		&record.Version,
		&record.PublicKey,
		&wrapped,
		&record.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get key pair record")
	}

	blob, err := parseWrappedKey(wrapped)
	if err != nil {
		return nil, err
	}
	record.PrivateKeyWrapped = blob

	return &record, nil
}
