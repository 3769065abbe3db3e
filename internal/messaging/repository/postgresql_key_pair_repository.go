// Package repository implements persistence for secure messaging: user key
// pair records and encrypted messages, for both PostgreSQL and MySQL.
//
// Wrapped private keys and encrypted content are stored in their serialized
// wire forms; repositories never see plaintext key material.
package repository

import (
	"context"
	"database/sql"

	"github.com/accordia/securecomm/internal/database"
	apperrors "github.com/accordia/securecomm/internal/errors"
	messagingDomain "github.com/accordia/securecomm/internal/messaging/domain"
)

// PostgreSQLKeyPairRepository implements UserKeyPairRecord persistence for PostgreSQL.
type PostgreSQLKeyPairRepository struct {
	db *sql.DB
}

// NewPostgreSQLKeyPairRepository creates a new PostgreSQLKeyPairRepository.
func NewPostgreSQLKeyPairRepository(db *sql.DB) *PostgreSQLKeyPairRepository {
	return &PostgreSQLKeyPairRepository{db: db}
}

// Create inserts a new key pair record.
func (p *PostgreSQLKeyPairRepository) Create(
	ctx context.Context,
	record *messagingDomain.UserKeyPairRecord,
) error {
	querier := database.GetTx(ctx, p.db)

	wrapped, err := record.PrivateKeyWrapped.Serialize()
	if err != nil {
		return apperrors.Wrap(err, "failed to serialize wrapped private key")
	}

	query := `INSERT INTO user_key_pairs (id, user_id, version, public_key, private_key_wrapped, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

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
func (p *PostgreSQLKeyPairRepository) GetActiveByUserID(
	ctx context.Context,
	userID string,
) (*messagingDomain.UserKeyPairRecord, error) {
	query := `SELECT id, user_id, version, public_key, private_key_wrapped, created_at
			  FROM user_key_pairs
			  WHERE user_id = $1
			  ORDER BY version DESC
			  LIMIT 1`

	return p.scanOne(ctx, query, userID)
}

// GetByUserIDAndVersion retrieves a specific key pair version for a user.
// Used to unwrap messages pinned to a retired key version after re-keying.
func (p *PostgreSQLKeyPairRepository) GetByUserIDAndVersion(
	ctx context.Context,
	userID string,
	version uint,
) (*messagingDomain.UserKeyPairRecord, error) {
	query := `SELECT id, user_id, version, public_key, private_key_wrapped, created_at
			  FROM user_key_pairs
			  WHERE user_id = $1 AND version = $2
			  LIMIT 1`

	return p.scanOne(ctx, query, userID, version)
}

// scanOne runs a single-row key pair query and maps sql.ErrNoRows to ErrNotFound.
func (p *PostgreSQLKeyPairRepository) scanOne(
	ctx context.Context,
	query string,
	args ...any,
) (*messagingDomain.UserKeyPairRecord, error) {
	querier := database.GetTx(ctx, p.db)

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
