package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/accordia/securecomm/internal/crypto/domain"
	apperrors "github.com/accordia/securecomm/internal/errors"
	messagingDomain "github.com/accordia/securecomm/internal/messaging/domain"
)

const testWrappedKey = `{"encryptedData":"dead","iv":"beef","tag":"cafe","salt":"0102"}`

var keyPairColumns = []string{"id", "user_id", "version", "public_key", "private_key_wrapped", "created_at"}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, mock
}

func testKeyPairRecord(t *testing.T) *messagingDomain.UserKeyPairRecord {
	t.Helper()

	wrapped, err := cryptoDomain.NewEncryptedBlob([]byte(testWrappedKey))
	require.NoError(t, err)

	return &messagingDomain.UserKeyPairRecord{
		ID:                uuid.Must(uuid.NewV7()),
		UserID:            "alice",
		Version:           1,
		PublicKey:         "-----BEGIN PUBLIC KEY-----\nMIIB\n-----END PUBLIC KEY-----",
		PrivateKeyWrapped: wrapped,
		CreatedAt:         time.Now().UTC(),
	}
}

func TestNewPostgreSQLKeyPairRepository(t *testing.T) {
	db, _ := newMockDB(t)

	repo := NewPostgreSQLKeyPairRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &PostgreSQLKeyPairRepository{}, repo)
}

func TestPostgreSQLKeyPairRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLKeyPairRepository(db)
	record := testKeyPairRecord(t)

	wrapped, err := record.PrivateKeyWrapped.Serialize()
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO user_key_pairs").
		WithArgs(record.ID, record.UserID, record.Version, record.PublicKey, string(wrapped), record.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(context.Background(), record)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLKeyPairRepository_Create_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLKeyPairRepository(db)
	record := testKeyPairRecord(t)

	mock.ExpectExec("INSERT INTO user_key_pairs").
		WillReturnError(errors.New("duplicate key value violates unique constraint"))

	err := repo.Create(context.Background(), record)
	assert.ErrorContains(t, err, "failed to create key pair record")
}

func TestPostgreSQLKeyPairRepository_GetActiveByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLKeyPairRepository(db)
	record := testKeyPairRecord(t)

	rows := sqlmock.NewRows(keyPairColumns).
		AddRow(record.ID.String(), record.UserID, record.Version, record.PublicKey, testWrappedKey, record.CreatedAt)

	mock.ExpectQuery("SELECT (.+) FROM user_key_pairs").
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.GetActiveByUserID(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, "alice", got.UserID)
	assert.Equal(t, uint(1), got.Version)
	assert.Equal(t, record.PublicKey, got.PublicKey)
	assert.True(t, record.PrivateKeyWrapped.Equal(got.PrivateKeyWrapped), "wrapped key must survive the round trip")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLKeyPairRepository_GetActiveByUserID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLKeyPairRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM user_key_pairs").
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	got, err := repo.GetActiveByUserID(context.Background(), "nobody")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPostgreSQLKeyPairRepository_GetActiveByUserID_CorruptedWrappedKey(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLKeyPairRepository(db)
	record := testKeyPairRecord(t)

	rows := sqlmock.NewRows(keyPairColumns).
		AddRow(record.ID.String(), record.UserID, record.Version, record.PublicKey, "not-json", record.CreatedAt)

	mock.ExpectQuery("SELECT (.+) FROM user_key_pairs").
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.GetActiveByUserID(context.Background(), "alice")
	assert.Nil(t, got)
	assert.ErrorContains(t, err, "failed to parse wrapped private key")
}

func TestPostgreSQLKeyPairRepository_GetByUserIDAndVersion(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLKeyPairRepository(db)
	record := testKeyPairRecord(t)
	record.Version = 3

	rows := sqlmock.NewRows(keyPairColumns).
		AddRow(record.ID.String(), record.UserID, record.Version, record.PublicKey, testWrappedKey, record.CreatedAt)

	mock.ExpectQuery("SELECT (.+) FROM user_key_pairs").
		WithArgs("alice", uint(3)).
		WillReturnRows(rows)

	got, err := repo.GetByUserIDAndVersion(context.Background(), "alice", 3)
	require.NoError(t, err)
	assert.Equal(t, uint(3), got.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLKeyPairRepository_GetByUserIDAndVersion_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLKeyPairRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM user_key_pairs").
		WithArgs("alice", uint(9)).
		WillReturnError(sql.ErrNoRows)

	got, err := repo.GetByUserIDAndVersion(context.Background(), "alice", 9)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
