package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/accordia/securecomm/internal/errors"
)

// The MySQL repositories differ from the PostgreSQL ones in placeholder style
// and argument arity, so the tests here focus on the argument wiring.

func TestMySQLKeyPairRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLKeyPairRepository(db)
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

func TestMySQLKeyPairRepository_GetActiveByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLKeyPairRepository(db)
	record := testKeyPairRecord(t)

	rows := sqlmock.NewRows(keyPairColumns).
		AddRow(record.ID.String(), record.UserID, record.Version, record.PublicKey, testWrappedKey, record.CreatedAt)

	mock.ExpectQuery("SELECT (.+) FROM user_key_pairs").
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.GetActiveByUserID(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)
	assert.True(t, record.PrivateKeyWrapped.Equal(got.PrivateKeyWrapped))
}

func TestMySQLKeyPairRepository_GetByUserIDAndVersion_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLKeyPairRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM user_key_pairs").
		WithArgs("alice", uint(2)).
		WillReturnError(sql.ErrNoRows)

	got, err := repo.GetByUserIDAndVersion(context.Background(), "alice", 2)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMySQLMessageRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLMessageRepository(db)
	message := testSecureMessage(t)

	mock.ExpectExec("INSERT INTO secure_messages").
		WithArgs(
			message.ID,
			message.SenderID,
			message.RecipientID,
			message.EncryptedContent,
			message.Signature,
			message.MessageType,
			message.RecipientKeyVersion,
			message.IsRead,
			message.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), message)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLMessageRepository_ListByUser_RepeatsUserArg(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLMessageRepository(db)
	message := testSecureMessage(t)

	rows := addMessageRow(sqlmock.NewRows(messageColumnNames), message)

	// MySQL has no numbered placeholders, so the user and counterpart
	// arguments are passed once per occurrence.
	mock.ExpectQuery("SELECT (.+) FROM secure_messages").
		WithArgs("alice", "alice", "bob", "bob").
		WillReturnRows(rows)

	messages, err := repo.ListByUser(context.Background(), "alice", "bob")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLMessageRepository_MarkRead_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLMessageRepository(db)

	mock.ExpectExec("UPDATE secure_messages SET is_read").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkRead(context.Background(), uuid.Must(uuid.NewV7()))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMySQLMessageRepository_CountUnread(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLMessageRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountUnread(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMySQLMessageRepository_ListParticipants(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLMessageRepository(db)

	rows := sqlmock.NewRows([]string{"participant"}).AddRow("bob")
	mock.ExpectQuery("SELECT DISTINCT").
		WithArgs("alice", "alice", "alice", 50, 0).
		WillReturnRows(rows)

	participants, err := repo.ListParticipants(context.Background(), "alice", 0, 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, participants)
	assert.NoError(t, mock.ExpectationsWereMet())
}
