package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	messagingDomain "github.com/accordia/securecomm/internal/messaging/domain"
)

// mockTxManager runs the transactional function directly; tests assert on
// repository calls, not on transaction plumbing.
type mockTxManager struct {
	mock.Mock
}

func (m *mockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// mockKeyPairRepository is a mock implementation of KeyPairRepository.
type mockKeyPairRepository struct {
	mock.Mock
}

func (m *mockKeyPairRepository) Create(ctx context.Context, record *messagingDomain.UserKeyPairRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockKeyPairRepository) GetActiveByUserID(
	ctx context.Context,
	userID string,
) (*messagingDomain.UserKeyPairRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messagingDomain.UserKeyPairRecord), args.Error(1)
}

func (m *mockKeyPairRepository) GetByUserIDAndVersion(
	ctx context.Context,
	userID string,
	version uint,
) (*messagingDomain.UserKeyPairRecord, error) {
	args := m.Called(ctx, userID, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messagingDomain.UserKeyPairRecord), args.Error(1)
}

// mockMessageRepository is a mock implementation of MessageRepository.
type mockMessageRepository struct {
	mock.Mock
}

func (m *mockMessageRepository) Create(ctx context.Context, message *messagingDomain.SecureMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *mockMessageRepository) GetByID(
	ctx context.Context,
	messageID uuid.UUID,
) (*messagingDomain.SecureMessage, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messagingDomain.SecureMessage), args.Error(1)
}

func (m *mockMessageRepository) ListByUser(
	ctx context.Context,
	userID string,
	counterpart string,
) ([]*messagingDomain.SecureMessage, error) {
	args := m.Called(ctx, userID, counterpart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*messagingDomain.SecureMessage), args.Error(1)
}

func (m *mockMessageRepository) MarkRead(ctx context.Context, messageID uuid.UUID) error {
	args := m.Called(ctx, messageID)
	return args.Error(0)
}

func (m *mockMessageRepository) Delete(ctx context.Context, messageID uuid.UUID) error {
	args := m.Called(ctx, messageID)
	return args.Error(0)
}

func (m *mockMessageRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockMessageRepository) ListParticipants(
	ctx context.Context,
	userID string,
	offset, limit int,
) ([]string, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
