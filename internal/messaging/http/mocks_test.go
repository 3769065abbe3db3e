package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	messagingDomain "github.com/accordia/securecomm/internal/messaging/domain"
	messagingUseCase "github.com/accordia/securecomm/internal/messaging/usecase"
)

// MockMessagingUseCase is a mock implementation of usecase.MessagingUseCase.
type MockMessagingUseCase struct {
	mock.Mock
}

func (m *MockMessagingUseCase) GenerateUserKeyPair(
	ctx context.Context,
	userID, password string,
) (*messagingDomain.PublicKeyInfo, error) {
	args := m.Called(ctx, userID, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messagingDomain.PublicKeyInfo), args.Error(1)
}

func (m *MockMessagingUseCase) GetUserPublicKey(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockMessagingUseCase) GetUserPrivateKey(
	ctx context.Context,
	userID, password string,
) (string, bool, error) {
	args := m.Called(ctx, userID, password)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockMessagingUseCase) SendSecureMessage(
	ctx context.Context,
	senderID, recipientID, message string,
	messageType messagingDomain.MessageType,
	senderPassword string,
) (*messagingDomain.SecureMessage, error) {
	args := m.Called(ctx, senderID, recipientID, message, messageType, senderPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messagingDomain.SecureMessage), args.Error(1)
}

func (m *MockMessagingUseCase) GetSecureMessages(
	ctx context.Context,
	userID, password string,
	conversationWith string,
) ([]*messagingDomain.DecryptedMessage, error) {
	args := m.Called(ctx, userID, password, conversationWith)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*messagingDomain.DecryptedMessage), args.Error(1)
}

func (m *MockMessagingUseCase) MarkMessageAsRead(ctx context.Context, messageID uuid.UUID, userID string) error {
	args := m.Called(ctx, messageID, userID)
	return args.Error(0)
}

func (m *MockMessagingUseCase) DeleteSecureMessage(ctx context.Context, messageID uuid.UUID, userID string) error {
	args := m.Called(ctx, messageID, userID)
	return args.Error(0)
}

func (m *MockMessagingUseCase) GetConversationParticipants(
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

func (m *MockMessagingUseCase) GetUnreadMessageCount(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

var _ messagingUseCase.MessagingUseCase = (*MockMessagingUseCase)(nil)

// testLogger returns a logger that discards output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestContext creates a test Gin context with the given request.
func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

// rawBodyContext creates a test Gin context with a raw, unmarshaled body.
func rawBodyContext(method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}
