// Package http provides HTTP handlers for secure messaging: key pair
// issuance, public key distribution, and the encrypted message lifecycle.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/accordia/securecomm/internal/httputil"
	"github.com/accordia/securecomm/internal/messaging/http/dto"
	messagingUseCase "github.com/accordia/securecomm/internal/messaging/usecase"
	customValidation "github.com/accordia/securecomm/internal/validation"
)

// KeyPairHandler handles HTTP requests for user key pair management.
type KeyPairHandler struct {
	messagingUseCase messagingUseCase.MessagingUseCase
	logger           *slog.Logger
}

// NewKeyPairHandler creates a new key pair handler with required dependencies.
func NewKeyPairHandler(
	useCase messagingUseCase.MessagingUseCase,
	logger *slog.Logger,
) *KeyPairHandler {
	return &KeyPairHandler{
		messagingUseCase: useCase,
		logger:           logger,
	}
}

// GenerateHandler issues a key pair for the user, wrapped under the password.
// POST /v1/users/:id/keypair
// Returns 201 Created with the public key material. Calling it again re-keys.
func (h *KeyPairHandler) GenerateHandler(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		httputil.HandleBadRequestGin(c, fmt.Errorf("user id cannot be empty"), h.logger)
		return
	}

	var req dto.GenerateKeyPairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	info, err := h.messagingUseCase.GenerateUserKeyPair(c.Request.Context(), userID, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapPublicKeyResponse(info))
}

// GetPublicKeyHandler returns the user's active public key.
// GET /v1/users/:id/public-key
// Returns 200 OK, or 404 Not Found if the user has no key pair.
func (h *KeyPairHandler) GetPublicKeyHandler(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		httputil.HandleBadRequestGin(c, fmt.Errorf("user id cannot be empty"), h.logger)
		return
	}

	publicKey, err := h.messagingUseCase.GetUserPublicKey(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":    userID,
		"public_key": publicKey,
	})
}
