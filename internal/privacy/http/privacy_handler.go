// Package http provides HTTP handlers for data protection operations:
// field-level encryption of structured records and personal data
// anonymization for exports and analytics.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/accordia/securecomm/internal/anonymize"
	"github.com/accordia/securecomm/internal/fieldcrypto"
	"github.com/accordia/securecomm/internal/httputil"
	"github.com/accordia/securecomm/internal/privacy/http/dto"
	customValidation "github.com/accordia/securecomm/internal/validation"
)

// PrivacyHandler handles HTTP requests for field encryption and anonymization.
type PrivacyHandler struct {
	fieldEncryptor *fieldcrypto.FieldEncryptor
	anonymizer     *anonymize.Anonymizer
	logger         *slog.Logger
}

// NewPrivacyHandler creates a new privacy handler with required dependencies.
func NewPrivacyHandler(
	fieldEncryptor *fieldcrypto.FieldEncryptor,
	anonymizer *anonymize.Anonymizer,
	logger *slog.Logger,
) *PrivacyHandler {
	return &PrivacyHandler{
		fieldEncryptor: fieldEncryptor,
		anonymizer:     anonymizer,
		logger:         logger,
	}
}

// EncryptFieldsHandler encrypts the protected fields of a record.
// POST /v1/privacy/fields/encrypt
// Returns 200 OK with the record, protected fields replaced by their
// "<name>_encrypted" form.
func (h *PrivacyHandler) EncryptFieldsHandler(c *gin.Context) {
	req, ok := h.bindFieldCrypto(c)
	if !ok {
		return
	}

	record, err := h.fieldEncryptor.EncryptFields(req.Record, fieldcrypto.EntityKind(req.EntityKind))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"record": record})
}

// DecryptFieldsHandler restores the protected fields of a record.
// POST /v1/privacy/fields/decrypt
// Fields that fail to decrypt are omitted from the returned record.
func (h *PrivacyHandler) DecryptFieldsHandler(c *gin.Context) {
	req, ok := h.bindFieldCrypto(c)
	if !ok {
		return
	}

	record, err := h.fieldEncryptor.DecryptFields(req.Record, fieldcrypto.EntityKind(req.EntityKind))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"record": record})
}

// AnonymizeRecordHandler anonymizes the sensitive fields of a record.
// POST /v1/privacy/anonymize
// Returns 200 OK with the anonymized record and its metadata.
func (h *PrivacyHandler) AnonymizeRecordHandler(c *gin.Context) {
	var req dto.AnonymizeRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	c.JSON(http.StatusOK, h.anonymizer.PersonalData(req.Record))
}

// AnonymizeTextHandler redacts PII patterns from free text.
// POST /v1/privacy/anonymize/text
// Returns 200 OK with the redacted text.
func (h *PrivacyHandler) AnonymizeTextHandler(c *gin.Context) {
	var req dto.AnonymizeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": h.anonymizer.FreeText(req.Text)})
}

// bindFieldCrypto parses and validates the shared field crypto request body.
func (h *PrivacyHandler) bindFieldCrypto(c *gin.Context) (dto.FieldCryptoRequest, bool) {
	var req dto.FieldCryptoRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return req, false
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return req, false
	}

	return req, true
}
