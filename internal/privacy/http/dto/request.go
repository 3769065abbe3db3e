// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/accordia/securecomm/internal/fieldcrypto"
	customValidation "github.com/accordia/securecomm/internal/validation"
)

// FieldCryptoRequest contains a record and its entity kind for field-level
// encryption or decryption.
type FieldCryptoRequest struct {
	EntityKind string         `json:"entity_kind"` // "user", "case", "payment" or "legal_note"
	Record     map[string]any `json:"record"`
}

// Validate checks if the field crypto request is valid.
func (r *FieldCryptoRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.EntityKind,
			validation.Required,
			customValidation.NotBlank,
			validation.By(validateEntityKind),
		),
		validation.Field(&r.Record,
			validation.Required,
		),
	)
}

// AnonymizeRecordRequest contains a record for personal data anonymization.
type AnonymizeRecordRequest struct {
	Record map[string]any `json:"record"`
}

// Validate checks if the anonymize record request is valid.
func (r *AnonymizeRecordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Record,
			validation.Required,
		),
	)
}

// AnonymizeTextRequest contains free text for PII redaction.
type AnonymizeTextRequest struct {
	Text string `json:"text"`
}

// Validate checks if the anonymize text request is valid.
func (r *AnonymizeTextRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Text,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// validateEntityKind validates that the entity kind is one of the known kinds.
func validateEntityKind(value interface{}) error {
	kind, ok := value.(string)
	if !ok {
		return validation.NewError("validation_entity_kind", "must be a string")
	}
	if _, err := fieldcrypto.FieldNames(fieldcrypto.EntityKind(kind)); err != nil {
		return validation.NewError(
			"validation_entity_kind",
			"must be 'user', 'case', 'payment' or 'legal_note'",
		)
	}
	return nil
}
