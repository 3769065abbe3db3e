// Package fieldcrypto provides selective per-field symmetric encryption for
// structured records, keyed by the process master key.
//
// Entity kinds form a closed enumeration mapped to compile-time field-name
// sets, so a typo in a field name is a build failure instead of a silent
// no-op at runtime.
package fieldcrypto

import (
	"fmt"

	"github.com/accordia/securecomm/internal/errors"
)

// EntityKind identifies a record shape with a fixed set of protected fields.
type EntityKind string

const (
	// EntityUser covers user profile records.
	EntityUser EntityKind = "user"
	// EntityCase covers dispute case records.
	EntityCase EntityKind = "case"
	// EntityPayment covers billing and payment records.
	EntityPayment EntityKind = "payment"
	// EntityLegalNote covers legal guidance notes attached to a case.
	EntityLegalNote EntityKind = "legal_note"
)

// ErrUnknownEntityKind indicates an entity kind outside the closed enumeration.
var ErrUnknownEntityKind = errors.Wrap(errors.ErrInvalidInput, "unknown entity kind")

// EncryptedSuffix is appended to a field name to hold its encrypted form.
const EncryptedSuffix = "_encrypted"

// protectedFields maps each entity kind to the record fields encrypted at rest.
var protectedFields = map[EntityKind][]string{
	EntityUser:      {"email", "phone", "address", "national_id"},
	EntityCase:      {"summary", "details", "settlement_terms"},
	EntityPayment:   {"iban", "account_holder", "billing_address"},
	EntityLegalNote: {"content", "attorney_notes"},
}

// FieldNames returns the protected field names for an entity kind.
func FieldNames(kind EntityKind) ([]string, error) {
	fields, ok := protectedFields[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntityKind, kind)
	}
	return fields, nil
}
