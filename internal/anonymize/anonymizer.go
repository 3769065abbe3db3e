// Package anonymize produces deterministic, non-reversible identifiers and
// redacts personally identifying data for compliance and export workflows.
//
// Identifier anonymization is a salted SHA-256 hash: the same input and salt
// always yield the same token (so exports stay join-able for analytics), but
// the mapping is computationally one-way.
package anonymize

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// TokenLength is the hex length of an anonymized identifier token.
const TokenLength = 16

// AlgorithmName records which construction produced an anonymized record.
const AlgorithmName = "sha256-salted"

// sensitiveFields is the fixed allow-list of personal-data field names
// anonymized by AnonymizePersonalData. Fields outside this list pass through
// unchanged; this is not a general PII scanner.
var sensitiveFields = []string{
	"name",
	"first_name",
	"last_name",
	"email",
	"phone",
	"address",
	"ssn",
	"national_id",
	"tax_id",
	"iban",
	"account_number",
}

// Metadata describes how and when a record was anonymized.
type Metadata struct {
	AnonymizedAt time.Time `json:"anonymizedAt"`
	Algorithm    string    `json:"algorithm"`
}

// AnonymizedRecord is the output of AnonymizePersonalData.
type AnonymizedRecord struct {
	HashedID string         `json:"hashedId"`
	Fields   map[string]any `json:"anonymizedFields"`
	Metadata Metadata       `json:"metadata"`
}

// Anonymizer applies salted hashing and structured redaction. The salt is a
// deployment-wide configuration value; changing it changes every token.
type Anonymizer struct {
	salt string
}

// New creates an Anonymizer with the configured salt.
func New(salt string) *Anonymizer {
	return &Anonymizer{salt: salt}
}

// AnonymizeIdentifier hashes an identifier with the given salt into a
// fixed-length hex token. Deterministic and salt-scoped: same input and salt
// always produce the same token, different inputs or salts produce unrelated
// tokens.
func AnonymizeIdentifier(id, salt string) string {
	sum := sha256.Sum256([]byte(id + salt))
	return hex.EncodeToString(sum[:])[:TokenLength]
}

// Identifier hashes an identifier with the anonymizer's configured salt.
func (a *Anonymizer) Identifier(id string) string {
	return AnonymizeIdentifier(id, a.salt)
}

// PersonalData anonymizes the allow-listed sensitive fields of a record.
//
// Emails keep their domain and anonymize only the local part, preserving
// domain-level analytics. Phone numbers keep a short prefix and suffix and
// mask the middle, preserving country and format analytics. All other listed
// fields are fully hashed. The record's "id" field (when a string) feeds the
// returned HashedID.
func (a *Anonymizer) PersonalData(record map[string]any) AnonymizedRecord {
	out := make(map[string]any, len(record))
	for k, v := range record {
		out[k] = v
	}

	for _, name := range sensitiveFields {
		value, present := out[name]
		if !present {
			continue
		}
		text, isString := value.(string)
		if !isString || text == "" {
			continue
		}

		switch name {
		case "email":
			out[name] = a.anonymizeEmail(text)
		case "phone":
			out[name] = anonymizePhone(text)
		default:
			out[name] = a.Identifier(text)
		}
	}

	hashedID := ""
	if id, ok := record["id"].(string); ok && id != "" {
		hashedID = a.Identifier(id)
	}

	return AnonymizedRecord{
		HashedID: hashedID,
		Fields:   out,
		Metadata: Metadata{
			AnonymizedAt: time.Now().UTC(),
			Algorithm:    AlgorithmName,
		},
	}
}

// anonymizeEmail hashes the local part and preserves the domain.
func (a *Anonymizer) anonymizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return a.Identifier(email)
	}
	return a.Identifier(email[:at]) + "@" + email[at+1:]
}

// anonymizePhone keeps the first three and last two characters and masks the
// middle. Short values are fully masked.
func anonymizePhone(phone string) string {
	if len(phone) <= 5 {
		return strings.Repeat("*", len(phone))
	}
	return phone[:3] + strings.Repeat("*", len(phone)-5) + phone[len(phone)-2:]
}
