// Package domain defines the secure messaging domain models: per-user key
// pair records and end-to-end encrypted messages.
package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/accordia/securecomm/internal/crypto/domain"
)

// UserKeyPairRecord is the stored key material for one user and key version.
//
// The public key is plaintext PEM; the private key is always wrapped under a
// password-derived key before it reaches this record. The plaintext private
// key never leaves the unwrap operation, and callers receive it only
// transiently.
//
// Records are immutable. Re-keying inserts a new row with the next version;
// the active key pair is the highest version. Retired versions stay
// addressable so messages pinned to them remain decryptable after rotation.
type UserKeyPairRecord struct {
	ID                uuid.UUID
	UserID            string
	Version           uint
	PublicKey         string
	PrivateKeyWrapped cryptoDomain.EncryptedBlob
	CreatedAt         time.Time
}

// PublicKeyInfo is the caller-facing result of key pair issuance: public
// material and metadata only, never the private key.
type PublicKeyInfo struct {
	UserID    string
	Version   uint
	PublicKey string
	CreatedAt time.Time
}

// Info returns the public material of the record.
func (r *UserKeyPairRecord) Info() PublicKeyInfo {
	return PublicKeyInfo{
		UserID:    r.UserID,
		Version:   r.Version,
		PublicKey: r.PublicKey,
		CreatedAt: r.CreatedAt,
	}
}
