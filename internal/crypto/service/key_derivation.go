package service

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/argon2"

	cryptoDomain "github.com/accordia/securecomm/internal/crypto/domain"
)

// Argon2id parameters. Tuned so a single derivation costs tens of milliseconds
// on server hardware, which is the point: brute-forcing wrapped private keys
// must stay expensive. Changing these breaks existing wrapped keys, so they
// are fixed for the lifetime of stored blobs.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
)

// KeyDerivationService implements KeyDeriver using Argon2id.
//
// Derivation is deterministic: the same (password, salt) pair always yields
// the same 32-byte key, which is what makes later unwrapping possible.
// Different salts for the same password yield unrelated keys.
//
// The service is stateless and safe for concurrent use. Callers performing
// bulk derivations should bound their own concurrency; each call pins
// argonMemory KiB of RAM while it runs.
type KeyDerivationService struct{}

// NewKeyDerivation creates a new KeyDerivationService.
func NewKeyDerivation() *KeyDerivationService {
	return &KeyDerivationService{}
}

// DeriveKey derives a 32-byte key from a password and salt using Argon2id.
//
// Returns ErrInvalidKeyMaterial for an empty password or a salt shorter than
// SaltMinSize bytes. Derivation itself does not fail on well-formed input.
func (k *KeyDerivationService) DeriveKey(password string, salt []byte) ([]byte, error) {
	if password == "" {
		return nil, fmt.Errorf("%w: empty password", cryptoDomain.ErrInvalidKeyMaterial)
	}
	if len(salt) < cryptoDomain.SaltMinSize {
		return nil, fmt.Errorf(
			"%w: salt must be at least %d bytes, got %d",
			cryptoDomain.ErrInvalidKeyMaterial,
			cryptoDomain.SaltMinSize,
			len(salt),
		)
	}

	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, cryptoDomain.KeySize)
	return key, nil
}

// GenerateRandomKey returns a fresh 32-byte key from crypto/rand, used when no
// password context applies (e.g., per-message hybrid encryption keys).
func (k *KeyDerivationService) GenerateRandomKey() ([]byte, error) {
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate random key: %w", err)
	}
	return key, nil
}

// GenerateSalt returns a fresh random salt of SaltMinSize bytes.
func (k *KeyDerivationService) GenerateSalt() ([]byte, error) {
	salt := make([]byte, cryptoDomain.SaltMinSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}
