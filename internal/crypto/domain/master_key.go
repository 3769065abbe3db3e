// Package domain defines the core cryptographic domain models for the secure
// communication engine: the process master key, the EncryptedBlob wire format,
// and PEM-encoded asymmetric key pairs.
//
// Symmetric field and record encryption defaults to the master key; private keys
// are wrapped under password-derived keys; message bodies use hybrid encryption.
package domain

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
)

// MasterKey is the process-wide 256-bit secret used for at-rest field encryption.
//
// It is loaded once at startup from a trusted configuration source, held in
// memory for the process lifetime, and never persisted by this engine. Rotation
// introduces a new key out-of-band; this engine never rotates in place.
//
// The key is an explicitly constructed, immutable value injected into services
// at construction time. There is no global singleton, which keeps components
// unit-testable with distinct keys per test.
type MasterKey struct {
	Key []byte
}

// KMSDecrypter decrypts a KMS-wrapped master key. *secrets.Keeper from
// gocloud.dev implements this interface.
type KMSDecrypter interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
}

// NewMasterKey builds a MasterKey from its 64-character hex representation.
//
// Returns ErrMasterKeyNotSet for an empty value and ErrInvalidMasterKeyFormat
// if the value is not exactly 64 hex characters. Both are fatal configuration
// errors: the engine must not start with a missing or malformed master key.
func NewMasterKey(hexKey string) (*MasterKey, error) {
	if hexKey == "" {
		return nil, ErrMasterKeyNotSet
	}
	if len(hexKey) != KeySize*2 {
		return nil, fmt.Errorf("%w: got %d characters", ErrInvalidMasterKeyFormat, len(hexKey))
	}

	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMasterKeyFormat, err)
	}

	return &MasterKey{Key: key}, nil
}

// NewMasterKeyFromKMS decrypts a KMS-wrapped master key and validates it.
//
// The wrapped value is the KMS ciphertext of the 64-character hex key string.
// Used when the master key is not supplied directly in the environment but
// held wrapped under a cloud KMS or Vault transit key.
func NewMasterKeyFromKMS(
	ctx context.Context,
	decrypter KMSDecrypter,
	wrapped []byte,
	logger *slog.Logger,
) (*MasterKey, error) {
	plaintext, err := decrypter.Decrypt(ctx, wrapped)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt master key with KMS: %w", err)
	}
	defer Zero(plaintext)

	masterKey, err := NewMasterKey(string(plaintext))
	if err != nil {
		return nil, err
	}

	logger.Info("master key loaded from KMS")
	return masterKey, nil
}

// Close zeroes the key material. Call during application shutdown.
func (m *MasterKey) Close() {
	Zero(m.Key)
	m.Key = nil
}
