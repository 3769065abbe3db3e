package domain

import (
	"github.com/accordia/securecomm/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard sentinels from internal/errors
// so the HTTP layer can map them to status codes without inspecting messages.
var (
	// ErrUnsupportedAlgorithm indicates the requested AEAD algorithm is not supported.
	// Supported algorithms: AESGCM (AES-256-GCM), ChaCha20 (ChaCha20-Poly1305).
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a symmetric key is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidKeyMaterial indicates malformed key derivation input: an empty
	// password or a salt shorter than SaltMinSize bytes.
	ErrInvalidKeyMaterial = errors.Wrap(errors.ErrInvalidInput, "invalid key material")

	// ErrAuthenticationFailed indicates an AEAD authentication tag did not verify.
	//
	// The message is deliberately vague: a wrong key, a wrong password (via a
	// wrongly derived key), and tampered ciphertext are indistinguishable by
	// design so callers cannot build a password or existence oracle.
	ErrAuthenticationFailed = errors.Wrap(errors.ErrInvalidInput, "wrong password or corrupted data")

	// ErrDecryptionFailed indicates an asymmetric decryption failed: the private
	// key does not match the ciphertext or the ciphertext is malformed.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrMessageTooLarge indicates a plaintext exceeds the direct RSA encryption
	// capacity of the recipient's key. Callers should use hybrid encryption for
	// payloads of arbitrary length.
	ErrMessageTooLarge = errors.Wrap(errors.ErrInvalidInput, "message exceeds encryption capacity")

	// ErrInvalidBlobFormat indicates an EncryptedBlob could not be parsed from
	// its serialized JSON form.
	ErrInvalidBlobFormat = errors.Wrap(errors.ErrInvalidInput, "invalid encrypted blob format")

	// ErrInvalidKeyEncoding indicates a PEM-encoded public or private key could
	// not be decoded.
	ErrInvalidKeyEncoding = errors.Wrap(errors.ErrInvalidInput, "invalid key encoding")
)

// Configuration errors. These are fatal: the engine refuses to start without a
// valid master key and anonymization salt.
var (
	// ErrMasterKeyNotSet indicates the MASTER_KEY configuration value is absent.
	ErrMasterKeyNotSet = errors.New("MASTER_KEY is not configured")

	// ErrInvalidMasterKeyFormat indicates the master key is not exactly 64
	// hexadecimal characters (32 bytes).
	ErrInvalidMasterKeyFormat = errors.New("master key must be a 64-character hex string")

	// ErrAnonymizationSaltNotSet indicates the ANONYMIZATION_SALT configuration
	// value is absent.
	ErrAnonymizationSaltNotSet = errors.New("ANONYMIZATION_SALT is not configured")
)
