// Package service provides the cryptographic services of the secure
// communication engine: AEAD ciphers (AES-256-GCM, ChaCha20-Poly1305),
// password-based key derivation, and the asymmetric key-pair engine used for
// end-to-end message exchange.
package service

import (
	cryptoDomain "github.com/accordia/securecomm/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeyDeriver derives symmetric keys from passwords and generates random keys.
type KeyDeriver interface {
	// DeriveKey derives a 32-byte key from a password and salt using a
	// memory-hard KDF. Same (password, salt) always yields the same key.
	DeriveKey(password string, salt []byte) ([]byte, error)

	// GenerateRandomKey returns 32 cryptographically secure random bytes.
	GenerateRandomKey() ([]byte, error)

	// GenerateSalt returns a fresh random salt of SaltMinSize bytes.
	GenerateSalt() ([]byte, error)
}

// Cipher is the symmetric encryption surface for data at rest.
//
// All operations are pure transformations with no I/O. Ciphertexts are bound
// to a platform context string as associated data, so a blob produced here
// cannot be replayed into a different context.
type Cipher interface {
	// Encrypt encrypts plaintext under the given 32-byte key with a fresh IV.
	Encrypt(plaintext, key []byte) (cryptoDomain.EncryptedBlob, error)

	// Decrypt decrypts a blob under the given key. Returns
	// ErrAuthenticationFailed if the authentication tag does not verify.
	Decrypt(blob cryptoDomain.EncryptedBlob, key []byte) ([]byte, error)

	// EncryptWithPassword derives a key from the password with a fresh salt
	// and encrypts; the salt is attached to the returned blob.
	EncryptWithPassword(plaintext []byte, password string) (cryptoDomain.EncryptedBlob, error)

	// DecryptWithPassword re-derives the key from the password and the blob's
	// salt and decrypts. A wrong password surfaces as ErrAuthenticationFailed,
	// indistinguishable from corrupted ciphertext.
	DecryptWithPassword(blob cryptoDomain.EncryptedBlob, password string) ([]byte, error)
}

// AsymmetricEngine generates key pairs and performs public-key encryption and
// digital signatures for end-to-end secure messaging.
type AsymmetricEngine interface {
	// GenerateKeyPair produces a fresh PEM-encoded key pair.
	GenerateKeyPair() (cryptoDomain.KeyPair, error)

	// EncryptMessage encrypts a message directly with the recipient's public
	// key and returns base64 ciphertext. Messages exceeding the key's
	// capacity are rejected with ErrMessageTooLarge.
	EncryptMessage(message string, publicKeyPEM string) (string, error)

	// DecryptMessage decrypts base64 ciphertext with the private key.
	// Returns ErrDecryptionFailed on a key mismatch or malformed ciphertext.
	DecryptMessage(ciphertext string, privateKeyPEM string) (string, error)

	// EncryptHybrid encrypts a message of arbitrary length: the body goes
	// under a fresh symmetric key, and only that key is encrypted with the
	// recipient's public key.
	EncryptHybrid(message string, publicKeyPEM string) (cryptoDomain.HybridEnvelope, error)

	// DecryptHybrid reverses EncryptHybrid with the recipient's private key.
	DecryptHybrid(envelope cryptoDomain.HybridEnvelope, privateKeyPEM string) (string, error)

	// SignMessage signs the SHA-256 hash of the message and returns the
	// signature base64-encoded.
	SignMessage(message string, privateKeyPEM string) (string, error)

	// VerifySignature reports whether the signature matches the message under
	// the public key. It returns false, never an error, for any mismatch:
	// tampered message, wrong signature, wrong key, or malformed input all
	// yield false uniformly.
	VerifySignature(message, signature, publicKeyPEM string) bool
}
