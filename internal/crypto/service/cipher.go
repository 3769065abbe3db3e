package service

import (
	"fmt"

	cryptoDomain "github.com/accordia/securecomm/internal/crypto/domain"
)

// contextAAD binds every ciphertext produced by this engine to the platform.
// A blob encrypted here fails authentication if replayed into another system,
// even one holding the same key.
var contextAAD = []byte("accordia.securecomm.v1")

// CipherService implements the Cipher interface on top of an AEAD cipher and
// the key derivation service.
//
// Encryption output is an EncryptedBlob with a separate IV and authentication
// tag (the tag is split off the AEAD ciphertext so the wire format carries it
// explicitly). All operations are pure transformations with no I/O and are
// safe for concurrent use.
type CipherService struct {
	aeadManager AEADManager
	keyDeriver  KeyDeriver
	algorithm   cryptoDomain.Algorithm
}

// NewCipher creates a CipherService using the given algorithm for all
// encryptions. Decryption accepts blobs produced with the same algorithm only;
// the algorithm is a deployment-wide choice, not a per-blob field.
func NewCipher(
	aeadManager AEADManager,
	keyDeriver KeyDeriver,
	algorithm cryptoDomain.Algorithm,
) *CipherService {
	return &CipherService{
		aeadManager: aeadManager,
		keyDeriver:  keyDeriver,
		algorithm:   algorithm,
	}
}

// Encrypt encrypts plaintext under the given 32-byte key.
//
// A fresh IV is generated per call, so two encryptions of identical plaintext
// under the same key always differ. The platform context string is bound as
// associated data.
func (c *CipherService) Encrypt(plaintext, key []byte) (cryptoDomain.EncryptedBlob, error) {
	aead, err := c.aeadManager.CreateCipher(key, c.algorithm)
	if err != nil {
		return cryptoDomain.EncryptedBlob{}, err
	}

	sealed, nonce, err := aead.Encrypt(plaintext, contextAAD)
	if err != nil {
		return cryptoDomain.EncryptedBlob{}, fmt.Errorf("failed to encrypt: %w", err)
	}

	// The AEAD appends the tag to the ciphertext; the wire format carries it
	// as a separate field.
	split := len(sealed) - cryptoDomain.TagSize
	return cryptoDomain.EncryptedBlob{
		Ciphertext: sealed[:split],
		IV:         nonce,
		Tag:        sealed[split:],
	}, nil
}

// Decrypt decrypts a blob under the given key.
//
// Returns ErrAuthenticationFailed if the tag does not verify, whether from a
// wrong key, a modified ciphertext, IV, or tag. Decryption rejects rather
// than returning garbage plaintext.
func (c *CipherService) Decrypt(blob cryptoDomain.EncryptedBlob, key []byte) ([]byte, error) {
	aead, err := c.aeadManager.CreateCipher(key, c.algorithm)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(blob.Ciphertext)+len(blob.Tag))
	sealed = append(sealed, blob.Ciphertext...)
	sealed = append(sealed, blob.Tag...)

	plaintext, err := aead.Decrypt(sealed, blob.IV, contextAAD)
	if err != nil {
		return nil, cryptoDomain.ErrAuthenticationFailed
	}
	return plaintext, nil
}

// EncryptWithPassword derives a key from the password with a fresh salt and
// encrypts. The salt travels inside the returned blob so the same password
// can re-derive the key later.
func (c *CipherService) EncryptWithPassword(
	plaintext []byte,
	password string,
) (cryptoDomain.EncryptedBlob, error) {
	salt, err := c.keyDeriver.GenerateSalt()
	if err != nil {
		return cryptoDomain.EncryptedBlob{}, err
	}

	key, err := c.keyDeriver.DeriveKey(password, salt)
	if err != nil {
		return cryptoDomain.EncryptedBlob{}, err
	}
	defer cryptoDomain.Zero(key)

	blob, err := c.Encrypt(plaintext, key)
	if err != nil {
		return cryptoDomain.EncryptedBlob{}, err
	}

	blob.Salt = salt
	return blob, nil
}

// DecryptWithPassword re-derives the key from the password and the blob's
// salt and decrypts.
//
// A wrong password produces a wrong key, and the tag verification fails the
// same way it does for corrupted ciphertext: the caller sees a single
// ErrAuthenticationFailed either way, with no timing or error-shape signal to
// distinguish the two.
func (c *CipherService) DecryptWithPassword(
	blob cryptoDomain.EncryptedBlob,
	password string,
) ([]byte, error) {
	if len(blob.Salt) == 0 {
		return nil, fmt.Errorf("%w: blob has no salt", cryptoDomain.ErrInvalidBlobFormat)
	}

	key, err := c.keyDeriver.DeriveKey(password, blob.Salt)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	return c.Decrypt(blob, key)
}
