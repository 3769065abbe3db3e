package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
)

// AESGCMCipher implements the AEAD interface using AES-256-GCM.
//
// AES-GCM combines AES encryption with GMAC authentication. It is the default
// algorithm for field encryption, private-key wrapping, and hybrid message
// payloads, and is hardware-accelerated on most modern CPUs.
//
// The cipher instance is stateless and safe for concurrent use from multiple
// goroutines. Each encryption generates a unique 12-byte nonce independently,
// and the 16-byte authentication tag is appended to the ciphertext.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a new AES-256-GCM cipher instance.
//
// The key must be exactly 32 bytes (256 bits) and should come from a
// cryptographically secure random source or the key derivation service.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != 32 {
		return nil, errors.New("key must be exactly 32 bytes")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Encrypt encrypts plaintext with optional additional authenticated data.
//
// The AAD is authenticated but not encrypted; it binds the ciphertext to its
// context so an intercepted blob cannot be replayed elsewhere. A unique
// 12-byte nonce is generated per call with crypto/rand and must be stored
// alongside the ciphertext. Nonces are never reused with the same key.
func (a *AESGCMCipher) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, a.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext = a.aead.Seal(nil, nonce, plaintext, aad)
	return ciphertext, nonce, nil
}

// Decrypt decrypts ciphertext with the provided nonce and AAD.
//
// The tag is verified before any plaintext is returned: a wrong key, wrong
// AAD, or modified ciphertext yields an error, never garbage plaintext.
func (a *AESGCMCipher) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	plaintext, err := a.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}
