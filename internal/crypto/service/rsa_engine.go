package service

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"fmt"

	cryptoDomain "github.com/accordia/securecomm/internal/crypto/domain"
)

const (
	pemTypePublicKey  = "PUBLIC KEY"
	pemTypePrivateKey = "PRIVATE KEY"
)

// RSAEngine implements AsymmetricEngine using RSA with OAEP encryption and
// PKCS#1 v1.5 signatures over SHA-256.
//
// Keys are generated at the configured modulus size (2048 bits minimum) and
// encoded as standard PEM blocks: PKIX for public keys, PKCS#8 for private
// keys, so they are storable as plain text and interoperable with standard
// crypto libraries.
//
// The engine is stateless; key material lives only in the arguments of each
// call. Hybrid operations delegate payload encryption to the symmetric Cipher.
type RSAEngine struct {
	bits       int
	cipher     Cipher
	keyDeriver KeyDeriver
}

// NewRSAEngine creates an RSAEngine. Modulus sizes below 2048 bits are bumped
// to 2048; anything weaker is not an acceptable deployment choice.
func NewRSAEngine(bits int, cipher Cipher, keyDeriver KeyDeriver) *RSAEngine {
	if bits < 2048 {
		bits = 2048
	}
	return &RSAEngine{
		bits:       bits,
		cipher:     cipher,
		keyDeriver: keyDeriver,
	}
}

// GenerateKeyPair produces a fresh PEM-encoded RSA key pair.
func (e *RSAEngine) GenerateKeyPair() (cryptoDomain.KeyPair, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, e.bits)
	if err != nil {
		return cryptoDomain.KeyPair{}, fmt.Errorf("failed to generate key pair: %w", err)
	}

	privateDER, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return cryptoDomain.KeyPair{}, fmt.Errorf("failed to marshal private key: %w", err)
	}

	publicDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return cryptoDomain.KeyPair{}, fmt.Errorf("failed to marshal public key: %w", err)
	}

	return cryptoDomain.KeyPair{
		PublicKey: string(pem.EncodeToMemory(&pem.Block{
			Type:  pemTypePublicKey,
			Bytes: publicDER,
		})),
		PrivateKey: string(pem.EncodeToMemory(&pem.Block{
			Type:  pemTypePrivateKey,
			Bytes: privateDER,
		})),
	}, nil
}

// EncryptMessage encrypts a message directly with the recipient's public key
// using RSA-OAEP with SHA-256, returning base64 ciphertext.
//
// The plaintext is bounded by the key's encryption capacity (190 bytes for a
// 2048-bit key): longer messages are rejected with ErrMessageTooLarge rather
// than silently truncated or corrupted. Use EncryptHybrid for arbitrary
// lengths.
func (e *RSAEngine) EncryptMessage(message string, publicKeyPEM string) (string, error) {
	publicKey, err := parsePublicKey(publicKeyPEM)
	if err != nil {
		return "", err
	}

	hash := sha256.New()
	maxLen := publicKey.Size() - 2*hash.Size() - 2
	if len(message) > maxLen {
		return "", fmt.Errorf(
			"%w: %d bytes exceeds the %d-byte capacity of the recipient key",
			cryptoDomain.ErrMessageTooLarge,
			len(message),
			maxLen,
		)
	}

	ciphertext, err := rsa.EncryptOAEP(hash, rand.Reader, publicKey, []byte(message), nil)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt message: %w", err)
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptMessage decrypts base64 RSA-OAEP ciphertext with the private key.
// Returns ErrDecryptionFailed when the private key does not match or the
// ciphertext is malformed; the two causes are not distinguished.
func (e *RSAEngine) DecryptMessage(ciphertext string, privateKeyPEM string) (string, error) {
	privateKey, err := parsePrivateKey(privateKeyPEM)
	if err != nil {
		return "", err
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64", cryptoDomain.ErrDecryptionFailed)
	}

	plaintext, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, privateKey, raw, nil)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	return string(plaintext), nil
}

// EncryptHybrid encrypts a message of arbitrary length.
//
// A fresh random 32-byte key encrypts the message body with the AEAD cipher;
// only that key is RSA-OAEP encrypted with the recipient's public key. This
// is the standard fix for the direct-RSA size ceiling.
func (e *RSAEngine) EncryptHybrid(
	message string,
	publicKeyPEM string,
) (cryptoDomain.HybridEnvelope, error) {
	messageKey, err := e.keyDeriver.GenerateRandomKey()
	if err != nil {
		return cryptoDomain.HybridEnvelope{}, err
	}
	defer cryptoDomain.Zero(messageKey)

	payload, err := e.cipher.Encrypt([]byte(message), messageKey)
	if err != nil {
		return cryptoDomain.HybridEnvelope{}, err
	}

	// A 32-byte key always fits the OAEP capacity of a >=2048-bit key.
	encryptedKey, err := e.EncryptMessage(string(messageKey), publicKeyPEM)
	if err != nil {
		return cryptoDomain.HybridEnvelope{}, err
	}

	return cryptoDomain.HybridEnvelope{
		EncryptedKey: encryptedKey,
		Payload:      payload,
	}, nil
}

// DecryptHybrid unwraps the per-message key with the private key and decrypts
// the payload.
func (e *RSAEngine) DecryptHybrid(
	envelope cryptoDomain.HybridEnvelope,
	privateKeyPEM string,
) (string, error) {
	messageKey, err := e.DecryptMessage(envelope.EncryptedKey, privateKeyPEM)
	if err != nil {
		return "", err
	}

	keyBytes := []byte(messageKey)
	defer cryptoDomain.Zero(keyBytes)

	plaintext, err := e.cipher.Decrypt(envelope.Payload, keyBytes)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// SignMessage signs the SHA-256 hash of the message with PKCS#1 v1.5 and
// returns the signature base64-encoded.
func (e *RSAEngine) SignMessage(message string, privateKeyPEM string) (string, error) {
	privateKey, err := parsePrivateKey(privateKeyPEM)
	if err != nil {
		return "", err
	}

	digest := sha256.Sum256([]byte(message))
	signature, err := rsa.SignPKCS1v15(rand.Reader, privateKey, crypto.SHA256, digest[:])
	if err != nil {
		return "", fmt.Errorf("failed to sign message: %w", err)
	}

	return base64.StdEncoding.EncodeToString(signature), nil
}

// VerifySignature reports whether the signature matches the message under the
// public key.
//
// Any mismatch returns false: tampered message, altered signature bytes,
// wrong public key, or unparseable input. Callers cannot distinguish the
// failure cause, which prevents verification oracles.
func (e *RSAEngine) VerifySignature(message, signature, publicKeyPEM string) bool {
	publicKey, err := parsePublicKey(publicKeyPEM)
	if err != nil {
		return false
	}

	raw, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}

	digest := sha256.Sum256([]byte(message))
	return rsa.VerifyPKCS1v15(publicKey, crypto.SHA256, digest[:], raw) == nil
}

// SerializeEnvelope returns the JSON wire form of a hybrid envelope.
func SerializeEnvelope(envelope cryptoDomain.HybridEnvelope) (string, error) {
	data, err := json.Marshal(envelope)
	if err != nil {
		return "", fmt.Errorf("failed to serialize envelope: %w", err)
	}
	return string(data), nil
}

// ParseEnvelope parses a hybrid envelope from its JSON wire form.
func ParseEnvelope(content string) (cryptoDomain.HybridEnvelope, error) {
	var envelope cryptoDomain.HybridEnvelope
	if err := json.Unmarshal([]byte(content), &envelope); err != nil {
		return cryptoDomain.HybridEnvelope{}, fmt.Errorf(
			"%w: %v", cryptoDomain.ErrInvalidBlobFormat, err,
		)
	}
	return envelope, nil
}

// parsePublicKey decodes a PEM "PUBLIC KEY" block into an RSA public key.
func parsePublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil || block.Type != pemTypePublicKey {
		return nil, fmt.Errorf("%w: expected a PUBLIC KEY PEM block", cryptoDomain.ErrInvalidKeyEncoding)
	}

	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrInvalidKeyEncoding, err)
	}

	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an RSA public key", cryptoDomain.ErrInvalidKeyEncoding)
	}
	return rsaKey, nil
}

// parsePrivateKey decodes a PEM "PRIVATE KEY" block into an RSA private key.
func parsePrivateKey(privateKeyPEM string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(privateKeyPEM))
	if block == nil || block.Type != pemTypePrivateKey {
		return nil, fmt.Errorf("%w: expected a PRIVATE KEY PEM block", cryptoDomain.ErrInvalidKeyEncoding)
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrInvalidKeyEncoding, err)
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an RSA private key", cryptoDomain.ErrInvalidKeyEncoding)
	}
	return rsaKey, nil
}
