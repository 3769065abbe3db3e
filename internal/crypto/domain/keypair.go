package domain

// KeyPair holds a freshly generated asymmetric key pair in PEM encoding.
//
// PublicKey is a PKIX "PUBLIC KEY" block; PrivateKey is a PKCS#8 "PRIVATE KEY"
// block, storable as plain text and interoperable with standard crypto tooling.
//
// A KeyPair is never persisted in raw form: the owning service must wrap the
// private key under a password-derived key before storage, and the plaintext
// private key must never leave the unwrapping code path.
type KeyPair struct {
	PublicKey  string
	PrivateKey string
}

// HybridEnvelope is the wire format for hybrid-encrypted message content.
//
// The message body is encrypted with a fresh random symmetric key under the
// AEAD cipher; only that small symmetric key is encrypted with the recipient's
// public key. This removes the RSA plaintext size ceiling.
type HybridEnvelope struct {
	// EncryptedKey is the per-message symmetric key, RSA-OAEP encrypted with
	// the recipient's public key and base64-encoded.
	EncryptedKey string `json:"encryptedKey"`
	// Payload is the message body encrypted under the per-message key.
	Payload EncryptedBlob `json:"payload"`
}
