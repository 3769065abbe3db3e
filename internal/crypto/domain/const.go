package domain

// Algorithm represents the symmetric AEAD algorithm used for at-rest encryption.
//
// Both supported algorithms provide Authenticated Encryption with Associated Data,
// guaranteeing confidentiality and integrity of encrypted fields, wrapped private
// keys, and hybrid message payloads.
type Algorithm string

const (
	// AESGCM is AES-256-GCM, the default algorithm for field encryption and
	// private-key wrapping. Hardware-accelerated on CPUs with AES-NI.
	//
	//   - 256-bit key
	//   - 12-byte nonce (random per encryption)
	//   - 16-byte authentication tag
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 is ChaCha20-Poly1305, an alternative for platforms without AES
	// hardware acceleration. Same key, nonce, and tag sizes as AESGCM.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// KeySize is the required size in bytes for all symmetric keys (256 bits).
const KeySize = 32

// SaltMinSize is the minimum salt length in bytes accepted by key derivation.
const SaltMinSize = 16

// TagSize is the AEAD authentication tag length in bytes for both algorithms.
const TagSize = 16
