package domain

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// EncryptedBlob is the serialized output of an AEAD encryption.
//
// The wire format is a JSON object with hex-encoded fields:
//
//	{"encryptedData":"...","iv":"...","tag":"...","salt":"..."}
//
// Salt is present only for password-derived encryptions and omitted otherwise.
// This exact shape is persisted by callers and must round-trip byte-for-byte.
//
// Invariants: the IV is fresh per encryption call and never reused under the
// same key; the tag must verify before any ciphertext is trusted. Blobs are
// immutable once created.
type EncryptedBlob struct {
	Ciphertext []byte
	IV         []byte
	Tag        []byte
	Salt       []byte
}

// encryptedBlobWire is the JSON representation with hex-encoded fields.
type encryptedBlobWire struct {
	EncryptedData string `json:"encryptedData"`
	IV            string `json:"iv"`
	Tag           string `json:"tag"`
	Salt          string `json:"salt,omitempty"`
}

// MarshalJSON serializes the blob into its hex-encoded wire form.
func (eb EncryptedBlob) MarshalJSON() ([]byte, error) {
	wire := encryptedBlobWire{
		EncryptedData: hex.EncodeToString(eb.Ciphertext),
		IV:            hex.EncodeToString(eb.IV),
		Tag:           hex.EncodeToString(eb.Tag),
	}
	if len(eb.Salt) > 0 {
		wire.Salt = hex.EncodeToString(eb.Salt)
	}
	return json.Marshal(wire)
}

// UnmarshalJSON parses the hex-encoded wire form back into the blob.
func (eb *EncryptedBlob) UnmarshalJSON(data []byte) error {
	var wire encryptedBlobWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBlobFormat, err)
	}

	ciphertext, err := hex.DecodeString(wire.EncryptedData)
	if err != nil {
		return fmt.Errorf("%w: invalid encryptedData hex: %v", ErrInvalidBlobFormat, err)
	}
	iv, err := hex.DecodeString(wire.IV)
	if err != nil {
		return fmt.Errorf("%w: invalid iv hex: %v", ErrInvalidBlobFormat, err)
	}
	tag, err := hex.DecodeString(wire.Tag)
	if err != nil {
		return fmt.Errorf("%w: invalid tag hex: %v", ErrInvalidBlobFormat, err)
	}

	var salt []byte
	if wire.Salt != "" {
		salt, err = hex.DecodeString(wire.Salt)
		if err != nil {
			return fmt.Errorf("%w: invalid salt hex: %v", ErrInvalidBlobFormat, err)
		}
	}

	eb.Ciphertext = ciphertext
	eb.IV = iv
	eb.Tag = tag
	eb.Salt = salt
	return nil
}

// NewEncryptedBlob parses an EncryptedBlob from its serialized JSON form.
func NewEncryptedBlob(data []byte) (EncryptedBlob, error) {
	var eb EncryptedBlob
	if err := json.Unmarshal(data, &eb); err != nil {
		return EncryptedBlob{}, err
	}
	if len(eb.IV) == 0 || len(eb.Tag) == 0 {
		return EncryptedBlob{}, fmt.Errorf("%w: missing iv or tag", ErrInvalidBlobFormat)
	}
	return eb, nil
}

// Serialize returns the JSON wire form of the blob.
func (eb EncryptedBlob) Serialize() ([]byte, error) {
	return json.Marshal(eb)
}

// Equal reports whether two blobs are byte-for-byte identical.
func (eb EncryptedBlob) Equal(other EncryptedBlob) bool {
	return bytes.Equal(eb.Ciphertext, other.Ciphertext) &&
		bytes.Equal(eb.IV, other.IV) &&
		bytes.Equal(eb.Tag, other.Tag) &&
		bytes.Equal(eb.Salt, other.Salt)
}
