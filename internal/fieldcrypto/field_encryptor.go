package fieldcrypto

import (
	"log/slog"
	"strings"

	cryptoDomain "github.com/accordia/securecomm/internal/crypto/domain"
	cryptoService "github.com/accordia/securecomm/internal/crypto/service"
)

// FieldEncryptor encrypts and decrypts selected string fields of a record
// under the process master key.
//
// Encryption replaces a field "name" with a sibling "name_encrypted" holding
// the serialized EncryptedBlob and removes the plaintext key. Decryption is
// the inverse. Non-string values of listed fields pass through untouched and
// unencrypted (a documented limitation, not a silent failure); fields absent
// from the record are skipped without error.
type FieldEncryptor struct {
	cipher    cryptoService.Cipher
	masterKey *cryptoDomain.MasterKey
	logger    *slog.Logger
}

// NewFieldEncryptor creates a FieldEncryptor bound to the injected master key.
func NewFieldEncryptor(
	cipher cryptoService.Cipher,
	masterKey *cryptoDomain.MasterKey,
	logger *slog.Logger,
) *FieldEncryptor {
	return &FieldEncryptor{
		cipher:    cipher,
		masterKey: masterKey,
		logger:    logger,
	}
}

// EncryptFields returns a copy of record with the entity kind's protected
// string fields encrypted.
func (f *FieldEncryptor) EncryptFields(
	record map[string]any,
	kind EntityKind,
) (map[string]any, error) {
	fields, err := FieldNames(kind)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(record))
	for k, v := range record {
		out[k] = v
	}

	for _, name := range fields {
		value, present := out[name]
		if !present {
			continue
		}
		text, isString := value.(string)
		if !isString {
			// Non-string values are left as-is; only string fields are
			// encryptable in this scheme.
			continue
		}

		blob, err := f.cipher.Encrypt([]byte(text), f.masterKey.Key)
		if err != nil {
			return nil, err
		}
		serialized, err := blob.Serialize()
		if err != nil {
			return nil, err
		}

		out[name+EncryptedSuffix] = string(serialized)
		delete(out, name)
	}

	return out, nil
}

// DecryptFields returns a copy of record with the entity kind's encrypted
// fields restored to plaintext.
//
// A field that fails to decrypt is logged and omitted from the output instead
// of aborting the whole record: one corrupted field must not block reading
// the rest. Callers must treat missing expected fields as "undecryptable",
// not "never existed".
func (f *FieldEncryptor) DecryptFields(
	record map[string]any,
	kind EntityKind,
) (map[string]any, error) {
	fields, err := FieldNames(kind)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(record))
	for k, v := range record {
		out[k] = v
	}

	for _, name := range fields {
		encName := name + EncryptedSuffix
		value, present := out[encName]
		if !present {
			continue
		}
		serialized, isString := value.(string)
		if !isString {
			continue
		}

		plaintext, err := f.decryptField(serialized)
		if err != nil {
			f.logger.Warn("failed to decrypt field, omitting from record",
				slog.String("field", name),
				slog.String("entity_kind", string(kind)),
				slog.Any("error", err),
			)
			delete(out, encName)
			continue
		}

		out[name] = plaintext
		delete(out, encName)
	}

	return out, nil
}

// decryptField deserializes and decrypts one encrypted field value.
func (f *FieldEncryptor) decryptField(serialized string) (string, error) {
	blob, err := cryptoDomain.NewEncryptedBlob([]byte(strings.TrimSpace(serialized)))
	if err != nil {
		return "", err
	}

	plaintext, err := f.cipher.Decrypt(blob, f.masterKey.Key)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
