package app

import (
	"fmt"

	"github.com/accordia/securecomm/internal/anonymize"
	cryptoDomain "github.com/accordia/securecomm/internal/crypto/domain"
	"github.com/accordia/securecomm/internal/fieldcrypto"
	privacyHTTP "github.com/accordia/securecomm/internal/privacy/http"
)

// FieldEncryptor returns the field encryption service.
func (c *Container) FieldEncryptor() (*fieldcrypto.FieldEncryptor, error) {
	var err error
	c.fieldEncryptorInit.Do(func() {
		c.fieldEncryptor, err = c.initFieldEncryptor()
		if err != nil {
			c.initErrors["fieldEncryptor"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fieldEncryptor"]; exists {
		return nil, storedErr
	}
	return c.fieldEncryptor, nil
}

// Anonymizer returns the anonymization service.
func (c *Container) Anonymizer() (*anonymize.Anonymizer, error) {
	var err error
	c.anonymizerInit.Do(func() {
		c.anonymizer, err = c.initAnonymizer()
		if err != nil {
			c.initErrors["anonymizer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["anonymizer"]; exists {
		return nil, storedErr
	}
	return c.anonymizer, nil
}

// PrivacyHandler returns the privacy HTTP handler instance.
func (c *Container) PrivacyHandler() (*privacyHTTP.PrivacyHandler, error) {
	var err error
	c.privacyHandlerInit.Do(func() {
		c.privacyHandler, err = c.initPrivacyHandler()
		if err != nil {
			c.initErrors["privacyHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["privacyHandler"]; exists {
		return nil, storedErr
	}
	return c.privacyHandler, nil
}

// initFieldEncryptor creates the field encryptor bound to the master key.
func (c *Container) initFieldEncryptor() (*fieldcrypto.FieldEncryptor, error) {
	cipher, err := c.Cipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get cipher for field encryptor: %w", err)
	}

	masterKey, err := c.MasterKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get master key for field encryptor: %w", err)
	}

	return fieldcrypto.NewFieldEncryptor(cipher, masterKey, c.Logger()), nil
}

// initAnonymizer creates the anonymizer with the configured salt.
// The salt is required: starting without one would silently produce
// unsalted, dictionary-attackable tokens.
func (c *Container) initAnonymizer() (*anonymize.Anonymizer, error) {
	if c.config.AnonymizationSalt == "" {
		return nil, cryptoDomain.ErrAnonymizationSaltNotSet
	}
	return anonymize.New(c.config.AnonymizationSalt), nil
}

// initPrivacyHandler creates the privacy HTTP handler with all its dependencies.
func (c *Container) initPrivacyHandler() (*privacyHTTP.PrivacyHandler, error) {
	fieldEncryptor, err := c.FieldEncryptor()
	if err != nil {
		return nil, fmt.Errorf("failed to get field encryptor for privacy handler: %w", err)
	}

	anonymizer, err := c.Anonymizer()
	if err != nil {
		return nil, fmt.Errorf("failed to get anonymizer for privacy handler: %w", err)
	}

	return privacyHTTP.NewPrivacyHandler(fieldEncryptor, anonymizer, c.Logger()), nil
}
