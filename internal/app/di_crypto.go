package app

import (
	"context"
	"encoding/base64"
	"fmt"

	cryptoDomain "github.com/accordia/securecomm/internal/crypto/domain"
	cryptoService "github.com/accordia/securecomm/internal/crypto/service"
)

// MasterKey returns the process master key loaded from configuration.
func (c *Container) MasterKey() (*cryptoDomain.MasterKey, error) {
	var err error
	c.masterKeyInit.Do(func() {
		c.masterKey, err = c.initMasterKey()
		if err != nil {
			c.initErrors["masterKey"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["masterKey"]; exists {
		return nil, storedErr
	}
	return c.masterKey, nil
}

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// KeyDeriver returns the password key derivation service.
func (c *Container) KeyDeriver() cryptoService.KeyDeriver {
	c.keyDeriverInit.Do(func() {
		c.keyDeriver = cryptoService.NewKeyDerivation()
	})
	return c.keyDeriver
}

// Cipher returns the symmetric cipher service.
func (c *Container) Cipher() (cryptoService.Cipher, error) {
	var err error
	c.cipherInit.Do(func() {
		c.cipher, err = c.initCipher()
		if err != nil {
			c.initErrors["cipher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cipher"]; exists {
		return nil, storedErr
	}
	return c.cipher, nil
}

// RSAEngine returns the asymmetric engine for key pairs, hybrid encryption,
// and signatures.
func (c *Container) RSAEngine() (cryptoService.AsymmetricEngine, error) {
	var err error
	c.rsaEngineInit.Do(func() {
		c.rsaEngine, err = c.initRSAEngine()
		if err != nil {
			c.initErrors["rsaEngine"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["rsaEngine"]; exists {
		return nil, storedErr
	}
	return c.rsaEngine, nil
}

// KMSService returns the KMS service used to unwrap the master key.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// initMasterKey loads the master key, unwrapping through the KMS when a
// wrapped key is configured, otherwise reading the hex key directly.
func (c *Container) initMasterKey() (*cryptoDomain.MasterKey, error) {
	if c.config.MasterKeyWrapped != "" {
		if c.config.KMSKeyURI == "" {
			return nil, fmt.Errorf("MASTER_KEY_WRAPPED is set but KMS_KEY_URI is empty")
		}

		wrapped, err := base64.StdEncoding.DecodeString(c.config.MasterKeyWrapped)
		if err != nil {
			return nil, fmt.Errorf("failed to decode wrapped master key: %w", err)
		}

		ctx := context.Background()
		keeper, err := c.KMSService().OpenKeeper(ctx, c.config.KMSKeyURI)
		if err != nil {
			return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
		}

		return cryptoDomain.NewMasterKeyFromKMS(ctx, keeper, wrapped, c.Logger())
	}

	return cryptoDomain.NewMasterKey(c.config.MasterKey)
}

// initCipher creates the cipher service with the configured algorithm.
func (c *Container) initCipher() (cryptoService.Cipher, error) {
	algorithm := cryptoDomain.Algorithm(c.config.EncryptionAlgorithm)
	switch algorithm {
	case cryptoDomain.AESGCM, cryptoDomain.ChaCha20:
	default:
		return nil, fmt.Errorf("unsupported encryption algorithm: %s", c.config.EncryptionAlgorithm)
	}

	return cryptoService.NewCipher(c.AEADManager(), c.KeyDeriver(), algorithm), nil
}

// initRSAEngine creates the asymmetric engine with the configured key size.
func (c *Container) initRSAEngine() (cryptoService.AsymmetricEngine, error) {
	cipher, err := c.Cipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get cipher for rsa engine: %w", err)
	}

	return cryptoService.NewRSAEngine(c.config.RSAKeyBits, cipher, c.KeyDeriver()), nil
}
