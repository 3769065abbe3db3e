package app

import (
	"fmt"

	messagingHTTP "github.com/accordia/securecomm/internal/messaging/http"
	messagingRepository "github.com/accordia/securecomm/internal/messaging/repository"
	messagingUseCase "github.com/accordia/securecomm/internal/messaging/usecase"
)

// KeyPairRepository returns the user key pair repository instance.
func (c *Container) KeyPairRepository() (messagingUseCase.KeyPairRepository, error) {
	var err error
	c.keyPairRepoInit.Do(func() {
		c.keyPairRepo, err = c.initKeyPairRepository()
		if err != nil {
			c.initErrors["keyPairRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyPairRepo"]; exists {
		return nil, storedErr
	}
	return c.keyPairRepo, nil
}

// MessageRepository returns the secure message repository instance.
func (c *Container) MessageRepository() (messagingUseCase.MessageRepository, error) {
	var err error
	c.messageRepoInit.Do(func() {
		c.messageRepo, err = c.initMessageRepository()
		if err != nil {
			c.initErrors["messageRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["messageRepo"]; exists {
		return nil, storedErr
	}
	return c.messageRepo, nil
}

// MessagingUseCase returns the secure messaging use case instance.
func (c *Container) MessagingUseCase() (messagingUseCase.MessagingUseCase, error) {
	var err error
	c.messagingUCInit.Do(func() {
		c.messagingUC, err = c.initMessagingUseCase()
		if err != nil {
			c.initErrors["messagingUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["messagingUseCase"]; exists {
		return nil, storedErr
	}
	return c.messagingUC, nil
}

// KeyPairHandler returns the key pair HTTP handler instance.
func (c *Container) KeyPairHandler() (*messagingHTTP.KeyPairHandler, error) {
	var err error
	c.keyPairHandlerInit.Do(func() {
		c.keyPairHandler, err = c.initKeyPairHandler()
		if err != nil {
			c.initErrors["keyPairHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyPairHandler"]; exists {
		return nil, storedErr
	}
	return c.keyPairHandler, nil
}

// MessageHandler returns the message HTTP handler instance.
func (c *Container) MessageHandler() (*messagingHTTP.MessageHandler, error) {
	var err error
	c.messageHandlerInit.Do(func() {
		c.messageHandler, err = c.initMessageHandler()
		if err != nil {
			c.initErrors["messageHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["messageHandler"]; exists {
		return nil, storedErr
	}
	return c.messageHandler, nil
}

// initKeyPairRepository creates the key pair repository based on the database driver.
func (c *Container) initKeyPairRepository() (messagingUseCase.KeyPairRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for key pair repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return messagingRepository.NewPostgreSQLKeyPairRepository(db), nil
	case "mysql":
		return messagingRepository.NewMySQLKeyPairRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initMessageRepository creates the message repository based on the database driver.
func (c *Container) initMessageRepository() (messagingUseCase.MessageRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for message repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return messagingRepository.NewPostgreSQLMessageRepository(db), nil
	case "mysql":
		return messagingRepository.NewMySQLMessageRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initMessagingUseCase creates the messaging use case with all its dependencies.
func (c *Container) initMessagingUseCase() (messagingUseCase.MessagingUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for messaging use case: %w", err)
	}

	keyPairRepo, err := c.KeyPairRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get key pair repository for messaging use case: %w", err)
	}

	messageRepo, err := c.MessageRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get message repository for messaging use case: %w", err)
	}

	cipher, err := c.Cipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get cipher for messaging use case: %w", err)
	}

	engine, err := c.RSAEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to get rsa engine for messaging use case: %w", err)
	}

	baseUseCase := messagingUseCase.NewMessagingUseCase(
		txManager,
		keyPairRepo,
		messageRepo,
		cipher,
		engine,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for messaging use case: %w", err)
		}
		return messagingUseCase.NewMessagingUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initKeyPairHandler creates the key pair HTTP handler with all its dependencies.
func (c *Container) initKeyPairHandler() (*messagingHTTP.KeyPairHandler, error) {
	useCase, err := c.MessagingUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging use case for key pair handler: %w", err)
	}

	return messagingHTTP.NewKeyPairHandler(useCase, c.Logger()), nil
}

// initMessageHandler creates the message HTTP handler with all its dependencies.
func (c *Container) initMessageHandler() (*messagingHTTP.MessageHandler, error) {
	useCase, err := c.MessagingUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging use case for message handler: %w", err)
	}

	return messagingHTTP.NewMessageHandler(useCase, c.Logger()), nil
}
