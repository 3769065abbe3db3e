// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/accordia/securecomm/internal/anonymize"
	"github.com/accordia/securecomm/internal/config"
	cryptoDomain "github.com/accordia/securecomm/internal/crypto/domain"
	cryptoService "github.com/accordia/securecomm/internal/crypto/service"
	"github.com/accordia/securecomm/internal/database"
	"github.com/accordia/securecomm/internal/fieldcrypto"
	"github.com/accordia/securecomm/internal/http"
	"github.com/accordia/securecomm/internal/metrics"
	messagingHTTP "github.com/accordia/securecomm/internal/messaging/http"
	messagingUseCase "github.com/accordia/securecomm/internal/messaging/usecase"
	privacyHTTP "github.com/accordia/securecomm/internal/privacy/http"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger *slog.Logger
	db     *sql.DB

	// Managers
	txManager database.TxManager

	// Crypto services
	masterKey   *cryptoDomain.MasterKey
	aeadManager cryptoService.AEADManager
	keyDeriver  cryptoService.KeyDeriver
	cipher      cryptoService.Cipher
	rsaEngine   cryptoService.AsymmetricEngine
	kmsService  cryptoService.KMSService

	// Privacy services
	fieldEncryptor *fieldcrypto.FieldEncryptor
	anonymizer     *anonymize.Anonymizer

	// Repositories
	keyPairRepo messagingUseCase.KeyPairRepository
	messageRepo messagingUseCase.MessageRepository

	// Use Cases
	messagingUC messagingUseCase.MessagingUseCase

	// Handlers
	keyPairHandler *messagingHTTP.KeyPairHandler
	messageHandler *messagingHTTP.MessageHandler
	privacyHandler *privacyHTTP.PrivacyHandler

	// Metrics
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	txManagerInit       sync.Once
	masterKeyInit       sync.Once
	aeadManagerInit     sync.Once
	keyDeriverInit      sync.Once
	cipherInit          sync.Once
	rsaEngineInit       sync.Once
	kmsServiceInit      sync.Once
	fieldEncryptorInit  sync.Once
	anonymizerInit      sync.Once
	keyPairRepoInit     sync.Once
	messageRepoInit     sync.Once
	messagingUCInit     sync.Once
	keyPairHandlerInit  sync.Once
	messageHandlerInit  sync.Once
	privacyHandlerInit  sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server instance, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	// Shutdown HTTP server if initialized
	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	// Shutdown metrics server and provider if initialized
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	// Close database connection if initialized
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	// Zero master key material if loaded
	if c.masterKey != nil {
		c.masterKey.Close()
	}

	// Return combined errors if any occurred
	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initBusinessMetrics creates the business metrics recorder.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("business metrics requested but metrics are disabled")
	}
	return metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
}

// initHTTPServer creates the HTTP server with the full router mounted.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	keyPairHandler, err := c.KeyPairHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get key pair handler for http server: %w", err)
	}

	messageHandler, err := c.MessageHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get message handler for http server: %w", err)
	}

	privacyHandler, err := c.PrivacyHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get privacy handler for http server: %w", err)
	}

	routerConfig := http.RouterConfig{
		KeyPairHandler:    keyPairHandler,
		MessageHandler:    messageHandler,
		PrivacyHandler:    privacyHandler,
		Logger:            logger,
		CORSEnabled:       c.config.CORSEnabled,
		CORSAllowOrigins:  c.config.CORSAllowOrigins,
		KDFRateLimitRPS:   c.config.KDFRateLimitRequestsPerSec,
		KDFRateLimitBurst: c.config.KDFRateLimitBurst,
	}

	if c.config.MetricsEnabled {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
		}
		routerConfig.MeterProvider = provider.MeterProvider()
		routerConfig.MetricsNamespace = c.config.MetricsNamespace
	}

	router := http.NewRouter(routerConfig)

	return http.NewServer(c.config.ServerHost, c.config.ServerPort, router, logger), nil
}

// initMetricsServer creates the metrics HTTP server.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}

	return http.NewMetricsServer(
		c.config.ServerHost,
		c.config.MetricsPort,
		c.Logger(),
		provider,
	), nil
}
