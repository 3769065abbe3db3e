package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/accordia/securecomm/internal/metrics"
	messagingHTTP "github.com/accordia/securecomm/internal/messaging/http"
	privacyHTTP "github.com/accordia/securecomm/internal/privacy/http"
)

// RouterConfig holds the handlers and options needed to build the API router.
type RouterConfig struct {
	KeyPairHandler *messagingHTTP.KeyPairHandler
	MessageHandler *messagingHTTP.MessageHandler
	PrivacyHandler *privacyHTTP.PrivacyHandler

	Logger *slog.Logger

	// Metrics instrumentation; nil disables it.
	MeterProvider    otelmetric.MeterProvider
	MetricsNamespace string

	// CORS; disabled by default, this is a server-to-server API.
	CORSEnabled      bool
	CORSAllowOrigins string

	// Throttle for the endpoints that run the password key derivation.
	KDFRateLimitRPS   float64
	KDFRateLimitBurst int
}

// NewRouter builds the Gin engine with all routes and middleware mounted.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(cfg.Logger))

	if cfg.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MeterProvider, cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, cfg.Logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	kdfLimit := messagingHTTP.KDFRateLimitMiddleware(
		cfg.KDFRateLimitRPS,
		cfg.KDFRateLimitBurst,
		cfg.Logger,
	)

	v1 := router.Group("/v1")
	{
		// Key pair issuance, message sending, and conversation reads all run
		// the password key derivation, so they sit behind the KDF throttle.
		v1.POST("/users/:id/keypair", kdfLimit, cfg.KeyPairHandler.GenerateHandler)
		v1.GET("/users/:id/public-key", cfg.KeyPairHandler.GetPublicKeyHandler)

		v1.POST("/messages", kdfLimit, cfg.MessageHandler.SendHandler)
		v1.POST("/messages/list", kdfLimit, cfg.MessageHandler.ListHandler)
		v1.POST("/messages/:id/read", cfg.MessageHandler.MarkReadHandler)
		v1.DELETE("/messages/:id", cfg.MessageHandler.DeleteHandler)
		v1.GET("/users/:id/participants", cfg.MessageHandler.ParticipantsHandler)
		v1.GET("/users/:id/unread-count", cfg.MessageHandler.UnreadCountHandler)

		v1.POST("/privacy/fields/encrypt", cfg.PrivacyHandler.EncryptFieldsHandler)
		v1.POST("/privacy/fields/decrypt", cfg.PrivacyHandler.DecryptFieldsHandler)
		v1.POST("/privacy/anonymize", cfg.PrivacyHandler.AnonymizeRecordHandler)
		v1.POST("/privacy/anonymize/text", cfg.PrivacyHandler.AnonymizeTextHandler)
	}

	return router
}

// Server wraps the API HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server serving the given handler.
func NewServer(host string, port int, handler http.Handler, logger *slog.Logger) *Server {
	return &Server{
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
