// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/nandolawson/keyforge95/internal/config"
	"github.com/nandolawson/keyforge95/internal/http"
	"github.com/nandolawson/keyforge95/internal/metrics"
	productKeyHTTP "github.com/nandolawson/keyforge95/internal/productkey/http"
	productKeyService "github.com/nandolawson/keyforge95/internal/productkey/service"
	productKeyUseCase "github.com/nandolawson/keyforge95/internal/productkey/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	logOutput       io.Writer
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Background context for middleware goroutines, cancelled by Shutdown.
	ctx    context.Context
	cancel context.CancelFunc

	// Services
	randomSource productKeyService.RandomSource
	generator    productKeyService.Generator
	validator    productKeyService.Validator

	// Use Cases
	productKeyUseCase productKeyUseCase.ProductKeyUseCase

	// Handlers and Servers
	productKeyHandler *productKeyHTTP.ProductKeyHandler
	httpServer        *http.Server
	metricsServer     *http.MetricsServer

	mu                    sync.Mutex
	loggerInit            sync.Once
	metricsProviderInit   sync.Once
	businessMetricsInit   sync.Once
	randomSourceInit      sync.Once
	generatorInit         sync.Once
	validatorInit         sync.Once
	productKeyUseCaseInit sync.Once
	productKeyHandlerInit sync.Once
	httpServerInit        sync.Once
	metricsServerInit     sync.Once
	initErrors            map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
// Logs go to stderr so command output on stdout stays machine readable.
func NewContainer(cfg *config.Config) *Container {
	ctx, cancel := context.WithCancel(context.Background())
	return &Container{
		config:     cfg,
		logOutput:  os.Stderr,
		ctx:        ctx,
		cancel:     cancel,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		provider, err := c.initMetricsProvider()
		c.store("metricsProvider", err)
		c.mu.Lock()
		c.metricsProvider = provider
		c.mu.Unlock()
	})
	if err := c.initError("metricsProvider"); err != nil {
		return nil, err
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the product key metrics recorder. It is a no-op when metrics
// are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		bm, err := c.initBusinessMetrics()
		c.store("businessMetrics", err)
		c.businessMetrics = bm
	})
	if err := c.initError("businessMetrics"); err != nil {
		return nil, err
	}
	return c.businessMetrics, nil
}

// RandomSource returns the random source used by the generator.
func (c *Container) RandomSource() productKeyService.RandomSource {
	c.randomSourceInit.Do(func() {
		c.randomSource = c.initRandomSource()
	})
	return c.randomSource
}

// ProductKeyGenerator returns the product key generator.
func (c *Container) ProductKeyGenerator() productKeyService.Generator {
	c.generatorInit.Do(func() {
		c.generator = productKeyService.NewGenerator(c.RandomSource(), c.config.KeygenMaxAttempts)
	})
	return c.generator
}

// ProductKeyValidator returns the product key validator.
func (c *Container) ProductKeyValidator() productKeyService.Validator {
	c.validatorInit.Do(func() {
		c.validator = productKeyService.NewValidator()
	})
	return c.validator
}

// ProductKeyUseCase returns the product key use case, instrumented when metrics are enabled.
func (c *Container) ProductKeyUseCase() (productKeyUseCase.ProductKeyUseCase, error) {
	c.productKeyUseCaseInit.Do(func() {
		uc, err := c.initProductKeyUseCase()
		c.store("productKeyUseCase", err)
		c.productKeyUseCase = uc
	})
	if err := c.initError("productKeyUseCase"); err != nil {
		return nil, err
	}
	return c.productKeyUseCase, nil
}

// ProductKeyHandler returns the HTTP handler for product key endpoints.
func (c *Container) ProductKeyHandler() (*productKeyHTTP.ProductKeyHandler, error) {
	c.productKeyHandlerInit.Do(func() {
		uc, err := c.ProductKeyUseCase()
		if err != nil {
			c.store("productKeyHandler", fmt.Errorf("failed to get product key use case for handler: %w", err))
			return
		}
		c.productKeyHandler = productKeyHTTP.NewProductKeyHandler(uc, c.Logger())
	})
	if err := c.initError("productKeyHandler"); err != nil {
		return nil, err
	}
	return c.productKeyHandler, nil
}

// HTTPServer returns the API server with its router configured.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		c.store("httpServer", err)
		c.httpServer = server
	})
	if err := c.initError("httpServer"); err != nil {
		return nil, err
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		server, err := c.initMetricsServer()
		c.store("metricsServer", err)
		c.metricsServer = server
	})
	if err := c.initError("metricsServer"); err != nil {
		return nil, err
	}
	return c.metricsServer, nil
}

// Shutdown stops background work and flushes metrics. Servers are stopped by their owner.
func (c *Container) Shutdown(ctx context.Context) error {
	c.cancel()

	c.mu.Lock()
	provider := c.metricsProvider
	c.mu.Unlock()

	var shutdownErrors []error

	if provider != nil {
		if err := provider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

func (c *Container) store(name string, err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initErrors[name] = err
}

func (c *Container) initError(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initErrors[name]
}

// initLogger creates a JSON logger at the configured level.
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

	handler := slog.NewJSONHandler(c.logOutput, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	bm, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return bm, nil
}

// initRandomSource selects a deterministic source when a seed is configured.
func (c *Container) initRandomSource() productKeyService.RandomSource {
	if c.config.KeygenRandomSeed != 0 {
		c.Logger().Warn("using seeded random source, generated keys are predictable",
			slog.Int("seed", c.config.KeygenRandomSeed))
		return productKeyService.NewSeededSource(uint64(c.config.KeygenRandomSeed))
	}
	return productKeyService.NewCryptoSource()
}

func (c *Container) initProductKeyUseCase() (productKeyUseCase.ProductKeyUseCase, error) {
	uc := productKeyUseCase.NewProductKeyUseCase(
		c.ProductKeyGenerator(),
		c.ProductKeyValidator(),
		productKeyUseCase.Config{
			GenerationEnabled: c.config.GenerationEnabled,
			BatchMax:          c.config.KeygenBatchMax,
			BatchConcurrency:  c.config.KeygenBatchConcurrency,
		},
		c.Logger(),
	)

	if !c.config.MetricsEnabled {
		return uc, nil
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for product key use case: %w", err)
	}
	return productKeyUseCase.NewProductKeyUseCaseWithMetrics(uc, bm), nil
}

func (c *Container) initHTTPServer() (*http.Server, error) {
	handler, err := c.ProductKeyHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get product key handler for http server: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(c.ctx, c.config, handler, provider)

	return server, nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}

	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
