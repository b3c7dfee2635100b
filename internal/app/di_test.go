package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nandolawson/keyforge95/internal/config"
	"github.com/nandolawson/keyforge95/internal/metrics"
	"github.com/nandolawson/keyforge95/internal/productkey/domain"
	"github.com/nandolawson/keyforge95/internal/productkey/service"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig() *config.Config {
	return &config.Config{
		ServerHost:              "localhost",
		ServerPort:              8080,
		LogLevel:                "info",
		GenerationEnabled:       true,
		KeygenMaxAttempts:       10000,
		KeygenBatchMax:          100,
		KeygenBatchConcurrency:  4,
		RateLimitEnabled:        true,
		RateLimitRequestsPerSec: 10,
		RateLimitBurst:          20,
		MetricsEnabled:          true,
		MetricsNamespace:        "keyforge",
		MetricsPort:             8081,
	}
}

func newTestContainer(t *testing.T, cfg *config.Config) *Container {
	t.Helper()
	container := NewContainer(cfg)
	container.logOutput = &bytes.Buffer{}
	t.Cleanup(func() {
		assert.NoError(t, container.Shutdown(context.Background()))
	})
	return container
}

func TestNewContainer(t *testing.T) {
	cfg := testConfig()
	container := newTestContainer(t, cfg)

	require.NotNil(t, container)
	assert.Same(t, cfg, container.Config())
}

func TestContainer_Logger(t *testing.T) {
	tests := []struct {
		level        string
		debugEnabled bool
		infoEnabled  bool
	}{
		{level: "debug", debugEnabled: true, infoEnabled: true},
		{level: "info", debugEnabled: false, infoEnabled: true},
		{level: "error", debugEnabled: false, infoEnabled: false},
		{level: "bogus", debugEnabled: false, infoEnabled: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := testConfig()
			cfg.LogLevel = tt.level
			container := newTestContainer(t, cfg)

			logger := container.Logger()
			require.NotNil(t, logger)
			assert.Same(t, logger, container.Logger())
			assert.Equal(t, tt.debugEnabled, logger.Enabled(context.Background(), -4))
			assert.Equal(t, tt.infoEnabled, logger.Enabled(context.Background(), 0))
		})
	}
}

func TestContainer_RandomSource(t *testing.T) {
	t.Run("Success_CryptoByDefault", func(t *testing.T) {
		container := newTestContainer(t, testConfig())

		assert.Equal(t, service.NewCryptoSource(), container.RandomSource())
	})

	t.Run("Success_SeededIsReproducible", func(t *testing.T) {
		cfg := testConfig()
		cfg.KeygenRandomSeed = 42

		first, err := newTestContainer(t, cfg).ProductKeyGenerator().Generate(domain.Oem)
		require.NoError(t, err)
		second, err := newTestContainer(t, cfg).ProductKeyGenerator().Generate(domain.Oem)
		require.NoError(t, err)

		assert.Equal(t, first.Value, second.Value)
	})
}

func TestContainer_ProductKeyUseCase(t *testing.T) {
	t.Run("Success_WithMetrics", func(t *testing.T) {
		container := newTestContainer(t, testConfig())

		uc, err := container.ProductKeyUseCase()
		require.NoError(t, err)

		key, err := uc.Generate(context.Background(), domain.Retail)
		require.NoError(t, err)

		keyType, err := uc.Validate(context.Background(), key.Value)
		require.NoError(t, err)
		assert.Equal(t, domain.Retail, keyType)

		again, err := container.ProductKeyUseCase()
		require.NoError(t, err)
		assert.Same(t, uc, again)
	})

	t.Run("Success_WithoutMetrics", func(t *testing.T) {
		cfg := testConfig()
		cfg.MetricsEnabled = false
		container := newTestContainer(t, cfg)

		provider, err := container.MetricsProvider()
		require.NoError(t, err)
		assert.Nil(t, provider)

		bm, err := container.BusinessMetrics()
		require.NoError(t, err)
		assert.IsType(t, &metrics.NoOpBusinessMetrics{}, bm)

		uc, err := container.ProductKeyUseCase()
		require.NoError(t, err)
		assert.NotNil(t, uc)
	})

	t.Run("Error_GenerationDisabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.GenerationEnabled = false
		container := newTestContainer(t, cfg)

		uc, err := container.ProductKeyUseCase()
		require.NoError(t, err)

		_, err = uc.Generate(context.Background(), domain.Oem)
		assert.ErrorIs(t, err, domain.ErrGenerationDisabled)
	})
}

func TestContainer_Servers(t *testing.T) {
	t.Run("Success_MetricsEnabled", func(t *testing.T) {
		container := newTestContainer(t, testConfig())

		server, err := container.HTTPServer()
		require.NoError(t, err)
		assert.NotNil(t, server.GetHandler())

		metricsServer, err := container.MetricsServer()
		require.NoError(t, err)
		assert.NotNil(t, metricsServer)
	})

	t.Run("Success_MetricsDisabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.MetricsEnabled = false
		container := newTestContainer(t, cfg)

		server, err := container.HTTPServer()
		require.NoError(t, err)
		assert.NotNil(t, server)

		metricsServer, err := container.MetricsServer()
		require.NoError(t, err)
		assert.Nil(t, metricsServer)
	})
}
