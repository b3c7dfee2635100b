package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success_RecordRequests", func(t *testing.T) {
		provider, err := NewProvider("test_app")
		require.NoError(t, err)
		defer func() {
			assert.NoError(t, provider.Shutdown(context.Background()))
		}()

		router := gin.New()
		router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "test_app"))
		router.POST("/v1/product-keys/generate", func(c *gin.Context) {
			c.JSON(http.StatusCreated, gin.H{"keys": []string{"111-1111111"}})
		})
		router.POST("/v1/product-keys/validate", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"valid": true})
		})

		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/product-keys/generate", nil)
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusCreated, w.Code)
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/product-keys/validate", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		output := scrape(t, provider)
		assertBizMetricLine(
			t,
			output,
			`test_app_http_requests_total`,
			`method="POST".*path="/v1/product-keys/generate".*status_code="201"`,
			`3`,
		)
		assertBizMetricLine(
			t,
			output,
			`test_app_http_requests_total`,
			`method="POST".*path="/v1/product-keys/validate".*status_code="200"`,
			`1`,
		)
	})

	t.Run("Success_UnmatchedRouteIsUnknown", func(t *testing.T) {
		provider, err := NewProvider("test_app")
		require.NoError(t, err)
		defer func() {
			assert.NoError(t, provider.Shutdown(context.Background()))
		}()

		router := gin.New()
		router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "test_app"))

		for _, path := range []string{"/nope", "/also-nope"} {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, path, nil)
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusNotFound, w.Code)
		}

		output := scrape(t, provider)
		assertBizMetricLine(t, output, `test_app_http_requests_total`, `path="unknown".*status_code="404"`, `2`)
		assert.False(t, strings.Contains(output, `path="/nope"`))
	})
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "RoutePattern", input: "/v1/product-keys/validate", expected: "/v1/product-keys/validate"},
		{name: "EmptyPath", input: "", expected: "unknown"},
		{name: "RootPath", input: "/", expected: "/"},
		{name: "ParamPath", input: "/v1/items/:id", expected: "/v1/items/:id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizePath(tt.input))
		})
	}
}
