package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/annel0/mmo-globe/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findFamily(t *testing.T, registry *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := registry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestPrometheusMiddleware_BasicMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	gin.SetMode(gin.TestMode)
	r := gin.New()

	promMw := NewPrometheusMiddleware("test", registry)
	r.Use(promMw.Handler())

	r.GET("/ok", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.GET("/error", func(c *gin.Context) { c.JSON(500, gin.H{"error": "test error"}) })

	for _, path := range []string{"/ok", "/error"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", path, nil)
		r.ServeHTTP(w, req)
	}

	duration := findFamily(t, registry, "test_http_request_duration_seconds")
	require.NotNil(t, duration, "Duration metric not found")
	assert.Equal(t, "Длительность HTTP-запросов.", duration.GetHelp())
	assert.Len(t, duration.Metric, 2)

	errors := findFamily(t, registry, "test_http_request_errors_total")
	require.NotNil(t, errors, "Errors metric not found")
	// Должна быть 1 ошибка (500 статус)
	require.Len(t, errors.Metric, 1)
	assert.Equal(t, float64(1), errors.Metric[0].GetCounter().GetValue())

	inflight := findFamily(t, registry, "test_http_requests_inflight")
	require.NotNil(t, inflight)
	assert.Equal(t, float64(0), inflight.Metric[0].GetGauge().GetValue())
}

func TestPrometheusMiddleware_UnmatchedPath(t *testing.T) {
	registry := prometheus.NewRegistry()

	gin.SetMode(gin.TestMode)
	r := gin.New()

	promMw := NewPrometheusMiddleware("test", registry)
	r.Use(promMw.Handler())

	for _, path := range []string{"/a", "/b", "/c"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", path, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, 404, w.Code)
	}

	errors := findFamily(t, registry, "test_http_request_errors_total")
	require.NotNil(t, errors)
	// Все неизвестные маршруты сводятся к одной серии
	require.Len(t, errors.Metric, 1)
	assert.Equal(t, float64(3), errors.Metric[0].GetCounter().GetValue())
}

func TestPrometheusMiddleware_MetricsEndpoint(t *testing.T) {
	registry := prometheus.NewRegistry()

	gin.SetMode(gin.TestMode)
	r := gin.New()

	promMw := NewPrometheusMiddleware("endpoint_test", registry)
	r.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(r)

	r.GET("/api/test", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	w1 := httptest.NewRecorder()
	req1, _ := http.NewRequest("GET", "/api/test", nil)
	r.ServeHTTP(w1, req1)
	assert.Equal(t, 200, w1.Code)

	w2 := httptest.NewRecorder()
	req2, _ := http.NewRequest("GET", "/metrics", nil)
	r.ServeHTTP(w2, req2)

	assert.Equal(t, 200, w2.Code)
	assert.Contains(t, w2.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w2.Body.String(), "endpoint_test_http_request_duration_seconds")
}

func TestRequestLogger_TraceID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var logs bytes.Buffer
	r.Use(NewRequestLogger(logging.NewWriterLogger("api", &logs, logging.TRACE)).Handler())

	var capturedTraceID string
	r.GET("/test", func(c *gin.Context) {
		traceID, exists := c.Get("trace_id")
		require.True(t, exists, "trace_id should be set in context")
		capturedTraceID = traceID.(string)
		c.JSON(200, gin.H{"trace_id": capturedTraceID})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.NotEmpty(t, capturedTraceID)
	assert.Equal(t, capturedTraceID, w.Header().Get(TraceHeader))
	assert.Contains(t, w.Body.String(), capturedTraceID)

	assert.Contains(t, logs.String(), "[HTTP] ▶ GET /test")
	assert.Contains(t, logs.String(), "[HTTP] ◀ GET /test 200")
}

func TestRequestLogger_ServerErrorLevel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var logs bytes.Buffer
	r.Use(NewRequestLogger(logging.NewWriterLogger("api", &logs, logging.ERROR)).Handler())
	r.GET("/ok", func(c *gin.Context) { c.Status(200) })
	r.GET("/fail", func(c *gin.Context) { c.Status(503) })

	for _, path := range []string{"/ok", "/fail"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", path, nil)
		r.ServeHTTP(w, req)
	}

	assert.NotContains(t, logs.String(), "/ok")
	assert.Contains(t, logs.String(), "[ERROR] [api] [HTTP] ◀ GET /fail 503")
}

// BenchmarkPrometheusMiddleware измеряет overhead middleware
func BenchmarkPrometheusMiddleware(b *testing.B) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	promMw := NewPrometheusMiddleware("bench", prometheus.NewRegistry())
	r.Use(promMw.Handler())

	r.GET("/bench", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/bench", nil)
			r.ServeHTTP(w, req)
		}
	})
}
