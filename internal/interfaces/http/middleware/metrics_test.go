package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func setupTestMeter(t *testing.T) (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = mp.Shutdown(context.Background())
	})
	return mp, reader
}

func collectMetric(t *testing.T, reader *sdkmetric.ManualReader, name string) *metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestHTTPMetrics_NilMeter(t *testing.T) {
	router := gin.New()
	router.Use(HTTPMetrics(nil))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHTTPMetrics_RequestCounter(t *testing.T) {
	mp, reader := setupTestMeter(t)

	router := gin.New()
	router.Use(HTTPMetrics(mp.Meter("http.server")))
	router.GET("/api/v1/dashboard/products/:id", func(c *gin.Context) {
		if c.Param("id") == "404" {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusOK)
	})

	for _, id := range []string{"1", "2", "404"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/products/"+id, nil))
	}

	total := collectMetric(t, reader, "http_server_request_total")
	require.NotNil(t, total)
	sum, ok := total.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 2)

	byStatus := map[int64]int64{}
	for _, dp := range sum.DataPoints {
		route, _ := dp.Attributes.Value(attribute.Key("http.route"))
		assert.Equal(t, "/api/v1/dashboard/products/:id", route.AsString())
		status, _ := dp.Attributes.Value(attribute.Key("http.status_code"))
		byStatus[status.AsInt64()] = dp.Value
	}
	assert.Equal(t, map[int64]int64{200: 2, 404: 1}, byStatus)

	duration := collectMetric(t, reader, "http_server_request_duration_seconds")
	require.NotNil(t, duration)
	hist, ok := duration.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(3), hist.DataPoints[0].Count)
}

func TestHTTPMetrics_UnmatchedRoute(t *testing.T) {
	mp, reader := setupTestMeter(t)

	router := gin.New()
	router.Use(HTTPMetrics(mp.Meter("http.server")))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	total := collectMetric(t, reader, "http_server_request_total")
	require.NotNil(t, total)
	sum := total.Data.(metricdata.Sum[int64])
	route, _ := sum.DataPoints[0].Attributes.Value(attribute.Key("http.route"))
	assert.Equal(t, "unknown", route.AsString())
}
