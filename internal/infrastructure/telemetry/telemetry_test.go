package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestProviders_Disabled(t *testing.T) {
	ctx := context.Background()
	cfg := Config{Enabled: false, ServiceName: "test"}

	tp, err := NewTracerProvider(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	assert.NoError(t, tp.Shutdown(ctx))

	mp, err := NewMeterProvider(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, mp.Meter("x"))
	assert.NoError(t, mp.Shutdown(ctx))

	lp, err := NewLoggerProvider(ctx, cfg)
	require.NoError(t, err)
	assert.Nil(t, lp.Core())
	assert.NoError(t, lp.Shutdown(ctx))
}

func TestSampler(t *testing.T) {
	assert.Equal(t, sdktrace.NeverSample().Description(), sampler(0).Description())
	assert.Contains(t, sampler(1).Description(), "AlwaysOnSampler")
	assert.Contains(t, sampler(0.25).Description(), "TraceIDRatioBased")
}

func TestBusinessMetrics(t *testing.T) {
	_, err := NewBusinessMetrics(nil)
	assert.ErrorIs(t, err, ErrMeterNil)

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	bm, err := NewBusinessMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	bm.OrderIngested(ctx, SourceRappi)
	bm.OrderIngested(ctx, SourceRappi)
	bm.EmailSent(ctx, "order_confirmation", false)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	totals := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					totals[m.Name] += dp.Value
				}
			}
		}
	}
	assert.Equal(t, int64(2), totals["pod_orders_ingested_total"])
	assert.Equal(t, int64(1), totals["pod_emails_total"])
}

func TestStartServiceSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := StartServiceSpan(context.Background(), "order_ingestion", "ingest")
	RecordError(span, errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "order_ingestion.ingest", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestRegisterDBTracing(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, RegisterDBTracing(db, DBTracingConfig{Enabled: false}, zap.NewNop()))
	require.NoError(t, RegisterDBTracing(db, DBTracingConfig{Enabled: true, DBName: "podstore"}, zap.NewNop()))
	assert.NoError(t, db.Exec("SELECT 1").Error)
}
