package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap/zapcore"
)

// LoggerProvider wraps the SDK log provider. Its Core bridges zap
// records into the OTLP log pipeline.
type LoggerProvider struct {
	provider    *sdklog.LoggerProvider
	serviceName string
}

// NewLoggerProvider creates the OTLP log pipeline. A disabled config
// yields a provider whose Core is nil.
func NewLoggerProvider(ctx context.Context, cfg Config) (*LoggerProvider, error) {
	lp := &LoggerProvider{serviceName: cfg.ServiceName}
	if !cfg.Enabled {
		return lp, nil
	}

	opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlploggrpc.WithInsecure())
	}
	exporter, err := otlploggrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP logs exporter: %w", err)
	}

	res, err := newResource(cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	lp.provider = sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	)
	global.SetLoggerProvider(lp.provider)
	return lp, nil
}

// Core returns the otelzap core to tee into the application logger.
func (lp *LoggerProvider) Core() zapcore.Core {
	if lp.provider == nil {
		return nil
	}
	return otelzap.NewCore(lp.serviceName, otelzap.WithLoggerProvider(lp.provider))
}

// Shutdown flushes pending log records.
func (lp *LoggerProvider) Shutdown(ctx context.Context) error {
	if lp.provider == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return lp.provider.Shutdown(shutdownCtx)
}
