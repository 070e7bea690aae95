package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	catalogapp "github.com/podstore/backoffice/internal/application/catalog"
	identityapp "github.com/podstore/backoffice/internal/application/identity"
	"github.com/podstore/backoffice/internal/application/integration"
	"github.com/podstore/backoffice/internal/application/notification"
	tradeapp "github.com/podstore/backoffice/internal/application/trade"
	"github.com/podstore/backoffice/internal/infrastructure/auth"
	"github.com/podstore/backoffice/internal/infrastructure/config"
	"github.com/podstore/backoffice/internal/infrastructure/logger"
	"github.com/podstore/backoffice/internal/infrastructure/mail"
	"github.com/podstore/backoffice/internal/infrastructure/persistence"
	"github.com/podstore/backoffice/internal/infrastructure/rappi"
	"github.com/podstore/backoffice/internal/infrastructure/storage"
	"github.com/podstore/backoffice/internal/infrastructure/telemetry"
	"github.com/podstore/backoffice/internal/infrastructure/templates"
	"github.com/podstore/backoffice/internal/interfaces/http/handler"
	"github.com/podstore/backoffice/internal/interfaces/http/middleware"
	"github.com/podstore/backoffice/internal/interfaces/http/router"
)

//	@title			Pod Store Back-office API
//	@version		1.0
//	@description	Catalog, users and orders of the Pod Store dashboard, plus the Rappi marketplace integration.
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

//	@securityDefinitions.apikey	RappiToken
//	@in							header
//	@name						user-token

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx := context.Background()
	otelCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}

	// The OTLP log bridge must exist before the logger so it can be teed in
	logsCfg := otelCfg
	logsCfg.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.LogExportEnabled
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, logsCfg)
	if err != nil {
		panic("Failed to initialize log exporter: " + err.Error())
	}
	var extraCores []zapcore.Core
	if core := loggerProvider.Core(); core != nil {
		extraCores = append(extraCores, core)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}, extraCores...)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting Pod Store back-office",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	tracerProvider, err := telemetry.NewTracerProvider(ctx, otelCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, otelCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	meter := meterProvider.Meter(cfg.Telemetry.ServiceName)
	businessMetrics, err := telemetry.NewBusinessMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled: cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:  cfg.Database.DBName,
	}, log); err != nil {
		log.Warn("Database tracing not registered", zap.Error(err))
	}
	log.Info("Database connected")

	// Outbound clients
	sender, err := mail.NewSender(cfg.Email, log)
	if err != nil {
		log.Fatal("Failed to create email sender", zap.Error(err))
	}
	renderer, err := templates.NewEngine(templates.Company{
		CompanyName:  cfg.Email.CompanyName,
		ContactEmail: cfg.Email.ContactEmail,
		ContactPhone: cfg.Email.ContactPhone,
	})
	if err != nil {
		log.Fatal("Failed to parse email templates", zap.Error(err))
	}
	archive, err := newTicketArchive(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to create ticket archive", zap.Error(err))
	}
	rappiClient := rappi.NewClient(cfg.Rappi, log)
	marketplaceTokens := auth.NewMarketplaceTokenService(cfg.Rappi)
	sessions := auth.NewSessionVerifier(cfg.Dashboard)

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Services
	emailService := notification.NewEmailService(sender, renderer, businessMetrics, log)
	var welcome identityapp.WelcomeSender
	if cfg.Email.SendWelcome {
		welcome = emailService
	}
	productService := catalogapp.NewProductService(productRepo)
	userService := identityapp.NewUserService(userRepo, welcome, log)
	orderService := tradeapp.NewOrderService(orderRepo, productRepo, log)
	authService := integration.NewMarketplaceAuthService(userRepo, marketplaceTokens, log)
	ingestionService := integration.NewOrderIngestionService(orderRepo, productRepo, emailService, businessMetrics, log)
	ticketSync := integration.NewTicketSyncService(rappiClient, emailService, archive, cfg.Storage.TicketPrefix, businessMetrics, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
		SkipPaths:   []string{"/health"},
	}))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(meter))
	engine.Use(middleware.SecureWithConfig(middleware.DefaultSecurityConfig(cfg.IsProduction())))
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig(cfg.HTTP.CORSAllowOrigins)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
	defer authLimiter.Stop()

	router.Mount(engine, router.Handlers{
		Products: handler.NewProductHandler(productService),
		Users:    handler.NewUserHandler(userService),
		Orders:   handler.NewOrderHandler(orderService, ticketSync),
		Email:    handler.NewEmailHandler(emailService),
		Rappi:    handler.NewRappiHandler(authService, ingestionService),
		Health:   handler.NewHealthHandler(db),
	}, router.Guards{
		Dashboard:   middleware.DashboardAuth(sessions),
		Marketplace: middleware.MarketplaceToken(marketplaceTokens),
		AuthLimit:   middleware.RateLimit(authLimiter),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	for name, shutdown := range map[string]func(context.Context) error{
		"tracer": tracerProvider.Shutdown,
		"meter":  meterProvider.Shutdown,
		"logs":   loggerProvider.Shutdown,
	} {
		if err := shutdown(shutdownCtx); err != nil {
			log.Warn("Telemetry shutdown failed", zap.String("provider", name), zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}

// newTicketArchive picks the object store for rendered tickets
func newTicketArchive(ctx context.Context, cfg *config.Config, log *zap.Logger) (integration.TicketArchive, error) {
	if cfg.Storage.Provider != config.StorageProviderS3 {
		log.Info("Ticket archive kept in memory", zap.String("provider", cfg.Storage.Provider))
		return storage.NewMemoryObjectStorage(), nil
	}
	return storage.NewS3ObjectStorage(ctx, &cfg.Storage, log)
}
