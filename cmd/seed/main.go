package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/podstore/backoffice/internal/infrastructure/config"
	"github.com/podstore/backoffice/internal/infrastructure/logger"
	"github.com/podstore/backoffice/internal/infrastructure/persistence"
)

func main() {
	var (
		fake     int
		fakeSeed uint64
		logLevel string
	)
	flag.IntVar(&fake, "fake", 0, "Generate this many extra products for local demos")
	flag.Uint64Var(&fakeSeed, "fake-seed", 0, "Seed for generated products (0 = random)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{Level: logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database, logger.NewGormLogger(log, logger.MapGormLogLevel(logLevel), time.Second))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res, err := persistence.NewSeeder(db.DB, log).Seed(ctx, persistence.SeedOptions{
		FakeProducts: fake,
		FakeSeed:     fakeSeed,
	})
	if err != nil {
		log.Fatal("Error seeding the database", zap.Error(err))
	}
	log.Info("Products seeded successfully",
		zap.Int("users", res.Users),
		zap.Int("products", res.Products))
}
