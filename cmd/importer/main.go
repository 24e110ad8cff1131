package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/apevault/nft-curator/internal/adapter"
	"github.com/apevault/nft-curator/internal/config"
	"github.com/apevault/nft-curator/internal/importer"
	"github.com/apevault/nft-curator/internal/logger"
	"github.com/apevault/nft-curator/internal/metadata"
	"github.com/apevault/nft-curator/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadImporterConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context canceled on shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "importer",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting batch mint",
		zap.String("collection", cfg.Collection),
		zap.Int64("start_number", cfg.StartNumber),
		zap.Int64("count", cfg.Count),
	)

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}

	dataStore := store.NewPGStore(db)

	imp := importer.New(&importer.Config{
		Collection:     cfg.Collection,
		TokenPrefix:    cfg.TokenPrefix,
		StartNumber:    cfg.StartNumber,
		Count:          cfg.Count,
		ImageDir:       cfg.ImageDir,
		OwnerUsername:  cfg.OwnerUsername,
		ForSale:        cfg.ForSale,
		WorkerPoolSize: cfg.WorkerPoolSize,
	}, dataStore, metadata.NewDeriver(metadata.ProfileMint), adapter.NewFilesystem(), adapter.NewClock())

	minted, err := imp.Run(ctx)
	if err != nil {
		logger.ErrorCtx(ctx, err)
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}

	fmt.Printf("Minted %d tokens into %q\n", minted, cfg.Collection)
}
