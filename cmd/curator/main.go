package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/apevault/nft-curator/internal/adapter"
	"github.com/apevault/nft-curator/internal/config"
	"github.com/apevault/nft-curator/internal/curator"
	"github.com/apevault/nft-curator/internal/logger"
	"github.com/apevault/nft-curator/internal/metadata"
	"github.com/apevault/nft-curator/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	dryRun     = flag.Bool("dry-run", false, "Log decisions without mutating the store")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadCuratorConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if *dryRun {
		cfg.DryRun = true
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
			"service": "curator",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting curator maintenance job", zap.Bool("dry_run", cfg.DryRun))

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}

	dataStore := store.NewPGStoreWithBatchSize(db, cfg.BatchSize)

	// Take the maintenance lock, retrying while another run holds it
	if err := acquireLock(ctx, dataStore, cfg.LockTimeout); err != nil {
		logger.FatalCtx(ctx, "Failed to acquire maintenance lock", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Acquired maintenance lock")

	classifier := curator.NewClassifier(curator.ClassifierPatterns{
		AllowPatterns: cfg.Classifier.AllowPatterns,
		DenyPatterns:  cfg.Classifier.DenyPatterns,
		NameSignals:   cfg.Classifier.NameSignals,
	})
	deriver := metadata.NewDeriver(metadata.ProfileBatch)
	pipeline := curator.NewPipeline(dataStore, classifier, deriver, adapter.NewClock(), cfg.DryRun)

	summary, runErr := pipeline.Run(ctx)

	// Release the lock before exiting either way; use a fresh context in case
	// the signal context was canceled mid-run.
	releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dataStore.ReleaseMaintenanceLock(releaseCtx); err != nil {
		logger.ErrorCtx(releaseCtx, err)
	}

	if runErr != nil {
		logger.ErrorCtx(ctx, runErr)
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}

	fmt.Print(summary.Render())
}

// acquireLock retries advisory-lock acquisition with exponential backoff
// until it succeeds or the lock timeout elapses
func acquireLock(ctx context.Context, dataStore store.Store, timeout time.Duration) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxInterval = 15 * time.Second
	b.MaxElapsedTime = timeout

	operation := func() error {
		acquired, err := dataStore.AcquireMaintenanceLock(ctx)
		if err != nil {
			return backoff.Permanent(err)
		}
		if !acquired {
			return errors.New("maintenance lock held by another run")
		}
		return nil
	}

	notify := func(err error, next time.Duration) {
		logger.WarnCtx(ctx, "Maintenance lock busy, retrying",
			zap.Error(err),
			zap.Duration("next_retry_in", next),
		)
	}

	return backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify)
}
