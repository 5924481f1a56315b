package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"seedstore_backend/internal/adapters"
	"seedstore_backend/internal/adapters/storage"
	"seedstore_backend/internal/cart"
	"seedstore_backend/internal/catalog"
	"seedstore_backend/internal/chat"
	"seedstore_backend/internal/email"
	"seedstore_backend/internal/events"
	apphttp "seedstore_backend/internal/http"
	"seedstore_backend/internal/http/router"
	"seedstore_backend/internal/notification"
	"seedstore_backend/internal/orders"
	"seedstore_backend/internal/reviews"
	"seedstore_backend/internal/users"
	"seedstore_backend/platform/config"
	"seedstore_backend/platform/db"
	"seedstore_backend/platform/httpkit"
	"seedstore_backend/platform/logger"
	"seedstore_backend/platform/ratelimit"
	"seedstore_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, cfg.MigrationsDir)
	}); err != nil {
		return fmt.Errorf("run database migrations: %w", err)
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	eventBus := events.NewInMemoryBus(log)
	defer eventBus.Wait()

	val := validator.New()

	storageSvc, err := initStorage(ctx, cfg, log)
	if err != nil {
		return err
	}

	chatLimiter, closeLimiter := initChatLimiter(ctx, cfg, log)
	if closeLimiter != nil {
		defer closeLimiter()
	}

	notificationModule := notification.New(initSender(cfg, log), cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	usersModule := users.NewModule(pool, cfg, eventBus, val, log)
	userDirectory := adapters.NewUserDirectory(usersModule.Repository())

	catalogModule := catalog.NewModule(pool, storageSvc, cfg.GetMinioBucketProductImages(), val, log)
	catalogModule.RegisterHandlers(eventBus)
	productReader := adapters.NewCatalogProductReader(catalogModule.Service())

	cartModule := cart.NewModule(pool, productReader, val, log)
	ordersModule := orders.NewModule(pool, productReader, userDirectory, eventBus, val, log)
	reviewsModule := reviews.NewModule(pool, productReader, userDirectory, eventBus, val, log)
	chatModule := chat.NewModule(pool, val, log)

	app := &apphttp.App{
		Config:      cfg,
		Logger:      log,
		Health:      db.NewPoolAdapter(pool),
		Identity:    usersModule.Service(),
		ChatLimiter: chatLimiter,
		Modules: []apphttp.Module{
			usersModule,
			catalogModule,
			cartModule,
			ordersModule,
			reviewsModule,
			chatModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// initStorage returns nil when MinIO is not configured; product image
// endpoints then answer 400.
func initStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (storage.ImageStore, error) {
	if !cfg.IsMinIOEnabled() {
		log.Warn("MINIO_ENDPOINT not configured; product image uploads disabled")
		return nil, nil
	}

	storageSvc, err := storage.NewMinIOStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize storage service: %w", err)
	}
	bucket := cfg.GetMinioBucketProductImages()
	if err := withRetry(ctx, log, "ensure product images bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		return nil, fmt.Errorf("ensure storage bucket %s: %w", bucket, err)
	}
	log.Info("storage service initialized", "productImagesBucket", bucket)
	return storageSvc, nil
}

// initChatLimiter prefers a Redis limiter shared across replicas and falls
// back to a per-process token bucket.
func initChatLimiter(ctx context.Context, cfg *config.Config, log *logger.Logger) (httpkit.KeyedLimiter, func()) {
	perMinute, burst := cfg.GetChatRateLimitPerMinute(), cfg.GetChatRateLimitBurst()
	if cfg.GetRedisURL() == "" {
		log.Info("chat rate limit is per process", "perMinute", perMinute, "burst", burst)
		return ratelimit.NewPerMinuteLimiter(perMinute, burst), nil
	}

	client, err := ratelimit.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to redis; using in-process chat rate limit", "error", err)
		return ratelimit.NewPerMinuteLimiter(perMinute, burst), nil
	}
	log.Info("chat rate limit is shared through redis", "perMinute", perMinute)
	return ratelimit.NewRedisLimiter(client, "chat", perMinute, time.Minute), func() {
		_ = client.Close()
	}
}

func initSender(cfg *config.Config, log *logger.Logger) email.Sender {
	if !cfg.GetEmailEnabled() {
		log.Warn("email disabled; order notifications are logged only")
		return email.NoopSender{}
	}
	log.Info("smtp email sender initialized", "host", cfg.GetSMTPHost(), "port", cfg.GetSMTPPort())
	return email.NewSMTPSenderFromConfig(cfg)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}
