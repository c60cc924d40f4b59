package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	"storefront/internal/auth"
	"storefront/internal/notification"
	"storefront/internal/order"
	orderstore "storefront/internal/order/store"
	"storefront/internal/platform/config"
	"storefront/internal/platform/httpserver"
	"storefront/internal/platform/logger"
	"storefront/internal/platform/metrics"
	"storefront/internal/platform/redis"
	"storefront/internal/product"
	productstore "storefront/internal/product/store"
	httptransport "storefront/internal/transport/http"
	"storefront/internal/user"
	userstore "storefront/internal/user/store"
	"storefront/pkg/platform/middleware/ratelimit"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New(cfg.Environment)

	m := metrics.New()

	db, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	cache, err := redis.New(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if cache != nil {
		defer cache.Close()
		log.Info("redis cache enabled")
	}

	sink, err := openSink(cfg, log)
	if err != nil {
		return err
	}
	defer sink.Close()

	var (
		users    userstore.Store
		products productstore.Store
	)
	if db != nil {
		users = userstore.NewPostgres(db)
		products = productstore.NewPostgres(db)
	} else {
		users = userstore.NewInMemory()
		products = productstore.NewInMemory()
	}
	products = productstore.NewCached(products, cache, log)

	tokens := auth.NewTokenService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.AccessTokenTTL)

	userSvc := user.NewService(users, user.WithLogger(log))
	productSvc := product.NewService(products, product.WithLogger(log), product.WithMetrics(m))
	orderSvc := order.NewService(orderstore.NewInMemory(), productSvc,
		order.WithLogger(log), order.WithMetrics(m))
	notificationSvc := notification.NewService(sink,
		notification.WithLogger(log), notification.WithMetrics(m))

	router := httptransport.NewRouter(httptransport.Deps{
		Auth:          auth.NewHandler(userSvc, tokens, log),
		Users:         user.NewHandler(userSvc, log),
		Products:      product.NewHandler(productSvc, log),
		Orders:        order.NewHandler(orderSvc, log),
		Notifications: notification.NewHandler(notificationSvc, log),
		Tokens:        tokens,
		Metrics:       m,
		Limiter:       ratelimit.New(50, 100),
		DB:            db,
		Redis:         cache,
		Version:       cfg.Version,
		Environment:   cfg.Environment,
	})

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting storefront", "addr", cfg.Addr, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openDatabase connects to Postgres and runs migrations. An empty DATABASE_URL
// means the process runs on in-memory stores, which suits local development.
func openDatabase(cfg config.Config, log *slog.Logger) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		return nil, nil
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := userstore.NewPostgres(db).Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate users: %w", err)
	}
	if err := productstore.NewPostgres(db).Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate products: %w", err)
	}

	log.Info("postgres connected")
	return db, nil
}

// openSink picks the notification delivery backend. Without brokers configured
// notifications are kept in process memory, which is enough for development
// and for the API contract.
func openSink(cfg config.Config, log *slog.Logger) (notification.Sink, error) {
	if len(cfg.KafkaBrokers) == 0 {
		log.Warn("KAFKA_BROKERS not set, notifications stay in memory")
		return notification.NewMemorySink(), nil
	}
	sink, err := notification.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaNotificationTopic)
	if err != nil {
		return nil, fmt.Errorf("connect kafka: %w", err)
	}
	log.Info("kafka sink enabled", "topic", cfg.KafkaNotificationTopic)
	return sink, nil
}
