package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"github.com/robomart/toystore/internal/config"
	"github.com/robomart/toystore/internal/event"
	handler "github.com/robomart/toystore/internal/handler/http"
	postgresrepo "github.com/robomart/toystore/internal/repository/postgres"
	redisrepo "github.com/robomart/toystore/internal/repository/redis"
	"github.com/robomart/toystore/internal/service"
	"github.com/robomart/toystore/migrations"
	"github.com/robomart/toystore/pkg/database"
	"github.com/robomart/toystore/pkg/health"
	pkgkafka "github.com/robomart/toystore/pkg/kafka"
	"github.com/robomart/toystore/pkg/tracing"
)

const serviceName = "toystore"

var cartMutationsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "cart_mutations_total",
	Help: "Total number of successful cart mutations",
})

// App wires together all dependencies and owns their lifecycle.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	redisClient *redis.Client
	pgPool      *pgxpool.Pool
	producer    *pkgkafka.Producer
	server      *http.Server

	shutdownTracing func(context.Context) error
}

// New builds the application: connections, migrations, repositories,
// services, and the HTTP server. On error, anything already opened is closed.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	shutdownTracing, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:  serviceName,
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SampleRate:   cfg.TraceSampleRate,
		Enabled:      cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	a.shutdownTracing = shutdownTracing

	a.redisClient, err = database.NewRedisClient(ctx, cfg.Redis())
	if err != nil {
		a.close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	pgCfg := cfg.Postgres()
	a.pgPool, err = database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := database.RunMigrations(ctx, a.pgPool, migrations.FS, logger); err != nil {
		a.close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	database.RegisterPoolMetrics(a.pgPool, serviceName)

	var emitter event.Emitter = event.NopEmitter{}
	if cfg.KafkaEnabled {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		emitter = event.NewKafkaEmitter(a.producer, cfg.AnalyticsTopic, logger)
	}

	cartRepo := redisrepo.NewCartRepository(a.redisClient, cfg.CartTTL(), logger)
	productRepo := postgresrepo.NewProductRepository(a.pgPool)
	contactRepo := postgresrepo.NewContactRepository(a.pgPool)

	cartSvc := service.NewCartService(cartRepo, emitter, logger)
	cartSvc.OnChange(func(context.Context, string) {
		cartMutationsTotal.Inc()
	})
	catalogSvc := service.NewCatalogService(productRepo, logger)
	contactSvc := service.NewContactService(contactRepo, emitter, logger)

	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("redis", func(ctx context.Context) error {
		return a.redisClient.Ping(ctx).Err()
	})
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return a.pgPool.Ping(ctx)
	})
	if a.producer != nil {
		healthHandler.RegisterNonCritical("kafka", a.producer.Ping)
	}

	router := handler.NewRouter(handler.RouterDeps{
		Cart:    handler.NewCartHandler(cartSvc, logger),
		Catalog: handler.NewCatalogHandler(catalogSvc, logger),
		Contact: handler.NewContactHandler(contactSvc, logger),
		Health:  healthHandler,
		Logger:  logger,
	})

	a.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return a, nil
}

// Run starts the HTTP server and blocks until it stops.
func (a *App) Run() error {
	a.logger.Info("http server starting",
		slog.String("addr", a.server.Addr),
		slog.String("environment", a.cfg.Environment),
	)

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and closes all connections.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down")

	var firstErr error
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			firstErr = fmt.Errorf("shutdown http server: %w", err)
		}
	}
	a.close()

	if a.shutdownTracing != nil {
		if err := a.shutdownTracing(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("shutdown tracing: %w", err)
		}
	}

	return firstErr
}

func (a *App) close() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("failed to close kafka producer", slog.String("error", err.Error()))
		}
	}
	if a.pgPool != nil {
		a.pgPool.Close()
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("failed to close redis client", slog.String("error", err.Error()))
		}
	}
}
