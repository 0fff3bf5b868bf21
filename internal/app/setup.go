// Package app contains the application setup for the product service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/gocatalog/internal/config"
	"github.com/abgdnv/gocatalog/internal/service"
	"github.com/abgdnv/gocatalog/internal/store"
	grpcImpl "github.com/abgdnv/gocatalog/internal/transport/grpc"
	"github.com/abgdnv/gocatalog/internal/transport/rest"
	"github.com/abgdnv/gocatalog/pkg/bootstrap"
	pkgconfig "github.com/abgdnv/gocatalog/pkg/config"
	"github.com/abgdnv/gocatalog/pkg/kafka"
	"github.com/abgdnv/gocatalog/pkg/messaging"
	"github.com/abgdnv/gocatalog/pkg/messaging/events"
	"github.com/abgdnv/gocatalog/pkg/nats"
	"github.com/abgdnv/gocatalog/pkg/server"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Closer releases a resource acquired during setup.
type Closer func()

type Dependencies struct {
	ProductService service.ProductService
	Logger         *slog.Logger
	// MetricsHandler serves the Prometheus exposition. Nil disables the route.
	MetricsHandler http.Handler
}

func SetupDependencies(productStore store.ProductStore, publisher messaging.Publisher, logger *slog.Logger, metricsHandler http.Handler) *Dependencies {
	return &Dependencies{
		ProductService: service.NewService(productStore, publisher),
		Logger:         logger,
		MetricsHandler: metricsHandler,
	}
}

// NewStore opens the record store selected by cfg.Driver.
func NewStore(ctx context.Context, cfg pkgconfig.StoreConfig, logger *slog.Logger) (store.ProductStore, Closer, error) {
	switch cfg.Driver {
	case pkgconfig.StoreDriverPostgres:
		if cfg.Postgres.Migrate {
			if err := store.Migrate(cfg.Postgres.URL); err != nil {
				return nil, nil, err
			}
			logger.Info("Database migrations applied")
		}
		dbPool, err := bootstrap.NewDbPool(ctx, cfg.Postgres.URL, cfg.Postgres.Timeout)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Successfully connected to the database!")
		return store.NewPgStore(dbPool), dbPool.Close, nil

	case pkgconfig.StoreDriverMongo:
		client, err := bootstrap.NewMongoClient(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		closeClient := func() { _ = client.Disconnect(context.Background()) }
		mongoStore := store.NewMongoStore(client.Database(cfg.Mongo.Database), cfg.Mongo.Collection)
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			closeClient()
			return nil, nil, err
		}
		logger.Info("Successfully connected to MongoDB!")
		return mongoStore, closeClient, nil

	case pkgconfig.StoreDriverRedis:
		client, err := bootstrap.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Successfully connected to Redis!")
		return store.NewRedisStore(client, cfg.Redis.KeyPrefix), func() { _ = client.Close() }, nil

	case pkgconfig.StoreDriverMemory, "":
		logger.Warn("Using in-memory store, data is lost on restart")
		return store.NewInMemoryStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver: %q", cfg.Driver)
	}
}

// NewPublisher creates the event publisher selected by cfg.Driver.
func NewPublisher(ctx context.Context, cfg pkgconfig.EventsConfig, logger *slog.Logger) (messaging.Publisher, Closer, error) {
	switch cfg.Driver {
	case pkgconfig.EventsDriverNATS:
		nc, err := nats.NewClient(cfg.NATS.Url, cfg.NATS.Timeout)
		if err != nil {
			return nil, nil, err
		}
		js, err := nats.NewJetStreamContext(nc)
		if err != nil {
			return nil, nil, err
		}
		if err := nats.EnsureStream(ctx, js, cfg.NATS.Stream, events.ProductSubjectPrefix+".>"); err != nil {
			nc.Close()
			return nil, nil, err
		}
		logger.Info("Publishing product events to NATS", "stream", cfg.NATS.Stream)
		return nats.NewNatsPublisher(js), func() { _ = nc.Drain() }, nil

	case pkgconfig.EventsDriverKafka:
		publisher := kafka.NewPublisher(kafka.NewWriter(cfg.Kafka))
		logger.Info("Publishing product events to Kafka", "topic", cfg.Kafka.Topic)
		return publisher, func() {
			if err := publisher.Close(); err != nil {
				logger.Warn("Failed to close kafka writer", "error", err)
			}
		}, nil

	case pkgconfig.EventsDriverNone, "":
		return messaging.NopPublisher{}, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported events driver: %q", cfg.Driver)
	}
}

// SetupHttpHandler builds the router with all product routes.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	productHandler := rest.NewHandler(deps.ProductService, deps.Logger, cfg.API.NormalizeStatus)
	productHandler.RegisterRoutes(mux)
	if deps.MetricsHandler != nil {
		mux.Method(http.MethodGet, cfg.Telemetry.Metrics.Path, deps.MetricsHandler)
	}
	return mux
}

// SetupHttpServer creates and configures an HTTP server for the product service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config, serviceName string) *http.Server {
	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}
	return server.NewHTTPServer(httpCfg, serviceName, SetupHttpHandler(deps, cfg))
}

// SetupGrpcServer initializes the gRPC server with the health service.
func SetupGrpcServer(deps *Dependencies, reflectionEnabled bool) *grpc.Server {
	healthRegisterFunc := func(s *grpc.Server) {
		healthpb.RegisterHealthServer(s, grpcImpl.NewHealthServer(deps.ProductService))
	}
	return server.NewGRPCServer(deps.Logger, reflectionEnabled, healthRegisterFunc)
}
