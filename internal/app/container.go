package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/dig"

	"service-lastmile/internal/apperr"
	"service-lastmile/internal/config"
	"service-lastmile/internal/gateway/driver"
	"service-lastmile/internal/http/handlers"
	"service-lastmile/internal/http/middleware"
	"service-lastmile/internal/http/router"
	"service-lastmile/internal/logx"
	"service-lastmile/internal/observability"
	"service-lastmile/internal/repository"
	"service-lastmile/internal/service/delivery"
	"service-lastmile/internal/service/orders"
	"service-lastmile/internal/transport/kafka"
)

type dbConnectFunc func(ctx context.Context, logger logx.Logger, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error)

type migrateFunc func(ctx context.Context, pool *pgxpool.Pool) error

// tracerShutdown flushes and stops the tracer provider.
type tracerShutdown func(context.Context) error

// publisherCloser stops the event producer.
type publisherCloser func() error

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect  dbConnectFunc
	migrate    migrateFunc
	loadConfig func() (*config.Config, error)
	registry   *prometheus.Registry
	logFatalf  func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect:  connectDbWithRetry,
		migrate:    repository.Migrate,
		loadConfig: config.Load,
		logFatalf:  log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithMigrate sets the schema migration function
func (b *ContainerBuilder) WithMigrate(fn migrateFunc) *ContainerBuilder {
	if fn != nil {
		b.migrate = fn
	}
	return b
}

// WithConfigLoader sets the configuration loader
func (b *ContainerBuilder) WithConfigLoader(fn func() (*config.Config, error)) *ContainerBuilder {
	if fn != nil {
		b.loadConfig = fn
	}
	return b
}

// WithRegistry sets the Prometheus registry
func (b *ContainerBuilder) WithRegistry(reg *prometheus.Registry) *ContainerBuilder {
	if reg != nil {
		b.registry = reg
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds the API container or calls logFatalf.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds the order-events worker container or calls logFatalf.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) base(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	reg := b.registry
	if reg == nil {
		reg = NewRegistry()
	}
	if err := registerCore(container, ctx, b.loadConfig, reg); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect, b.migrate); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container, err := b.base(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container, err := b.base(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds the API container with default settings.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds the worker container with default settings.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(
	container *dig.Container,
	ctx context.Context,
	loadConfig func() (*config.Config, error),
	reg *prometheus.Registry,
) error {
	return provideAll(container,
		func() context.Context { return ctx },
		loadConfig,
		NewLogger,
		func() *prometheus.Registry { return reg },
		func(reg *prometheus.Registry) (*Metrics, error) { return newMetrics(reg) },
		newTracing,
	)
}

func newTracing(ctx context.Context, cfg *config.Config) (trace.TracerProvider, tracerShutdown, error) {
	tp, shutdown, err := observability.Init(ctx, observability.TracingConfig{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("tracing: %w", err)
	}
	return tp, shutdown, nil
}

func registerDb(container *dig.Container, dbConnect dbConnectFunc, migrate migrateFunc) error {
	providerDB := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*pgxpool.Pool, error) {
		pool, err := dbConnect(ctx, logger, cfg.DB.DSN(), 10, time.Second)
		if err != nil {
			return nil, err
		}
		if err := migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return pool, nil
	}
	return provideAll(container, providerDB)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewDeliveryRepo,
		newDriverGateway,
		newEventEmitter,
		func(
			repo *repository.DeliveryRepo,
			gw *driver.RetryingGateway,
			events delivery.EventEmitter,
			cfg *config.Config,
			logger logx.Logger,
			m *Metrics,
		) *delivery.Service {
			return delivery.NewDeliveryService(repo, gw, events, cfg.OperationTimeout, logger, m.BestEffortFailures)
		},
		func(svc *delivery.Service, tp trace.TracerProvider) delivery.Usecase {
			return observability.NewTracedDeliveries(svc, tp)
		},
	)
}

func newDriverGateway(cfg *config.Config, logger logx.Logger, m *Metrics) *driver.RetryingGateway {
	gw := cfg.DriverGateway
	return driver.NewRetryingGateway(
		driver.NewHTTPGateway(gw.BaseURL, gw.Timeout),
		logger,
		m.GatewayRetries,
		driver.RetryConfig{
			MaxAttempts: gw.MaxAttempts,
			BaseDelay:   gw.BaseDelay,
			MaxDelay:    gw.MaxDelay,
		},
	)
}

// newEventEmitter returns the Kafka publisher, or a no-op emitter when no brokers are configured.
func newEventEmitter(cfg *config.Config, logger logx.Logger, m *Metrics) (delivery.EventEmitter, publisherCloser, error) {
	pub, err := kafka.NewPublisher(logger, kafka.PublisherConfig{
		Brokers:        cfg.Kafka.Brokers,
		DepartedTopic:  cfg.Kafka.DepartedTopic,
		CompletedTopic: cfg.Kafka.CompletedTopic,
	}, m.EventsPublished)
	if err != nil {
		return nil, nil, err
	}
	if pub == nil {
		logger.Warn("kafka brokers not configured, delivery events are not published")
		return kafka.NewNopPublisher(logger), func() error { return nil }, nil
	}
	return pub, pub.Close, nil
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	routerProvider := func(
		h *handlers.Handlers,
		d *handlers.DeliveryHandler,
		logger logx.Logger,
		m *Metrics,
		reg *prometheus.Registry,
	) http.Handler {
		return router.New(h, d, router.Options{
			Observability: middleware.Observability(logger, m.HTTP),
			Metrics:       promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		})
	}
	return provideAll(container,
		handlers.New,
		handlers.NewDeliveryUsecase,
		handlers.NewDeliveryHandler,
		routerProvider,
		serverProvider,
	)
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func(uc delivery.Usecase, logger logx.Logger) *orders.Processor {
			return orders.NewProcessor(uc, logger)
		},
		func(cfg *config.Config, logger logx.Logger, p *orders.Processor) (*kafka.Consumer, error) {
			return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.OrdersTopic, ordersHandler(p))
		},
	)
}

// ordersHandler marks invalid events as permanent so the consumer skips them.
func ordersHandler(p *orders.Processor) kafka.HandleFunc {
	return func(ctx context.Context, ev orders.Event) error {
		err := p.Handle(ctx, ev)
		if errors.Is(err, apperr.ErrInvalid) {
			return kafka.Permanent(err)
		}
		return err
	}
}
