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
	"go.uber.org/dig"

	"github.com/zapshift/parcel-service/internal/config"
	"github.com/zapshift/parcel-service/internal/http/handlers"
	"github.com/zapshift/parcel-service/internal/http/middleware"
	"github.com/zapshift/parcel-service/internal/http/middleware/ratelimit"
	"github.com/zapshift/parcel-service/internal/http/router"
	"github.com/zapshift/parcel-service/internal/logx"
	"github.com/zapshift/parcel-service/internal/metrics"
	"github.com/zapshift/parcel-service/internal/repository"
	"github.com/zapshift/parcel-service/internal/service/account"
	"github.com/zapshift/parcel-service/internal/service/events"
	"github.com/zapshift/parcel-service/internal/service/parcel"
	"github.com/zapshift/parcel-service/internal/service/payment"
	"github.com/zapshift/parcel-service/internal/service/rider"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
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

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// build builds and returns a new dig container
func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerGateways(container); err != nil {
		return nil, fmt.Errorf("gateways: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	if err := provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
		func(cfg *config.Config) time.Duration { return cfg.OpTimeout },
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
	); err != nil {
		return err
	}
	return registerCounters(container)
}

func registerCounters(container *dig.Container) error {
	counters := []struct {
		name string
		fn   func() prometheus.Counter
	}{
		{"rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal},
		{"gateway_retries_total", metrics.NewGatewayRetriesTotal},
		{"payments_confirmed_total", metrics.NewPaymentsConfirmedTotal},
	}
	for _, c := range counters {
		c := c
		provider := func() (prometheus.Counter, error) {
			return registerCounter(c.fn())
		}
		if err := container.Provide(provider, dig.Name(c.name)); err != nil {
			return fmt.Errorf("provide counter %s: %w", c.name, err)
		}
	}
	return nil
}

// registerCounter registers a counter on the default registry, returning the
// already registered instance when one exists.
func registerCounter(c prometheus.Counter) (prometheus.Counter, error) {
	if err := prometheus.DefaultRegisterer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(prometheus.Counter), nil
		}
		return nil, fmt.Errorf("register %s: %w", c.Desc().String(), err)
	}
	return c, nil
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		pool, err := dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
		if err != nil {
			return nil, err
		}
		if err := repository.Migrate(cfg.DB.DSN(), cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return pool, nil
	}
	return provideAll(container, providerDB)
}

type paymentServiceIn struct {
	dig.In

	Store     *repository.PaymentRepo
	Parcels   *parcel.Service
	Gateway   checkoutGatewayPort
	Publisher events.Publisher
	Logger    logx.Logger
	Confirmed prometheus.Counter `name:"payments_confirmed_total"`
	Cfg       *config.Config
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewAccountRepo,
		repository.NewParcelRepo,
		repository.NewPaymentRepo,
		repository.NewRiderRepo,
		repository.NewEventRepo,
		func(repo *repository.AccountRepo, timeout time.Duration) *account.Service {
			return account.NewService(repo, timeout)
		},
		func(repo *repository.ParcelRepo, timeout time.Duration) *parcel.Service {
			return parcel.NewService(repo, timeout)
		},
		func(in paymentServiceIn) *payment.Service {
			return payment.NewService(
				in.Store,
				in.Parcels,
				in.Gateway,
				in.Publisher,
				in.Logger,
				in.Confirmed,
				payment.Config{
					Currency:   in.Cfg.Checkout.Currency,
					SiteDomain: in.Cfg.Checkout.SiteDomain,
				},
				in.Cfg.OpTimeout,
			)
		},
		func(repo *repository.RiderRepo, logger logx.Logger, timeout time.Duration) *rider.Service {
			return rider.NewService(repo, logger, timeout)
		},
		func(repo *repository.EventRepo, logger logx.Logger) *events.Recorder {
			return events.NewRecorder(repo, logger)
		},
	)
}

type routerIn struct {
	dig.In

	Logger   logx.Logger
	Base     *handlers.Handlers
	Parcels  *handlers.ParcelHandlers
	Payments *handlers.PaymentHandlers
	Accounts *handlers.AccountHandlers
	Riders   *handlers.RiderHandlers
	Verifier middleware.Verifier
	Roles    middleware.RoleResolver
	Limiter  *ratelimit.Middleware
}

func routerProvider(in routerIn) http.Handler {
	return router.New(router.Deps{
		Logger:   in.Logger,
		Base:     in.Base,
		Parcels:  in.Parcels,
		Payments: in.Payments,
		Accounts: in.Accounts,
		Riders:   in.Riders,
		Verifier: in.Verifier,
		Roles:    in.Roles,
		Limiter:  in.Limiter,
	})
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
	return provideAll(container,
		handlers.New,
		func(logger logx.Logger, svc *parcel.Service) *handlers.ParcelHandlers {
			return handlers.NewParcelHandlers(logger, svc)
		},
		func(logger logx.Logger, svc *payment.Service) *handlers.PaymentHandlers {
			return handlers.NewPaymentHandlers(logger, svc)
		},
		func(logger logx.Logger, svc *account.Service) *handlers.AccountHandlers {
			return handlers.NewAccountHandlers(logger, svc)
		},
		func(logger logx.Logger, svc *rider.Service) *handlers.RiderHandlers {
			return handlers.NewRiderHandlers(logger, svc)
		},
		func(accounts *account.Service) middleware.RoleResolver { return accounts },
		routerProvider,
		serverProvider,
	)
}
