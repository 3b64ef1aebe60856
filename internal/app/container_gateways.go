package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"github.com/zapshift/parcel-service/internal/config"
	"github.com/zapshift/parcel-service/internal/gateway/checkout"
	"github.com/zapshift/parcel-service/internal/gateway/identity"
	"github.com/zapshift/parcel-service/internal/http/middleware"
	"github.com/zapshift/parcel-service/internal/logx"
	"github.com/zapshift/parcel-service/internal/service/events"
	"github.com/zapshift/parcel-service/internal/transport/kafka"
)

// checkoutGatewayPort is the checkout surface the payment engine consumes.
type checkoutGatewayPort interface {
	CreateSession(ctx context.Context, p checkout.CreateSessionParams) (*checkout.Session, error)
	GetSession(ctx context.Context, id string) (*checkout.Session, error)
}

type checkoutIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"gateway_retries_total"`
}

func newCheckoutGateway(in checkoutIn) checkoutGatewayPort {
	base := checkout.NewHTTPGateway(in.Cfg.Checkout.BaseURL, in.Cfg.Checkout.APIKey)
	return checkout.NewRetryingGateway(base, in.Logger, in.Retries, checkout.RetryConfig{
		MaxAttempts: in.Cfg.Checkout.MaxAttempts,
		BaseDelay:   in.Cfg.Checkout.BaseDelay,
		MaxDelay:    in.Cfg.Checkout.MaxDelay,
	})
}

func newIdentityVerifier(cfg *config.Config) (middleware.Verifier, error) {
	switch cfg.Identity.Mode {
	case config.IdentityModeJWT:
		return identity.NewJWTVerifier(cfg.Identity.Secret), nil
	case config.IdentityModeRemote:
		return identity.NewRemoteVerifier(cfg.Identity.BaseURL), nil
	default:
		return nil, fmt.Errorf("unknown identity mode %q", cfg.Identity.Mode)
	}
}

func newProducer(cfg *config.Config) (*kafka.Producer, error) {
	return kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
}

func newPublisher(p *kafka.Producer, logger logx.Logger) events.Publisher {
	if p == nil {
		logger.Info("kafka brokers not configured, events disabled")
		return events.NopPublisher{}
	}
	return p
}

func newConsumer(cfg *config.Config, recorder *events.Recorder) (*kafka.Consumer, error) {
	return kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, recorder.Handle)
}

func registerGateways(container *dig.Container) error {
	return provideAll(container,
		newCheckoutGateway,
		newIdentityVerifier,
		newProducer,
		newPublisher,
		newConsumer,
	)
}
