package server

import (
	"context"
	"fmt"
	"net/http"

	"birthday-tracker-api/internal/config"
	"birthday-tracker-api/internal/database"
	"birthday-tracker-api/internal/handlers"
	"birthday-tracker-api/internal/logging"
	"birthday-tracker-api/internal/metrics"
	"birthday-tracker-api/internal/repositories/sqlstore"
	"birthday-tracker-api/internal/secrets"
	"birthday-tracker-api/internal/services"
	"birthday-tracker-api/internal/tracing"
	"birthday-tracker-api/pkg/lambda"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *logrus.Logger
	Metrics         metrics.Recorder
	Tracing         *tracing.Provider
	BirthdayService services.BirthdayService
	BirthdayHandler *handlers.BirthdayHandler

	// Internal dependencies
	connections *database.ConnectionManager
}

// Option customizes container construction
type Option func(*containerOptions)

type containerOptions struct {
	logger   *logrus.Logger
	metrics  metrics.Recorder
	resolver secrets.Resolver
	tracing  *tracing.Provider
}

// WithLogger overrides the logger built from configuration
func WithLogger(logger *logrus.Logger) Option {
	return func(o *containerOptions) { o.logger = logger }
}

// WithMetrics overrides the EMF recorder
func WithMetrics(recorder metrics.Recorder) Option {
	return func(o *containerOptions) { o.metrics = recorder }
}

// WithResolver overrides the configured secret resolver
func WithResolver(resolver secrets.Resolver) Option {
	return func(o *containerOptions) { o.resolver = resolver }
}

// WithTracing overrides the provider built from the OTLP settings
func WithTracing(provider *tracing.Provider) Option {
	return func(o *containerOptions) { o.tracing = provider }
}

// NewContainer creates a new dependency injection container. No connection
// is opened here; the first request acquires it.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	options := &containerOptions{}
	for _, opt := range opts {
		opt(options)
	}

	logger := options.logger
	if logger == nil {
		logger = logging.New(logging.Options{
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			Service: cfg.Metrics.Namespace,
		})
	}

	recorder := options.metrics
	if recorder == nil {
		recorder = metrics.NewEMFRecorder(cfg.Metrics.Namespace, cfg.Metrics.Service)
	}

	resolver := options.resolver
	if resolver == nil {
		var err error
		resolver, err = newResolver(cfg.Secrets, logger)
		if err != nil {
			return nil, err
		}
	}

	provider := options.tracing
	if provider == nil {
		var err error
		provider, err = tracing.Setup(context.Background(), tracing.Options{
			ServiceName: cfg.Metrics.Namespace,
			Endpoint:    cfg.Tracing.Endpoint,
			Enabled:     cfg.Tracing.Enabled,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to set up tracing: %w", err)
		}
	}

	dialect, err := cfg.Database.Dialect()
	if err != nil {
		return nil, fmt.Errorf("failed to select schema dialect: %w", err)
	}

	connections := database.NewConnectionManager(cfg.Database.ToConnectionConfig(logger), nil)

	service, err := services.NewBirthdayService(
		services.BirthdayServiceConfig{
			SecretName: cfg.Secrets.SecretName,
			Region:     cfg.Secrets.Region,
		},
		services.BirthdayServiceDeps{
			Resolver:     resolver,
			Provider:     connections,
			Bootstrapper: database.NewBootstrapper(dialect, logger),
			Repositories: sqlstore.NewFactory(logger),
			Metrics:      recorder,
			Tracer:       provider.Tracer(),
			Logger:       logger,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create birthday service: %w", err)
	}

	return &Container{
		Config:          cfg,
		Logger:          logger,
		Metrics:         recorder,
		Tracing:         provider,
		BirthdayService: service,
		BirthdayHandler: handlers.NewBirthdayHandler(service, logger),
		connections:     connections,
	}, nil
}

func newResolver(cfg config.SecretsConfig, logger *logrus.Logger) (secrets.Resolver, error) {
	switch cfg.Provider {
	case config.SecretsProviderAWS:
		return secrets.NewSecretsManagerResolver(logger), nil
	case config.SecretsProviderEnv:
		return secrets.NewStaticResolver(*cfg.Credentials()), nil
	default:
		return nil, fmt.Errorf("unsupported secrets provider: %q", cfg.Provider)
	}
}

// HandleAPIGateway serves one API Gateway invocation inside a server span,
// then flushes metrics and spans before the sandbox freezes.
func (c *Container) HandleAPIGateway(ctx context.Context, event events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	ctx, span := c.Tracing.Tracer().Start(ctx, event.HTTPMethod+" /birthdays",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(semconv.HTTPRequestMethodKey.String(event.HTTPMethod)),
	)

	resp := c.BirthdayHandler.Handle(ctx, lambda.FromAPIGateway(event))

	span.SetAttributes(semconv.HTTPResponseStatusCode(resp.StatusCode))
	if resp.StatusCode >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}
	span.End()

	if err := c.Metrics.Flush(); err != nil {
		c.Logger.WithError(err).Warn("Failed to flush metrics")
	}
	if err := c.Tracing.ForceFlush(ctx); err != nil {
		c.Logger.WithError(err).Warn("Failed to flush spans")
	}

	return resp.ToAPIGateway()
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.Metrics != nil {
		if err := c.Metrics.Flush(); err != nil {
			c.Logger.WithError(err).Warn("Failed to flush metrics")
		}
	}

	if c.Tracing != nil {
		if err := c.Tracing.Shutdown(context.Background()); err != nil {
			c.Logger.WithError(err).Warn("Failed to shut down tracing")
		}
	}

	if c.connections != nil {
		if err := c.connections.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
