package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"birthday-tracker-api/internal/database"
	"birthday-tracker-api/internal/logging"
	"birthday-tracker-api/internal/metrics"
	"birthday-tracker-api/internal/models"
	"birthday-tracker-api/internal/repositories"
	"birthday-tracker-api/internal/secrets"
	"birthday-tracker-api/internal/tracing"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ErrMissingID is returned when an update or delete payload carries no id
var ErrMissingID = errors.New("missing id")

// MissingIDError reports which operation was missing its id
type MissingIDError struct {
	Operation string
}

// Error implements the error interface
func (e *MissingIDError) Error() string {
	return fmt.Sprintf("Missing 'id' for %s", e.Operation)
}

// Is matches ErrMissingID
func (e *MissingIDError) Is(target error) bool {
	return target == ErrMissingID
}

// BirthdayService defines the record operations behind the dispatcher
type BirthdayService interface {
	List(ctx context.Context) ([]*models.Birthday, error)
	Create(ctx context.Context, input *models.BirthdayInput) (int64, error)
	Update(ctx context.Context, input *models.BirthdayInput) error
	Delete(ctx context.Context, input *models.BirthdayInput) error
}

// SchemaBootstrapper prepares the table before a statement runs
type SchemaBootstrapper interface {
	Ensure(ctx context.Context, db *sql.DB) error
}

// BirthdayServiceConfig names the secret holding the database credentials
type BirthdayServiceConfig struct {
	SecretName string
	Region     string
}

// BirthdayServiceDeps groups the collaborators of the service
type BirthdayServiceDeps struct {
	Resolver     secrets.Resolver
	Provider     database.Provider
	Bootstrapper SchemaBootstrapper
	Repositories repositories.RepositoryFactory
	Metrics      metrics.Recorder
	Tracer       trace.Tracer
	Logger       *logrus.Logger
}

// birthdayService implements the BirthdayService interface
type birthdayService struct {
	config       BirthdayServiceConfig
	resolver     secrets.Resolver
	provider     database.Provider
	bootstrapper SchemaBootstrapper
	repos        repositories.RepositoryFactory
	metrics      metrics.Recorder
	tracer       trace.Tracer
	logger       *logrus.Logger
}

// NewBirthdayService creates a new birthday service instance
func NewBirthdayService(config BirthdayServiceConfig, deps BirthdayServiceDeps) (BirthdayService, error) {
	if deps.Resolver == nil {
		return nil, fmt.Errorf("secret resolver cannot be nil")
	}
	if deps.Provider == nil {
		return nil, fmt.Errorf("connection provider cannot be nil")
	}
	if deps.Bootstrapper == nil {
		return nil, fmt.Errorf("schema bootstrapper cannot be nil")
	}
	if deps.Repositories == nil {
		return nil, fmt.Errorf("repository factory cannot be nil")
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NopRecorder{}
	}
	if deps.Tracer == nil {
		deps.Tracer = noop.NewTracerProvider().Tracer(tracing.TracerName)
	}
	if deps.Logger == nil {
		deps.Logger = logrus.New()
	}

	return &birthdayService{
		config:       config,
		resolver:     deps.Resolver,
		provider:     deps.Provider,
		bootstrapper: deps.Bootstrapper,
		repos:        deps.Repositories,
		metrics:      deps.Metrics,
		tracer:       deps.Tracer,
		logger:       deps.Logger,
	}, nil
}

// List returns every record in id order
func (s *birthdayService) List(ctx context.Context) ([]*models.Birthday, error) {
	repo, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	ctx, span := s.startQuery(ctx, "list")
	birthdays, err := repo.List(ctx)
	tracing.End(span, err)
	if err != nil {
		return nil, s.queryFailed(ctx, "list", err)
	}

	s.metrics.Add(metrics.DBQuerySuccess, 1)
	logging.FromContext(ctx, s.logger).
		WithField("rows_returned", len(birthdays)).
		Info("DB query executed successfully")
	return birthdays, nil
}

// Create validates and stores a new record, returning its id
func (s *birthdayService) Create(ctx context.Context, input *models.BirthdayInput) (int64, error) {
	result := models.ValidateBirthdayInput(input)
	if err := result.Err(); err != nil {
		return 0, err
	}

	repo, err := s.session(ctx)
	if err != nil {
		return 0, err
	}

	birthday := result.Record()
	ctx, span := s.startQuery(ctx, "create")
	err = repo.Create(ctx, birthday)
	tracing.End(span, err)
	if err != nil {
		return 0, s.queryFailed(ctx, "create", err)
	}

	s.querySucceeded(ctx, "create", birthday.ID)
	return birthday.ID, nil
}

// Update replaces the fields of an existing record
func (s *birthdayService) Update(ctx context.Context, input *models.BirthdayInput) error {
	if input == nil || input.ID == nil {
		return &MissingIDError{Operation: "update"}
	}

	result := models.ValidateBirthdayInput(input)
	if err := result.Err(); err != nil {
		return err
	}

	repo, err := s.session(ctx)
	if err != nil {
		return err
	}

	birthday := result.Record()
	birthday.ID = *input.ID
	ctx, span := s.startQuery(ctx, "update")
	err = repo.Update(ctx, birthday)
	endQuery(span, err)
	if err != nil {
		if repositories.IsNotFound(err) {
			s.querySucceeded(ctx, "update", birthday.ID)
			return err
		}
		return s.queryFailed(ctx, "update", err)
	}

	s.querySucceeded(ctx, "update", birthday.ID)
	return nil
}

// Delete permanently removes a record
func (s *birthdayService) Delete(ctx context.Context, input *models.BirthdayInput) error {
	if input == nil || input.ID == nil {
		return &MissingIDError{Operation: "delete"}
	}

	repo, err := s.session(ctx)
	if err != nil {
		return err
	}

	id := *input.ID
	ctx, span := s.startQuery(ctx, "delete")
	err = repo.Delete(ctx, id)
	endQuery(span, err)
	if err != nil {
		if repositories.IsNotFound(err) {
			s.querySucceeded(ctx, "delete", id)
			return err
		}
		return s.queryFailed(ctx, "delete", err)
	}

	s.querySucceeded(ctx, "delete", id)
	return nil
}

// session resolves credentials, acquires the connection and bootstraps the
// table, returning a repository bound to the live handle
func (s *birthdayService) session(ctx context.Context) (repositories.BirthdayRepository, error) {
	resolveCtx, span := s.tracer.Start(ctx, "secrets.Resolve",
		trace.WithAttributes(attribute.String("secret.name", s.config.SecretName)))
	creds, err := s.resolver.Resolve(resolveCtx, s.config.SecretName, s.config.Region)
	tracing.End(span, err)
	if err != nil {
		s.metrics.Add(metrics.SecretsManagerAccessFailure, 1)
		return nil, err
	}

	acquireCtx, span := s.tracer.Start(ctx, "database.Acquire")
	db, err := s.provider.Acquire(acquireCtx, creds)
	tracing.End(span, err)
	if err != nil {
		s.metrics.Add(metrics.DBConnectionFailure, 1)
		return nil, err
	}

	ensureCtx, span := s.tracer.Start(ctx, "database.Ensure")
	err = s.bootstrapper.Ensure(ensureCtx, db)
	tracing.End(span, err)
	if err != nil {
		s.metrics.Add(metrics.DBQueryFailure, 1)
		logging.FromContext(ctx, s.logger).WithError(err).Error("Failed to prepare birthdays table")
		return nil, fmt.Errorf("bootstrap failed: %w", err)
	}

	return s.repos.BirthdayRepository(db), nil
}

// startQuery opens the span around one repository statement
func (s *birthdayService) startQuery(ctx context.Context, op string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "birthdays."+op,
		trace.WithAttributes(semconv.DBOperationName(op)))
}

// endQuery ends a statement span; a missing row is an answer, not a failure
func endQuery(span trace.Span, err error) {
	if repositories.IsNotFound(err) {
		span.SetAttributes(attribute.Bool("birthdays.not_found", true))
		err = nil
	}
	tracing.End(span, err)
}

func (s *birthdayService) querySucceeded(ctx context.Context, op string, id int64) {
	s.metrics.Add(metrics.DBQuerySuccess, 1)
	logging.FromContext(ctx, s.logger).WithFields(logrus.Fields{
		"operation": op,
		"id":        id,
	}).Info("DB query executed successfully")
}

func (s *birthdayService) queryFailed(ctx context.Context, op string, err error) error {
	s.metrics.Add(metrics.DBQueryFailure, 1)
	logging.FromContext(ctx, s.logger).WithError(err).WithField("operation", op).Error("DB query failed")
	return err
}
