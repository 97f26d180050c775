package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"journal-service/internal/journal/events"
	"journal-service/internal/journal/metrics"
	"journal-service/internal/journal/models"
	id "journal-service/pkg/domain"
	"journal-service/pkg/requestcontext"
)

const tracerName = "journal-service/internal/journal/service"

// Repository is the journal store. FindOneByAttribute and Read return
// sentinel.ErrNotFound when nothing matches.
type Repository interface {
	FindOneByAttribute(ctx context.Context, attr models.Attribute, value string) (id.JournalID, error)
	FindAllByAttribute(ctx context.Context, attr models.Attribute, value string) ([]id.JournalID, error)
	CreateAndRead(ctx context.Context, journal *models.Journal) (*models.Journal, error)
	Read(ctx context.Context, journalID id.JournalID) (*models.Journal, error)
	Update(ctx context.Context, journal *models.Journal) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// WorkFetcher retrieves raw Crossref work documents by DOI.
type WorkFetcher interface {
	FetchWork(ctx context.Context, doi string) ([]byte, error)
}

// Service reconciles candidate journals against the repository.
type Service struct {
	repo      Repository
	resolver  *Resolver
	fetcher   WorkFetcher
	publisher EventPublisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithEventPublisher(publisher EventPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// WithWorkFetcher enables ReconcileDOI.
func WithWorkFetcher(fetcher WorkFetcher) Option {
	return func(s *Service) {
		s.fetcher = fetcher
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New constructs a Service. The repository is required.
func New(repo Repository, opts ...Option) (*Service, error) {
	if repo == nil {
		return nil, errors.New("repository is required")
	}
	s := &Service{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	s.resolver = &Resolver{repo: repo, metrics: s.metrics, tracer: s.tracer}
	return s, nil
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	if subject := requestcontext.Subject(ctx); subject != "" {
		attributes = append(attributes, "subject", subject)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	if s.logger != nil {
		s.logger.InfoContext(ctx, event, args...)
	}
}

// publish emits a change event. Failures are logged and counted but never
// fail the reconcile that produced the change.
func (s *Service) publish(ctx context.Context, action events.Action, journal *models.Journal) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.New(ctx, action, journal)); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "failed to publish journal event",
				"action", action,
				"journal_id", journal.ID,
				"error", err,
			)
		}
		if s.metrics != nil {
			s.metrics.IncrementEventPublishError()
		}
	}
}
