package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"journal-service/internal/journal/crossref"
	"journal-service/internal/journal/events"
	"journal-service/internal/journal/handler"
	journalmetrics "journal-service/internal/journal/metrics"
	"journal-service/internal/journal/service"
	"journal-service/internal/journal/store"
	jwttoken "journal-service/internal/jwt_token"
	"journal-service/internal/platform/config"
	"journal-service/internal/platform/httpserver"
	"journal-service/internal/platform/kafka"
	"journal-service/internal/platform/logger"
	"journal-service/internal/platform/metrics"
	"journal-service/internal/platform/middleware"
	"journal-service/internal/platform/postgres"
	"journal-service/internal/platform/redis"
	"journal-service/pkg/platform/circuit"
	"journal-service/pkg/platform/httputil"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal/journal.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	journalMetrics := journalmetrics.New()
	httpMetrics := metrics.New()

	repo, closeRepo, err := openRepository(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	crossrefOpts := []crossref.ClientOption{
		crossref.WithHTTPClient(&http.Client{Timeout: cfg.Crossref.Timeout}),
		crossref.WithBaseURL(cfg.Crossref.BaseURL),
		crossref.WithMailto(cfg.Crossref.Mailto),
		crossref.WithRateLimit(cfg.Crossref.RateLimit),
		crossref.WithLogger(log),
		crossref.WithMetrics(journalMetrics),
		crossref.WithBreaker(circuit.New("crossref", circuit.WithFailureThreshold(5), circuit.WithCooldown(30*time.Second))),
	}
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		crossrefOpts = append(crossrefOpts, crossref.WithCache(crossref.NewRedisCache(redisClient.Client), cfg.Crossref.CacheTTL))
		log.Info("crossref cache enabled", "ttl", cfg.Crossref.CacheTTL)
	}

	serviceOpts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(journalMetrics),
		service.WithWorkFetcher(crossref.NewClient(crossrefOpts...)),
	}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := kafka.NewClient(cfg.Kafka.Brokers)
		if err != nil {
			return err
		}
		defer kafkaClient.Close()
		if err := kafka.EnsureTopic(ctx, kafkaClient, cfg.Kafka.JournalTopic, 3); err != nil {
			log.Warn("could not ensure journal topic", "topic", cfg.Kafka.JournalTopic, "error", err)
		}
		serviceOpts = append(serviceOpts, service.WithEventPublisher(events.NewKafkaPublisher(kafkaClient, cfg.Kafka.JournalTopic)))
		log.Info("journal events enabled", "topic", cfg.Kafka.JournalTopic)
	}

	svc, err := service.New(repo, serviceOpts...)
	if err != nil {
		return err
	}

	var validator middleware.JWTValidator
	if cfg.AuthEnabled() {
		validator = jwttoken.NewJWTServiceAdapter(jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience))
	} else {
		log.Warn("JWT_SIGNING_KEY not set; write endpoints are unauthenticated")
	}

	router := chi.NewRouter()
	router.Get("/healthz", healthz(redisClient))
	router.Handle("/metrics", metrics.Handler())
	handler.New(svc, log, httpMetrics, validator).Register(router)

	srv := httpserver.New(cfg.Server, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting journal-service", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// openRepository picks Postgres when DATABASE_URL is set and the in-memory
// store otherwise.
func openRepository(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (service.Repository, func(), error) {
	if cfg.URL == "" {
		log.Warn("DATABASE_URL not set; using in-memory journal store")
		return store.NewInMemory(), func() {}, nil
	}
	db, err := postgres.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := store.MigratePostgres(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return store.NewPostgres(db), func() { _ = db.Close() }, nil
}

func healthz(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := redisClient.Health(ctx); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "redis": "unreachable"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
