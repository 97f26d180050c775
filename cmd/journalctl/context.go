package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"journal-service/internal/journal/crossref"
	"journal-service/internal/journal/service"
	"journal-service/internal/journal/store"
	"journal-service/internal/platform/config"
	"journal-service/internal/platform/logger"
	"journal-service/internal/platform/postgres"
)

// commandContext carries flag values and lazily opened resources shared by
// subcommands.
type commandContext struct {
	databaseURL string
	sqlitePath  string
	envFile     string
	logLevel    string

	cfg config.Config
}

func (c *commandContext) loadConfig() error {
	cfg, err := config.Load(c.envFile)
	if err != nil {
		return err
	}
	if url := strings.TrimSpace(c.databaseURL); url != "" {
		cfg.Database.URL = url
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	c.cfg = cfg
	return nil
}

func (c *commandContext) logger(w io.Writer) *slog.Logger {
	return logger.NewWithWriter(w, c.cfg.LogLevel)
}

// withRepository opens the selected store, runs fn and closes the store.
// SQLite wins when both --sqlite and a database URL are given.
func (c *commandContext) withRepository(ctx context.Context, fn func(repo service.Repository) error) error {
	switch {
	case c.sqlitePath != "":
		st, err := store.OpenSQLite(ctx, c.sqlitePath)
		if err != nil {
			return err
		}
		defer st.Close()
		return fn(st)
	case c.cfg.Database.URL != "":
		db, err := postgres.Open(ctx, c.cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := store.MigratePostgres(ctx, db); err != nil {
			return err
		}
		return fn(store.NewPostgres(db))
	default:
		return errors.New("no journal store selected: pass --sqlite or --database-url (or set DATABASE_URL)")
	}
}

func (c *commandContext) crossrefClient(log *slog.Logger) *crossref.Client {
	cr := c.cfg.Crossref
	return crossref.NewClient(
		crossref.WithHTTPClient(&http.Client{Timeout: cr.Timeout}),
		crossref.WithBaseURL(cr.BaseURL),
		crossref.WithMailto(cr.Mailto),
		crossref.WithRateLimit(cr.RateLimit),
		crossref.WithLogger(log),
	)
}

func wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
