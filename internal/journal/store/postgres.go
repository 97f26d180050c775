package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"journal-service/internal/journal/models"
	id "journal-service/pkg/domain"
)

//go:embed schema/postgres.sql
var postgresSchema string

// PostgresStore persists journals in PostgreSQL. Issns are a text[] column
// matched by array containment so the GIN index applies.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed journal repository.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// MigratePostgres creates the journals table and indexes if missing.
func MigratePostgres(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		return fmt.Errorf("apply journal schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindOneByAttribute(ctx context.Context, attr models.Attribute, value string) (id.JournalID, error) {
	query, err := postgresLookup(attr)
	if err != nil {
		return id.JournalID{}, err
	}
	var raw uuid.UUID
	err = s.db.QueryRowContext(ctx, query+` ORDER BY created_at, id LIMIT 1`, value).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return id.JournalID{}, ErrNotFound
		}
		return id.JournalID{}, fmt.Errorf("find journal by %s: %w", attr, err)
	}
	return id.JournalID(raw), nil
}

func (s *PostgresStore) FindAllByAttribute(ctx context.Context, attr models.Attribute, value string) ([]id.JournalID, error) {
	query, err := postgresLookup(attr)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("find journals by %s: %w", attr, err)
	}
	defer rows.Close()

	var ids []id.JournalID
	for rows.Next() {
		var raw uuid.UUID
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan journal id: %w", err)
		}
		ids = append(ids, id.JournalID(raw))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journals by %s: %w", attr, err)
	}
	return ids, nil
}

func (s *PostgresStore) CreateAndRead(ctx context.Context, journal *models.Journal) (*models.Journal, error) {
	if journal == nil {
		return nil, fmt.Errorf("journal is required")
	}
	newID := id.NewJournalID()
	query := `
		INSERT INTO journals (id, name, issns, nlmta)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query, newID.String(), journal.Name, pq.Array(issnsOrEmpty(journal.ISSNs)), journal.NLMTA)
	if err != nil {
		return nil, fmt.Errorf("create journal: %w", err)
	}
	return s.Read(ctx, newID)
}

func (s *PostgresStore) Read(ctx context.Context, journalID id.JournalID) (*models.Journal, error) {
	var (
		raw   uuid.UUID
		name  string
		issns []string
		nlmta string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, issns, nlmta FROM journals WHERE id = $1`,
		journalID.String(),
	).Scan(&raw, &name, pq.Array(&issns), &nlmta)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read journal: %w", err)
	}
	return &models.Journal{
		ID:    id.JournalID(raw),
		Name:  name,
		ISSNs: issnsOrEmpty(issns),
		NLMTA: nlmta,
	}, nil
}

// Update replaces every mutable column of the journal keyed by its id.
func (s *PostgresStore) Update(ctx context.Context, journal *models.Journal) error {
	if journal == nil {
		return fmt.Errorf("journal is required")
	}
	query := `
		UPDATE journals
		SET name = $2, issns = $3, nlmta = $4, updated_at = now()
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query, journal.ID.String(), journal.Name, pq.Array(issnsOrEmpty(journal.ISSNs)), journal.NLMTA)
	if err != nil {
		return fmt.Errorf("update journal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update journal: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func postgresLookup(attr models.Attribute) (string, error) {
	if err := validateAttribute(attr); err != nil {
		return "", err
	}
	switch attr {
	case models.AttributeName:
		return `SELECT id FROM journals WHERE name = $1`, nil
	default:
		return `SELECT id FROM journals WHERE issns @> ARRAY[$1::text]`, nil
	}
}

func issnsOrEmpty(issns []string) []string {
	if issns == nil {
		return []string{}
	}
	return issns
}
