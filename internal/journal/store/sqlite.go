package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"journal-service/internal/journal/models"
	id "journal-service/pkg/domain"
)

//go:embed schema/sqlite.sql
var sqliteSchema string

// sqliteTimeLayout is fixed width so text order on created_at is time order.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore persists journals in a local SQLite file. Issns are stored as a
// JSON array and matched through json_each.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply journal schema: %w", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) timestamp() string {
	return s.now().UTC().Format(sqliteTimeLayout)
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) FindOneByAttribute(ctx context.Context, attr models.Attribute, value string) (id.JournalID, error) {
	query, err := sqliteLookup(attr)
	if err != nil {
		return id.JournalID{}, err
	}
	var raw string
	err = s.db.QueryRowContext(ctx, query+` ORDER BY j.created_at, j.id LIMIT 1`, value).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return id.JournalID{}, ErrNotFound
		}
		return id.JournalID{}, fmt.Errorf("find journal by %s: %w", attr, err)
	}
	return id.ParseJournalID(raw)
}

func (s *SQLiteStore) FindAllByAttribute(ctx context.Context, attr models.Attribute, value string) ([]id.JournalID, error) {
	query, err := sqliteLookup(attr)
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
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan journal id: %w", err)
		}
		journalID, err := id.ParseJournalID(raw)
		if err != nil {
			return nil, fmt.Errorf("stored journal id %q: %w", raw, err)
		}
		ids = append(ids, journalID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journals by %s: %w", attr, err)
	}
	return ids, nil
}

func (s *SQLiteStore) CreateAndRead(ctx context.Context, journal *models.Journal) (*models.Journal, error) {
	if journal == nil {
		return nil, fmt.Errorf("journal is required")
	}
	issns, err := json.Marshal(issnsOrEmpty(journal.ISSNs))
	if err != nil {
		return nil, fmt.Errorf("encode issns: %w", err)
	}
	newID := id.NewJournalID()
	now := s.timestamp()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO journals (id, name, issns, nlmta, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		newID.String(), journal.Name, string(issns), journal.NLMTA, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("create journal: %w", err)
	}
	return s.Read(ctx, newID)
}

func (s *SQLiteStore) Read(ctx context.Context, journalID id.JournalID) (*models.Journal, error) {
	var name, rawISSNs, nlmta string
	err := s.db.QueryRowContext(ctx,
		`SELECT name, issns, nlmta FROM journals WHERE id = ?`,
		journalID.String(),
	).Scan(&name, &rawISSNs, &nlmta)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read journal: %w", err)
	}
	var issns []string
	if err := json.Unmarshal([]byte(rawISSNs), &issns); err != nil {
		return nil, fmt.Errorf("decode issns for journal %s: %w", journalID, err)
	}
	return &models.Journal{
		ID:    journalID,
		Name:  name,
		ISSNs: issnsOrEmpty(issns),
		NLMTA: nlmta,
	}, nil
}

func (s *SQLiteStore) Update(ctx context.Context, journal *models.Journal) error {
	if journal == nil {
		return fmt.Errorf("journal is required")
	}
	issns, err := json.Marshal(issnsOrEmpty(journal.ISSNs))
	if err != nil {
		return fmt.Errorf("encode issns: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE journals SET name = ?, issns = ?, nlmta = ?, updated_at = ? WHERE id = ?`,
		journal.Name, string(issns), journal.NLMTA, s.timestamp(), journal.ID.String(),
	)
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

func sqliteLookup(attr models.Attribute) (string, error) {
	if err := validateAttribute(attr); err != nil {
		return "", err
	}
	switch attr {
	case models.AttributeName:
		return `SELECT j.id FROM journals j WHERE j.name = ?`, nil
	default:
		return `SELECT j.id FROM journals j WHERE EXISTS (SELECT 1 FROM json_each(j.issns) WHERE json_each.value = ?)`, nil
	}
}
