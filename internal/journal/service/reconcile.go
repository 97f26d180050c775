package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"journal-service/internal/journal/crossref"
	"journal-service/internal/journal/events"
	"journal-service/internal/journal/models"
	dErrors "journal-service/pkg/domain-errors"
	"journal-service/pkg/platform/sentinel"
	strutil "journal-service/pkg/platform/strings"
)

// ErrIntegrity means a journal id returned by a lookup could not be read
// back. The store is inconsistent; callers must not retry.
var ErrIntegrity = errors.New("journal found by lookup could not be read")

// InsufficientDataMessage is the client-facing text for StatusInsufficientData.
const InsufficientDataMessage = "Input insufficient to specify a journal entry"

type Status string

const (
	StatusCreated          Status = "created"
	StatusUpdated          Status = "updated"
	StatusUnchanged        Status = "unchanged"
	StatusInsufficientData Status = "insufficient_data"
)

// Outcome is the result of a reconcile. Journal is nil only for
// StatusInsufficientData.
type Outcome struct {
	Status  Status
	Journal *models.Journal
}

// Resolved reports whether the outcome carries a stored journal.
func (o *Outcome) Resolved() bool {
	return o != nil && o.Journal != nil
}

// Reconcile merges candidate into the repository. An unmatched candidate is
// created when it has both a name and at least one ISSN. A matched journal
// keeps its stored values: an empty name is filled and missing ISSNs are
// appended. Nothing is written when the stored journal already covers the
// candidate, so repeating a call is a no-op.
//
// Resolve and create are separate repository calls. Two concurrent calls for
// the same unseen journal can both create it.
func (s *Service) Reconcile(ctx context.Context, candidate *models.Journal) (*Outcome, error) {
	if candidate == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "candidate journal is required")
	}
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "journal.reconcile")
	defer span.End()

	outcome, err := s.reconcile(ctx, candidate)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "reconcile failed")
		return nil, err
	}

	span.SetAttributes(attribute.String("journal.outcome", string(outcome.Status)))
	if s.metrics != nil {
		s.metrics.IncrementOutcome(string(outcome.Status))
		s.metrics.ObserveReconcile(start)
	}
	return outcome, nil
}

func (s *Service) reconcile(ctx context.Context, candidate *models.Journal) (*Outcome, error) {
	journalID, found, err := s.resolver.Resolve(ctx, candidate.Name, candidate.ISSNs)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve journal")
	}

	if !found {
		if !candidate.HasName() || len(candidate.ISSNs) == 0 {
			return &Outcome{Status: StatusInsufficientData}, nil
		}
		// Translate keeps repeated issns; a stored record never does.
		record := *candidate
		record.ISSNs = strutil.Union(nil, candidate.ISSNs)
		created, err := s.repo.CreateAndRead(ctx, &record)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create journal")
		}
		s.logAudit(ctx, string(events.ActionJournalCreated),
			"journal_id", created.ID,
			"issn_count", len(created.ISSNs))
		s.publish(ctx, events.ActionJournalCreated, created)
		return &Outcome{Status: StatusCreated, Journal: created}, nil
	}

	stored, err := s.repo.Read(ctx, journalID)
	if errors.Is(err, sentinel.ErrNotFound) || (err == nil && stored == nil) {
		return nil, dErrors.Wrap(fmt.Errorf("%w: %s", ErrIntegrity, journalID), dErrors.CodeInternal, "journal store is inconsistent")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read journal")
	}

	if !merge(stored, candidate) {
		return &Outcome{Status: StatusUnchanged, Journal: stored}, nil
	}
	if err := s.repo.Update(ctx, stored); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update journal")
	}
	s.logAudit(ctx, string(events.ActionJournalUpdated),
		"journal_id", stored.ID,
		"issn_count", len(stored.ISSNs))
	s.publish(ctx, events.ActionJournalUpdated, stored)
	return &Outcome{Status: StatusUpdated, Journal: stored}, nil
}

// merge fills gaps in stored from candidate and reports whether anything
// changed.
func merge(stored, candidate *models.Journal) bool {
	dirty := false
	if !stored.HasName() && candidate.HasName() {
		stored.Name = candidate.Name
		dirty = true
	}
	if !strutil.ContainsAll(stored.ISSNs, candidate.ISSNs) {
		stored.ISSNs = strutil.Union(stored.ISSNs, candidate.ISSNs)
		dirty = true
	}
	return dirty
}

// ReconcileDocument translates a raw Crossref work document and reconciles
// the resulting candidate. Malformed documents are CodeBadRequest.
func (s *Service) ReconcileDocument(ctx context.Context, document []byte) (*Outcome, error) {
	candidate, err := crossref.Translate(document)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid crossref document")
	}
	return s.Reconcile(ctx, candidate)
}

// ReconcileDOI fetches the work for doi from Crossref and reconciles it.
func (s *Service) ReconcileDOI(ctx context.Context, doi string) (*Outcome, error) {
	if s.fetcher == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "crossref lookups are not configured")
	}
	document, err := s.fetcher.FetchWork(ctx, doi)
	if err != nil {
		switch {
		case dErrors.HasCode(err, dErrors.CodeValidation):
			return nil, err
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "doi not found in crossref")
		case errors.Is(err, sentinel.ErrUnavailable):
			return nil, dErrors.Wrap(err, dErrors.CodeUpstream, "crossref is unavailable")
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeUpstream, "failed to fetch crossref work")
		}
	}
	return s.ReconcileDocument(ctx, document)
}
