package service

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"journal-service/internal/journal/metrics"
	"journal-service/internal/journal/models"
	id "journal-service/pkg/domain"
)

// Resolver picks the stored journal that best matches a name and a set of
// rendered ISSNs. Each lookup (the name, then every ISSN) is an independent
// signal; a journal scores one point per lookup it appears in.
type Resolver struct {
	repo    Repository
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo, tracer: otel.Tracer(tracerName)}
}

// Match is a scored candidate.
type Match struct {
	ID    id.JournalID
	Score int
}

// Resolve returns the best match. found is false when no lookup matched
// anything. Ties on score go to the lexicographically smallest id.
func (r *Resolver) Resolve(ctx context.Context, name string, issns []string) (id.JournalID, bool, error) {
	matches, err := r.Rank(ctx, name, issns)
	if err != nil {
		return id.JournalID{}, false, err
	}
	if len(matches) == 0 {
		return id.JournalID{}, false, nil
	}
	return matches[0].ID, true, nil
}

// Rank scores every journal observed by any lookup and returns them highest
// score first.
func (r *Resolver) Rank(ctx context.Context, name string, issns []string) ([]Match, error) {
	ctx, span := r.tracer.Start(ctx, "journal.resolve")
	defer span.End()

	scores := make(map[id.JournalID]int)

	if name != "" {
		ids, err := r.repo.FindAllByAttribute(ctx, models.AttributeName, name)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("find journals by name: %w", err)
		}
		tally(scores, ids)
	}
	for _, issn := range issns {
		ids, err := r.repo.FindAllByAttribute(ctx, models.AttributeISSNs, issn)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("find journals by issn %q: %w", issn, err)
		}
		tally(scores, ids)
	}

	span.SetAttributes(attribute.Int("journal.resolve.candidates", len(scores)))
	if r.metrics != nil {
		r.metrics.ObserveResolveCandidates(len(scores))
	}
	return rank(scores), nil
}

// tally adds one point to every distinct id in a single result set.
func tally(scores map[id.JournalID]int, ids []id.JournalID) {
	seen := make(map[id.JournalID]struct{}, len(ids))
	for _, journalID := range ids {
		if _, dup := seen[journalID]; dup {
			continue
		}
		seen[journalID] = struct{}{}
		scores[journalID]++
	}
}

func rank(scores map[id.JournalID]int) []Match {
	matches := make([]Match, 0, len(scores))
	for journalID, score := range scores {
		matches = append(matches, Match{ID: journalID, Score: score})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID.String() < matches[j].ID.String()
	})
	return matches
}
