// Package events describes journal change notifications and publishes them
// to Kafka.
package events

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"journal-service/internal/journal/models"
	"journal-service/pkg/requestcontext"
)

type Action string

const (
	ActionJournalCreated Action = "journal_created"
	ActionJournalUpdated Action = "journal_updated"
)

// Event is the payload written to the journal topic. ISSNs carry the full
// post-merge list so consumers never need to read back from the store.
type Event struct {
	ID        string    `json:"id"`
	Action    Action    `json:"action"`
	JournalID string    `json:"journal_id"`
	Name      string    `json:"name,omitempty"`
	ISSNs     []string  `json:"issns"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// New builds an event for journal, stamping it with the request id and
// request clock carried by ctx.
func New(ctx context.Context, action Action, journal *models.Journal) Event {
	issns := slices.Clone(journal.ISSNs)
	if issns == nil {
		issns = []string{}
	}
	return Event{
		ID:        uuid.NewString(),
		Action:    action,
		JournalID: journal.ID.String(),
		Name:      journal.Name,
		ISSNs:     issns,
		RequestID: requestcontext.RequestID(ctx),
		Timestamp: requestcontext.Now(ctx).UTC(),
	}
}
