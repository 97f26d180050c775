package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal-service/internal/journal/models"
	id "journal-service/pkg/domain"
	"journal-service/pkg/requestcontext"
)

func TestNew(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), fixed)
	ctx = requestcontext.WithRequestID(ctx, "req-42")

	journal := &models.Journal{
		ID:    id.NewJournalID(),
		Name:  "Fancy Journal",
		ISSNs: []string{"Print:0000-0001"},
	}
	event := New(ctx, ActionJournalCreated, journal)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, ActionJournalCreated, event.Action)
	assert.Equal(t, journal.ID.String(), event.JournalID)
	assert.Equal(t, "req-42", event.RequestID)
	assert.Equal(t, fixed, event.Timestamp)

	journal.ISSNs[0] = "mutated"
	assert.Equal(t, []string{"Print:0000-0001"}, event.ISSNs)
}

func TestEventJSON(t *testing.T) {
	event := New(context.Background(), ActionJournalUpdated, &models.Journal{ID: id.NewJournalID()})

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "journal_updated", decoded["action"])
	assert.Equal(t, []any{}, decoded["issns"])
	assert.NotContains(t, decoded, "name")
	assert.NotContains(t, decoded, "request_id")
}
