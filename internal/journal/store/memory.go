package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"journal-service/internal/journal/models"
	id "journal-service/pkg/domain"
)

// InMemory is a map-backed journal repository. Records are cloned on the
// way in and out so callers never share slices with the store.
type InMemory struct {
	mu       sync.RWMutex
	journals map[id.JournalID]*models.Journal
	order    []id.JournalID
}

func NewInMemory() *InMemory {
	return &InMemory{journals: make(map[id.JournalID]*models.Journal)}
}

func (s *InMemory) FindOneByAttribute(ctx context.Context, attr models.Attribute, value string) (id.JournalID, error) {
	ids, err := s.FindAllByAttribute(ctx, attr, value)
	if err != nil {
		return id.JournalID{}, err
	}
	if len(ids) == 0 {
		return id.JournalID{}, ErrNotFound
	}
	return ids[0], nil
}

// FindAllByAttribute returns matching ids in creation order.
func (s *InMemory) FindAllByAttribute(_ context.Context, attr models.Attribute, value string) ([]id.JournalID, error) {
	if err := validateAttribute(attr); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []id.JournalID
	for _, journalID := range s.order {
		j := s.journals[journalID]
		switch attr {
		case models.AttributeName:
			if j.Name == value {
				ids = append(ids, journalID)
			}
		case models.AttributeISSNs:
			if slices.Contains(j.ISSNs, value) {
				ids = append(ids, journalID)
			}
		}
	}
	return ids, nil
}

func (s *InMemory) CreateAndRead(_ context.Context, journal *models.Journal) (*models.Journal, error) {
	if journal == nil {
		return nil, fmt.Errorf("journal is required")
	}
	stored := journal.Clone()
	stored.ID = id.NewJournalID()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.journals[stored.ID] = stored
	s.order = append(s.order, stored.ID)
	return stored.Clone(), nil
}

func (s *InMemory) Read(_ context.Context, journalID id.JournalID) (*models.Journal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.journals[journalID]
	if !ok {
		return nil, ErrNotFound
	}
	return j.Clone(), nil
}

func (s *InMemory) Update(_ context.Context, journal *models.Journal) error {
	if journal == nil {
		return fmt.Errorf("journal is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.journals[journal.ID]; !ok {
		return ErrNotFound
	}
	s.journals[journal.ID] = journal.Clone()
	return nil
}

// Count returns the number of stored journals.
func (s *InMemory) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.journals)
}
