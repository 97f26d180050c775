package service

import (
	"context"
	"errors"

	"journal-service/internal/journal/models"
	id "journal-service/pkg/domain"
	dErrors "journal-service/pkg/domain-errors"
	"journal-service/pkg/platform/sentinel"
)

// Get reads a stored journal.
func (s *Service) Get(ctx context.Context, journalID id.JournalID) (*models.Journal, error) {
	journal, err := s.repo.Read(ctx, journalID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "journal not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load journal")
	}
	return journal, nil
}

// FindOne returns the first journal whose attr matches value exactly.
func (s *Service) FindOne(ctx context.Context, attr models.Attribute, value string) (*models.Journal, error) {
	if !attr.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "unsupported lookup attribute")
	}
	if value == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "lookup value is required")
	}
	journalID, err := s.repo.FindOneByAttribute(ctx, attr, value)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "journal not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up journal")
	}
	return s.Get(ctx, journalID)
}
