package store

import (
	"fmt"

	"journal-service/internal/journal/models"
	"journal-service/pkg/platform/sentinel"
)

// ErrNotFound is returned when a journal id or attribute lookup has no match.
var ErrNotFound = sentinel.ErrNotFound

func validateAttribute(attr models.Attribute) error {
	if !attr.IsValid() {
		return fmt.Errorf("unsupported journal attribute %q", attr)
	}
	return nil
}
