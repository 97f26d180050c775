// Package domain holds typed identifiers shared across modules.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "journal-service/pkg/domain-errors"
)

// JournalID identifies a stored journal record. It is assigned by the
// repository at creation time and never changes afterwards.
type JournalID uuid.UUID

// NewJournalID returns a fresh random identifier.
func NewJournalID() JournalID {
	return JournalID(uuid.New())
}

func (id JournalID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether the identifier is unset.
func (id JournalID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id JournalID) MarshalText() ([]byte, error) {
	if id.IsNil() {
		return []byte{}, nil
	}
	return []byte(id.String()), nil
}

func (id *JournalID) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*id = JournalID(uuid.Nil)
		return nil
	}
	parsed, err := ParseJournalID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseJournalID validates s at a trust boundary. Empty, malformed and nil
// UUIDs are rejected with CodeInvalidInput.
func ParseJournalID(s string) (JournalID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return JournalID{}, dErrors.New(dErrors.CodeInvalidInput, "journal id is required")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return JournalID{}, dErrors.New(dErrors.CodeInvalidInput, "journal id must be a valid uuid")
	}
	if parsed == uuid.Nil {
		return JournalID{}, dErrors.New(dErrors.CodeInvalidInput, "journal id must not be nil")
	}
	return JournalID(parsed), nil
}
