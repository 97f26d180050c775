// Package crossref turns Crossref work metadata into candidate journal
// records and fetches that metadata from the Crossref REST API.
package crossref

import (
	"encoding/json"
	"errors"
	"fmt"

	"journal-service/internal/journal/models"
)

// ParseError reports a metadata document that lacks the nested structure a
// candidate is built from. It is a client-input failure.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("crossref metadata: %s: %v", e.Reason, e.Err)
	}
	return "crossref metadata: " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// Work is the slice of a Crossref work document the translator reads.
// Pointers distinguish absent or null members from empty ones.
type Work struct {
	Message *Message `json:"message"`
}

type Message struct {
	ContainerTitle *[]*string    `json:"container-title"`
	IssnType       *[]*IssnEntry `json:"issn-type"`
}

type IssnEntry struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Translate parses a raw Crossref work document into a candidate journal.
func Translate(document []byte) (*models.Journal, error) {
	var work Work
	if err := json.Unmarshal(document, &work); err != nil {
		return nil, &ParseError{Reason: "invalid json", Err: err}
	}
	return TranslateWork(&work)
}

// TranslateWork builds a candidate from an already decoded document.
//
// The name comes from the first container title when present and non-null.
// Each issn-type entry with a non-empty value becomes "<Label>:<value>";
// unknown types get an empty label. Entries are not deduplicated here.
func TranslateWork(work *Work) (*models.Journal, error) {
	if work == nil || work.Message == nil {
		return nil, &ParseError{Reason: "missing message object"}
	}
	msg := work.Message
	if msg.ContainerTitle == nil {
		return nil, &ParseError{Reason: "missing container-title array"}
	}
	if msg.IssnType == nil {
		return nil, &ParseError{Reason: "missing issn-type array"}
	}

	candidate := &models.Journal{ISSNs: []string{}}

	titles := *msg.ContainerTitle
	if len(titles) > 0 && titles[0] != nil {
		candidate.Name = *titles[0]
	}

	for i, entry := range *msg.IssnType {
		if entry == nil {
			return nil, &ParseError{Reason: fmt.Sprintf("issn-type[%d] is null", i)}
		}
		if entry.Value == "" {
			continue
		}
		typed := models.TypedIssn{
			Type:  models.IssnTypeFromCrossref(entry.Type),
			Value: entry.Value,
		}
		candidate.ISSNs = append(candidate.ISSNs, typed.Render())
	}

	return candidate, nil
}
