package models

import (
	"slices"

	id "journal-service/pkg/domain"
)

// Journal is the canonical journal entity.
//
// Invariants for stored records:
//   - ID is assigned by the repository on creation and never changes
//   - ISSNs holds rendered "<Type>:<value>" strings with no duplicates
//   - Reconciliation only ever adds: a populated Name or an existing ISSN
//     entry is never removed or overwritten
//
// NLMTA is opaque here; it is stored and returned but never matched on.
type Journal struct {
	ID    id.JournalID `json:"id"`
	Name  string       `json:"name,omitempty"`
	ISSNs []string     `json:"issns"`
	NLMTA string       `json:"nlmta,omitempty"`
}

// Clone returns a deep copy so callers cannot alias a store's slices.
func (j *Journal) Clone() *Journal {
	if j == nil {
		return nil
	}
	c := *j
	c.ISSNs = slices.Clone(j.ISSNs)
	if c.ISSNs == nil {
		c.ISSNs = []string{}
	}
	return &c
}

// HasName reports whether a display name is populated.
func (j *Journal) HasName() bool {
	return j.Name != ""
}

// Attribute names an indexed journal field usable for repository lookups.
type Attribute string

const (
	AttributeName  Attribute = "name"
	AttributeISSNs Attribute = "issns"
)

// IsValid reports whether the attribute is one the repositories index.
func (a Attribute) IsValid() bool {
	return a == AttributeName || a == AttributeISSNs
}
