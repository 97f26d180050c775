package models

import "strings"

// IssnType is the medium an ISSN was registered for.
type IssnType int

const (
	IssnTypeUnknown IssnType = iota
	IssnTypePrint
	IssnTypeElectronic
)

// PASS labels are how types are persisted on a journal's issns field. The
// electronic label is "Online" by convention of the stored vocabulary.
const (
	passLabelPrint  = "Print"
	passLabelOnline = "Online"
)

// Crossref labels are how types appear in Crossref work metadata.
const (
	crossrefLabelPrint      = "print"
	crossrefLabelElectronic = "electronic"
)

// IssnTypeFromCrossref maps a Crossref issn-type label. Anything other than
// "print" or "electronic" is IssnTypeUnknown.
func IssnTypeFromCrossref(label string) IssnType {
	switch label {
	case crossrefLabelPrint:
		return IssnTypePrint
	case crossrefLabelElectronic:
		return IssnTypeElectronic
	default:
		return IssnTypeUnknown
	}
}

// PassLabel is the stored label for t. IssnTypeUnknown has an empty label,
// which renders as ":<value>".
func (t IssnType) PassLabel() string {
	switch t {
	case IssnTypePrint:
		return passLabelPrint
	case IssnTypeElectronic:
		return passLabelOnline
	default:
		return ""
	}
}

// CrossrefLabel is the provider-side label for t.
func (t IssnType) CrossrefLabel() string {
	switch t {
	case IssnTypePrint:
		return crossrefLabelPrint
	case IssnTypeElectronic:
		return crossrefLabelElectronic
	default:
		return ""
	}
}

func (t IssnType) String() string {
	switch t {
	case IssnTypePrint:
		return "print"
	case IssnTypeElectronic:
		return "electronic"
	default:
		return "unknown"
	}
}

// TypedIssn is a (type, value) pair.
type TypedIssn struct {
	Type  IssnType
	Value string
}

// Render returns the canonical "<Type>:<value>" form stored on a journal.
func (t TypedIssn) Render() string {
	return t.Type.PassLabel() + ":" + t.Value
}

// ParseTypedIssn splits a rendered issn back into its parts. Unrecognized
// labels yield IssnTypeUnknown; ok is false when there is no separator.
func ParseTypedIssn(rendered string) (TypedIssn, bool) {
	label, value, ok := strings.Cut(rendered, ":")
	if !ok {
		return TypedIssn{}, false
	}
	var typ IssnType
	switch label {
	case passLabelPrint:
		typ = IssnTypePrint
	case passLabelOnline:
		typ = IssnTypeElectronic
	}
	return TypedIssn{Type: typ, Value: value}, true
}
