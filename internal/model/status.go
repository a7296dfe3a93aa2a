package model

import (
	"fmt"
	"strconv"
)

// MatchStatus is the classification of a single field in a file comparison.
// Every reference field and every extracted field ends up with exactly one
// status per file.
type MatchStatus int

const (
	// StatusMatched means a reference field was found in the document,
	// either exactly or through fuzzy matching.
	StatusMatched MatchStatus = iota

	// StatusMissingInTarget means a reference field has no counterpart
	// in the document.
	StatusMissingInTarget

	// StatusNotInReference means an extracted field matched no reference
	// field.
	StatusNotInReference
)

// String returns the machine-readable name used in JSON output.
func (s MatchStatus) String() string {
	switch s {
	case StatusMatched:
		return "matched"
	case StatusMissingInTarget:
		return "missing_in_target"
	case StatusNotInReference:
		return "not_in_reference"
	default:
		return "unknown"
	}
}

// Label returns the human-readable name used in reports.
func (s MatchStatus) Label() string {
	switch s {
	case StatusMatched:
		return "Matched"
	case StatusMissingInTarget:
		return "Missing in JSON"
	case StatusNotInReference:
		return "Not found under annexure"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the status as its String form.
func (s MatchStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status from its String form.
func (s *MatchStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "matched":
		*s = StatusMatched
	case "missing_in_target":
		*s = StatusMissingInTarget
	case "not_in_reference":
		*s = StatusNotInReference
	default:
		return fmt.Errorf("unknown match status %q", text)
	}
	return nil
}

// MatchKind tells how a Matched result was obtained.
type MatchKind int

const (
	// KindNone is used for results that are not matches.
	KindNone MatchKind = iota
	// KindExact means the normalized names were identical.
	KindExact
	// KindFuzzy means the names were similar above the threshold.
	KindFuzzy
)

// String returns the name of the kind.
func (k MatchKind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindFuzzy:
		return "fuzzy"
	default:
		return "not_found"
	}
}

// MarshalText encodes the kind as its String form.
func (k MatchKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind from its String form.
func (k *MatchKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "exact":
		*k = KindExact
	case "fuzzy":
		*k = KindFuzzy
	case "not_found", "":
		*k = KindNone
	default:
		return fmt.Errorf("unknown match kind %q", text)
	}
	return nil
}

// MatchResult is the classification of one field in one file.
type MatchResult struct {
	Status MatchStatus `json:"status"`
	Kind   MatchKind   `json:"kind"`
	// ReferenceField is set for Matched and MissingInTarget results.
	ReferenceField string `json:"reference_field,omitempty"`
	// ExtractedField is set for Matched and NotInReference results.
	ExtractedField string `json:"extracted_field,omitempty"`
	// Score is 1 for exact matches, the similarity for fuzzy matches and
	// 0 otherwise.
	Score float64 `json:"score"`
}

// Field returns the name the result is reported under: the reference
// field when there is one, otherwise the extracted field.
func (r MatchResult) Field() string {
	if r.ReferenceField != "" {
		return r.ReferenceField
	}
	return r.ExtractedField
}

// Describe returns a short description of how the field matched,
// such as "exact" or "fuzzy (0.92)".
func (r MatchResult) Describe() string {
	if r.Kind == KindFuzzy {
		return "fuzzy (" + strconv.FormatFloat(r.Score, 'f', 2, 64) + ")"
	}
	return r.Kind.String()
}
