package database

import (
	"sort"

	"github.com/nao1215/fieldscan/internal/model"
)

// Drift describes how the unique unmatched fields changed between two runs.
type Drift struct {
	Previous *RunRecord `json:"previous"`
	Current  *RunRecord `json:"current"`

	// NewMissing are reference fields missing now but not before.
	NewMissing []string `json:"new_missing_in_target"`
	// ResolvedMissing are reference fields missing before but not now.
	ResolvedMissing []string `json:"resolved_missing_in_target"`
	// NewExtra are unexpected fields seen now but not before.
	NewExtra []string `json:"new_not_in_reference"`
	// ResolvedExtra are unexpected fields seen before but not now.
	ResolvedExtra []string `json:"resolved_not_in_reference"`
}

// NewDrift compares previous with current.
func NewDrift(previous, current *RunRecord) *Drift {
	return &Drift{
		Previous:        previous,
		Current:         current,
		NewMissing:      difference(current.UniqueMissing, previous.UniqueMissing),
		ResolvedMissing: difference(previous.UniqueMissing, current.UniqueMissing),
		NewExtra:        difference(current.UniqueExtra, previous.UniqueExtra),
		ResolvedExtra:   difference(previous.UniqueExtra, current.UniqueExtra),
	}
}

// IsEmpty reports whether nothing changed.
func (d *Drift) IsEmpty() bool {
	return len(d.NewMissing) == 0 && len(d.ResolvedMissing) == 0 &&
		len(d.NewExtra) == 0 && len(d.ResolvedExtra) == 0
}

// difference returns the fields in a that are not in b, sorted.
func difference(a, b []model.FieldOccurrence) []string {
	seen := make(map[string]struct{}, len(b))
	for _, f := range model.FieldNames(b) {
		seen[f] = struct{}{}
	}
	var out []string
	for _, f := range model.FieldNames(a) {
		if _, ok := seen[f]; !ok {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}
