package model

import (
	"errors"
	"testing"
)

// TestReferenceSchemaValidate tests schema validation.
func TestReferenceSchemaValidate(t *testing.T) {
	t.Parallel()

	if err := NewReferenceSchema("", []string{"ID"}).Validate(); !errors.Is(err, ErrEmptySchemaName) {
		t.Errorf("expected ErrEmptySchemaName, got %v", err)
	}
	if err := NewReferenceSchema("customers", nil).Validate(); err != nil {
		t.Errorf("expected empty field list to be valid, got %v", err)
	}
}

// TestSpecialCharRulesChars tests rule lookup and wildcard merging.
func TestSpecialCharRulesChars(t *testing.T) {
	t.Parallel()

	rules := SpecialCharRules{
		"customers": {
			"*":     "_",
			"EMAIL": "@_",
		},
	}

	testCases := []struct {
		name     string
		schema   string
		field    string
		expected string
	}{
		{"wildcard only", "customers", "NAME", "_"},
		{"merged without duplicates", "customers", "EMAIL", "_@"},
		{"unknown schema", "orders", "EMAIL", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := string(rules.Chars(tc.schema, tc.field)); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}
