package model

import (
	"errors"
	"strings"
)

// ErrEmptySchemaName is returned when a ReferenceSchema has no name.
var ErrEmptySchemaName = errors.New("reference schema name is empty")

// ReferenceSchema is the expected field list a document is compared against.
// Field order is display order only and does not affect matching.
type ReferenceSchema struct {
	// Name identifies the schema and selects its SpecialCharRules.
	Name string `json:"name" yaml:"name"`
	// Fields holds the reference field names in display order.
	Fields []string `json:"fields" yaml:"fields"`
}

// NewReferenceSchema creates a schema, copying fields.
func NewReferenceSchema(name string, fields []string) ReferenceSchema {
	cp := make([]string, len(fields))
	copy(cp, fields)
	return ReferenceSchema{Name: name, Fields: cp}
}

// Validate checks that the schema can be used for comparison.
// An empty field list is allowed: every extracted field is then unexpected.
func (s ReferenceSchema) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptySchemaName
	}
	return nil
}

// Len returns the number of reference fields.
func (s ReferenceSchema) Len() int {
	return len(s.Fields)
}

// WildcardField is the SpecialCharRules field that applies to every field
// of a schema.
const WildcardField = "*"

// SpecialCharRules maps a schema name and a field name to the runes that
// are removed from that field before matching.
//
// A missing entry means nothing is stripped. Rules for WildcardField apply
// to all fields of the schema and are merged with field-specific rules.
type SpecialCharRules map[string]map[string]string

// Chars returns the runes to strip for field under schema.
func (r SpecialCharRules) Chars(schema, field string) []rune {
	fields, ok := r[schema]
	if !ok {
		return nil
	}

	var out []rune
	seen := make(map[rune]struct{})
	for _, set := range []string{fields[WildcardField], fields[field]} {
		for _, c := range set {
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

// HasSchema reports whether any rule exists for schema.
func (r SpecialCharRules) HasSchema(schema string) bool {
	_, ok := r[schema]
	return ok
}
