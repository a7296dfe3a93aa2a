// Package match normalizes field names and classifies the fields of a
// document against a reference schema.
//
// Classification runs in two passes. The exact pass resolves every reference
// field whose normalized name equals a normalized extracted field. The fuzzy
// pass then compares each unresolved reference field with the extracted
// fields that are still unclaimed, using a Levenshtein similarity ratio.
// An extracted field is claimed by at most one reference field.
package match
