// Package model defines the core data structures shared by fieldscan.
//
// This package contains the following main types:
//   - FieldPath / FieldSet: structural field identities discovered in JSON
//   - ReferenceSchema: the expected field list a document is compared against
//   - SpecialCharRules: per-schema characters stripped before comparison
//   - MatchResult / FileComparisonResult: classification output per file
//   - FileError: a per-file failure that does not abort the batch
//   - AggregateReport: the three-tier view built from a whole run
//
// The extract, match, pipeline, aggregate and report packages all exchange
// these types, so they live in one leaf package without further imports.
//
// The types are serializable to JSON for report output and history storage.
package model
