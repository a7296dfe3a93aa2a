// Package database provides SQLite-based storage for fieldscan.
//
// HistoryDB stores one summary row per comparison run: totals and the
// unique unmatched fields, so drift between runs of the same schema can be
// reported. SourceDB opens an existing SQLite file read-only and lists the
// columns of its tables, which serve as reference schemas.
//
// Both use modernc.org/sqlite, a CGO-free driver, so the binary stays easy
// to cross-compile.
package database
