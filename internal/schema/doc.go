// Package schema resolves reference schemas by name.
//
// A Registry holds the schemas of the configuration file and is never
// modified after construction. A TableSource reads the columns of a SQLite
// table instead. Both implement Source, so the compare command does not
// care where its reference fields come from.
package schema
