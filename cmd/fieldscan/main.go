// Package main provides the entry point for the fieldscan CLI.
//
// fieldscan extracts the field paths of JSON documents and compares them
// with a reference schema, reporting matched, missing and unexpected fields
// per file and across all files.
//
// Usage:
//
//	fieldscan compare data/ --schema customers
//	fieldscan schemas list
//
// See --help for all available options.
package main

// main is the entry point for fieldscan.
func main() {
	Execute()
}
