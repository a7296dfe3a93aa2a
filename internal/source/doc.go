// Package source expands command line arguments into the JSON files to
// compare. Files are taken as given; directories contribute their *.json
// files, recursively when requested.
package source
