// Package config provides configuration structures and utilities for fieldscan.
// It defines the matching options, batch settings and report preferences,
// and loads the .fieldscan file that holds reference schemas, special
// character rules and schema databases.
package config
