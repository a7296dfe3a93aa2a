package extract

import "errors"

var (
	// ErrMalformedInput is returned when the input is not valid JSON.
	ErrMalformedInput = errors.New("malformed JSON input")

	// ErrStructureTooDeep is returned when nesting exceeds the configured
	// maximum depth.
	ErrStructureTooDeep = errors.New("JSON structure exceeds maximum depth")

	// ErrRootNotFound is returned when the configured root selector does not
	// exist in the document.
	ErrRootNotFound = errors.New("root selector not found in document")

	// ErrInvalidMaxDepth is returned when the maximum depth is not positive.
	ErrInvalidMaxDepth = errors.New("max depth must be positive")
)
