package match

import "errors"

// ErrInvalidThreshold is returned when the similarity threshold is outside
// [0, 1] or not a number.
var ErrInvalidThreshold = errors.New("similarity threshold must be between 0 and 1")
