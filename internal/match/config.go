package match

import "fmt"

const (
	// DefaultSimilarityThreshold is the minimum similarity for a fuzzy match.
	DefaultSimilarityThreshold = 0.8

	// DefaultCacheSize is the number of similarity scores kept in memory.
	DefaultCacheSize = 8192
)

// Config controls matching strictness.
type Config struct {
	// CaseSensitive disables case folding.
	CaseSensitive bool
	// FuzzyMatch enables the similarity pass.
	FuzzyMatch bool
	// SimilarityThreshold is the minimum score in [0, 1] for a fuzzy match.
	SimilarityThreshold float64
}

// DefaultConfig returns case-insensitive matching with fuzzy matching at
// DefaultSimilarityThreshold.
func DefaultConfig() Config {
	return Config{
		CaseSensitive:       false,
		FuzzyMatch:          true,
		SimilarityThreshold: DefaultSimilarityThreshold,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if !(c.SimilarityThreshold >= 0 && c.SimilarityThreshold <= 1) {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, c.SimilarityThreshold)
	}
	return nil
}
