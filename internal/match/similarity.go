package match

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Similarity returns 1 - distance/maxLen for two strings, where distance is
// the Levenshtein distance in runes. Two empty strings are identical.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
}

type scoreKey struct {
	a, b string
}

// scoreCache memoizes similarity scores. Field names repeat across the
// files of a batch, so the same pairs are scored again and again.
type scoreCache struct {
	cache *lru.Cache[scoreKey, float64]
}

func newScoreCache(size int) (*scoreCache, error) {
	c, err := lru.New[scoreKey, float64](size)
	if err != nil {
		return nil, err
	}
	return &scoreCache{cache: c}, nil
}

// score returns the similarity of a and b. The pair is stored in a
// canonical order since the score is symmetric.
func (s *scoreCache) score(a, b string) float64 {
	if b < a {
		a, b = b, a
	}
	key := scoreKey{a: a, b: b}
	if v, ok := s.cache.Get(key); ok {
		return v
	}
	v := Similarity(a, b)
	s.cache.Add(key, v)
	return v
}

func (s *scoreCache) len() int {
	return s.cache.Len()
}
