package match

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/nao1215/fieldscan/internal/model"
)

// Matcher classifies extracted fields against a reference schema.
// A Matcher is safe for concurrent use; its score cache is shared by all
// callers.
type Matcher struct {
	cfg        Config
	normalizer *Normalizer
	scores     *scoreCache
	logger     *slog.Logger
}

// Option configures a Matcher.
type Option func(*matcherOptions)

type matcherOptions struct {
	rules  model.SpecialCharRules
	logger *slog.Logger
}

// WithSpecialChars sets the characters stripped per schema and field.
func WithSpecialChars(rules model.SpecialCharRules) Option {
	return func(o *matcherOptions) {
		o.rules = rules
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *matcherOptions) {
		o.logger = logger
	}
}

// New creates a Matcher after validating cfg.
func New(cfg Config, opts ...Option) (*Matcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := matcherOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	scores, err := newScoreCache(DefaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create score cache: %w", err)
	}

	return &Matcher{
		cfg:        cfg,
		normalizer: NewNormalizer(o.rules, cfg.CaseSensitive),
		scores:     scores,
		logger:     o.logger,
	}, nil
}

// candidate is an extracted field prepared for matching.
type candidate struct {
	name    string
	key     string
	runes   int
	claimed bool
}

// Classify compares the extracted fields of one document with reference.
//
// The returned slice holds one result per reference field in reference
// order, followed by one NotInReference result per unclaimed extracted
// field in lexicographic order. Every reference field and every extracted
// field therefore appears exactly once.
func (m *Matcher) Classify(reference model.ReferenceSchema, fields model.FieldSet) []model.MatchResult {
	paths := fields.Sorted()
	cands := make([]*candidate, len(paths))
	byKey := make(map[string][]*candidate, len(paths))
	for i, p := range paths {
		key := m.normalizer.Key(p, reference.Name)
		c := &candidate{name: p.String(), key: key, runes: utf8.RuneCountInString(key)}
		cands[i] = c
		byKey[key] = append(byKey[key], c)
	}

	results := make([]model.MatchResult, len(reference.Fields), len(reference.Fields)+len(cands))
	refKeys := make([]string, len(reference.Fields))
	resolved := make([]bool, len(reference.Fields))

	// Exact pass first so a fuzzy match never takes the exact partner of
	// a later reference field.
	for i, field := range reference.Fields {
		refKeys[i] = m.normalizer.Normalize(field, reference.Name)
		for _, c := range byKey[refKeys[i]] {
			if c.claimed {
				continue
			}
			c.claimed = true
			resolved[i] = true
			results[i] = model.MatchResult{
				Status:         model.StatusMatched,
				Kind:           model.KindExact,
				ReferenceField: field,
				ExtractedField: c.name,
				Score:          1.0,
			}
			break
		}
	}

	for i, field := range reference.Fields {
		if resolved[i] {
			continue
		}
		if m.cfg.FuzzyMatch {
			if c, score := m.bestFuzzy(refKeys[i], cands); c != nil {
				c.claimed = true
				results[i] = model.MatchResult{
					Status:         model.StatusMatched,
					Kind:           model.KindFuzzy,
					ReferenceField: field,
					ExtractedField: c.name,
					Score:          score,
				}
				m.logger.Debug("fuzzy match",
					slog.String("schema", reference.Name),
					slog.String("reference", field),
					slog.String("extracted", c.name),
					slog.Float64("score", score))
				continue
			}
		}
		results[i] = model.MatchResult{
			Status:         model.StatusMissingInTarget,
			ReferenceField: field,
		}
	}

	for _, c := range cands {
		if c.claimed {
			continue
		}
		results = append(results, model.MatchResult{
			Status:         model.StatusNotInReference,
			ExtractedField: c.name,
		})
	}
	return results
}

// bestFuzzy returns the unclaimed candidate most similar to ref, or nil
// when none reaches the threshold. Equal scores prefer the smaller length
// difference to ref, then the lexicographically smaller normalized name.
func (m *Matcher) bestFuzzy(ref string, cands []*candidate) (*candidate, float64) {
	refRunes := utf8.RuneCountInString(ref)

	var (
		best      *candidate
		bestScore float64
	)
	for _, c := range cands {
		if c.claimed {
			continue
		}
		score := m.scores.score(ref, c.key)
		if score < m.cfg.SimilarityThreshold {
			continue
		}
		if best == nil || better(score, c, bestScore, best, refRunes) {
			best, bestScore = c, score
		}
	}
	return best, bestScore
}

func better(score float64, c *candidate, bestScore float64, best *candidate, refRunes int) bool {
	if score != bestScore {
		return score > bestScore
	}
	d, bd := absInt(c.runes-refRunes), absInt(best.runes-refRunes)
	if d != bd {
		return d < bd
	}
	return c.key < best.key
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
