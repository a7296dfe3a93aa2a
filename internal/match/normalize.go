package match

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/nao1215/fieldscan/internal/model"
)

// Normalizer canonicalizes field names before comparison.
//
// The steps always run in this order: Unicode NFC composition, removal of
// the special characters configured for the (schema, field) pair, trimming
// of surrounding white space and, unless case sensitive, case folding.
// Normalize is idempotent.
type Normalizer struct {
	rules         model.SpecialCharRules
	caseSensitive bool
}

// NewNormalizer creates a Normalizer. rules may be nil.
//
// When matching is case-insensitive the field names of rules are folded, so
// a rule applies whatever the case of the key it is written for.
func NewNormalizer(rules model.SpecialCharRules, caseSensitive bool) *Normalizer {
	n := &Normalizer{caseSensitive: caseSensitive}
	if len(rules) == 0 {
		return n
	}

	n.rules = make(model.SpecialCharRules, len(rules))
	for schema, fields := range rules {
		keyed := make(map[string]string, len(fields))
		for field, chars := range fields {
			key := field
			if field != model.WildcardField {
				key = n.ruleKey(norm.NFC.String(field))
			}
			keyed[key] += chars
		}
		n.rules[schema] = keyed
	}
	return n
}

// Normalize returns the canonical form of field in the context of schema.
func (n *Normalizer) Normalize(field, schema string) string {
	s := strings.TrimSpace(norm.NFC.String(field))

	// Stripping can turn the field into another name with its own rule, so
	// rules are applied until the name is stable.
	if n.rules.HasSchema(schema) {
		for {
			stripped := strings.TrimSpace(stripRunes(s, n.rules.Chars(schema, n.ruleKey(s))))
			if stripped == s {
				break
			}
			s = stripped
		}
	}

	if !n.caseSensitive {
		s = fold(s)
	}
	return s
}

// ruleKey returns the name under which the rule for field is stored.
func (n *Normalizer) ruleKey(field string) string {
	key := strings.TrimSpace(field)
	if !n.caseSensitive {
		key = fold(key)
	}
	return key
}

// fold case-folds s. A Caser keeps state, so one is created per call for
// concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}

func stripRunes(s string, chars []rune) string {
	if len(chars) == 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		for _, c := range chars {
			if r == c {
				return -1
			}
		}
		return r
	}, s)
}

// Key returns the normalized display form of path.
func (n *Normalizer) Key(path model.FieldPath, schema string) string {
	return n.Normalize(path.String(), schema)
}
