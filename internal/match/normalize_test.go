package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nao1215/fieldscan/internal/model"
)

// TestNormalize tests the normalization pipeline.
func TestNormalize(t *testing.T) {
	t.Parallel()

	rules := model.SpecialCharRules{
		"customers": {
			"*":        "_",
			"E-MAIL#1": "-#",
		},
	}

	testCases := []struct {
		name          string
		field         string
		schema        string
		caseSensitive bool
		expected      string
	}{
		{"trailing space", "NAME ", "orders", false, "name"},
		{"case sensitive keeps case", " Name", "orders", true, "Name"},
		{"wildcard rule strips underscore", "FIRST_NAME", "customers", false, "firstname"},
		{"field rule merged with wildcard", "E-MAIL#1", "customers", false, "email1"},
		{"rules of other schema ignored", "FIRST_NAME", "orders", false, "first_name"},
		{"stripping exposes white space", "_ ID _", "customers", false, "id"},
		{"unicode folding", "STRASSE", "orders", false, "strasse"},
		{"sharp s folds", "Straße", "orders", false, "strasse"},
		{"decomposed accent composes", "Cafe\u0301", "orders", true, "Caf\u00e9"},
		{"rule key case is ignored", "e-mail#1", "customers", false, "email1"},
		{"rule key case matters when case sensitive", "e-mail#1", "customers", true, "e-mail1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			n := NewNormalizer(rules, tc.caseSensitive)
			assert.Equal(t, tc.expected, n.Normalize(tc.field, tc.schema))
		})
	}
}

// TestNormalizeIdempotent tests that normalizing twice changes nothing.
func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	rules := model.SpecialCharRules{"s": {"*": "_-. "}}
	inputs := []string{
		"  EMAIL_ADDRESS ", "a _ b", "Ünïcödé", "Straße", "x.y.z", "", "  ", "ﬁle", "MiXeD-Case",
	}

	for _, caseSensitive := range []bool{true, false} {
		n := NewNormalizer(rules, caseSensitive)
		for _, in := range inputs {
			once := n.Normalize(in, "s")
			assert.Equal(t, once, n.Normalize(once, "s"), "input %q", in)
		}
	}

	t.Run("field rule in another case", func(t *testing.T) {
		t.Parallel()

		n := NewNormalizer(model.SpecialCharRules{"s": {"email_address": "_"}}, false)
		once := n.Normalize("EMAIL_ADDRESS", "s")
		assert.Equal(t, "emailaddress", once)
		assert.Equal(t, once, n.Normalize(once, "s"))
	})

	t.Run("stripping reveals another rule", func(t *testing.T) {
		t.Parallel()

		n := NewNormalizer(model.SpecialCharRules{"s": {"A_B": "_", "AB": "-"}}, true)
		once := n.Normalize("A_B", "s")
		assert.Equal(t, "AB", once)
		assert.Equal(t, once, n.Normalize(once, "s"))

		n = NewNormalizer(model.SpecialCharRules{"s": {"A_-B": "_", "A-B": "-"}}, true)
		once = n.Normalize("A_-B", "s")
		assert.Equal(t, "AB", once)
		assert.Equal(t, once, n.Normalize(once, "s"))
	})
}

// TestNormalizeKey tests normalization of a field path.
func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(nil, false)
	assert.Equal(t, "orders.sku", n.Key(model.NewFieldPath("ORDERS", "SKU"), "any"))
}
