package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestExceedsDepth tests bracket depth measurement on raw bytes.
func TestExceedsDepth(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		data  string
		limit int
		want  bool
	}{
		{"flat object", `{"a":1}`, 1, false},
		{"nested at limit", `{"a":[{"b":1}]}`, 3, false},
		{"nested past limit", `{"a":[{"b":1}]}`, 2, true},
		{"brackets in strings ignored", `{"a":"[[[{{{"}`, 1, false},
		{"escaped quote in string", `{"a":"\"[[["}`, 1, false},
		{"unterminated input", `[[[[`, 3, true},
		{"stray closers", `]]]{}`, 1, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, exceedsDepth([]byte(tc.data), tc.limit))
		})
	}
}

// TestStripTrailingCommas tests trailing comma removal.
func TestStripTrailingCommas(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		data string
		want string
	}{
		{"object", `{"a":1,}`, `{"a":1}`},
		{"array with space", "[1, 2 ,\n]", "[1, 2 \n]"},
		{"nested", `{"a":[1,],}`, `{"a":[1]}`},
		{"inside string", `{"x,}":"y,]"}`, `{"x,}":"y,]"}`},
		{"escaped quote before comma", `{"a":"\",}",}`, `{"a":"\",}"}`},
		{"separator kept", `[1,2]`, `[1,2]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, string(stripTrailingCommas([]byte(tc.data))))
		})
	}
}
