package model

import (
	"encoding/json"
	"slices"
	"testing"
)

// TestFieldPathString tests rendering and escaping of field paths.
func TestFieldPathString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		path     FieldPath
		expected string
	}{
		{"zero path", FieldPath{}, ""},
		{"single segment", NewFieldPath("ID"), "ID"},
		{"nested segments", NewFieldPath("A", "B", "C"), "A.B.C"},
		{"key containing separator", NewFieldPath("x", "a.b"), `x.a\.b`},
		{"key containing backslash", NewFieldPath(`a\b`), `a\\b`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.path.String(); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

// TestParseFieldPath tests that ParseFieldPath reverses String.
func TestParseFieldPath(t *testing.T) {
	t.Parallel()

	paths := []FieldPath{
		NewFieldPath("ID"),
		NewFieldPath("A", "B"),
		NewFieldPath("x", "a.b", "c"),
		NewFieldPath(`back\slash`, "z"),
		NewFieldPath("", "empty"),
	}

	for _, p := range paths {
		t.Run(p.String(), func(t *testing.T) {
			t.Parallel()
			got := ParseFieldPath(p.String())
			if !slices.Equal(got.segments, p.segments) {
				t.Errorf("expected segments %q, got %q", p.segments, got.segments)
			}
		})
	}

	t.Run("empty string is zero path", func(t *testing.T) {
		t.Parallel()
		if !ParseFieldPath("").IsZero() {
			t.Error("expected zero path")
		}
	})
}

// TestFieldPathAccessors tests Leaf, LeafPath and Append.
func TestFieldPathAccessors(t *testing.T) {
	t.Parallel()

	p := NewFieldPath("orders", "items", "sku")

	if p.Leaf() != "sku" {
		t.Errorf("expected leaf sku, got %q", p.Leaf())
	}
	if p.LeafPath().String() != "sku" {
		t.Errorf("expected leaf path sku, got %q", p.LeafPath().String())
	}
	if !(FieldPath{}).LeafPath().IsZero() {
		t.Error("expected leaf path of the zero path to be zero")
	}

	t.Run("append does not alias", func(t *testing.T) {
		t.Parallel()
		base := NewFieldPath("a")
		x := base.Append("x")
		y := base.Append("y")
		if x.String() != "a.x" || y.String() != "a.y" {
			t.Errorf("expected a.x and a.y, got %q and %q", x.String(), y.String())
		}
	})

	t.Run("constructor copies input", func(t *testing.T) {
		t.Parallel()
		segs := []string{"a", "b"}
		fp := NewFieldPath(segs...)
		segs[0] = "changed"
		if fp.String() != "a.b" {
			t.Errorf("expected a.b, got %q", fp.String())
		}
	})
}

// TestFieldSet tests set semantics of FieldSet.
func TestFieldSet(t *testing.T) {
	t.Parallel()

	t.Run("duplicates collapse", func(t *testing.T) {
		t.Parallel()
		var s FieldSet
		if !s.Add(NewFieldPath("A", "B")) {
			t.Error("expected first add to report true")
		}
		if s.Add(ParseFieldPath("A.B")) {
			t.Error("expected duplicate add to report false")
		}
		if s.Len() != 1 {
			t.Errorf("expected 1 path, got %d", s.Len())
		}
	})

	t.Run("zero path ignored", func(t *testing.T) {
		t.Parallel()
		var s FieldSet
		s.Add(FieldPath{})
		if s.Len() != 0 {
			t.Errorf("expected empty set, got %d", s.Len())
		}
	})

	t.Run("sorted and union", func(t *testing.T) {
		t.Parallel()
		a := NewFieldSet(NewFieldPath("b"), NewFieldPath("a"))
		b := NewFieldSet(NewFieldPath("c"), NewFieldPath("a"))
		a.Union(b)

		got := a.Strings()
		expected := []string{"a", "b", "c"}
		if len(got) != len(expected) {
			t.Fatalf("expected %v, got %v", expected, got)
		}
		for i := range expected {
			if got[i] != expected[i] {
				t.Errorf("index %d: expected %q, got %q", i, expected[i], got[i])
			}
		}
		if !a.Contains(NewFieldPath("c")) {
			t.Error("expected union to contain c")
		}
	})

	t.Run("json roundtrip keeps escaped keys", func(t *testing.T) {
		t.Parallel()
		s := NewFieldSet(NewFieldPath("x", "a.b"), NewFieldPath("y"))
		data, err := json.Marshal(s)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded FieldSet
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !decoded.Contains(NewFieldPath("x", "a.b")) {
			t.Errorf("expected decoded set to contain escaped key, got %v", decoded.Strings())
		}
	})
}
