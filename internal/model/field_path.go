package model

import "strings"

// PathSeparator joins the segments of a FieldPath for display.
const PathSeparator = '.'

// pathEscape escapes PathSeparator and itself inside a single segment.
const pathEscape = '\\'

// FieldPath is the structural identity of a field inside a JSON document.
// It is stored as a sequence of object keys; array indices never appear.
//
// A FieldPath is immutable: constructors copy their input and accessors
// return copies.
type FieldPath struct {
	segments []string
}

// NewFieldPath creates a FieldPath from the given key segments.
func NewFieldPath(segments ...string) FieldPath {
	if len(segments) == 0 {
		return FieldPath{}
	}
	cp := make([]string, len(segments))
	copy(cp, segments)
	return FieldPath{segments: cp}
}

// Append returns a new FieldPath with key added as the last segment.
func (p FieldPath) Append(key string) FieldPath {
	cp := make([]string, len(p.segments), len(p.segments)+1)
	copy(cp, p.segments)
	return FieldPath{segments: append(cp, key)}
}

// IsZero reports whether the path has no segments.
func (p FieldPath) IsZero() bool {
	return len(p.segments) == 0
}

// Leaf returns the last segment, or an empty string for the zero path.
func (p FieldPath) Leaf() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// LeafPath returns a single-segment path holding only the leaf key.
func (p FieldPath) LeafPath() FieldPath {
	if len(p.segments) == 0 {
		return FieldPath{}
	}
	return NewFieldPath(p.Leaf())
}

// String renders the path with PathSeparator between segments.
// A key that itself contains the separator or a backslash has those runes
// escaped with a backslash, so "a.b" under "x" renders as `x.a\.b`.
func (p FieldPath) String() string {
	switch len(p.segments) {
	case 0:
		return ""
	case 1:
		return escapeSegment(p.segments[0])
	}

	var b strings.Builder
	for i, seg := range p.segments {
		if i > 0 {
			b.WriteRune(PathSeparator)
		}
		b.WriteString(escapeSegment(seg))
	}
	return b.String()
}

// ParseFieldPath parses the String form of a FieldPath.
// Unescaped separators split segments; a trailing lone backslash is kept.
func ParseFieldPath(s string) FieldPath {
	if s == "" {
		return FieldPath{}
	}

	var (
		segments []string
		cur      strings.Builder
		escaped  bool
	)
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == pathEscape:
			escaped = true
		case r == PathSeparator:
			segments = append(segments, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if escaped {
		cur.WriteRune(pathEscape)
	}
	segments = append(segments, cur.String())
	return FieldPath{segments: segments}
}

func escapeSegment(seg string) string {
	if !strings.ContainsRune(seg, PathSeparator) && !strings.ContainsRune(seg, pathEscape) {
		return seg
	}
	var b strings.Builder
	b.Grow(len(seg) + 2)
	for _, r := range seg {
		if r == PathSeparator || r == pathEscape {
			b.WriteRune(pathEscape)
		}
		b.WriteRune(r)
	}
	return b.String()
}
