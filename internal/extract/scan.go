package extract

// scanner walks raw JSON bytes and reports structural bytes only, skipping
// the contents of string literals.
type scanner struct {
	data     []byte
	inString bool
	escaped  bool
}

// structural reports whether data[i] is outside a string literal and not
// part of one. It must be called for every index in order.
func (s *scanner) structural(i int) bool {
	c := s.data[i]
	switch {
	case s.escaped:
		s.escaped = false
		return false
	case s.inString:
		switch c {
		case '\\':
			s.escaped = true
		case '"':
			s.inString = false
		}
		return false
	case c == '"':
		s.inString = true
		return false
	default:
		return true
	}
}

// exceedsDepth reports whether the brackets of data nest deeper than limit.
// It works on malformed input too, so a document rejected by the decoder
// for its nesting can still be classified by depth.
func exceedsDepth(data []byte, limit int) bool {
	s := scanner{data: data}
	depth := 0
	for i := range data {
		if !s.structural(i) {
			continue
		}
		switch data[i] {
		case '{', '[':
			depth++
			if depth > limit {
				return true
			}
		case '}', ']':
			if depth > 0 {
				depth--
			}
		}
	}
	return false
}

// stripTrailingCommas removes commas that directly precede a closing
// bracket, ignoring commas inside string literals.
func stripTrailingCommas(data []byte) []byte {
	out := make([]byte, 0, len(data))
	s := scanner{data: data}
	for i := range data {
		if s.structural(i) && data[i] == ',' && closesNext(data[i+1:]) {
			continue
		}
		out = append(out, data[i])
	}
	return out
}

// closesNext reports whether the first non-space byte of rest closes an
// object or array.
func closesNext(rest []byte) bool {
	for _, c := range rest {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '}', ']':
			return true
		default:
			return false
		}
	}
	return false
}
