package sexpdata

// Brackets maps an opening bracket rune to its closing rune. A Brackets
// value is supplied once when a lexer or parser is constructed and must
// not be mutated afterwards; it is safe to share a single table across
// concurrent parses on independent inputs.
type Brackets map[rune]rune

// DefaultBrackets returns the default configuration, which accepts only
// parentheses as list delimiters.
func DefaultBrackets() Brackets {
	return Brackets{'(': ')'}
}

// StandardBrackets returns the configuration with both parentheses and
// square brackets.
func StandardBrackets() Brackets {
	return Brackets{'(': ')', '[': ']'}
}

// IsOpen reports whether r is a configured opening bracket.
func (b Brackets) IsOpen(r rune) bool {
	_, ok := b[r]
	return ok
}

// IsClose reports whether r is a configured closing bracket.
func (b Brackets) IsClose(r rune) bool {
	for _, c := range b {
		if c == r {
			return true
		}
	}
	return false
}

// CloseFor returns the closing rune paired with the opening rune r.
func (b Brackets) CloseFor(r rune) (rune, bool) {
	c, ok := b[r]
	return c, ok
}
