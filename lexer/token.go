package lexer

import (
	"fmt"
)

// Token represents a known sequence of characters (lexical unit)
type Token struct {
	tt      TokenType
	text    string
	escaped bool

	offset int
	line   int
	col    int
}

// NewToken creates a lexical unit
func NewToken(tt TokenType, text string, offset int, line int, col int) *Token {
	return &Token{
		tt:     tt,
		text:   text,
		offset: offset,
		line:   line,
		col:    col,
	}
}

// Type returns the type of the lexical unit
func (t Token) Type() TokenType {
	return t.tt
}

// Text returns the text of the lexical unit. For string tokens this is the
// decoded contents; for escaped atoms the backslashes are already removed.
func (t Token) Text() string {
	return t.text
}

// Offset returns the byte offset of the start of the lexical unit
func (t Token) Offset() int {
	return t.offset
}

// Pos returns the line and column of the lexical unit
func (t Token) Pos() (int, int) {
	return t.line, t.col
}

// Escaped reports whether an atom contained backslash escapes. Escaped
// atoms always classify as symbols.
func (t Token) Escaped() bool {
	return t.escaped
}

// Is returns true if the token matches the given type
func (t Token) Is(tt TokenType) bool {
	return t.tt == tt
}

func (t Token) String() string {
	return fmt.Sprintf("(:%v %q [%d %d])", t.tt, t.text, t.line, t.col)
}
