package lexer

import (
	"unicode"

	"github.com/jd-boyd/sexpdata"
)

// TokenType represents all the possible types of a lexical unit
type TokenType uint8

// List of types of lexical units
const (
	TokenInvalid       TokenType = iota
	TokenOpen                    // Configured opening bracket
	TokenClose                   // Configured closing bracket
	TokenAtom                    // Bare atom, classified later by the parser
	TokenString                  // String literal, escapes already decoded
	TokenQuote                   // "'"
	TokenQuasiquote              // "`"
	TokenUnquote                 // ","
	TokenUnquoteSplice           // ",@"
	TokenFunctionQuote           // "#'"
	TokenDot                     // Lone "."
	TokenEOF                     // End of input
)

var tokenNames = map[TokenType]string{
	TokenInvalid:       "invalid",
	TokenOpen:          "open",
	TokenClose:         "close",
	TokenAtom:          "atom",
	TokenString:        "string",
	TokenQuote:         "quote",
	TokenQuasiquote:    "quasiquote",
	TokenUnquote:       "unquote",
	TokenUnquoteSplice: "unquote-splice",
	TokenFunctionQuote: "function-quote",
	TokenDot:           "dot",
	TokenEOF:           "EOF",
}

func (tt TokenType) String() string {
	if s, ok := tokenNames[tt]; ok {
		return s
	}
	return tokenNames[TokenInvalid]
}

// isBreak reports whether r terminates a bare atom. Bracket runes only
// break atoms when the active configuration knows them.
func isBreak(r rune, brackets sexpdata.Brackets) bool {
	switch r {
	case '"', ';', '\'', '`', ',':
		return true
	}
	if brackets.IsOpen(r) || brackets.IsClose(r) {
		return true
	}
	return unicode.IsSpace(r)
}
