package sexpdata

import (
	"fmt"
)

// ErrorKind classifies the fatal conditions the lexer and parser can
// report. There is no error recovery: the first error encountered stops
// the whole parse.
type ErrorKind uint8

// List of error kinds
const (
	ErrorInvalid ErrorKind = iota
	ErrorUnterminatedString
	ErrorInvalidEscape
	ErrorBracketMismatch
	ErrorMalformedDottedList
	ErrorUnexpectedEOF
	ErrorUnmatchedClose
	ErrorUnterminatedList
	ErrorNestingTooDeep
	ErrorInvalidNumericLiteral
	ErrorInvalidSymbolName
)

var errorKindNames = map[ErrorKind]string{
	ErrorInvalid:               "invalid",
	ErrorUnterminatedString:    "unterminated string",
	ErrorInvalidEscape:         "invalid escape",
	ErrorBracketMismatch:       "bracket mismatch",
	ErrorMalformedDottedList:   "malformed dotted list",
	ErrorUnexpectedEOF:         "unexpected EOF",
	ErrorUnmatchedClose:        "unmatched closing bracket",
	ErrorUnterminatedList:      "unterminated list",
	ErrorNestingTooDeep:        "nesting too deep",
	ErrorInvalidNumericLiteral: "invalid numeric literal",
	ErrorInvalidSymbolName:     "invalid symbol name",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindNames[k]; ok {
		return s
	}
	return errorKindNames[ErrorInvalid]
}

// Error is a structured parse error. Offset is the byte offset into the
// input at which the condition was detected.
type Error struct {
	Kind    ErrorKind
	Offset  int
	Message string
}

// NewError creates an error of the given kind at the given offset.
func NewError(kind ErrorKind, offset int, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Offset:  offset,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v (offset %d)", e.Kind, e.Offset)
	}
	return fmt.Sprintf("%v (offset %d): %s", e.Kind, e.Offset, e.Message)
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is can match against a bare kind template.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
