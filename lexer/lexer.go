package lexer

import (
	"bytes"
	"io"
	"text/scanner"
	"unicode"
	"unicode/utf8"

	"github.com/jd-boyd/sexpdata"
)

type lexState func(*Lexer) lexState

// New initializes a Lexer reading from r. A nil bracket configuration
// falls back to sexpdata.DefaultBrackets. The configuration is read-only
// for the lifetime of the lexer.
func New(r io.Reader, brackets sexpdata.Brackets) *Lexer {
	if brackets == nil {
		brackets = sexpdata.DefaultBrackets()
	}

	s := &scanner.Scanner{}

	return &Lexer{
		in:       s.Init(r),
		brackets: brackets,
		tokens:   make(chan Token),
		buf:      []rune{},
		line:     1,
		col:      1,
	}
}

// Lexer represents a lexical analyzer
type Lexer struct {
	in       *scanner.Scanner
	brackets sexpdata.Brackets

	tokens  chan Token
	lastErr error

	buf     []rune
	escaped bool

	pos  int // byte offset of the next unread rune
	line int
	col  int

	startPos  int // position of the token being scanned
	startLine int
	startCol  int
}

// Tokens returns the channel that receives tokens as they are detected.
// The channel is closed when the input is exhausted or a lexical error is
// found; Scan reports the error.
func (lx *Lexer) Tokens() chan Token {
	return lx.tokens
}

// Scan tokenizes the whole input, sending tokens to the Tokens channel.
// It returns the first lexical error, if any.
func (lx *Lexer) Scan() error {
	for state := lexDefaultState; state != nil; {
		state = state(lx)
	}

	if lx.lastErr == nil {
		lx.mark()
		lx.emit(TokenEOF)
	}

	close(lx.tokens)

	return lx.lastErr
}

// mark records the position of the token about to be scanned and resets
// the scan buffer.
func (lx *Lexer) mark() {
	lx.startPos = lx.pos
	lx.startLine = lx.line
	lx.startCol = lx.col
	lx.buf = lx.buf[:0]
	lx.escaped = false
}

func (lx *Lexer) emit(tt TokenType) {
	lx.emitText(tt, string(lx.buf))
}

func (lx *Lexer) emitText(tt TokenType, text string) {
	lx.tokens <- Token{
		tt:      tt,
		text:    text,
		escaped: lx.escaped,

		offset: lx.startPos,
		line:   lx.startLine,
		col:    lx.startCol,
	}
}

func (lx *Lexer) fail(kind sexpdata.ErrorKind, offset int, format string, args ...interface{}) lexState {
	lx.lastErr = sexpdata.NewError(kind, offset, format, args...)
	return nil
}

func (lx *Lexer) peek() rune {
	return lx.in.Peek()
}

func (lx *Lexer) next() (rune, error) {
	r := lx.in.Next()
	if r == scanner.EOF {
		return rune(0), io.EOF
	}

	lx.buf = append(lx.buf, r)
	lx.pos += utf8.RuneLen(r)
	if r == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return r, nil
}

// dropLast removes the most recently read rune from the scan buffer,
// keeping position counters intact.
func (lx *Lexer) dropLast() {
	lx.buf = lx.buf[:len(lx.buf)-1]
}

func lexDefaultState(lx *Lexer) lexState {
	lx.mark()

	r, err := lx.next()
	if err != nil {
		return nil
	}

	switch {
	case isSpace(r):
		return lexDefaultState

	case r == ';':
		return lexComment

	case lx.brackets.IsOpen(r):
		return lexEmit(TokenOpen)

	case lx.brackets.IsClose(r):
		return lexEmit(TokenClose)

	case r == '"':
		return lexString

	case r == '\'':
		return lexEmit(TokenQuote)

	case r == '`':
		return lexEmit(TokenQuasiquote)

	case r == ',':
		if lx.peek() == '@' {
			if _, err := lx.next(); err != nil {
				return nil
			}
			return lexEmit(TokenUnquoteSplice)
		}
		return lexEmit(TokenUnquote)

	case r == '#':
		if lx.peek() == '\'' {
			if _, err := lx.next(); err != nil {
				return nil
			}
			return lexEmit(TokenFunctionQuote)
		}
		return lexAtom

	default:
		return lexAtom
	}
}

// lexComment discards everything up to the end of the line.
func lexComment(lx *Lexer) lexState {
	for {
		r, err := lx.next()
		if err != nil {
			return nil
		}
		if r == '\n' {
			return lexDefaultState
		}
	}
}

// lexAtom scans a bare atom. A backslash escapes the next rune, even a
// structural one, and marks the whole token as escaped so the parser never
// classifies it as a number.
func lexAtom(lx *Lexer) lexState {
	// the first rune is already buffered; it may itself be an escape
	if lx.buf[len(lx.buf)-1] == '\\' {
		if state := lx.consumeEscapedRune(); state != nil {
			return state
		}
	}

	for {
		p := lx.peek()
		if p == scanner.EOF || isBreak(p, lx.brackets) {
			break
		}

		r, err := lx.next()
		if err != nil {
			break
		}
		if r == '\\' {
			if state := lx.consumeEscapedRune(); state != nil {
				return state
			}
		}
	}

	if !lx.escaped && len(lx.buf) == 1 && lx.buf[0] == '.' {
		return lexEmit(TokenDot)
	}
	return lexEmit(TokenAtom)
}

// consumeEscapedRune replaces a just-read backslash with the rune that
// follows it. Returns a terminal state on error, nil to continue.
func (lx *Lexer) consumeEscapedRune() lexState {
	at := lx.pos - 1
	lx.dropLast()
	if _, err := lx.next(); err != nil {
		return lx.fail(sexpdata.ErrorUnexpectedEOF, at, "trailing backslash")
	}
	lx.escaped = true
	return nil
}

// lexString scans a string literal, decoding the recognized escapes and
// dropping backslash-newline line continuations.
func lexString(lx *Lexer) lexState {
	decoded := []rune{}

	for {
		at := lx.pos

		r, err := lx.next()
		if err != nil {
			return lx.fail(sexpdata.ErrorUnterminatedString, lx.startPos, "string literal is missing its closing quote")
		}

		switch r {
		case '"':
			lx.emitText(TokenString, string(decoded))
			return lexDefaultState

		case '\\':
			e, err := lx.next()
			if err != nil {
				return lx.fail(sexpdata.ErrorUnterminatedString, lx.startPos, "string literal is missing its closing quote")
			}
			switch e {
			case '\\', '"':
				decoded = append(decoded, e)
			case 'n':
				decoded = append(decoded, '\n')
			case 't':
				decoded = append(decoded, '\t')
			case '\n':
				// line continuation, contributes nothing
			default:
				return lx.fail(sexpdata.ErrorInvalidEscape, at, "unknown escape sequence %q", "\\"+string(e))
			}

		default:
			decoded = append(decoded, r)
		}
	}
}

func lexEmit(tt TokenType) lexState {
	return func(lx *Lexer) lexState {
		lx.emit(tt)
		return lexDefaultState
	}
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

// Tokenize takes a byte slice and returns all the tokens within it, or the
// first lexical error.
func Tokenize(in []byte, brackets sexpdata.Brackets) ([]Token, error) {
	tokens := []Token{}
	done := make(chan struct{})

	lx := New(bytes.NewReader(in), brackets)

	go func() {
		for tok := range lx.tokens {
			tokens = append(tokens, tok)
		}
		close(done)
	}()

	err := lx.Scan()
	<-done

	if err != nil {
		return nil, err
	}
	return tokens, nil
}
