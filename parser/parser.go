// Package parser builds S-expression value trees from text by recursive
// descent over the lexer's token stream, one token of lookahead.
package parser

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jd-boyd/sexpdata"
	"github.com/jd-boyd/sexpdata/lexer"
)

// ErrEndOfInput signals that no more top-level values remain in the input.
var ErrEndOfInput = errors.New("end of input")

// DefaultMaxDepth bounds list and quote nesting unless overridden through
// Options.
const DefaultMaxDepth = 512

var tokenEOF = lexer.NewToken(lexer.TokenEOF, "", 0, 0, 0)

// Options configures a Parser. The bracket table is read-only once parsing
// starts.
type Options struct {
	// Brackets maps opening to closing list delimiters. Defaults to
	// sexpdata.DefaultBrackets (parentheses only).
	Brackets sexpdata.Brackets

	// MaxDepth is the maximum list/quote nesting depth before parsing
	// fails with ErrorNestingTooDeep. Defaults to DefaultMaxDepth.
	MaxDepth int
}

// Parser reads top-level values one at a time from a stream.
type Parser struct {
	r    io.Reader
	opts Options

	lx      *lexer.Lexer
	errCh   chan error
	started bool

	finished bool
	lexErr   error

	lastTok *lexer.Token
	nextTok *lexer.Token
}

// New creates a parser reading from r with default options.
func New(r io.Reader) *Parser {
	return &Parser{
		r: r,
		opts: Options{
			Brackets: sexpdata.DefaultBrackets(),
			MaxDepth: DefaultMaxDepth,
		},
	}
}

// SetOptions replaces the parser options. It must be called before the
// first Parse call.
func (p *Parser) SetOptions(opts Options) {
	if opts.Brackets == nil {
		opts.Brackets = sexpdata.DefaultBrackets()
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	p.opts = opts
}

func (p *Parser) start() {
	if p.started {
		return
	}
	p.started = true

	p.lx = lexer.New(p.r, p.opts.Brackets)
	p.errCh = make(chan error, 1)

	go func() {
		p.errCh <- p.lx.Scan()
	}()
}

func (p *Parser) read() *lexer.Token {
	tok, ok := <-p.lx.Tokens()
	if ok {
		return &tok
	}
	return tokenEOF
}

func (p *Parser) peek() *lexer.Token {
	if p.nextTok != nil {
		return p.nextTok
	}

	p.nextTok = p.read()
	return p.nextTok
}

func (p *Parser) next() *lexer.Token {
	if p.nextTok != nil {
		tok := p.nextTok
		p.lastTok, p.nextTok = tok, nil
		return tok
	}

	tok := p.read()
	p.lastTok, p.nextTok = tok, nil
	return tok
}

// finish collects the lexer's verdict once its token stream is exhausted.
// A lexical error always takes precedence over whatever the parser was
// about to report at EOF.
func (p *Parser) finish() error {
	if !p.finished {
		p.finished = true
		p.lexErr = <-p.errCh
	}
	return p.lexErr
}

// abort drains the token stream after a parser-side error so the lexer
// goroutine can run to completion.
func (p *Parser) abort() {
	if !p.started || p.finished {
		return
	}
	for range p.lx.Tokens() {
	}
	_ = p.finish()
}

// Parse returns the next top-level value, or ErrEndOfInput when the stream
// is exhausted. The first error encountered is final: no resynchronization
// is attempted and later calls keep failing.
func (p *Parser) Parse() (*sexpdata.Value, error) {
	p.start()

	tok := p.next()
	if tok.Is(lexer.TokenEOF) {
		if err := p.finish(); err != nil {
			return nil, err
		}
		return nil, ErrEndOfInput
	}

	v, err := p.parseValue(tok, 0)
	if err != nil {
		p.abort()
		return nil, err
	}
	return v, nil
}

// ParseAll parses top-level values until the input is exhausted. On error
// it returns the values completed before the failure alongside the error.
func (p *Parser) ParseAll() ([]*sexpdata.Value, error) {
	values := []*sexpdata.Value{}
	for {
		v, err := p.Parse()
		if errors.Is(err, ErrEndOfInput) {
			return values, nil
		}
		if err != nil {
			return values, err
		}
		values = append(values, v)
	}
}

func (p *Parser) parseValue(tok *lexer.Token, depth int) (*sexpdata.Value, error) {
	switch tok.Type() {
	case lexer.TokenOpen:
		return p.parseList(tok, depth)

	case lexer.TokenClose:
		return nil, sexpdata.NewError(sexpdata.ErrorUnmatchedClose, tok.Offset(), "unexpected closing bracket %q", tok.Text())

	case lexer.TokenAtom:
		return parseAtom(tok)

	case lexer.TokenString:
		return sexpdata.NewString(tok.Text()), nil

	case lexer.TokenQuote, lexer.TokenQuasiquote, lexer.TokenUnquote, lexer.TokenUnquoteSplice, lexer.TokenFunctionQuote:
		return p.parseQuoted(tok, depth)

	case lexer.TokenDot:
		return nil, sexpdata.NewError(sexpdata.ErrorMalformedDottedList, tok.Offset(), "dot outside a list")
	}

	return nil, sexpdata.NewError(sexpdata.ErrorInvalid, tok.Offset(), "unexpected token %v", tok)
}

var quoteKinds = map[lexer.TokenType]sexpdata.QuoteKind{
	lexer.TokenQuote:         sexpdata.Quote,
	lexer.TokenQuasiquote:    sexpdata.Quasiquote,
	lexer.TokenUnquote:       sexpdata.Unquote,
	lexer.TokenUnquoteSplice: sexpdata.UnquoteSplice,
	lexer.TokenFunctionQuote: sexpdata.FunctionQuote,
}

func (p *Parser) parseQuoted(mark *lexer.Token, depth int) (*sexpdata.Value, error) {
	if depth >= p.opts.MaxDepth {
		return nil, sexpdata.NewError(sexpdata.ErrorNestingTooDeep, mark.Offset(), "nesting exceeds the configured maximum of %d", p.opts.MaxDepth)
	}

	tok := p.next()
	if tok.Is(lexer.TokenEOF) {
		if err := p.finish(); err != nil {
			return nil, err
		}
		return nil, sexpdata.NewError(sexpdata.ErrorUnexpectedEOF, mark.Offset(), "%v mark is missing its value", mark.Type())
	}

	inner, err := p.parseValue(tok, depth+1)
	if err != nil {
		return nil, err
	}
	return sexpdata.NewQuoted(quoteKinds[mark.Type()], inner), nil
}

func (p *Parser) parseList(openTok *lexer.Token, depth int) (*sexpdata.Value, error) {
	if depth >= p.opts.MaxDepth {
		return nil, sexpdata.NewError(sexpdata.ErrorNestingTooDeep, openTok.Offset(), "nesting exceeds the configured maximum of %d", p.opts.MaxDepth)
	}

	open, _ := utf8.DecodeRuneInString(openTok.Text())
	want, _ := p.opts.Brackets.CloseFor(open)

	elems := []*sexpdata.Value{}
	var tail *sexpdata.Value
	sawDot := false

	for {
		tok := p.next()

		switch tok.Type() {
		case lexer.TokenEOF:
			if err := p.finish(); err != nil {
				return nil, err
			}
			return nil, sexpdata.NewError(sexpdata.ErrorUnterminatedList, openTok.Offset(), "list is missing its closing %q", string(want))

		case lexer.TokenClose:
			got, _ := utf8.DecodeRuneInString(tok.Text())
			if got != want {
				return nil, sexpdata.NewError(sexpdata.ErrorBracketMismatch, tok.Offset(), "expected %q to close %q, got %q", string(want), string(open), string(got))
			}
			if sawDot && tail == nil {
				return nil, sexpdata.NewError(sexpdata.ErrorMalformedDottedList, tok.Offset(), "dot without a tail value")
			}
			if tail != nil {
				return sexpdata.NewDelimitedDottedList(open, want, elems, tail), nil
			}
			return sexpdata.NewDelimitedList(open, want, elems...), nil

		case lexer.TokenDot:
			if len(elems) == 0 || sawDot {
				return nil, sexpdata.NewError(sexpdata.ErrorMalformedDottedList, tok.Offset(), "unexpected dot")
			}
			sawDot = true

		default:
			v, err := p.parseValue(tok, depth+1)
			if err != nil {
				return nil, err
			}
			if sawDot {
				if tail != nil {
					return nil, sexpdata.NewError(sexpdata.ErrorMalformedDottedList, tok.Offset(), "value after the dotted tail")
				}
				tail = v
				continue
			}
			elems = append(elems, v)
		}
	}
}

// parseAtom classifies a bare atom into a number or a symbol. Atoms that
// contained backslash escapes are always symbols.
func parseAtom(tok *lexer.Token) (*sexpdata.Value, error) {
	text := tok.Text()

	if tok.Escaped() || !sexpdata.IsNumeric(text) {
		v, err := sexpdata.NewSymbol(text)
		if err != nil {
			return nil, sexpdata.NewError(sexpdata.ErrorInvalidSymbolName, tok.Offset(), "%v", err)
		}
		return v, nil
	}

	if !strings.ContainsAny(text, ".eE") {
		i, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			return sexpdata.NewInt(i), nil
		}
		// out of int64 range, degrade to the float path
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, sexpdata.NewError(sexpdata.ErrorInvalidNumericLiteral, tok.Offset(), "cannot parse %q as a number", text)
	}
	return sexpdata.NewFloat(f), nil
}

// Parse reads the first top-level value in the input; trailing input is
// ignored. Use ParseAll to consume everything.
func Parse(in []byte) (*sexpdata.Value, error) {
	p := New(bytes.NewReader(in))

	v, err := p.Parse()
	if err != nil {
		return nil, err
	}
	p.abort()

	return v, nil
}

// ParseAll reads every top-level value in the input.
func ParseAll(in []byte) ([]*sexpdata.Value, error) {
	p := New(bytes.NewReader(in))
	return p.ParseAll()
}
