package sexpdata

// Kind represents the type of a value
type Kind uint16

// Value kinds, grouped by category
const (
	kindAtom   Kind = 1 << 7
	kindVector Kind = 1 << 8
	kindForm   Kind = 1 << 9

	KindInt    = kindAtom | 1
	KindFloat  = kindAtom | 2
	KindSymbol = kindAtom | 4
	KindString = kindAtom | 8

	KindList = kindVector | 1

	KindQuoted = kindForm | 1
)

var kindNames = map[Kind]string{
	KindInt:    "int",
	KindFloat:  "float",
	KindSymbol: "symbol",
	KindString: "string",
	KindList:   "list",
	KindQuoted: "quoted",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return ""
}

// QuoteKind identifies the quoting shorthand a quote form was read with.
type QuoteKind uint8

// List of quoting shorthands
const (
	QuoteNone QuoteKind = iota
	Quote
	Quasiquote
	Unquote
	UnquoteSplice
	FunctionQuote
)

var quotePrefixes = map[QuoteKind]string{
	Quote:         "'",
	Quasiquote:    "`",
	Unquote:       ",",
	UnquoteSplice: ",@",
	FunctionQuote: "#'",
}

// Prefix returns the textual shorthand for the quote kind.
func (q QuoteKind) Prefix() string {
	return quotePrefixes[q]
}

// Value is one node of an S-expression tree. Values are immutable after
// construction; the parser builds them and the encoder never mutates them.
type Value struct {
	kind Kind

	text string // symbol name or string contents
	i    int64
	f    float64

	list  []*Value
	tail  *Value // dotted list tail, nil for a proper list
	open  rune   // bracket pair the list was read with
	close rune

	quote QuoteKind
	inner *Value
}

// NewSymbol creates a symbol value. Empty names are rejected.
func NewSymbol(name string) (*Value, error) {
	if name == "" {
		return nil, NewError(ErrorInvalidSymbolName, 0, "symbol name may not be empty")
	}
	return &Value{kind: KindSymbol, text: name}, nil
}

// MustSymbol is like NewSymbol but panics on an invalid name.
func MustSymbol(name string) *Value {
	v, err := NewSymbol(name)
	if err != nil {
		panic(err)
	}
	return v
}

// NewString creates a string value holding s verbatim.
func NewString(s string) *Value {
	return &Value{kind: KindString, text: s}
}

// NewInt creates an integer value.
func NewInt(i int64) *Value {
	return &Value{kind: KindInt, i: i}
}

// NewFloat creates a floating point value.
func NewFloat(f float64) *Value {
	return &Value{kind: KindFloat, f: f}
}

// NewList creates a parenthesized list of the given elements.
func NewList(elems ...*Value) *Value {
	return NewBracketList('(', elems...)
}

// NewBracketList creates a list delimited by the given opening bracket,
// paired with its closing bracket from the standard table.
func NewBracketList(open rune, elems ...*Value) *Value {
	return NewDelimitedList(open, standardCloser(open), elems...)
}

// NewDelimitedList creates a list with an explicit bracket pair, for
// bracket configurations beyond the standard table.
func NewDelimitedList(open, close rune, elems ...*Value) *Value {
	if elems == nil {
		elems = []*Value{}
	}
	return &Value{kind: KindList, list: elems, open: open, close: close}
}

func standardCloser(open rune) rune {
	switch open {
	case '[':
		return ']'
	case '{':
		return '}'
	}
	return ')'
}

// NewDottedList creates a list whose final element is a dotted tail, as in
// (a b . c). At least one proper element must precede the tail.
func NewDottedList(elems []*Value, tail *Value) *Value {
	return NewDelimitedDottedList('(', ')', elems, tail)
}

// NewDelimitedDottedList is NewDottedList with an explicit bracket pair.
func NewDelimitedDottedList(open, close rune, elems []*Value, tail *Value) *Value {
	v := NewDelimitedList(open, close, elems...)
	v.tail = tail
	return v
}

// NewQuoted wraps a single value in a quoting form.
func NewQuoted(kind QuoteKind, inner *Value) *Value {
	return &Value{kind: KindQuoted, quote: kind, inner: inner}
}

// Kind returns the kind of the value
func (v *Value) Kind() Kind {
	return v.kind
}

// IsAtom reports whether the value is a leaf (symbol, string or number).
func (v *Value) IsAtom() bool {
	return v.kind&kindAtom > 0
}

// IsList reports whether the value is a list.
func (v *Value) IsList() bool {
	return v.kind&kindVector > 0
}

// Name returns the symbol name.
func (v *Value) Name() string {
	return v.text
}

// Text returns the string contents.
func (v *Value) Text() string {
	return v.text
}

// Int returns the integer value.
func (v *Value) Int() int64 {
	return v.i
}

// Float returns the floating point value.
func (v *Value) Float() float64 {
	return v.f
}

// List returns the list elements, excluding a dotted tail.
func (v *Value) List() []*Value {
	return v.list
}

// Tail returns the dotted tail of a list, or nil for a proper list.
func (v *Value) Tail() *Value {
	return v.tail
}

// Bracket returns the opening bracket the list was read with.
func (v *Value) Bracket() rune {
	return v.open
}

// Quote returns the quoting shorthand of a quoted form.
func (v *Value) Quote() QuoteKind {
	return v.quote
}

// Inner returns the value wrapped by a quoted form.
func (v *Value) Inner() *Value {
	return v.inner
}

// String returns the canonical textual form of the value.
func (v *Value) String() string {
	return Encode(v)
}

// Equal reports structural equality. Two lists are equal only when they
// were read with the same bracket, have equal elements in order and equal
// tails; quoted forms must match in both shorthand and inner value.
func (v *Value) Equal(w *Value) bool {
	if v == nil || w == nil {
		return v == w
	}
	if v.kind != w.kind {
		return false
	}

	switch v.kind {
	case KindSymbol, KindString:
		return v.text == w.text

	case KindInt:
		return v.i == w.i

	case KindFloat:
		return v.f == w.f

	case KindQuoted:
		return v.quote == w.quote && v.inner.Equal(w.inner)

	case KindList:
		if v.open != w.open || len(v.list) != len(w.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(w.list[i]) {
				return false
			}
		}
		return v.tail.Equal(w.tail)
	}

	return false
}
