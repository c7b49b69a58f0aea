package sexpdata

import (
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Encode transforms a value into its canonical text representation. The
// canonical form is a fixed point: encoding a value, parsing the result
// and encoding again yields the same text.
func Encode(v *Value) string {
	var sb strings.Builder
	encodeValue(&sb, v)
	return sb.String()
}

// EncodeAll renders a sequence of top-level values joined by sep,
// typically a single space or a newline.
func EncodeAll(values []*Value, sep string) string {
	chunks := make([]string, 0, len(values))
	for i := range values {
		chunks = append(chunks, Encode(values[i]))
	}
	return strings.Join(chunks, sep)
}

// Dump writes the canonical form of v to w.
func Dump(v *Value, w io.Writer) error {
	_, err := io.WriteString(w, Encode(v))
	return err
}

func encodeValue(sb *strings.Builder, v *Value) {
	if v == nil {
		return
	}

	switch v.kind {
	case KindSymbol:
		encodeSymbol(sb, v.text)

	case KindString:
		encodeString(sb, v.text)

	case KindInt:
		sb.WriteString(strconv.FormatInt(v.i, 10))

	case KindFloat:
		sb.WriteString(encodeFloat(v.f))

	case KindQuoted:
		sb.WriteString(v.quote.Prefix())
		encodeValue(sb, v.inner)

	case KindList:
		sb.WriteRune(v.open)
		for i := range v.list {
			if i > 0 {
				sb.WriteByte(' ')
			}
			encodeValue(sb, v.list[i])
		}
		if v.tail != nil {
			sb.WriteString(" . ")
			encodeValue(sb, v.tail)
		}
		sb.WriteRune(v.close)

	default:
		panic("unknown value kind")
	}
}

// isStructural reports whether a rune inside a symbol name would be
// significant to the tokenizer and therefore needs a backslash on output.
// The bracket set is the full standard table, not the active parse
// configuration, so encoded text survives any bracket configuration.
func isStructural(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '{', '}', '"', ';', '\'', '`', ',', '\\', '|':
		return true
	}
	return unicode.IsSpace(r)
}

func symbolNeedsEscape(name string) bool {
	if name == "" || name == "." || IsNumeric(name) {
		return true
	}
	for _, r := range name {
		if isStructural(r) {
			return true
		}
	}
	return false
}

// encodeSymbol prints a symbol so that re-tokenizing recovers the same
// name: structurally significant runes are backslash-escaped, and when the
// whole name would re-lex as a number or a lone dot the first rune is
// escaped as well.
func encodeSymbol(sb *strings.Builder, name string) {
	if !symbolNeedsEscape(name) {
		sb.WriteString(name)
		return
	}

	escapeFirst := name == "." || IsNumeric(name)
	for i, r := range name {
		if isStructural(r) || (escapeFirst && i == 0) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
}

var stringEscapes = map[rune]string{
	'\\': `\\`,
	'"':  `\"`,
	'\n': `\n`,
	'\t': `\t`,
}

func encodeString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		if esc, ok := stringEscapes[r]; ok {
			sb.WriteString(esc)
			continue
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('"')
}

// encodeFloat uses the shortest representation that round-trips to the
// same float64, forcing a decimal point when the result would otherwise
// re-tokenize as an integer.
func encodeFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// IsNumeric reports whether text matches the numeric atom grammar: an
// optional sign, digits with at most one decimal point and at least one
// digit overall, and an optional exponent marker with optional sign.
func IsNumeric(text string) bool {
	i := 0
	if i < len(text) && (text[i] == '+' || text[i] == '-') {
		i++
	}

	digits := 0
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
		digits++
	}
	if i < len(text) && text[i] == '.' {
		i++
		for i < len(text) && text[i] >= '0' && text[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}

	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		i++
		if i < len(text) && (text[i] == '+' || text[i] == '-') {
			i++
		}
		exp := 0
		for i < len(text) && text[i] >= '0' && text[i] <= '9' {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}

	return i == len(text)
}
