package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jd-boyd/sexpdata"
)

func TestParserBuildTree(t *testing.T) {
	testCases := []struct {
		In  string
		Out string
	}{
		{
			In:  ``,
			Out: ``,
		},
		{
			In:  `a`,
			Out: `a`,
		},
		{
			In:  `(a b)`,
			Out: `(a b)`,
		},
		{
			In:  "(a\n\t b  c)",
			Out: `(a b c)`,
		},
		{
			In:  `(1 2 3.5)`,
			Out: `(1 2 3.5)`,
		},
		{
			In:  `("a" "b")`,
			Out: `("a" "b")`,
		},
		{
			In:  `'a`,
			Out: `'a`,
		},
		{
			In:  `(a '(b c))`,
			Out: `(a '(b c))`,
		},
		{
			In:  "`(a ,b ,@c)",
			Out: "`(a ,b ,@c)",
		},
		{
			In:  `(mapcar #'car xs)`,
			Out: `(mapcar #'car xs)`,
		},
		{
			In:  `(a . b)`,
			Out: `(a . b)`,
		},
		{
			In:  `(a b . c)`,
			Out: `(a b . c)`,
		},
		{
			In:  `(a . (b))`,
			Out: `(a . (b))`,
		},
		{
			In:  "(a ; trailing comment\n b)",
			Out: `(a b)`,
		},
		{
			In:  `(() (a) ())`,
			Out: `(() (a) ())`,
		},
		{
			In:  `+`,
			Out: `+`,
		},
		{
			In:  `1abc`,
			Out: `1abc`,
		},
		{
			In:  `(+ -1 55 +6.3 +2 -3.23)`,
			Out: `(+ -1 55 6.3 2 -3.23)`,
		},
		{
			In:  `1e3`,
			Out: `1000.0`,
		},
		{
			In:  `a\ b`,
			Out: `a\ b`,
		},
		{
			In:  `a b (c)`,
			Out: `a b (c)`,
		},
	}

	for i := range testCases {
		values, err := ParseAll([]byte(testCases[i].In))
		assert.NoError(t, err, "case %q", testCases[i].In)

		s := sexpdata.EncodeAll(values, " ")
		assert.Equal(t, testCases[i].Out, s, "case %q", testCases[i].In)
	}
}

func TestParseValues(t *testing.T) {
	{
		v, err := Parse([]byte(`(a b)`))
		assert.NoError(t, err)
		assert.True(t, v.Equal(sexpdata.NewList(
			sexpdata.MustSymbol("a"),
			sexpdata.MustSymbol("b"),
		)))
	}

	{
		v, err := Parse([]byte(`("a" "b")`))
		assert.NoError(t, err)
		assert.True(t, v.Equal(sexpdata.NewList(
			sexpdata.NewString("a"),
			sexpdata.NewString("b"),
		)))
	}

	{
		v, err := Parse([]byte(`'a`))
		assert.NoError(t, err)
		assert.True(t, v.Equal(sexpdata.NewQuoted(sexpdata.Quote, sexpdata.MustSymbol("a"))))
	}

	{
		v, err := Parse([]byte(`(a . b)`))
		assert.NoError(t, err)
		assert.True(t, v.Equal(sexpdata.NewDottedList(
			[]*sexpdata.Value{sexpdata.MustSymbol("a")},
			sexpdata.MustSymbol("b"),
		)))
	}

	{
		v, err := Parse([]byte(`123`))
		assert.NoError(t, err)
		assert.Equal(t, sexpdata.KindInt, v.Kind())
		assert.Equal(t, int64(123), v.Int())
	}

	{
		v, err := Parse([]byte(`1abc`))
		assert.NoError(t, err)
		assert.Equal(t, sexpdata.KindSymbol, v.Kind())
		assert.Equal(t, "1abc", v.Name())
	}

	{
		v, err := Parse([]byte(`-2.5e3`))
		assert.NoError(t, err)
		assert.Equal(t, sexpdata.KindFloat, v.Kind())
		assert.Equal(t, -2500.0, v.Float())
	}

	{
		// out of int64 range degrades to float
		v, err := Parse([]byte(`9223372036854775808`))
		assert.NoError(t, err)
		assert.Equal(t, sexpdata.KindFloat, v.Kind())
	}
}

func TestParserBrackets(t *testing.T) {
	p := New(strings.NewReader(`[1 [2] (3)]`))
	p.SetOptions(Options{Brackets: sexpdata.StandardBrackets()})

	v, err := p.Parse()
	assert.NoError(t, err)
	assert.Equal(t, '[', v.Bracket())
	assert.Equal(t, `[1 [2] (3)]`, sexpdata.Encode(v))

	// unconfigured brackets are atom runes
	v, err = Parse([]byte(`[a]`))
	assert.NoError(t, err)
	assert.Equal(t, sexpdata.KindSymbol, v.Kind())
	assert.Equal(t, `[a]`, v.Name())
}

func TestParserErrors(t *testing.T) {
	testCases := []struct {
		In   string
		Kind sexpdata.ErrorKind
	}{
		{`(a`, sexpdata.ErrorUnterminatedList},
		{`(a (b)`, sexpdata.ErrorUnterminatedList},
		{`)`, sexpdata.ErrorUnmatchedClose},
		{`a)`, sexpdata.ErrorUnmatchedClose},
		{`.`, sexpdata.ErrorMalformedDottedList},
		{`(. a)`, sexpdata.ErrorMalformedDottedList},
		{`(a .)`, sexpdata.ErrorMalformedDottedList},
		{`(a . b c)`, sexpdata.ErrorMalformedDottedList},
		{`(a . b . c)`, sexpdata.ErrorMalformedDottedList},
		{`'`, sexpdata.ErrorUnexpectedEOF},
		{`(a '`, sexpdata.ErrorUnexpectedEOF},
		{`"abc`, sexpdata.ErrorUnterminatedString},
		{`(a "b`, sexpdata.ErrorUnterminatedString},
		{`"a\q"`, sexpdata.ErrorInvalidEscape},
	}

	for i := range testCases {
		_, err := ParseAll([]byte(testCases[i].In))
		assert.Error(t, err, "case %q", testCases[i].In)

		var perr *sexpdata.Error
		if assert.True(t, errors.As(err, &perr), "case %q", testCases[i].In) {
			assert.Equal(t, testCases[i].Kind, perr.Kind, "case %q", testCases[i].In)
		}
	}
}

func TestParserErrorOffsets(t *testing.T) {
	testCases := []struct {
		In     string
		Offset int
	}{
		{`(a`, 0},
		{`  (a`, 2},
		{`a)`, 1},
		{`(a . b c)`, 7},
	}

	for i := range testCases {
		_, err := ParseAll([]byte(testCases[i].In))

		var perr *sexpdata.Error
		if assert.True(t, errors.As(err, &perr), "case %q", testCases[i].In) {
			assert.Equal(t, testCases[i].Offset, perr.Offset, "case %q", testCases[i].In)
		}
	}
}

func TestBracketMismatch(t *testing.T) {
	testCases := []string{
		`(a]`,
		`[a)`,
		`(a [b)]`,
	}

	for _, in := range testCases {
		p := New(strings.NewReader(in))
		p.SetOptions(Options{Brackets: sexpdata.StandardBrackets()})

		_, err := p.Parse()
		assert.Error(t, err, "case %q", in)

		var perr *sexpdata.Error
		if assert.True(t, errors.As(err, &perr), "case %q", in) {
			assert.Equal(t, sexpdata.ErrorBracketMismatch, perr.Kind, "case %q", in)
		}
	}
}

func TestMaxDepth(t *testing.T) {
	parseNested := func(n int, maxDepth int) error {
		in := strings.Repeat("(", n) + "a" + strings.Repeat(")", n)
		p := New(strings.NewReader(in))
		p.SetOptions(Options{MaxDepth: maxDepth})
		_, err := p.Parse()
		return err
	}

	assert.NoError(t, parseNested(4, 4))

	err := parseNested(5, 4)
	assert.Error(t, err)
	var perr *sexpdata.Error
	if assert.True(t, errors.As(err, &perr)) {
		assert.Equal(t, sexpdata.ErrorNestingTooDeep, perr.Kind)
	}

	// quote marks count towards nesting as well
	p := New(strings.NewReader(strings.Repeat("'", 10) + "a"))
	p.SetOptions(Options{MaxDepth: 4})
	_, err = p.Parse()
	assert.Error(t, err)
	if assert.True(t, errors.As(err, &perr)) {
		assert.Equal(t, sexpdata.ErrorNestingTooDeep, perr.Kind)
	}
}

func TestParseAllPartialResults(t *testing.T) {
	values, err := ParseAll([]byte(`(a) (b) (c`))
	assert.Error(t, err)
	assert.Len(t, values, 2)

	values, err = ParseAll([]byte(`a b )`))
	assert.Error(t, err)
	assert.Len(t, values, 2)
}

func TestStreamingParse(t *testing.T) {
	p := New(strings.NewReader("a (b c) 3"))

	v, err := p.Parse()
	assert.NoError(t, err)
	assert.Equal(t, "a", v.Name())

	v, err = p.Parse()
	assert.NoError(t, err)
	assert.Equal(t, sexpdata.KindList, v.Kind())

	v, err = p.Parse()
	assert.NoError(t, err)
	assert.Equal(t, int64(3), v.Int())

	_, err = p.Parse()
	assert.True(t, errors.Is(err, ErrEndOfInput))

	// the stream stays exhausted
	_, err = p.Parse()
	assert.True(t, errors.Is(err, ErrEndOfInput))
}
