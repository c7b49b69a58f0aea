package sexpdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterner(t *testing.T) {
	in := NewInterner()

	a1, err := in.Symbol("a")
	assert.NoError(t, err)
	a2, err := in.Symbol("a")
	assert.NoError(t, err)

	assert.Same(t, a1, a2)
	assert.Equal(t, 1, in.Len())

	b, err := in.Symbol("b")
	assert.NoError(t, err)
	assert.NotSame(t, a1, b)
	assert.Equal(t, 2, in.Len())

	// equality stays structural: an interned symbol equals a fresh one
	assert.True(t, a1.Equal(MustSymbol("a")))

	_, err = in.Symbol("")
	assert.Error(t, err)
}
