package termset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gophersimplex/gophersimplex/simplex"
)

func TestNewBoundAssignsUniqueIDs(t *testing.T) {
	a := NewBound("x", "lower", "x >= 5")
	b := NewBound("x", "lower", "x >= 5")
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "x", a.Var)
	assert.Equal(t, "lower", a.Kind)
}

func TestBoundString(t *testing.T) {
	b := NewBound("x", "upper", "x <= 3")
	assert.Equal(t, "x x <= 3", b.String())
}

func TestFactoryAndFlattensNestedConjunctions(t *testing.T) {
	f := Factory{}
	leaf1 := NewBound("x", "lower", "x >= 0")
	leaf2 := NewBound("y", "upper", "y <= 1")
	leaf3 := NewBound("z", "eq", "z = 2")

	inner := f.And(leaf1, leaf2)
	outer := f.And(inner, leaf3)

	outerAnd, ok := outer.(And)
	require.True(t, ok)
	require.Len(t, outerAnd.Terms, 3)
	assert.Equal(t, simplex.Term(leaf1), outerAnd.Terms[0])
	assert.Equal(t, simplex.Term(leaf2), outerAnd.Terms[1])
	assert.Equal(t, simplex.Term(leaf3), outerAnd.Terms[2])
}

func TestAndString(t *testing.T) {
	a := And{Terms: []simplex.Term{NewBound("x", "lower", "x >= 0"), NewBound("y", "upper", "y <= 1")}}
	assert.Equal(t, "(x x >= 0 AND y y <= 1)", a.String())
}
