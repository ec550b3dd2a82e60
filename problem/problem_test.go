package problem

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gophersimplex/gophersimplex/simplex"
)

func TestParseVarsRowsAndAssertions(t *testing.T) {
	input := `
# a small bounds problem
var x0 x1
row x2 = 1 x0 + 1 x1
lower x0 0
upper x0 2
eq x2 3
`
	p, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"x0", "x1", "x2"}, p.Vars)
	require.Len(t, p.Rows, 1)
	assert.Equal(t, "x2", p.Rows[0].Basic)
	assert.Equal(t, []string{"x0", "x1"}, p.Rows[0].Vars)
	require.Len(t, p.Rows[0].Coeffs, 2)
	assert.True(t, p.Rows[0].Coeffs[0].Equal(simplex.NewRationalInt(1)))

	require.Len(t, p.Assertions, 3)
	assert.Equal(t, AssertLower, p.Assertions[0].Kind)
	assert.Equal(t, AssertUpper, p.Assertions[1].Kind)
	assert.Equal(t, AssertEquality, p.Assertions[2].Kind)
	assert.Equal(t, "x2", p.Assertions[2].Var)
}

func TestParseRationalCoefficients(t *testing.T) {
	input := "row y = 1/2 x0\n"
	p, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, p.Rows, 1)
	assert.True(t, p.Rows[0].Coeffs[0].Equal(simplex.NewRational(1, 2)))
}

func TestParseRejectsUnrecognizedDirective(t *testing.T) {
	_, err := Parse(strings.NewReader("frobnicate x\n"))
	assert.Error(t, err)
}

func TestParseRejectsMalformedBoundLine(t *testing.T) {
	_, err := Parse(strings.NewReader("lower x0\n"))
	assert.Error(t, err)
}

func TestParseRejectsBadRationalLiteral(t *testing.T) {
	_, err := Parse(strings.NewReader("lower x0 notanumber\n"))
	assert.Error(t, err)
}

func TestParseIgnoresBlankLinesAndComments(t *testing.T) {
	input := "\n# comment\n\nvar x0\n"
	p, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"x0"}, p.Vars)
}
