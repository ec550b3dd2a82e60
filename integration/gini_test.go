package integration

import (
	"testing"

	"github.com/go-air/gini/z"
	"github.com/stretchr/testify/assert"

	"github.com/gophersimplex/gophersimplex/simplex"
)

func TestRunSingleAtomSatisfiable(t *testing.T) {
	varIDs := map[string]simplex.ArithVar{"x": 0}
	scenarios := []Scenario{
		{Atom: z.Var(1), Var: "x", Kind: "lower", Value: simplex.DR(simplex.NewRationalInt(5))},
	}

	res := Run(1, varIDs, nil, scenarios)
	assert.Equal(t, giniSat, res.BooleanStatus)
	assert.False(t, res.TheoryUnsat)
	assert.Nil(t, res.TheoryConflict)
}

func TestRunConflictingBounds(t *testing.T) {
	varIDs := map[string]simplex.ArithVar{"x": 0}
	scenarios := []Scenario{
		{Atom: z.Var(1), Var: "x", Kind: "lower", Value: simplex.DR(simplex.NewRationalInt(5))},
		{Atom: z.Var(2), Var: "x", Kind: "upper", Value: simplex.DR(simplex.NewRationalInt(1))},
	}

	res := Run(1, varIDs, nil, scenarios)
	assert.Equal(t, giniSat, res.BooleanStatus)
	assert.True(t, res.TheoryUnsat)
	assert.NotNil(t, res.TheoryConflict)
}
