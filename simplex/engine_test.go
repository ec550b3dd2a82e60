package simplex

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// andTerm is the minimal conjunction term used by tests: a conjunction of
// opaque bound tags, mirroring how gophersat's own tests build small
// fixture values rather than a real AST (solver/solver_test.go).
type andTerm struct {
	of []Term
}

type testFactory struct{}

func (testFactory) And(terms ...Term) Term {
	return andTerm{of: terms}
}

type testSink struct {
	conflicts []Term
}

func (s *testSink) Conflict(node Term) {
	s.conflicts = append(s.conflicts, node)
}

// bt is a bound tag used as a Term in tests: which variable, which side,
// which value, so assertions can inspect what a conflict is built from.
type bt struct {
	varName string
	side    string
	val     int64
}

func r(n int64) Rational       { return NewRationalInt(n) }
func dr(n int64) DeltaRational { return DR(r(n)) }

func newTestEngine(numVars int) (*Engine, *testSink) {
	sink := &testSink{}
	e := NewEngine(numVars, 0, sink, testFactory{}, nil, nil)
	return e, sink
}

// TestAssertLowerThenUpperConflict covers scenario 3: a single variable
// asserted x >= 2 then x <= 1 must conflict immediately from AssertUpper.
func TestAssertLowerThenUpperConflict(t *testing.T) {
	e, sink := newTestEngine(1)
	const x ArithVar = 0

	conflicted := e.AssertLower(x, dr(2), bt{"x", "lower", 2})
	require.False(t, conflicted)

	conflicted = e.AssertUpper(x, dr(1), bt{"x", "upper", 1})
	assert.True(t, conflicted)
	require.Len(t, sink.conflicts, 1)

	node := sink.conflicts[0].(andTerm)
	assert.ElementsMatch(t, []Term{bt{"x", "lower", 2}, bt{"x", "upper", 1}}, node.of)
}

// TestRowConflictXEqualsX0PlusX1 covers scenario 1: x2 = x0 + x1, asserting
// x0 >= 1, x1 >= 1, x2 <= 1 must be unsatisfiable.
func TestRowConflictXEqualsX0PlusX1(t *testing.T) {
	const (
		x0 ArithVar = 0
		x1 ArithVar = 1
		x2 ArithVar = 2
	)
	e, sink := newTestEngine(3)
	e.Tableau().SetRow(NewReducedRow(x2, map[ArithVar]Rational{x0: r(1), x1: r(1)}))

	require.False(t, e.AssertLower(x0, dr(1), bt{"x0", "lower", 1}))
	require.False(t, e.AssertLower(x1, dr(1), bt{"x1", "lower", 1}))
	conflicted := e.AssertUpper(x2, dr(1), bt{"x2", "upper", 1})
	if !conflicted {
		term, found := e.UpdateInconsistentVars(context.Background())
		require.True(t, found)
		_ = term
	} else {
		require.Len(t, sink.conflicts, 1)
	}
	e.CheckTableau()
}

// TestSatCheckWithEquality covers scenario 2: x0, x1 in [0,2], x2 = x0+x1
// constrained to exactly 3 must be satisfiable, with the row invariant
// holding throughout.
func TestSatCheckWithEquality(t *testing.T) {
	const (
		x0 ArithVar = 0
		x1 ArithVar = 1
		x2 ArithVar = 2
	)
	e, _ := newTestEngine(3)
	e.Tableau().SetRow(NewReducedRow(x2, map[ArithVar]Rational{x0: r(1), x1: r(1)}))

	require.False(t, e.AssertLower(x0, dr(0), bt{"x0", "lower", 0}))
	require.False(t, e.AssertUpper(x0, dr(2), bt{"x0", "upper", 2}))
	require.False(t, e.AssertLower(x1, dr(0), bt{"x1", "lower", 0}))
	require.False(t, e.AssertUpper(x1, dr(2), bt{"x1", "upper", 2}))
	conflicted := e.AssertEquality(x2, dr(3), bt{"x2", "eq", 3})
	require.False(t, conflicted)

	term, found := e.UpdateInconsistentVars(context.Background())
	assert.False(t, found)
	assert.Nil(t, term)

	e.CheckTableau()
	assert.True(t, e.Model().AssignmentIsConsistent(x0))
	assert.True(t, e.Model().AssignmentIsConsistent(x1))
	assert.True(t, e.Model().AssignmentIsConsistent(x2))

	sum := e.Model().Assignment(x0, false).Add(e.Model().Assignment(x1, false))
	assert.True(t, sum.Equal(dr(3)))
}

// TestPivotConflictXEqualsY covers scenario 5: x = y, y in [0,1], x in
// [2,3] forces a pivot that discovers an unsatisfiable conflict.
func TestPivotConflictXEqualsY(t *testing.T) {
	const (
		x ArithVar = 0
		y ArithVar = 1
	)
	e, _ := newTestEngine(2)
	e.Tableau().SetRow(NewReducedRow(x, map[ArithVar]Rational{y: r(1)}))

	require.False(t, e.AssertLower(y, dr(0), bt{"y", "lower", 0}))
	require.False(t, e.AssertUpper(y, dr(1), bt{"y", "upper", 1}))
	require.False(t, e.AssertLower(x, dr(2), bt{"x", "lower", 2}))
	require.False(t, e.AssertUpper(x, dr(3), bt{"x", "upper", 3}))

	term, found := e.UpdateInconsistentVars(context.Background())
	assert.True(t, found)
	assert.NotNil(t, term)
}

// TestRowConflictXEquals2YMinusZ covers scenario 4: x = 2y - z, with
// y = 0, z = 0 asserted as equalities and x asserted to 1: unsatisfiable.
func TestRowConflictXEquals2YMinusZ(t *testing.T) {
	const (
		x ArithVar = 0
		y ArithVar = 1
		z ArithVar = 2
	)
	e, _ := newTestEngine(3)
	e.Tableau().SetRow(NewReducedRow(x, map[ArithVar]Rational{y: r(2), z: r(-1)}))

	require.False(t, e.AssertEquality(y, dr(0), bt{"y", "eq", 0}))
	require.False(t, e.AssertEquality(z, dr(0), bt{"z", "eq", 0}))
	conflicted := e.AssertEquality(x, dr(1), bt{"x", "eq", 1})

	if !conflicted {
		_, found := e.UpdateInconsistentVars(context.Background())
		assert.True(t, found)
	}
}

// TestIdempotentOnAlreadySat covers the idempotence property: calling
// UpdateInconsistentVars twice in a row on an already-satisfiable state
// performs no pivot the second time and returns the same (nil, false).
func TestIdempotentOnAlreadySat(t *testing.T) {
	const x ArithVar = 0
	e, _ := newTestEngine(1)

	require.False(t, e.AssertLower(x, dr(0), bt{"x", "lower", 0}))
	require.False(t, e.AssertUpper(x, dr(5), bt{"x", "upper", 5}))

	term1, found1 := e.UpdateInconsistentVars(context.Background())
	assert.Nil(t, term1)
	assert.False(t, found1)

	pivotsBefore := e.Stats().Pivots
	term2, found2 := e.UpdateInconsistentVars(context.Background())
	assert.Nil(t, term2)
	assert.False(t, found2)
	assert.Equal(t, pivotsBefore, e.Stats().Pivots)
}

// TestCheckTerminatesOnTwoRowTableau is a termination check on a
// two-row tableau sharing both non-basics (x2 = x0 - x1, x3 = x0 + x1):
// the check must return within the deadline with the row invariant
// intact. This instance is resolved by two pivots inside the Griggio
// stage's iteration budget, so the Bland stage is not entered.
func TestCheckTerminatesOnTwoRowTableau(t *testing.T) {
	const (
		x0 ArithVar = 0
		x1 ArithVar = 1
		x2 ArithVar = 2
		x3 ArithVar = 3
	)
	e, _ := newTestEngine(4)
	e.Tableau().SetRow(NewReducedRow(x2, map[ArithVar]Rational{x0: r(1), x1: r(-1)}))
	e.Tableau().SetRow(NewReducedRow(x3, map[ArithVar]Rational{x0: r(1), x1: r(1)}))

	require.False(t, e.AssertLower(x0, dr(0), bt{"x0", "lower", 0}))
	require.False(t, e.AssertUpper(x0, dr(10), bt{"x0", "upper", 10}))
	require.False(t, e.AssertLower(x1, dr(0), bt{"x1", "lower", 0}))
	require.False(t, e.AssertUpper(x1, dr(10), bt{"x1", "upper", 10}))
	require.False(t, e.AssertLower(x2, dr(-1), bt{"x2", "lower", -1}))
	require.False(t, e.AssertUpper(x2, dr(1), bt{"x2", "upper", 1}))
	require.False(t, e.AssertLower(x3, dr(3), bt{"x3", "lower", 3}))

	done := make(chan struct{})
	go func() {
		e.UpdateInconsistentVars(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("UpdateInconsistentVars did not terminate")
	}
	e.CheckTableau()
}
