package simplex

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// conflictCandidate is an unbuilt conjunction of explanation terms. It
// stays unbuilt (rather than immediately handed to a TermFactory) so that
// selectInitialConflict can compare candidates by size before paying the
// cost of constructing an AND node nobody keeps.
type conflictCandidate struct {
	terms []Term
}

func (c *conflictCandidate) len() int {
	if c == nil {
		return 0
	}
	return len(c.terms)
}

// betterConflict returns whichever of x, y has fewer conjuncts, ties
// favoring x.
func betterConflict(x, y *conflictCandidate) *conflictCandidate {
	if x.len() <= y.len() {
		return x
	}
	return y
}

// Engine is the bound-driven simplex decision procedure: it owns a
// tableau, a partial model, and the two inconsistency queues, and decides
// satisfiability of the asserted bounds against the tableau's equations.
type Engine struct {
	model    *PartialModel
	tableau  *Tableau
	basicMgr *BasicManager
	griggio  *griggioQueue
	bland    *blandQueue

	factory TermFactory
	sink    ConflictSink
	stats   *Stats
	log     *zap.Logger

	numVariables        int
	pivotStage          bool
	foundAConflict      bool
	pivotsSinceConflict int
}

// NewEngine builds an engine over numVars variables. sink and factory are
// required; stats and log may be nil, in which case statistics are kept
// only in memory and no debug traces are emitted. queueCapacityHint
// presizes the Griggio and Bland queues' backing slices and index maps;
// 0 leaves them to grow from empty.
func NewEngine(numVars int, queueCapacityHint int, sink ConflictSink, factory TermFactory, stats *Stats, log *zap.Logger) *Engine {
	basicMgr := NewBasicManager(numVars)
	if stats == nil {
		stats = NewStats(nil)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		model:        NewPartialModel(numVars),
		tableau:      NewTableau(numVars, basicMgr),
		basicMgr:     basicMgr,
		griggio:      newGriggioQueue(queueCapacityHint),
		bland:        newBlandQueue(queueCapacityHint),
		factory:      factory,
		sink:         sink,
		stats:        stats,
		log:          log,
		numVariables: numVars,
		pivotStage:   true,
	}
}

// Model exposes the underlying PartialModel for read access (used by
// callers reading out a satisfying assignment, and by tests).
func (e *Engine) Model() *PartialModel { return e.model }

// Tableau exposes the underlying Tableau, primarily so a caller can seed
// rows via SetRow before any assertions are made.
func (e *Engine) Tableau() *Tableau { return e.tableau }

// Stats exposes the engine's statistics counters.
func (e *Engine) Stats() *Stats { return e.stats }

// AssertLower installs x >= c with explanation t. Returns true if this
// immediately conflicts with x's current upper bound.
func (e *Engine) AssertLower(x ArithVar, c DeltaRational, t Term) bool {
	if lb, ok := e.model.LowerBound(x); ok && c.LessEqual(lb) {
		return false
	}
	if ub, ok := e.model.UpperBound(x); ok && c.GreaterThan(ub) {
		e.stats.incAssertLowerConflicts()
		e.sink.Conflict(e.factory.And(e.model.UpperConstraint(x), t))
		return true
	}
	e.model.SetLowerBound(x, c, t)
	e.log.Debug("assert lower", zap.Int32("var", int32(x)), zap.Stringer("bound", c))
	if e.basicMgr.IsNonBasic(x) {
		if e.model.Assignment(x, false).LessThan(c) {
			e.update(x, c)
		}
	} else {
		e.checkBasicVariable(x)
	}
	return false
}

// AssertUpper installs x <= c with explanation t. Returns true if this
// immediately conflicts with x's current lower bound.
func (e *Engine) AssertUpper(x ArithVar, c DeltaRational, t Term) bool {
	if ub, ok := e.model.UpperBound(x); ok && c.GreaterEqual(ub) {
		return false
	}
	if lb, ok := e.model.LowerBound(x); ok && c.LessThan(lb) {
		e.stats.incAssertUpperConflicts()
		e.sink.Conflict(e.factory.And(e.model.LowerConstraint(x), t))
		return true
	}
	e.model.SetUpperBound(x, c, t)
	e.log.Debug("assert upper", zap.Int32("var", int32(x)), zap.Stringer("bound", c))
	if e.basicMgr.IsNonBasic(x) {
		if e.model.Assignment(x, false).GreaterThan(c) {
			e.update(x, c)
		}
	} else {
		e.checkBasicVariable(x)
	}
	return false
}

// AssertEquality installs x = c with explanation t, the intersection of
// AssertLower and AssertUpper: it checks both directions for an
// immediate conflict before installing both bounds.
func (e *Engine) AssertEquality(x ArithVar, c DeltaRational, t Term) bool {
	if ub, ok := e.model.UpperBound(x); ok && c.GreaterThan(ub) {
		e.stats.incAssertLowerConflicts()
		e.sink.Conflict(e.factory.And(e.model.UpperConstraint(x), t))
		return true
	}
	if lb, ok := e.model.LowerBound(x); ok && c.LessThan(lb) {
		e.stats.incAssertUpperConflicts()
		e.sink.Conflict(e.factory.And(e.model.LowerConstraint(x), t))
		return true
	}
	e.model.SetLowerBound(x, c, t)
	e.model.SetUpperBound(x, c, t)
	if e.basicMgr.IsNonBasic(x) {
		if !e.model.Assignment(x, false).Equal(c) {
			e.update(x, c)
		}
	} else {
		e.checkBasicVariable(x)
	}
	return false
}

// update assigns v to the non-basic variable xi, propagating the change
// to every basic variable whose row mentions xi. No pivot occurs.
func (e *Engine) update(xi ArithVar, v DeltaRational) {
	old := e.model.Assignment(xi, false)
	diff := v.Sub(old)
	e.tableau.ForEachRow(func(xb ArithVar, row *ReducedRow) {
		a, ok := row.Coeff(xi)
		if !ok {
			return
		}
		e.model.SetAssignment(xb, e.model.Assignment(xb, false).Add(diff.ScaleBy(a)))
		e.model.BumpActivity(xb)
		e.checkBasicVariable(xb)
	})
	e.model.SetAssignment(xi, v)
	e.stats.incUpdates()
}

// pivotAndUpdate pivots basic xi with non-basic xj so that xi becomes v,
// updating every affected assignment and then performing the tableau
// pivot itself.
func (e *Engine) pivotAndUpdate(xi, xj ArithVar, v DeltaRational) {
	stop := e.stats.timePivot()
	defer stop()

	row := e.tableau.Lookup(xi)
	if row == nil {
		panic("simplex: pivotAndUpdate on non-basic xi")
	}
	aij, ok := row.Coeff(xj)
	if !ok || aij.IsZero() {
		panic("simplex: pivotAndUpdate with zero or absent coefficient")
	}

	theta := v.Sub(e.model.Assignment(xi, false)).ScaleBy(aij.Inverse())
	e.model.SetAssignment(xi, v)
	e.model.SetAssignment(xj, e.model.Assignment(xj, false).Add(theta))

	e.tableau.ForEachRow(func(xk ArithVar, rowK *ReducedRow) {
		if xk == xi {
			return
		}
		akj, ok := rowK.Coeff(xj)
		if !ok {
			return
		}
		e.model.SetAssignment(xk, e.model.Assignment(xk, false).Add(theta.ScaleBy(akj)))
		e.checkBasicVariable(xk)
	})

	e.tableau.Pivot(xi, xj)
	e.checkBasicVariable(xj)
	e.stats.incPivots()

	if e.foundAConflict {
		e.stats.incPivotsAfterConflict()
		e.pivotsSinceConflict++
		if e.pivotsSinceConflict == 1 {
			e.stats.incChecksWithWastefulPivots()
		}
	} else if e.checkBasicForConflict(xj) != nil {
		// Redundant early-conflict detection: mark the conflict as
		// found without returning it here. The main loop's own
		// checkBasicForConflict call on xj picks it up and returns
		// it; this flag only exists to gate the wasteful-pivot
		// counters above on subsequent pivots within the same check.
		e.foundAConflict = true
	}
}

// checkBasicVariable enqueues xb if its assignment currently violates a
// bound: into the Griggio queue (keyed by violation magnitude) during
// the Griggio stage, into the Bland queue (keyed by id) otherwise.
func (e *Engine) checkBasicVariable(xb ArithVar) {
	if !e.basicMgr.IsBasic(xb) {
		return
	}
	if e.model.AssignmentIsConsistent(xb) {
		return
	}
	if e.pivotStage {
		assign := e.model.Assignment(xb, false)
		var violation DeltaRational
		if lb, ok := e.model.LowerBound(xb); ok && assign.LessThan(lb) {
			violation = lb.Sub(assign)
		} else if ub, ok := e.model.UpperBound(xb); ok {
			violation = assign.Sub(ub)
		}
		e.griggio.push(xb, violation)
	} else {
		e.bland.push(xb)
	}
}

// checkBasicForConflict returns a conflict candidate if xb's current
// violation admits no slack variable to absorb a corrective pivot, nil
// otherwise.
func (e *Engine) checkBasicForConflict(xb ArithVar) *conflictCandidate {
	if !e.basicMgr.IsBasic(xb) {
		return nil
	}
	assign := e.model.Assignment(xb, false)
	if lb, ok := e.model.LowerBound(xb); ok && assign.LessThan(lb) {
		if e.selectSlackBelow(xb) == NoVar {
			return e.generateConflictBelow(xb)
		}
		return nil
	}
	if ub, ok := e.model.UpperBound(xb); ok && assign.GreaterThan(ub) {
		if e.selectSlackAbove(xb) == NoVar {
			return e.generateConflictAbove(xb)
		}
	}
	return nil
}

// selectSmallestInconsistentVar pops from whichever queue is active until
// it finds a variable that is still basic and still inconsistent (queue
// entries go stale as pivots change variable roles and assignments).
func (e *Engine) selectSmallestInconsistentVar() ArithVar {
	if e.pivotStage {
		for !e.griggio.empty() {
			v := e.griggio.popMax()
			if e.basicMgr.IsBasic(v) && !e.model.AssignmentIsConsistent(v) {
				return v
			}
		}
		return NoVar
	}
	for !e.bland.empty() {
		v := e.bland.popMin()
		if e.basicMgr.IsBasic(v) && !e.model.AssignmentIsConsistent(v) {
			return v
		}
	}
	return NoVar
}

// selectSlackBelow picks a non-basic slack for a basic xi whose
// assignment is below its lower bound: in the Griggio stage, the valid
// candidate with the smallest row-count; in the Bland stage, the first
// valid candidate in ascending-id order.
func (e *Engine) selectSlackBelow(xi ArithVar) ArithVar {
	row := e.tableau.Lookup(xi)
	if row == nil {
		return NoVar
	}
	best := NoVar
	bestRowCount := uint32(0)
	found := false
	row.Each(func(v ArithVar, a Rational) {
		if found && !e.pivotStage {
			return
		}
		var valid bool
		if a.Sign() > 0 {
			valid = e.model.StrictlyBelowUpperBound(v)
		} else {
			valid = e.model.StrictlyAboveLowerBound(v)
		}
		if !valid {
			return
		}
		if !e.pivotStage {
			best, found = v, true
			return
		}
		rc := e.tableau.RowCount(v)
		if !found || rc < bestRowCount {
			best, bestRowCount, found = v, rc, true
		}
	})
	return best
}

// selectSlackAbove is the dual of selectSlackBelow for a basic xi whose
// assignment is above its upper bound.
func (e *Engine) selectSlackAbove(xi ArithVar) ArithVar {
	row := e.tableau.Lookup(xi)
	if row == nil {
		return NoVar
	}
	best := NoVar
	bestRowCount := uint32(0)
	found := false
	row.Each(func(v ArithVar, a Rational) {
		if found && !e.pivotStage {
			return
		}
		var valid bool
		if a.Sign() < 0 {
			valid = e.model.StrictlyBelowUpperBound(v)
		} else {
			valid = e.model.StrictlyAboveLowerBound(v)
		}
		if !valid {
			return
		}
		if !e.pivotStage {
			best, found = v, true
			return
		}
		rc := e.tableau.RowCount(v)
		if !found || rc < bestRowCount {
			best, bestRowCount, found = v, rc, true
		}
	})
	return best
}

// generateConflictAbove builds the conflict candidate for a basic xi
// whose assignment exceeds its upper bound with no available slack: the
// upper bound of xi together with, for each non-basic in its row, the
// bound (lower if the coefficient is positive, upper otherwise) that
// pins it in place.
func (e *Engine) generateConflictAbove(xi ArithVar) *conflictCandidate {
	row := e.tableau.Lookup(xi)
	terms := []Term{e.model.UpperConstraint(xi)}
	row.Each(func(v ArithVar, a Rational) {
		if a.Sign() > 0 {
			terms = append(terms, e.model.LowerConstraint(v))
		} else {
			terms = append(terms, e.model.UpperConstraint(v))
		}
	})
	return &conflictCandidate{terms: terms}
}

// generateConflictBelow is the dual of generateConflictAbove.
func (e *Engine) generateConflictBelow(xi ArithVar) *conflictCandidate {
	row := e.tableau.Lookup(xi)
	terms := []Term{e.model.LowerConstraint(xi)}
	row.Each(func(v ArithVar, a Rational) {
		if a.Sign() < 0 {
			terms = append(terms, e.model.LowerConstraint(v))
		} else {
			terms = append(terms, e.model.UpperConstraint(v))
		}
	})
	return &conflictCandidate{terms: terms}
}

// selectInitialConflict inspects the current Griggio queue contents
// (without draining them) for any that are already unresolvably
// inconsistent, keeping the smallest conflict found. It is only worth
// calling when more than one variable is queued, since with at most one
// queued variable the main loop's own checkBasicForConflict call will
// find the same answer at no extra cost.
func (e *Engine) selectInitialConflict() *conflictCandidate {
	stop := e.stats.timeSelectInitialConflict()
	defer stop()

	entries := e.griggio.entries()
	var best *conflictCandidate
	conflictChanges := 0
	for _, v := range entries {
		c := e.checkBasicForConflict(v)
		if c == nil {
			continue
		}
		e.stats.incEarlyConflicts()
		if best == nil {
			best = c
			continue
		}
		chosen := betterConflict(c, best)
		if chosen != best {
			conflictChanges++
		}
		best = chosen
	}
	if conflictChanges > 1 {
		e.stats.incEarlyConflictImprovements()
	}
	return best
}

// UpdateInconsistentVars is the engine's main entry point, called once
// per theory check. It returns the conflict term and true if the
// currently asserted bounds are unsatisfiable against the tableau,
// (nil, false) otherwise. ctx may be cancelled by a resource manager to
// interrupt a long-running check; on cancellation the call returns
// (nil, false) without resolving satisfiability.
func (e *Engine) UpdateInconsistentVars(ctx context.Context) (Term, bool) {
	if e.griggio.empty() {
		return nil, false
	}
	e.foundAConflict = false
	e.pivotsSinceConflict = 0

	var conflict *conflictCandidate
	if e.griggio.len() > 1 {
		conflict = e.selectInitialConflict()
	}
	if conflict == nil {
		conflict = e.privateUpdateInconsistentVars(ctx)
	}

	e.pivotStage = true
	e.griggio.clear()
	e.bland.clear()

	if conflict == nil {
		return nil, false
	}
	return e.factory.And(conflict.terms...), true
}

// privateUpdateInconsistentVars is the DM06 Check() loop: repeatedly pick
// the most attractive inconsistent basic variable and either pivot it
// into consistency or return a conflict. The Griggio stage is bounded by
// the variable count; once exhausted it hands its remaining work to the
// unbounded, anti-cycling Bland stage.
func (e *Engine) privateUpdateInconsistentVars(ctx context.Context) *conflictCandidate {
	iterationNum := 0
	for {
		if ctx != nil && ctx.Err() != nil {
			return nil
		}
		if e.pivotStage {
			iterationNum++
			if iterationNum > e.numVariables {
				for _, v := range e.griggio.entries() {
					e.bland.push(v)
				}
				e.griggio.clear()
				e.pivotStage = false
				continue
			}
		}

		xi := e.selectSmallestInconsistentVar()
		if xi == NoVar {
			return nil
		}

		assign := e.model.Assignment(xi, false)
		var xj ArithVar
		if lb, ok := e.model.LowerBound(xi); ok && assign.LessThan(lb) {
			xj = e.selectSlackBelow(xi)
			if xj == NoVar {
				e.stats.incUpdateConflicts()
				return e.generateConflictBelow(xi)
			}
			e.pivotAndUpdate(xi, xj, lb)
		} else {
			ub, _ := e.model.UpperBound(xi)
			xj = e.selectSlackAbove(xi)
			if xj == NoVar {
				e.stats.incUpdateConflicts()
				return e.generateConflictAbove(xi)
			}
			e.pivotAndUpdate(xi, xj, ub)
		}

		if c := e.checkBasicForConflict(xj); c != nil {
			return c
		}
	}
}

// ComputeRowValue recomputes a basic variable's value from its row and
// the current (or safe) assignment of its non-basic variables, for
// model extraction and for CheckTableau's cross-check.
func (e *Engine) ComputeRowValue(basic ArithVar, useSafe bool) DeltaRational {
	row := e.tableau.Lookup(basic)
	if row == nil {
		panic("simplex: ComputeRowValue on non-basic variable")
	}
	sum := DR(RatZero)
	row.Each(func(v ArithVar, a Rational) {
		sum = sum.Add(e.model.Assignment(v, useSafe).ScaleBy(a))
	})
	return sum
}

// CheckTableau is the paranoid invariant check described in the design
// notes: for every basic variable, its stored assignment must exactly
// equal the row's recomputed value. It panics on the first mismatch; it
// is intended for test and debug builds, not steady-state use.
func (e *Engine) CheckTableau() {
	e.tableau.ForEachRow(func(xb ArithVar, _ *ReducedRow) {
		want := e.ComputeRowValue(xb, false)
		got := e.model.Assignment(xb, false)
		if !want.Equal(got) {
			panic(fmt.Sprintf("simplex: tableau invariant violated for var %d: want %s got %s", xb, want, got))
		}
	})
}
