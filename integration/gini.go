// Package integration demonstrates the DM06 protocol this engine expects
// from its boolean layer: assert bounds as propositional atoms become
// true, then check at decision points. The outer SAT-layer collaborator
// is explicitly out of this repository's scope (simplex.cpp's own module
// comment situates SimplexDecisionProcedure behind exactly this kind of
// search), but the retrieval pack carries a real one that the
// operator-lifecycle-manager vendors directly: github.com/go-air/gini.
//
// This package wires a small list of scenario atoms (one unit clause per
// atom) end to end rather than a general DPLL(T) loop: a real embedding would own the boolean
// search itself and call into the simplex engine at every decision, which
// is far more machinery than belongs in a demo.
package integration

import (
	"context"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/gophersimplex/gophersimplex/simplex"
	"github.com/gophersimplex/gophersimplex/termset"
)

// Per (*gini.Gini).Solve's documented contract.
const (
	giniSat     = 1
	giniUnsat   = -1
	giniUnknown = 0
)

// Scenario is a single propositional atom mapped to a bound assertion on
// one arithmetic variable.
type Scenario struct {
	Atom  z.Var
	Var   string
	Kind  string // "lower" or "upper"
	Value simplex.DeltaRational
}

// Result reports the outcome of running a Scenario set through gini and
// then through the simplex engine.
type Result struct {
	BooleanStatus  int // giniSat, giniUnsat, or giniUnknown
	TheoryConflict simplex.Term
	TheoryUnsat    bool
}

// Run builds a gini instance with one unit clause per scenario atom
// (forcing it true), solves it, and replays whichever atoms gini
// assigned true into AssertLower/AssertUpper calls against a fresh
// engine over the given variable count.
func Run(numVars int, varIDs map[string]simplex.ArithVar, rows []*simplex.ReducedRow, scenarios []Scenario) Result {
	g := gini.New()
	for _, sc := range scenarios {
		g.Add(sc.Atom.Pos())
		g.Add(z.LitNull)
	}

	status := g.Solve()
	res := Result{BooleanStatus: status}
	if status != giniSat {
		return res
	}

	sink := &collectingSink{}
	engine := simplex.NewEngine(numVars, 0, sink, termset.Factory{}, nil, nil)
	for _, row := range rows {
		engine.Tableau().SetRow(row)
	}

	for _, sc := range scenarios {
		if !g.Value(sc.Atom.Pos()) {
			continue
		}
		v := varIDs[sc.Var]
		term := termset.NewBound(sc.Var, sc.Kind, sc.Var+" atom")
		var conflicted bool
		switch sc.Kind {
		case "lower":
			conflicted = engine.AssertLower(v, sc.Value, term)
		case "upper":
			conflicted = engine.AssertUpper(v, sc.Value, term)
		}
		if conflicted {
			res.TheoryUnsat = true
			res.TheoryConflict = sink.last()
			return res
		}
	}

	conflict, found := engine.UpdateInconsistentVars(context.Background())
	res.TheoryUnsat = found
	res.TheoryConflict = conflict
	return res
}

type collectingSink struct {
	conflicts []simplex.Term
}

func (s *collectingSink) Conflict(node simplex.Term) {
	s.conflicts = append(s.conflicts, node)
}

func (s *collectingSink) last() simplex.Term {
	if len(s.conflicts) == 0 {
		return nil
	}
	return s.conflicts[len(s.conflicts)-1]
}
