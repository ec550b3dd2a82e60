// Package termset is a minimal stand-in for the term/AST layer the
// simplex engine deliberately treats as an external collaborator: a
// Bound is the opaque explanation term handed to Assert calls, and Factory
// is the TermFactory that assembles conflict conjunctions from them. It
// exists so the CLI and integration demos have something concrete to
// build and print; a real embedding SMT solver would supply its own node
// manager here instead.
package termset

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/gophersimplex/gophersimplex/simplex"
)

// Bound is a leaf term: the asserted bound that produced it.
type Bound struct {
	ID      uuid.UUID
	Var     string
	Kind    string // "lower", "upper", or "eq"
	Literal string // the original text of the asserted constraint
}

// NewBound mints a fresh bound term with a unique id, the way a real
// term manager would stamp provenance on every node it creates.
func NewBound(varName, kind, literal string) Bound {
	return Bound{ID: uuid.New(), Var: varName, Kind: kind, Literal: literal}
}

func (b Bound) String() string {
	return fmt.Sprintf("%s %s", b.Var, b.Literal)
}

// And is a conjunction of explanation terms.
type And struct {
	Terms []simplex.Term
}

func (a And) String() string {
	parts := make([]string, len(a.Terms))
	for i, t := range a.Terms {
		parts[i] = fmt.Sprint(t)
	}
	return "(" + strings.Join(parts, " AND ") + ")"
}

// Factory implements simplex.TermFactory over Bound/And.
type Factory struct{}

// And builds an And node from the given terms, flattening nested And
// nodes one level deep so conflict clauses stay a flat conjunction of
// leaves rather than growing artificial nesting.
func (Factory) And(terms ...simplex.Term) simplex.Term {
	flat := make([]simplex.Term, 0, len(terms))
	for _, t := range terms {
		if inner, ok := t.(And); ok {
			flat = append(flat, inner.Terms...)
			continue
		}
		flat = append(flat, t)
	}
	return And{Terms: flat}
}
