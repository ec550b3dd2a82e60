// Package simplex implements a bound-driven decision procedure for linear
// real arithmetic, following the dual simplex method of Dutertre and de
// Moura. It decides whether a set of asserted variable bounds is jointly
// satisfiable against a fixed tableau of linear equalities, and on failure
// produces a conflict explanation built from the bounds involved.
//
// The engine never touches floating point: all arithmetic runs over
// unbounded rationals, and strict inequalities are encoded with
// DeltaRational's symbolic infinitesimal so that "x < 3" and "x <= 3" remain
// distinguishable without introducing rounding error.
package simplex
