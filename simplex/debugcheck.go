package simplex

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// ApproxCheckTableau is a second, independent sanity check layered on top
// of CheckTableau's exact-rational invariant check. It reconstructs every
// basic row as a dense float64 dot product via gonum.org/v1/gonum/mat
// (the library the pack's own revised-simplex reference driver uses for
// exactly this kind of cross-check) and logs, rather than panics on, any
// discrepancy larger than tol: it is a cheap early warning, not an
// authoritative invariant, since float64 can never be trusted to decide
// exact rational equality.
func (e *Engine) ApproxCheckTableau(log *zap.Logger, tol float64) {
	if log == nil {
		log = e.log
	}
	e.tableau.ForEachRow(func(xb ArithVar, row *ReducedRow) {
		vars := make([]ArithVar, 0, row.Len())
		coeffs := make([]float64, 0, row.Len())
		row.Each(func(v ArithVar, a Rational) {
			vars = append(vars, v)
			coeffs = append(coeffs, a.Float64())
		})
		values := make([]float64, len(vars))
		for i, v := range vars {
			values[i] = e.model.Assignment(v, false).Q.Float64()
		}
		a := mat.NewVecDense(len(coeffs), coeffs)
		x := mat.NewVecDense(len(values), values)
		got := mat.Dot(a, x)
		want := e.model.Assignment(xb, false).Q.Float64()
		if diff := got - want; diff > tol || diff < -tol {
			log.Warn("approximate tableau cross-check diverged",
				zap.Int32("var", int32(xb)),
				zap.Float64("approx", got),
				zap.Float64("exact", want),
			)
		}
	})
}
