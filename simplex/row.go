package simplex

// entry is one nonzero (variable, coefficient) pair of a ReducedRow.
type entry struct {
	v ArithVar
	a Rational
}

// ReducedRow is the sparse equation "basic = sum(a_j * nonbasic_j)" for a
// single basic variable. Entries are kept sorted by variable id so
// iteration order is deterministic, the same discipline gophersat's
// watcher lists (solver/watcher.go) rely on for reproducible propagation.
//
// basic is never itself a key of entries; entries only ever names
// non-basic variables.
type ReducedRow struct {
	basic   ArithVar
	entries []entry
}

// NewReducedRow builds the row for basic defined by the given (variable,
// coefficient) pairs. coeffs with a zero coefficient are dropped. The
// caller need not pre-sort coeffs.
func NewReducedRow(basic ArithVar, coeffs map[ArithVar]Rational) *ReducedRow {
	row := &ReducedRow{basic: basic}
	for v, a := range coeffs {
		if !a.IsZero() {
			row.entries = append(row.entries, entry{v: v, a: a})
		}
	}
	row.sort()
	return row
}

func (row *ReducedRow) sort() {
	// insertion sort: rows are small in practice and this keeps the file
	// free of a second helper type.
	for i := 1; i < len(row.entries); i++ {
		for j := i; j > 0 && row.entries[j-1].v > row.entries[j].v; j-- {
			row.entries[j-1], row.entries[j] = row.entries[j], row.entries[j-1]
		}
	}
}

// Basic returns the row's defined (basic) variable.
func (row *ReducedRow) Basic() ArithVar { return row.basic }

// Len returns the number of nonzero non-basic entries.
func (row *ReducedRow) Len() int { return len(row.entries) }

// Coeff returns a_{basic,v} and whether v occurs in the row.
func (row *ReducedRow) Coeff(v ArithVar) (Rational, bool) {
	for _, e := range row.entries {
		if e.v == v {
			return e.a, true
		}
	}
	return RatZero, false
}

// Has reports whether v occurs in the row with a nonzero coefficient.
func (row *ReducedRow) Has(v ArithVar) bool {
	_, ok := row.Coeff(v)
	return ok
}

// Each calls f for every (variable, coefficient) entry in ascending
// variable order. f must not mutate the row.
func (row *ReducedRow) Each(f func(v ArithVar, a Rational)) {
	for _, e := range row.entries {
		f(e.v, e.a)
	}
}

// set installs coefficient a for v, removing the entry if a becomes zero.
// It keeps entries sorted by doing a linear scan; rows are sparse so this
// is cheap in practice.
func (row *ReducedRow) set(v ArithVar, a Rational) {
	for i, e := range row.entries {
		if e.v == v {
			if a.IsZero() {
				row.entries = append(row.entries[:i], row.entries[i+1:]...)
			} else {
				row.entries[i].a = a
			}
			return
		}
		if e.v > v {
			if a.IsZero() {
				return
			}
			row.entries = append(row.entries, entry{})
			copy(row.entries[i+1:], row.entries[i:])
			row.entries[i] = entry{v: v, a: a}
			return
		}
	}
	if !a.IsZero() {
		row.entries = append(row.entries, entry{v: v, a: a})
	}
}

// addScaled adds c*other into row, substituting entries of the shared
// variable list. other must not itself be row.
func (row *ReducedRow) addScaled(c Rational, other *ReducedRow) {
	other.Each(func(v ArithVar, a Rational) {
		cur, _ := row.Coeff(v)
		row.set(v, cur.Add(c.Mul(a)))
	})
}

// solveForAndSubstitute rewrites row, currently "basic = ... + a*target +
// ...", into the equation for target in terms of everything else,
// overwriting row in place. Precondition: target occurs in row with a
// nonzero coefficient and target != row.basic. Used by Tableau.Pivot.
func (row *ReducedRow) solveForAndSubstitute(target ArithVar) {
	a, ok := row.Coeff(target)
	if !ok || a.IsZero() {
		panic("simplex: solveForAndSubstitute on absent or zero coefficient")
	}
	oldBasic := row.basic
	inv := a.Inverse()
	// target = (1/a) * oldBasic - (1/a) * sum_{j != target} a_j * nonbasic_j
	newEntries := make([]entry, 0, len(row.entries))
	for _, e := range row.entries {
		if e.v == target {
			continue
		}
		newEntries = append(newEntries, entry{v: e.v, a: e.a.Neg().Mul(inv)})
	}
	newEntries = append(newEntries, entry{v: oldBasic, a: inv})
	row.basic = target
	row.entries = newEntries
	row.sort()
}
