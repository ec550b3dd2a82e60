package simplex

// ForEachRow calls f once per currently basic variable and its row. The
// spec's own update/pivotAndUpdate both scan every basic row looking for
// occurrences of a given non-basic (see original_source's simplex.cpp,
// which does the same linear scan rather than maintaining a reverse
// index), so this iterator is the shared primitive both use.
func (t *Tableau) ForEachRow(f func(basic ArithVar, row *ReducedRow)) {
	for basic, row := range t.rows {
		f(basic, row)
	}
}
