package simplex

// DeltaRational represents q + k*delta, where delta is a symbolic positive
// infinitesimal. It is the standard DM06 encoding for strict inequalities
// over the rationals: "x < c" becomes the non-strict bound "x <= c - delta",
// i.e. DeltaRational{Q: c, K: -1}, without ever picking a concrete delta
// value until models are read out.
type DeltaRational struct {
	Q Rational // the rational part
	K Rational // the coefficient of delta
}

// DR builds a DeltaRational with no infinitesimal component.
func DR(q Rational) DeltaRational {
	return DeltaRational{Q: q, K: RatZero}
}

// DRStrictAbove builds the delta-rational just above q (used to encode
// "x > q" as a non-strict lower bound).
func DRStrictAbove(q Rational) DeltaRational {
	return DeltaRational{Q: q, K: RatOne}
}

// DRStrictBelow builds the delta-rational just below q (used to encode
// "x < q" as a non-strict upper bound).
func DRStrictBelow(q Rational) DeltaRational {
	return DeltaRational{Q: q, K: RatOne.Neg()}
}

// Add returns d + e.
func (d DeltaRational) Add(e DeltaRational) DeltaRational {
	return DeltaRational{Q: d.Q.Add(e.Q), K: d.K.Add(e.K)}
}

// Sub returns d - e.
func (d DeltaRational) Sub(e DeltaRational) DeltaRational {
	return DeltaRational{Q: d.Q.Sub(e.Q), K: d.K.Sub(e.K)}
}

// ScaleBy returns d scaled by the rational coefficient c.
func (d DeltaRational) ScaleBy(c Rational) DeltaRational {
	return DeltaRational{Q: d.Q.Mul(c), K: d.K.Mul(c)}
}

// Cmp gives the lexicographic order on (Q, K): d < e iff d.Q < e.Q, or
// d.Q == e.Q and d.K < e.K. This is exactly the order induced by treating
// delta as an arbitrarily small positive number.
func (d DeltaRational) Cmp(e DeltaRational) int {
	if c := d.Q.Cmp(e.Q); c != 0 {
		return c
	}
	return d.K.Cmp(e.K)
}

// LessThan reports d < e.
func (d DeltaRational) LessThan(e DeltaRational) bool { return d.Cmp(e) < 0 }

// LessEqual reports d <= e.
func (d DeltaRational) LessEqual(e DeltaRational) bool { return d.Cmp(e) <= 0 }

// GreaterThan reports d > e.
func (d DeltaRational) GreaterThan(e DeltaRational) bool { return d.Cmp(e) > 0 }

// GreaterEqual reports d >= e.
func (d DeltaRational) GreaterEqual(e DeltaRational) bool { return d.Cmp(e) >= 0 }

// Equal reports d == e.
func (d DeltaRational) Equal(e DeltaRational) bool { return d.Cmp(e) == 0 }

// Sign returns -1, 0, or 1 comparing d against the zero delta-rational.
func (d DeltaRational) Sign() int {
	if d.Q.Sign() != 0 {
		return d.Q.Sign()
	}
	return d.K.Sign()
}

// String renders "q" or "q + k*delta".
func (d DeltaRational) String() string {
	if d.K.IsZero() {
		return d.Q.String()
	}
	return d.Q.String() + " + " + d.K.String() + "*delta"
}
