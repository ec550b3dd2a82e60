package simplex

import (
	"math/big"
)

// Rational is an exact, unbounded rational number. It wraps math/big.Rat:
// the pack's own rational type (minikanren.Rational, gitrdm-gokando) is
// bounded to native int and can silently overflow, which this engine cannot
// tolerate, so the exact-arithmetic layer falls back to the standard
// library here (see DESIGN.md).
type Rational struct {
	r *big.Rat
}

// RatZero is the additive identity.
var RatZero = Rational{r: new(big.Rat)}

// RatOne is the multiplicative identity.
var RatOne = NewRationalInt(1)

// NewRationalInt builds a Rational equal to the integer n.
func NewRationalInt(n int64) Rational {
	return Rational{r: big.NewRat(n, 1)}
}

// NewRational builds a Rational equal to num/den. Panics if den is zero.
func NewRational(num, den int64) Rational {
	if den == 0 {
		panic("simplex: rational with zero denominator")
	}
	return Rational{r: big.NewRat(num, den)}
}

func ratOf(r *big.Rat) Rational {
	return Rational{r: r}
}

func (a Rational) bigRat() *big.Rat {
	if a.r == nil {
		return new(big.Rat)
	}
	return a.r
}

// Add returns a + b.
func (a Rational) Add(b Rational) Rational {
	return ratOf(new(big.Rat).Add(a.bigRat(), b.bigRat()))
}

// Sub returns a - b.
func (a Rational) Sub(b Rational) Rational {
	return ratOf(new(big.Rat).Sub(a.bigRat(), b.bigRat()))
}

// Mul returns a * b.
func (a Rational) Mul(b Rational) Rational {
	return ratOf(new(big.Rat).Mul(a.bigRat(), b.bigRat()))
}

// Neg returns -a.
func (a Rational) Neg() Rational {
	return ratOf(new(big.Rat).Neg(a.bigRat()))
}

// Inverse returns 1/a. Panics if a is zero.
func (a Rational) Inverse() Rational {
	if a.Sign() == 0 {
		panic("simplex: inverse of zero rational")
	}
	return ratOf(new(big.Rat).Inv(a.bigRat()))
}

// Sign returns -1, 0, or 1 matching the sign of a.
func (a Rational) Sign() int {
	return a.bigRat().Sign()
}

// IsZero reports whether a is exactly zero.
func (a Rational) IsZero() bool {
	return a.Sign() == 0
}

// Cmp returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func (a Rational) Cmp(b Rational) int {
	return a.bigRat().Cmp(b.bigRat())
}

// Equal reports whether a == b.
func (a Rational) Equal(b Rational) bool {
	return a.Cmp(b) == 0
}

// Float64 returns the closest float64 approximation of a. Used only by the
// debug cross-checker, never in the exact arithmetic core.
func (a Rational) Float64() float64 {
	f, _ := a.bigRat().Float64()
	return f
}

// String renders a in "num/den" (or bare integer) form.
func (a Rational) String() string {
	return a.bigRat().RatString()
}
