package media

import (
	"fmt"
	"strconv"
	"strings"
)

// Rational is an exact numerator/denominator pair. A zero denominator means
// the value is unavailable; such a value is never divided or formatted as a
// ratio.
type Rational struct {
	Num int64 `json:"num" yaml:"num"`
	Den int64 `json:"den" yaml:"den"`
}

// NewRational returns num/den without reducing it.
func NewRational(num, den int64) Rational {
	return Rational{Num: num, Den: den}
}

// ParseRational parses "num/den" or "num:den".
func ParseRational(s string) (Rational, error) {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, "/:")
	if sep < 0 {
		return Rational{}, fmt.Errorf("invalid rational %q", s)
	}
	num, err := strconv.ParseInt(s[:sep], 10, 64)
	if err != nil {
		return Rational{}, fmt.Errorf("invalid rational numerator %q: %w", s, err)
	}
	den, err := strconv.ParseInt(s[sep+1:], 10, 64)
	if err != nil {
		return Rational{}, fmt.Errorf("invalid rational denominator %q: %w", s, err)
	}
	return Rational{Num: num, Den: den}, nil
}

// Valid reports whether the denominator is non-zero.
func (r Rational) Valid() bool {
	return r.Den != 0
}

// Reduce returns r in lowest terms with a positive denominator. An invalid
// value is returned unchanged.
func (r Rational) Reduce() Rational {
	if r.Den == 0 {
		return r
	}
	if r.Den < 0 {
		r.Num, r.Den = -r.Num, -r.Den
	}
	if r.Num == 0 {
		return Rational{Num: 0, Den: 1}
	}
	g := gcd(abs(r.Num), r.Den)
	return Rational{Num: r.Num / g, Den: r.Den / g}
}

// Mul returns r*o in lowest terms. The result is invalid if either operand is.
func (r Rational) Mul(o Rational) Rational {
	if !r.Valid() || !o.Valid() {
		return Rational{}
	}
	a := r.Reduce()
	b := o.Reduce()
	// Cross-reduce first to keep intermediates small.
	g1 := gcd(abs(a.Num), b.Den)
	g2 := gcd(abs(b.Num), a.Den)
	if g1 == 0 {
		g1 = 1
	}
	if g2 == 0 {
		g2 = 1
	}
	return Rational{
		Num: (a.Num / g1) * (b.Num / g2),
		Den: (a.Den / g2) * (b.Den / g1),
	}.Reduce()
}

// Equal compares two rationals by value.
func (r Rational) Equal(o Rational) bool {
	if !r.Valid() || !o.Valid() {
		return r == o
	}
	return r.Reduce() == o.Reduce()
}

// IsInteger reports whether the reduced value has denominator 1.
func (r Rational) IsInteger() bool {
	return r.Valid() && r.Reduce().Den == 1
}

// Float64 returns the value as a float. Callers check Valid first.
func (r Rational) Float64() float64 {
	return float64(r.Num) / float64(r.Den)
}

// String formats the ratio as "num:den".
func (r Rational) String() string {
	return fmt.Sprintf("%d:%d", r.Num, r.Den)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
