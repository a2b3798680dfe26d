// Package gf128poly implements the polynomial ring F[X] whose coefficients
// are elements of gf128's GF(2^128), the ring the Cantor-Zassenhaus
// factorization and tag-forgery recovery packages operate over.
package gf128poly

import (
	"fmt"
	"math/big"

	"github.com/frereit/KauMA/crypto/gf128"
)

// Poly is an ordered sequence of coefficients c0, c1, ..., cd representing
// sum(c_i * X^i). A normalized Poly has a nonzero leading coefficient, or is
// the empty slice representing the zero polynomial. Values are immutable by
// convention: every operation returns a new, normalized Poly rather than
// mutating its receiver.
type Poly struct {
	coeffs []gf128.Element
}

// Zero is the zero polynomial.
var Zero = Poly{}

// New builds a normalized polynomial from coefficients in ascending degree
// order (coeffs[0] is the constant term).
func New(coeffs []gf128.Element) Poly {
	return Poly{coeffs: append([]gf128.Element(nil), coeffs...)}.normalized()
}

// normalized strips trailing zero coefficients, producing the canonical
// representation for the polynomial's value.
func (p Poly) normalized() Poly {
	c := p.coeffs
	for len(c) > 0 && c[len(c)-1].IsZero() {
		c = c[:len(c)-1]
	}
	return Poly{coeffs: c}
}

// IsZero reports whether p is the zero polynomial.
func (p Poly) IsZero() bool {
	return len(p.coeffs) == 0
}

// Degree returns the degree of p. By convention, both the zero polynomial
// and the constant polynomial "one" report degree 0 — callers that need to
// distinguish them should check IsZero first.
func (p Poly) Degree() int {
	if len(p.coeffs) == 0 {
		return 0
	}
	return len(p.coeffs) - 1
}

// Coefficient returns the coefficient of X^i, or the zero field element if i
// is beyond p's degree.
func (p Poly) Coefficient(i int) gf128.Element {
	if i < 0 || i >= len(p.coeffs) {
		return gf128.Zero
	}
	return p.coeffs[i]
}

// LeadingCoefficient returns the coefficient of the highest-degree term.
// Undefined (returns the zero element) for the zero polynomial.
func (p Poly) LeadingCoefficient() gf128.Element {
	if len(p.coeffs) == 0 {
		return gf128.Zero
	}
	return p.coeffs[len(p.coeffs)-1]
}

// IsMonic reports whether p's leading coefficient is the multiplicative
// identity.
func (p Poly) IsMonic() bool {
	return !p.IsZero() && p.LeadingCoefficient().Equal(gf128.One)
}

// EnsureMonic normalizes p, then divides every coefficient by the leading
// one so the result's leading coefficient is gf128.One. p must be nonzero.
func (p Poly) EnsureMonic() Poly {
	p = p.normalized()
	if p.IsZero() {
		return p
	}
	lead := p.LeadingCoefficient()
	if lead.Equal(gf128.One) {
		return p
	}
	inv := lead.Inverse()
	out := make([]gf128.Element, len(p.coeffs))
	for i, c := range p.coeffs {
		out[i] = gf128.Multiply(c, inv)
	}
	return Poly{coeffs: out}
}

// Add returns p + q, XORing coefficients of matching degree.
func Add(p, q Poly) Poly {
	n := len(p.coeffs)
	if len(q.coeffs) > n {
		n = len(q.coeffs)
	}
	out := make([]gf128.Element, n)
	for i := 0; i < n; i++ {
		out[i] = p.Coefficient(i).Add(q.Coefficient(i))
	}
	return Poly{coeffs: out}.normalized()
}

// Multiply returns the schoolbook product p * q.
func Multiply(p, q Poly) Poly {
	if p.IsZero() || q.IsZero() {
		return Zero
	}
	out := make([]gf128.Element, len(p.coeffs)+len(q.coeffs)-1)
	for i, a := range p.coeffs {
		if a.IsZero() {
			continue
		}
		for j, b := range q.coeffs {
			out[i+j] = out[i+j].Add(gf128.Multiply(a, b))
		}
	}
	return Poly{coeffs: out}.normalized()
}

// ShiftUp returns p * X^k, prepending k zero coefficients.
func (p Poly) ShiftUp(k int) Poly {
	if p.IsZero() || k == 0 {
		return p
	}
	out := make([]gf128.Element, k+len(p.coeffs))
	copy(out[k:], p.coeffs)
	return Poly{coeffs: out}.normalized()
}

// ScalarMultiply returns every coefficient of p multiplied by c.
func (p Poly) ScalarMultiply(c gf128.Element) Poly {
	if c.IsZero() {
		return Zero
	}
	out := make([]gf128.Element, len(p.coeffs))
	for i, a := range p.coeffs {
		out[i] = gf128.Multiply(a, c)
	}
	return Poly{coeffs: out}.normalized()
}

// DivMod returns (q, r) such that a = q*b + r and deg(r) < deg(b). b must be
// nonzero.
func DivMod(a, b Poly) (q, r Poly) {
	if b.IsZero() {
		panic("gf128poly: division by zero polynomial")
	}
	r = a.normalized()
	if r.Degree() < b.Degree() && !r.IsZero() {
		return Zero, r
	}
	bTop := b.LeadingCoefficient()
	bTopInv := bTop.Inverse()

	qCoeffs := make([]gf128.Element, 0)
	for !r.IsZero() && r.Degree() >= b.Degree() {
		shift := r.Degree() - b.Degree()
		c := gf128.Multiply(r.LeadingCoefficient(), bTopInv)

		for len(qCoeffs) <= shift {
			qCoeffs = append(qCoeffs, gf128.Zero)
		}
		qCoeffs[shift] = qCoeffs[shift].Add(c)

		term := Poly{coeffs: []gf128.Element{c}}.ShiftUp(shift)
		r = Add(r, Multiply(term, b))
	}
	return Poly{coeffs: qCoeffs}.normalized(), r
}

// Mod returns a mod b, i.e. the remainder from DivMod.
func Mod(a, b Poly) Poly {
	_, r := DivMod(a, b)
	return r
}

// Gcd returns the Euclidean greatest common divisor of a and b, defined up
// to a unit multiple. Callers that need a canonical value call EnsureMonic
// on the result.
func Gcd(a, b Poly) Poly {
	for !b.IsZero() {
		a, b = b, Mod(a, b)
	}
	return a
}

// One is the constant polynomial 1 (degree 0, coefficient gf128.One).
var One = Poly{coeffs: []gf128.Element{gf128.One}}

// PowMod returns p^e mod m via square-and-multiply, reducing after every
// squaring and every multiplication. e must be non-negative.
func PowMod(p Poly, e *big.Int, m Poly) Poly {
	result := One
	base := Mod(p, m)
	for i := 0; i < e.BitLen(); i++ {
		if e.Bit(i) == 1 {
			result = Mod(Multiply(result, base), m)
		}
		base = Mod(Multiply(base, base), m)
	}
	return result
}

// Equal reports whether p and q represent the same polynomial.
func Equal(p, q Poly) bool {
	p, q = p.normalized(), q.normalized()
	if len(p.coeffs) != len(q.coeffs) {
		return false
	}
	for i := range p.coeffs {
		if !p.coeffs[i].Equal(q.coeffs[i]) {
			return false
		}
	}
	return true
}

// Random returns a uniformly random polynomial of the given degree (leading
// coefficient forced nonzero so the degree is exact).
func Random(degree int) (Poly, error) {
	if degree < 0 {
		return Zero, fmt.Errorf("gf128poly: negative degree %d", degree)
	}
	coeffs := make([]gf128.Element, degree+1)
	for i := range coeffs {
		e, err := gf128.Random()
		if err != nil {
			return Zero, err
		}
		coeffs[i] = e
	}
	for coeffs[degree].IsZero() {
		e, err := gf128.Random()
		if err != nil {
			return Zero, err
		}
		coeffs[degree] = e
	}
	return Poly{coeffs: coeffs}, nil
}

// Coefficients returns a defensive copy of p's coefficients in ascending
// degree order.
func (p Poly) Coefficients() []gf128.Element {
	return append([]gf128.Element(nil), p.coeffs...)
}
