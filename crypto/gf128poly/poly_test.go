package gf128poly

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frereit/KauMA/crypto/gf128"
)

func elem(t *testing.T, exps ...int) gf128.Element {
	t.Helper()
	e, err := gf128.FromExponents(exps)
	require.NoError(t, err)
	return e
}

func TestDivModReconstructsDividend(t *testing.T) {
	// b is a degree-3 divisor, a is a degree-1 factor; f = a*b must divmod
	// back to (b, 0) exactly, mirroring the divmod fixture shape described
	// for this ring (a monic linear factor times a cubic).
	b := New([]gf128.Element{elem(t, 0), elem(t, 5), elem(t, 10), gf128.One})
	a := New([]gf128.Element{elem(t, 3), gf128.One})

	f := Multiply(a, b)
	q, r := DivMod(f, a)

	assert.True(t, Equal(q, b))
	assert.True(t, r.IsZero())
}

func TestDivModDegreeInvariant(t *testing.T) {
	a := New([]gf128.Element{elem(t, 1), elem(t, 2), elem(t, 3), gf128.One})
	b := New([]gf128.Element{elem(t, 4), gf128.One})

	q, r := DivMod(a, b)
	reconstructed := Add(Multiply(q, b), r)

	assert.True(t, Equal(reconstructed, a))
	assert.Less(t, r.Degree(), b.Degree())
}

func TestDivModSmallerDividend(t *testing.T) {
	a := New([]gf128.Element{elem(t, 1)})
	b := New([]gf128.Element{elem(t, 1), elem(t, 2), gf128.One})

	q, r := DivMod(a, b)
	assert.True(t, q.IsZero())
	assert.True(t, Equal(r, a))
}

func TestGcdDistributesOverCommonFactor(t *testing.T) {
	p := New([]gf128.Element{elem(t, 1), gf128.One})
	q := New([]gf128.Element{elem(t, 2), gf128.One})
	r := New([]gf128.Element{elem(t, 3), gf128.One})

	left := Gcd(Multiply(p, r), Multiply(q, r)).EnsureMonic()
	right := Multiply(Gcd(p, q).EnsureMonic(), r).EnsureMonic()
	assert.True(t, Equal(left, right))
}

func TestEnsureMonic(t *testing.T) {
	lead := elem(t, 3, 7)
	p := New([]gf128.Element{elem(t, 1), lead})

	monic := p.EnsureMonic()
	assert.True(t, monic.IsMonic())
	assert.Equal(t, gf128.One, monic.LeadingCoefficient())
}

func TestPowMod(t *testing.T) {
	m := New([]gf128.Element{elem(t, 0), gf128.One, gf128.One}) // X^2 + X + 1
	p := New([]gf128.Element{gf128.One, gf128.One})             // X + 1

	got := PowMod(p, big.NewInt(3), m)
	want := Mod(Multiply(Multiply(p, p), p), m)
	assert.True(t, Equal(got, want))
}

func TestAddIsSelfInverse(t *testing.T) {
	p := New([]gf128.Element{elem(t, 1), elem(t, 2), gf128.One})
	assert.True(t, Add(p, p).IsZero())
}

func TestShiftUpPrependsZeros(t *testing.T) {
	p := New([]gf128.Element{gf128.One})
	shifted := p.ShiftUp(3)
	assert.Equal(t, 3, shifted.Degree())
	assert.True(t, shifted.Coefficient(3).Equal(gf128.One))
	assert.True(t, shifted.Coefficient(0).IsZero())
}
