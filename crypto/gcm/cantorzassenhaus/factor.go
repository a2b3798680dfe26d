// Package cantorzassenhaus implements the Cantor-Zassenhaus probabilistic
// factorization of a squarefree polynomial in GF(2^128)[X] whose irreducible
// factors are all linear, returning the list of its roots.
package cantorzassenhaus

import (
	"math/big"

	"github.com/frereit/KauMA/crypto/gf128"
	"github.com/frereit/KauMA/crypto/gf128poly"
)

// cubeRootExponent is (2^128 - 1) / 3, used by Split to project a random
// element into one of the three cube-root-of-unity cosets.
var cubeRootExponent = func() *big.Int {
	order := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	e := new(big.Int).Div(order, big.NewInt(3))
	return e
}()

// RandomSource draws uniformly random field elements. gf128.Random backs
// the production path; tests inject a deterministic sequence so their
// known-roots fixtures reproduce without an unbounded retry loop.
type RandomSource interface {
	RandomElement() (gf128.Element, error)
}

// cryptoRandomSource is the default RandomSource, backed by gf128.Random.
type cryptoRandomSource struct{}

func (cryptoRandomSource) RandomElement() (gf128.Element, error) {
	return gf128.Random()
}

// CryptoRandomSource is the production RandomSource, drawing from a
// cryptographically adequate source via gf128.Random.
var CryptoRandomSource RandomSource = cryptoRandomSource{}

// Zeros returns the roots of f, assumed squarefree with all irreducible
// factors linear. It normalizes f monic, then repeatedly splits any
// non-linear factor via Split until every factor has degree 1.
func Zeros(f gf128poly.Poly, rng RandomSource) ([]gf128.Element, error) {
	f = f.EnsureMonic()
	if f.IsZero() || f.Degree() == 0 {
		// constants have no roots; without this check a unit factor would
		// never split and the worklist loop below would spin forever.
		return nil, nil
	}

	worklist := []gf128poly.Poly{f}
	var final []gf128poly.Poly

	for len(worklist) > 0 {
		g := worklist[0]
		worklist = worklist[1:]

		if g.Degree() == 1 {
			final = append(final, g)
			continue
		}

		for {
			q, rest, err := Split(f, g, rng)
			if err != nil {
				return nil, err
			}
			if q == nil {
				continue // cz_split failure: retry with fresh randomness
			}
			worklist = append(worklist, *q, *rest)
			break
		}
	}

	roots := make([]gf128.Element, 0, len(final))
	for _, linear := range final {
		// X + r has coefficients [r, one]; char-2 means +r = -r, so the root
		// is simply the constant term.
		roots = append(roots, linear.Coefficient(0))
	}
	return roots, nil
}

// Split attempts one Cantor-Zassenhaus split of p (a factor of the original
// polynomial f) using a random polynomial of degree deg(f)-1. On success it
// returns two non-trivial, monic factors of p whose product is p (up to
// units). On failure — when the computed gcd is trivial (1 or p itself) —
// it returns (nil, nil, nil): this is expected, not an error, and the
// caller retries with fresh randomness.
func Split(f, p gf128poly.Poly, rng RandomSource) (q, rest *gf128poly.Poly, err error) {
	degree := f.Degree() - 1
	if degree < 0 {
		degree = 0
	}
	h, err := randomPoly(degree, rng)
	if err != nil {
		return nil, nil, err
	}

	g := gf128poly.PowMod(h, cubeRootExponent, f)
	g = gf128poly.Add(g, gf128poly.One) // subtraction is addition in char 2

	candidate := gf128poly.Gcd(p, g).EnsureMonic()
	pMonic := p.EnsureMonic()

	if candidate.IsZero() || gf128poly.Equal(candidate, gf128poly.One) || gf128poly.Equal(candidate, pMonic) {
		return nil, nil, nil
	}

	quotient, _ := gf128poly.DivMod(pMonic, candidate) // gcd(p, g) always divides p exactly
	quotient = quotient.EnsureMonic()
	return &candidate, &quotient, nil
}

func randomPoly(degree int, rng RandomSource) (gf128poly.Poly, error) {
	coeffs := make([]gf128.Element, degree+1)
	for i := range coeffs {
		e, err := rng.RandomElement()
		if err != nil {
			return gf128poly.Zero, err
		}
		coeffs[i] = e
	}
	return gf128poly.New(coeffs), nil
}
