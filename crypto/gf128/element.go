// Package gf128 implements arithmetic in the finite field GF(2^128) defined
// by GCM's reduction polynomial x^128 + x^7 + x^2 + x + 1. It is GCM-specific,
// not a general finite-field library: the bit layout, field size, and
// reduction polynomial are all fixed.
package gf128

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/frereit/KauMA/errs"
)

// reductionLow is the low-order part of the reduction polynomial
// x^128 + x^7 + x^2 + x + 1, i.e. the coefficients of x^7, x^2, x, 1 packed
// with bit i meaning "coefficient of x^i" — the same convention Element
// itself uses for its low 8 bits.
const reductionLow = 1<<7 | 1<<2 | 1<<1 | 1

// Element is a value of GF(2^128). The zero value is the additive identity.
//
// Internal representation: bit i of the 128-bit value (lo holds bits 0..63,
// hi holds bits 64..127) is the coefficient of x^i. This is the single
// internal convention for the whole package; GCMBytes/FromGCMBytes and
// Exponents/FromExponents are the only functions that translate to and from
// it, per the bit-order hazard called out in the design notes — mixing this
// representation with the raw GCM byte layout anywhere else silently
// corrupts every multiply.
type Element struct {
	lo, hi uint64
}

// Zero is the additive identity.
var Zero = Element{}

// One is the multiplicative identity, the element whose only nonzero
// coefficient is x^0 (GCM bytes 0x80 00 … 00).
var One = Element{lo: 1}

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool {
	return e.lo == 0 && e.hi == 0
}

// Equal reports whether e and other represent the same field element.
func (e Element) Equal(other Element) bool {
	return e.lo == other.lo && e.hi == other.hi
}

// Add returns e + other. Field addition is bitwise XOR; a + a = 0 always.
func (e Element) Add(other Element) Element {
	return Element{lo: e.lo ^ other.lo, hi: e.hi ^ other.hi}
}

// shiftUp returns e multiplied by x, reduced modulo the field polynomial.
// Multiplying by x shifts every coefficient up one exponent; a coefficient
// that would land on x^128 is folded back in via the reduction polynomial's
// low-order terms, because x^128 ≡ x^7 + x^2 + x + 1 (mod R).
func (e Element) shiftUp() Element {
	carry := e.hi>>63 != 0
	hi := e.hi<<1 | e.lo>>63
	lo := e.lo << 1
	if carry {
		lo ^= reductionLow
	}
	return Element{lo: lo, hi: hi}
}

// Multiply returns the carry-less product of a and b, reduced modulo
// x^128 + x^7 + x^2 + x + 1.
//
// This is the portable bit-serial strategy: walk the bits of b from x^0
// upward, accumulating a into the running product whenever the matching bit
// of b is set, and shift a up by one exponent (with reduction) between
// steps. An intrinsic-based carry-less multiply is an acceptable substitute
// as long as it is byte-for-byte equivalent; this package only ships the
// reference path.
func Multiply(a, b Element) Element {
	var product Element
	shifted := a
	for i := 0; i < 128; i++ {
		var bit uint64
		if i < 64 {
			bit = (b.lo >> uint(i)) & 1
		} else {
			bit = (b.hi >> uint(i-64)) & 1
		}
		if bit != 0 {
			product = product.Add(shifted)
		}
		shifted = shifted.shiftUp()
	}
	return product
}

// Pow returns a raised to the power n via square-and-multiply over the
// binary expansion of n. n must be non-negative.
func Pow(a Element, n *big.Int) Element {
	result := One
	base := a
	for i := 0; i < n.BitLen(); i++ {
		if n.Bit(i) == 1 {
			result = Multiply(result, base)
		}
		base = Multiply(base, base)
	}
	return result
}

// invExponent is 2^128 - 2, the exponent that yields the multiplicative
// inverse of any nonzero element.
var invExponent = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(2))

// Inverse returns a^(-1) such that Multiply(a, a.Inverse()) == One.
// Inverse of the zero element is undefined; callers must check IsZero first.
func (e Element) Inverse() Element {
	return Pow(e, invExponent)
}

// Divide returns a / b, defined as a * b^(-1). b must be nonzero.
func Divide(a, b Element) Element {
	return Multiply(a, b.Inverse())
}

// Random returns a uniformly random field element drawn from a
// cryptographically adequate source. This is acceptable for cryptanalysis
// use (Cantor-Zassenhaus's random polynomial draws); it is not meant to
// stand in for key material.
func Random() (Element, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return Zero, fmt.Errorf("gf128: reading random bytes: %w", err)
	}
	return FromGCMBytes(buf[:])
}

// FromGCMBytes decodes a 16-byte GCM-convention block into a field element.
//
// Per NIST SP 800-38D §6.2, byte 0's most significant bit is the coefficient
// of x^0, byte 0's least significant bit is the coefficient of x^7, byte 1's
// MSB is x^8, and so on through byte 15's LSB at x^127 — the bit order
// within each byte is reversed relative to a normal big-endian reading.
func FromGCMBytes(b []byte) (Element, error) {
	if len(b) != 16 {
		return Zero, fmt.Errorf("gf128: gcm bytes must be 16 bytes, got %d: %w", len(b), errs.ErrInvalidLength)
	}
	var e Element
	for byteIdx := 0; byteIdx < 16; byteIdx++ {
		v := b[byteIdx]
		for p := 0; p < 8; p++ { // p is the bit position within the byte, LSB = 0
			if v&(1<<uint(p)) == 0 {
				continue
			}
			exp := byteIdx*8 + (7 - p)
			setBit(&e, exp)
		}
	}
	return e, nil
}

// GCMBytes encodes e into the 16-byte GCM convention described in
// FromGCMBytes.
func (e Element) GCMBytes() []byte {
	out := make([]byte, 16)
	for exp := 0; exp < 128; exp++ {
		if !bitSet(e, exp) {
			continue
		}
		byteIdx := exp / 8
		k := exp % 8
		p := 7 - k
		out[byteIdx] |= 1 << uint(p)
	}
	return out
}

// FromExponents builds a field element from an unordered set of exponents
// (positions in 0..127 whose coefficient is 1). Any exponent outside that
// range is rejected.
func FromExponents(exponents []int) (Element, error) {
	var e Element
	for _, exp := range exponents {
		if exp < 0 || exp > 127 {
			return Zero, fmt.Errorf("gf128: exponent %d out of range: %w", exp, errs.ErrInvalidExponent)
		}
		setBit(&e, exp)
	}
	return e, nil
}

// Exponents returns the set of exponents (0..127) whose coefficient in e is
// 1, in ascending order.
func (e Element) Exponents() []int {
	var exps []int
	for exp := 0; exp < 128; exp++ {
		if bitSet(e, exp) {
			exps = append(exps, exp)
		}
	}
	return exps
}

func setBit(e *Element, exp int) {
	if exp < 64 {
		e.lo |= 1 << uint(exp)
	} else {
		e.hi |= 1 << uint(exp-64)
	}
}

func bitSet(e Element, exp int) bool {
	if exp < 64 {
		return e.lo&(1<<uint(exp)) != 0
	}
	return e.hi&(1<<uint(exp-64)) != 0
}

// String renders e as its GCM-byte hex encoding, for diagnostics.
func (e Element) String() string {
	return fmt.Sprintf("%x", e.GCMBytes())
}
