// Package forgery implements the GCM nonce-reuse tag-forgery recovery:
// given several tagged messages that share a (key, nonce) pair, recover the
// GHASH key H by polynomial factorization and forge a valid tag for a
// ciphertext the legitimate sender never saw.
package forgery

import (
	"fmt"
	"math/big"

	"github.com/frereit/KauMA/crypto/gcm"
	"github.com/frereit/KauMA/crypto/gcm/cantorzassenhaus"
	"github.com/frereit/KauMA/crypto/gf128"
	"github.com/frereit/KauMA/crypto/gf128poly"
	"github.com/frereit/KauMA/errs"
	"github.com/frereit/KauMA/util"
)

// Message is one GCM output sharing the (key, nonce) pair under attack.
type Message struct {
	Ciphertext     []byte
	AssociatedData []byte
}

// Tagged pairs a Message with the tag it produced.
type Tagged struct {
	Message
	Tag [16]byte
}

// blocksOf splits associated data then ciphertext into 16-byte,
// zero-padded GHASH blocks, matching the block sequence GHASH itself
// absorbs (excluding the final length block).
func blocksOf(m Message) []gf128.Element {
	var blocks []gf128.Element
	for _, buf := range [][]byte{m.AssociatedData, m.Ciphertext} {
		for i := 0; i < len(buf); i += 16 {
			var block [16]byte
			end := i + 16
			if end > len(buf) {
				end = len(buf)
			}
			copy(block[:], buf[i:end])
			e, err := gf128.FromGCMBytes(block[:])
			if err != nil {
				panic(err) // block is always exactly 16 bytes by construction
			}
			blocks = append(blocks, e)
		}
	}
	return blocks
}

// ghashPoly builds P(X) such that P(H) = GHASH_H(m.AssociatedData,
// m.Ciphertext). Unrolling the streaming recurrence in
// ghash.go (tag_0 = 0; tag_i = (tag_{i-1} + B_i) * H for the L data blocks,
// then one more multiply-by-H to absorb the length block) gives
// GHASH_H = Σ_{i=1..L} B_i * H^(L-i+2) + length * H^1: block i (1-indexed)
// sits at exponent L-i+2, and the length block sits at exponent 1, not the
// constant term.
func ghashPoly(m Message) gf128poly.Poly {
	blocks := blocksOf(m)
	l := len(blocks)

	var lengthBlock [16]byte
	util.Uint64ToBigEndian(uint64(len(m.AssociatedData))*8, lengthBlock[:], 0)
	util.Uint64ToBigEndian(uint64(len(m.Ciphertext))*8, lengthBlock[:], 8)
	lengthElem, err := gf128.FromGCMBytes(lengthBlock[:])
	if err != nil {
		panic(err)
	}

	coeffs := make([]gf128.Element, l+2)
	coeffs[1] = lengthElem
	for j, b := range blocks {
		// block j (0-indexed, i.e. block i = j+1) sits at exponent
		// L-(j+1)+2 = L-j+1, i.e. coeffs[l-j+1].
		coeffs[l-j+1] = b
	}
	return gf128poly.New(coeffs)
}

// candidatesFromCollision builds f(X) = (P1+P2)(X) + (t1+t2) from two
// tagged messages sharing (K, IV), reduces it to the product of its linear
// factors, and factors that to find every candidate H. Since addition is
// XOR, f(H) = 0: the true H is always among the roots.
func candidatesFromCollision(m1, m2 Tagged) ([]gf128.Element, error) {
	f := gf128poly.Add(ghashPoly(m1.Message), ghashPoly(m2.Message))

	xoredTags := xor16(m1.Tag, m2.Tag)
	tagSum, err := gf128.FromGCMBytes(xoredTags[:])
	if err != nil {
		return nil, err
	}
	f = gf128poly.Add(f, gf128poly.New([]gf128.Element{tagSum}))

	// f generally also has irreducible factors of degree > 1, which Zeros
	// cannot split. gcd(f, X^(2^128) - X) keeps exactly the distinct linear
	// factors of f, i.e. one per root in GF(2^128).
	if f.Degree() > 0 {
		x := gf128poly.New([]gf128.Element{gf128.Zero, gf128.One})
		xq := gf128poly.PowMod(x, new(big.Int).Lsh(big.NewInt(1), 128), f)
		f = gf128poly.Gcd(f, gf128poly.Add(xq, x))
	}

	candidates, err := cantorzassenhaus.Zeros(f, cantorzassenhaus.CryptoRandomSource)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("forgery: factorization produced no roots: %w", errs.ErrNoCandidates)
	}
	return candidates, nil
}

// maskFor returns E_K(Y0) implied by candidate h and tagged message m: the
// XOR of h's GHASH over m with m's own tag.
func maskFor(h gf128.Element, m Tagged) [16]byte {
	ghashed := gcm.Sum(m.AssociatedData, m.Ciphertext, h)
	return xor16(m.Tag, to16(ghashed))
}

// Recover implements the four-message forgery: given three tagged
// messages sharing (K, IV) and a fourth untagged message, it recovers H,
// disambiguates it against the third message, and forges a tag for the
// fourth.
func Recover(m1, m2, m3 Tagged, m4 Message) ([16]byte, error) {
	candidates, err := candidatesFromCollision(m1, m2)
	if err != nil {
		return [16]byte{}, err
	}

	var matched *gf128.Element
	var mask [16]byte
	matches := 0
	for _, h := range candidates {
		candidateMask := maskFor(h, m1)
		t3Candidate := xor16(to16(gcm.Sum(m3.AssociatedData, m3.Ciphertext, h)), candidateMask)
		if t3Candidate == m3.Tag {
			matches++
			hCopy := h
			matched = &hCopy
			mask = candidateMask
		}
	}
	if matches != 1 {
		return [16]byte{}, fmt.Errorf("forgery: %d candidates validated against the disambiguation message, want exactly 1: %w", matches, errs.ErrAmbiguousRecovery)
	}

	tag := xor16(to16(gcm.Sum(m4.AssociatedData, m4.Ciphertext, *matched)), mask)
	return tag, nil
}

// RecoverUnverified implements the earlier, three-message forgery variant:
// given two tagged messages sharing (K, IV) and a third untagged message, it
// recovers H candidates and returns a tag forged from the first candidate
// WITHOUT verifying it against any further message. Per the design notes,
// this path is kept distinct and explicitly named so callers cannot reach
// an unverified forgery by accident; prefer Recover whenever a third tagged
// message is available.
func RecoverUnverified(m1, m2 Tagged, m3 Message) ([16]byte, gf128.Element, error) {
	candidates, err := candidatesFromCollision(m1, m2)
	if err != nil {
		return [16]byte{}, gf128.Zero, err
	}
	h := candidates[0]
	mask := maskFor(h, m1)
	tag := xor16(to16(gcm.Sum(m3.AssociatedData, m3.Ciphertext, h)), mask)
	return tag, h, nil
}

func to16(b []byte) [16]byte {
	var out [16]byte
	copy(out[:], b)
	return out
}

func xor16(a, b [16]byte) [16]byte {
	var out [16]byte
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}
