// Package gcm implements the GHASH universal hash and the AES-GCM-style
// encryption/authentication pipeline built on top of the gf128 field.
package gcm

import (
	"fmt"

	"github.com/frereit/KauMA/crypto/gf128"
	"github.com/frereit/KauMA/errs"
	"github.com/frereit/KauMA/util"
)

// GHASH is the streaming universal hash from GCM: associated data is
// absorbed first, then ciphertext, then a final length block, all under a
// single GF(2^128) auth key H.
//
// GHASH state is not safe for concurrent use; each instance is owned
// exclusively by its caller for its lifetime.
type GHASH struct {
	authTag   gf128.Element
	authKey   gf128.Element
	adBitLen  uint64
	ctBitLen  uint64
	pending   []byte
	finalized bool
}

// New constructs a GHASH instance over the given associated data, using H as
// the auth key (the block-cipher encryption of the zero block). Associated
// data is absorbed immediately, padded with zeros to a block boundary if
// needed.
func New(associatedData []byte, h gf128.Element) *GHASH {
	g := &GHASH{authKey: h}
	g.absorbPadded(associatedData)
	g.adBitLen = uint64(len(associatedData)) * 8
	return g
}

// absorbPadded processes data block by block, zero-padding the final partial
// block, without touching ctBitLen. Used for both associated data and the
// finalize-time padding of leftover ciphertext.
func (g *GHASH) absorbPadded(data []byte) {
	for len(data) > 0 {
		var block [16]byte
		n := copy(block[:], data)
		g.absorbBlock(block[:])
		if n >= len(data) {
			break
		}
		data = data[n:]
	}
}

func (g *GHASH) absorbBlock(block []byte) {
	b, err := gf128.FromGCMBytes(block)
	if err != nil {
		// block is always exactly 16 bytes by construction of every caller.
		panic(fmt.Sprintf("gcm: internal invariant violated: %v", err))
	}
	g.authTag = gf128.Multiply(g.authTag.Add(b), g.authKey)
}

// Update absorbs a chunk of ciphertext. Chunks need not be block-aligned;
// GHASH buffers leftover bytes internally (pending.len is always < 16
// between calls) until a full block is available. Returns ErrAlreadyFinalized
// if called after Finalize.
func (g *GHASH) Update(ciphertextChunk []byte) error {
	if g.finalized {
		return fmt.Errorf("ghash: update after finalize: %w", errs.ErrAlreadyFinalized)
	}
	g.pending = append(g.pending, ciphertextChunk...)
	for len(g.pending) >= 16 {
		g.absorbBlock(g.pending[:16])
		g.ctBitLen += 128
		g.pending = g.pending[16:]
	}
	return nil
}

// Finalize pads and absorbs any leftover ciphertext, absorbs the final
// length block (bit-lengths of associated data and ciphertext, each a
// big-endian u64), marks the instance finalized, and returns the resulting
// tag as GCM bytes. Calling Finalize more than once returns the same tag
// without re-absorbing the length block twice.
func (g *GHASH) Finalize() []byte {
	if g.finalized {
		return g.authTag.GCMBytes()
	}
	if len(g.pending) > 0 {
		// ctBitLen counts the real ciphertext bits of the partial block,
		// never the zero padding.
		g.ctBitLen += uint64(len(g.pending)) * 8
		g.absorbPadded(g.pending)
		g.pending = nil
	}

	var lengthBlock [16]byte
	util.Uint64ToBigEndian(g.adBitLen, lengthBlock[:], 0)
	util.Uint64ToBigEndian(g.ctBitLen, lengthBlock[:], 8)
	g.absorbBlock(lengthBlock[:])

	g.finalized = true
	return g.authTag.GCMBytes()
}

// Sum computes GHASH_H(associatedData, ciphertext) in one call — a
// convenience wrapper over New/Update/Finalize for callers (such as the
// forgery recovery package) that don't need streaming.
func Sum(associatedData, ciphertext []byte, h gf128.Element) []byte {
	g := New(associatedData, h)
	_ = g.Update(ciphertext) // a fresh GHASH is never finalized
	return g.Finalize()
}
