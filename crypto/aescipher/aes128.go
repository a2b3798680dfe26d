// Package aescipher adapts the standard library's AES-128 implementation to
// the shared crypto.BlockCipher interface. AES itself is treated as an
// external capability — this package is the thin seam that lets the GCM
// pipeline and padding-oracle test fixtures consume "encrypt one 16-byte
// block under a fixed key" without depending on any particular cipher.
package aescipher

import (
	"crypto/aes"

	"github.com/frereit/KauMA/crypto"
	"github.com/frereit/KauMA/crypto/params"
)

// Engine wraps crypto/aes's block.Cipher behind crypto.BlockCipher. It
// supports encryption only (ProcessBlock always encrypts) — this toolbox
// never needs AES decryption, only single-block encryption under a fixed
// key, matching the GCM core's "encrypt_block capability" boundary.
type Engine struct {
	block cipherBlock
}

type cipherBlock interface {
	BlockSize() int
	Encrypt(dst, src []byte)
}

// New constructs an uninitialized AES engine; call Init before use.
func New() *Engine {
	return &Engine{}
}

// Init sets the key. forEncryption is accepted for interface compatibility
// but ignored: this adapter only ever encrypts blocks, which is also what
// AES-CTR keystream generation and the GCM tag computation both need.
func (e *Engine) Init(forEncryption bool, cipherParams crypto.CipherParameters) {
	kp, ok := cipherParams.(*params.KeyParameter)
	if !ok {
		panic("aescipher: Init requires a *params.KeyParameter")
	}
	block, err := aes.NewCipher(kp.GetKey())
	if err != nil {
		panic(err)
	}
	e.block = block
}

// GetAlgorithmName returns "AES".
func (e *Engine) GetAlgorithmName() string {
	return "AES"
}

// GetBlockSize returns 16, the AES block size in bytes.
func (e *Engine) GetBlockSize() int {
	return aes.BlockSize
}

// ProcessBlock encrypts one 16-byte block.
func (e *Engine) ProcessBlock(in []byte, inOff int, out []byte, outOff int) int {
	e.block.Encrypt(out[outOff:outOff+aes.BlockSize], in[inOff:inOff+aes.BlockSize])
	return aes.BlockSize
}

// Reset is a no-op: AES has no per-block chaining state of its own.
func (e *Engine) Reset() {}

var _ crypto.BlockCipher = (*Engine)(nil)
