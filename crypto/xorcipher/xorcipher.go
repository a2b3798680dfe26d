// Package xorcipher implements the toy block cipher the padding-oracle
// exercise (crypto/paddingoracle) chains in CBC mode. The oracle's own
// decryption rule is fixed by definition to P = Q ⊕ C ⊕ K — the underlying
// per-block primitive is immaterial to the padding-oracle vulnerability being
// demonstrated, so the exercise pins it to plain XOR-with-key rather than a
// real AES round. XOR is its own inverse, so Engine needs no separate
// decryption path.
package xorcipher

import (
	"fmt"

	"github.com/frereit/KauMA/crypto"
	"github.com/frereit/KauMA/crypto/params"
)

// BlockSize is the fixed block size this cipher operates on, matching the
// 16-byte blocks the padding-oracle wire protocol exchanges.
const BlockSize = 16

// Engine adapts the XOR-with-key primitive to crypto.BlockCipher so it can
// be wrapped by modes.CBCBlockCipher and modes.PaddedBufferedBlockCipher the
// same way aescipher.Engine wraps AES for the GCM pipeline.
type Engine struct {
	key []byte
}

// New constructs an uninitialized Engine; call Init before use.
func New() *Engine {
	return &Engine{}
}

// Init sets the key. forEncryption is accepted for interface compatibility
// but ignored: XOR is self-inverse, so encryption and decryption are the
// same operation.
func (e *Engine) Init(forEncryption bool, cipherParams crypto.CipherParameters) {
	kp, ok := cipherParams.(*params.KeyParameter)
	if !ok {
		panic("xorcipher: Init requires a *params.KeyParameter")
	}
	if len(kp.GetKey()) != BlockSize {
		panic(fmt.Sprintf("xorcipher: key must be %d bytes, got %d", BlockSize, len(kp.GetKey())))
	}
	e.key = kp.GetKey()
}

// GetAlgorithmName returns "XOR".
func (e *Engine) GetAlgorithmName() string {
	return "XOR"
}

// GetBlockSize returns the fixed 16-byte block size.
func (e *Engine) GetBlockSize() int {
	return BlockSize
}

// ProcessBlock XORs one block with the key.
func (e *Engine) ProcessBlock(in []byte, inOff int, out []byte, outOff int) int {
	for i := 0; i < BlockSize; i++ {
		out[outOff+i] = in[inOff+i] ^ e.key[i]
	}
	return BlockSize
}

// Reset is a no-op: this cipher has no per-block chaining state of its own.
func (e *Engine) Reset() {}

var _ crypto.BlockCipher = (*Engine)(nil)
