package gcm

import (
	"fmt"

	"github.com/frereit/KauMA/crypto"
	"github.com/frereit/KauMA/crypto/gf128"
	"github.com/frereit/KauMA/crypto/params"
	"github.com/frereit/KauMA/util"
)

// Result is the output of an AES-GCM-style encryption: ciphertext,
// associated data, and the 16-byte auth tag. Y0 and H are also exposed for
// diagnostic and test-fixture use; ordinary callers only need the three
// fields above.
type Result struct {
	Ciphertext     []byte
	AssociatedData []byte
	Tag            [16]byte
	Y0             [16]byte
	H              gf128.Element
}

// Encryptor drives the CTR keystream and GHASH tag computation for one
// block cipher instance. It owns that cipher's key schedule for its
// lifetime and is not safe for concurrent use.
//
// This package never implements decryption or tag verification: only
// encryption and tag generation are in scope, and forged tags are produced
// by the forgery package, never checked by this one.
type Encryptor struct {
	cipher crypto.BlockCipher
}

// NewEncryptor wraps an already-constructed, uninitialized block cipher
// (e.g. aescipher.New()).
func NewEncryptor(cipher crypto.BlockCipher) *Encryptor {
	return &Encryptor{cipher: cipher}
}

// Seal encrypts plaintext under the key and nonce carried in aead, with the
// given associated data authenticated but not encrypted, and returns the
// ciphertext and tag.
func (e *Encryptor) Seal(aead *params.AEADParameters, plaintext []byte) (*Result, error) {
	e.cipher.Init(true, aead.GetKey())
	if blockSize := e.cipher.GetBlockSize(); blockSize != 16 {
		return nil, fmt.Errorf("gcm: block cipher must have a 16-byte block size, got %d", blockSize)
	}

	h, err := e.authKey()
	if err != nil {
		return nil, err
	}

	y0 := e.deriveY0(aead.GetNonce(), h)
	ciphertext := e.ctrKeystreamXOR(y0, plaintext)
	tagMask := e.encryptBlock(y0)
	ghashTag := Sum(aead.GetAssociatedText(), ciphertext, h)

	var tag [16]byte
	for i := range tag {
		tag[i] = ghashTag[i] ^ tagMask[i]
	}

	return &Result{
		Ciphertext:     ciphertext,
		AssociatedData: aead.GetAssociatedText(),
		Tag:            tag,
		Y0:             y0,
		H:              h,
	}, nil
}

// authKey computes H = E_K(0^128) under the already-initialized cipher.
func (e *Encryptor) authKey() (gf128.Element, error) {
	var zero [16]byte
	hBytes := e.encryptBlock(zero)
	return gf128.FromGCMBytes(hBytes[:])
}

// deriveY0 computes the counter-block seed: nonce||0x00000001 for a
// 12-byte nonce, or GHASH(nonce, empty AD, H) for any other length.
func (e *Encryptor) deriveY0(nonce []byte, h gf128.Element) [16]byte {
	var y0 [16]byte
	if len(nonce) == 12 {
		copy(y0[:12], nonce)
		y0[15] = 1
		return y0
	}
	copy(y0[:], Sum(nil, nonce, h))
	return y0
}

// ctrKeystreamXOR XORs plaintext with the CTR keystream derived from y0,
// using counter values y0+1, y0+2, ... (y0 itself is reserved for the tag
// mask).
func (e *Encryptor) ctrKeystreamXOR(y0 [16]byte, plaintext []byte) []byte {
	out := make([]byte, len(plaintext))
	counter := y0
	for off := 0; off < len(plaintext); off += 16 {
		counter = incrementCounter(counter)
		ks := e.encryptBlock(counter)
		end := off + 16
		if end > len(plaintext) {
			end = len(plaintext)
		}
		for i := off; i < end; i++ {
			out[i] = plaintext[i] ^ ks[i-off]
		}
	}
	return out
}

// incrementCounter returns block with its last 4 bytes, read as a
// big-endian u32, incremented by one with 32-bit wraparound. The first 12
// bytes are untouched.
func incrementCounter(block [16]byte) [16]byte {
	c := util.BigEndianToUint32(block[:], 12)
	c++
	util.Uint32ToBigEndian(c, block[:], 12)
	return block
}

func (e *Encryptor) encryptBlock(block [16]byte) [16]byte {
	var out [16]byte
	e.cipher.ProcessBlock(block[:], 0, out[:], 0)
	return out
}
