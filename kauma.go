package kauma

import (
	"context"
	"errors"

	"github.com/frereit/KauMA/crypto/aescipher"
	"github.com/frereit/KauMA/crypto/gcm"
	"github.com/frereit/KauMA/crypto/gcm/forgery"
	"github.com/frereit/KauMA/crypto/paddingoracle"
	"github.com/frereit/KauMA/crypto/params"
)

const gcmKeySize = 16 // AES-128: 128 bits = 16 bytes

// GCMEncrypt provides a high-level API for AES-128-GCM encryption and tag
// generation. The nonce may be any length; 12 bytes is the common case.
//
// There is deliberately no matching GCMDecrypt: this toolbox produces and
// forges tags, it never verifies them.
func GCMEncrypt(key, nonce, associatedData, plaintext []byte) (*gcm.Result, error) {
	if len(key) != gcmKeySize {
		return nil, errors.New("GCM encryption requires a 128 bit (16 byte) key")
	}

	enc := gcm.NewEncryptor(aescipher.New())
	return enc.Seal(params.NewAEADParameters(params.NewKeyParameter(key), 128, nonce, associatedData), plaintext)
}

// RecoverAuthTag provides a high-level API for the four-message nonce-reuse
// forgery: given three tagged messages observed under one reused (key, nonce)
// pair and a fourth untagged message, it recovers the GHASH key and returns a
// valid tag for the fourth message.
func RecoverAuthTag(m1, m2, m3 forgery.Tagged, m4 forgery.Message) ([16]byte, error) {
	return forgery.Recover(m1, m2, m3, m4)
}

// RecoverCBCPlaintext provides a high-level API for the padding-oracle
// attack: it recovers the plaintext of a CBC ciphertext by querying the
// padding oracle listening at addr (host:port), one fresh connection per
// ciphertext block.
func RecoverCBCPlaintext(ctx context.Context, addr string, iv, ciphertext []byte) ([]byte, error) {
	return paddingoracle.NewClient(addr).RecoverPlaintext(ctx, iv, ciphertext)
}
