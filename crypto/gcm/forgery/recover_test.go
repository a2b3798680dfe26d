package forgery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frereit/KauMA/crypto/aescipher"
	"github.com/frereit/KauMA/crypto/gcm"
	"github.com/frereit/KauMA/crypto/params"
)

// seal encrypts plaintext/aad under a fixed (key, nonce) pair and returns a
// Tagged message built from the result, simulating an attacker who observed
// several ciphertexts from one nonce-reuse victim.
func seal(t *testing.T, key, nonce, aad, plaintext []byte) Tagged {
	t.Helper()
	enc := gcm.NewEncryptor(aescipher.New())
	result, err := enc.Seal(params.NewAEADParameters(params.NewKeyParameter(key), 128, nonce, aad), plaintext)
	require.NoError(t, err)
	return Tagged{
		Message: Message{Ciphertext: result.Ciphertext, AssociatedData: result.AssociatedData},
		Tag:     result.Tag,
	}
}

func TestRecoverForgesValidTag(t *testing.T) {
	key := []byte("0123456789abcdef")
	nonce := []byte("uniquenonce!")

	// plaintext lengths are deliberately not multiples of 16, so the forgery
	// polynomial and the tags it must match both cover the partial-block
	// length accounting.

	m1 := seal(t, key, nonce, []byte("aad one"), []byte("the quick brown fox jumps over"))
	m2 := seal(t, key, nonce, []byte("aad two, a bit longer than one"), []byte("the lazy dog sleeps under a tr"))
	m3 := seal(t, key, nonce, []byte("third"), []byte("disambiguation plaintext......."))

	// m4 is a genuine GCM output whose tag the attacker never observed; the
	// forgery must reproduce that exact tag from (c4, a4) alone.
	m4 := seal(t, key, nonce, []byte("forged header"), []byte("the fourth, never-tagged msg.."))
	target := Message{AssociatedData: m4.AssociatedData, Ciphertext: m4.Ciphertext}

	forgedTag, err := Recover(m1, m2, m3, target)
	require.NoError(t, err)

	assert.Equal(t, m4.Tag, forgedTag)
}

func TestRecoverUnverifiedForgesValidTag(t *testing.T) {
	key := []byte("fedcba9876543210")
	nonce := []byte("reusednonce!")

	m1 := seal(t, key, nonce, nil, []byte("message one for the collision.."))
	m2 := seal(t, key, nonce, []byte("aad"), []byte("message two for the collision.."))

	target := Message{Ciphertext: []byte("some attacker-chosen ciphertext")}

	_, h, err := RecoverUnverified(m1, m2, target)
	require.NoError(t, err)
	assert.False(t, h.IsZero())

	// RecoverUnverified may land on a spurious candidate, so the forged tag
	// for an arbitrary target is not guaranteed correct. Forging m1 itself,
	// however, must reproduce m1's own tag for ANY candidate: the mask is
	// defined as GHASH_h(m1) XOR t1, so the two GHASH terms cancel.
	selfTag, _, err := RecoverUnverified(m1, m2, m1.Message)
	require.NoError(t, err)
	assert.Equal(t, m1.Tag, selfTag)
}
