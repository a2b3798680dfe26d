package gcm

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frereit/KauMA/crypto/aescipher"
	"github.com/frereit/KauMA/crypto/params"
)

func decodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// TestSealMatchesNISTTestCase2 checks against the widely published NIST GCM
// test vector (McGrew/Viega test case 2): an all-zero key, 96-bit IV, and
// one all-zero plaintext block with no associated data.
func TestSealMatchesNISTTestCase2(t *testing.T) {
	key := decodeHex(t, "00000000000000000000000000000000")
	nonce := decodeHex(t, "000000000000000000000000")
	plaintext := decodeHex(t, "00000000000000000000000000000000")

	enc := NewEncryptor(aescipher.New())
	result, err := enc.Seal(params.NewAEADParameters(params.NewKeyParameter(key), 128, nonce, nil), plaintext)
	require.NoError(t, err)

	assert.Equal(t, "0388dace60b6a392f328c2b971b2fe78", hex.EncodeToString(result.Ciphertext))
	assert.Equal(t, "ab6e47d42cec13bdf53a67b21257bddf", hex.EncodeToString(result.Tag[:]))
}

func TestSealWithAssociatedData(t *testing.T) {
	key := make([]byte, 16)
	nonce := make([]byte, 12)
	nonce[11] = 1
	aad := []byte("header")
	plaintext := []byte("the quick brown fox jumps")

	enc := NewEncryptor(aescipher.New())
	result, err := enc.Seal(params.NewAEADParameters(params.NewKeyParameter(key), 128, nonce, aad), plaintext)
	require.NoError(t, err)
	assert.Len(t, result.Ciphertext, len(plaintext))
	assert.Equal(t, aad, result.AssociatedData)

	// changing the AAD must change the tag even though ciphertext is identical.
	enc2 := NewEncryptor(aescipher.New())
	result2, err := enc2.Seal(params.NewAEADParameters(params.NewKeyParameter(key), 128, nonce, []byte("different")), plaintext)
	require.NoError(t, err)
	assert.Equal(t, result.Ciphertext, result2.Ciphertext)
	assert.NotEqual(t, result.Tag, result2.Tag)
}

func TestSealNonStandardNonceLength(t *testing.T) {
	key := make([]byte, 16)
	nonce := make([]byte, 7) // not 12 bytes: exercises the GHASH-derived Y0 path
	plaintext := []byte("some plaintext spanning more than one block.....")

	enc := NewEncryptor(aescipher.New())
	result, err := enc.Seal(params.NewAEADParameters(params.NewKeyParameter(key), 128, nonce, nil), plaintext)
	require.NoError(t, err)
	assert.Len(t, result.Ciphertext, len(plaintext))
	assert.NotEqual(t, [16]byte{}, result.Tag)
}
