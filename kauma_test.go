package kauma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frereit/KauMA/crypto/gcm/forgery"
)

func TestGCMEncryptRejectsWrongKeySize(t *testing.T) {
	_, err := GCMEncrypt([]byte("short"), make([]byte, 12), nil, []byte("data"))
	require.Error(t, err)
}

func TestGCMEncryptRoundTripsThroughForgery(t *testing.T) {
	key := []byte("0123456789abcdef")
	nonce := []byte("reusednonce!")

	seal := func(aad, plaintext []byte) forgery.Tagged {
		result, err := GCMEncrypt(key, nonce, aad, plaintext)
		require.NoError(t, err)
		return forgery.Tagged{
			Message: forgery.Message{Ciphertext: result.Ciphertext, AssociatedData: result.AssociatedData},
			Tag:     result.Tag,
		}
	}

	m1 := seal([]byte("first"), []byte("plaintext number one, reusing..."))
	m2 := seal([]byte("second"), []byte("plaintext number two, reusing..."))
	m3 := seal(nil, []byte("a third message to disambiguate"))

	// the fourth message is a genuine encryption whose tag the attacker
	// never saw; the forgery must reproduce it from the ciphertext alone.
	genuine, err := GCMEncrypt(key, nonce, []byte("hdr"), []byte("the fourth, never-tagged message"))
	require.NoError(t, err)

	target := forgery.Message{Ciphertext: genuine.Ciphertext, AssociatedData: genuine.AssociatedData}
	forged, err := RecoverAuthTag(m1, m2, m3, target)
	require.NoError(t, err)
	assert.Equal(t, genuine.Tag, forged)
}
