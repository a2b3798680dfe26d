package paddingoracle

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// startOracle spins up a Server on an ephemeral local port and returns its
// address, stopping the server when the test completes.
func startOracle(t *testing.T, key []byte) string {
	t.Helper()
	srv, err := NewServer(key, nil)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		ln.Close()
	})

	go srv.Serve(ctx, ln)
	return ln.Addr().String()
}

// TestRecoverPlaintextAgainstLiveOracle runs the full attack: a 48-byte
// plaintext with intact PKCS#7 padding is recovered byte-by-byte from the
// reference oracle alone.
func TestRecoverPlaintextAgainstLiveOracle(t *testing.T) {
	key := []byte("0123456789abcdef")
	iv := []byte("initvectorbytes!")
	plaintext := []byte("the quick brown fox jumps over the lazy dog.....")
	require.Len(t, plaintext, 48)

	ciphertext, err := Seal(key, iv, plaintext)
	require.NoError(t, err)

	addr := startOracle(t, key)
	client := NewClient(addr)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	recovered, err := client.RecoverPlaintext(ctx, iv, ciphertext)
	require.NoError(t, err)

	// Seal's PKCS#7 padding adds a full extra block; trim it off before
	// comparing against the original unpadded plaintext.
	require.True(t, bytes.HasPrefix(recovered, plaintext))
}

func TestRecoverPlaintextRejectsBadCiphertextLength(t *testing.T) {
	addr := startOracle(t, []byte("0123456789abcdef"))
	client := NewClient(addr)
	_, err := client.RecoverPlaintext(context.Background(), make([]byte, 16), make([]byte, 17))
	require.Error(t, err)
}
