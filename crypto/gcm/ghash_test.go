package gcm

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frereit/KauMA/crypto/gf128"
	"github.com/frereit/KauMA/errs"
)

func testKey(t *testing.T) gf128.Element {
	t.Helper()
	raw, err := hex.DecodeString("66e94bd4ef8a2c3b884cfa59ca342b2e")
	require.NoError(t, err)
	h, err := gf128.FromGCMBytes(raw)
	require.NoError(t, err)
	return h
}

func TestGHASHEmptyInputIsZero(t *testing.T) {
	h := testKey(t)
	tag := Sum(nil, nil, h)
	assert.Equal(t, make([]byte, 16), tag)
}

func TestGHASHStreamingMatchesBatch(t *testing.T) {
	h := testKey(t)
	ad := []byte("associated data, not block aligned")
	ct := []byte("a rather longer ciphertext buffer that spans several 16-byte GHASH blocks and then some")

	batch := Sum(ad, ct, h)

	g := New(ad, h)
	for i := 0; i < len(ct); i += 7 { // feed in small, non-block-aligned chunks
		end := i + 7
		if end > len(ct) {
			end = len(ct)
		}
		require.NoError(t, g.Update(ct[i:end]))
	}
	streamed := g.Finalize()

	assert.Equal(t, batch, streamed)
}

func TestGHASHUpdateAfterFinalize(t *testing.T) {
	h := testKey(t)
	g := New(nil, h)
	g.Finalize()

	err := g.Update([]byte("too late"))
	assert.ErrorIs(t, err, errs.ErrAlreadyFinalized)
}

func TestGHASHOrderingMatters(t *testing.T) {
	h := testKey(t)
	a := Sum([]byte("aaaaaaaaaaaaaaaa"), []byte("bbbbbbbbbbbbbbbb"), h)
	b := Sum([]byte("bbbbbbbbbbbbbbbb"), []byte("aaaaaaaaaaaaaaaa"), h)
	assert.NotEqual(t, a, b)
}

// TestGHASHPartialBlockCountsRealBits pins the length-block semantics for a
// non-block-aligned ciphertext: a 20-byte input must report 160 ciphertext
// bits, not 128 — the zero padding of the final partial block is absorbed
// but never counted.
func TestGHASHPartialBlockCountsRealBits(t *testing.T) {
	h := testKey(t)
	ct := make([]byte, 20)
	for i := range ct {
		ct[i] = byte(i + 1)
	}

	got := Sum(nil, ct, h)

	// naive reference: Y1 = C1 * H; Y2 = (Y1 + pad(C2)) * H;
	// Y3 = (Y2 + len_block) * H with a real bit count of 20*8 = 160.
	var b1, b2 [16]byte
	copy(b1[:], ct[:16])
	copy(b2[:], ct[16:])
	c1, err := gf128.FromGCMBytes(b1[:])
	require.NoError(t, err)
	c2, err := gf128.FromGCMBytes(b2[:])
	require.NoError(t, err)

	var lenBlock [16]byte
	lenBlock[14] = 160 >> 8
	lenBlock[15] = 160 & 0xFF
	lb, err := gf128.FromGCMBytes(lenBlock[:])
	require.NoError(t, err)

	y := gf128.Multiply(c1, h)
	y = gf128.Multiply(y.Add(c2), h)
	y = gf128.Multiply(y.Add(lb), h)

	assert.Equal(t, y.GCMBytes(), got)
}

func TestGHASHNaiveRecurrenceMatches(t *testing.T) {
	h := testKey(t)
	ct, err := hex.DecodeString("0388dace60b6a392f328c2b971b2fe78") // one full block
	require.NoError(t, err)

	got := Sum(nil, ct, h)

	// naive reference: Y1 = (0 + C1) * H; Y2 = (Y1 + len_block) * H
	block, err := gf128.FromGCMBytes(ct)
	require.NoError(t, err)
	y1 := gf128.Multiply(block, h)

	var lenBlock [16]byte
	lenBlock[15] = 128 // ciphertext bit length = 128, associated data bit length = 0
	lb, err := gf128.FromGCMBytes(lenBlock[:])
	require.NoError(t, err)
	y2 := gf128.Multiply(y1.Add(lb), h)

	assert.Equal(t, y2.GCMBytes(), got)
}
