package gf128

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frereit/KauMA/errs"
)

func mustGCM(t *testing.T, h string) Element {
	t.Helper()
	b, err := hex.DecodeString(h)
	require.NoError(t, err)
	e, err := FromGCMBytes(b)
	require.NoError(t, err)
	return e
}

func assertHexEqual(t *testing.T, want string, got []byte) {
	t.Helper()
	assert.Equal(t, strings.ToLower(want), hex.EncodeToString(got))
}

func TestGCMByteRoundTrip(t *testing.T) {
	raw, err := hex.DecodeString("F0F0F0F00F0F0F0FF0F0F0F00F0F0F0F")
	require.NoError(t, err)

	e, err := FromGCMBytes(raw)
	require.NoError(t, err)

	want := []int{
		0, 1, 2, 3, 8, 9, 10, 11, 16, 17, 18, 19, 24, 25, 26, 27,
		36, 37, 38, 39, 44, 45, 46, 47, 52, 53, 54, 55, 60, 61, 62, 63,
		64, 65, 66, 67, 72, 73, 74, 75, 80, 81, 82, 83, 88, 89, 90, 91,
		100, 101, 102, 103, 108, 109, 110, 111, 116, 117, 118, 119, 124, 125, 126, 127,
	}
	assert.Equal(t, want, e.Exponents())

	// round trip: decoding a set of exponents back to GCM bytes reproduces
	// the original encoding.
	e2, err := FromExponents(want)
	require.NoError(t, err)
	assert.Equal(t, raw, e2.GCMBytes())
}

func TestGCMBytesInvalidLength(t *testing.T) {
	_, err := FromGCMBytes(make([]byte, 15))
	assert.ErrorIs(t, err, errs.ErrInvalidLength)
}

func TestFromExponentsRejectsOutOfRange(t *testing.T) {
	_, err := FromExponents([]int{0, 128})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidExponent)
}

func TestAddIsXORAndSelfInverse(t *testing.T) {
	a := mustGCM(t, "FDBADCB514AF3C8E7436AB83AC71AEA6")
	assert.True(t, a.Add(a).IsZero())
	assert.Equal(t, a, a.Add(Zero))
}

func TestMultiplyByAlpha(t *testing.T) {
	a := mustGCM(t, "FDBADCB514AF3C8E7436AB83AC71AEA6")
	alpha, err := FromExponents([]int{1})
	require.NoError(t, err)

	once := Multiply(a, alpha)
	assertHexEqual(t, "7EDD6E5A8A579E473A1B55C1D638D753", once.GCMBytes())

	twice := Multiply(once, alpha)
	assertHexEqual(t, "DE6EB72D452BCF239D0DAAE0EB1C6BA9", twice.GCMBytes())
}

func TestInverse(t *testing.T) {
	a := mustGCM(t, "FDBADCB514AF3C8E7436AB83AC71AEA6")
	inv := a.Inverse()
	assertHexEqual(t, "2ECA9F04BEB1572F52E0C5E279BA7D7C", inv.GCMBytes())
	assert.Equal(t, One, Multiply(a, inv))
}

func TestDistributivity(t *testing.T) {
	a, err := Random()
	require.NoError(t, err)
	b, err := Random()
	require.NoError(t, err)
	c, err := Random()
	require.NoError(t, err)

	left := Multiply(a, b.Add(c))
	right := Multiply(a, b).Add(Multiply(a, c))
	assert.Equal(t, left, right)
}

func TestGCMBytesXORHomomorphism(t *testing.T) {
	a, err := Random()
	require.NoError(t, err)
	b, err := Random()
	require.NoError(t, err)

	sum := a.Add(b).GCMBytes()
	for i := range sum {
		assert.Equal(t, a.GCMBytes()[i]^b.GCMBytes()[i], sum[i])
	}
}
