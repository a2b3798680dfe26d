// Package util provides low-level byte/integer packing helpers shared by the
// field, mode, and padding packages.
// This mirrors Bouncy Castle's org.bouncycastle.util.Pack
package util

import (
	"encoding/binary"
)

// Pack provides byte packing and unpacking utilities.
// Reference: org.bouncycastle.util.Pack (bc-java)

// BigEndianToUint32 unpacks a uint32 from big-endian bytes
func BigEndianToUint32(bs []byte, off int) uint32 {
	return binary.BigEndian.Uint32(bs[off:])
}

// Uint32ToBigEndian packs a uint32 into big-endian bytes
func Uint32ToBigEndian(n uint32, bs []byte, off int) {
	binary.BigEndian.PutUint32(bs[off:], n)
}

// Uint64ToBigEndian packs a uint64 into big-endian bytes
func Uint64ToBigEndian(n uint64, bs []byte, off int) {
	binary.BigEndian.PutUint64(bs[off:], n)
}
