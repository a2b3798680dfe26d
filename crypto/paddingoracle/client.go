package paddingoracle

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"

	"github.com/frereit/KauMA/errs"
	"github.com/frereit/KauMA/util"
)

// Client recovers CBC plaintext byte-by-byte against a remote padding
// oracle, speaking a simple framed wire protocol: one TCP connection per
// ciphertext block, a 16-byte target block, then frames of
// (u16 little-endian count, count×16-byte Q) answered with count validity
// bytes.
type Client struct {
	addr   string
	dialer net.Dialer
}

// NewClient builds a Client that dials addr (host:port) fresh for every
// block.
func NewClient(addr string) *Client {
	return &Client{addr: addr}
}

// RecoverPlaintext recovers the plaintext of ciphertext (a multiple of 16
// bytes) given the IV used to produce it, by attacking each block in order
// over a fresh connection per block.
func (c *Client) RecoverPlaintext(ctx context.Context, iv, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%16 != 0 {
		return nil, fmt.Errorf("paddingoracle: ciphertext length %d is not a positive multiple of 16: %w", len(ciphertext), errs.ErrInvalidLength)
	}
	if len(iv) != 16 {
		return nil, fmt.Errorf("paddingoracle: iv must be 16 bytes, got %d: %w", len(iv), errs.ErrInvalidLength)
	}

	var blocks [][]byte
	prev := iv
	for off := 0; off < len(ciphertext); off += 16 {
		target := ciphertext[off : off+16]
		raw, err := c.recoverBlock(ctx, target)
		if err != nil {
			return nil, err
		}
		block := make([]byte, 16)
		for i := range block {
			block[i] = raw[i] ^ prev[i]
		}
		blocks = append(blocks, block)
		prev = target
	}
	return util.Concatenate(blocks...), nil
}

// recoverBlock recovers D(target) — the raw block-cipher decryption of
// target, before the CBC XOR with the previous block is undone — over one
// fresh connection, working byte index 15 down to 0.
func (c *Client) recoverBlock(ctx context.Context, target []byte) ([16]byte, error) {
	conn, err := c.dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return [16]byte{}, fmt.Errorf("paddingoracle: dial: %w: %v", errs.ErrTransportFailure, err)
	}
	defer conn.Close()

	if _, err := conn.Write(target); err != nil {
		return [16]byte{}, fmt.Errorf("paddingoracle: sending target block: %w: %v", errs.ErrTransportFailure, err)
	}

	var raw [16]byte
	for i := 15; i >= 0; i-- {
		padByte := byte(16 - i)
		candidates, err := recoverByte(conn, raw, i, padByte)
		if err != nil {
			return [16]byte{}, err
		}

		if i == 15 && len(candidates) > 1 {
			candidates, err = disambiguateLastByte(conn, candidates)
			if err != nil {
				return [16]byte{}, err
			}
		}
		if len(candidates) != 1 {
			return [16]byte{}, fmt.Errorf("paddingoracle: byte %d: %d candidates produced valid padding, want 1: %w", i, len(candidates), errs.ErrOracleFailure)
		}
		raw[i] = candidates[0]
	}

	if err := closeSession(conn); err != nil {
		return [16]byte{}, err
	}
	return raw, nil
}

// recoverByte builds the 256 Q blocks that vary byte i over every value
// while forcing bytes i+1..15 of the decrypted block to padByte (using the
// raw bytes already recovered) and zeroing bytes 0..i-1, sends them in one
// frame, and returns every byte value that produced valid padding.
func recoverByte(conn net.Conn, raw [16]byte, i int, padByte byte) ([]byte, error) {
	queries := make([][16]byte, 256)
	for guess := 0; guess < 256; guess++ {
		var q [16]byte
		q[i] = byte(guess)
		for j := i + 1; j < 16; j++ {
			q[j] = padByte ^ raw[j]
		}
		queries[guess] = q
	}

	valid, err := sendFrame(conn, queries)
	if err != nil {
		return nil, err
	}

	var candidates []byte
	for guess, ok := range valid {
		if ok {
			candidates = append(candidates, byte(guess)^padByte)
		}
	}
	return candidates, nil
}

// disambiguateLastByte resolves the padding-length ambiguity at i=15: for
// every candidate last byte, a follow-up single-query frame forces bytes
// 0..14 to 0xFF so only a true single-byte 0x01 padding (not some longer
// coincidental padding) still validates. candidates holds recovered raw
// values, so the replayed query byte is cand ^ 0x01 — the Q value that
// forces the decrypted last byte to 0x01.
func disambiguateLastByte(conn net.Conn, candidates []byte) ([]byte, error) {
	var confirmed []byte
	for _, cand := range candidates {
		var q [16]byte
		for j := 0; j < 15; j++ {
			q[j] = 0xFF
		}
		q[15] = cand ^ 0x01
		valid, err := sendFrame(conn, [][16]byte{q})
		if err != nil {
			return nil, err
		}
		if valid[0] {
			confirmed = append(confirmed, cand)
		}
	}
	return confirmed, nil
}

// sendFrame writes one (count, blocks) frame and reads back len(blocks)
// validity bytes.
func sendFrame(conn net.Conn, blocks [][16]byte) ([]bool, error) {
	var countBuf [2]byte
	binary.LittleEndian.PutUint16(countBuf[:], uint16(len(blocks)))
	if _, err := conn.Write(countBuf[:]); err != nil {
		return nil, fmt.Errorf("paddingoracle: sending frame count: %w: %v", errs.ErrTransportFailure, err)
	}
	for _, b := range blocks {
		if _, err := conn.Write(b[:]); err != nil {
			return nil, fmt.Errorf("paddingoracle: sending query block: %w: %v", errs.ErrTransportFailure, err)
		}
	}

	results := make([]byte, len(blocks))
	if _, err := io.ReadFull(conn, results); err != nil {
		return nil, fmt.Errorf("paddingoracle: reading results: %w: %v", errs.ErrTransportFailure, err)
	}
	valid := make([]bool, len(blocks))
	for i, r := range results {
		valid[i] = r == 1
	}
	return valid, nil
}

// closeSession sends the count=0 frame that ends the connection's attack
// session.
func closeSession(conn net.Conn) error {
	var countBuf [2]byte
	binary.LittleEndian.PutUint16(countBuf[:], 0)
	if _, err := conn.Write(countBuf[:]); err != nil {
		return fmt.Errorf("paddingoracle: closing session: %w: %v", errs.ErrTransportFailure, err)
	}
	return nil
}
