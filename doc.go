// Package kauma provides a cryptanalysis toolbox built around the
// Galois/Counter Mode (GCM) block-cipher mode.
//
// The core is an algebra engine for GCM: arithmetic in GF(2^128) under GCM's
// reduction polynomial, a polynomial ring over that field, the GHASH
// universal hash, an AES-GCM encryption pipeline, Cantor-Zassenhaus
// factorization, a nonce-reuse auth-tag forgery, and a CBC padding-oracle
// attack client with a reference oracle server.
//
// # Installation
//
//	go get github.com/frereit/KauMA
//
// # GCM Encryption Example
//
//	import "github.com/frereit/KauMA"
//
//	result, err := kauma.GCMEncrypt(key, nonce, associatedData, plaintext)
//	// result.Ciphertext, result.Tag
//
// # Tag Forgery Example
//
//	import (
//	    "github.com/frereit/KauMA"
//	    "github.com/frereit/KauMA/crypto/gcm/forgery"
//	)
//
//	// m1, m2, m3 are tagged messages observed under a reused (key, nonce);
//	// m4 is the attacker-chosen message to forge a tag for.
//	tag, err := kauma.RecoverAuthTag(m1, m2, m3, m4)
//
// # Lower-Level Packages
//
// The high-level functions in this package wrap the underlying packages,
// which expose the full API:
//
//   - crypto/gf128: GF(2^128) field elements
//   - crypto/gf128poly: the polynomial ring over gf128
//   - crypto/gcm: streaming GHASH and the GCM encryptor
//   - crypto/gcm/cantorzassenhaus: polynomial root finding
//   - crypto/gcm/forgery: nonce-reuse tag recovery
//   - crypto/paddingoracle: CBC padding-oracle client and server
package kauma
