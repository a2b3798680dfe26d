// Package errs defines the sentinel error kinds that cross the boundary of
// every core package in this module. Callers use errors.Is against these
// values; the wrapped message carries the specifics.
package errs

import "errors"

var (
	// ErrInvalidLength marks an input byte slice of the wrong length, e.g.
	// GCM bytes that aren't exactly 16 bytes, or ciphertext that isn't a
	// multiple of the block size.
	ErrInvalidLength = errors.New("invalid length")

	// ErrInvalidExponent marks an exponent outside 0..127 passed to a
	// field-element constructor.
	ErrInvalidExponent = errors.New("invalid exponent")

	// ErrAlreadyFinalized marks an update call made to a GHASH instance
	// after Finalize has already run.
	ErrAlreadyFinalized = errors.New("ghash already finalized")

	// ErrNoCandidates marks a forgery recovery whose factorization produced
	// no root candidates at all.
	ErrNoCandidates = errors.New("no root candidates")

	// ErrAmbiguousRecovery marks a forgery recovery where zero or more than
	// one root candidate validates against the disambiguation message.
	ErrAmbiguousRecovery = errors.New("ambiguous recovery")

	// ErrOracleFailure marks a padding-oracle byte recovery where no
	// candidate, or more than one, produced valid padding.
	ErrOracleFailure = errors.New("padding oracle produced no valid candidate")

	// ErrTransportFailure marks a failed read/write on the padding-oracle
	// client's underlying connection.
	ErrTransportFailure = errors.New("transport failure")
)
