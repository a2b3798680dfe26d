// Package crypto provides the core cipher/parameter interfaces shared by the
// block cipher modes and padding schemes built on top of them.
// Reference: org.bouncycastle.crypto package.
package crypto

// BlockCipher defines the interface for block cipher engines.
// Reference: org.bouncycastle.crypto.BlockCipher
type BlockCipher interface {
	// Init initializes the cipher for encryption or decryption
	// forEncryption: true for encryption, false for decryption
	// params: the key material
	Init(forEncryption bool, params CipherParameters)

	// GetAlgorithmName returns the algorithm name
	GetAlgorithmName() string

	// GetBlockSize returns the block size for this cipher (in bytes)
	GetBlockSize() int

	// ProcessBlock processes a single block
	ProcessBlock(in []byte, inOff int, out []byte, outOff int) int

	// Reset resets the cipher back to its initial state
	Reset()
}

// CipherParameters is a marker interface for cipher parameters.
// Reference: org.bouncycastle.crypto.CipherParameters
type CipherParameters interface {
	// Marker method to identify cipher parameters
	IsCipherParameters() bool
}

// BlockCipherMode defines the interface for block cipher modes of operation.
type BlockCipherMode interface {
	BlockCipher
	// GetUnderlyingCipher returns the underlying block cipher
	GetUnderlyingCipher() BlockCipher
}

// BufferedBlockCipher defines the interface for buffered block cipher operations.
// Reference: org.bouncycastle.crypto.BufferedBlockCipher
type BufferedBlockCipher interface {
	// Init initializes the cipher
	Init(forEncryption bool, params CipherParameters)

	// GetAlgorithmName returns the algorithm name
	GetAlgorithmName() string

	// GetBlockSize returns the block size
	GetBlockSize() int

	// GetUpdateOutputSize returns the size of the output buffer required for an update
	GetUpdateOutputSize(length int) int

	// GetOutputSize returns the size of the output buffer required for the data
	GetOutputSize(length int) int

	// ProcessByte processes a single byte
	ProcessByte(in byte, out []byte, outOff int) (int, error)

	// ProcessBytes processes multiple bytes
	ProcessBytes(in []byte, inOff int, length int, out []byte, outOff int) (int, error)

	// DoFinal completes the encryption/decryption
	DoFinal(out []byte, outOff int) (int, error)

	// Reset resets the cipher
	Reset()
}

// BlockCipherPadding defines the interface for padding schemes.
// Reference: org.bouncycastle.crypto.paddings.BlockCipherPadding
type BlockCipherPadding interface {
	// Init initializes the padding
	Init(random []byte)

	// GetPaddingName returns the name of the padding
	GetPaddingName() string

	// AddPadding adds padding to the last block
	AddPadding(in []byte, inOff int) int

	// PadCount returns the number of pad bytes in the block
	PadCount(in []byte) (int, error)
}

