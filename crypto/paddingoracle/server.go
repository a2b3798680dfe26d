// Package paddingoracle implements both sides of the CBC padding-oracle
// exercise: a reference server that decrypts a target block
// under attacker-chosen previous-block values and reports PKCS#7 padding
// validity, and a client that recovers plaintext byte by byte from that
// oracle alone.
//
// The server exists so the client and its tests have a real oracle to run
// against rather than a mock.
package paddingoracle

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"

	"go.uber.org/zap"

	"github.com/frereit/KauMA/crypto/modes"
	"github.com/frereit/KauMA/crypto/paddings"
	"github.com/frereit/KauMA/crypto/params"
	"github.com/frereit/KauMA/crypto/xorcipher"
	"github.com/frereit/KauMA/util"
)

// maxQueriesPerFrame bounds a single (count, blocks) frame. The wire format
// carries count as a u16, so 0..65535 is representable, but a well-behaved
// client never needs more than 256 queries (one per candidate byte value) in
// a single frame.
const maxQueriesPerFrame = 65535

// Server is the reference padding oracle: it decrypts whatever target block
// a connection presents, under whatever previous-block value the connection
// supplies, and reports only whether the result has valid PKCS#7 padding.
// The fixed key is immutable after construction and shared read-only across
// every connection's goroutine.
type Server struct {
	key    []byte
	logger *zap.Logger
}

// NewServer constructs a Server bound to a fixed 16-byte key.
func NewServer(key []byte, logger *zap.Logger) (*Server, error) {
	if len(key) != xorcipher.BlockSize {
		return nil, fmt.Errorf("paddingoracle: key must be %d bytes, got %d", xorcipher.BlockSize, len(key))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{key: key, logger: logger}, nil
}

// Serve accepts connections on ln until ctx is cancelled or Accept fails,
// spawning one goroutine per connection.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return fmt.Errorf("paddingoracle: accept: %w", err)
			}
		}
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	logger := s.logger.With(zap.String("remote", conn.RemoteAddr().String()))
	logger.Debug("oracle: connection opened")

	var target [xorcipher.BlockSize]byte
	if _, err := io.ReadFull(conn, target[:]); err != nil {
		logger.Debug("oracle: reading target block", zap.Error(err))
		return
	}

	queries := 0
	for {
		var countBuf [2]byte
		if _, err := io.ReadFull(conn, countBuf[:]); err != nil {
			logger.Debug("oracle: reading frame count", zap.Error(err))
			return
		}
		count := binary.LittleEndian.Uint16(countBuf[:])
		if count == 0 {
			logger.Debug("oracle: connection closed", zap.Int("queries", queries))
			return
		}
		if count > maxQueriesPerFrame {
			return
		}

		qBlocks := make([]byte, int(count)*xorcipher.BlockSize)
		if _, err := io.ReadFull(conn, qBlocks); err != nil {
			logger.Debug("oracle: reading query blocks", zap.Error(err))
			return
		}

		results := make([]byte, count)
		for i := 0; i < int(count); i++ {
			var q [xorcipher.BlockSize]byte
			copy(q[:], util.CopyOfRange(qBlocks, i*xorcipher.BlockSize, (i+1)*xorcipher.BlockSize))
			if s.validPadding(target, q) {
				results[i] = 1
			}
		}
		queries += int(count)
		if _, err := conn.Write(results); err != nil {
			logger.Debug("oracle: writing results", zap.Error(err))
			return
		}
	}
}

// validPadding computes P = Q ⊕ C ⊕ K — one block of CBC decryption with Q
// standing in for the previous ciphertext block and C the target block —
// and reports whether P ends in valid PKCS#7 padding, with the padding count
// bounded to 1..16.
func (s *Server) validPadding(target, q [xorcipher.BlockSize]byte) bool {
	cbc := modes.NewCBCBlockCipher(xorcipher.New())
	cbc.Init(false, params.NewParametersWithIV(params.NewKeyParameter(s.key), q[:]))

	var plaintext [xorcipher.BlockSize]byte
	cbc.ProcessBlock(target[:], 0, plaintext[:], 0)

	_, err := paddings.NewPKCS7Padding().PadCount(plaintext[:])
	return err == nil
}

// Seal encrypts plaintext under the server's key with CBC+PKCS#7 using the
// supplied IV, returning the ciphertext a test or demo harness can then feed
// back through the oracle. This is the only place the server side acts as an
// encryptor rather than a decryption oracle; it exists purely to produce
// realistic attack fixtures.
func Seal(key, iv, plaintext []byte) ([]byte, error) {
	if len(key) != xorcipher.BlockSize {
		return nil, fmt.Errorf("paddingoracle: key must be %d bytes, got %d", xorcipher.BlockSize, len(key))
	}
	if len(iv) != xorcipher.BlockSize {
		return nil, fmt.Errorf("paddingoracle: iv must be %d bytes, got %d", xorcipher.BlockSize, len(iv))
	}

	cbc := modes.NewCBCBlockCipher(xorcipher.New())
	buffered := modes.NewPaddedBufferedBlockCipher(cbc, paddings.NewPKCS7Padding())
	buffered.Init(true, params.NewParametersWithIV(params.NewKeyParameter(key), iv))

	out := make([]byte, buffered.GetOutputSize(len(plaintext)))
	n, err := buffered.ProcessBytes(plaintext, 0, len(plaintext), out, 0)
	if err != nil {
		return nil, fmt.Errorf("paddingoracle: sealing fixture: %w", err)
	}
	final, err := buffered.DoFinal(out, n)
	if err != nil {
		return nil, fmt.Errorf("paddingoracle: sealing fixture: %w", err)
	}
	return out[:n+final], nil
}
