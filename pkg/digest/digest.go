package digest

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"hash"
	"io"
	"sync"

	"github.com/zeebo/blake3"
)

// Algorithm identifies a supported digest algorithm
type Algorithm string

const (
	// SHA256 is the default content digest
	SHA256 Algorithm = "sha256"
	// BLAKE3 is a faster alternative for large trees
	BLAKE3 Algorithm = "blake3"
)

// ParseAlgorithm validates an algorithm name
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case SHA256:
		return SHA256, nil
	case BLAKE3:
		return BLAKE3, nil
	default:
		return "", fmt.Errorf("unsupported digest algorithm: %s (use: sha256, blake3)", s)
	}
}

// Engine computes rendered content digests over byte streams.
// Each Sum call uses fresh hash state, so a single engine is safe to
// share across calls.
type Engine struct {
	algorithm  Algorithm
	bufferPool *sync.Pool
}

// New creates a digest engine for the given algorithm
func New(algorithm Algorithm, bufferSize int) (*Engine, error) {
	if _, err := ParseAlgorithm(string(algorithm)); err != nil {
		return nil, err
	}
	if bufferSize < 4096 {
		bufferSize = 4096
	}
	return &Engine{
		algorithm: algorithm,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, bufferSize)
				return &buf
			},
		},
	}, nil
}

// Algorithm returns the engine's algorithm
func (e *Engine) Algorithm() Algorithm {
	return e.algorithm
}

// Sum consumes the entire reader and returns the rendered digest of
// everything it produced
func (e *Engine) Sum(ctx context.Context, reader io.Reader) (string, error) {
	hasher := e.newHasher()

	bufPtr := e.bufferPool.Get().(*[]byte)
	buffer := *bufPtr
	defer e.bufferPool.Put(bufPtr)

	for {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		n, err := reader.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read stream: %w", err)
		}
	}

	return Render(hasher.Sum(nil)), nil
}

// newHasher returns fresh hash state for the engine's algorithm
func (e *Engine) newHasher() hash.Hash {
	if e.algorithm == BLAKE3 {
		return blake3.New()
	}
	return sha256.New()
}

// Render encodes a raw digest as unpadded standard base64.
// Padding carries no information for fixed-length digests, so it is
// trimmed from the rendered identifier.
func Render(sum []byte) string {
	return base64.RawStdEncoding.EncodeToString(sum)
}
