package encryption

import (
	"context"
	"fmt"

	"github.com/idelchi/gosym/internal/mode"
	"github.com/idelchi/gosym/internal/padding"
	"github.com/idelchi/gosym/internal/symmetric"
)

// Params describes a suite.
type Params struct {
	Algorithm Algorithm
	Key       []byte
	// BlockSize and Modulus only apply to Rijndael.
	BlockSize int
	Modulus   byte

	Mode    mode.Kind
	IV      []byte
	Padding padding.Scheme
}

// Suite encrypts and decrypts messages of any length with one cipher, mode and padding.
// It is safe for concurrent use.
type Suite struct {
	algorithm Algorithm
	cipher    symmetric.Cipher
	mode      *mode.Mode
	padding   padding.Scheme
	pool      *mode.Pool
}

// NewSuite keys the cipher and binds the mode to params.IV. Block tasks run on pool.
// A nil pool gets one sized to the CPU count.
func NewSuite(params Params, pool *mode.Pool) (*Suite, error) {
	if pool == nil {
		pool = mode.NewPool(0)
	}

	c, err := NewCipher(params.Algorithm, params.Key, params.Algorithm.BlockSize(params.BlockSize), params.Modulus)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	if _, err := params.Padding.Add(nil, c.BlockSize()); err != nil {
		return nil, fmt.Errorf("checking padding: %w", err)
	}

	m, err := mode.New(params.Mode, params.IV, c.BlockSize(), pool)
	if err != nil {
		return nil, fmt.Errorf("creating mode: %w", err)
	}

	return &Suite{
		algorithm: params.Algorithm,
		cipher:    c,
		mode:      m,
		padding:   params.Padding,
		pool:      pool,
	}, nil
}

// WithIV returns a suite sharing the keyed cipher with the mode rebound to iv.
func (s *Suite) WithIV(iv []byte) (*Suite, error) {
	m, err := mode.New(s.mode.Kind(), iv, s.cipher.BlockSize(), s.pool)
	if err != nil {
		return nil, fmt.Errorf("creating mode: %w", err)
	}

	clone := *s
	clone.mode = m

	return &clone, nil
}

// Algorithm returns the cipher.
func (s *Suite) Algorithm() Algorithm { return s.algorithm }

// Mode returns the mode of operation.
func (s *Suite) Mode() mode.Kind { return s.mode.Kind() }

// Padding returns the padding scheme.
func (s *Suite) Padding() padding.Scheme { return s.padding }

// BlockSize returns the cipher block size in bytes.
func (s *Suite) BlockSize() int { return s.cipher.BlockSize() }

// Encrypt pads plaintext and encrypts it.
func (s *Suite) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	padded, err := s.padding.Add(plaintext, s.cipher.BlockSize())
	if err != nil {
		return nil, fmt.Errorf("padding: %w", err)
	}

	ciphertext, err := s.mode.Encrypt(ctx, s.cipher, padded)
	if err != nil {
		return nil, fmt.Errorf("encrypting: %w", err)
	}

	return ciphertext, nil
}

// Decrypt decrypts ciphertext and strips the padding.
func (s *Suite) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	padded, err := s.mode.Decrypt(ctx, s.cipher, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decrypting: %w", err)
	}

	plaintext, err := s.padding.Remove(padded, s.cipher.BlockSize())
	if err != nil {
		return nil, fmt.Errorf("removing padding: %w", err)
	}

	return plaintext, nil
}
