package symmetric

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKeySize is returned by cipher constructors for unsupported key lengths.
	ErrInvalidKeySize = errors.New("invalid key size")
	// ErrInvalidBlockSize is returned for unsupported block lengths, at construction or per block.
	ErrInvalidBlockSize = errors.New("invalid block size")
)

// InvalidKey wraps ErrInvalidKeySize with the offending and accepted lengths.
func InvalidKey(got int, want ...int) error {
	return fmt.Errorf("%w: got %d bytes, want one of %v", ErrInvalidKeySize, got, want)
}

// InvalidBlock wraps ErrInvalidBlockSize with the offending and accepted lengths.
func InvalidBlock(got int, want ...int) error {
	return fmt.Errorf("%w: got %d bytes, want one of %v", ErrInvalidBlockSize, got, want)
}
