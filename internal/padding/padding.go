// Package padding extends messages to a whole number of blocks and strips the extension again.
//
// Add always produces a block-aligned result. For PKCS7, ANSI X.923 and ISO 10126 it appends
// between 1 and blockSize bytes, so an already aligned message gains a full block. Zeros
// appends nothing to an aligned message.
//
// Remove does not validate the padding bytes. Pairing Add of one scheme with Remove of another
// corrupts the tail silently. Zeros removal strips every trailing zero byte, including zero
// bytes that belonged to the message.
package padding

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPadding is returned when the padding length read from the data is impossible.
	ErrInvalidPadding = errors.New("invalid padding")
	// ErrUnknownScheme is returned for names or values outside the defined schemes.
	ErrUnknownScheme = errors.New("unknown padding scheme")
	// ErrBlockSize is returned for block sizes outside [1, 255].
	ErrBlockSize = errors.New("padding block size must be between 1 and 255")
)

// Scheme is one of the supported padding schemes.
type Scheme byte

const (
	// PKCS7 appends n bytes of value n.
	PKCS7 Scheme = iota + 1
	// ANSIX923 appends n-1 zero bytes followed by n.
	ANSIX923
	// ISO10126 appends n-1 random bytes followed by n.
	ISO10126
	// Zeros appends zero bytes up to the next block boundary.
	Zeros
)

const maxBlockSize = 255

var names = map[Scheme]string{
	PKCS7:    "pkcs7",
	ANSIX923: "ansix923",
	ISO10126: "iso10126",
	Zeros:    "zeros",
}

// Schemes returns every scheme in declaration order.
func Schemes() []Scheme {
	return []Scheme{PKCS7, ANSIX923, ISO10126, Zeros}
}

// Parse returns the scheme for a case-insensitive name.
func Parse(name string) (Scheme, error) {
	for scheme, n := range names {
		if strings.EqualFold(n, name) {
			return scheme, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}

func (s Scheme) String() string {
	if n, ok := names[s]; ok {
		return n
	}

	return fmt.Sprintf("Scheme(%d)", byte(s))
}

// Add returns a copy of data padded to a multiple of blockSize.
func (s Scheme) Add(data []byte, blockSize int) ([]byte, error) {
	if blockSize < 1 || blockSize > maxBlockSize {
		return nil, fmt.Errorf("%w: %d", ErrBlockSize, blockSize)
	}

	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data), len(data)+n)

	copy(out, data)

	switch s {
	case PKCS7:
		return append(out, bytes.Repeat([]byte{byte(n)}, n)...), nil
	case ANSIX923:
		out = append(out, make([]byte, n-1)...)

		return append(out, byte(n)), nil
	case ISO10126:
		filler := make([]byte, n-1)
		if _, err := rand.Read(filler); err != nil {
			return nil, fmt.Errorf("generating padding: %w", err)
		}

		return append(append(out, filler...), byte(n)), nil
	case Zeros:
		if n == blockSize {
			return out, nil
		}

		return append(out, make([]byte, n)...), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, byte(s))
	}
}

// Remove returns data without its padding. blockSize is accepted for symmetry with Add.
func (s Scheme) Remove(data []byte, blockSize int) ([]byte, error) {
	if blockSize < 1 || blockSize > maxBlockSize {
		return nil, fmt.Errorf("%w: %d", ErrBlockSize, blockSize)
	}

	switch s {
	case PKCS7, ANSIX923, ISO10126:
		return removeCounted(data)
	case Zeros:
		return bytes.TrimRight(data, "\x00"), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, byte(s))
	}
}

// removeCounted drops the number of trailing bytes given by the last byte.
func removeCounted(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrInvalidPadding)
	}

	n := int(data[len(data)-1])
	if n > len(data) {
		return nil, fmt.Errorf("%w: length %d exceeds %d bytes of data", ErrInvalidPadding, n, len(data))
	}

	return data[:len(data)-n], nil
}
