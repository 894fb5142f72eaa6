package encryption

import (
	"fmt"
	"strings"

	"github.com/idelchi/gosym/internal/deal"
	"github.com/idelchi/gosym/internal/des"
	"github.com/idelchi/gosym/internal/rijndael"
	"github.com/idelchi/gosym/internal/symmetric"
)

// Algorithm identifies a block cipher.
type Algorithm byte

const (
	// DES is the 64-bit Feistel cipher.
	DES Algorithm = iota + 1
	// DEAL is the 128-bit Feistel cipher built on DES.
	DEAL
	// Rijndael is the substitution-permutation cipher with configurable sizes and field.
	Rijndael
)

var algorithmNames = map[Algorithm]string{
	DES:      "des",
	DEAL:     "deal",
	Rijndael: "rijndael",
}

// Algorithms returns every cipher in declaration order.
func Algorithms() []Algorithm {
	return []Algorithm{DES, DEAL, Rijndael}
}

// ParseAlgorithm returns the cipher for a case-insensitive name.
func ParseAlgorithm(name string) (Algorithm, error) {
	for algorithm, n := range algorithmNames {
		if strings.EqualFold(n, name) {
			return algorithm, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

func (a Algorithm) String() string {
	if n, ok := algorithmNames[a]; ok {
		return n
	}

	return fmt.Sprintf("Algorithm(%d)", byte(a))
}

// KeySizes lists the accepted key lengths in bytes, the largest last.
func (a Algorithm) KeySizes() []int {
	switch a {
	case DES:
		return []int{des.KeySize}
	case DEAL:
		return []int{deal.KeySize128, deal.KeySize192, deal.KeySize256}
	case Rijndael:
		return rijndael.Sizes
	default:
		return nil
	}
}

// BlockSize returns the block length for the cipher. Only Rijndael honors the requested size.
func (a Algorithm) BlockSize(requested int) int {
	switch a {
	case DES:
		return des.BlockSize
	case DEAL:
		return deal.BlockSize
	default:
		return requested
	}
}

// NewCipher keys the cipher. blockSize and modulus only apply to Rijndael.
func NewCipher(a Algorithm, key []byte, blockSize int, modulus byte) (symmetric.Cipher, error) {
	var (
		c   symmetric.Cipher
		err error
	)

	switch a {
	case DES:
		c, err = des.New(key)
	case DEAL:
		c, err = deal.New(key)
	case Rijndael:
		c, err = rijndael.New(blockSize, key, modulus)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, byte(a))
	}

	if err != nil {
		return nil, err
	}

	return c, nil
}
