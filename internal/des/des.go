// Package des implements the 64-bit DES block cipher on top of the generic Feistel network.
//
// The cipher is bit-exact with FIPS 46-3: initial permutation, sixteen Feistel rounds with the
// expansion, S-box and P permutations, and the final permutation. Key parity bits are ignored.
package des

import (
	"encoding/binary"
	"fmt"

	"github.com/idelchi/gosym/internal/feistel"
	"github.com/idelchi/gosym/internal/permutation"
	"github.com/idelchi/gosym/internal/symmetric"
)

const (
	// BlockSize is the DES block length in bytes.
	BlockSize = 8
	// KeySize is the DES key length in bytes, parity bits included.
	KeySize = 8
	// Rounds is the number of Feistel rounds.
	Rounds = 16

	roundKeySize = 6
	halfBits     = 28
	halfMask     = 1<<halfBits - 1
)

// Cipher is a keyed DES instance. It is safe for concurrent use.
type Cipher struct {
	network *feistel.Network
}

// New returns a DES cipher for an 8-byte key.
func New(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("des: %w", symmetric.InvalidKey(len(key), KeySize))
	}

	network, err := feistel.New(feistel.RoundFunc(roundFunction), keySchedule{}, key, Rounds, BlockSize)
	if err != nil {
		return nil, fmt.Errorf("des: %w", err)
	}

	return &Cipher{network: network}, nil
}

// BlockSize returns 8.
func (c *Cipher) BlockSize() int {
	return BlockSize
}

// Encrypt encrypts one 8-byte block.
func (c *Cipher) Encrypt(block []byte) ([]byte, error) {
	return c.crypt(block, c.network.Encrypt)
}

// Decrypt decrypts one 8-byte block.
func (c *Cipher) Decrypt(block []byte) ([]byte, error) {
	return c.crypt(block, c.network.Decrypt)
}

func (c *Cipher) crypt(block []byte, rounds func([]byte) ([]byte, error)) ([]byte, error) {
	if err := symmetric.CheckBlock(block, BlockSize); err != nil {
		return nil, fmt.Errorf("des: %w", err)
	}

	permuted, err := permutation.Permute(block, initialPermutation, permutation.FromLeftFirstIsOne)
	if err != nil {
		return nil, fmt.Errorf("des: initial permutation: %w", err)
	}

	mixed, err := rounds(permuted)
	if err != nil {
		return nil, fmt.Errorf("des: %w", err)
	}

	out, err := permutation.Permute(mixed, finalPermutation, permutation.FromLeftFirstIsOne)
	if err != nil {
		return nil, fmt.Errorf("des: final permutation: %w", err)
	}

	return out, nil
}

// roundFunction expands the 32-bit half to 48 bits, mixes in the round key,
// substitutes through the eight S-boxes and applies the P permutation.
func roundFunction(half, roundKey []byte) ([]byte, error) {
	expanded, err := permutation.Permute(half, expansion, permutation.FromLeftFirstIsOne)
	if err != nil {
		return nil, fmt.Errorf("expansion: %w", err)
	}

	if len(roundKey) != roundKeySize {
		return nil, fmt.Errorf("round key: %w", symmetric.InvalidKey(len(roundKey), roundKeySize))
	}

	mixed := symmetric.XOR(expanded, roundKey)

	var wide [8]byte

	copy(wide[2:], mixed)

	bits48 := binary.BigEndian.Uint64(wide[:])

	var substituted uint32

	for box := range sBoxes {
		group := byte(bits48>>(42-6*box)) & 0x3F
		row := group>>4&0x02 | group&0x01
		column := group >> 1 & 0x0F

		substituted |= uint32(sBoxes[box][row][column]) << (28 - 4*box)
	}

	var out [4]byte

	binary.BigEndian.PutUint32(out[:], substituted)

	return permutation.Permute(out[:], roundPermutation, permutation.FromLeftFirstIsOne)
}

// keySchedule derives sixteen 48-bit round keys from a 64-bit key.
type keySchedule struct{}

func (keySchedule) Expand(key []byte) ([][]byte, error) {
	c, err := choose(key, choiceC)
	if err != nil {
		return nil, err
	}

	d, err := choose(key, choiceD)
	if err != nil {
		return nil, err
	}

	roundKeys := make([][]byte, Rounds)

	for round, shift := range shifts {
		c = rotate28(c, shift)
		d = rotate28(d, shift)

		var cd [8]byte

		binary.BigEndian.PutUint64(cd[:], uint64(c)<<halfBits|uint64(d))

		roundKeys[round], err = permutation.Permute(cd[1:], choice2, permutation.FromLeftFirstIsOne)
		if err != nil {
			return nil, fmt.Errorf("permuted choice 2: %w", err)
		}
	}

	return roundKeys, nil
}

// choose applies one half of permuted choice 1, returning its 28 bits right-aligned.
func choose(key []byte, table []int) (uint32, error) {
	half, err := permutation.Permute(key, table, permutation.FromLeftFirstIsOne)
	if err != nil {
		return 0, fmt.Errorf("permuted choice 1: %w", err)
	}

	return binary.BigEndian.Uint32(half), nil
}

func rotate28(v uint32, n uint) uint32 {
	return (v<<n | v>>(halfBits-n)) & halfMask
}
