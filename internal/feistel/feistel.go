// Package feistel implements a generic balanced Feistel network.
//
// The network splits a block into halves L and R. Every round but the last computes
// R' = F(R, K) ^ L and moves R into L. The last round leaves R in place and outputs
// F(R, K) ^ L followed by R, so decryption is the same walk with the round keys reversed.
package feistel

import (
	"errors"
	"fmt"

	"github.com/idelchi/gosym/internal/symmetric"
)

var (
	// ErrRoundKeys is returned when a key schedule yields fewer round keys than rounds.
	ErrRoundKeys = errors.New("key schedule produced too few round keys")
	// ErrRounds is returned for a non-positive round count.
	ErrRounds = errors.New("round count must be positive")
	// ErrRoundOutput is returned when a round function output is not exactly one half block.
	ErrRoundOutput = errors.New("round function output does not match half block")
)

// RoundFunction mixes a round key into one half block.
type RoundFunction interface {
	Apply(half, roundKey []byte) ([]byte, error)
}

// RoundFunc adapts a plain function to RoundFunction.
type RoundFunc func(half, roundKey []byte) ([]byte, error)

// Apply calls f.
func (f RoundFunc) Apply(half, roundKey []byte) ([]byte, error) {
	return f(half, roundKey)
}

// KeySchedule expands a cipher key into per-round keys.
type KeySchedule interface {
	Expand(key []byte) ([][]byte, error)
}

// Network is a keyed Feistel network. It is safe for concurrent use.
type Network struct {
	round     RoundFunction
	roundKeys [][]byte
	blockSize int
}

// New expands key with schedule and returns a network running the given number of rounds
// over blocks of blockSize bytes. blockSize must be even.
func New(round RoundFunction, schedule KeySchedule, key []byte, rounds, blockSize int) (*Network, error) {
	if rounds <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrRounds, rounds)
	}

	if blockSize <= 0 || blockSize%2 != 0 {
		return nil, fmt.Errorf("feistel block of %d bytes: %w", blockSize, symmetric.ErrInvalidBlockSize)
	}

	roundKeys, err := schedule.Expand(key)
	if err != nil {
		return nil, fmt.Errorf("expanding key: %w", err)
	}

	if len(roundKeys) < rounds {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrRoundKeys, len(roundKeys), rounds)
	}

	return &Network{
		round:     round,
		roundKeys: roundKeys[:rounds],
		blockSize: blockSize,
	}, nil
}

// BlockSize returns the block length in bytes.
func (n *Network) BlockSize() int {
	return n.blockSize
}

// Rounds returns the number of rounds.
func (n *Network) Rounds() int {
	return len(n.roundKeys)
}

// Encrypt runs the rounds with the round keys in schedule order.
func (n *Network) Encrypt(block []byte) ([]byte, error) {
	return n.run(block, false)
}

// Decrypt runs the rounds with the round keys in reverse order.
func (n *Network) Decrypt(block []byte) ([]byte, error) {
	return n.run(block, true)
}

func (n *Network) run(block []byte, reverse bool) ([]byte, error) {
	if err := symmetric.CheckBlock(block, n.blockSize); err != nil {
		return nil, err
	}

	half := n.blockSize / 2
	left := block[:half]
	right := block[half:]
	last := len(n.roundKeys) - 1

	key := func(i int) []byte {
		if reverse {
			return n.roundKeys[last-i]
		}

		return n.roundKeys[i]
	}

	for i := range last {
		mixed, err := n.apply(right, key(i), half)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i+1, err)
		}

		left, right = right, symmetric.XOR(mixed, left)
	}

	mixed, err := n.apply(right, key(last), half)
	if err != nil {
		return nil, fmt.Errorf("round %d: %w", last+1, err)
	}

	out := make([]byte, 0, n.blockSize)
	out = append(out, symmetric.XOR(mixed, left)...)
	out = append(out, right...)

	return out, nil
}

func (n *Network) apply(half, roundKey []byte, size int) ([]byte, error) {
	mixed, err := n.round.Apply(half, roundKey)
	if err != nil {
		return nil, err
	}

	if len(mixed) != size {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrRoundOutput, len(mixed), size)
	}

	return mixed, nil
}
