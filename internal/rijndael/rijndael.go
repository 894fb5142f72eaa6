// Package rijndael implements the Rijndael block cipher with independently chosen block and
// key sizes of 128, 192 or 256 bits over any irreducible GF(2^8) modulus.
//
// With a 16-byte block and modulus 0x1B it is AES. Other moduli change the S-box and
// MixColumns arithmetic; the round constants always follow x^8 + x^4 + x^3 + x + 1.
package rijndael

import (
	"fmt"

	"github.com/idelchi/gosym/internal/gf"
	"github.com/idelchi/gosym/internal/symmetric"
)

// AESModulus selects x^8 + x^4 + x^3 + x + 1.
const AESModulus = 0x1B

const (
	rows       = 4
	affineMask = 0x63
	// inverseAffineMask undoes affineMask in the inverse S-box.
	inverseAffineMask = 0x05
	// rconPolynomial reduces round constants independent of the configured modulus.
	rconPolynomial = 0x11B
)

// Sizes lists the supported block and key lengths in bytes.
var Sizes = []int{16, 24, 32}

var (
	mixPolynomial        = [rows]byte{0x02, 0x01, 0x01, 0x03}
	inverseMixPolynomial = [rows]byte{0x0E, 0x09, 0x0D, 0x0B}
)

// Cipher is a keyed Rijndael instance. It is safe for concurrent use.
type Cipher struct {
	nb, nk, rounds int
	shifts         [rows]int

	sbox, inverseSbox [gf.Order]byte
	// products[c][x] is c*x in the configured field for each MixColumns coefficient c.
	products map[byte]*[gf.Order]byte

	// roundKeys[r] is the r-th round key laid out like a state block.
	roundKeys [][]byte
}

// New returns a Rijndael cipher with a block of blockSize bytes, the given key and field modulus.
func New(blockSize int, key []byte, modulus byte) (*Cipher, error) {
	if !supported(blockSize) {
		return nil, fmt.Errorf("rijndael: %w", symmetric.InvalidBlock(blockSize, Sizes...))
	}

	if !supported(len(key)) {
		return nil, fmt.Errorf("rijndael: %w", symmetric.InvalidKey(len(key), Sizes...))
	}

	ok, err := gf.IsIrreducible(modulus)
	if err != nil {
		return nil, fmt.Errorf("%w: %#02x: %w", ErrReducibleModulus, modulus, err)
	}

	if !ok {
		return nil, fmt.Errorf("%w: %#02x", ErrReducibleModulus, modulus)
	}

	c := &Cipher{
		nb: blockSize / rows,
		nk: len(key) / rows,
	}

	c.rounds = max(c.nb, c.nk) + 6
	c.shifts = shiftOffsets(c.nk)

	if err := c.buildTables(modulus); err != nil {
		return nil, err
	}

	c.roundKeys = c.expandKey(key)

	return c, nil
}

// BlockSize returns the configured block length in bytes.
func (c *Cipher) BlockSize() int {
	return c.nb * rows
}

// Rounds returns the number of rounds.
func (c *Cipher) Rounds() int {
	return c.rounds
}

// Encrypt encrypts one block.
func (c *Cipher) Encrypt(block []byte) ([]byte, error) {
	if err := symmetric.CheckBlock(block, c.BlockSize()); err != nil {
		return nil, fmt.Errorf("rijndael: %w", err)
	}

	state := c.load(block)

	c.addRoundKey(state, 0)

	for round := 1; round < c.rounds; round++ {
		c.subBytes(state, &c.sbox)
		c.shiftRows(state, false)
		c.mixColumns(state, &mixPolynomial)
		c.addRoundKey(state, round)
	}

	c.subBytes(state, &c.sbox)
	c.shiftRows(state, false)
	c.addRoundKey(state, c.rounds)

	return c.store(state), nil
}

// Decrypt decrypts one block.
func (c *Cipher) Decrypt(block []byte) ([]byte, error) {
	if err := symmetric.CheckBlock(block, c.BlockSize()); err != nil {
		return nil, fmt.Errorf("rijndael: %w", err)
	}

	state := c.load(block)

	c.addRoundKey(state, c.rounds)

	for round := c.rounds - 1; round > 0; round-- {
		c.shiftRows(state, true)
		c.subBytes(state, &c.inverseSbox)
		c.addRoundKey(state, round)
		c.mixColumns(state, &inverseMixPolynomial)
	}

	c.shiftRows(state, true)
	c.subBytes(state, &c.inverseSbox)
	c.addRoundKey(state, 0)

	return c.store(state), nil
}

func supported(size int) bool {
	for _, s := range Sizes {
		if s == size {
			return true
		}
	}

	return false
}

// shiftOffsets returns the left rotation of each state row, keyed by the key length in words.
func shiftOffsets(nk int) [rows]int {
	if nk == 8 {
		return [rows]int{0, 1, 3, 4}
	}

	return [rows]int{0, 1, 2, 3}
}

// state[r][col] holds block[r + 4*col].
type state [rows][]byte

func (c *Cipher) load(block []byte) *state {
	var s state

	for r := range s {
		s[r] = make([]byte, c.nb)

		for col := range c.nb {
			s[r][col] = block[r+rows*col]
		}
	}

	return &s
}

func (c *Cipher) store(s *state) []byte {
	out := make([]byte, c.BlockSize())

	for r := range s {
		for col := range c.nb {
			out[r+rows*col] = s[r][col]
		}
	}

	return out
}

func (c *Cipher) addRoundKey(s *state, round int) {
	key := c.roundKeys[round]

	for r := range s {
		for col := range c.nb {
			s[r][col] ^= key[r+rows*col]
		}
	}
}

func (c *Cipher) subBytes(s *state, box *[gf.Order]byte) {
	for r := range s {
		for col := range c.nb {
			s[r][col] = box[s[r][col]]
		}
	}
}

func (c *Cipher) shiftRows(s *state, inverse bool) {
	row := make([]byte, c.nb)

	for r := 1; r < rows; r++ {
		offset := c.shifts[r]
		if inverse {
			offset = c.nb - offset
		}

		for col := range c.nb {
			row[col] = s[r][(col+offset)%c.nb]
		}

		copy(s[r], row)
	}
}

// mixColumns multiplies each column by poly: out[k] = sum over a of in[a] * poly[(k-a) mod 4].
func (c *Cipher) mixColumns(s *state, poly *[rows]byte) {
	var column, mixed [rows]byte

	for col := range c.nb {
		for r := range rows {
			column[r] = s[r][col]
		}

		for k := range rows {
			mixed[k] = 0

			for a := range rows {
				mixed[k] ^= c.products[poly[(k-a+rows)%rows]][column[a]]
			}
		}

		for r := range rows {
			s[r][col] = mixed[r]
		}
	}
}
