package deal_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/gosym/internal/deal"
	"github.com/idelchi/gosym/internal/symmetric"
)

func sequence(n int, start byte) []byte {
	b := make([]byte, n)

	for i := range b {
		b[i] = start + byte(i)*7
	}

	return b
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, size := range []int{deal.KeySize128, deal.KeySize192, deal.KeySize256} {
		c, err := deal.New(sequence(size, 0x11))
		require.NoError(t, err)
		assert.Equal(t, deal.BlockSize, c.BlockSize())

		for _, block := range [][]byte{
			make([]byte, deal.BlockSize),
			bytes.Repeat([]byte{0xFF}, deal.BlockSize),
			sequence(deal.BlockSize, 0x42),
		} {
			encrypted, err := c.Encrypt(block)
			require.NoError(t, err)
			require.Len(t, encrypted, deal.BlockSize)
			assert.NotEqual(t, block, encrypted)

			decrypted, err := c.Decrypt(encrypted)
			require.NoError(t, err)
			assert.Equal(t, block, decrypted, "key size %d", size)
		}
	}
}

func TestRounds(t *testing.T) {
	t.Parallel()

	type scenario struct {
		keySize int
		rounds  int
	}

	for _, s := range []scenario{{16, 6}, {24, 6}, {32, 8}} {
		got, err := deal.Rounds(s.keySize)
		require.NoError(t, err)
		assert.Equal(t, s.rounds, got)
	}
}

func TestRoundFunctionIgnoresKey(t *testing.T) {
	t.Parallel()

	a, err := deal.New(sequence(deal.KeySize128, 0x01))
	require.NoError(t, err)

	b, err := deal.New(sequence(deal.KeySize256, 0x80))
	require.NoError(t, err)

	block := sequence(deal.BlockSize, 0x10)

	// Same round count, different keys: the round keys never reach the round function.
	c, err := deal.New(sequence(deal.KeySize192, 0x33))
	require.NoError(t, err)

	fromA, err := a.Encrypt(block)
	require.NoError(t, err)

	fromC, err := c.Encrypt(block)
	require.NoError(t, err)
	assert.Equal(t, fromA, fromC)

	// A different round count still changes the output.
	fromB, err := b.Encrypt(block)
	require.NoError(t, err)
	assert.NotEqual(t, fromA, fromB)
}

func TestInvalidKey(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, 8, 15, 17, 40} {
		_, err := deal.New(make([]byte, size))
		require.ErrorIs(t, err, symmetric.ErrInvalidKeySize)
	}

	c, err := deal.New(make([]byte, deal.KeySize128))
	require.NoError(t, err)

	_, err = c.Encrypt(make([]byte, 8))
	require.ErrorIs(t, err, symmetric.ErrInvalidBlockSize)
}
