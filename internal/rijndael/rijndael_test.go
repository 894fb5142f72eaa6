package rijndael_test

import (
	"crypto/aes"
	"encoding/hex"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/gosym/internal/gf"
	"github.com/idelchi/gosym/internal/rijndael"
	"github.com/idelchi/gosym/internal/symmetric"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	require.NoError(t, err)

	return b
}

func random(rng *rand.Rand, n int) []byte {
	b := make([]byte, n)

	for i := range b {
		b[i] = byte(rng.Uint32())
	}

	return b
}

func TestKnownAnswer(t *testing.T) {
	t.Parallel()

	type scenario struct {
		name       string
		key        string
		ciphertext string
	}

	scenarios := []scenario{
		{"aes-128", "000102030405060708090a0b0c0d0e0f", "69c4e0d86a7b0430d8cdb78070b4c55a"},
		{"aes-192", "000102030405060708090a0b0c0d0e0f1011121314151617", "dda97ca4864cdfe06eaf70a0ec0d7191"},
	}

	plaintext := mustHex(t, "00112233445566778899aabbccddeeff")

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			t.Parallel()

			c, err := rijndael.New(16, mustHex(t, s.key), rijndael.AESModulus)
			require.NoError(t, err)

			got, err := c.Encrypt(plaintext)
			require.NoError(t, err)
			assert.Equal(t, s.ciphertext, hex.EncodeToString(got))

			back, err := c.Decrypt(got)
			require.NoError(t, err)
			assert.Equal(t, plaintext, back)
		})
	}
}

func TestMatchesStandardLibrary(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(3, 4))

	for _, keySize := range []int{16, 24} {
		for range 32 {
			key := random(rng, keySize)
			block := random(rng, aes.BlockSize)

			ours, err := rijndael.New(aes.BlockSize, key, rijndael.AESModulus)
			require.NoError(t, err)

			ref, err := aes.NewCipher(key)
			require.NoError(t, err)

			want := make([]byte, aes.BlockSize)
			ref.Encrypt(want, block)

			got, err := ours.Encrypt(block)
			require.NoError(t, err)
			require.Equal(t, want, got, "key %x block %x", key, block)
		}
	}
}

func TestRoundTripAllShapes(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(5, 6))
	moduli := []byte{rijndael.AESModulus, 0x2B, 0xF9}

	for _, modulus := range moduli {
		for _, blockSize := range rijndael.Sizes {
			for _, keySize := range rijndael.Sizes {
				c, err := rijndael.New(blockSize, random(rng, keySize), modulus)
				require.NoError(t, err)
				assert.Equal(t, blockSize, c.BlockSize())
				assert.Equal(t, max(blockSize, keySize)/4+6, c.Rounds())

				block := random(rng, blockSize)

				encrypted, err := c.Encrypt(block)
				require.NoError(t, err)
				assert.NotEqual(t, block, encrypted)

				decrypted, err := c.Decrypt(encrypted)
				require.NoError(t, err)
				require.Equal(t, block, decrypted,
					"modulus %#x block %d key %d", modulus, blockSize, keySize)
			}
		}
	}
}

func TestEveryIrreducibleModulus(t *testing.T) {
	t.Parallel()

	key := make([]byte, 16)
	block := []byte("sixteen byte blk")

	for _, modulus := range gf.IrreduciblePolynomials() {
		c, err := rijndael.New(16, key, modulus)
		require.NoError(t, err)

		encrypted, err := c.Encrypt(block)
		require.NoError(t, err)

		decrypted, err := c.Decrypt(encrypted)
		require.NoError(t, err)
		require.Equal(t, block, decrypted, "modulus %#x", modulus)
	}
}

func TestConstructionErrors(t *testing.T) {
	t.Parallel()

	_, err := rijndael.New(16, make([]byte, 16), 0x00)
	require.ErrorIs(t, err, rijndael.ErrReducibleModulus)
	require.ErrorIs(t, err, gf.ErrZeroModulus)

	_, err = rijndael.New(16, make([]byte, 16), 0x01)
	require.ErrorIs(t, err, rijndael.ErrReducibleModulus)
	require.NotErrorIs(t, err, gf.ErrZeroModulus)

	_, err = rijndael.New(20, make([]byte, 16), rijndael.AESModulus)
	require.ErrorIs(t, err, symmetric.ErrInvalidBlockSize)

	_, err = rijndael.New(16, make([]byte, 8), rijndael.AESModulus)
	require.ErrorIs(t, err, symmetric.ErrInvalidKeySize)

	c, err := rijndael.New(24, make([]byte, 16), rijndael.AESModulus)
	require.NoError(t, err)

	_, err = c.Encrypt(make([]byte, 16))
	require.ErrorIs(t, err, symmetric.ErrInvalidBlockSize)
}
