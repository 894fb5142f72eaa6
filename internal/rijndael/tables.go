package rijndael

import (
	"fmt"
	"math/bits"

	"github.com/idelchi/gosym/internal/gf"
)

// buildTables fills the S-boxes and the MixColumns product tables for modulus.
func (c *Cipher) buildTables(modulus byte) error {
	for x := range gf.Order {
		b := byte(x)

		inv, err := gf.Inverse(b, modulus)
		if err != nil {
			return fmt.Errorf("rijndael: s-box: %w", err)
		}

		c.sbox[x] = inv ^ rotl(inv, 1) ^ rotl(inv, 2) ^ rotl(inv, 3) ^ rotl(inv, 4) ^ affineMask

		inv, err = gf.Inverse(rotl(b, 1)^rotl(b, 3)^rotl(b, 6)^inverseAffineMask, modulus)
		if err != nil {
			return fmt.Errorf("rijndael: inverse s-box: %w", err)
		}

		c.inverseSbox[x] = inv
	}

	c.products = make(map[byte]*[gf.Order]byte)

	for _, poly := range [][rows]byte{mixPolynomial, inverseMixPolynomial} {
		for _, coefficient := range poly {
			if _, ok := c.products[coefficient]; ok {
				continue
			}

			var table [gf.Order]byte

			for x := range gf.Order {
				product, err := gf.Multiply(coefficient, byte(x), modulus)
				if err != nil {
					return fmt.Errorf("rijndael: mix columns: %w", err)
				}

				table[x] = product
			}

			c.products[coefficient] = &table
		}
	}

	return nil
}

// expandKey derives rounds+1 round keys of nb words each.
func (c *Cipher) expandKey(key []byte) [][]byte {
	total := c.nb * (c.rounds + 1)
	words := make([][rows]byte, total)
	rcon := roundConstants(total/c.nk + 1)

	for i := range c.nk {
		copy(words[i][:], key[rows*i:])
	}

	for i := c.nk; i < total; i++ {
		temp := words[i-1]

		switch {
		case i%c.nk == 0:
			temp = [rows]byte{temp[1], temp[2], temp[3], temp[0]}
			c.substituteWord(&temp)
			temp[0] ^= rcon[i/c.nk-1]
		case c.nk > 6 && i%c.nk == 4:
			c.substituteWord(&temp)
		}

		for j := range rows {
			words[i][j] = words[i-c.nk][j] ^ temp[j]
		}
	}

	roundKeys := make([][]byte, c.rounds+1)

	for round := range roundKeys {
		roundKeys[round] = make([]byte, 0, c.nb*rows)

		for col := range c.nb {
			roundKeys[round] = append(roundKeys[round], words[round*c.nb+col][:]...)
		}
	}

	return roundKeys
}

func (c *Cipher) substituteWord(word *[rows]byte) {
	for j := range word {
		word[j] = c.sbox[word[j]]
	}
}

// roundConstants returns x^0, x^1, ... reduced by x^8 + x^4 + x^3 + x + 1.
func roundConstants(n int) []byte {
	rcon := make([]byte, n)
	rc := uint16(1)

	for i := range rcon {
		rcon[i] = byte(rc)

		rc <<= 1
		if rc&0x100 != 0 {
			rc ^= rconPolynomial
		}
	}

	return rcon
}

func rotl(b byte, n int) byte {
	return bits.RotateLeft8(b, n)
}
