// Package mode applies block ciphers to multi-block messages.
//
// Modes whose blocks do not depend on each other submit one task per block to a shared
// Pool: ECB and CTR in both directions, CBC and CFB decryption, the block decryptions of
// PCBC, and RD. CBC, PCBC and CFB encryption and OFB in both directions run sequentially.
//
// Inputs must already be a whole number of blocks; nothing is padded or truncated here.
package mode

import (
	"context"
	"fmt"
	"math/big"

	"github.com/idelchi/gosym/internal/symmetric"
)

// Mode is a mode of operation bound to an IV and a block size.
// It holds no per-message state and is safe for concurrent use.
type Mode struct {
	kind      Kind
	iv        []byte
	blockSize int
	pool      *Pool

	// RD offsets: block i is masked with initial + i*delta.
	initial, delta *big.Int
}

// New validates iv against kind and blockSize and returns the mode. ECB ignores iv.
// CBC, PCBC, CFB and OFB need a full-block IV, CTR an IV shorter than a block, RD any
// non-empty IV. A nil pool gets a private pool sized to the CPU count.
func New(kind Kind, iv []byte, blockSize int, pool *Pool) (*Mode, error) {
	if _, ok := kindNames[kind]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, byte(kind))
	}

	if blockSize <= 0 {
		return nil, fmt.Errorf("%s: %w", kind, symmetric.InvalidBlock(blockSize))
	}

	if pool == nil {
		pool = NewPool(0)
	}

	m := &Mode{kind: kind, blockSize: blockSize, pool: pool}

	if kind == ECB {
		return m, nil
	}

	if len(iv) == 0 {
		return nil, fmt.Errorf("%s: %w", kind, ErrMissingIV)
	}

	switch kind {
	case CTR:
		if len(iv) >= blockSize {
			return nil, fmt.Errorf("%s: %w: %d bytes, must be shorter than the %d byte block",
				kind, ErrInvalidIV, len(iv), blockSize)
		}
	case RD:
		m.initial = new(big.Int).SetBytes(iv)
		m.delta = new(big.Int).SetBytes(iv[len(iv)/2:])
	default:
		if len(iv) != blockSize {
			return nil, fmt.Errorf("%s: %w: %d bytes, want %d", kind, ErrInvalidIV, len(iv), blockSize)
		}
	}

	m.iv = append([]byte(nil), iv...)

	return m, nil
}

// Kind returns the mode of operation.
func (m *Mode) Kind() Kind {
	return m.kind
}

// BlockSize returns the block size the mode was built for.
func (m *Mode) BlockSize() int {
	return m.blockSize
}

// Encrypt applies the mode in the encrypting direction.
func (m *Mode) Encrypt(ctx context.Context, c symmetric.Cipher, data []byte) ([]byte, error) {
	if err := m.check(c, data); err != nil {
		return nil, err
	}

	out := make([]byte, len(data))
	blocks := len(data) / m.blockSize

	var err error

	switch m.kind {
	case ECB:
		err = m.pool.run(ctx, blocks, m.blockSize, out, func(i int) ([]byte, error) {
			return c.Encrypt(m.block(data, i))
		})
	case CBC:
		err = m.sequential(ctx, blocks, func(i int, previous []byte) ([]byte, []byte, error) {
			encrypted, err := c.Encrypt(symmetric.XOR(m.block(data, i), previous))

			return encrypted, encrypted, err
		}, out)
	case PCBC:
		err = m.sequential(ctx, blocks, func(i int, feedback []byte) ([]byte, []byte, error) {
			plain := m.block(data, i)

			encrypted, err := c.Encrypt(symmetric.XOR(plain, feedback))
			if err != nil {
				return nil, nil, err
			}

			return encrypted, symmetric.XOR(plain, encrypted), nil
		}, out)
	case CFB:
		err = m.sequential(ctx, blocks, func(i int, previous []byte) ([]byte, []byte, error) {
			keystream, err := c.Encrypt(previous)
			if err != nil {
				return nil, nil, err
			}

			encrypted := symmetric.XOR(keystream, m.block(data, i))

			return encrypted, encrypted, nil
		}, out)
	case OFB:
		err = m.outputFeedback(ctx, c, data, out)
	case CTR:
		err = m.counter(ctx, c, data, out)
	case RD:
		err = m.pool.run(ctx, blocks, m.blockSize, out, func(i int) ([]byte, error) {
			return c.Encrypt(symmetric.XOR(m.block(data, i), m.offset(i)))
		})
	}

	if err != nil {
		return nil, fmt.Errorf("%s encrypt: %w", m.kind, err)
	}

	return out, nil
}

// Decrypt applies the mode in the decrypting direction.
func (m *Mode) Decrypt(ctx context.Context, c symmetric.Cipher, data []byte) ([]byte, error) {
	if err := m.check(c, data); err != nil {
		return nil, err
	}

	out := make([]byte, len(data))
	blocks := len(data) / m.blockSize

	var err error

	switch m.kind {
	case ECB:
		err = m.pool.run(ctx, blocks, m.blockSize, out, func(i int) ([]byte, error) {
			return c.Decrypt(m.block(data, i))
		})
	case CBC:
		err = m.pool.run(ctx, blocks, m.blockSize, out, func(i int) ([]byte, error) {
			decrypted, err := c.Decrypt(m.block(data, i))
			if err != nil {
				return nil, err
			}

			return symmetric.XOR(decrypted, m.previous(data, i)), nil
		})
	case PCBC:
		err = m.pool.run(ctx, blocks, m.blockSize, out, func(i int) ([]byte, error) {
			return c.Decrypt(m.block(data, i))
		})
		if err == nil {
			m.unchain(data, out)
		}
	case CFB:
		err = m.pool.run(ctx, blocks, m.blockSize, out, func(i int) ([]byte, error) {
			keystream, err := c.Encrypt(m.previous(data, i))
			if err != nil {
				return nil, err
			}

			return symmetric.XOR(keystream, m.block(data, i)), nil
		})
	case OFB:
		err = m.outputFeedback(ctx, c, data, out)
	case CTR:
		err = m.counter(ctx, c, data, out)
	case RD:
		err = m.pool.run(ctx, blocks, m.blockSize, out, func(i int) ([]byte, error) {
			decrypted, err := c.Decrypt(m.block(data, i))
			if err != nil {
				return nil, err
			}

			return symmetric.XOR(decrypted, m.offset(i)), nil
		})
	}

	if err != nil {
		return nil, fmt.Errorf("%s decrypt: %w", m.kind, err)
	}

	return out, nil
}

func (m *Mode) check(c symmetric.Cipher, data []byte) error {
	if c.BlockSize() != m.blockSize {
		return fmt.Errorf("%s: cipher %w", m.kind, symmetric.InvalidBlock(c.BlockSize(), m.blockSize))
	}

	if len(data)%m.blockSize != 0 {
		return fmt.Errorf("%s: %w: %d bytes with %d byte blocks", m.kind, ErrNotBlockAligned, len(data), m.blockSize)
	}

	return nil
}

func (m *Mode) block(data []byte, i int) []byte {
	return data[i*m.blockSize : (i+1)*m.blockSize]
}

// previous returns ciphertext block i-1, or the IV for the first block.
func (m *Mode) previous(data []byte, i int) []byte {
	if i == 0 {
		return m.iv
	}

	return m.block(data, i-1)
}

// sequential threads a chaining value through step, starting from the IV.
// step returns the output block and the chaining value for the next block.
func (m *Mode) sequential(
	ctx context.Context,
	blocks int,
	step func(i int, chain []byte) (block, next []byte, err error),
	out []byte,
) error {
	chain := m.iv

	for i := range blocks {
		if err := ctx.Err(); err != nil {
			return err
		}

		block, next, err := step(i, chain)
		if err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}

		copy(out[i*m.blockSize:], block)
		chain = next
	}

	return nil
}

// unchain turns the raw PCBC block decryptions in out into plaintext in place.
func (m *Mode) unchain(data, out []byte) {
	feedback := m.iv

	for i := range len(data) / m.blockSize {
		plain := m.block(out, i)

		copy(plain, symmetric.XOR(plain, feedback))
		feedback = symmetric.XOR(plain, m.block(data, i))
	}
}

// outputFeedback XORs data with E(IV), E(E(IV)), ... Both directions are identical.
func (m *Mode) outputFeedback(ctx context.Context, c symmetric.Cipher, data, out []byte) error {
	return m.sequential(ctx, len(data)/m.blockSize, func(i int, previous []byte) ([]byte, []byte, error) {
		keystream, err := c.Encrypt(previous)
		if err != nil {
			return nil, nil, err
		}

		return symmetric.XOR(keystream, m.block(data, i)), keystream, nil
	}, out)
}

// counter XORs data with E(counter block i). Both directions are identical.
func (m *Mode) counter(ctx context.Context, c symmetric.Cipher, data, out []byte) error {
	return m.pool.run(ctx, len(data)/m.blockSize, m.blockSize, out, func(i int) ([]byte, error) {
		keystream, err := c.Encrypt(m.counterBlock(i))
		if err != nil {
			return nil, err
		}

		return symmetric.XOR(keystream, m.block(data, i)), nil
	})
}

// counterBlock is the IV followed by i in big-endian order in the remaining bytes.
func (m *Mode) counterBlock(i int) []byte {
	block := make([]byte, m.blockSize)

	copy(block, m.iv)

	for j, n := m.blockSize-1, uint64(i); j >= len(m.iv) && n > 0; j, n = j-1, n>>8 {
		block[j] = byte(n)
	}

	return block
}

// offset returns initial + i*delta as a block, keeping the low-order bytes when it overflows.
func (m *Mode) offset(i int) []byte {
	value := new(big.Int).Mul(m.delta, big.NewInt(int64(i)))
	value.Add(value, m.initial)

	raw := value.Bytes()
	if len(raw) > m.blockSize {
		raw = raw[len(raw)-m.blockSize:]
	}

	mask := make([]byte, m.blockSize)

	copy(mask[m.blockSize-len(raw):], raw)

	return mask
}
