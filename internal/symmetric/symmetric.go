// Package symmetric defines the contract shared by the block ciphers of this module.
package symmetric

// Cipher transforms single blocks of BlockSize bytes.
// Implementations are safe for concurrent use once constructed.
type Cipher interface {
	// BlockSize returns the block length in bytes.
	BlockSize() int
	// Encrypt returns the encryption of one block.
	Encrypt(block []byte) ([]byte, error)
	// Decrypt returns the decryption of one block.
	Decrypt(block []byte) ([]byte, error)
}

// XOR returns a new slice holding a[i] ^ b[i] for the length of the shorter operand.
func XOR(a, b []byte) []byte {
	out := make([]byte, min(len(a), len(b)))

	for i := range out {
		out[i] = a[i] ^ b[i]
	}

	return out
}

// CheckBlock returns ErrInvalidBlockSize unless block is exactly size bytes long.
func CheckBlock(block []byte, size int) error {
	if len(block) != size {
		return InvalidBlock(len(block), size)
	}

	return nil
}
