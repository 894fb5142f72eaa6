package mode

import (
	"fmt"
	"strings"
)

// Kind identifies a mode of operation.
type Kind byte

const (
	// ECB encrypts every block independently.
	ECB Kind = iota + 1
	// CBC XORs each plaintext block with the previous ciphertext block before encryption.
	CBC
	// PCBC XORs each plaintext block with the previous plaintext and ciphertext blocks.
	PCBC
	// CFB XORs each plaintext block with the encryption of the previous ciphertext block.
	CFB
	// OFB XORs the data with a keystream of repeatedly encrypted IV blocks.
	OFB
	// CTR XORs the data with encrypted counter blocks built from the IV and the block index.
	CTR
	// RD XORs block i with initial + i*delta, both taken from the IV, around the cipher call.
	RD
)

var kindNames = map[Kind]string{
	ECB:  "ecb",
	CBC:  "cbc",
	PCBC: "pcbc",
	CFB:  "cfb",
	OFB:  "ofb",
	CTR:  "ctr",
	RD:   "rd",
}

// Kinds returns every mode in declaration order.
func Kinds() []Kind {
	return []Kind{ECB, CBC, PCBC, CFB, OFB, CTR, RD}
}

// Parse returns the mode for a case-insensitive name.
func Parse(name string) (Kind, error) {
	for kind, n := range kindNames {
		if strings.EqualFold(n, name) {
			return kind, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}

	return fmt.Sprintf("Kind(%d)", byte(k))
}

// NeedsIV reports whether the mode requires an initialization vector.
func (k Kind) NeedsIV() bool {
	return k != ECB
}

// IVSize returns the IV length generated for the mode at the given block size:
// zero for ECB, half a block for CTR and a full block otherwise.
func (k Kind) IVSize(blockSize int) int {
	switch k {
	case ECB:
		return 0
	case CTR:
		return blockSize / 2
	default:
		return blockSize
	}
}
