package symmetric_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/gosym/internal/symmetric"
)

func TestXOR(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte{0xFF, 0x00}, symmetric.XOR([]byte{0xF0, 0xAA}, []byte{0x0F, 0xAA, 0x11}))
	assert.Empty(t, symmetric.XOR(nil, []byte{1}))
}

func TestCheckBlock(t *testing.T) {
	t.Parallel()

	require.NoError(t, symmetric.CheckBlock(make([]byte, 8), 8))
	require.ErrorIs(t, symmetric.CheckBlock(make([]byte, 7), 8), symmetric.ErrInvalidBlockSize)
	require.ErrorIs(t, symmetric.InvalidKey(3, 8), symmetric.ErrInvalidKeySize)
}
