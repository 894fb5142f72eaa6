package gf_test

import (
	"fmt"
	"os"
	"strconv"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/gosym/internal/gf"
)

// Case is a single arithmetic vector from testdata/vectors.yml. Operands are hex strings.
type Case struct {
	X           string `yaml:"x"`
	Y           string `yaml:"y"`
	Modulus     string `yaml:"modulus"`
	Want        string `yaml:"want"`
	Error       bool   `yaml:"error"`
	Description string `yaml:"description,omitempty"`
}

// Group collects the vectors of one operation.
type Group struct {
	Name  string `yaml:"name"`
	Cases []Case `yaml:"cases"`
}

func loadGroups(t *testing.T) []Group {
	t.Helper()

	data, err := os.ReadFile("testdata/vectors.yml")
	require.NoError(t, err)

	var groups []Group

	require.NoError(t, yaml.Unmarshal(data, &groups))
	require.NotEmpty(t, groups)

	return groups
}

func hexValue(t *testing.T, s string) uint16 {
	t.Helper()

	if s == "" {
		return 0
	}

	v, err := strconv.ParseUint(s, 16, 16)
	require.NoError(t, err, "parsing %q", s)

	return uint16(v)
}

func evaluate(t *testing.T, op string, tc Case) (byte, error) {
	t.Helper()

	x, y, m := hexValue(t, tc.X), byte(hexValue(t, tc.Y)), byte(hexValue(t, tc.Modulus))

	switch op {
	case "add":
		return gf.Add(byte(x), y), nil
	case "multiply":
		return gf.Multiply(byte(x), y, m)
	case "inverse":
		return gf.Inverse(byte(x), m)
	case "divide":
		return gf.Divide(byte(x), y)
	case "remainder8":
		return gf.Remainder8(x, m)
	case "remainder":
		return gf.Remainder(x, y)
	default:
		t.Fatalf("unknown operation %q", op)

		return 0, nil
	}
}

func TestVectors(t *testing.T) {
	t.Parallel()

	for _, group := range loadGroups(t) {
		t.Run(group.Name, func(t *testing.T) {
			t.Parallel()

			for i, tc := range group.Cases {
				desc := tc.Description
				if desc == "" {
					desc = fmt.Sprintf("case_%d", i)
				}

				t.Run(desc, func(t *testing.T) {
					t.Parallel()

					got, err := evaluate(t, group.Name, tc)
					if tc.Error {
						require.Error(t, err)

						return
					}

					require.NoError(t, err)
					assert.Equal(t, byte(hexValue(t, tc.Want)), got)
				})
			}
		})
	}
}

func TestAddProperties(t *testing.T) {
	t.Parallel()

	for x := 0; x < gf.Order; x++ {
		for y := 0; y < gf.Order; y++ {
			if gf.Add(byte(x), byte(y)) != gf.Add(byte(y), byte(x)) {
				t.Fatalf("add not commutative for %#x, %#x", x, y)
			}
		}

		if gf.Add(byte(x), byte(x)) != 0 {
			t.Fatalf("add(x, x) != 0 for %#x", x)
		}
	}
}

func TestInverseOverEveryIrreducibleModulus(t *testing.T) {
	t.Parallel()

	for _, modulus := range gf.IrreduciblePolynomials() {
		for x := 1; x < gf.Order; x++ {
			inv, err := gf.Inverse(byte(x), modulus)
			require.NoError(t, err)

			product, err := gf.Multiply(byte(x), inv, modulus)
			require.NoError(t, err)

			if product != 1 {
				t.Fatalf("modulus %#x: %#x * %#x = %#x, want 1", modulus, x, inv, product)
			}
		}
	}
}

func TestIsIrreducible(t *testing.T) {
	t.Parallel()

	type scenario struct {
		modulus byte
		want    bool
	}

	scenarios := []scenario{
		{0x1B, true},  // x^8 + x^4 + x^3 + x + 1
		{0x1D, true},  // x^8 + x^4 + x^3 + x^2 + 1
		{0x2B, true},  // x^8 + x^5 + x^3 + x + 1
		{0xF9, true},  // x^8 + x^7 + x^6 + x^5 + x^4 + x^3 + 1
		{0x01, false}, // (x + 1)^8
		{0x1A, false}, // divisible by x
		{0xFE, false}, // divisible by x
	}

	for _, s := range scenarios {
		got, err := gf.IsIrreducible(s.modulus)
		require.NoError(t, err)
		assert.Equal(t, s.want, got, "modulus %#x", s.modulus)
	}

	_, err := gf.IsIrreducible(0)
	require.ErrorIs(t, err, gf.ErrZeroModulus)
}

func TestIrreduciblePolynomials(t *testing.T) {
	t.Parallel()

	want := []byte{
		0x1B, 0x1D, 0x2B, 0x2D, 0x39, 0x3F, 0x4D, 0x5F, 0x63, 0x65,
		0x69, 0x71, 0x77, 0x7B, 0x87, 0x8B, 0x8D, 0x9F, 0xA3, 0xA9,
		0xB1, 0xBD, 0xC3, 0xCF, 0xD7, 0xDD, 0xE7, 0xF3, 0xF5, 0xF9,
	}

	assert.Equal(t, want, gf.IrreduciblePolynomials())
}

func TestPow(t *testing.T) {
	t.Parallel()

	got, err := gf.Pow(0x03, 0, 0x1B)
	require.NoError(t, err)
	assert.Equal(t, byte(1), got)

	// 0x03 generates the multiplicative group of the AES field.
	got, err = gf.Pow(0x03, 255, 0x1B)
	require.NoError(t, err)
	assert.Equal(t, byte(1), got)

	squared, err := gf.Multiply(0x57, 0x57, 0x1B)
	require.NoError(t, err)

	got, err = gf.Pow(0x57, 2, 0x1B)
	require.NoError(t, err)
	assert.Equal(t, squared, got)

	_, err = gf.Pow(0x57, 2, 0)
	require.ErrorIs(t, err, gf.ErrZeroModulus)
}
