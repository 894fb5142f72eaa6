package gf

import (
	"fmt"
	"math/bits"
)

// Order is the number of elements in the field.
const Order = 256

const (
	fieldDegree = 8
	// inverseExponent is 2^8 - 2: x^254 == x^-1 for every non-zero element.
	inverseExponent = Order - 2
	// maxDivisor bounds the trial divisors for irreducibility: a reducible degree-8 polynomial
	// always has a factor of degree at most 4.
	maxDivisor = 1 << 5
)

// Add returns x + y, which in characteristic 2 is x XOR y.
func Add(x, y byte) byte {
	return x ^ y
}

// Multiply returns x * y reduced modulo x^8 + modulus.
func Multiply(x, y, modulus byte) (byte, error) {
	if modulus == 0 {
		return 0, ErrZeroModulus
	}

	return reduce(carryless(x, y), modulus), nil
}

// Remainder8 reduces a polynomial of degree at most 15 modulo x^8 + modulus.
func Remainder8(value uint16, modulus byte) (byte, error) {
	if modulus == 0 {
		return 0, ErrZeroModulus
	}

	return reduce(value, modulus), nil
}

// Remainder returns value mod divisor, where divisor is an ordinary polynomial
// of degree at most 7 (no implicit x^8 term).
func Remainder(value uint16, divisor byte) (byte, error) {
	if divisor == 0 {
		return 0, ErrDivisionByZero
	}

	_, rem := divmod(value, uint16(divisor))

	return byte(rem), nil
}

// Divide returns the polynomial quotient x / y, discarding the remainder.
func Divide(x, y byte) (byte, error) {
	if y == 0 {
		return 0, ErrDivisionByZero
	}

	quo, _ := divmod(uint16(x), uint16(y))

	return byte(quo), nil
}

// Pow returns x^n reduced modulo x^8 + modulus using square-and-multiply.
func Pow(x byte, n uint, modulus byte) (byte, error) {
	if modulus == 0 {
		return 0, ErrZeroModulus
	}

	return pow(x, n, modulus), nil
}

// Inverse returns the multiplicative inverse of x modulo x^8 + modulus.
// Zero has no inverse and maps to zero. The result is only meaningful
// when the modulus is irreducible.
func Inverse(x, modulus byte) (byte, error) {
	if modulus == 0 {
		return 0, ErrZeroModulus
	}

	if x == 0 {
		return 0, nil
	}

	return pow(x, inverseExponent, modulus), nil
}

// IsIrreducible reports whether x^8 + modulus has no non-trivial factor.
func IsIrreducible(modulus byte) (bool, error) {
	if modulus == 0 {
		return false, fmt.Errorf("checking irreducibility: %w", ErrZeroModulus)
	}

	poly := uint16(1)<<fieldDegree | uint16(modulus)

	for divisor := uint16(2); divisor < maxDivisor; divisor++ {
		if _, rem := divmod(poly, divisor); rem == 0 {
			return false, nil
		}
	}

	return true, nil
}

// IrreduciblePolynomials lists every modulus m for which x^8 + m is irreducible, in ascending order.
func IrreduciblePolynomials() []byte {
	var moduli []byte

	for m := 1; m < Order; m++ {
		if ok, _ := IsIrreducible(byte(m)); ok {
			moduli = append(moduli, byte(m))
		}
	}

	return moduli
}

func pow(x byte, n uint, modulus byte) byte {
	result := byte(1)

	for ; n > 0; n >>= 1 {
		if n&1 != 0 {
			result = reduce(carryless(result, x), modulus)
		}

		x = reduce(carryless(x, x), modulus)
	}

	return result
}

// carryless multiplies two polynomials over GF(2) without reduction.
func carryless(x, y byte) uint16 {
	var (
		product uint16
		shifted = uint16(x)
	)

	for ; y != 0; y >>= 1 {
		if y&1 != 0 {
			product ^= shifted
		}

		shifted <<= 1
	}

	return product
}

// reduce clears bits 15..8 of value using x^8 + modulus.
func reduce(value uint16, modulus byte) byte {
	poly := uint16(1)<<fieldDegree | uint16(modulus)

	for bit := 15; bit >= fieldDegree; bit-- {
		if value&(1<<bit) != 0 {
			value ^= poly << (bit - fieldDegree)
		}
	}

	return byte(value)
}

// divmod performs long division of polynomials over GF(2). divisor must be non-zero.
func divmod(value, divisor uint16) (quotient, remainder uint16) {
	divisorDegree := bits.Len16(divisor) - 1

	for {
		valueDegree := bits.Len16(value) - 1
		if valueDegree < divisorDegree {
			return quotient, value
		}

		shift := valueDegree - divisorDegree
		quotient |= 1 << shift
		value ^= divisor << shift
	}
}
