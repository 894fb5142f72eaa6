package gf

import "errors"

var (
	// ErrZeroModulus is returned when an operation that reduces modulo x^8 + m is given m == 0.
	ErrZeroModulus = errors.New("modulus must be non-zero")
	// ErrDivisionByZero is returned when dividing by the zero polynomial.
	ErrDivisionByZero = errors.New("division by zero polynomial")
)
