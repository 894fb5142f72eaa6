package logic

import "errors"

var (
	// ErrReducible is returned when a field inverse is requested under a reducible modulus.
	ErrReducible = errors.New("modulus is reducible")
	// ErrOperands is returned for more than two field operands.
	ErrOperands = errors.New("expected at most two operands")
)
