package permutation

import "errors"

var (
	// ErrIndexOutOfRange is returned when a table entry selects a bit outside the input.
	ErrIndexOutOfRange = errors.New("permutation index out of range")
	// ErrEmptyInput is returned when the input holds no bytes.
	ErrEmptyInput = errors.New("empty permutation input")
	// ErrUnknownRule is returned for a Rule outside the defined set.
	ErrUnknownRule = errors.New("unknown indexing rule")
)
