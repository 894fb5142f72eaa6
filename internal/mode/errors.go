package mode

import "errors"

var (
	// ErrMissingIV is returned when a mode other than ECB is constructed without an IV.
	ErrMissingIV = errors.New("initialization vector required")
	// ErrInvalidIV is returned when the IV length does not fit the mode and block size.
	ErrInvalidIV = errors.New("invalid initialization vector length")
	// ErrUnknownMode is returned for names or values outside the defined modes.
	ErrUnknownMode = errors.New("unknown mode of operation")
	// ErrNotBlockAligned is returned when the input is not a whole number of blocks.
	ErrNotBlockAligned = errors.New("input is not a multiple of the block size")
)
