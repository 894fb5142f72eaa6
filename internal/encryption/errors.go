package encryption

import "errors"

var (
	// ErrUnknownAlgorithm is returned for cipher names or values outside the defined set.
	ErrUnknownAlgorithm = errors.New("unknown cipher")
	// ErrProcessing indicates an error during envelope processing.
	ErrProcessing = errors.New("envelope processing error")
	// ErrSuiteMismatch is returned when an envelope was written with a different suite.
	ErrSuiteMismatch = errors.New("envelope suite does not match configuration")
	// ErrIVTooLong is returned for IVs that the envelope header cannot record.
	ErrIVTooLong = errors.New("iv too long for envelope")
)
