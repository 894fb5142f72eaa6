package rijndael

import "errors"

// ErrReducibleModulus is returned when the field modulus is zero or x^8 + modulus factors.
var ErrReducibleModulus = errors.New("rijndael: field modulus is not irreducible")
