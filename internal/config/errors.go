package config

import "errors"

// ErrModulusRange is returned for a modulus above x^8 + 0xFF.
var ErrModulusRange = errors.New("modulus must describe a polynomial of degree 8")
