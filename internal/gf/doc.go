// Package gf implements arithmetic over GF(2^8) with a caller-chosen reduction polynomial.
//
// Elements are bytes whose bits are the coefficients of a polynomial of degree at most 7.
// A modulus byte m stands for the degree-8 polynomial x^8 + m: the x^8 term is implicit,
// so 0x1B selects the AES polynomial x^8 + x^4 + x^3 + x + 1.
package gf
