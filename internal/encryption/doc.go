// Package encryption composes a block cipher, a mode of operation and a padding scheme
// into a Suite that encrypts and decrypts whole messages, and processes files with it.
//
// Files are processed concurrently and written atomically. Every encrypted file starts with
// an envelope header naming the suite and carrying the IV. Decryption rejects files whose
// header names a suite other than the configured one.
package encryption
