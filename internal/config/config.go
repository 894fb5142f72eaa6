// Package config holds the command-line configuration and its validation.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/idelchi/gogen/pkg/validator"
)

// Suite selects the cipher, mode of operation and padding.
type Suite struct {
	// Cipher is one of des, deal or rijndael.
	Cipher string `mapstructure:"cipher" validate:"oneof=des deal rijndael"`

	// Mode is the mode of operation.
	Mode string `mapstructure:"mode" validate:"oneof=ecb cbc pcbc cfb ofb ctr rd"`

	// Padding is the padding scheme.
	Padding string `mapstructure:"padding" validate:"oneof=pkcs7 ansix923 iso10126 zeros"`

	// BlockSize is the Rijndael block size in bytes. The other ciphers have fixed blocks.
	BlockSize int `mapstructure:"block-size" validate:"oneof=16 24 32"`

	// Modulus is the low byte of the Rijndael field polynomial, hex-encoded.
	Modulus string `mapstructure:"modulus" validate:"required,hexadecimal,max=5"`

	// IV is the hex-encoded initialization vector. Encryption generates one when empty.
	IV string `mapstructure:"iv" validate:"omitempty,hexadecimal"`
}

// Config holds the settings of the encrypt and decrypt commands.
type Config struct {
	Suite `mapstructure:",squash"`

	// Key is the hex-encoded cipher key.
	Key string `mapstructure:"key" validate:"required_without=KeyFile,exclusive=KeyFile"`

	// KeyFile is a path to a file holding the hex-encoded key.
	KeyFile string `mapstructure:"key-file" validate:"omitempty,file"`

	// Profile is a JSONC file with defaults for the suite and key settings.
	Profile string `mapstructure:"profile" validate:"omitempty,file"`

	// Parallel is the number of files processed at once.
	Parallel int `mapstructure:"parallel" validate:"min=1"`

	// Workers is the number of block tasks run at once, shared by all files. Zero means one per CPU.
	Workers int `mapstructure:"workers" validate:"min=0"`

	// Suffixes appended to output files.
	Suffixes Suffixes `mapstructure:",squash"`

	Quiet              bool `mapstructure:"quiet"`
	Delete             bool `mapstructure:"delete"`
	Stats              bool `mapstructure:"stats"`
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`
	Debug              bool `mapstructure:"debug"`

	// Decrypt is set by the decrypt command.
	Decrypt bool `mapstructure:"-"`

	// Files are the positional arguments.
	Files []string `mapstructure:"-" validate:"min=1"`
}

// Suffixes are the file name suffixes used for outputs.
type Suffixes struct {
	// Encrypt is appended to encrypted files and stripped when decrypting.
	Encrypt string `mapstructure:"encrypt-ext" validate:"required"`
	// Decrypt is appended to decrypted files.
	Decrypt string `mapstructure:"decrypt-ext"`
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	validate, err := newValidator()
	if err != nil {
		return err
	}

	if errs := validate.Validate(c); len(errs) > 0 {
		return fmt.Errorf("validating configuration: %w", errors.Join(errs...))
	}

	return nil
}

// Validate checks the suite selection alone.
func (s *Suite) Validate() error {
	validate, err := newValidator()
	if err != nil {
		return err
	}

	if errs := validate.Validate(s); len(errs) > 0 {
		return fmt.Errorf("validating suite: %w", errors.Join(errs...))
	}

	return nil
}

// ModulusByte parses Modulus. A leading 0x is optional and a leading 1 for the x^8 term
// is accepted, so "1b", "0x1B" and "11b" all select the AES polynomial.
func (s *Suite) ModulusByte() (byte, error) {
	return ParseModulus(s.Modulus)
}

// ParseModulus parses a hex-encoded field modulus; see Suite.ModulusByte.
func ParseModulus(text string) (byte, error) {
	text = strings.TrimPrefix(strings.ToLower(text), "0x")

	value, err := strconv.ParseUint(text, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("parsing modulus %q: %w", text, err)
	}

	const x8 = 0x100

	if value >= 2*x8 {
		return 0, fmt.Errorf("parsing modulus %q: %w", text, ErrModulusRange)
	}

	return byte(value), nil
}

func newValidator() (*validator.Validator, error) {
	validate := validator.NewValidator()

	if err := registerExclusive(validate); err != nil {
		return nil, err
	}

	return validate, nil
}
