package encryption

import (
	"bytes"
	"fmt"
	"io"

	"github.com/idelchi/gosym/internal/mode"
	"github.com/idelchi/gosym/internal/padding"
)

const (
	envelopeMagic   = "GSYM"
	envelopeVersion = byte(1)

	envelopeFlagExec = 0x01

	// maxEnvelopeIV is the longest IV the one-byte length field can describe.
	maxEnvelopeIV = 0xFF
)

// Fixed part: magic, version, flags, algorithm, mode, padding, block size, IV length.
const envelopeHeaderSize = len(envelopeMagic) + 7

// envelope is the header written in front of every encrypted file.
type envelope struct {
	executable bool
	algorithm  Algorithm
	mode       mode.Kind
	padding    padding.Scheme
	blockSize  int
	iv         []byte
}

func newEnvelope(s *Suite, iv []byte, executable bool) (envelope, error) {
	if len(iv) > maxEnvelopeIV {
		return envelope{}, fmt.Errorf("%w: %d bytes, at most %d fit the header", ErrIVTooLong, len(iv), maxEnvelopeIV)
	}

	return envelope{
		executable: executable,
		algorithm:  s.Algorithm(),
		mode:       s.Mode(),
		padding:    s.Padding(),
		blockSize:  s.BlockSize(),
		iv:         iv,
	}, nil
}

func (e envelope) marshal() []byte {
	header := make([]byte, envelopeHeaderSize, envelopeHeaderSize+len(e.iv))
	copy(header, envelopeMagic)

	var flags byte

	if e.executable {
		flags |= envelopeFlagExec
	}

	fields := header[len(envelopeMagic):]
	fields[0] = envelopeVersion
	fields[1] = flags
	fields[2] = byte(e.algorithm)
	fields[3] = byte(e.mode)
	fields[4] = byte(e.padding)
	fields[5] = byte(e.blockSize)
	fields[6] = byte(len(e.iv))

	return append(header, e.iv...)
}

func readEnvelope(reader io.Reader) (envelope, error) {
	header := make([]byte, envelopeHeaderSize)
	if _, err := io.ReadFull(reader, header); err != nil {
		return envelope{}, fmt.Errorf("%w: reading header: %w", ErrProcessing, err)
	}

	if !bytes.Equal(header[:len(envelopeMagic)], []byte(envelopeMagic)) {
		return envelope{}, fmt.Errorf("%w: invalid envelope magic", ErrProcessing)
	}

	fields := header[len(envelopeMagic):]

	if version := fields[0]; version != envelopeVersion {
		return envelope{}, fmt.Errorf("%w: unsupported envelope version %d", ErrProcessing, version)
	}

	e := envelope{
		executable: fields[1]&envelopeFlagExec != 0,
		algorithm:  Algorithm(fields[2]),
		mode:       mode.Kind(fields[3]),
		padding:    padding.Scheme(fields[4]),
		blockSize:  int(fields[5]),
		iv:         make([]byte, fields[6]),
	}

	if _, err := io.ReadFull(reader, e.iv); err != nil {
		return envelope{}, fmt.Errorf("%w: reading iv: %w", ErrProcessing, err)
	}

	return e, nil
}

// matches reports an error when the envelope was written with a different suite than s.
func (e envelope) matches(s *Suite) error {
	if e.algorithm != s.Algorithm() || e.mode != s.Mode() || e.padding != s.Padding() || e.blockSize != s.BlockSize() {
		return fmt.Errorf("%w: file has %s/%s/%s with %d byte blocks, configured %s/%s/%s with %d byte blocks",
			ErrSuiteMismatch,
			e.algorithm, e.mode, e.padding, e.blockSize,
			s.Algorithm(), s.Mode(), s.Padding(), s.BlockSize())
	}

	return nil
}
