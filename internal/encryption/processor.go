package encryption

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/gogen/pkg/key"
	"github.com/idelchi/gosym/internal/config"
	"github.com/idelchi/gosym/internal/fileutil"
	"github.com/idelchi/gosym/internal/mode"
	"github.com/idelchi/gosym/internal/padding"
)

// Processor handles the encryption and decryption of files.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// suite is the configured cipher, mode and padding
	suite *Suite

	// iv is the configured IV; empty means a fresh IV per encrypted file
	iv []byte

	// results channels processing outcomes to the printer goroutine
	results chan Result

	log *logrus.Entry
}

// NewProcessor decodes the key and IV from cfg and builds the suite. Block tasks of all
// files share pool.
func NewProcessor(cfg *config.Config, pool *mode.Pool, log *logrus.Entry) (*Processor, error) {
	params, err := ParamsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	configured := params.IV

	if len(configured) > maxEnvelopeIV {
		return nil, fmt.Errorf("%w: %d bytes, at most %d fit the header", ErrIVTooLong, len(configured), maxEnvelopeIV)
	}

	if len(params.IV) == 0 {
		// Placeholder so the mode validates; every file gets its own IV.
		if params.IV, err = RandomIV(params.Mode, params.Algorithm.BlockSize(params.BlockSize)); err != nil {
			return nil, err
		}
	}

	suite, err := NewSuite(params, pool)
	if err != nil {
		return nil, fmt.Errorf("creating suite: %w", err)
	}

	return &Processor{
		cfg:     cfg,
		suite:   suite,
		iv:      configured,
		results: make(chan Result, len(cfg.Files)),
		log: log.WithFields(logrus.Fields{
			"cipher":  suite.Algorithm(),
			"mode":    suite.Mode(),
			"padding": suite.Padding(),
		}),
	}, nil
}

// ParamsFromConfig parses the suite selection and reads the key.
func ParamsFromConfig(cfg *config.Config) (Params, error) {
	algorithm, err := ParseAlgorithm(cfg.Cipher)
	if err != nil {
		return Params{}, err
	}

	kind, err := mode.Parse(cfg.Mode)
	if err != nil {
		return Params{}, err
	}

	scheme, err := padding.Parse(cfg.Padding)
	if err != nil {
		return Params{}, err
	}

	modulus, err := cfg.ModulusByte()
	if err != nil {
		return Params{}, err
	}

	encryptionKey, err := readKey(cfg)
	if err != nil {
		return Params{}, fmt.Errorf("reading key: %w", err)
	}

	var iv []byte

	if cfg.IV != "" {
		if iv, err = key.FromHex(trimHexPrefix(cfg.IV)); err != nil {
			return Params{}, fmt.Errorf("decoding iv: %w", err)
		}
	}

	return Params{
		Algorithm: algorithm,
		Key:       encryptionKey,
		BlockSize: cfg.BlockSize,
		Modulus:   modulus,
		Mode:      kind,
		IV:        iv,
		Padding:   scheme,
	}, nil
}

func readKey(cfg *config.Config) ([]byte, error) {
	switch {
	case cfg.Key != "":
		return key.FromHex(cfg.Key)
	case cfg.KeyFile != "":
		data, err := os.ReadFile(cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("reading key file: %w", err)
		}

		return key.FromHex(strings.TrimSpace(string(data)))
	default:
		return nil, fmt.Errorf("%w: no key configured", ErrProcessing)
	}
}

// trimHexPrefix drops a leading 0x or 0X.
func trimHexPrefix(text string) string {
	if len(text) >= 2 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X') {
		return text[2:]
	}

	return text
}

// RandomIV returns a random IV sized for kind, or nil for ECB.
func RandomIV(kind mode.Kind, blockSize int) ([]byte, error) {
	size := kind.IVSize(blockSize)
	if size == 0 {
		return nil, nil
	}

	iv, err := key.New(size)
	if err != nil {
		return nil, fmt.Errorf("generating iv: %w", err)
	}

	return iv, nil
}

// ProcessFiles concurrently processes all files specified in the configuration.
// It encrypts or decrypts files based on the configuration settings.
// Returns the number of successfully processed files and the number of errors.
//
//nolint:cyclop,gocognit
func (p *Processor) ProcessFiles(ctx context.Context) (processed, errored int, inSize, outSize int64, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Error != nil {
				errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", result.Input, result.Error)
			} else {
				processed++

				inSize += result.InputSize
				outSize += result.OutputSize

				if !p.cfg.Quiet {
					fmt.Printf("Processed %q -> %q\n", result.Input, result.Output) //nolint:forbidigo
				}
			}

			if p.cfg.Delete && result.Error == nil {
				if err := os.Remove(result.Input); err != nil {
					fmt.Fprintf(os.Stderr, "Error deleting %q: %v\n", result.Input, err)
				} else if !p.cfg.Quiet {
					fmt.Printf("Deleted %q\n", result.Input) //nolint:forbidigo
				}
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			outPath := p.outputPath(file)

			in, out, err := p.processFile(ctx, file, outPath)
			if err != nil {
				p.log.WithField("file", file).WithError(err).Debug("failed")
				p.results <- Result{Input: file, Error: err}

				return err
			}

			p.log.WithFields(logrus.Fields{"file": file, "output": outPath, "bytes": out}).Debug("processed")
			p.results <- Result{Input: file, Output: outPath, InputSize: in, OutputSize: out}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	if err != nil {
		return processed, errored, inSize, outSize, fmt.Errorf("processing files: %w", err)
	}

	return processed, errored, inSize, outSize, nil
}

// encrypt reads all of reader, encrypts it and writes envelope and ciphertext to writer.
func (p *Processor) encrypt(ctx context.Context, reader io.Reader, writer io.Writer, isExec bool) error {
	iv := p.iv

	if len(iv) == 0 {
		var err error

		if iv, err = RandomIV(p.suite.Mode(), p.suite.BlockSize()); err != nil {
			return err
		}
	}

	suite, err := p.suite.WithIV(iv)
	if err != nil {
		return err
	}

	header, err := newEnvelope(suite, iv, isExec)
	if err != nil {
		return err
	}

	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	ciphertext, err := suite.Encrypt(ctx, plaintext)
	if err != nil {
		return err
	}

	if _, err := writer.Write(header.marshal()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if _, err := writer.Write(ciphertext); err != nil {
		return fmt.Errorf("writing ciphertext: %w", err)
	}

	return nil
}

// decrypt reads an envelope and ciphertext from reader and writes the plaintext to writer.
// It returns whether the original file was executable.
func (p *Processor) decrypt(ctx context.Context, reader io.Reader, writer io.Writer) (bool, error) {
	header, err := readEnvelope(reader)
	if err != nil {
		return false, err
	}

	if err := header.matches(p.suite); err != nil {
		return false, err
	}

	suite := p.suite

	if header.mode.NeedsIV() {
		if suite, err = p.suite.WithIV(header.iv); err != nil {
			return false, err
		}
	}

	ciphertext, err := io.ReadAll(reader)
	if err != nil {
		return false, fmt.Errorf("reading input: %w", err)
	}

	plaintext, err := suite.Decrypt(ctx, ciphertext)
	if err != nil {
		return false, err
	}

	if _, err := writer.Write(plaintext); err != nil {
		return false, fmt.Errorf("writing plaintext: %w", err)
	}

	return header.executable, nil
}

// processFile handles the encryption or decryption of a single file.
// It creates a temporary file for output and performs an atomic rename on completion.
func (p *Processor) processFile(ctx context.Context, filename, outPath string) (inSize, outSize int64, err error) {
	tc, err := fileutil.NewTempContext(filename, outPath)
	if err != nil {
		return 0, 0, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	inFile, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return 0, 0, fmt.Errorf("opening input file: %w", err)
	}
	defer inFile.Close()

	executable := tc.IsExec

	if p.cfg.Decrypt {
		if executable, err = p.decrypt(ctx, inFile, tc.TmpFile); err != nil {
			return 0, 0, fmt.Errorf("decrypting file: %w", err)
		}
	} else if err = p.encrypt(ctx, inFile, tc.TmpFile, tc.IsExec); err != nil {
		return 0, 0, fmt.Errorf("encrypting file: %w", err)
	}

	if err = tc.Commit(outPath, executable); err != nil {
		return 0, 0, err
	}

	outSize, err = fileutil.FinalizeOutput(outPath, p.cfg.PreserveTimestamps, tc.SrcInfo.ModTime())
	if err != nil {
		return 0, 0, fmt.Errorf("finalizing output: %w", err)
	}

	return tc.SrcInfo.Size(), outSize, nil
}

// outputPath generates the output file path based on the input filename
// and the configured suffixes for encryption/decryption.
func (p *Processor) outputPath(filename string) string {
	return OutputPath(filename, p.cfg)
}

// OutputPath returns where filename is written: the encrypt suffix is appended when
// encrypting, and stripped before appending the decrypt suffix when decrypting.
func OutputPath(filename string, cfg *config.Config) string {
	ext := cfg.Suffixes.Encrypt

	if cfg.Decrypt {
		filename = strings.TrimSuffix(filename, cfg.Suffixes.Encrypt)
		ext = cfg.Suffixes.Decrypt
	}

	return filepath.Join(filepath.Dir(filename), filepath.Base(filename)+ext)
}
