// Package logic implements the command behavior on top of the cipher packages.
package logic

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/idelchi/gogen/pkg/key"
	"github.com/idelchi/gosym/internal/config"
	"github.com/idelchi/gosym/internal/encryption"
	"github.com/idelchi/gosym/internal/gf"
	"github.com/idelchi/gosym/internal/mode"
)

// Run encrypts or decrypts cfg.Files.
func Run(ctx context.Context, cfg *config.Config, log *logrus.Entry) error {
	start := time.Now()

	pool := mode.NewPool(cfg.Workers)

	log.WithFields(logrus.Fields{
		"files":    len(cfg.Files),
		"parallel": cfg.Parallel,
		"workers":  pool.Size(),
		"decrypt":  cfg.Decrypt,
	}).Debug("starting")

	proc, err := encryption.NewProcessor(cfg, pool, log)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	processed, errored, inSize, outSize, err := proc.ProcessFiles(ctx)

	if cfg.Stats {
		printStats(os.Stderr, processed, errored, inSize, outSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("running logic: %w", err)
	}

	return nil
}

// RunGenerate writes a random key of the largest size the selected cipher accepts, followed by
// an IV when the mode needs one. Lines are formatted as environment assignments.
func RunGenerate(w io.Writer, suite config.Suite) error {
	algorithm, err := encryption.ParseAlgorithm(suite.Cipher)
	if err != nil {
		return err
	}

	kind, err := mode.Parse(suite.Mode)
	if err != nil {
		return err
	}

	sizes := algorithm.KeySizes()

	generated, err := key.New(sizes[len(sizes)-1])
	if err != nil {
		return fmt.Errorf("generating key: %w", err)
	}

	fmt.Fprintf(w, "GOSYM_KEY=%s\n", generated.AsHex())

	iv, err := encryption.RandomIV(kind, algorithm.BlockSize(suite.BlockSize))
	if err != nil {
		return err
	}

	if len(iv) > 0 {
		fmt.Fprintf(w, "GOSYM_IV=%s\n", key.Key(iv).AsHex())
	}

	return nil
}

// RunField reports on GF(2^8) under modulus. Without operands it lists every irreducible
// modulus, with one it prints the inverse and with two the product.
func RunField(w io.Writer, modulus byte, operands []string) error {
	values := make([]byte, 0, len(operands))

	for _, operand := range operands {
		value, err := parseElement(operand)
		if err != nil {
			return err
		}

		values = append(values, value)
	}

	switch len(values) {
	case 0:
		for _, m := range gf.IrreduciblePolynomials() {
			fmt.Fprintf(w, "%#x\n", 0x100|uint16(m))
		}

		return nil
	case 1:
		irreducible, err := gf.IsIrreducible(modulus)
		if err != nil {
			return err
		}

		if !irreducible {
			return fmt.Errorf("%w: %#x", ErrReducible, 0x100|uint16(modulus))
		}

		inverse, err := gf.Inverse(values[0], modulus)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%02x\n", inverse)
	case 2:
		product, err := gf.Multiply(values[0], values[1], modulus)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%02x\n", product)
	default:
		return fmt.Errorf("%w: got %d", ErrOperands, len(values))
	}

	return nil
}

func parseElement(text string) (byte, error) {
	value, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(text), "0x"), 16, 8)
	if err != nil {
		return 0, fmt.Errorf("parsing field element %q: %w", text, err)
	}

	return byte(value), nil
}

func printStats(w io.Writer, processed, errored int, inSize, outSize int64, duration time.Duration) {
	fmt.Fprintf(w, "\nStats\n")
	fmt.Fprintf(w, "  Processed: %d\n", processed)
	fmt.Fprintf(w, "  Errors:    %d\n", errored)
	//nolint:gosec // sizes are sums of file sizes
	fmt.Fprintf(w, "  Input:     %s\n", humanize.IBytes(uint64(max(0, inSize))))
	//nolint:gosec // sizes are sums of file sizes
	fmt.Fprintf(w, "  Output:    %s\n", humanize.IBytes(uint64(max(0, outSize))))
	fmt.Fprintf(w, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
