package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/gosym/internal/config"
)

// NewRootCommand creates the root command with common configuration.
// Suite and key flags are persistent so every subcommand shares them.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "gosym [flags] command [flags]"
	root.Short = "Symmetric block cipher toolkit"
	root.Long = `A symmetric encryption utility built on DES, DEAL and Rijndael with a choice of
mode of operation and padding. Rijndael accepts any irreducible field modulus.
Every flag can also be set through a GOSYM_ prefixed environment variable, for example GOSYM_KEY.`
	root.SilenceErrors = true

	flags := root.PersistentFlags()

	flags.String("cipher", "des", "Block cipher: des, deal or rijndael")
	flags.String("mode", "cbc", "Mode of operation: ecb, cbc, pcbc, cfb, ofb, ctr or rd")
	flags.String("padding", "pkcs7", "Padding scheme: pkcs7, ansix923, iso10126 or zeros")
	flags.Int("block-size", 16, "Rijndael block size in bytes: 16, 24 or 32") //nolint:mnd
	flags.String("modulus", "1b", "Rijndael field modulus, hex without the x^8 term")
	flags.String("iv", "", "Initialization vector, hex-encoded. Generated per file when empty")

	flags.StringP("key", "k", "", "Encryption key, hex-encoded")
	flags.StringP("key-file", "f", "", "Path to the key file with the hex-encoded encryption key")
	flags.String("profile", "", "JSONC file with defaults for any flag")
	flags.Bool("debug", false, "Enable debug logging")

	v := newViper()

	root.AddCommand(
		NewEncryptCommand(v, cfg, version),
		NewDecryptCommand(v, cfg, version),
		NewGenerateCommand(v, cfg),
		NewFieldCommand(v, cfg),
	)

	return root
}
