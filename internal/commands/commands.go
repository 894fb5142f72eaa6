package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gosym/internal/config"
)

const envPrefix = "GOSYM"

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// load binds the command flags, merges the profile below them and unmarshals into cfg.
func load(v *viper.Viper, cmd *cobra.Command, cfg *config.Config) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if profile := v.GetString("profile"); profile != "" {
		settings, err := config.LoadProfile(profile)
		if err != nil {
			return err
		}

		if err := v.MergeConfigMap(settings); err != nil {
			return fmt.Errorf("merging profile: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	return nil
}

// preRun returns a PreRunE handler that loads the configuration, records the positional args
// as cfg.Files and validates the result.
func preRun(v *viper.Viper, cfg *config.Config, decrypt bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := load(v, cmd, cfg); err != nil {
			return err
		}

		cfg.Files = args
		cfg.Decrypt = decrypt

		return cfg.Validate()
	}
}

// addProcessingFlags registers the flags shared by encrypt and decrypt.
func addProcessingFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("parallel", "j", runtime.NumCPU(), "Number of files processed at once, defaults to number of CPUs")
	cmd.Flags().Int("workers", 0, "Number of block tasks run at once across all files, 0 for one per CPU")
	cmd.Flags().BoolP("quiet", "q", false, "Suppress non-error output")
	cmd.Flags().BoolP("delete", "d", false, "Delete the original file after successful encryption/decryption")
	cmd.Flags().Bool("stats", false, "Print statistics when done")
	cmd.Flags().Bool("preserve-timestamps", false, "Copy the modification time of the input to the output")

	cmd.Flags().String("encrypt-ext", ".enc", "Suffix to append to encrypted files")
	cmd.Flags().String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")
}
