package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gosym/internal/config"
	"github.com/idelchi/gosym/internal/logging"
	"github.com/idelchi/gosym/internal/logic"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(v *viper.Viper, cfg *config.Config, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "decrypt [flags] files...",
		Aliases: []string{"dec"},
		Short:   "Decrypt files",
		Long: `Decrypt files written by encrypt. The cipher, mode, padding and block size must match
the ones recorded in each file; the IV is read from the file.`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(v, cfg, true),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.Run(cmd.Context(), cfg, logging.New(cmd.ErrOrStderr(), cfg.Debug, version))
		},
	}

	addProcessingFlags(cmd)

	return cmd
}
