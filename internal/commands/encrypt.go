package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gosym/internal/config"
	"github.com/idelchi/gosym/internal/logging"
	"github.com/idelchi/gosym/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(v *viper.Viper, cfg *config.Config, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt [flags] files...",
		Aliases: []string{"enc"},
		Short:   "Encrypt files",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(v, cfg, false),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.Run(cmd.Context(), cfg, logging.New(cmd.ErrOrStderr(), cfg.Debug, version))
		},
	}

	addProcessingFlags(cmd)

	return cmd
}
