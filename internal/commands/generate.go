package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gosym/internal/config"
	"github.com/idelchi/gosym/internal/logic"
)

// NewGenerateCommand creates a new cobra command for the generate subcommand.
func NewGenerateCommand(v *viper.Viper, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "generate [flags]",
		Aliases: []string{"gen"},
		Short:   "Generate a random key, and an IV when the mode needs one",
		Example: `  eval "$(gosym generate --cipher rijndael --mode ctr)"`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := load(v, cmd, cfg); err != nil {
				return err
			}

			return cfg.Suite.Validate()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.RunGenerate(cmd.OutOrStdout(), cfg.Suite)
		},
	}
}
