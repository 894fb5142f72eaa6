package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gosym/internal/config"
	"github.com/idelchi/gosym/internal/logic"
)

// NewFieldCommand creates a new cobra command for the field subcommand.
func NewFieldCommand(v *viper.Viper, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "field [flags] [a [b]]",
		Short: "Query GF(2^8) arithmetic under --modulus",
		Long: `Without operands, list every irreducible modulus of degree 8.
With one hex operand, print its multiplicative inverse. With two, print their product.`,
		Args: cobra.MaximumNArgs(2), //nolint:mnd
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return load(v, cmd, cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			modulus, err := config.ParseModulus(cfg.Modulus)
			if err != nil {
				return err
			}

			return logic.RunField(cmd.OutOrStdout(), modulus, args)
		},
	}
}
