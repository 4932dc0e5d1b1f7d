// Package cli implements the threemf-implicit command tree: validate,
// roundtrip, inspect, and catalog. One NewXCommand constructor per verb,
// a RootOptions struct carrying global flags, RunE closures.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by every subcommand.
type RootOptions struct {
	Strict bool
}

// NewRootCommand creates the root command for the threemf-implicit CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "threemf-implicit",
		Short: "Inspect and validate 3MF implicit-function XML fragments",
		Long: `threemf-implicit reads, validates, round-trips, and inspects the
<implicitfunction> XML fragment used by the 3MF volumetric extension.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&opts.Strict, "strict", false, "reject negative accuraterange instead of clamping to 0")

	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewRoundtripCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewCatalogCommand())

	return cmd
}
