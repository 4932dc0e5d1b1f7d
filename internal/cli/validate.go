package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/threemf-go/implicit/threemf"
)

// NewValidateCommand creates the validate command: parse a file's
// <implicitfunction> fragment and run the three-pass validator against
// it, printing every diagnostic.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "validate <file.xml>",
		Short:         "Parse and validate an <implicitfunction> fragment",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, rootOpts, args[0])
		},
	}
	return cmd
}

func runValidate(cmd *cobra.Command, rootOpts *RootOptions, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fn, warnings, err := threemf.ReadFunctionFrom(f, threemf.ReadOptions{Strict: rootOpts.Strict})
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	out := cmd.OutOrStdout()
	for _, w := range warnings {
		fmt.Fprintf(out, "warning: %s: %s\n", w.Kind, w.Message)
	}

	store := threemf.NewStore()
	v := &threemf.Validator{}
	diags := v.Validate(fn, store)
	if len(diags) == 0 {
		fmt.Fprintf(out, "function %q: valid (%d nodes)\n", fn.DisplayName, len(fn.Nodes))
		return nil
	}
	for _, d := range diags {
		fmt.Fprintln(out, d.String())
	}
	return fmt.Errorf("%d validation diagnostics", len(diags))
}
