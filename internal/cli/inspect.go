package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/threemf-go/implicit/threemf"
)

// NewInspectCommand creates the inspect command: print a human-readable
// summary of a function's node/port counts, grouped by opcode.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "inspect <file.xml>",
		Short:         "Summarize an <implicitfunction> fragment's nodes and ports",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, rootOpts, args[0])
		},
	}
	return cmd
}

func runInspect(cmd *cobra.Command, rootOpts *RootOptions, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fn, _, err := threemf.ReadFunctionFrom(f, threemf.ReadOptions{Strict: rootOpts.Strict})
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "function %q (id=%d)\n", fn.DisplayName, fn.ResourceID)
	fmt.Fprintf(out, "  %s inputs, %s outputs, %s nodes\n",
		humanize.Comma(int64(len(fn.Inputs))),
		humanize.Comma(int64(len(fn.Outputs))),
		humanize.Comma(int64(len(fn.Nodes))))

	var ports, links int
	byOpcode := map[string]int{}
	for _, n := range fn.Nodes {
		byOpcode[n.Opcode.String()]++
		ports += len(n.Inputs) + len(n.Outputs)
		for _, in := range n.Inputs {
			if in.Linked() {
				links++
			}
		}
	}
	fmt.Fprintf(out, "  %s ports, %s links\n", humanize.Comma(int64(ports)), humanize.Comma(int64(links)))

	for _, op := range sortedKeys(byOpcode) {
		fmt.Fprintf(out, "    %-20s %d\n", op, byOpcode[op])
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
