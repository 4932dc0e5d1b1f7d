package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/threemf-go/implicit/threemf"
)

// catalogEntry is the YAML-serializable projection of one opcode's
// Signature, for the catalog --format=yaml dump used to generate format
// documentation from the live registry rather than hand-maintained docs.
type catalogEntry struct {
	Opcode  string   `yaml:"opcode"`
	Inputs  []string `yaml:"inputs,omitempty"`
	Outputs []string `yaml:"outputs,omitempty"`
	Configs []string `yaml:"configs,omitempty"`
	Dynamic bool     `yaml:"dynamic,omitempty"`
}

// NewCatalogCommand creates the catalog command: dump the node-type
// catalog's signatures, either as plain text or, with --format=yaml, as a
// YAML document suitable for feeding a documentation generator.
func NewCatalogCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:           "catalog",
		Short:         "List the opcode signature catalog",
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(cmd, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text|yaml")
	return cmd
}

func runCatalog(cmd *cobra.Command, format string) error {
	opcodes := threemf.Opcodes()
	entries := make([]catalogEntry, 0, len(opcodes))
	for _, op := range opcodes {
		sig, ok := threemf.LookupSignature(op)
		if !ok {
			continue
		}
		e := catalogEntry{Opcode: op.String(), Dynamic: sig.Dynamic}
		for _, p := range sig.Inputs {
			e.Inputs = append(e.Inputs, p.ID)
		}
		for _, p := range sig.Outputs {
			e.Outputs = append(e.Outputs, p.ID)
		}
		for _, c := range sig.Configs {
			e.Configs = append(e.Configs, c.String())
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Opcode < entries[j].Opcode })

	out := cmd.OutOrStdout()
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(entries)
	case "text":
		for _, e := range entries {
			fmt.Fprintf(out, "%-16s in=%v out=%v configs=%v dynamic=%v\n", e.Opcode, e.Inputs, e.Outputs, e.Configs, e.Dynamic)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q: want text or yaml", format)
	}
}
