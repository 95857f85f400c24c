package cmd

import (
	"fmt"

	"github.com/OpenTraceLab/nlcheck/pkg/netlist"
	"github.com/spf13/cobra"
)

var infoTypes bool

var infoCmd = &cobra.Command{
	Use:   "info [files...]",
	Short: "Show netlist statistics",
	Long: `Display summary counts for a validated netlist.

With --types, also list every type with its ports and the number of cells
that instantiate it.`,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().BoolVar(&infoTypes, "types", false, "list types and their cell counts")
}

func runInfo(cmd *cobra.Command, args []string) error {
	nl, err := loadNetlist(cmd.InOrStdin(), args, netlist.DiscardSink{})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Statistics:")
	fmt.Fprintf(out, "  Types:       %d\n", len(nl.Types))
	fmt.Fprintf(out, "  Cells:       %d\n", len(nl.Cells))
	fmt.Fprintf(out, "  Wires:       %d\n", len(nl.Wires))
	fmt.Fprintf(out, "  Signals:     %d\n", len(nl.Signals))
	fmt.Fprintf(out, "  Categories:  %d\n", len(nl.Categories))
	fmt.Fprintf(out, "  Labels:      %d\n", len(nl.Labels))
	fmt.Fprintf(out, "  Connections: %d\n", len(nl.Cons))
	fmt.Fprintf(out, "  Unconnected: %d\n", nl.Unconnected)

	if !infoTypes {
		return nil
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Types:")
	for _, name := range nl.TypeNames() {
		t := nl.Types[name]
		fmt.Fprintf(out, "  %-20s %3d cells  ", netlist.Unbar(t.Name), len(nl.CellsOfType(name)))
		for i, p := range t.Ports {
			if i > 0 {
				fmt.Fprint(out, " ")
			}
			fmt.Fprint(out, p)
		}
		fmt.Fprintln(out)
	}
	return nil
}
