package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Parse and validate a netlist",
	Long: `Parse the given files as one netlist and check it: every name is
unique in its namespace, every wire connects existing ports with compatible
drivers, and every port is connected at most once.

Unconnected inputs are reported as warnings; the number reported one by one
is limited by warning_limit in the configuration file.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	sink := newSink(cmd.ErrOrStderr())
	nl, err := loadNetlist(cmd.InOrStdin(), args, sink)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	okColor.Fprintln(out, "Netlist parsed successfully.")
	fmt.Fprintf(out, "%d types, %d cells, %d wires\n", len(nl.Types), len(nl.Cells), len(nl.Wires))
	if nl.Unconnected > 0 {
		fmt.Fprintf(out, "%d unconnected ports\n", nl.Unconnected)
	}
	return nil
}
