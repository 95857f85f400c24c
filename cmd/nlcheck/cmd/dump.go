package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [files...]",
	Short: "Print the netlist in canonical form",
	Long: `Validate the netlist and print it back in the input language with
names in canonical bar form and every section in sorted order. Feeding the
output back to nlcheck yields the same netlist.`,
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	nl, err := loadNetlist(cmd.InOrStdin(), args, newSink(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), nl.String())
	return nil
}
