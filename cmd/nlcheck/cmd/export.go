package cmd

import (
	"fmt"
	"os"

	"github.com/OpenTraceLab/nlcheck/pkg/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export [files...]",
	Short: "Export the netlist as JSON or KiCad netlist",
	Long: `Validate the netlist and write it in an exchange format.

Formats:
  json    all definitions, with connections resolved per cell port
  kicad   KiCad netlist (version D): cells as components, wires as nets

Examples:
  nlcheck export --format json chip.nl
  nlcheck export --format kicad -o chip.net chip.nl`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "output format: json or kicad")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "json" && exportFormat != "kicad" {
		return fmt.Errorf("unknown export format %q (want json or kicad)", exportFormat)
	}

	nl, err := loadNetlist(cmd.InOrStdin(), args, newSink(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}

	var data []byte
	switch exportFormat {
	case "json":
		data, err = export.JSON(nl)
		data = append(data, '\n')
	case "kicad":
		var s string
		s, err = export.KiCad(nl)
		data = []byte(s)
	}
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	if exportOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(exportOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOutput, err)
	}
	logger.Info("netlist exported", "format", exportFormat, "file", exportOutput)
	return nil
}
