package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const typesFile = `# gate library
type INV a y:out;
type NAND a b y:out;
type PAD p:inout;
signal clk:yellow;
`

const cellsFile = `cell u1:NAND;
cell u2:INV;
cell pad:PAD;
wire n1:clk u1.y -> u2.a;
wire io pad.p -> u1.a;
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func runCommand(args []string, stdin string) (string, string, error) {
	// Reset flags to prevent accumulation between tests
	verbose = false
	configPath = ""
	logLevel = "warn"
	logFormat = "text"
	noColor = false
	infoTypes = false
	exportFormat = "json"
	exportOutput = ""

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--no-color"}, args...))

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// TestCommandsE2E runs every command against files on disk.
func TestCommandsE2E(t *testing.T) {
	dir := t.TempDir()
	types := writeFile(t, dir, "types.nl", typesFile)
	cells := writeFile(t, dir, "cells.nl", cellsFile)
	broken := writeFile(t, dir, "broken.nl", "cell u3:NOPE;\n")
	extra := writeFile(t, dir, "extra.nl", "cell u9:NAND;\n")
	cfgFile := writeFile(t, dir, "cfg.toml", "warning_limit = 1\n")
	badCfg := writeFile(t, dir, "bad.toml", "warning_limit = -1\n")

	tests := []struct {
		name         string
		args         []string
		wantErr      bool
		wantContain  []string
		wantStderr   []string
		wantNoStderr []string
	}{
		{
			name:        "check",
			args:        []string{"check", types, cells},
			wantContain: []string{"Netlist parsed successfully.", "3 types, 3 cells, 2 wires", "1 unconnected ports"},
			wantStderr:  []string{"warning: ", "cells.nl:1:1: port 'b' of cell 'u1' (type 'NAND') is not connected"},
		},
		{
			name:         "check with warning limit from config",
			args:         []string{"check", "--config", cfgFile, types, cells, extra},
			wantContain:  []string{"3 unconnected ports"},
			wantStderr:   []string{"port 'b' of cell 'u1'", "2 more unconnected ports"},
			wantNoStderr: []string{"cell 'u9'"},
		},
		{
			name:    "check with invalid config",
			args:    []string{"check", "--config", badCfg, types, cells},
			wantErr: true,
		},
		{
			name:        "check json logging",
			args:        []string{"check", "--log-format", "json", types, cells},
			wantContain: []string{"Netlist parsed successfully."},
			wantStderr:  []string{`"level":"WARN"`, `"file":"`, `"line":1`},
		},
		{
			name:    "check semantic error",
			args:    []string{"check", types, broken},
			wantErr: true,
		},
		{
			name:    "check missing file",
			args:    []string{"check", filepath.Join(dir, "nope.nl")},
			wantErr: true,
		},
		{
			name:        "dump",
			args:        []string{"dump", types, cells},
			wantContain: []string{"signal clk:yellow;", `type NAND a:in b:in y:out doc "";`, "wire io pad.p -> u1.a;", "wire n1:clk u1.y -> u2.a;"},
		},
		{
			name:        "info",
			args:        []string{"info", "--types", types, cells},
			wantContain: []string{"Cells:       3", "Connections: 4", "Unconnected: 1", "NAND", "1 cells"},
		},
		{
			name:        "export json",
			args:        []string{"export", types, cells},
			wantContain: []string{`"generated_by": "nlcheck"`, `"name": "u1"`},
		},
		{
			name:        "export kicad",
			args:        []string{"export", "--format", "kicad", types, cells},
			wantContain: []string{"(export (version D)", `(net (code 1) (name "io")`},
		},
		{
			name:    "export unknown format",
			args:    []string{"export", "--format", "spice", types, cells},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, stderr, err := runCommand(tt.args, "")

			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v\nOutput: %s", err, output)
				return
			}

			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
				}
			}
			for _, want := range tt.wantStderr {
				if !strings.Contains(stderr, want) {
					t.Errorf("Stderr missing expected string: %q\nGot:\n%s", want, stderr)
				}
			}
			for _, unwanted := range tt.wantNoStderr {
				if strings.Contains(stderr, unwanted) {
					t.Errorf("Stderr contains unexpected string: %q\nGot:\n%s", unwanted, stderr)
				}
			}
		})
	}
}

// TestStdinE2E reads the netlist from standard input.
func TestStdinE2E(t *testing.T) {
	output, _, err := runCommand([]string{"check"}, typesFile+cellsFile)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(output, "Netlist parsed successfully.") {
		t.Errorf("Unexpected output:\n%s", output)
	}

	_, _, err = runCommand([]string{"check"}, "type A a")
	if err == nil || err.Error() != "1:1: end of file expected" {
		t.Errorf("Expected end of file error, got %v", err)
	}
}

// TestDumpRoundTrip feeds the dump output back into check.
func TestDumpRoundTrip(t *testing.T) {
	dir := t.TempDir()
	types := writeFile(t, dir, "types.nl", typesFile)
	cells := writeFile(t, dir, "cells.nl", cellsFile)

	first, _, err := runCommand([]string{"dump", types, cells}, "")
	if err != nil {
		t.Fatalf("Failed to dump: %v", err)
	}
	second, _, err := runCommand([]string{"dump"}, first)
	if err != nil {
		t.Fatalf("Failed to dump canonical output: %v\n%s", err, first)
	}
	if first != second {
		t.Errorf("Dump is not stable:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestExportToFile(t *testing.T) {
	dir := t.TempDir()
	types := writeFile(t, dir, "types.nl", typesFile)
	cells := writeFile(t, dir, "cells.nl", cellsFile)
	out := filepath.Join(dir, "chip.net")

	if _, _, err := runCommand([]string{"export", "-f", "kicad", "-o", out, types, cells}, ""); err != nil {
		t.Fatalf("Failed to export: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	if !strings.HasPrefix(string(data), "(export (version D)") {
		t.Errorf("Unexpected export:\n%s", data)
	}
}

func TestPrintError(t *testing.T) {
	_, _, err := runCommand([]string{"check"}, "cell u1:NOPE;")
	if err == nil {
		t.Fatal("Expected error")
	}
	var buf bytes.Buffer
	printError(&buf, err)
	if got, want := buf.String(), "error: 1:1: type 'NOPE' not found (semantic error)\n"; got != want {
		t.Errorf("printError = %q, want %q", got, want)
	}
}
