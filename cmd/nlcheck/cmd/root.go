package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/OpenTraceLab/nlcheck/pkg/netlist"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// DefaultConfigFile is read from the working directory when --config is not
// given.
const DefaultConfigFile = "nlcheck.toml"

var (
	// Global flags
	verbose    bool
	configPath string
	logLevel   string
	logFormat  string
	noColor    bool

	logger *slog.Logger
	cfg    *netlist.Config
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	okColor      = color.New(color.FgGreen)
)

var rootCmd = &cobra.Command{
	Use:   "nlcheck",
	Short: "Netlist description checker",
	Long: `nlcheck reads netlist descriptions (types, cells, wires, signals,
aliases, labels, categories and definitions), checks their connectivity and
writes them back out in canonical or exchange formats.

Input files are read in order as one netlist; without files, standard input
is read.

Examples:
  nlcheck check chip.nl                   # Parse and validate
  nlcheck check types.nl cells.nl         # Several files form one netlist
  nlcheck dump chip.nl                    # Canonical re-serialization
  nlcheck info chip.nl                    # Summary counts
  nlcheck export --format kicad chip.nl   # KiCad netlist`,
	Version:           "0.9.0",
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (same as --log-level debug)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "configuration file (default ./"+DefaultConfigFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

func setup(cmd *cobra.Command, args []string) error {
	if noColor {
		color.NoColor = true
	}
	level := logLevel
	if verbose {
		level = "debug"
	}
	logger = newLogger(level, logFormat, cmd.ErrOrStderr())

	c, err := loadConfig()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// newLogger creates a logger writing to w. Unknown levels fall back to info.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func loadConfig() (*netlist.Config, error) {
	path := configPath
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			logger.Debug("no configuration file, using defaults")
			return netlist.DefaultConfig(), nil
		}
		path = DefaultConfigFile
	}
	c, err := netlist.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration loaded", "path", path, "warning_limit", c.WarningLimit)
	return c, nil
}

// printError reports err on w. Netlist errors keep their position prefix.
func printError(w io.Writer, err error) {
	errorColor.Fprint(w, "error: ")
	var nerr *netlist.Error
	if errors.As(err, &nerr) {
		fmt.Fprintf(w, "%s (%s error)\n", nerr.Error(), nerr.Kind)
		return
	}
	fmt.Fprintln(w, err)
}
