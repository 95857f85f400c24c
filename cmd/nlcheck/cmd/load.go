package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/OpenTraceLab/nlcheck/pkg/netlist"
)

// consoleSink prints warnings for people; with --log-format json they go
// through the logger instead.
type consoleSink struct {
	w io.Writer
}

func (s *consoleSink) Warn(w netlist.Warning) {
	warningColor.Fprint(s.w, "warning: ")
	fmt.Fprintln(s.w, w.String())
}

func newSink(w io.Writer) netlist.Sink {
	if logFormat == "json" {
		return netlist.NewSlogSink(logger)
	}
	return &consoleSink{w: w}
}

// loadNetlist reads the named files, or standard input when there are none,
// as a single netlist and validates it.
func loadNetlist(stdin io.Reader, files []string, sink netlist.Sink) (*netlist.Netlist, error) {
	b, err := netlist.NewBuilder(cfg, sink)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		logger.Debug("reading standard input")
		if err := b.ReadFrom(stdin, ""); err != nil {
			return nil, err
		}
	}
	for _, name := range files {
		if err := readFile(b, name); err != nil {
			return nil, err
		}
	}

	nl, err := b.Flush()
	if err != nil {
		return nil, err
	}
	logger.Debug("netlist validated",
		"types", len(nl.Types), "cells", len(nl.Cells), "wires", len(nl.Wires),
		"unconnected", nl.Unconnected)
	return nl, nil
}

func readFile(b *netlist.Builder, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()
	logger.Debug("reading file", "file", name)
	return b.ReadFrom(f, name)
}
