package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/nlcheck/pkg/netlist"
)

// KiCad exports the netlist as a KiCad netlist (S-expression, version D).
// Cells become components, wires become nets. Bar markup is rendered the
// way KiCad spells overlines, ~{...}.
func KiCad(nl *netlist.Netlist) (string, error) {
	if nl == nil {
		return "", fmt.Errorf("export: nil netlist")
	}

	var sb strings.Builder
	sb.WriteString("(export (version D)\n")
	sb.WriteString("  (design\n")
	sb.WriteString("    (source \"nlcheck\")\n")
	sb.WriteString("    (tool \"nlcheck " + Version + "\")\n")
	sb.WriteString("  )\n")

	sb.WriteString("  (components\n")
	for _, name := range nl.CellNames() {
		c := nl.Cells[name]
		fmt.Fprintf(&sb, "    (comp (ref %s) (value %s)", q(c.Name), q(c.Type))
		if c.Description != "" {
			fmt.Fprintf(&sb, " (description %s)", q(c.Description))
		}
		sb.WriteString(")\n")
	}
	sb.WriteString("  )\n")

	sb.WriteString("  (libparts\n")
	for _, name := range nl.TypeNames() {
		t := nl.Types[name]
		fmt.Fprintf(&sb, "    (libpart (part %s)", q(t.Name))
		if link := DocLink(t); link != "" {
			fmt.Fprintf(&sb, " (docs %s)", q(link))
		}
		sb.WriteString("\n      (pins")
		for i, p := range t.Ports {
			fmt.Fprintf(&sb, " (pin (num %d) (name %s) (type %s))", i+1, q(p.Name), kicadPinType(p.Direction))
		}
		sb.WriteString("))\n")
	}
	sb.WriteString("  )\n")

	sb.WriteString("  (nets\n")
	for i, name := range nl.WireNames() {
		w := nl.Wires[name]
		fmt.Fprintf(&sb, "    (net (code %d) (name %s)\n", i+1, q(w.Name))
		seen := map[netlist.ConnKey]bool{}
		for _, list := range [][]netlist.WireConnection{w.Sources, w.Drains} {
			for _, c := range list {
				if seen[c.Key()] {
					continue
				}
				seen[c.Key()] = true
				fmt.Fprintf(&sb, "      (node (ref %s) (pin %s))\n", q(c.Cell), q(c.Port))
			}
		}
		sb.WriteString("    )\n")
	}
	sb.WriteString("  )\n")
	sb.WriteString(")\n")
	return sb.String(), nil
}

func q(s string) string { return strconv.Quote(s) }

func kicadPinType(d netlist.PortDirection) string {
	switch d {
	case netlist.Input:
		return "input"
	case netlist.Output, netlist.OutputLow, netlist.OutputHigh:
		return "output"
	case netlist.Tristate:
		return "tri_state"
	case netlist.Bidir:
		return "BiDi"
	}
	return "NotConnected"
}
