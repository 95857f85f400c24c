package netlist

import (
	"sort"
	"strings"
)

// Netlist is a validated netlist. It is produced by Builder.Flush and is
// meant to be read, not modified, by its consumers.
type Netlist struct {
	Types      map[string]*TypeDef
	Cells      map[string]*CellDef
	Wires      map[string]*WireDef
	Signals    map[string]*SignalDef
	Categories map[string]*CategoryDef
	Labels     []*LabelDef
	Strings    map[string]string

	// Cons maps every connected cell port to the wire it belongs to.
	Cons map[ConnKey]*WireDef

	// Unconnected counts the input and bidirectional ports without a wire.
	Unconnected int
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return CompareNames(keys[i], keys[j]) < 0 })
	return keys
}

// TypeNames returns the type names in display order.
func (nl *Netlist) TypeNames() []string { return sortedKeys(nl.Types) }

// CellNames returns the cell names in display order.
func (nl *Netlist) CellNames() []string { return sortedKeys(nl.Cells) }

// WireNames returns the wire names in display order.
func (nl *Netlist) WireNames() []string { return sortedKeys(nl.Wires) }

// SignalNames returns the signal names in display order.
func (nl *Netlist) SignalNames() []string { return sortedKeys(nl.Signals) }

// CategoryNames returns the category names in display order.
func (nl *Netlist) CategoryNames() []string { return sortedKeys(nl.Categories) }

// WireAt returns the wire connected to a cell port.
func (nl *Netlist) WireAt(cell, port string) (*WireDef, bool) {
	w, ok := nl.Cons[ConnKey{Cell: cell, Port: port}]
	return w, ok
}

// CellType returns the type of a cell.
func (nl *Netlist) CellType(cell string) (*TypeDef, bool) {
	c, ok := nl.Cells[cell]
	if !ok {
		return nil, false
	}
	t, ok := nl.Types[c.Type]
	return t, ok
}

// PortOf returns the definition of the port a connection refers to.
func (nl *Netlist) PortOf(con WireConnection) (*PortDefinition, bool) {
	t, ok := nl.CellType(con.Cell)
	if !ok {
		return nil, false
	}
	return t.Port(con.Port)
}

// CellsOfType returns the names of the cells instantiating a type, in
// display order.
func (nl *Netlist) CellsOfType(typ string) []string {
	var names []string
	for _, name := range nl.CellNames() {
		if nl.Cells[name].Type == typ {
			names = append(names, name)
		}
	}
	return names
}

// String renders the netlist in the input language. Parsing the result
// yields an equivalent netlist.
func (nl *Netlist) String() string {
	var sb strings.Builder
	line := func(s string) {
		sb.WriteString(s)
		sb.WriteByte('\n')
	}

	for _, k := range sortedKeys(nl.Strings) {
		line((&StringDef{Key: k, Value: nl.Strings[k]}).String())
	}
	for _, name := range nl.SignalNames() {
		line(nl.Signals[name].String())
	}
	for _, name := range nl.CategoryNames() {
		line(nl.Categories[name].String())
	}
	for _, name := range nl.TypeNames() {
		line(nl.Types[name].String())
	}
	for _, name := range nl.CellNames() {
		c := nl.Cells[name]
		line(c.String())
		if len(c.Aliases) > 0 {
			line(aliasStatement(AliasCell, c.Name, c.Aliases))
		}
	}
	for _, name := range nl.WireNames() {
		w := nl.Wires[name]
		line(w.String())
		if len(w.Aliases) > 0 {
			line(aliasStatement(AliasWire, w.Name, w.Aliases))
		}
	}
	for _, l := range nl.Labels {
		line(l.String())
	}
	return sb.String()
}
