package netlist

import (
	"fmt"
	"sort"
)

// validator runs the checks that need the complete netlist. The order of
// the passes matters: wires are checked against cells, cells against types,
// and the connection table is only built from wires that passed.
type validator struct {
	nl    *Netlist
	limit int
	sink  Sink

	// drainOf indexes every drain listed by any wire, for the parallel
	// inverter test.
	drainOf map[ConnKey]*WireDef
}

func (v *validator) run() error {
	if err := v.checkAliases(); err != nil {
		return err
	}
	for _, name := range v.nl.CellNames() {
		if err := v.checkCell(v.nl.Cells[name]); err != nil {
			return err
		}
	}

	wires := v.nl.WireNames()
	v.drainOf = map[ConnKey]*WireDef{}
	for _, name := range wires {
		w := v.nl.Wires[name]
		for _, c := range w.Drains {
			if _, ok := v.drainOf[c.Key()]; !ok {
				v.drainOf[c.Key()] = w
			}
		}
	}
	for _, name := range wires {
		if err := v.checkWire(v.nl.Wires[name]); err != nil {
			return err
		}
	}

	if err := v.connect(wires); err != nil {
		return err
	}
	for _, w := range v.nl.Wires {
		sort.SliceStable(w.Sources, func(i, j int) bool { return CompareConnections(w.Sources[i], w.Sources[j]) < 0 })
		sort.SliceStable(w.Drains, func(i, j int) bool { return CompareConnections(w.Drains[i], w.Drains[j]) < 0 })
	}
	v.reportUnconnected()
	return nil
}

// checkAliases makes sure no alias repeats a name or another alias, for
// cells and wires separately.
func (v *validator) checkAliases() error {
	seen := map[string]bool{}
	for name := range v.nl.Cells {
		seen[name] = true
	}
	for _, name := range v.nl.CellNames() {
		c := v.nl.Cells[name]
		for _, a := range c.Aliases {
			if seen[a] {
				return semanticErrorf(c.Pos, "alias '%s' of cell '%s' is already in use", a, c.Name)
			}
			seen[a] = true
		}
	}

	seen = map[string]bool{}
	for name := range v.nl.Wires {
		seen[name] = true
	}
	for _, name := range v.nl.WireNames() {
		w := v.nl.Wires[name]
		for _, a := range w.Aliases {
			if seen[a] {
				return semanticErrorf(w.Pos, "alias '%s' of wire '%s' is already in use", a, w.Name)
			}
			seen[a] = true
		}
	}
	return nil
}

func (v *validator) checkCell(cell *CellDef) error {
	t, ok := v.nl.Types[cell.Type]
	if !ok {
		return semanticErrorf(cell.Pos, "type '%s' not found", cell.Type)
	}
	if cell.Category != "" {
		if _, ok := v.nl.Categories[cell.Category]; !ok {
			return semanticErrorf(cell.Pos, "category '%s' not found", cell.Category)
		}
	}

	for _, name := range sortedKeys(cell.Coords) {
		lists := cell.Coords[name]
		if name == "" {
			if len(lists) != 1 {
				return semanticErrorf(cell.Pos, "multiple cell coordinates")
			}
			if len(lists[0]) != 4 {
				return semanticErrorf(cell.Pos, "cell coordinates don't describe a rectangle (need four numbers Y1,X1,Y2,X2)")
			}
			continue
		}
		if _, ok := t.Port(name); !ok {
			return semanticErrorf(cell.Pos, "type '%s' doesn't have a port named '%s'", t.Name, name)
		}
		for _, list := range lists {
			if len(list) == 0 {
				return semanticErrorf(cell.Pos, "cell port '%s' has no coordinates", name)
			}
			if len(list)%2 != 0 {
				return semanticErrorf(cell.Pos, "cell port '%s' has odd number of coordinates", name)
			}
		}
	}
	return nil
}

// describe names a port for error messages.
func describe(con WireConnection, cell *CellDef) string {
	return fmt.Sprintf("port '%s' of cell '%s' (type '%s')", con.Port, con.Cell, cell.Type)
}

func (v *validator) checkWire(w *WireDef) error {
	if w.Signal != "" {
		if _, ok := v.nl.Signals[w.Signal]; !ok {
			return semanticErrorf(w.Pos, "signal '%s' not found", w.Signal)
		}
	}

	dirs := map[ConnKey]PortDirection{}
	both := make([]WireConnection, 0, len(w.Sources)+len(w.Drains))
	both = append(both, w.Sources...)
	both = append(both, w.Drains...)
	for _, c := range both {
		cell, ok := v.nl.Cells[c.Cell]
		if !ok {
			return semanticErrorf(w.Pos, "cell '%s' not found", c.Cell)
		}
		t := v.nl.Types[cell.Type]
		p, ok := t.Port(c.Port)
		if !ok {
			return semanticErrorf(w.Pos, "cell '%s' (type '%s') doesn't have a port named '%s'", c.Cell, cell.Type, c.Port)
		}
		if _, dup := dirs[c.Key()]; dup {
			return semanticErrorf(w.Pos, "connection '%s' listed more than once", c)
		}
		if p.Direction == NotConnected {
			return semanticErrorf(w.Pos, "%s mustn't have a connection", describe(c, cell))
		}
		dirs[c.Key()] = p.Direction
	}

	var tri, low, high bool
	parallel := -1
	for _, c := range w.Sources {
		cell := v.nl.Cells[c.Cell]
		d := dirs[c.Key()]
		if !d.IsDriver() {
			return semanticErrorf(w.Pos, "%s in source list is not an output or tri-state", describe(c, cell))
		}

		if d == Output && len(w.Sources) > 1 && !w.Unchecked {
			if parallel < 0 {
				parallel = 0
				if v.parallelInverters(w.Sources) {
					parallel = 1
				}
			}
			if parallel == 0 {
				return semanticErrorf(w.Pos, "%s in source list is an output (not tri-state), but there are multiple entries in source list, which do not come from parallel inverters", describe(c, cell))
			}
		}

		tri = tri || d == Tristate || d == Bidir
		low = low || d == OutputLow
		high = high || d == OutputHigh
		if count(tri, low, high) > 1 {
			return semanticErrorf(w.Pos, "%s has incompatible/short-circuiting drivers in source list (combination of tri-state, bidir, output-low or output-high)", describe(c, cell))
		}
	}

	for _, c := range w.Drains {
		if dirs[c.Key()] != Input {
			return semanticErrorf(w.Pos, "%s in drain list is not an input", describe(c, v.nl.Cells[c.Cell]))
		}
	}

	for _, c := range w.Sources {
		if dirs[c.Key()] == Bidir {
			w.Drains = append(w.Drains, c)
		}
	}

	for _, list := range w.Coords {
		if len(list)%2 != 0 {
			return semanticErrorf(w.Pos, "wire segment has odd number of coordinates")
		}
		if len(list) < 4 {
			return semanticErrorf(w.Pos, "wire segment has not enough coordinates (<4) to describe a line")
		}
	}
	return nil
}

func count(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

// parallelInverters reports whether every source is the output of an
// inverter (a type with exactly one input and one output) and all those
// inverters take their input from the same wire.
func (v *validator) parallelInverters(sources []WireConnection) bool {
	if len(sources) < 2 {
		return false
	}
	var input *WireDef
	for i, con := range sources {
		cell := v.nl.Cells[con.Cell]
		t := v.nl.Types[cell.Type]
		out, _ := t.Port(con.Port)
		if len(t.Ports) != 2 || out.Direction != Output {
			return false
		}
		var in *PortDefinition
		for _, p := range t.Ports {
			if p != out {
				in = p
			}
		}
		if in.Direction != Input {
			return false
		}
		w, ok := v.drainOf[ConnKey{Cell: cell.Name, Port: in.Name}]
		if !ok {
			return false
		}
		if i == 0 {
			input = w
		} else if w != input {
			return false
		}
	}
	return true
}

// connect builds the connection table. Every port may belong to one wire
// only; bidirectional ports appear in both lists of their wire but are
// entered once.
func (v *validator) connect(wires []string) error {
	for _, name := range wires {
		w := v.nl.Wires[name]
		cons := append([]WireConnection(nil), w.Sources...)
		for _, d := range w.Drains {
			if !containsConnection(w.Sources, d) {
				cons = append(cons, d)
			}
		}
		for _, c := range cons {
			if other, ok := v.nl.Cons[c.Key()]; ok {
				return semanticErrorf(c.Pos, "connection '%s' of wire '%s' already made to wire '%s'", c, w.Name, other.Name)
			}
			v.nl.Cons[c.Key()] = w
		}
	}
	return nil
}

func containsConnection(list []WireConnection, c WireConnection) bool {
	for _, x := range list {
		if x.Key() == c.Key() {
			return true
		}
	}
	return false
}

// reportUnconnected warns about input and bidirectional ports that no wire
// reaches. Only the first v.limit are reported one by one.
func (v *validator) reportUnconnected() {
	n := 0
	for _, name := range v.nl.CellNames() {
		cell := v.nl.Cells[name]
		t := v.nl.Types[cell.Type]
		for _, p := range t.Ports {
			if p.Direction != Input && p.Direction != Bidir {
				continue
			}
			if _, ok := v.nl.Cons[ConnKey{Cell: cell.Name, Port: p.Name}]; ok {
				continue
			}
			n++
			if n <= v.limit {
				v.sink.Warn(Warning{
					Pos: cell.Pos,
					Msg: fmt.Sprintf("port '%s' of cell '%s' (type '%s') is not connected", p.Name, cell.Name, t.Name),
				})
			}
		}
	}
	if n > v.limit {
		v.sink.Warn(Warning{Msg: fmt.Sprintf("%d more unconnected ports", n-v.limit)})
	}
	v.nl.Unconnected = n
}
